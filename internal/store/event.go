package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// Event kinds stored in session_events.
const (
	KindCommit  = "commit"
	KindPenalty = "penalty"
)

// eventRepo implements EventRepo on the append-only session_events table.
// The autoincrement sequence gives a single global order across kinds.
type eventRepo struct {
	db  *sql.DB
	now func() time.Time
}

func (r *eventRepo) AppendCommit(ctx context.Context, userID string, ev CommitEvent) error {
	return r.append(ctx, userID, KindCommit, ev.Timestamp, ev)
}

func (r *eventRepo) AppendPenalty(ctx context.Context, userID string, ev PenaltyEvent) error {
	return r.append(ctx, userID, KindPenalty, ev.Timestamp, ev)
}

func (r *eventRepo) append(ctx context.Context, userID, kind string, ts time.Time, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", kind, err)
	}
	if ts.IsZero() {
		ts = r.clock()
	}

	query, args := builder().Insert(eventsTable).
		Columns("user_id", "kind", "occurred_at", "payload").
		Values(userID, kind, FormatTime(ts), string(data)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append %s event: %w", kind, err)
	}
	return nil
}

func (r *eventRepo) QueryCommits(ctx context.Context, userID string, opts QueryOpts) ([]CommitEvent, error) {
	var out []CommitEvent
	err := r.query(ctx, userID, KindCommit, opts, func(seq int64, ts time.Time, payload []byte) error {
		var ev CommitEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			return err
		}
		ev.Sequence, ev.Timestamp = seq, ts
		out = append(out, ev)
		return nil
	})
	return out, err
}

func (r *eventRepo) QueryPenalties(ctx context.Context, userID string, opts QueryOpts) ([]PenaltyEvent, error) {
	var out []PenaltyEvent
	err := r.query(ctx, userID, KindPenalty, opts, func(seq int64, ts time.Time, payload []byte) error {
		var ev PenaltyEvent
		if err := json.Unmarshal(payload, &ev); err != nil {
			return err
		}
		ev.Sequence, ev.Timestamp = seq, ts
		out = append(out, ev)
		return nil
	})
	return out, err
}

func (r *eventRepo) query(ctx context.Context, userID, kind string, opts QueryOpts, scan func(int64, time.Time, []byte) error) error {
	b := builder()
	sel := b.Select("sequence", "occurred_at", "payload").
		From(b.Table(eventsTable)).
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("kind", kind)))
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("occurred_at", FormatTime(opts.From)))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("occurred_at", FormatTime(opts.To)))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query %s events: %w", kind, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			seq     int64
			ts      string
			payload string
		)
		if err := rows.Scan(&seq, &ts, &payload); err != nil {
			return fmt.Errorf("scan %s event: %w", kind, err)
		}
		t, err := ParseTime(ts)
		if err != nil {
			return fmt.Errorf("parse %s event %d timestamp: %w", kind, seq, err)
		}
		if err := scan(seq, t, []byte(payload)); err != nil {
			return fmt.Errorf("decode %s event %d: %w", kind, seq, err)
		}
	}
	return rows.Err()
}

func (r *eventRepo) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}
