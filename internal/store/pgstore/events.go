package pgstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abhisek/nodaysoff/internal/store"
)

type eventRepo struct {
	pool *pgxpool.Pool
}

func (r *eventRepo) AppendCommit(ctx context.Context, userID string, ev store.CommitEvent) error {
	return r.append(ctx, userID, store.KindCommit, ev.Timestamp, ev)
}

func (r *eventRepo) AppendPenalty(ctx context.Context, userID string, ev store.PenaltyEvent) error {
	return r.append(ctx, userID, store.KindPenalty, ev.Timestamp, ev)
}

func (r *eventRepo) append(ctx context.Context, userID, kind string, ts time.Time, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", kind, err)
	}
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO session_events (user_id, kind, occurred_at, payload)
		VALUES ($1, $2, $3, $4)
	`, userID, kind, ts.UTC(), string(data))
	if err != nil {
		return fmt.Errorf("append %s event: %w", kind, err)
	}
	return nil
}

func (r *eventRepo) QueryCommits(ctx context.Context, userID string, opts store.QueryOpts) ([]store.CommitEvent, error) {
	var out []store.CommitEvent
	err := r.query(ctx, userID, store.KindCommit, opts, func(seq int64, ts time.Time, payload string) error {
		var ev store.CommitEvent
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			return err
		}
		ev.Sequence, ev.Timestamp = seq, ts
		out = append(out, ev)
		return nil
	})
	return out, err
}

func (r *eventRepo) QueryPenalties(ctx context.Context, userID string, opts store.QueryOpts) ([]store.PenaltyEvent, error) {
	var out []store.PenaltyEvent
	err := r.query(ctx, userID, store.KindPenalty, opts, func(seq int64, ts time.Time, payload string) error {
		var ev store.PenaltyEvent
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			return err
		}
		ev.Sequence, ev.Timestamp = seq, ts
		out = append(out, ev)
		return nil
	})
	return out, err
}

// query builds the filtered select with the ent builder so the placeholders
// come out in Postgres form.
func (r *eventRepo) query(ctx context.Context, userID, kind string, opts store.QueryOpts, scan func(int64, time.Time, string) error) error {
	b := builder()
	sel := b.Select("sequence", "occurred_at", "payload").
		From(b.Table("session_events")).
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("kind", kind)))
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("occurred_at", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("occurred_at", opts.To.UTC()))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query %s events: %w", kind, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			seq     int64
			ts      time.Time
			payload string
		)
		if err := rows.Scan(&seq, &ts, &payload); err != nil {
			return fmt.Errorf("scan %s event: %w", kind, err)
		}
		if err := scan(seq, ts.UTC(), payload); err != nil {
			return fmt.Errorf("decode %s event %d: %w", kind, seq, err)
		}
	}
	return rows.Err()
}
