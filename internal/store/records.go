package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/nodaysoff/internal/catalog"
	"github.com/abhisek/nodaysoff/internal/workout"
)

var recordColumns = []string{
	"hiit_target",
	"vo2max_target",
	"day1_weights",
	"day2_weights",
	"day3_weights",
	"day4_weights",
	"last_workout",
	"consecutive_days",
	"rest_until",
}

// recordRepo implements RecordRepo with one flat row per user.
type recordRepo struct {
	db *sql.DB
}

func (r *recordRepo) Load(ctx context.Context, userID string) (*workout.Record, error) {
	b := builder()
	query, args := b.Select(recordColumns...).
		From(b.Table(recordsTable)).
		Where(entsql.EQ("user_id", userID)).
		Limit(1).
		Query()

	var (
		row         RecordRow
		last, until sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&row.HIITTarget,
		&row.VO2MaxTarget,
		&row.DayWeights[0],
		&row.DayWeights[1],
		&row.DayWeights[2],
		&row.DayWeights[3],
		&last,
		&row.ConsecutiveDays,
		&until,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query workout record: %w", err)
	}
	if last.Valid {
		row.LastWorkout = &last.String
	}
	if until.Valid {
		row.RestUntil = &until.String
	}

	rec, err := row.Decode()
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recordRepo) Save(ctx context.Context, userID string, rec workout.Record) error {
	row, err := EncodeRecord(rec)
	if err != nil {
		return err
	}

	query, args := builder().Insert(recordsTable).
		Columns(append([]string{"user_id"}, append(recordColumns, "updated_at")...)...).
		Values(
			userID,
			row.HIITTarget,
			row.VO2MaxTarget,
			row.DayWeights[0],
			row.DayWeights[1],
			row.DayWeights[2],
			row.DayWeights[3],
			optional(row.LastWorkout),
			row.ConsecutiveDays,
			optional(row.RestUntil),
			FormatTime(time.Now()),
		).
		OnConflict(
			entsql.ConflictColumns("user_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save workout record: %w", err)
	}
	return nil
}

// RecordRow is the flat storage form of a workout.Record: one column per
// field, each day's weights as an independent JSON text column.
type RecordRow struct {
	HIITTarget      int64
	VO2MaxTarget    float64
	DayWeights      [4]string
	LastWorkout     *string
	ConsecutiveDays int64
	RestUntil       *string
}

// EncodeRecord flattens rec into its row form.
func EncodeRecord(rec workout.Record) (RecordRow, error) {
	row := RecordRow{
		HIITTarget:      int64(rec.HIITTarget),
		VO2MaxTarget:    rec.VO2MaxTarget,
		ConsecutiveDays: int64(rec.ConsecutiveDays),
	}
	for i, day := range catalog.Days() {
		s, err := EncodeWeights(rec.WeightsByDay[day])
		if err != nil {
			return RecordRow{}, fmt.Errorf("encode %s weights: %w", day, err)
		}
		row.DayWeights[i] = s
	}
	if rec.LastWorkout != nil {
		s := FormatTime(*rec.LastWorkout)
		row.LastWorkout = &s
	}
	if rec.RestUntil != nil {
		s := FormatTime(*rec.RestUntil)
		row.RestUntil = &s
	}
	return row, nil
}

// Decode rebuilds the record. Any undecodable column yields ErrCorruptRecord.
func (row RecordRow) Decode() (workout.Record, error) {
	rec := workout.Record{
		HIITTarget:      int(row.HIITTarget),
		VO2MaxTarget:    row.VO2MaxTarget,
		ConsecutiveDays: int(row.ConsecutiveDays),
		WeightsByDay:    make(map[catalog.DayKey]map[string]float64, 4),
	}
	for i, day := range catalog.Days() {
		m, err := DecodeWeights(row.DayWeights[i])
		if err != nil {
			return workout.Record{}, fmt.Errorf("%w: %s weights: %v", ErrCorruptRecord, day, err)
		}
		rec.WeightsByDay[day] = m
	}

	var err error
	if rec.LastWorkout, err = parseOptionalTime(row.LastWorkout); err != nil {
		return workout.Record{}, fmt.Errorf("%w: last_workout: %v", ErrCorruptRecord, err)
	}
	if rec.RestUntil, err = parseOptionalTime(row.RestUntil); err != nil {
		return workout.Record{}, fmt.Errorf("%w: rest_until: %v", ErrCorruptRecord, err)
	}
	return rec, nil
}

func optional(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
