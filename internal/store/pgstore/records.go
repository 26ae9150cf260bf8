package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/abhisek/nodaysoff/internal/catalog"
	"github.com/abhisek/nodaysoff/internal/store"
	"github.com/abhisek/nodaysoff/internal/workout"
)

type recordRepo struct {
	pool *pgxpool.Pool
}

func (r *recordRepo) Load(ctx context.Context, userID string) (*workout.Record, error) {
	var (
		rec         workout.Record
		days        [4]string
		last, until *time.Time
	)
	err := r.pool.QueryRow(ctx, `
		SELECT hiit_target, vo2max_target,
		       day1_weights, day2_weights, day3_weights, day4_weights,
		       last_workout, consecutive_days, rest_until
		FROM workout_records
		WHERE user_id = $1
	`, userID).Scan(
		&rec.HIITTarget, &rec.VO2MaxTarget,
		&days[0], &days[1], &days[2], &days[3],
		&last, &rec.ConsecutiveDays, &until,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query workout record: %w", err)
	}

	rec.WeightsByDay = make(map[catalog.DayKey]map[string]float64, len(days))
	for i, day := range catalog.Days() {
		m, err := store.DecodeWeights(days[i])
		if err != nil {
			return nil, fmt.Errorf("%w: %s weights: %v", store.ErrCorruptRecord, day, err)
		}
		rec.WeightsByDay[day] = m
	}
	rec.LastWorkout = utc(last)
	rec.RestUntil = utc(until)
	return &rec, nil
}

func (r *recordRepo) Save(ctx context.Context, userID string, rec workout.Record) error {
	var days [4]string
	for i, day := range catalog.Days() {
		s, err := store.EncodeWeights(rec.WeightsByDay[day])
		if err != nil {
			return fmt.Errorf("encode %s weights: %w", day, err)
		}
		days[i] = s
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO workout_records (
			user_id, hiit_target, vo2max_target,
			day1_weights, day2_weights, day3_weights, day4_weights,
			last_workout, consecutive_days, rest_until, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			hiit_target = EXCLUDED.hiit_target,
			vo2max_target = EXCLUDED.vo2max_target,
			day1_weights = EXCLUDED.day1_weights,
			day2_weights = EXCLUDED.day2_weights,
			day3_weights = EXCLUDED.day3_weights,
			day4_weights = EXCLUDED.day4_weights,
			last_workout = EXCLUDED.last_workout,
			consecutive_days = EXCLUDED.consecutive_days,
			rest_until = EXCLUDED.rest_until,
			updated_at = NOW()
	`, userID, rec.HIITTarget, rec.VO2MaxTarget,
		days[0], days[1], days[2], days[3],
		rec.LastWorkout, rec.ConsecutiveDays, rec.RestUntil,
	)
	if err != nil {
		return fmt.Errorf("save workout record: %w", err)
	}
	return nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
