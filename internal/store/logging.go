package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/abhisek/nodaysoff/internal/workout"
)

// LoggingRepo is a decorator that logs every storage call with its latency.
type LoggingRepo struct {
	inner  RecordRepo
	logger *slog.Logger
}

// WithLogging wraps a RecordRepo with structured logging.
func WithLogging(repo RecordRepo, logger *slog.Logger) RecordRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingRepo{inner: repo, logger: logger.With("component", "store")}
}

func (l *LoggingRepo) Load(ctx context.Context, userID string) (*workout.Record, error) {
	start := time.Now()
	rec, err := l.inner.Load(ctx, userID)
	attrs := []any{
		"user_id", userID,
		"found", rec != nil,
		"latency_ms", time.Since(start).Milliseconds(),
	}
	if err != nil {
		l.logger.ErrorContext(ctx, "load record failed", append(attrs, "error", err)...)
		return rec, err
	}
	l.logger.DebugContext(ctx, "load record", attrs...)
	return rec, nil
}

func (l *LoggingRepo) Save(ctx context.Context, userID string, rec workout.Record) error {
	start := time.Now()
	err := l.inner.Save(ctx, userID, rec)
	attrs := []any{
		"user_id", userID,
		"hiit_target", rec.HIITTarget,
		"vo2max_target", rec.VO2MaxTarget,
		"consecutive_days", rec.ConsecutiveDays,
		"latency_ms", time.Since(start).Milliseconds(),
	}
	if err != nil {
		l.logger.ErrorContext(ctx, "save record failed", append(attrs, "error", err)...)
		return err
	}
	l.logger.InfoContext(ctx, "save record", attrs...)
	return nil
}
