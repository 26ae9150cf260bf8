package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/nodaysoff/internal/store"
	"github.com/abhisek/nodaysoff/internal/workout"
)

// Loader reads a stored record.
type Loader interface {
	Load(ctx context.Context, userID string) (*workout.Record, error)
}

// LoadRecord returns the user's record. A missing or undecodable record
// yields the default baseline; other errors are returned.
func LoadRecord(ctx context.Context, repo Loader, userID string, logger *slog.Logger) (workout.Record, error) {
	if logger == nil {
		logger = slog.Default()
	}
	rec, err := repo.Load(ctx, userID)
	switch {
	case errors.Is(err, store.ErrCorruptRecord):
		logger.WarnContext(ctx, "stored record unreadable, starting from defaults", "user_id", userID, "error", err)
		return workout.Default(), nil
	case err != nil:
		return workout.Record{}, fmt.Errorf("load record: %w", err)
	case rec == nil:
		logger.InfoContext(ctx, "no stored record, starting from defaults", "user_id", userID)
		return workout.Default(), nil
	}

	if rec.Normalize() {
		logger.WarnContext(ctx, "stored record repaired", "user_id", userID)
	}
	return *rec, nil
}
