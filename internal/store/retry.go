package store

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/abhisek/nodaysoff/internal/workout"
)

// RetryConfig configures retry behavior for transient storage failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig returns the retry policy used when none is configured.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 200 * time.Millisecond,
		MaxWait:     2 * time.Second,
		Multiplier:  2.0,
	}
}

// RetryRepo is a decorator that retries transient errors with
// exponential backoff and jitter.
type RetryRepo struct {
	inner  RecordRepo
	config RetryConfig
}

// WithRetry wraps a RecordRepo with retry logic.
func WithRetry(repo RecordRepo, cfg RetryConfig) RecordRepo {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryRepo{inner: repo, config: cfg}
}

func (r *RetryRepo) Load(ctx context.Context, userID string) (*workout.Record, error) {
	var rec *workout.Record
	err := r.do(ctx, func() error {
		var err error
		rec, err = r.inner.Load(ctx, userID)
		return err
	})
	return rec, err
}

func (r *RetryRepo) Save(ctx context.Context, userID string, rec workout.Record) error {
	return r.do(ctx, func() error {
		return r.inner.Save(ctx, userID, rec)
	})
}

func (r *RetryRepo) do(ctx context.Context, op func() error) error {
	var lastErr error
	for attempt := range r.config.MaxAttempts {
		err := op()
		if err == nil {
			return nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return err
		}

		// Last attempt, don't sleep.
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.backoff(attempt)):
		}
	}
	return lastErr
}

// shouldRetry determines if an error is retryable.
func shouldRetry(err error) bool {
	// Context errors are never retried.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	// A corrupt row reads the same way every time.
	if errors.Is(err, ErrCorruptRecord) {
		return false
	}
	return true
}

// backoff computes the wait duration for the given attempt.
func (r *RetryRepo) backoff(attempt int) time.Duration {
	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// Add ±20% jitter.
	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
