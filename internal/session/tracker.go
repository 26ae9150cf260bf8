// Package session owns one user's workout record and the progress of the
// current sitting, and is the only path by which the record changes.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/nodaysoff/internal/catalog"
	"github.com/abhisek/nodaysoff/internal/logging"
	"github.com/abhisek/nodaysoff/internal/progression"
	"github.com/abhisek/nodaysoff/internal/store"
	"github.com/abhisek/nodaysoff/internal/workout"
)

// Saver persists the workout record.
type Saver interface {
	Save(ctx context.Context, userID string, r workout.Record) error
}

// HistoryRecorder receives committed sessions and penalties. Failures are
// logged and never undo a saved record.
type HistoryRecorder interface {
	AppendCommit(ctx context.Context, userID string, ev store.CommitEvent) error
	AppendPenalty(ctx context.Context, userID string, ev store.PenaltyEvent) error
}

// Outcome is the result of a recording call.
type Outcome struct {
	Committed bool
	Summary   *CommitSummary // set when Committed
	Penalty   *Penalty       // set for a failed weights attempt
	Events    []Event
}

// Tracker is not safe for concurrent use; the UI drives it from one goroutine.
type Tracker struct {
	userID  string
	record  workout.Record
	state   State
	saver   Saver
	history HistoryRecorder
	now     func() time.Time
	logger  *slog.Logger
	pending bool // complete session whose save failed
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithHistory records commits and penalties to h.
func WithHistory(h HistoryRecorder) Option {
	return func(t *Tracker) { t.history = h }
}

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// NewTracker creates a tracker around a loaded record.
func NewTracker(userID string, record workout.Record, saver Saver, opts ...Option) *Tracker {
	t := &Tracker{
		userID: userID,
		record: record.Clone(),
		state:  NewState(),
		saver:  saver,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.record.Normalize()
	t.logger = t.logger.With("component", "session")
	return t
}

// UserID returns the user the tracker belongs to.
func (t *Tracker) UserID() string { return t.userID }

// Record returns a copy of the durable record.
func (t *Tracker) Record() workout.Record { return t.record.Clone() }

// State returns a copy of the current sitting.
func (t *Tracker) State() State { return t.state.Clone() }

// Progress returns the number of completed modalities.
func (t *Tracker) Progress() int { return t.state.Progress() }

// Pending reports whether a completed session is waiting for a successful save.
func (t *Tracker) Pending() bool { return t.pending }

// Now returns the tracker's current time.
func (t *Tracker) Now() time.Time { return t.now() }

// Status describes the record's recency for display.
func (t *Tracker) Status() progression.StatusMessage {
	return progression.Status(t.record.LastWorkout, t.record.ConsecutiveDays, t.record.RestUntil, t.now())
}

// RecordHIIT resolves the HIIT circuit. A failure still completes the
// modality; it only withholds the HIIT gain at commit.
func (t *Tracker) RecordHIIT(ctx context.Context, passed bool) (Outcome, error) {
	t.state.HIITComplete = true
	t.state.HIITPassed = passed
	t.logger.InfoContext(ctx, "hiit recorded", "passed", passed, "progress", t.state.Progress())
	return t.maybeCommit(ctx, Outcome{})
}

// RecordVO2Max resolves the VO2 max intervals.
func (t *Tracker) RecordVO2Max(ctx context.Context, passed bool) (Outcome, error) {
	t.state.VO2MaxComplete = true
	t.state.VO2MaxPassed = passed
	t.logger.InfoContext(ctx, "vo2max recorded", "passed", passed, "progress", t.state.Progress())
	return t.maybeCommit(ctx, Outcome{})
}

// SelectWeightsDay chooses the split day for this sitting. Switching to a
// different day drops results recorded against the previous one; penalties
// already saved stay saved.
func (t *Tracker) SelectWeightsDay(day catalog.DayKey) error {
	if _, ok := catalog.Program(day); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDay, day)
	}
	if day != t.state.Day() {
		t.state.WeightsResults = nil
		t.state.WeightsComplete = false
	}
	t.state.WeightsDay = day
	return nil
}

// RecordWeightsExercise records one exercise on the selected day. A failed
// attempt is penalized and saved immediately. The day's last exercise
// completes the weights modality.
func (t *Tracker) RecordWeightsExercise(ctx context.Context, exercise string, passed bool, weight float64) (Outcome, error) {
	day := t.state.Day()
	if !catalog.Contains(day, exercise) {
		return Outcome{}, fmt.Errorf("%w: %q on %s", ErrUnknownExercise, exercise, day)
	}
	weight = workout.CleanWeight(weight, t.record.Weight(day, exercise))

	var out Outcome
	res := WeightResult{Exercise: exercise, Passed: passed, Entered: weight, Weight: weight}
	if !passed {
		p, err := t.penalize(ctx, day, exercise, weight)
		if err != nil {
			return Outcome{}, err
		}
		res.Weight = p.After
		out.Penalty = &p
		out.Events = append(out.Events, Event{Kind: KindWeightPenalized, At: p.At, Exercise: exercise, Weight: p.After})
	}

	t.state.putResult(res)
	if catalog.IsLast(day, exercise) {
		t.state.WeightsComplete = true
	}
	t.logger.InfoContext(ctx, "weights recorded",
		"day", day, "exercise", exercise, "passed", passed, "weight", res.Weight,
		"progress", t.state.Progress())
	return t.maybeCommit(ctx, out)
}

func (t *Tracker) penalize(ctx context.Context, day catalog.DayKey, exercise string, weight float64) (Penalty, error) {
	p := Penalty{At: t.now(), Day: day, Exercise: exercise, Before: weight, After: PenalizedWeight(weight)}

	next := t.record.Clone()
	if next.WeightsByDay[day] == nil {
		next.WeightsByDay[day] = map[string]float64{}
	}
	next.WeightsByDay[day][exercise] = p.After
	if err := t.saver.Save(ctx, t.userID, next); err != nil {
		t.logger.ErrorContext(ctx, "penalty save failed", "exercise", exercise, "error", err)
		return Penalty{}, fmt.Errorf("%w: %w", ErrPenaltyNotSaved, err)
	}
	t.record = next

	t.logger.InfoContext(ctx, "weight penalized", "day", day, "exercise", exercise, "before", p.Before, "after", p.After)
	if t.history != nil {
		if err := t.history.AppendPenalty(ctx, t.userID, p.Event()); err != nil {
			t.logger.WarnContext(ctx, "record penalty history", "error", err)
		}
	}
	return p, nil
}

// RetryCommit re-attempts a commit whose save failed.
func (t *Tracker) RetryCommit(ctx context.Context) (Outcome, error) {
	if !t.state.AllComplete() {
		return Outcome{}, ErrNotReady
	}
	return t.commit(ctx, Outcome{})
}

// Abandon discards the sitting without touching the record.
func (t *Tracker) Abandon() {
	t.state = NewState()
	t.pending = false
}

func (t *Tracker) maybeCommit(ctx context.Context, out Outcome) (Outcome, error) {
	if !t.state.AllComplete() {
		return out, nil
	}
	return t.commit(ctx, out)
}

// commit persists the planned record and only then adopts it.
func (t *Tracker) commit(ctx context.Context, out Outcome) (Outcome, error) {
	ctx = logging.WithAttrs(ctx, slog.String("user_id", t.userID))
	next, sum := PlanCommit(t.record, t.state, t.now())

	if err := t.saver.Save(ctx, t.userID, next); err != nil {
		t.pending = true
		t.logger.ErrorContext(ctx, "commit save failed", "error", err)
		return out, fmt.Errorf("%w: %w", ErrCommitNotSaved, err)
	}

	t.record = next
	t.state = NewState()
	t.pending = false

	out.Committed = true
	out.Summary = &sum
	out.Events = append(out.Events, Event{Kind: KindSessionCommitted, At: sum.At})
	if sum.RestEntered {
		out.Events = append(out.Events, Event{Kind: KindRestWindowEntered, At: sum.At, Until: sum.RestUntil})
	}
	if sum.RestCleared {
		out.Events = append(out.Events, Event{Kind: KindRestWindowCleared, At: sum.At})
	}

	t.logger.InfoContext(ctx, "session committed",
		"band", sum.Band().String(),
		"streak", sum.StreakAfter,
		"hiit_target", next.HIITTarget,
		"vo2max_target", next.VO2MaxTarget,
		"rest_entered", sum.RestEntered,
		"rest_cleared", sum.RestCleared)

	if t.history != nil {
		if err := t.history.AppendCommit(ctx, t.userID, sum.Event()); err != nil {
			t.logger.WarnContext(ctx, "record commit history", "error", err)
		}
	}
	return out, nil
}

// SetHIITTarget replaces the HIIT duration from user input. Invalid input
// keeps the current target.
func (t *Tracker) SetHIITTarget(ctx context.Context, input string) (int, error) {
	v := workout.ParseSeconds(input, t.record.HIITTarget)
	if v == t.record.HIITTarget {
		return v, nil
	}
	next := t.record.Clone()
	next.HIITTarget = v
	if err := t.save(ctx, next); err != nil {
		return t.record.HIITTarget, err
	}
	return v, nil
}

// SetVO2MaxTarget replaces the VO2 max speed from user input. Invalid input
// keeps the current target.
func (t *Tracker) SetVO2MaxTarget(ctx context.Context, input string) (float64, error) {
	v := workout.ParseSpeed(input, t.record.VO2MaxTarget)
	if v == t.record.VO2MaxTarget {
		return v, nil
	}
	next := t.record.Clone()
	next.VO2MaxTarget = v
	if err := t.save(ctx, next); err != nil {
		return t.record.VO2MaxTarget, err
	}
	return v, nil
}

// ResetAll replaces the record with the defaults and clears the sitting.
func (t *Tracker) ResetAll(ctx context.Context) error {
	if err := t.save(ctx, workout.Default()); err != nil {
		return err
	}
	t.Abandon()
	t.logger.InfoContext(ctx, "all data reset")
	return nil
}

func (t *Tracker) save(ctx context.Context, next workout.Record) error {
	if err := t.saver.Save(ctx, t.userID, next); err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	t.record = next
	return nil
}
