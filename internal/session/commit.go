package session

import (
	"time"

	"github.com/abhisek/nodaysoff/internal/catalog"
	"github.com/abhisek/nodaysoff/internal/progression"
	"github.com/abhisek/nodaysoff/internal/store"
	"github.com/abhisek/nodaysoff/internal/workout"
)

// TargetChange is the before/after of a single target.
type TargetChange struct {
	Passed bool
	Before float64
	After  float64
}

// Changed reports whether the target moved.
func (c TargetChange) Changed() bool { return c.Before != c.After }

// CommitSummary describes what a commit did to the record.
type CommitSummary struct {
	At           time.Time
	Gap          progression.Gap
	StreakBefore int
	StreakAfter  int
	HIIT         TargetChange
	VO2Max       TargetChange
	WeightsDay   catalog.DayKey
	Weights      []store.WeightChange
	RestEntered  bool
	RestCleared  bool
	RestUntil    *time.Time
}

// Band returns the recency band the commit was computed under.
func (s CommitSummary) Band() progression.Band { return s.Gap.Band() }

// Event converts s to its history form.
func (s CommitSummary) Event() store.CommitEvent {
	return store.CommitEvent{
		Timestamp:    s.At,
		GapDays:      s.Gap.Days,
		FirstEver:    s.Gap.FirstEver,
		Band:         s.Band().String(),
		StreakBefore: s.StreakBefore,
		StreakAfter:  s.StreakAfter,
		HIITPassed:   s.HIIT.Passed,
		HIITBefore:   int(s.HIIT.Before),
		HIITAfter:    int(s.HIIT.After),
		VO2MaxPassed: s.VO2Max.Passed,
		VO2MaxBefore: s.VO2Max.Before,
		VO2MaxAfter:  s.VO2Max.After,
		WeightsDay:   s.WeightsDay,
		Weights:      append([]store.WeightChange(nil), s.Weights...),
		RestEntered:  s.RestEntered,
		RestCleared:  s.RestCleared,
	}
}

// Minimum positive targets. A very long lapse can decay a target below one
// grid step; it is held there instead of reaching zero.
const (
	minHIITTarget   = 1
	minVO2MaxTarget = 0.1
)

// PlanCommit computes the record that committing state at now produces.
// It has no side effects; record is not modified.
func PlanCommit(record workout.Record, state State, now time.Time) (workout.Record, CommitSummary) {
	gap := progression.GapSince(record.LastWorkout, now)
	streak := record.ConsecutiveDays
	newStreak := progression.NextStreak(gap, streak)

	next := record.Clone()
	sum := CommitSummary{
		At:           now,
		Gap:          gap,
		StreakBefore: streak,
		StreakAfter:  newStreak,
		HIIT:         TargetChange{Passed: state.HIITPassed, Before: float64(record.HIITTarget)},
		VO2Max:       TargetChange{Passed: state.VO2MaxPassed, Before: record.VO2MaxTarget},
		WeightsDay:   state.Day(),
	}

	if state.HIITPassed {
		v := progression.Adjust(float64(record.HIITTarget), gap, streak, progression.KindTime)
		next.HIITTarget = max(int(v), minHIITTarget)
	}
	if state.VO2MaxPassed {
		v := progression.Adjust(record.VO2MaxTarget, gap, streak, progression.KindSpeed)
		next.VO2MaxTarget = max(v, minVO2MaxTarget)
	}
	sum.HIIT.After = float64(next.HIITTarget)
	sum.VO2Max.After = next.VO2MaxTarget

	day := state.Day()
	if next.WeightsByDay[day] == nil {
		next.WeightsByDay[day] = map[string]float64{}
	}
	for _, res := range state.WeightsResults {
		change := store.WeightChange{Exercise: res.Exercise, Passed: res.Passed, Before: res.Entered, After: res.Weight}
		// Failed results already carry their penalty.
		if res.Passed && res.Weight > 0 {
			change.After = progression.Adjust(res.Weight, gap, streak, progression.KindWeight)
			next.WeightsByDay[day][res.Exercise] = change.After
		}
		sum.Weights = append(sum.Weights, change)
	}

	if newStreak >= progression.RestTriggerStreak && !progression.RestWindowActive(record.RestUntil, now) {
		until := now.Add(progression.RestWindow)
		next.RestUntil = &until
		sum.RestEntered = true
	}
	if progression.RealRestTaken(gap) {
		sum.RestCleared = record.RestUntil != nil
		sum.RestEntered = false
		next.RestUntil = nil
	}
	sum.RestUntil = next.RestUntil

	last := now
	next.LastWorkout = &last
	next.ConsecutiveDays = newStreak
	return next, sum
}
