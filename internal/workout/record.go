// Package workout defines the durable per-user workout record.
package workout

import (
	"math"
	"time"

	"github.com/abhisek/nodaysoff/internal/catalog"
)

// Baselines used for a user with no stored record.
const (
	DefaultHIITTarget   = 30
	DefaultVO2MaxTarget = 10.0
)

// Record is the durable progression state for one user.
type Record struct {
	HIITTarget      int                                   // seconds per HIIT exercise
	VO2MaxTarget    float64                               // treadmill speed
	WeightsByDay    map[catalog.DayKey]map[string]float64 // 0 or absent means not yet attempted
	LastWorkout     *time.Time                            // nil until the first completed session
	ConsecutiveDays int
	RestUntil       *time.Time // set while a recommended rest window is active
}

// Default returns the baseline record for a first-ever user.
func Default() Record {
	r := Record{
		HIITTarget:   DefaultHIITTarget,
		VO2MaxTarget: DefaultVO2MaxTarget,
		WeightsByDay: make(map[catalog.DayKey]map[string]float64, 4),
	}
	for _, d := range catalog.Days() {
		r.WeightsByDay[d] = map[string]float64{}
	}
	return r
}

// Weight returns the stored weight for an exercise, or 0.
func (r Record) Weight(day catalog.DayKey, exercise string) float64 {
	return r.WeightsByDay[day][exercise]
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	out := r
	out.WeightsByDay = make(map[catalog.DayKey]map[string]float64, len(r.WeightsByDay))
	for day, weights := range r.WeightsByDay {
		m := make(map[string]float64, len(weights))
		for k, v := range weights {
			m[k] = v
		}
		out.WeightsByDay[day] = m
	}
	out.LastWorkout = cloneTime(r.LastWorkout)
	out.RestUntil = cloneTime(r.RestUntil)
	return out
}

// Normalize repairs values a stored record should never hold. It returns true
// if anything was changed.
func (r *Record) Normalize() bool {
	changed := false
	if r.HIITTarget <= 0 {
		r.HIITTarget = DefaultHIITTarget
		changed = true
	}
	if !(r.VO2MaxTarget > 0) || math.IsInf(r.VO2MaxTarget, 0) {
		r.VO2MaxTarget = DefaultVO2MaxTarget
		changed = true
	}
	if r.ConsecutiveDays < 0 {
		r.ConsecutiveDays = 0
		changed = true
	}
	if r.LastWorkout != nil && r.LastWorkout.IsZero() {
		r.LastWorkout = nil
		changed = true
	}
	if r.LastWorkout == nil && r.ConsecutiveDays != 0 {
		r.ConsecutiveDays = 0
		changed = true
	}
	if r.RestUntil != nil && r.RestUntil.IsZero() {
		r.RestUntil = nil
		changed = true
	}
	if r.WeightsByDay == nil {
		r.WeightsByDay = make(map[catalog.DayKey]map[string]float64, 4)
	}
	for _, d := range catalog.Days() {
		if r.WeightsByDay[d] == nil {
			r.WeightsByDay[d] = map[string]float64{}
		}
	}
	for _, weights := range r.WeightsByDay {
		for name, w := range weights {
			if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
				delete(weights, name)
				changed = true
			}
		}
	}
	return changed
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
