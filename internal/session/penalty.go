package session

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/abhisek/nodaysoff/internal/catalog"
	"github.com/abhisek/nodaysoff/internal/progression"
	"github.com/abhisek/nodaysoff/internal/store"
)

var penaltyFactor = decimal.RequireFromString("0.99")

// PenalizedWeight is the weight stored after a failed attempt at w:
// 1% off, rounded up to the next half unit. Zero stays zero.
func PenalizedWeight(w float64) float64 {
	if !(w > 0) {
		return 0
	}
	return progression.RoundWeight(decimal.NewFromFloat(w).Mul(penaltyFactor).InexactFloat64())
}

// Penalty describes one immediate weights penalty.
type Penalty struct {
	At       time.Time
	Day      catalog.DayKey
	Exercise string
	Before   float64 // weight attempted
	After    float64 // weight now stored
}

// Event converts p to its history form.
func (p Penalty) Event() store.PenaltyEvent {
	return store.PenaltyEvent{
		Timestamp: p.At,
		Day:       p.Day,
		Exercise:  p.Exercise,
		Before:    p.Before,
		After:     p.After,
	}
}
