package progression

import (
	"github.com/shopspring/decimal"
)

var (
	streakGain = decimal.RequireFromString("1.01")
	dailyDecay = decimal.RequireFromString("0.99")
)

// decayPrecision bounds the digits kept while compounding the decay factor.
const decayPrecision = 30

// Adjust returns the next baseline for a quantity.
//
//   - first-ever session: unchanged
//   - one-day gap: +1% when streakBefore >= 1, otherwise unchanged
//   - two-day gap: unchanged
//   - three days or more: compounding -1% for every day beyond the first rest day
//
// Same-day repeats and zero values are left as they are. NaN, infinite and
// negative inputs collapse to 0.
func Adjust(current float64, gap Gap, streakBefore int, kind Kind) float64 {
	if !usable(current) {
		return 0
	}
	if current == 0 || gap.FirstEver {
		return current
	}

	switch {
	case gap.Days == 1:
		if streakBefore < 1 {
			return current
		}
		return roundDecimal(decimal.NewFromFloat(current).Mul(streakGain), kind)
	case gap.Days >= 3:
		factor := decayFactor(gap.Days - 2)
		return roundDecimal(decimal.NewFromFloat(current).Mul(factor), kind)
	default:
		return current
	}
}

// decayFactor returns 0.99^n.
func decayFactor(n int) decimal.Decimal {
	f := decimal.NewFromInt(1)
	for i := 0; i < n; i++ {
		f = f.Mul(dailyDecay).Truncate(decayPrecision)
		if f.IsZero() {
			break
		}
	}
	return f
}

// Delta describes how a session would move a quantity, for status display.
type Delta int

const (
	DeltaNone Delta = iota
	DeltaGain
	DeltaDecay
)

// Preview returns the direction Adjust would move a positive value at gap.
func Preview(gap Gap, streakBefore int) Delta {
	switch {
	case gap.FirstEver:
		return DeltaNone
	case gap.Days == 1 && streakBefore >= 1:
		return DeltaGain
	case gap.Days >= 3:
		return DeltaDecay
	}
	return DeltaNone
}
