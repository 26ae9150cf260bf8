package progression

import (
	"math"

	"github.com/shopspring/decimal"
)

// Kind selects the rounding grid for a quantity.
type Kind int

const (
	KindTime   Kind = iota // whole seconds
	KindWeight             // 0.5 steps
	KindSpeed              // 0.1 steps
)

func (k Kind) String() string {
	switch k {
	case KindTime:
		return "time"
	case KindWeight:
		return "weight"
	case KindSpeed:
		return "speed"
	}
	return "unknown"
}

// stepsPerUnit is the number of grid steps in one whole unit for each kind.
var stepsPerUnit = map[Kind]decimal.Decimal{
	KindTime:   decimal.NewFromInt(1),
	KindWeight: decimal.NewFromInt(2),
	KindSpeed:  decimal.NewFromInt(10),
}

// RoundTime rounds up to the next whole second.
func RoundTime(x float64) float64 { return Round(x, KindTime) }

// RoundWeight rounds up to the next 0.5.
func RoundWeight(x float64) float64 { return Round(x, KindWeight) }

// RoundSpeed rounds up to the next 0.1.
func RoundSpeed(x float64) float64 { return Round(x, KindSpeed) }

// Round rounds x up onto the grid of kind. The arithmetic starts from the
// shortest decimal form of x, so values already on the grid come back
// unchanged. NaN, infinities and negative inputs yield 0.
func Round(x float64, kind Kind) float64 {
	if !usable(x) {
		return 0
	}
	return roundDecimal(decimal.NewFromFloat(x), kind)
}

func roundDecimal(d decimal.Decimal, kind Kind) float64 {
	if d.Sign() <= 0 {
		return 0
	}
	steps, ok := stepsPerUnit[kind]
	if !ok {
		steps = stepsPerUnit[KindTime]
	}
	return d.Mul(steps).Ceil().Div(steps).InexactFloat64()
}

func usable(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0) && x >= 0
}
