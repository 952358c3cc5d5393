package helpers

import (
	"math"

	"github.com/shopspring/decimal"
)

// Every division in the engine goes through one of these helpers so the
// whole run uses a single (scale, rounding) policy. Rounding is
// half-up, the same as the exchange statements we reconcile against.
const (
	ScaleRatio   int32 = 8
	ScalePercent int32 = 4
	ScaleScore   int32 = 2
)

var (
	Hundred = decimal.NewFromInt(100)
	Sqrt252 = decimal.NewFromFloat(math.Sqrt(252))
)

// DivRatio divides at ratio precision (8 fractional digits).
func DivRatio(a, b decimal.Decimal) decimal.Decimal {
	return a.DivRound(b, ScaleRatio)
}

// DivPercent divides at percentage precision (4 fractional digits).
func DivPercent(a, b decimal.Decimal) decimal.Decimal {
	return a.DivRound(b, ScalePercent)
}

// DivScore divides at score precision (2 fractional digits), used for
// Sharpe and reward:risk ratios.
func DivScore(a, b decimal.Decimal) decimal.Decimal {
	return a.DivRound(b, ScaleScore)
}

// Sqrt takes the square root through float64, the only non-decimal step
// in the engine. math.Sqrt is IEEE 754 correctly rounded, so the result
// is identical on every platform.
func Sqrt(d decimal.Decimal) decimal.Decimal {
	return decimal.NewFromFloat(math.Sqrt(d.InexactFloat64()))
}
