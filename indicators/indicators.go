package indicators

import (
	"github.com/shopspring/decimal"
	"gitlab.com/tradeforge/multistrat/helpers"
	"gitlab.com/tradeforge/multistrat/models"
)

// Pure indicator math over decimal series. Every function returns
// ok=false instead of failing when the input is shorter than the
// required period; callers treat that as HOLD, never as zero.

// SMA is the arithmetic mean of the last period values.
func SMA(series []decimal.Decimal, period int) (decimal.Decimal, bool) {
	if period < 1 || len(series) < period {
		return decimal.Zero, false
	}

	sum := decimal.Zero
	for i := len(series) - period; i < len(series); i++ {
		sum = sum.Add(series[i])
	}
	return helpers.DivRatio(sum, decimal.NewFromInt(int64(period))), true
}

// EMA seeds with the SMA of the first period values and applies the
// recurrence ema = price*k + ema*(1-k), k = 2/(period+1).
func EMA(series []decimal.Decimal, period int) (decimal.Decimal, bool) {
	if period < 1 || len(series) < period {
		return decimal.Zero, false
	}

	multiplier := decimal.NewFromFloat(2.0 / float64(period+1))
	ema, _ := SMA(series[:period], period)

	for i := period; i < len(series); i++ {
		ema = series[i].Mul(multiplier).Add(ema.Mul(decimal.NewFromInt(1).Sub(multiplier)))
	}
	return ema, true
}

// ATR averages the true range over period. It needs period+1 bars
// because the true range looks at the previous close.
func ATR(bars []models.Bar, period int) (decimal.Decimal, bool) {
	if period < 1 || len(bars) < period+1 {
		return decimal.Zero, false
	}

	trueRanges := make([]decimal.Decimal, 0, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		high := bars[i].High
		low := bars[i].Low
		prevClose := bars[i-1].Close

		tr := high.Sub(low)
		if hc := high.Sub(prevClose).Abs(); hc.GreaterThan(tr) {
			tr = hc
		}
		if lc := low.Sub(prevClose).Abs(); lc.GreaterThan(tr) {
			tr = lc
		}
		trueRanges = append(trueRanges, tr)
	}

	return SMA(trueRanges, period)
}

// BollingerBands holds the three band levels. Upper >= Middle >= Lower
// for any valid input.
type BollingerBands struct {
	Upper  decimal.Decimal
	Middle decimal.Decimal
	Lower  decimal.Decimal
}

// Bollinger computes bands around the SMA using the population standard
// deviation of the same trailing window.
func Bollinger(series []decimal.Decimal, period int, stdDevMultiplier float64) (BollingerBands, bool) {
	sma, ok := SMA(series, period)
	if !ok {
		return BollingerBands{}, false
	}

	variance := decimal.Zero
	for i := len(series) - period; i < len(series); i++ {
		diff := series[i].Sub(sma)
		variance = variance.Add(diff.Mul(diff))
	}
	std := helpers.Sqrt(helpers.DivRatio(variance, decimal.NewFromInt(int64(period))))

	offset := std.Mul(decimal.NewFromFloat(stdDevMultiplier))
	return BollingerBands{
		Upper:  sma.Add(offset),
		Middle: sma,
		Lower:  sma.Sub(offset),
	}, true
}

// RSI is the simple (non-smoothed) Wilder variant over the first period
// deltas of the series. Output is always within [0, 100]; a window with
// no losses reads 100.
func RSI(series []decimal.Decimal, period int) (decimal.Decimal, bool) {
	if period < 1 || len(series) < period+1 {
		return decimal.Zero, false
	}

	avgGain := decimal.Zero
	avgLoss := decimal.Zero
	for i := 1; i <= period; i++ {
		change := series[i].Sub(series[i-1])
		if change.IsPositive() {
			avgGain = avgGain.Add(change)
		} else {
			avgLoss = avgLoss.Add(change.Abs())
		}
	}

	periodDec := decimal.NewFromInt(int64(period))
	avgGain = helpers.DivRatio(avgGain, periodDec)
	avgLoss = helpers.DivRatio(avgLoss, periodDec)

	if avgLoss.IsZero() {
		return helpers.Hundred, true
	}

	rs := helpers.DivRatio(avgGain, avgLoss)
	return helpers.Hundred.Sub(helpers.DivRatio(helpers.Hundred, decimal.NewFromInt(1).Add(rs))), true
}
