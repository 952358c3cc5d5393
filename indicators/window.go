package indicators

import (
	"github.com/shopspring/decimal"
	"gitlab.com/tradeforge/multistrat/helpers"
	"gitlab.com/tradeforge/multistrat/models"
)

// Window helpers shared by the strategy analyzers. They tolerate
// windows shorter than n the same way the analyzers' source data does:
// HighestHigh and LowestLow shrink to the available bars, AverageVolume
// keeps n as the divisor.

// HighestHigh returns the maximum high over the trailing n bars.
func HighestHigh(bars []models.Bar, n int) decimal.Decimal {
	start := len(bars) - n
	if start < 0 {
		start = 0
	}

	highest := decimal.Zero
	for i := start; i < len(bars); i++ {
		if bars[i].High.GreaterThan(highest) {
			highest = bars[i].High
		}
	}
	return highest
}

// LowestLow returns the minimum low over the trailing n bars.
func LowestLow(bars []models.Bar, n int) decimal.Decimal {
	start := len(bars) - n
	if start < 0 {
		start = 0
	}
	if start >= len(bars) {
		return decimal.Zero
	}

	lowest := bars[start].Low
	for i := start + 1; i < len(bars); i++ {
		if bars[i].Low.LessThan(lowest) {
			lowest = bars[i].Low
		}
	}
	return lowest
}

// AverageVolume sums the trailing n volumes and divides by n.
func AverageVolume(bars []models.Bar, n int) decimal.Decimal {
	start := len(bars) - n
	if start < 0 {
		start = 0
	}

	sum := decimal.Zero
	for i := start; i < len(bars); i++ {
		sum = sum.Add(bars[i].Volume)
	}
	return helpers.DivRatio(sum, decimal.NewFromInt(int64(n)))
}

// MeanClose averages the close over the trailing n bars.
func MeanClose(bars []models.Bar, n int) decimal.Decimal {
	start := len(bars) - n
	if start < 0 {
		start = 0
	}

	sum := decimal.Zero
	for i := start; i < len(bars); i++ {
		sum = sum.Add(bars[i].Close)
	}
	return helpers.DivRatio(sum, decimal.NewFromInt(int64(n)))
}
