package strategies

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gitlab.com/tradeforge/multistrat/config"
	"gitlab.com/tradeforge/multistrat/models"
)

func trendParams() config.TrendFollowingParams {
	return config.TrendFollowingParams{
		Enabled:          true,
		SmaShort:         5,
		SmaLong:          20,
		BreakoutPeriod:   10,
		VolumeMultiplier: 1.5,
		AtrMultiplier:    1.5,
	}
}

func TestTrendFollowingBuyOnConfirmedBreakout(t *testing.T) {
	// Steady uptrend: bar i closes at 100+i with a tight fixed range, so
	// ATR(14) is exactly 2. The final bar closes on its high with five
	// times the usual volume.
	var window []models.Bar
	for i := 0; i < 25; i++ {
		c := 100.0 + float64(i)
		volume := 1000.0
		if i == 24 {
			volume = 5000
		}
		window = append(window, testBar(i, c-1, c, c-2, c, volume))
	}

	strategy := NewTrendFollowingStrategy(trendParams())
	signal := strategy.Analyze(window)

	assert.Equal(t, models.SignalTypeBuy, signal.Type)
	assert.Equal(t, models.StrategyTrendFollowing, signal.Strategy)
	assert.Equal(t, 0.75, *signal.Confidence)
	// Stop sits 1.5 ATR below the close, target twice the stop distance
	// above it.
	assert.True(t, signal.StopLoss.Equal(decimal.NewFromInt(121)), "stop %s", signal.StopLoss)
	assert.True(t, signal.TakeProfit.Equal(decimal.NewFromInt(130)), "target %s", signal.TakeProfit)
	assert.Equal(t, window[24].Timestamp, signal.Timestamp)
}

func TestTrendFollowingSellBelowShortSMA(t *testing.T) {
	var window []models.Bar
	for i := 0; i < 24; i++ {
		window = append(window, testBar(i, 100, 101, 99, 100, 1000))
	}
	window = append(window, testBar(24, 100, 100, 89, 90, 1000))

	strategy := NewTrendFollowingStrategy(trendParams())
	signal := strategy.Analyze(window)

	assert.Equal(t, models.SignalTypeSell, signal.Type)
	assert.Equal(t, 0.70, *signal.Confidence)
	assert.Nil(t, signal.StopLoss)
}

func TestTrendFollowingHoldWithoutVolumeConfirmation(t *testing.T) {
	// Same breakout shape but ordinary volume on the last bar.
	var window []models.Bar
	for i := 0; i < 25; i++ {
		c := 100.0 + float64(i)
		window = append(window, testBar(i, c-1, c, c-2, c, 1000))
	}

	strategy := NewTrendFollowingStrategy(trendParams())
	signal := strategy.Analyze(window)

	assert.Equal(t, models.SignalTypeHold, signal.Type)
}

func TestTrendFollowingHoldOnShortWindow(t *testing.T) {
	var window []models.Bar
	for i := 0; i < 10; i++ {
		window = append(window, testBar(i, 100, 101, 99, 100, 1000))
	}

	strategy := NewTrendFollowingStrategy(trendParams())
	signal := strategy.Analyze(window)

	assert.Equal(t, models.SignalTypeHold, signal.Type)
	assert.Equal(t, "Insufficient data", signal.Reason)
}
