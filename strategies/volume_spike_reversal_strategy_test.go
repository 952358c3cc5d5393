package strategies

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gitlab.com/tradeforge/multistrat/config"
	"gitlab.com/tradeforge/multistrat/models"
)

func spikeParams() config.VolumeSpikeReversalParams {
	return config.VolumeSpikeReversalParams{
		Enabled:          true,
		VolumeMultiplier: 2.0,
		WickRatio:        0.6,
	}
}

func quietWindow(n int) []models.Bar {
	var window []models.Bar
	for i := 0; i < n; i++ {
		window = append(window, testBar(i, 100, 101, 99, 100, 1000))
	}
	return window
}

func TestVolumeSpikeSellOnUpperWickRejection(t *testing.T) {
	// Final bar: huge volume, long upper wick (8 of a 9.5 range), body
	// closing near the low.
	window := quietWindow(19)
	window = append(window, testBar(19, 100, 108, 98.5, 99, 5000))

	strategy := NewVolumeSpikeReversalStrategy(spikeParams())
	signal := strategy.Analyze(window)

	assert.Equal(t, models.SignalTypeSell, signal.Type)
	assert.Equal(t, models.StrategyVolumeSpikeReversal, signal.Strategy)
	assert.Equal(t, 0.60, *signal.Confidence)
	assert.True(t, signal.StopLoss.Equal(decimal.NewFromFloat(109.08)), "stop %s", signal.StopLoss)
	assert.True(t, signal.TakeProfit.Equal(decimal.NewFromFloat(89.5)), "target %s", signal.TakeProfit)
}

func TestVolumeSpikeBuyOnLowerWickRejection(t *testing.T) {
	window := quietWindow(19)
	window = append(window, testBar(19, 100, 101.5, 92, 101, 5000))

	strategy := NewVolumeSpikeReversalStrategy(spikeParams())
	signal := strategy.Analyze(window)

	assert.Equal(t, models.SignalTypeBuy, signal.Type)
	assert.Equal(t, 0.60, *signal.Confidence)
	assert.True(t, signal.StopLoss.Equal(decimal.NewFromFloat(91.08)), "stop %s", signal.StopLoss)
	assert.True(t, signal.TakeProfit.Equal(decimal.NewFromFloat(110.5)), "target %s", signal.TakeProfit)
}

func TestVolumeSpikeHoldWithoutSpike(t *testing.T) {
	window := quietWindow(19)
	window = append(window, testBar(19, 100, 108, 98.5, 99, 1000))

	strategy := NewVolumeSpikeReversalStrategy(spikeParams())
	signal := strategy.Analyze(window)

	assert.Equal(t, models.SignalTypeHold, signal.Type)
	assert.Equal(t, "No volume spike reversal", signal.Reason)
}

func TestVolumeSpikeHoldOnShortWindow(t *testing.T) {
	strategy := NewVolumeSpikeReversalStrategy(spikeParams())
	signal := strategy.Analyze(quietWindow(19))

	assert.Equal(t, models.SignalTypeHold, signal.Type)
	assert.Equal(t, "Insufficient data", signal.Reason)
}
