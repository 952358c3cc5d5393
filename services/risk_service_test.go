package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gitlab.com/tradeforge/multistrat/config"
	"gitlab.com/tradeforge/multistrat/models"
)

func TestCalculatePositionSizeFromRisk(t *testing.T) {
	// 1% of 10000 = 100 at risk, stop 1000 below entry: 0.1 units. The
	// value cap is lifted so the pure risk formula is visible.
	risk := NewRiskService(config.RiskConfig{
		RiskPerTrade:            0.01,
		MaxPositionValue:        1.0,
		MinRewardRisk:           1.5,
		MaxPositionsPerStrategy: 2,
	})

	signal := buySignal(models.StrategyTrendFollowing, 50000, 49000, 0.75)
	size := risk.CalculatePositionSize(signal, decimal.NewFromInt(10000))

	assert.True(t, size.Equal(decimal.NewFromFloat(0.1)), "got %s", size)
}

func TestCalculatePositionSizeValueCap(t *testing.T) {
	// A tight stop would size huge; the 10% position value cap binds
	// instead: 1000 / 50000 = 0.02 units.
	risk := NewRiskService(config.RiskConfig{
		RiskPerTrade:            0.01,
		MaxPositionValue:        0.1,
		MinRewardRisk:           1.5,
		MaxPositionsPerStrategy: 2,
	})

	signal := buySignal(models.StrategyTrendFollowing, 50000, 49900, 0.75)
	size := risk.CalculatePositionSize(signal, decimal.NewFromInt(10000))

	assert.True(t, size.Equal(decimal.NewFromFloat(0.02)), "got %s", size)
}

func TestCalculatePositionSizeDegenerateSignals(t *testing.T) {
	risk := NewRiskService(config.RiskConfig{
		RiskPerTrade:            0.01,
		MaxPositionValue:        0.1,
		MinRewardRisk:           1.5,
		MaxPositionsPerStrategy: 2,
	})
	balance := decimal.NewFromInt(10000)

	noStop := models.Signal{Type: models.SignalTypeBuy, Price: decimal.NewFromInt(100)}
	assert.True(t, risk.CalculatePositionSize(noStop, balance).IsZero())

	stopAtPrice := buySignal(models.StrategyTrendFollowing, 100, 100, 0.75)
	assert.True(t, risk.CalculatePositionSize(stopAtPrice, balance).IsZero())

	zeroPrice := buySignal(models.StrategyTrendFollowing, 0, 1, 0.75)
	assert.True(t, risk.CalculatePositionSize(zeroPrice, balance).IsZero())
}

func TestValidateSignalRewardRisk(t *testing.T) {
	risk := NewRiskService(config.RiskConfig{
		RiskPerTrade:            0.01,
		MaxPositionValue:        0.1,
		MinRewardRisk:           1.5,
		MaxPositionsPerStrategy: 2,
	})

	good := buySignal(models.StrategyTrendFollowing, 100, 98, 0.75)
	good.TakeProfit = models.DecimalPtr(decimal.NewFromInt(104))
	assert.True(t, risk.ValidateSignal(good, 0))

	poor := buySignal(models.StrategyTrendFollowing, 100, 98, 0.75)
	poor.TakeProfit = models.DecimalPtr(decimal.NewFromInt(102))
	assert.False(t, risk.ValidateSignal(poor, 0))

	// No target skips the reward:risk gate entirely.
	noTarget := buySignal(models.StrategyTrendFollowing, 100, 98, 0.75)
	assert.True(t, risk.ValidateSignal(noTarget, 0))
}

func TestValidateSignalRequiresStop(t *testing.T) {
	risk := NewRiskService(config.RiskConfig{
		RiskPerTrade:            0.01,
		MaxPositionValue:        0.1,
		MinRewardRisk:           1.5,
		MaxPositionsPerStrategy: 2,
	})

	noStop := models.Signal{Type: models.SignalTypeBuy, Price: decimal.NewFromInt(100)}
	assert.False(t, risk.ValidateSignal(noStop, 0))
}

func TestValidateSignalStrategyPositionCap(t *testing.T) {
	risk := NewRiskService(config.RiskConfig{
		RiskPerTrade:            0.01,
		MaxPositionValue:        0.1,
		MinRewardRisk:           1.5,
		MaxPositionsPerStrategy: 2,
	})

	signal := buySignal(models.StrategyTrendFollowing, 100, 98, 0.75)
	assert.True(t, risk.ValidateSignal(signal, 1))
	assert.False(t, risk.ValidateSignal(signal, 2))
}
