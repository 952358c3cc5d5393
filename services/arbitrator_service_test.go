package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gitlab.com/tradeforge/multistrat/models"
)

func TestSelectBestSignalPicksHighestConfidence(t *testing.T) {
	arbitrator := NewArbitratorService()

	signals := []models.Signal{
		{Type: models.SignalTypeBuy, Strategy: models.StrategyTrendFollowing, Confidence: models.Float64Ptr(0.75)},
		{Type: models.SignalTypeBuy, Strategy: models.StrategyVolatilityBreakout, Confidence: models.Float64Ptr(0.80)},
		{Type: models.SignalTypeSell, Strategy: models.StrategyMeanReversion, Confidence: models.Float64Ptr(0.65)},
	}

	best := arbitrator.SelectBestSignal(signals)
	assert.NotNil(t, best)
	assert.Equal(t, models.StrategyVolatilityBreakout, best.Strategy)
}

func TestSelectBestSignalIgnoresHoldsAndMissingConfidence(t *testing.T) {
	arbitrator := NewArbitratorService()

	signals := []models.Signal{
		models.NewHoldSignal(models.StrategyTrendFollowing, "nothing", testNow()),
		{Type: models.SignalTypeBuy, Strategy: models.StrategyVolumeSpikeReversal},
		{Type: models.SignalTypeSell, Strategy: models.StrategyMeanReversion, Confidence: models.Float64Ptr(0.65)},
	}

	best := arbitrator.SelectBestSignal(signals)
	assert.NotNil(t, best)
	assert.Equal(t, models.StrategyMeanReversion, best.Strategy)
	assert.Equal(t, models.SignalTypeSell, best.Type)
}

func TestSelectBestSignalTieKeepsFirst(t *testing.T) {
	arbitrator := NewArbitratorService()

	signals := []models.Signal{
		{Type: models.SignalTypeBuy, Strategy: models.StrategyTrendFollowing, Confidence: models.Float64Ptr(0.75)},
		{Type: models.SignalTypeBuy, Strategy: models.StrategyVolatilityBreakout, Confidence: models.Float64Ptr(0.75)},
	}

	best := arbitrator.SelectBestSignal(signals)
	assert.NotNil(t, best)
	assert.Equal(t, models.StrategyTrendFollowing, best.Strategy)
}

func TestSelectBestSignalAllHold(t *testing.T) {
	arbitrator := NewArbitratorService()

	signals := []models.Signal{
		models.NewHoldSignal(models.StrategyTrendFollowing, "nothing", testNow()),
		models.NewHoldSignal(models.StrategyMeanReversion, "nothing", testNow()),
	}

	assert.Nil(t, arbitrator.SelectBestSignal(signals))
	assert.Nil(t, arbitrator.SelectBestSignal(nil))
}

func buySignal(strategy models.StrategyName, price, stop float64, confidence float64) models.Signal {
	return models.Signal{
		Type:       models.SignalTypeBuy,
		Strategy:   strategy,
		Price:      decimal.NewFromFloat(price),
		StopLoss:   models.DecimalPtr(decimal.NewFromFloat(stop)),
		Confidence: models.Float64Ptr(confidence),
		Timestamp:  testNow(),
	}
}
