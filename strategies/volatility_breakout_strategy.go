package strategies

import (
	"sort"

	"github.com/shopspring/decimal"
	"gitlab.com/tradeforge/multistrat/config"
	"gitlab.com/tradeforge/multistrat/indicators"
	"gitlab.com/tradeforge/multistrat/models"
)

// VolatilityBreakoutStrategy waits for a compressed-volatility regime
// (current ATR below a percentile of its own history) and buys the
// break above the consolidation high on expanding volume.
type VolatilityBreakoutStrategy struct {
	params config.VolatilityBreakoutParams
}

func NewVolatilityBreakoutStrategy(params config.VolatilityBreakoutParams) VolatilityBreakoutStrategy {
	return VolatilityBreakoutStrategy{params: params}
}

func (s *VolatilityBreakoutStrategy) Name() models.StrategyName {
	return models.StrategyVolatilityBreakout
}

func (s *VolatilityBreakoutStrategy) Analyze(window []models.Bar) models.Signal {
	if len(window) < 50 {
		return models.NewHoldSignal(s.Name(), "Insufficient data", lastTimestamp(window))
	}

	current := window[len(window)-1]
	atrPeriod := s.params.AtrPeriod

	currentATR, ok := indicators.ATR(window[len(window)-atrPeriod-1:], atrPeriod)
	if !ok {
		return models.NewHoldSignal(s.Name(), "Insufficient data for ATR", current.Timestamp)
	}

	var historicalATRs []decimal.Decimal
	for i := atrPeriod + 1; i < len(window); i++ {
		if atr, ok := indicators.ATR(window[i-atrPeriod-1:i], atrPeriod); ok {
			historicalATRs = append(historicalATRs, atr)
		}
	}
	if len(historicalATRs) == 0 {
		return models.NewHoldSignal(s.Name(), "Insufficient ATR history", current.Timestamp)
	}

	sort.Slice(historicalATRs, func(i, j int) bool {
		return historicalATRs[i].LessThan(historicalATRs[j])
	})
	percentileIndex := int(float64(len(historicalATRs)) * s.params.CompressionPercentile)
	if percentileIndex >= len(historicalATRs) {
		percentileIndex = len(historicalATRs) - 1
	}
	compressionThreshold := historicalATRs[percentileIndex]

	if currentATR.GreaterThanOrEqual(compressionThreshold) {
		return models.NewHoldSignal(s.Name(), "No volatility compression", current.Timestamp)
	}

	// Consolidation levels exclude the breakout bar itself, otherwise
	// the close could never clear the high.
	consolidation := window[:len(window)-1]
	consolidationHigh := indicators.HighestHigh(consolidation, 14)
	consolidationLow := indicators.LowestLow(consolidation, 14)
	avgVolume := indicators.AverageVolume(window, 20)

	volumeBreakout := current.Volume.GreaterThan(avgVolume.Mul(decimal.NewFromFloat(s.params.VolumeMultiplier)))

	if current.Close.GreaterThan(consolidationHigh) && volumeBreakout {
		risk := current.Close.Sub(consolidationLow)
		return models.Signal{
			Type:       models.SignalTypeBuy,
			Strategy:   s.Name(),
			Price:      current.Close,
			StopLoss:   models.DecimalPtr(consolidationLow),
			TakeProfit: models.DecimalPtr(current.Close.Add(risk.Mul(decimal.NewFromFloat(s.params.RewardRiskRatio)))),
			Confidence: models.Float64Ptr(0.80),
			Timestamp:  current.Timestamp,
			Reason:     "Volatility compression breakout with volume",
		}
	}

	return models.NewHoldSignal(s.Name(), "No volatility breakout", current.Timestamp)
}
