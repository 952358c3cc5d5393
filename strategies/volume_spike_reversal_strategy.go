package strategies

import (
	"github.com/shopspring/decimal"
	"gitlab.com/tradeforge/multistrat/config"
	"gitlab.com/tradeforge/multistrat/indicators"
	"gitlab.com/tradeforge/multistrat/models"
)

// VolumeSpikeReversalStrategy fades exhaustion bars: an outsized-volume
// candle with a long rejection wick on one side.
type VolumeSpikeReversalStrategy struct {
	params config.VolumeSpikeReversalParams
}

func NewVolumeSpikeReversalStrategy(params config.VolumeSpikeReversalParams) VolumeSpikeReversalStrategy {
	return VolumeSpikeReversalStrategy{params: params}
}

func (s *VolumeSpikeReversalStrategy) Name() models.StrategyName {
	return models.StrategyVolumeSpikeReversal
}

func (s *VolumeSpikeReversalStrategy) Analyze(window []models.Bar) models.Signal {
	if len(window) < 20 {
		return models.NewHoldSignal(s.Name(), "Insufficient data", lastTimestamp(window))
	}

	current := window[len(window)-1]
	avgVolume := indicators.AverageVolume(window, 20)

	volumeSpike := current.Volume.GreaterThan(avgVolume.Mul(decimal.NewFromFloat(s.params.VolumeMultiplier)))
	if !volumeSpike {
		return models.NewHoldSignal(s.Name(), "No volume spike reversal", current.Timestamp)
	}

	candleRange := current.High.Sub(current.Low)
	wickThreshold := candleRange.Mul(decimal.NewFromFloat(s.params.WickRatio))

	bodyHigh := current.Close
	if current.Open.GreaterThan(bodyHigh) {
		bodyHigh = current.Open
	}
	bodyLow := current.Close
	if current.Open.LessThan(bodyLow) {
		bodyLow = current.Open
	}

	upperWick := current.High.Sub(bodyHigh)
	if upperWick.GreaterThan(wickThreshold) {
		return models.Signal{
			Type:       models.SignalTypeSell,
			Strategy:   s.Name(),
			Price:      current.Close,
			StopLoss:   models.DecimalPtr(current.High.Mul(decimal.NewFromFloat(1.01))),
			TakeProfit: models.DecimalPtr(current.Close.Sub(candleRange)),
			Confidence: models.Float64Ptr(0.60),
			Timestamp:  current.Timestamp,
			Reason:     "Volume spike with upper wick rejection",
		}
	}

	lowerWick := bodyLow.Sub(current.Low)
	if lowerWick.GreaterThan(wickThreshold) {
		return models.Signal{
			Type:       models.SignalTypeBuy,
			Strategy:   s.Name(),
			Price:      current.Close,
			StopLoss:   models.DecimalPtr(current.Low.Mul(decimal.NewFromFloat(0.99))),
			TakeProfit: models.DecimalPtr(current.Close.Add(candleRange)),
			Confidence: models.Float64Ptr(0.60),
			Timestamp:  current.Timestamp,
			Reason:     "Volume spike with lower wick rejection",
		}
	}

	return models.NewHoldSignal(s.Name(), "No volume spike reversal", current.Timestamp)
}
