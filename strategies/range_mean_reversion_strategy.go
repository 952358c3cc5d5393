package strategies

import (
	"github.com/shopspring/decimal"
	"gitlab.com/tradeforge/multistrat/config"
	"gitlab.com/tradeforge/multistrat/helpers"
	"gitlab.com/tradeforge/multistrat/indicators"
	"gitlab.com/tradeforge/multistrat/models"
)

// RangeMeanReversionStrategy fades Bollinger band touches, but only
// inside an established range (5%-15% of mean price) and only on
// below-average volume.
type RangeMeanReversionStrategy struct {
	params config.MeanReversionParams
}

func NewRangeMeanReversionStrategy(params config.MeanReversionParams) RangeMeanReversionStrategy {
	return RangeMeanReversionStrategy{params: params}
}

func (s *RangeMeanReversionStrategy) Name() models.StrategyName {
	return models.StrategyMeanReversion
}

func (s *RangeMeanReversionStrategy) Analyze(window []models.Bar) models.Signal {
	required := s.params.RangePeriod
	if s.params.BollingerPeriod > required {
		required = s.params.BollingerPeriod
	}
	if len(window) < required {
		return models.NewHoldSignal(s.Name(), "Insufficient data", lastTimestamp(window))
	}

	current := window[len(window)-1]

	rangeHigh := indicators.HighestHigh(window, s.params.RangePeriod)
	rangeLow := indicators.LowestLow(window, s.params.RangePeriod)
	meanPrice := indicators.MeanClose(window, s.params.RangePeriod)

	rangeSize := rangeHigh.Sub(rangeLow)
	rangePercent := helpers.DivRatio(rangeSize, meanPrice).Mul(helpers.Hundred)

	inRange := rangePercent.GreaterThan(decimal.NewFromInt(5)) &&
		rangePercent.LessThan(decimal.NewFromInt(15))
	if !inRange {
		return models.NewHoldSignal(s.Name(), "No mean reversion opportunity", current.Timestamp)
	}

	bands, ok := indicators.Bollinger(models.Closes(window), s.params.BollingerPeriod, s.params.BollingerStd)
	if !ok {
		return models.NewHoldSignal(s.Name(), "Insufficient data for Bollinger Bands", current.Timestamp)
	}

	avgVolume := indicators.AverageVolume(window, 20)
	lowVolume := current.Volume.LessThan(avgVolume)

	if current.Close.GreaterThanOrEqual(bands.Upper) && lowVolume {
		return models.Signal{
			Type:       models.SignalTypeSell,
			Strategy:   s.Name(),
			Price:      current.Close,
			StopLoss:   models.DecimalPtr(rangeHigh.Mul(decimal.NewFromFloat(1.02))),
			TakeProfit: models.DecimalPtr(bands.Middle),
			Confidence: models.Float64Ptr(0.65),
			Timestamp:  current.Timestamp,
			Reason:     "Price at upper Bollinger Band in range",
		}
	}

	if current.Close.LessThanOrEqual(bands.Lower) && lowVolume {
		return models.Signal{
			Type:       models.SignalTypeBuy,
			Strategy:   s.Name(),
			Price:      current.Close,
			StopLoss:   models.DecimalPtr(rangeLow.Mul(decimal.NewFromFloat(0.98))),
			TakeProfit: models.DecimalPtr(bands.Middle),
			Confidence: models.Float64Ptr(0.65),
			Timestamp:  current.Timestamp,
			Reason:     "Price at lower Bollinger Band in range",
		}
	}

	return models.NewHoldSignal(s.Name(), "No mean reversion opportunity", current.Timestamp)
}
