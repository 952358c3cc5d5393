package strategies

import (
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/tradeforge/multistrat/config"
	"gitlab.com/tradeforge/multistrat/indicators"
	"gitlab.com/tradeforge/multistrat/models"
)

// TrendFollowingStrategy buys breakouts confirmed by trend alignment
// and volume, and exits when price loses the short SMA.
type TrendFollowingStrategy struct {
	params config.TrendFollowingParams
}

func NewTrendFollowingStrategy(params config.TrendFollowingParams) TrendFollowingStrategy {
	return TrendFollowingStrategy{params: params}
}

func (s *TrendFollowingStrategy) Name() models.StrategyName {
	return models.StrategyTrendFollowing
}

func (s *TrendFollowingStrategy) Analyze(window []models.Bar) models.Signal {
	required := s.params.SmaLong
	if s.params.BreakoutPeriod > required {
		required = s.params.BreakoutPeriod
	}
	if len(window) < required {
		return models.NewHoldSignal(s.Name(), "Insufficient data", lastTimestamp(window))
	}

	current := window[len(window)-1]
	closes := models.Closes(window)

	smaShort, _ := indicators.SMA(closes, s.params.SmaShort)
	smaLong, _ := indicators.SMA(closes, s.params.SmaLong)
	atr, ok := indicators.ATR(window, 14)
	if !ok {
		return models.NewHoldSignal(s.Name(), "Insufficient data for ATR", current.Timestamp)
	}

	breakoutHigh := indicators.HighestHigh(window, s.params.BreakoutPeriod)
	avgVolume := indicators.AverageVolume(window, 20)

	priceAboveSMA := current.Close.GreaterThan(smaShort)
	trendFilter := smaShort.GreaterThan(smaLong)
	breakout := current.Close.GreaterThanOrEqual(breakoutHigh)
	volumeConfirm := current.Volume.GreaterThan(avgVolume.Mul(decimal.NewFromFloat(s.params.VolumeMultiplier)))

	if priceAboveSMA && trendFilter && breakout && volumeConfirm {
		atrMultiplier := decimal.NewFromFloat(s.params.AtrMultiplier)
		stopDistance := atr.Mul(atrMultiplier)
		return models.Signal{
			Type:       models.SignalTypeBuy,
			Strategy:   s.Name(),
			Price:      current.Close,
			StopLoss:   models.DecimalPtr(current.Close.Sub(stopDistance)),
			TakeProfit: models.DecimalPtr(current.Close.Add(stopDistance.Mul(decimal.NewFromInt(2)))),
			Confidence: models.Float64Ptr(0.75),
			Timestamp:  current.Timestamp,
			Reason:     "Trend + Breakout + Volume confirmation",
		}
	}

	if current.Close.LessThan(smaShort) {
		return models.Signal{
			Type:       models.SignalTypeSell,
			Strategy:   s.Name(),
			Price:      current.Close,
			Confidence: models.Float64Ptr(0.70),
			Timestamp:  current.Timestamp,
			Reason:     "Price below short SMA - trend exit",
		}
	}

	return models.NewHoldSignal(s.Name(), "No trend signal", current.Timestamp)
}

func lastTimestamp(window []models.Bar) time.Time {
	if len(window) > 0 {
		return window[len(window)-1].Timestamp
	}
	return time.Time{}
}
