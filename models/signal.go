package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SignalType define signal direction
type SignalType string

// StrategyName define the originating strategy
type StrategyName string

// Global enums
const (
	SignalTypeBuy  SignalType = "BUY"
	SignalTypeSell SignalType = "SELL"
	SignalTypeHold SignalType = "HOLD"

	StrategyTrendFollowing      StrategyName = "TREND_FOLLOWING"
	StrategyVolatilityBreakout  StrategyName = "VOLATILITY_BREAKOUT"
	StrategyMeanReversion       StrategyName = "MEAN_REVERSION"
	StrategyVolumeSpikeReversal StrategyName = "VOLUME_SPIKE_REVERSAL"
)

// Signal is a strategy's directional recommendation for a single
// evaluation tick. StopLoss, TakeProfit and Confidence are optional; a
// non-HOLD signal without a stop loss is sizable to zero only, the
// analyzers may still emit it and validation happens downstream.
type Signal struct {
	Type       SignalType
	Strategy   StrategyName
	Price      decimal.Decimal
	StopLoss   *decimal.Decimal
	TakeProfit *decimal.Decimal
	Confidence *float64
	Timestamp  time.Time
	Reason     string
}

// NewHoldSignal returns a HOLD with no confidence, carrying only the
// reason the strategy stood aside.
func NewHoldSignal(strategy StrategyName, reason string, timestamp time.Time) Signal {
	return Signal{
		Type:      SignalTypeHold,
		Strategy:  strategy,
		Reason:    reason,
		Timestamp: timestamp,
	}
}

// DecimalPtr is a literal-friendly pointer helper for optional levels.
func DecimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

// Float64Ptr is a literal-friendly pointer helper for confidences.
func Float64Ptr(f float64) *float64 {
	return &f
}
