package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Exit reasons recorded on closed trades.
const (
	ExitReasonStopLoss      = "stop loss"
	ExitReasonTakeProfit    = "take profit"
	ExitReasonSignal        = "signal exit"
	ExitReasonEndOfBacktest = "end of backtest"
)

// SimulatedTrade is one round trip inside a backtest run. It is created
// open, and closed exactly once: by a matching SELL signal, a stop or
// target breach, or forced closure at the end of the series.
type SimulatedTrade struct {
	Strategy   StrategyName
	EntryTime  time.Time
	EntryPrice decimal.Decimal
	Quantity   decimal.Decimal
	StopLoss   decimal.Decimal
	TakeProfit *decimal.Decimal
	ExitTime   time.Time
	ExitPrice  decimal.Decimal
	ExitReason string
	Pnl        decimal.Decimal
	PnlPercent decimal.Decimal
}

// Win reports whether the realized PnL is strictly positive.
func (t *SimulatedTrade) Win() bool {
	return t.Pnl.IsPositive()
}
