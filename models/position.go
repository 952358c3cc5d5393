package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is a live (or paper) trade tracked through the storage port.
// The backtest core keeps its own in-memory SimulatedTrade records and
// never touches positions.
type Position struct {
	ID         uint
	Symbol     string
	Strategy   StrategyName
	EntryPrice decimal.Decimal
	Quantity   decimal.Decimal
	StopLoss   decimal.Decimal
	TakeProfit *decimal.Decimal
	EntryTime  time.Time
	ExitTime   *time.Time
	ExitPrice  *decimal.Decimal
	Profit     *decimal.Decimal
	Open       bool
}

// UnrealizedPnl values an open position against the given price.
func (p *Position) UnrealizedPnl(currentPrice decimal.Decimal) decimal.Decimal {
	return currentPrice.Sub(p.EntryPrice).Mul(p.Quantity)
}

// AccountState is the account snapshot handed to the live evaluation
// tick: spendable balance plus the open positions the risk checks need.
type AccountState struct {
	Balance       decimal.Decimal
	OpenPositions []Position
}

// OpenByStrategy counts open positions originated by one strategy.
func (a *AccountState) OpenByStrategy(strategy StrategyName) int {
	count := 0
	for _, position := range a.OpenPositions {
		if position.Strategy == strategy {
			count++
		}
	}
	return count
}
