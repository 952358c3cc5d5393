package models

import (
	"github.com/shopspring/decimal"
)

// PerformanceBreakdown aggregates closed trades sharing a key, either a
// strategy identifier or a calendar month.
type PerformanceBreakdown struct {
	Trades        int
	TotalPnl      decimal.Decimal
	WinRate       decimal.Decimal
	AverageReturn decimal.Decimal
}

// BacktestResult is the aggregate of one full simulation run. It is
// owned by the run that produced it and never mutated afterwards.
type BacktestResult struct {
	InitialCapital      decimal.Decimal
	FinalCapital        decimal.Decimal
	TotalReturn         decimal.Decimal
	TotalReturnPercent  decimal.Decimal
	MaxDrawdown         decimal.Decimal
	SharpeRatio         decimal.Decimal
	WinRate             decimal.Decimal
	TotalTrades         int
	WinningTrades       int
	LosingTrades        int
	AverageWin          decimal.Decimal
	AverageLoss         decimal.Decimal
	ProfitFactor        decimal.Decimal
	Trades              []SimulatedTrade
	EquityCurve         []decimal.Decimal
	MonthlyReturns      map[string]PerformanceBreakdown
	StrategyPerformance map[StrategyName]PerformanceBreakdown
}
