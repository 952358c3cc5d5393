package services

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gitlab.com/tradeforge/multistrat/config"
	"gitlab.com/tradeforge/multistrat/helpers"
	"gitlab.com/tradeforge/multistrat/interfaces"
	"gitlab.com/tradeforge/multistrat/models"
)

// BacktestService walks a historical bar series tick by tick, opens and
// closes simulated trades and aggregates performance statistics. One
// run owns its entire mutable state; independent runs can execute in
// parallel.
type BacktestService struct {
	strategies     []interfaces.Strategy
	arbitrator     ArbitratorService
	risk           RiskService
	stats          StatsService
	lookbackPeriod int
	maxPositions   int
	commission     decimal.Decimal
	slippage       decimal.Decimal
}

func NewBacktestService(strategies []interfaces.Strategy, risk RiskService, backtestCfg config.BacktestConfig) BacktestService {
	return BacktestService{
		strategies:     strategies,
		arbitrator:     NewArbitratorService(),
		risk:           risk,
		stats:          NewStatsService(),
		lookbackPeriod: backtestCfg.LookbackPeriod,
		maxPositions:   backtestCfg.MaxPositions,
		commission:     decimal.NewFromFloat(backtestCfg.Commission),
		slippage:       decimal.NewFromFloat(backtestCfg.Slippage),
	}
}

// backtestRun is the per-run mutable state. Nothing outside the run
// touches it, and the loop is strictly sequential: step i+1 sees the
// fully updated state from step i.
type backtestRun struct {
	service    *BacktestService
	cash       decimal.Decimal
	openTrades []*models.SimulatedTrade
	closed     []models.SimulatedTrade
}

// Run executes a full backtest over the given bars. The series must be
// longer than the lookback period; empty or short input is reported
// before the loop starts.
func (bs *BacktestService) Run(bars []models.Bar, initialCapital decimal.Decimal) (*models.BacktestResult, error) {
	if len(bars) <= bs.lookbackPeriod {
		return nil, fmt.Errorf("need more than %d bars, got %d", bs.lookbackPeriod, len(bars))
	}
	if !initialCapital.IsPositive() {
		return nil, fmt.Errorf("initial capital must be positive")
	}

	helpers.Logger.Infoln(fmt.Sprintf("Starting backtest with %d data points", len(bars)))

	run := &backtestRun{
		service: bs,
		cash:    initialCapital,
	}

	equityCurve := make([]decimal.Decimal, 0, len(bars)-bs.lookbackPeriod)
	peakEquity := initialCapital
	maxDrawdown := decimal.Zero

	for i := bs.lookbackPeriod; i < len(bars); i++ {
		window := bars[i-bs.lookbackPeriod : i+1]
		current := bars[i]

		run.checkStopsAndTargets(current)

		signals := bs.generateSignals(window)
		bestSignal := bs.arbitrator.SelectBestSignal(signals)

		if bestSignal != nil && bestSignal.Type == models.SignalTypeBuy {
			if len(run.openTrades) < bs.maxPositions {
				run.openPosition(*bestSignal, current)
			}
		} else if bestSignal != nil && bestSignal.Type == models.SignalTypeSell {
			run.closeMatchingPositions(*bestSignal, current)
		}

		equity := run.equity(current.Close)
		equityCurve = append(equityCurve, equity)

		if equity.GreaterThan(peakEquity) {
			peakEquity = equity
		}
		drawdown := helpers.DivPercent(peakEquity.Sub(equity), peakEquity)
		if drawdown.GreaterThan(maxDrawdown) {
			maxDrawdown = drawdown
		}
	}

	// Force-close whatever is still open at the last bar.
	lastBar := bars[len(bars)-1]
	for _, trade := range run.openTrades {
		run.closeTrade(trade, lastBar, models.ExitReasonEndOfBacktest)
	}
	run.openTrades = nil

	result := &models.BacktestResult{
		InitialCapital: initialCapital,
		FinalCapital:   run.cash,
		TotalReturn:    run.cash.Sub(initialCapital),
		MaxDrawdown:    maxDrawdown.Mul(helpers.Hundred),
		Trades:         run.closed,
		EquityCurve:    equityCurve,
	}
	result.TotalReturnPercent = helpers.DivPercent(result.TotalReturn, initialCapital).Mul(helpers.Hundred)

	bs.stats.CalculateTradeStatistics(result)
	bs.stats.CalculateSharpeRatio(result)
	bs.stats.CalculateStrategyPerformance(result)
	bs.stats.CalculateMonthlyReturns(result)

	helpers.Logger.Infoln(fmt.Sprintf("Backtest complete. Total return: %s%%", result.TotalReturnPercent))

	return result, nil
}

func (bs *BacktestService) generateSignals(window []models.Bar) []models.Signal {
	signals := make([]models.Signal, 0, len(bs.strategies))
	for _, strategy := range bs.strategies {
		signals = append(signals, strategy.Analyze(window))
	}
	return signals
}

// equity is cash plus the unrealized PnL of every open trade, valued at
// the raw close. This identity holds exactly at every step.
func (r *backtestRun) equity(currentClose decimal.Decimal) decimal.Decimal {
	equity := r.cash
	for _, trade := range r.openTrades {
		equity = equity.Add(currentClose.Sub(trade.EntryPrice).Mul(trade.Quantity))
	}
	return equity
}

// openPosition sizes the signal against current cash and records the
// trade. Cash only pays the entry commission here; principal stays in
// the equity identity through the unrealized PnL term.
func (r *backtestRun) openPosition(signal models.Signal, current models.Bar) {
	quantity := r.service.risk.CalculatePositionSize(signal, r.cash)
	if !quantity.IsPositive() {
		return
	}

	one := decimal.NewFromInt(1)
	entryPrice := current.Close.Mul(one.Add(r.service.slippage))
	entryCommission := entryPrice.Mul(quantity).Mul(r.service.commission)
	r.cash = r.cash.Sub(entryCommission)

	trade := &models.SimulatedTrade{
		Strategy:   signal.Strategy,
		EntryTime:  current.Timestamp,
		EntryPrice: entryPrice,
		Quantity:   quantity,
		StopLoss:   *signal.StopLoss,
		TakeProfit: signal.TakeProfit,
	}
	r.openTrades = append(r.openTrades, trade)
}

// checkStopsAndTargets closes every open trade whose stop or target the
// current bar crosses. The stop is checked first; the first matching
// condition wins.
func (r *backtestRun) checkStopsAndTargets(current models.Bar) {
	remaining := r.openTrades[:0]
	for _, trade := range r.openTrades {
		switch {
		case current.Close.LessThanOrEqual(trade.StopLoss):
			r.closeTrade(trade, current, models.ExitReasonStopLoss)
		case trade.TakeProfit != nil && current.Close.GreaterThanOrEqual(*trade.TakeProfit):
			r.closeTrade(trade, current, models.ExitReasonTakeProfit)
		default:
			remaining = append(remaining, trade)
		}
	}
	r.openTrades = remaining
}

// closeMatchingPositions closes every open trade originated by the
// selling strategy.
func (r *backtestRun) closeMatchingPositions(signal models.Signal, current models.Bar) {
	remaining := r.openTrades[:0]
	for _, trade := range r.openTrades {
		if trade.Strategy == signal.Strategy {
			r.closeTrade(trade, current, models.ExitReasonSignal)
		} else {
			remaining = append(remaining, trade)
		}
	}
	r.openTrades = remaining
}

// closeTrade realizes the PnL into cash, net of the exit commission,
// and moves the trade to the closed list. A trade is closed exactly
// once.
func (r *backtestRun) closeTrade(trade *models.SimulatedTrade, current models.Bar, reason string) {
	one := decimal.NewFromInt(1)
	exitPrice := current.Close.Mul(one.Sub(r.service.slippage))

	trade.ExitTime = current.Timestamp
	trade.ExitPrice = exitPrice
	trade.ExitReason = reason
	trade.Pnl = exitPrice.Sub(trade.EntryPrice).Mul(trade.Quantity)
	trade.PnlPercent = helpers.DivPercent(trade.Pnl, trade.EntryPrice.Mul(trade.Quantity)).Mul(helpers.Hundred)

	exitCommission := exitPrice.Mul(trade.Quantity).Mul(r.service.commission)
	r.cash = r.cash.Add(trade.Pnl).Sub(exitCommission)

	r.closed = append(r.closed, *trade)
}
