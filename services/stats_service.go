package services

import (
	"github.com/shopspring/decimal"
	"gitlab.com/tradeforge/multistrat/helpers"
	"gitlab.com/tradeforge/multistrat/models"
)

// StatsService computes the derived statistics of a finished backtest
// run. All methods mutate the result in place.
type StatsService struct{}

func NewStatsService() StatsService {
	return StatsService{}
}

// CalculateTradeStatistics fills the trade counters, the win rate, the
// average win and loss and the profit factor. A zero-trade run leaves
// everything at zero.
func (ss *StatsService) CalculateTradeStatistics(result *models.BacktestResult) {
	result.TotalTrades = len(result.Trades)
	if result.TotalTrades == 0 {
		return
	}

	totalWin := decimal.Zero
	totalLoss := decimal.Zero
	for i := range result.Trades {
		trade := &result.Trades[i]
		if trade.Win() {
			result.WinningTrades++
			totalWin = totalWin.Add(trade.Pnl)
		} else {
			result.LosingTrades++
			totalLoss = totalLoss.Add(trade.Pnl.Abs())
		}
	}

	result.WinRate = helpers.DivPercent(decimal.NewFromInt(int64(result.WinningTrades)), decimal.NewFromInt(int64(result.TotalTrades))).Mul(helpers.Hundred)

	if result.WinningTrades > 0 {
		result.AverageWin = helpers.DivPercent(totalWin, decimal.NewFromInt(int64(result.WinningTrades)))
	}
	if result.LosingTrades > 0 {
		result.AverageLoss = helpers.DivPercent(totalLoss, decimal.NewFromInt(int64(result.LosingTrades)))
	}
	if totalLoss.IsPositive() {
		result.ProfitFactor = helpers.DivScore(totalWin, totalLoss)
	}
}

// CalculateSharpeRatio divides the annualized mean step return by the
// annualized population standard deviation, assuming 252 trading
// periods. Both sides carry the same sqrt(252) factor, so the ratio
// reduces to mean over stddev at score precision. A flat or too-short
// equity curve scores zero.
func (ss *StatsService) CalculateSharpeRatio(result *models.BacktestResult) {
	curve := result.EquityCurve
	if len(curve) < 2 {
		result.SharpeRatio = decimal.Zero
		return
	}

	returns := make([]decimal.Decimal, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		if !curve[i-1].IsPositive() {
			continue
		}
		returns = append(returns, helpers.DivRatio(curve[i].Sub(curve[i-1]), curve[i-1]))
	}
	if len(returns) < 2 {
		result.SharpeRatio = decimal.Zero
		return
	}

	count := decimal.NewFromInt(int64(len(returns)))
	sum := decimal.Zero
	for _, r := range returns {
		sum = sum.Add(r)
	}
	mean := helpers.DivRatio(sum, count)

	variance := decimal.Zero
	for _, r := range returns {
		deviation := r.Sub(mean)
		variance = variance.Add(deviation.Mul(deviation))
	}
	variance = helpers.DivRatio(variance, count)
	stdDev := helpers.Sqrt(variance)

	if stdDev.IsZero() {
		result.SharpeRatio = decimal.Zero
		return
	}

	result.SharpeRatio = helpers.DivScore(mean.Mul(helpers.Sqrt252), stdDev.Mul(helpers.Sqrt252))
}

// CalculateStrategyPerformance buckets closed trades per originating
// strategy.
func (ss *StatsService) CalculateStrategyPerformance(result *models.BacktestResult) {
	result.StrategyPerformance = make(map[models.StrategyName]models.PerformanceBreakdown)

	grouped := make(map[models.StrategyName][]*models.SimulatedTrade)
	for i := range result.Trades {
		trade := &result.Trades[i]
		grouped[trade.Strategy] = append(grouped[trade.Strategy], trade)
	}

	for strategy, trades := range grouped {
		result.StrategyPerformance[strategy] = breakdown(trades)
	}
}

// CalculateMonthlyReturns buckets closed trades by the calendar month of
// their exit.
func (ss *StatsService) CalculateMonthlyReturns(result *models.BacktestResult) {
	result.MonthlyReturns = make(map[string]models.PerformanceBreakdown)

	grouped := make(map[string][]*models.SimulatedTrade)
	for i := range result.Trades {
		trade := &result.Trades[i]
		month := trade.ExitTime.Format("2006-01")
		grouped[month] = append(grouped[month], trade)
	}

	for month, trades := range grouped {
		result.MonthlyReturns[month] = breakdown(trades)
	}
}

func breakdown(trades []*models.SimulatedTrade) models.PerformanceBreakdown {
	wins := 0
	totalPnl := decimal.Zero
	totalPercent := decimal.Zero
	for _, trade := range trades {
		if trade.Win() {
			wins++
		}
		totalPnl = totalPnl.Add(trade.Pnl)
		totalPercent = totalPercent.Add(trade.PnlPercent)
	}

	count := decimal.NewFromInt(int64(len(trades)))
	return models.PerformanceBreakdown{
		Trades:        len(trades),
		TotalPnl:      totalPnl,
		WinRate:       helpers.DivPercent(decimal.NewFromInt(int64(wins)), count).Mul(helpers.Hundred),
		AverageReturn: helpers.DivPercent(totalPercent, count),
	}
}
