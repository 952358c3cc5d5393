package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gitlab.com/tradeforge/multistrat/models"
)

func closedTrade(strategy models.StrategyName, pnl float64, exit time.Time) models.SimulatedTrade {
	return models.SimulatedTrade{
		Strategy:   strategy,
		EntryPrice: decimal.NewFromInt(100),
		Quantity:   decimal.NewFromInt(1),
		ExitTime:   exit,
		Pnl:        decimal.NewFromFloat(pnl),
		PnlPercent: decimal.NewFromFloat(pnl),
	}
}

func TestCalculateTradeStatistics(t *testing.T) {
	stats := NewStatsService()
	exit := testNow()

	result := &models.BacktestResult{
		Trades: []models.SimulatedTrade{
			closedTrade(models.StrategyTrendFollowing, 30, exit),
			closedTrade(models.StrategyTrendFollowing, 10, exit),
			closedTrade(models.StrategyMeanReversion, -20, exit),
			closedTrade(models.StrategyMeanReversion, 0, exit),
		},
	}
	stats.CalculateTradeStatistics(result)

	assert.Equal(t, 4, result.TotalTrades)
	assert.Equal(t, 2, result.WinningTrades)
	// Break-even trades count as losses.
	assert.Equal(t, 2, result.LosingTrades)
	assert.True(t, result.WinRate.Equal(decimal.NewFromInt(50)), "win rate %s", result.WinRate)
	assert.True(t, result.AverageWin.Equal(decimal.NewFromInt(20)), "avg win %s", result.AverageWin)
	assert.True(t, result.AverageLoss.Equal(decimal.NewFromInt(10)), "avg loss %s", result.AverageLoss)
	assert.True(t, result.ProfitFactor.Equal(decimal.NewFromInt(2)), "profit factor %s", result.ProfitFactor)
}

func TestCalculateTradeStatisticsEmpty(t *testing.T) {
	stats := NewStatsService()
	result := &models.BacktestResult{}
	stats.CalculateTradeStatistics(result)

	assert.Equal(t, 0, result.TotalTrades)
	assert.True(t, result.WinRate.IsZero())
	assert.True(t, result.ProfitFactor.IsZero())
}

func TestSharpeRatioFlatCurve(t *testing.T) {
	stats := NewStatsService()
	result := &models.BacktestResult{
		EquityCurve: []decimal.Decimal{
			decimal.NewFromInt(10000),
			decimal.NewFromInt(10000),
			decimal.NewFromInt(10000),
		},
	}
	stats.CalculateSharpeRatio(result)
	assert.True(t, result.SharpeRatio.IsZero())
}

func TestSharpeRatioShortCurve(t *testing.T) {
	stats := NewStatsService()
	result := &models.BacktestResult{
		EquityCurve: []decimal.Decimal{decimal.NewFromInt(10000)},
	}
	stats.CalculateSharpeRatio(result)
	assert.True(t, result.SharpeRatio.IsZero())
}

func TestSharpeRatioVolatileCurve(t *testing.T) {
	stats := NewStatsService()
	result := &models.BacktestResult{
		EquityCurve: []decimal.Decimal{
			decimal.NewFromInt(10000),
			decimal.NewFromInt(10100),
			decimal.NewFromInt(10050),
			decimal.NewFromInt(10200),
		},
	}
	stats.CalculateSharpeRatio(result)
	// Annualization scales mean and stddev by the same factor, so the
	// ratio stays mean over population stddev of the step returns.
	assert.True(t, result.SharpeRatio.Equal(decimal.NewFromFloat(0.79)), "sharpe %s", result.SharpeRatio)
}

func TestStrategyPerformanceBreakdown(t *testing.T) {
	stats := NewStatsService()
	exit := testNow()

	result := &models.BacktestResult{
		Trades: []models.SimulatedTrade{
			closedTrade(models.StrategyTrendFollowing, 30, exit),
			closedTrade(models.StrategyTrendFollowing, -10, exit),
			closedTrade(models.StrategyMeanReversion, 5, exit),
		},
	}
	stats.CalculateStrategyPerformance(result)

	assert.Len(t, result.StrategyPerformance, 2)

	tf := result.StrategyPerformance[models.StrategyTrendFollowing]
	assert.Equal(t, 2, tf.Trades)
	assert.True(t, tf.TotalPnl.Equal(decimal.NewFromInt(20)))
	assert.True(t, tf.WinRate.Equal(decimal.NewFromInt(50)))
	assert.True(t, tf.AverageReturn.Equal(decimal.NewFromInt(10)))

	mr := result.StrategyPerformance[models.StrategyMeanReversion]
	assert.Equal(t, 1, mr.Trades)
	assert.True(t, mr.WinRate.Equal(decimal.NewFromInt(100)))
}

func TestMonthlyReturnsBucketByExitMonth(t *testing.T) {
	stats := NewStatsService()
	march := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	april := time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC)

	result := &models.BacktestResult{
		Trades: []models.SimulatedTrade{
			closedTrade(models.StrategyTrendFollowing, 30, march),
			closedTrade(models.StrategyMeanReversion, -10, march),
			closedTrade(models.StrategyTrendFollowing, 5, april),
		},
	}
	stats.CalculateMonthlyReturns(result)

	assert.Len(t, result.MonthlyReturns, 2)
	assert.Equal(t, 2, result.MonthlyReturns["2024-03"].Trades)
	assert.Equal(t, 1, result.MonthlyReturns["2024-04"].Trades)
	assert.True(t, result.MonthlyReturns["2024-03"].TotalPnl.Equal(decimal.NewFromInt(20)))
}
