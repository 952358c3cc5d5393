package services

import (
	"io"
	"sort"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"gitlab.com/tradeforge/multistrat/models"
	"gonum.org/v1/gonum/stat"
)

// ReportService renders a finished backtest as console tables.
type ReportService struct {
	writer io.Writer
}

func NewReportService(writer io.Writer) ReportService {
	return ReportService{writer: writer}
}

// Render writes the summary, per-strategy and monthly tables.
func (rs *ReportService) Render(result *models.BacktestResult) {
	rs.renderSummary(result)
	rs.renderStrategies(result)
	rs.renderMonthly(result)
}

func (rs *ReportService) renderSummary(result *models.BacktestResult) {
	t := table.NewWriter()
	t.SetOutputMirror(rs.writer)
	t.SetTitle("Backtest Summary")
	t.AppendRows([]table.Row{
		{"Initial capital", result.InitialCapital.StringFixed(2)},
		{"Final capital", result.FinalCapital.StringFixed(2)},
		{"Total return", result.TotalReturn.StringFixed(2)},
		{"Total return %", result.TotalReturnPercent.StringFixed(2) + "%"},
		{"Max drawdown", result.MaxDrawdown.StringFixed(2) + "%"},
		{"Sharpe ratio", result.SharpeRatio.StringFixed(2)},
		{"Trades", result.TotalTrades},
		{"Winners / losers", strconv.Itoa(result.WinningTrades) + " / " + strconv.Itoa(result.LosingTrades)},
		{"Win rate", result.WinRate.StringFixed(2) + "%"},
		{"Average win", result.AverageWin.StringFixed(2)},
		{"Average loss", result.AverageLoss.StringFixed(2)},
		{"Profit factor", result.ProfitFactor.StringFixed(2)},
		{"Expectancy", expectancy(result)},
		{"PnL std dev", pnlStdDev(result)},
	})
	t.Render()
}

func (rs *ReportService) renderStrategies(result *models.BacktestResult) {
	if len(result.StrategyPerformance) == 0 {
		return
	}

	names := make([]string, 0, len(result.StrategyPerformance))
	for name := range result.StrategyPerformance {
		names = append(names, string(name))
	}
	sort.Strings(names)

	t := table.NewWriter()
	t.SetOutputMirror(rs.writer)
	t.SetTitle("Per Strategy")
	t.AppendHeader(table.Row{"Strategy", "Trades", "Total PnL", "Win Rate", "Avg Return"})
	for _, name := range names {
		b := result.StrategyPerformance[models.StrategyName(name)]
		t.AppendRow(table.Row{name, b.Trades, b.TotalPnl.StringFixed(2), b.WinRate.StringFixed(2) + "%", b.AverageReturn.StringFixed(2) + "%"})
	}
	t.Render()
}

func (rs *ReportService) renderMonthly(result *models.BacktestResult) {
	if len(result.MonthlyReturns) == 0 {
		return
	}

	months := make([]string, 0, len(result.MonthlyReturns))
	for month := range result.MonthlyReturns {
		months = append(months, month)
	}
	sort.Strings(months)

	t := table.NewWriter()
	t.SetOutputMirror(rs.writer)
	t.SetTitle("Monthly Returns")
	t.AppendHeader(table.Row{"Month", "Trades", "Total PnL", "Win Rate", "Avg Return"})
	for _, month := range months {
		b := result.MonthlyReturns[month]
		t.AppendRow(table.Row{month, b.Trades, b.TotalPnl.StringFixed(2), b.WinRate.StringFixed(2) + "%", b.AverageReturn.StringFixed(2) + "%"})
	}
	t.Render()
}

// expectancy is the mean PnL per trade. Display only, so float math is
// fine here.
func expectancy(result *models.BacktestResult) string {
	pnls := tradePnls(result)
	if len(pnls) == 0 {
		return "n/a"
	}
	return strconv.FormatFloat(stat.Mean(pnls, nil), 'f', 2, 64)
}

func pnlStdDev(result *models.BacktestResult) string {
	pnls := tradePnls(result)
	if len(pnls) < 2 {
		return "n/a"
	}
	return strconv.FormatFloat(stat.StdDev(pnls, nil), 'f', 2, 64)
}

func tradePnls(result *models.BacktestResult) []float64 {
	pnls := make([]float64, 0, len(result.Trades))
	for i := range result.Trades {
		pnls = append(pnls, result.Trades[i].Pnl.InexactFloat64())
	}
	return pnls
}
