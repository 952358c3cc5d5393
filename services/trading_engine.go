package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/tradeforge/multistrat/config"
	"gitlab.com/tradeforge/multistrat/helpers"
	"gitlab.com/tradeforge/multistrat/indicators"
	"gitlab.com/tradeforge/multistrat/interfaces"
	"gitlab.com/tradeforge/multistrat/models"
)

// Trailing stops follow price at this many ATR(14) units below the
// close. Stops only ever move up.
const (
	trailingAtrPeriod     = 14
	trailingAtrMultiplier = 1.5
)

// TradingEngine drives the paper/live loop: fetch bars, evaluate the
// strategy set, and turn the winning signal into position changes. It
// reuses the same analyzers, arbitrator and risk checks as the
// backtest, so a signal means the same thing in both modes.
type TradingEngine struct {
	strategies   []interfaces.Strategy
	arbitrator   ArbitratorService
	risk         RiskService
	positions    PositionService
	exchange     interfaces.ExchangeService
	symbol       string
	interval     string
	quoteAsset   string
	lookback     int
	maxPositions int
}

func NewTradingEngine(strategies []interfaces.Strategy, risk RiskService, positions PositionService,
	exchange interfaces.ExchangeService, cfg *config.Config, quoteAsset string) TradingEngine {
	return TradingEngine{
		strategies:   strategies,
		arbitrator:   NewArbitratorService(),
		risk:         risk,
		positions:    positions,
		exchange:     exchange,
		symbol:       cfg.Symbol,
		interval:     cfg.Interval,
		quoteAsset:   quoteAsset,
		lookback:     cfg.Backtest.LookbackPeriod,
		maxPositions: cfg.Backtest.MaxPositions,
	}
}

// Evaluate runs every analyzer over the window, arbitrates, and vets
// the winner against the account's risk limits. Returns nil when
// nothing actionable survives.
func (te *TradingEngine) Evaluate(window []models.Bar, account models.AccountState) *models.Signal {
	signals := make([]models.Signal, 0, len(te.strategies))
	for _, strategy := range te.strategies {
		signals = append(signals, strategy.Analyze(window))
	}

	best := te.arbitrator.SelectBestSignal(signals)
	if best == nil {
		return nil
	}
	if best.Type == models.SignalTypeBuy && !te.risk.ValidateSignal(*best, account.OpenByStrategy(best.Strategy)) {
		return nil
	}
	return best
}

// RunCycle executes one evaluation tick against live data: exits first,
// then trailing stop maintenance, then at most one entry.
func (te *TradingEngine) RunCycle() error {
	window, err := te.exchange.GetKlines(te.symbol, te.interval, te.lookback+1)
	if err != nil {
		return fmt.Errorf("fetch klines: %w", err)
	}
	if len(window) <= te.lookback {
		return fmt.Errorf("need more than %d bars, got %d", te.lookback, len(window))
	}

	current := window[len(window)-1]

	open, err := te.positions.OpenPositions()
	if err != nil {
		return fmt.Errorf("load open positions: %w", err)
	}

	if _, err := te.positions.CheckStopLossAndTakeProfit(open, current.Close, current.Timestamp); err != nil {
		return fmt.Errorf("check exits: %w", err)
	}

	open, err = te.positions.OpenPositions()
	if err != nil {
		return fmt.Errorf("load open positions: %w", err)
	}

	te.updateTrailingStops(window, open)

	balance, err := te.exchange.GetAccountBalance(te.quoteAsset)
	if err != nil {
		return fmt.Errorf("fetch balance: %w", err)
	}

	account := models.AccountState{Balance: balance, OpenPositions: open}
	signal := te.Evaluate(window, account)
	if signal == nil {
		return nil
	}

	return te.processSignal(*signal, account, current)
}

func (te *TradingEngine) processSignal(signal models.Signal, account models.AccountState, current models.Bar) error {
	switch signal.Type {
	case models.SignalTypeBuy:
		if len(account.OpenPositions) >= te.maxPositions {
			helpers.Logger.Infoln(fmt.Sprintf("Skipping %s BUY, position limit reached", signal.Strategy))
			return nil
		}
		quantity := te.risk.CalculatePositionSize(signal, account.Balance)
		if !quantity.IsPositive() {
			return nil
		}
		_, err := te.positions.OpenPosition(te.symbol, signal, quantity)
		return err

	case models.SignalTypeSell:
		for i := range account.OpenPositions {
			position := &account.OpenPositions[i]
			if position.Strategy != signal.Strategy {
				continue
			}
			if err := te.positions.ClosePosition(position, current.Close, current.Timestamp); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

// updateTrailingStops raises the stop of every profitable open position
// to close minus 1.5 ATR, when that is above the current stop.
func (te *TradingEngine) updateTrailingStops(window []models.Bar, open []models.Position) {
	atr, ok := indicators.ATR(window, trailingAtrPeriod)
	if !ok {
		return
	}

	current := window[len(window)-1]
	candidate := current.Close.Sub(atr.Mul(decimal.NewFromFloat(trailingAtrMultiplier)))

	for i := range open {
		position := &open[i]
		if !current.Close.GreaterThan(position.EntryPrice) {
			continue
		}
		if err := te.positions.RaiseStopLoss(position, candidate); err != nil {
			helpers.Logger.Errorln(fmt.Sprintf("Failed to raise stop on %s: %v", position.Symbol, err))
		}
	}
}

// Run loops RunCycle on the bar interval until the stop channel closes.
func (te *TradingEngine) Run(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := te.RunCycle(); err != nil {
			helpers.Logger.Errorln(fmt.Sprintf("Trading cycle failed: %v", err))
		}
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}
