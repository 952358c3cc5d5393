package bot

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"
	"gitlab.com/tradeforge/multistrat/config"
	"gitlab.com/tradeforge/multistrat/database"
	"gitlab.com/tradeforge/multistrat/helpers"
	"gitlab.com/tradeforge/multistrat/interfaces"
	"gitlab.com/tradeforge/multistrat/providers/binance"
	"gitlab.com/tradeforge/multistrat/providers/clickhouse"
	"gitlab.com/tradeforge/multistrat/providers/paper"
	"gitlab.com/tradeforge/multistrat/services"
	"gitlab.com/tradeforge/multistrat/strategies"
)

type Trader struct {
}

// Run starts the live evaluation loop: one trading cycle per bar
// interval until interrupted.
func (tr *Trader) Run(c *cli.Context) error {
	helpers.Logger.Infoln("🖖🏻 Trader started")

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	enabled, err := buildStrategies(c, cfg)
	if err != nil {
		return err
	}

	provider, err := selectProvider(cfg)
	if err != nil {
		return err
	}

	var repository interfaces.TradeRepository
	if cfg.Database.Enabled {
		dbService, err := database.NewDBService(cfg.Database.Host, cfg.Database.Port,
			cfg.Database.Name, cfg.Database.User, cfg.Database.Password)
		if err != nil {
			return err
		}
		repository = dbService
	} else {
		repository = database.NewMemoryRepository()
	}

	risk := services.NewRiskService(cfg.Risk)
	positions := services.NewPositionService(repository)
	engine := services.NewTradingEngine(enabled, risk, positions, provider, cfg, quoteAsset(cfg.Symbol))

	interval, err := cfg.IntervalDuration()
	if err != nil {
		return err
	}

	stop := make(chan struct{})
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupt
		helpers.Logger.Infoln("Shutting down")
		close(stop)
	}()

	engine.Run(interval, stop)
	return nil
}

// buildStrategies honors an explicit --strategies list, falling back to
// the config's enabled set. The resulting order is the arbitration
// tie-break order.
func buildStrategies(c *cli.Context, cfg *config.Config) ([]interfaces.Strategy, error) {
	list := c.String("strategies")
	if list == "" {
		enabled := strategies.EnabledStrategies(cfg)
		if len(enabled) == 0 {
			return nil, fmt.Errorf("no strategies enabled")
		}
		return enabled, nil
	}

	var enabled []interfaces.Strategy
	for _, name := range strings.Split(list, ",") {
		strategy, err := strategies.StrategyFactory(strings.TrimSpace(name), cfg)
		if err != nil {
			return nil, err
		}
		enabled = append(enabled, strategy)
	}
	return enabled, nil
}

// selectProvider wires the configured market data source.
func selectProvider(cfg *config.Config) (interfaces.ExchangeService, error) {
	switch cfg.Provider {
	case "paper":
		interval, err := cfg.IntervalDuration()
		if err != nil {
			return nil, err
		}
		return paper.NewPaperService(interval), nil
	case "binance":
		return binance.NewBinanceService(cfg.Binance.APIKey, cfg.Binance.APISecret), nil
	case "clickhouse":
		return clickhouse.NewClickHouseService(cfg)
	default:
		return nil, fmt.Errorf("%s is not a known provider", cfg.Provider)
	}
}

// quoteAsset guesses the quote side of a concatenated pair symbol.
func quoteAsset(symbol string) string {
	for _, quote := range []string{"USDT", "BUSD", "USDC", "BTC", "ETH", "EUR"} {
		if strings.HasSuffix(symbol, quote) && len(symbol) > len(quote) {
			return quote
		}
	}
	return "USDT"
}
