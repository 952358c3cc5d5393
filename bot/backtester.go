package bot

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
	"gitlab.com/tradeforge/multistrat/config"
	"gitlab.com/tradeforge/multistrat/helpers"
	"gitlab.com/tradeforge/multistrat/services"
)

type Backtester struct {
}

func init() {
	cwd, _ := os.Getwd()
	_ = godotenv.Load(cwd + "/conf.env")
}

// Run loads the configuration, materializes history from the selected
// provider and executes one full backtest, printing the report tables
// to stdout.
func (bt *Backtester) Run(c *cli.Context) error {
	helpers.Logger.Infoln("🖖🏻 Backtester started")

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

	bars, err := provider.GetKlines(cfg.Symbol, cfg.Interval, c.Int("bars"))
	if err != nil {
		return err
	}

	risk := services.NewRiskService(cfg.Risk)
	backtest := services.NewBacktestService(enabled, risk, cfg.Backtest)

	result, err := backtest.Run(bars, decimal.NewFromFloat(cfg.Backtest.InitialCapital))
	if err != nil {
		return err
	}

	report := services.NewReportService(os.Stdout)
	report.Render(result)
	return nil
}
