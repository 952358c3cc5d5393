package main

import (
	"os"

	"github.com/urfave/cli/v2"
	"gitlab.com/tradeforge/multistrat/bot"
	"gitlab.com/tradeforge/multistrat/helpers"
)

func main() {
	backtester := bot.Backtester{}
	trader := bot.Trader{}

	app := &cli.App{
		Name:  "multistrat",
		Usage: "multi-strategy trading engine and backtester",
		Commands: []*cli.Command{
			{
				Name:  "backtest",
				Usage: "run a backtest over historical bars",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Value: "conf.yaml",
						Usage: "path to the YAML configuration file",
					},
					&cli.IntFlag{
						Name:  "bars",
						Value: 1000,
						Usage: "number of bars to backtest over",
					},
					&cli.StringFlag{
						Name:  "strategies",
						Usage: "comma separated strategy names, overrides the config's enabled set",
					},
				},
				Action: backtester.Run,
			},
			{
				Name:  "trade",
				Usage: "run the live evaluation loop",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Value: "conf.yaml",
						Usage: "path to the YAML configuration file",
					},
					&cli.StringFlag{
						Name:  "strategies",
						Usage: "comma separated strategy names, overrides the config's enabled set",
					},
				},
				Action: trader.Run,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		helpers.Logger.Fatalln(err)
	}
}
