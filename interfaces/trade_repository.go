package interfaces

import (
	"gitlab.com/tradeforge/multistrat/models"
)

type (
	// TradeRepository is the storage port for live positions. The
	// backtest core never writes here; only the trading engine and its
	// risk checks consume it.
	TradeRepository interface {
		Save(position *models.Position) error
		FindOpen() ([]models.Position, error)
		FindClosed() ([]models.Position, error)
	}
)
