package interfaces

import (
	"github.com/shopspring/decimal"
	"gitlab.com/tradeforge/multistrat/models"
)

type (
	// ExchangeService supplies materialized bar history and account
	// balances. Implementations skip malformed records; the engine only
	// ever sees well-formed, timestamp-ordered bars.
	ExchangeService interface {
		GetKlines(symbol string, interval string, limit int) ([]models.Bar, error)
		GetAccountBalance(asset string) (decimal.Decimal, error)
	}
)
