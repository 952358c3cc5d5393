package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bar is a single OHLCV observation. Bars are immutable once parsed and
// arrive ordered by non-decreasing timestamp within a symbol.
type Bar struct {
	Symbol      string
	Timestamp   time.Time
	Open        decimal.Decimal
	High        decimal.Decimal
	Low         decimal.Decimal
	Close       decimal.Decimal
	Volume      decimal.Decimal
	QuoteVolume decimal.Decimal
	TradeCount  int64
}

// Closes extracts the close price series from a window of bars.
func Closes(bars []Bar) []decimal.Decimal {
	closes := make([]decimal.Decimal, len(bars))
	for i, bar := range bars {
		closes[i] = bar.Close
	}
	return closes
}
