package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/tradeforge/multistrat/models"
)

func testNow() time.Time {
	return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
}

func flatBar(i int, closePrice, volume float64) models.Bar {
	c := decimal.NewFromFloat(closePrice)
	return models.Bar{
		Symbol:    "BTCUSDT",
		Timestamp: testNow().Add(time.Duration(i) * time.Hour),
		Open:      c,
		High:      c.Add(decimal.NewFromInt(1)),
		Low:       c.Sub(decimal.NewFromInt(1)),
		Close:     c,
		Volume:    decimal.NewFromFloat(volume),
	}
}
