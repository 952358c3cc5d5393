package strategies

import (
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/tradeforge/multistrat/models"
)

var testStart = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

func testBar(i int, open, high, low, closePrice, volume float64) models.Bar {
	return models.Bar{
		Symbol:    "BTCUSDT",
		Timestamp: testStart.Add(time.Duration(i) * time.Hour),
		Open:      decimal.NewFromFloat(open),
		High:      decimal.NewFromFloat(high),
		Low:       decimal.NewFromFloat(low),
		Close:     decimal.NewFromFloat(closePrice),
		Volume:    decimal.NewFromFloat(volume),
	}
}
