package paper

import (
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/tradeforge/multistrat/models"
)

// Fixed seed so every run generates the identical series. Paper data
// exists to exercise the engine reproducibly, not to look real.
const paperSeed = 42

// PaperService synthesizes a random-walk bar series in memory. It backs
// backtests and dry runs when no market connection is wanted.
type PaperService struct {
	interval time.Duration
	balance  decimal.Decimal
}

func NewPaperService(interval time.Duration) *PaperService {
	return &PaperService{
		interval: interval,
		balance:  decimal.NewFromInt(10000),
	}
}

// GetKlines generates limit bars ending at a fixed anchor time. The
// walk is geometric with occasional volume spikes, so every strategy
// has conditions it can trigger on.
func (ps *PaperService) GetKlines(symbol string, interval string, limit int) ([]models.Bar, error) {
	rng := rand.New(rand.NewSource(paperSeed))

	anchor := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	start := anchor.Add(-time.Duration(limit) * ps.interval)

	price := 100.0
	bars := make([]models.Bar, 0, limit)
	for i := 0; i < limit; i++ {
		drift := 0.0002
		volatility := 0.01
		change := drift + volatility*rng.NormFloat64()

		open := price
		closePrice := price * (1 + change)
		high := math.Max(open, closePrice) * (1 + 0.003*rng.Float64())
		low := math.Min(open, closePrice) * (1 - 0.003*rng.Float64())

		volume := 1000 + 500*rng.Float64()
		if rng.Float64() < 0.05 {
			volume *= 3
		}

		bars = append(bars, models.Bar{
			Symbol:      symbol,
			Timestamp:   start.Add(time.Duration(i) * ps.interval),
			Open:        decimal.NewFromFloat(open),
			High:        decimal.NewFromFloat(high),
			Low:         decimal.NewFromFloat(low),
			Close:       decimal.NewFromFloat(closePrice),
			Volume:      decimal.NewFromFloat(volume),
			QuoteVolume: decimal.NewFromFloat(volume * closePrice),
			TradeCount:  int64(volume),
		})
		price = closePrice
	}
	return bars, nil
}

func (ps *PaperService) GetAccountBalance(asset string) (decimal.Decimal, error) {
	return ps.balance, nil
}
