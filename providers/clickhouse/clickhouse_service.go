package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/shopspring/decimal"
	"gitlab.com/tradeforge/multistrat/config"
	"gitlab.com/tradeforge/multistrat/helpers"
	"gitlab.com/tradeforge/multistrat/models"
)

// ClickHouseService reads pre-ingested candles from a ClickHouse klines
// table. It is history-only: balance queries answer with zero since a
// warehouse holds no funds.
type ClickHouseService struct {
	conn driver.Conn
}

func NewClickHouseService(cfg *config.Config) (*ClickHouseService, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{cfg.ClickHouse.Addr},
		Auth: clickhouse.Auth{
			Database: cfg.ClickHouse.Database,
			Username: cfg.ClickHouse.Username,
			Password: cfg.ClickHouse.Password,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("connect to clickhouse: %w", err)
	}
	return &ClickHouseService{conn: conn}, nil
}

func (cs *ClickHouseService) Close() error {
	return cs.conn.Close()
}

// GetKlines loads the most recent limit bars in ascending time order.
// Rows with unparseable numerics are skipped.
func (cs *ClickHouseService) GetKlines(symbol string, interval string, limit int) ([]models.Bar, error) {
	query := `
		SELECT open_time_ms, open, high, low, close, volume_base, quote_volume, trades
		FROM (
			SELECT open_time_ms, open, high, low, close, volume_base, quote_volume, trades
			FROM klines
			WHERE symbol = ? AND interval = ?
			ORDER BY open_time_ms DESC
			LIMIT ?
		)
		ORDER BY open_time_ms ASC`

	rows, err := cs.conn.Query(context.Background(), query, symbol, interval, limit)
	if err != nil {
		return nil, fmt.Errorf("clickhouse klines: %w", err)
	}
	defer rows.Close()

	var bars []models.Bar
	for rows.Next() {
		var (
			openTimeMs                                  int64
			open, high, low, closeStr, volume, quoteVol string
			trades                                      uint64
		)
		if err := rows.Scan(&openTimeMs, &open, &high, &low, &closeStr, &volume, &quoteVol, &trades); err != nil {
			return nil, fmt.Errorf("scan kline row: %w", err)
		}

		bar, err := parseBar(symbol, openTimeMs, open, high, low, closeStr, volume, quoteVol, trades)
		if err != nil {
			helpers.Logger.Warnln(fmt.Sprintf("Skipping malformed kline at %d: %v", openTimeMs, err))
			continue
		}
		bars = append(bars, bar)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("clickhouse klines: %w", err)
	}
	return bars, nil
}

func (cs *ClickHouseService) GetAccountBalance(asset string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func parseBar(symbol string, openTimeMs int64, open, high, low, closePrice, volume, quoteVol string, trades uint64) (models.Bar, error) {
	o, err := decimal.NewFromString(open)
	if err != nil {
		return models.Bar{}, err
	}
	h, err := decimal.NewFromString(high)
	if err != nil {
		return models.Bar{}, err
	}
	l, err := decimal.NewFromString(low)
	if err != nil {
		return models.Bar{}, err
	}
	c, err := decimal.NewFromString(closePrice)
	if err != nil {
		return models.Bar{}, err
	}
	v, err := decimal.NewFromString(volume)
	if err != nil {
		return models.Bar{}, err
	}
	q, err := decimal.NewFromString(quoteVol)
	if err != nil {
		return models.Bar{}, err
	}

	return models.Bar{
		Symbol:      symbol,
		Timestamp:   time.Unix(openTimeMs/1000, 0).UTC(),
		Open:        o,
		High:        h,
		Low:         l,
		Close:       c,
		Volume:      v,
		QuoteVolume: q,
		TradeCount:  int64(trades),
	}, nil
}
