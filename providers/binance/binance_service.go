package binance

import (
	"context"
	"fmt"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
	"gitlab.com/tradeforge/multistrat/helpers"
	"gitlab.com/tradeforge/multistrat/models"
)

// BinanceService materializes klines and balances from the Binance
// spot API.
type BinanceService struct {
	binanceClient *binance.Client
}

func NewBinanceService(apiKey string, apiSecret string) *BinanceService {
	return &BinanceService{binanceClient: binance.NewClient(apiKey, apiSecret)}
}

// GetKlines fetches up to limit closed candles for the symbol. Rows
// with unparseable prices are skipped, so callers only ever see
// well-formed bars in exchange order.
func (bs *BinanceService) GetKlines(symbol string, interval string, limit int) ([]models.Bar, error) {
	klines, err := bs.binanceClient.NewKlinesService().Symbol(symbol).
		Interval(interval).Limit(limit).Do(context.Background())
	if err != nil {
		return nil, fmt.Errorf("binance klines: %w", err)
	}

	bars := make([]models.Bar, 0, len(klines))
	for _, k := range klines {
		bar, err := barFromKline(symbol, k)
		if err != nil {
			helpers.Logger.Warnln(fmt.Sprintf("Skipping malformed kline at %d: %v", k.OpenTime, err))
			continue
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

func (bs *BinanceService) GetAccountBalance(asset string) (decimal.Decimal, error) {
	res, err := bs.binanceClient.NewGetAccountService().Do(context.Background())
	if err != nil {
		return decimal.Zero, fmt.Errorf("binance account: %w", err)
	}

	for _, v := range res.Balances {
		if v.Asset != asset {
			continue
		}
		free, err := decimal.NewFromString(v.Free)
		if err != nil {
			return decimal.Zero, fmt.Errorf("parse free balance: %w", err)
		}
		locked, err := decimal.NewFromString(v.Locked)
		if err != nil {
			return decimal.Zero, fmt.Errorf("parse locked balance: %w", err)
		}
		return free.Add(locked), nil
	}
	return decimal.Zero, nil
}

func barFromKline(symbol string, k *binance.Kline) (models.Bar, error) {
	open, err := decimal.NewFromString(k.Open)
	if err != nil {
		return models.Bar{}, err
	}
	high, err := decimal.NewFromString(k.High)
	if err != nil {
		return models.Bar{}, err
	}
	low, err := decimal.NewFromString(k.Low)
	if err != nil {
		return models.Bar{}, err
	}
	closePrice, err := decimal.NewFromString(k.Close)
	if err != nil {
		return models.Bar{}, err
	}
	volume, err := decimal.NewFromString(k.Volume)
	if err != nil {
		return models.Bar{}, err
	}
	quoteVolume, err := decimal.NewFromString(k.QuoteAssetVolume)
	if err != nil {
		return models.Bar{}, err
	}

	return models.Bar{
		Symbol:      symbol,
		Timestamp:   timeFromMillis(k.OpenTime),
		Open:        open,
		High:        high,
		Low:         low,
		Close:       closePrice,
		Volume:      volume,
		QuoteVolume: quoteVolume,
		TradeCount:  k.TradeNum,
	}, nil
}

func timeFromMillis(ms int64) time.Time {
	return time.Unix(ms/1000, 0).UTC()
}
