package paper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetKlinesDeterministic(t *testing.T) {
	service := NewPaperService(time.Hour)

	first, err := service.GetKlines("BTCUSDT", "1h", 300)
	assert.NoError(t, err)
	second, err := service.GetKlines("BTCUSDT", "1h", 300)
	assert.NoError(t, err)

	assert.Len(t, first, 300)
	for i := range first {
		assert.True(t, first[i].Close.Equal(second[i].Close), "bar %d", i)
		assert.True(t, first[i].Volume.Equal(second[i].Volume), "bar %d", i)
	}
}

func TestGetKlinesWellFormed(t *testing.T) {
	service := NewPaperService(time.Hour)

	bars, err := service.GetKlines("BTCUSDT", "1h", 100)
	assert.NoError(t, err)

	for i, bar := range bars {
		assert.True(t, bar.High.GreaterThanOrEqual(bar.Open), "bar %d", i)
		assert.True(t, bar.High.GreaterThanOrEqual(bar.Close), "bar %d", i)
		assert.True(t, bar.Low.LessThanOrEqual(bar.Open), "bar %d", i)
		assert.True(t, bar.Low.LessThanOrEqual(bar.Close), "bar %d", i)
		assert.True(t, bar.Volume.IsPositive(), "bar %d", i)
		if i > 0 {
			assert.True(t, bar.Timestamp.After(bars[i-1].Timestamp), "bar %d", i)
		}
	}
}

func TestGetAccountBalance(t *testing.T) {
	service := NewPaperService(time.Hour)
	balance, err := service.GetAccountBalance("USDT")
	assert.NoError(t, err)
	assert.True(t, balance.IsPositive())
}
