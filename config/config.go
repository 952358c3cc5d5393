package config

import (
	"fmt"
	"os"
	"time"

	str2duration "github.com/xhit/go-str2duration/v2"
	"gopkg.in/yaml.v3"
)

// Config is read-only for the duration of a run. Rates and multipliers
// stay float64 here and are converted once with decimal.NewFromFloat at
// the point of use, the same conversion the engine applies everywhere.
type Config struct {
	Symbol   string `yaml:"symbol"`
	Interval string `yaml:"interval"`

	Backtest   BacktestConfig   `yaml:"backtest"`
	Risk       RiskConfig       `yaml:"risk"`
	Strategies StrategiesConfig `yaml:"strategies"`

	Provider string `yaml:"provider"` // paper, binance or clickhouse

	Binance struct {
		APIKey    string `yaml:"api_key"`
		APISecret string `yaml:"api_secret"`
	} `yaml:"binance"`
	ClickHouse struct {
		Addr     string `yaml:"addr"`
		Database string `yaml:"database"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"clickhouse"`
	Database struct {
		Enabled  bool   `yaml:"enabled"`
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		Name     string `yaml:"name"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
	} `yaml:"database"`
}

type BacktestConfig struct {
	LookbackPeriod int     `yaml:"lookback_period"`
	MaxPositions   int     `yaml:"max_positions"`
	InitialCapital float64 `yaml:"initial_capital"`
	Commission     float64 `yaml:"commission"`
	Slippage       float64 `yaml:"slippage"`
}

type RiskConfig struct {
	RiskPerTrade            float64 `yaml:"risk_per_trade"`
	MaxPositionValue        float64 `yaml:"max_position_value"` // fraction of balance
	MinRewardRisk           float64 `yaml:"min_reward_risk"`
	MaxPositionsPerStrategy int     `yaml:"max_positions_per_strategy"`
}

type StrategiesConfig struct {
	TrendFollowing      TrendFollowingParams      `yaml:"trend_following"`
	VolatilityBreakout  VolatilityBreakoutParams  `yaml:"volatility_breakout"`
	MeanReversion       MeanReversionParams       `yaml:"mean_reversion"`
	VolumeSpikeReversal VolumeSpikeReversalParams `yaml:"volume_spike"`
}

type TrendFollowingParams struct {
	Enabled          bool    `yaml:"enabled"`
	SmaShort         int     `yaml:"sma_short"`
	SmaLong          int     `yaml:"sma_long"`
	BreakoutPeriod   int     `yaml:"breakout_period"`
	VolumeMultiplier float64 `yaml:"volume_multiplier"`
	AtrMultiplier    float64 `yaml:"atr_multiplier"`
}

type VolatilityBreakoutParams struct {
	Enabled               bool    `yaml:"enabled"`
	AtrPeriod             int     `yaml:"atr_period"`
	CompressionPercentile float64 `yaml:"compression_percentile"`
	VolumeMultiplier      float64 `yaml:"volume_multiplier"`
	RewardRiskRatio       float64 `yaml:"reward_risk_ratio"`
}

type MeanReversionParams struct {
	Enabled         bool    `yaml:"enabled"`
	RangePeriod     int     `yaml:"range_period"`
	BollingerPeriod int     `yaml:"bollinger_period"`
	BollingerStd    float64 `yaml:"bollinger_std"`
}

type VolumeSpikeReversalParams struct {
	Enabled          bool    `yaml:"enabled"`
	VolumeMultiplier float64 `yaml:"volume_multiplier"`
	WickRatio        float64 `yaml:"wick_ratio"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides for the secret-ish fields.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("binanceAPIKey"); v != "" {
		cfg.Binance.APIKey = v
	}
	if v := os.Getenv("binanceAPISecret"); v != "" {
		cfg.Binance.APISecret = v
	}
	if v := os.Getenv("clickhouseAddr"); v != "" {
		cfg.ClickHouse.Addr = v
	}
	if v := os.Getenv("databaseHost"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("databasePassword"); v != "" {
		cfg.Database.Password = v
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Symbol == "" {
		c.Symbol = "BTCUSDT"
	}
	if c.Interval == "" {
		c.Interval = "1h"
	}
	if c.Provider == "" {
		c.Provider = "paper"
	}

	if c.Backtest.LookbackPeriod == 0 {
		c.Backtest.LookbackPeriod = 200
	}
	if c.Backtest.MaxPositions == 0 {
		c.Backtest.MaxPositions = 5
	}
	if c.Backtest.InitialCapital == 0 {
		c.Backtest.InitialCapital = 10000
	}

	if c.Risk.RiskPerTrade == 0 {
		c.Risk.RiskPerTrade = 0.01
	}
	if c.Risk.MaxPositionValue == 0 {
		c.Risk.MaxPositionValue = 0.1
	}
	if c.Risk.MinRewardRisk == 0 {
		c.Risk.MinRewardRisk = 1.5
	}
	if c.Risk.MaxPositionsPerStrategy == 0 {
		c.Risk.MaxPositionsPerStrategy = 2
	}

	tf := &c.Strategies.TrendFollowing
	if tf.SmaShort == 0 {
		tf.SmaShort = 50
	}
	if tf.SmaLong == 0 {
		tf.SmaLong = 200
	}
	if tf.BreakoutPeriod == 0 {
		tf.BreakoutPeriod = 20
	}
	if tf.VolumeMultiplier == 0 {
		tf.VolumeMultiplier = 1.5
	}
	if tf.AtrMultiplier == 0 {
		tf.AtrMultiplier = 1.5
	}

	vb := &c.Strategies.VolatilityBreakout
	if vb.AtrPeriod == 0 {
		vb.AtrPeriod = 14
	}
	if vb.CompressionPercentile == 0 {
		vb.CompressionPercentile = 0.3
	}
	if vb.VolumeMultiplier == 0 {
		vb.VolumeMultiplier = 1.5
	}
	if vb.RewardRiskRatio == 0 {
		vb.RewardRiskRatio = 2.0
	}

	mr := &c.Strategies.MeanReversion
	if mr.RangePeriod == 0 {
		mr.RangePeriod = 20
	}
	if mr.BollingerPeriod == 0 {
		mr.BollingerPeriod = 20
	}
	if mr.BollingerStd == 0 {
		mr.BollingerStd = 2.0
	}

	vs := &c.Strategies.VolumeSpikeReversal
	if vs.VolumeMultiplier == 0 {
		vs.VolumeMultiplier = 2.0
	}
	if vs.WickRatio == 0 {
		vs.WickRatio = 0.6
	}
}

// Validate rejects impossible configurations before a run starts so
// nothing fails mid-loop.
func (c *Config) Validate() error {
	if _, err := c.IntervalDuration(); err != nil {
		return fmt.Errorf("interval %q is not parseable: %w", c.Interval, err)
	}

	if c.Backtest.LookbackPeriod < 1 {
		return fmt.Errorf("backtest.lookback_period must be positive")
	}
	if c.Backtest.MaxPositions < 1 {
		return fmt.Errorf("backtest.max_positions must be positive")
	}
	if c.Backtest.InitialCapital <= 0 {
		return fmt.Errorf("backtest.initial_capital must be positive")
	}
	if c.Backtest.Commission < 0 || c.Backtest.Slippage < 0 {
		return fmt.Errorf("commission and slippage cannot be negative")
	}

	if c.Risk.RiskPerTrade <= 0 || c.Risk.RiskPerTrade > 1 {
		return fmt.Errorf("risk.risk_per_trade must be in (0, 1]")
	}
	if c.Risk.MaxPositionValue <= 0 || c.Risk.MaxPositionValue > 1 {
		return fmt.Errorf("risk.max_position_value must be in (0, 1]")
	}
	if c.Risk.MinRewardRisk <= 0 {
		return fmt.Errorf("risk.min_reward_risk must be positive")
	}
	if c.Risk.MaxPositionsPerStrategy < 1 {
		return fmt.Errorf("risk.max_positions_per_strategy must be positive")
	}

	tf := c.Strategies.TrendFollowing
	if tf.SmaShort < 1 || tf.SmaLong < 1 || tf.BreakoutPeriod < 1 {
		return fmt.Errorf("trend_following periods must be positive")
	}
	if tf.SmaShort >= tf.SmaLong {
		return fmt.Errorf("trend_following.sma_short must be below sma_long")
	}

	vb := c.Strategies.VolatilityBreakout
	if vb.AtrPeriod < 1 {
		return fmt.Errorf("volatility_breakout.atr_period must be positive")
	}
	if vb.CompressionPercentile <= 0 || vb.CompressionPercentile >= 1 {
		return fmt.Errorf("volatility_breakout.compression_percentile must be in (0, 1)")
	}
	if vb.RewardRiskRatio <= 0 {
		return fmt.Errorf("volatility_breakout.reward_risk_ratio must be positive")
	}

	mr := c.Strategies.MeanReversion
	if mr.RangePeriod < 1 || mr.BollingerPeriod < 1 {
		return fmt.Errorf("mean_reversion periods must be positive")
	}
	if mr.BollingerStd <= 0 {
		return fmt.Errorf("mean_reversion.bollinger_std must be positive")
	}

	vs := c.Strategies.VolumeSpikeReversal
	if vs.VolumeMultiplier <= 0 {
		return fmt.Errorf("volume_spike.volume_multiplier must be positive")
	}
	if vs.WickRatio <= 0 || vs.WickRatio >= 1 {
		return fmt.Errorf("volume_spike.wick_ratio must be in (0, 1)")
	}

	return nil
}

// IntervalDuration parses the configured bar interval. str2duration
// accepts day suffixes ("1d", "3d") that time.ParseDuration does not.
func (c *Config) IntervalDuration() (time.Duration, error) {
	return str2duration.ParseDuration(c.Interval)
}
