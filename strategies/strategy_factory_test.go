package strategies

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"gitlab.com/tradeforge/multistrat/config"
	"gitlab.com/tradeforge/multistrat/models"
)

func defaultConfig(t *testing.T) *config.Config {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.NoError(t, err)
	return cfg
}

func TestStrategyFactory(t *testing.T) {
	cfg := defaultConfig(t)

	for _, name := range []models.StrategyName{
		models.StrategyTrendFollowing,
		models.StrategyVolatilityBreakout,
		models.StrategyMeanReversion,
		models.StrategyVolumeSpikeReversal,
	} {
		strategy, err := StrategyFactory(string(name), cfg)
		assert.NoError(t, err)
		assert.Equal(t, name, strategy.Name())
	}

	_, err := StrategyFactory("MOMENTUM", cfg)
	assert.Error(t, err)
}

func TestEnabledStrategiesOrder(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Strategies.TrendFollowing.Enabled = true
	cfg.Strategies.VolatilityBreakout.Enabled = false
	cfg.Strategies.MeanReversion.Enabled = true
	cfg.Strategies.VolumeSpikeReversal.Enabled = true

	enabled := EnabledStrategies(cfg)
	assert.Len(t, enabled, 3)
	assert.Equal(t, models.StrategyTrendFollowing, enabled[0].Name())
	assert.Equal(t, models.StrategyMeanReversion, enabled[1].Name())
	assert.Equal(t, models.StrategyVolumeSpikeReversal, enabled[2].Name())
}
