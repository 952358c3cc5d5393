package strategies

import (
	"fmt"

	"gitlab.com/tradeforge/multistrat/config"
	"gitlab.com/tradeforge/multistrat/interfaces"
	"gitlab.com/tradeforge/multistrat/models"
)

func StrategyFactory(strategyName string, cfg *config.Config) (interfaces.Strategy, error) {

	switch models.StrategyName(strategyName) {
	case models.StrategyTrendFollowing:
		trendFollowingStrategy := NewTrendFollowingStrategy(cfg.Strategies.TrendFollowing)
		return interfaces.Strategy(&trendFollowingStrategy), nil
	case models.StrategyVolatilityBreakout:
		volatilityBreakoutStrategy := NewVolatilityBreakoutStrategy(cfg.Strategies.VolatilityBreakout)
		return interfaces.Strategy(&volatilityBreakoutStrategy), nil
	case models.StrategyMeanReversion:
		rangeMeanReversionStrategy := NewRangeMeanReversionStrategy(cfg.Strategies.MeanReversion)
		return interfaces.Strategy(&rangeMeanReversionStrategy), nil
	case models.StrategyVolumeSpikeReversal:
		volumeSpikeReversalStrategy := NewVolumeSpikeReversalStrategy(cfg.Strategies.VolumeSpikeReversal)
		return interfaces.Strategy(&volumeSpikeReversalStrategy), nil
	default:
		return nil, fmt.Errorf("%s is not a known strategy", strategyName)
	}
}

// EnabledStrategies builds the analyzer set in a fixed registration
// order. The order matters: the arbitrator breaks confidence ties by
// keeping the earliest signal.
func EnabledStrategies(cfg *config.Config) []interfaces.Strategy {
	var enabled []interfaces.Strategy

	if cfg.Strategies.TrendFollowing.Enabled {
		s := NewTrendFollowingStrategy(cfg.Strategies.TrendFollowing)
		enabled = append(enabled, &s)
	}
	if cfg.Strategies.VolatilityBreakout.Enabled {
		s := NewVolatilityBreakoutStrategy(cfg.Strategies.VolatilityBreakout)
		enabled = append(enabled, &s)
	}
	if cfg.Strategies.MeanReversion.Enabled {
		s := NewRangeMeanReversionStrategy(cfg.Strategies.MeanReversion)
		enabled = append(enabled, &s)
	}
	if cfg.Strategies.VolumeSpikeReversal.Enabled {
		s := NewVolumeSpikeReversalStrategy(cfg.Strategies.VolumeSpikeReversal)
		enabled = append(enabled, &s)
	}

	return enabled
}
