package services

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gitlab.com/tradeforge/multistrat/config"
	"gitlab.com/tradeforge/multistrat/helpers"
	"gitlab.com/tradeforge/multistrat/models"
)

// RiskService converts signals into position sizes and vets signal
// quality before capital is committed.
type RiskService struct {
	riskPerTrade            decimal.Decimal
	maxPositionValue        decimal.Decimal
	minRewardRisk           decimal.Decimal
	maxPositionsPerStrategy int
}

func NewRiskService(cfg config.RiskConfig) RiskService {
	return RiskService{
		riskPerTrade:            decimal.NewFromFloat(cfg.RiskPerTrade),
		maxPositionValue:        decimal.NewFromFloat(cfg.MaxPositionValue),
		minRewardRisk:           decimal.NewFromFloat(cfg.MinRewardRisk),
		maxPositionsPerStrategy: cfg.MaxPositionsPerStrategy,
	}
}

// CalculatePositionSize returns riskAmount / stopDistance, capped by
// the maximum position value rule. Signals that cannot be sized safely
// (no stop, zero stop distance, zero price) size to zero instead of
// failing the run.
func (rs *RiskService) CalculatePositionSize(signal models.Signal, accountBalance decimal.Decimal) decimal.Decimal {
	if signal.StopLoss == nil {
		helpers.Logger.Warnln(fmt.Sprintf("no stop loss on %s signal from %s, sizing to zero", signal.Type, signal.Strategy))
		return decimal.Zero
	}

	riskPerUnit := signal.Price.Sub(*signal.StopLoss).Abs()
	if riskPerUnit.IsZero() || !signal.Price.IsPositive() {
		return decimal.Zero
	}

	riskAmount := accountBalance.Mul(rs.riskPerTrade)
	positionSize := helpers.DivRatio(riskAmount, riskPerUnit)

	maxValue := accountBalance.Mul(rs.maxPositionValue)
	maxPositionSize := helpers.DivRatio(maxValue, signal.Price)

	return decimal.Min(positionSize, maxPositionSize)
}

// ValidateSignal rejects signals without a stop loss, with a
// reward:risk below the configured minimum, or from a strategy that
// already holds its maximum number of open positions.
func (rs *RiskService) ValidateSignal(signal models.Signal, openSameStrategy int) bool {
	if signal.StopLoss == nil {
		helpers.Logger.Warnln(fmt.Sprintf("signal rejected: no stop loss (%s)", signal.Strategy))
		return false
	}

	if signal.TakeProfit != nil {
		risk := signal.Price.Sub(*signal.StopLoss).Abs()
		if risk.IsZero() {
			return false
		}
		reward := signal.TakeProfit.Sub(signal.Price).Abs()
		ratio := helpers.DivScore(reward, risk)
		if ratio.LessThan(rs.minRewardRisk) {
			helpers.Logger.Warnln(fmt.Sprintf("signal rejected: poor reward:risk %s (%s)", ratio, signal.Strategy))
			return false
		}
	}

	if openSameStrategy >= rs.maxPositionsPerStrategy {
		helpers.Logger.Warnln(fmt.Sprintf("signal rejected: too many open positions for %s", signal.Strategy))
		return false
	}

	return true
}
