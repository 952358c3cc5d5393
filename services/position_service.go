package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/tradeforge/multistrat/helpers"
	"gitlab.com/tradeforge/multistrat/interfaces"
	"gitlab.com/tradeforge/multistrat/models"
)

// PositionService owns the lifecycle of live positions behind the
// storage port.
type PositionService struct {
	repository interfaces.TradeRepository
}

func NewPositionService(repository interfaces.TradeRepository) PositionService {
	return PositionService{repository: repository}
}

// OpenPosition persists a new open position from a sized signal.
func (ps *PositionService) OpenPosition(symbol string, signal models.Signal, quantity decimal.Decimal) (*models.Position, error) {
	if signal.StopLoss == nil {
		return nil, fmt.Errorf("cannot open a position without a stop loss")
	}

	position := &models.Position{
		Symbol:     symbol,
		Strategy:   signal.Strategy,
		EntryPrice: signal.Price,
		Quantity:   quantity,
		StopLoss:   *signal.StopLoss,
		TakeProfit: signal.TakeProfit,
		EntryTime:  signal.Timestamp,
		Open:       true,
	}
	if err := ps.repository.Save(position); err != nil {
		return nil, fmt.Errorf("save position: %w", err)
	}

	helpers.Logger.Infoln(fmt.Sprintf("Opened %s position: %s %s @ %s", position.Strategy, position.Quantity, position.Symbol, position.EntryPrice))
	return position, nil
}

// ClosePosition marks the position closed at the given price and
// records the realized profit.
func (ps *PositionService) ClosePosition(position *models.Position, exitPrice decimal.Decimal, exitTime time.Time) error {
	profit := exitPrice.Sub(position.EntryPrice).Mul(position.Quantity)

	position.Open = false
	position.ExitTime = &exitTime
	position.ExitPrice = &exitPrice
	position.Profit = &profit

	if err := ps.repository.Save(position); err != nil {
		return fmt.Errorf("save position: %w", err)
	}

	helpers.Logger.Infoln(fmt.Sprintf("Closed %s position on %s @ %s, profit %s", position.Strategy, position.Symbol, exitPrice, profit))
	return nil
}

// OpenPositions loads the currently open positions.
func (ps *PositionService) OpenPositions() ([]models.Position, error) {
	return ps.repository.FindOpen()
}

// CheckStopLossAndTakeProfit closes every open position whose stop or
// target the current price crosses, stop first, and returns the
// positions it closed.
func (ps *PositionService) CheckStopLossAndTakeProfit(positions []models.Position, currentPrice decimal.Decimal, now time.Time) ([]models.Position, error) {
	var closed []models.Position
	for i := range positions {
		position := &positions[i]
		if !position.Open {
			continue
		}

		switch {
		case currentPrice.LessThanOrEqual(position.StopLoss):
			helpers.Logger.Warnln(fmt.Sprintf("Stop loss hit on %s %s position", position.Symbol, position.Strategy))
			if err := ps.ClosePosition(position, currentPrice, now); err != nil {
				return closed, err
			}
			closed = append(closed, *position)
		case position.TakeProfit != nil && currentPrice.GreaterThanOrEqual(*position.TakeProfit):
			helpers.Logger.Infoln(fmt.Sprintf("Take profit hit on %s %s position", position.Symbol, position.Strategy))
			if err := ps.ClosePosition(position, currentPrice, now); err != nil {
				return closed, err
			}
			closed = append(closed, *position)
		}
	}
	return closed, nil
}

// RaiseStopLoss persists a higher stop on an open position. Stops only
// move up.
func (ps *PositionService) RaiseStopLoss(position *models.Position, newStop decimal.Decimal) error {
	if !newStop.GreaterThan(position.StopLoss) {
		return nil
	}
	position.StopLoss = newStop
	if err := ps.repository.Save(position); err != nil {
		return fmt.Errorf("save position: %w", err)
	}
	helpers.Logger.Infoln(fmt.Sprintf("Raised stop on %s %s position to %s", position.Symbol, position.Strategy, newStop))
	return nil
}

// TotalPnL sums the realized profit of all closed positions.
func (ps *PositionService) TotalPnL() (decimal.Decimal, error) {
	positions, err := ps.repository.FindClosed()
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for i := range positions {
		if positions[i].Profit != nil {
			total = total.Add(*positions[i].Profit)
		}
	}
	return total, nil
}

// UnrealizedPnL values every open position against the given price.
func (ps *PositionService) UnrealizedPnL(currentPrice decimal.Decimal) (decimal.Decimal, error) {
	positions, err := ps.repository.FindOpen()
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for i := range positions {
		total = total.Add(positions[i].UnrealizedPnl(currentPrice))
	}
	return total, nil
}
