package services

import (
	"gitlab.com/tradeforge/multistrat/models"
)

// ArbitratorService reduces one evaluation tick's signals to at most
// one actionable signal.
type ArbitratorService struct{}

func NewArbitratorService() ArbitratorService {
	return ArbitratorService{}
}

// SelectBestSignal discards HOLD signals and signals without a
// confidence, then keeps the highest confidence. The comparison is
// strictly greater, so ties resolve to the earliest signal in input
// order and the result is deterministic for a fixed strategy order.
// Returns nil when nothing is actionable.
func (as *ArbitratorService) SelectBestSignal(signals []models.Signal) *models.Signal {
	var best *models.Signal
	for i := range signals {
		signal := &signals[i]
		if signal.Type == models.SignalTypeHold || signal.Confidence == nil {
			continue
		}
		if best == nil || *signal.Confidence > *best.Confidence {
			best = signal
		}
	}
	return best
}
