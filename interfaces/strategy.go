package interfaces

import (
	"gitlab.com/tradeforge/multistrat/models"
)

type (
	// Strategy maps a trailing window of bars to a Signal. Analyzers are
	// pure functions of the window and their own parameters: no shared
	// state, safe to run concurrently over independent windows. A
	// strategy never fails; it degrades to HOLD with a reason.
	Strategy interface {
		Name() models.StrategyName
		Analyze(window []models.Bar) models.Signal
	}
)
