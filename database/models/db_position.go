package database

import (
	"time"

	"gorm.io/gorm"
)

// Position is the persisted form of a live trade. Prices are stored as
// strings so no precision is lost round-tripping through MySQL.
type Position struct {
	gorm.Model
	Symbol     string `gorm:"index;size:32"`
	Strategy   string `gorm:"index;size:64"`
	EntryPrice string
	Quantity   string
	StopLoss   string
	TakeProfit *string
	EntryTime  time.Time
	ExitTime   *time.Time
	ExitPrice  *string
	Profit     *string
	Open       bool `gorm:"index"`
}
