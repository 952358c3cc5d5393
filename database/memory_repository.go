package database

import (
	"sync"

	"gitlab.com/tradeforge/multistrat/models"
)

// MemoryRepository is the in-process TradeRepository used when no
// database is configured, typically paper runs and tests.
type MemoryRepository struct {
	mu        sync.Mutex
	nextID    uint
	positions map[uint]models.Position
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		nextID:    1,
		positions: make(map[uint]models.Position),
	}
}

func (mr *MemoryRepository) Save(position *models.Position) error {
	mr.mu.Lock()
	defer mr.mu.Unlock()

	if position.ID == 0 {
		position.ID = mr.nextID
		mr.nextID++
	}
	mr.positions[position.ID] = *position
	return nil
}

func (mr *MemoryRepository) FindOpen() ([]models.Position, error) {
	return mr.find(true), nil
}

func (mr *MemoryRepository) FindClosed() ([]models.Position, error) {
	return mr.find(false), nil
}

func (mr *MemoryRepository) find(open bool) []models.Position {
	mr.mu.Lock()
	defer mr.mu.Unlock()

	var result []models.Position
	for id := uint(1); id < mr.nextID; id++ {
		position, ok := mr.positions[id]
		if ok && position.Open == open {
			result = append(result, position)
		}
	}
	return result
}
