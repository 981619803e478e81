package companion

import (
	"context"
	"sync"
)

// MemoryRepository is an in-memory companion store for tests and dev mode.
type MemoryRepository struct {
	mu         sync.RWMutex
	companions map[int64]Companion
	nextID     int64
}

// NewMemoryRepository builds an empty in-memory companion repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{companions: make(map[int64]Companion), nextID: 1}
}

// Seed inserts a companion and returns it with an assigned id.
func (r *MemoryRepository) Seed(c Companion) Companion {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == 0 {
		c.ID = r.nextID
		r.nextID++
	}
	r.companions[c.UserID] = c
	return c
}

func (r *MemoryRepository) GetByUser(_ context.Context, userID int64) (Companion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.companions[userID]
	if !ok {
		return Companion{}, ErrNoCompanion
	}
	return c, nil
}

func (r *MemoryRepository) Update(_ context.Context, c Companion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.companions[c.UserID]
	if !ok || existing.ID != c.ID {
		return ErrNoCompanion
	}
	r.companions[c.UserID] = c
	return nil
}
