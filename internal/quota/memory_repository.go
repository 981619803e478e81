package quota

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu     sync.RWMutex
	limits map[int64]Limit
}

// NewMemoryRepository builds an in-memory limit store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{limits: make(map[int64]Limit)}
}

func (r *memoryRepository) Get(_ context.Context, userID int64) (Limit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	limit, ok := r.limits[userID]
	if !ok {
		return Limit{}, ErrNoLimit
	}
	return limit, nil
}

func (r *memoryRepository) Upsert(_ context.Context, limit Limit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.limits[limit.UserID] = limit
	return nil
}
