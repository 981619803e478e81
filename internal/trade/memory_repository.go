package trade

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository is an in-memory trade store for tests and dev mode.
type MemoryRepository struct {
	mu     sync.RWMutex
	trades map[int64]Trade
	nextID int64
}

// NewMemoryRepository builds an empty in-memory trade repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{trades: make(map[int64]Trade), nextID: 1}
}

func (r *MemoryRepository) Get(_ context.Context, id int64) (Trade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.trades[id]
	if !ok {
		return Trade{}, ErrTradeNotFound
	}
	return t, nil
}

func (r *MemoryRepository) ListForUser(_ context.Context, userID int64) ([]Trade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var trades []Trade
	for _, t := range r.trades {
		if t.InitiatorUserID == userID || t.ReceiverUserID == userID {
			trades = append(trades, t)
		}
	}
	sort.Slice(trades, func(i, j int) bool {
		if !trades[i].CreatedAt.Equal(trades[j].CreatedAt) {
			return trades[i].CreatedAt.After(trades[j].CreatedAt)
		}
		return trades[i].ID > trades[j].ID
	})
	return trades, nil
}

func (r *MemoryRepository) Insert(_ context.Context, t Trade) (Trade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = r.nextID
	r.nextID++
	r.trades[t.ID] = t
	return t, nil
}

func (r *MemoryRepository) SettleIfPending(_ context.Context, id int64, status Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trades[id]
	if !ok || t.Status != StatusPending {
		return false, nil
	}
	t.Status = status
	r.trades[id] = t
	return true, nil
}
