package capture

import (
	"context"
	"sync"
)

// MemoryRepository is an in-memory capture store for tests and dev mode.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[int64]Record
	nextID  int64
}

// NewMemoryRepository builds an empty in-memory capture repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[int64]Record), nextID: 1}
}

func (r *MemoryRepository) Get(_ context.Context, id int64) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		return Record{}, ErrRecordNotFound
	}
	return rec, nil
}

func (r *MemoryRepository) FindByUserAndSpecies(_ context.Context, userID int64, species string) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.records {
		if rec.UserID == userID && rec.Species == species {
			return rec, nil
		}
	}
	return Record{}, ErrRecordNotFound
}

func (r *MemoryRepository) Insert(_ context.Context, rec Record) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.ID = r.nextID
	r.nextID++
	r.records[rec.ID] = rec
	return rec, nil
}

func (r *MemoryRepository) Update(_ context.Context, rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[rec.ID]; !ok {
		return ErrRecordNotFound
	}
	r.records[rec.ID] = rec
	return nil
}

func (r *MemoryRepository) ListByUser(_ context.Context, userID int64) ([]Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var records []Record
	for _, rec := range r.records {
		if rec.UserID == userID {
			records = append(records, rec)
		}
	}
	return records, nil
}
