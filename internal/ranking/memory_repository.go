package ranking

import (
	"context"
	"sort"
	"sync"
)

type memRecord struct {
	userID    int64
	count     int
	shiny     bool
	legendary bool
	mythical  bool
}

// MemoryRepository aggregates seeded records in memory for tests and
// dev mode.
type MemoryRepository struct {
	mu      sync.RWMutex
	users   map[int64]string
	records []memRecord
}

// NewMemoryRepository builds an empty in-memory ranking repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[int64]string)}
}

// SeedUser registers a username for aggregation.
func (r *MemoryRepository) SeedUser(id int64, username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[id] = username
}

// SeedRecord adds one capture record to the aggregate inputs.
func (r *MemoryRepository) SeedRecord(userID int64, count int, shiny, legendary, mythical bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, memRecord{
		userID:    userID,
		count:     count,
		shiny:     shiny,
		legendary: legendary,
		mythical:  mythical,
	})
}

func (r *MemoryRepository) Rows(_ context.Context, board Board) ([]Row, error) {
	if _, err := boardFilter(board); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	totals := make(map[int64]int)
	for _, rec := range r.records {
		switch board {
		case BoardShiny:
			if !rec.shiny {
				continue
			}
		case BoardLegendary:
			if !rec.legendary {
				continue
			}
		case BoardMythical:
			if !rec.mythical {
				continue
			}
		}
		totals[rec.userID] += rec.count
	}

	var out []Row
	for userID, total := range totals {
		if total == 0 {
			continue
		}
		out = append(out, Row{UserID: userID, Username: r.users[userID], Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Username < out[j].Username
	})
	return out, nil
}
