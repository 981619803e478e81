package collection

import (
	"context"
	"sort"
	"strings"

	"github.com/poggerdex/poggerdex/internal/capture"
)

// Category narrows a collection view to one class of record.
type Category string

const (
	CategoryAll       Category = "all"
	CategoryShiny     Category = "shiny"
	CategoryLegendary Category = "legendary"
	CategoryMythical  Category = "mythical"
)

// Sort orders for a collection view.
type Sort string

const (
	SortByName  Sort = "name"
	SortByCount Sort = "count"
)

// Query selects and orders a slice of a user's collection.
type Query struct {
	Search   string
	Category Category
	Sort     Sort
}

// Stats summarizes a user's collection for the dashboard.
type Stats struct {
	Species   int `json:"species"`
	Captures  int `json:"captures"`
	Shiny     int `json:"shiny"`
	Legendary int `json:"legendary"`
	Mythical  int `json:"mythical"`
}

// Service reads collection views over the capture record store.
type Service struct {
	records capture.Repository
}

// NewService builds a collection service.
func NewService(records capture.Repository) *Service {
	return &Service{records: records}
}

// List returns the user's records matching the query, ordered per its
// sort. The default order is by species name; count sorts descending.
func (s *Service) List(ctx context.Context, userID int64, q Query) ([]capture.Record, error) {
	all, err := s.records.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]capture.Record, 0, len(all))
	for _, rec := range all {
		if search != "" && !strings.Contains(strings.ToLower(rec.Species), search) {
			continue
		}
		if !matchesCategory(rec, q.Category) {
			continue
		}
		out = append(out, rec)
	}

	switch q.Sort {
	case SortByCount:
		sort.Slice(out, func(i, j int) bool {
			if out[i].Count != out[j].Count {
				return out[i].Count > out[j].Count
			}
			return out[i].Species < out[j].Species
		})
	default:
		sort.Slice(out, func(i, j int) bool {
			return out[i].Species < out[j].Species
		})
	}
	return out, nil
}

// Stats tallies the user's collection.
func (s *Service) Stats(ctx context.Context, userID int64) (Stats, error) {
	all, err := s.records.ListByUser(ctx, userID)
	if err != nil {
		return Stats{}, err
	}

	var st Stats
	for _, rec := range all {
		st.Species++
		st.Captures += rec.Count
		if rec.Shiny {
			st.Shiny++
		}
		if rec.Legendary {
			st.Legendary++
		}
		if rec.Mythical {
			st.Mythical++
		}
	}
	return st, nil
}

func matchesCategory(rec capture.Record, cat Category) bool {
	switch cat {
	case CategoryShiny:
		return rec.Shiny
	case CategoryLegendary:
		return rec.Legendary
	case CategoryMythical:
		return rec.Mythical
	default:
		return true
	}
}
