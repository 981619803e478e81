package collection

import (
	"context"
	"testing"

	"github.com/poggerdex/poggerdex/internal/capture"
)

func seededService(t *testing.T) *Service {
	t.Helper()
	records := capture.NewMemoryRepository()
	ctx := context.Background()
	seed := []capture.Record{
		{UserID: 1, Species: "pikachu", Count: 5, Shiny: true},
		{UserID: 1, Species: "raichu", Count: 2},
		{UserID: 1, Species: "mewtwo", Count: 1, Legendary: true},
		{UserID: 1, Species: "mew", Count: 3, Mythical: true},
		{UserID: 2, Species: "eevee", Count: 9},
	}
	for _, rec := range seed {
		if _, err := records.Insert(ctx, rec); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return NewService(records)
}

func names(records []capture.Record) []string {
	out := make([]string, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.Species)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestListFiltersAndSorts(t *testing.T) {
	svc := seededService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{"default name order", Query{}, []string{"mew", "mewtwo", "pikachu", "raichu"}},
		{"count descending", Query{Sort: SortByCount}, []string{"pikachu", "mew", "raichu", "mewtwo"}},
		{"substring search", Query{Search: "chu"}, []string{"pikachu", "raichu"}},
		{"search is case-insensitive", Query{Search: "  MEW "}, []string{"mew", "mewtwo"}},
		{"shiny only", Query{Category: CategoryShiny}, []string{"pikachu"}},
		{"legendary only", Query{Category: CategoryLegendary}, []string{"mewtwo"}},
		{"mythical only", Query{Category: CategoryMythical}, []string{"mew"}},
		{"search plus category", Query{Search: "mew", Category: CategoryMythical}, []string{"mew"}},
		{"no match", Query{Search: "zzz"}, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.List(ctx, 1, tc.q)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if !equal(names(got), tc.want) {
				t.Fatalf("got %v, want %v", names(got), tc.want)
			}
		})
	}
}

func TestListScopedToUser(t *testing.T) {
	svc := seededService(t)

	got, err := svc.List(context.Background(), 2, Query{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !equal(names(got), []string{"eevee"}) {
		t.Fatalf("expected only user 2's records, got %v", names(got))
	}
}

func TestStats(t *testing.T) {
	svc := seededService(t)

	st, err := svc.Stats(context.Background(), 1)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := Stats{Species: 4, Captures: 11, Shiny: 1, Legendary: 1, Mythical: 1}
	if st != want {
		t.Fatalf("got %+v, want %+v", st, want)
	}
}
