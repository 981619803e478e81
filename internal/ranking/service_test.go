package ranking

import (
	"context"
	"errors"
	"testing"
)

func seededService(t *testing.T) *Service {
	t.Helper()
	repo := NewMemoryRepository()
	repo.SeedUser(1, "ash")
	repo.SeedUser(2, "misty")
	repo.SeedUser(3, "brock")
	repo.SeedUser(4, "gary")

	repo.SeedRecord(1, 7, false, false, false)
	repo.SeedRecord(1, 2, true, false, false)
	repo.SeedRecord(2, 12, false, false, false)
	repo.SeedRecord(2, 1, false, true, false)
	repo.SeedRecord(3, 4, true, false, false)
	repo.SeedRecord(4, 3, false, false, true)
	return NewService(repo)
}

func TestOverallBoardOrderAndMedals(t *testing.T) {
	svc := seededService(t)

	entries, err := svc.Board(context.Background(), BoardOverall)
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}

	wantOrder := []string{"misty", "ash", "brock", "gary"}
	wantTotals := []int{13, 9, 4, 3}
	wantMedals := []string{"gold", "silver", "bronze", ""}
	for i, e := range entries {
		if e.Username != wantOrder[i] || e.Total != wantTotals[i] {
			t.Fatalf("entry %d: got %s/%d, want %s/%d", i, e.Username, e.Total, wantOrder[i], wantTotals[i])
		}
		if e.Medal != wantMedals[i] {
			t.Fatalf("entry %d: got medal %q, want %q", i, e.Medal, wantMedals[i])
		}
		if e.Place != i+1 {
			t.Fatalf("entry %d: got place %d", i, e.Place)
		}
	}
}

func TestFilteredBoards(t *testing.T) {
	svc := seededService(t)
	ctx := context.Background()

	tests := []struct {
		board Board
		want  []string
	}{
		{BoardShiny, []string{"brock", "ash"}},
		{BoardLegendary, []string{"misty"}},
		{BoardMythical, []string{"gary"}},
	}
	for _, tc := range tests {
		entries, err := svc.Board(ctx, tc.board)
		if err != nil {
			t.Fatalf("%s: %v", tc.board, err)
		}
		if len(entries) != len(tc.want) {
			t.Fatalf("%s: expected %d entries, got %d", tc.board, len(tc.want), len(entries))
		}
		for i, e := range entries {
			if e.Username != tc.want[i] {
				t.Fatalf("%s entry %d: got %s, want %s", tc.board, i, e.Username, tc.want[i])
			}
		}
	}
}

func TestUnknownBoard(t *testing.T) {
	svc := seededService(t)
	if _, err := svc.Board(context.Background(), Board("fastest")); !errors.Is(err, ErrUnknownBoard) {
		t.Fatalf("expected ErrUnknownBoard, got %v", err)
	}
}

func TestTiesBreakByUsername(t *testing.T) {
	repo := NewMemoryRepository()
	repo.SeedUser(1, "zoe")
	repo.SeedUser(2, "amy")
	repo.SeedRecord(1, 5, false, false, false)
	repo.SeedRecord(2, 5, false, false, false)

	entries, err := NewService(repo).Board(context.Background(), BoardOverall)
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	if entries[0].Username != "amy" || entries[1].Username != "zoe" {
		t.Fatalf("tie should break alphabetically, got %v then %v", entries[0].Username, entries[1].Username)
	}
}
