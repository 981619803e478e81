package trade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poggerdex/poggerdex/internal/capture"
)

func testService(t *testing.T) (*Service, *capture.MemoryRepository) {
	t.Helper()
	records := capture.NewMemoryRepository()
	return NewService(NewMemoryRepository(), records, nil), records
}

func seedRecord(t *testing.T, records *capture.MemoryRepository, userID int64, species string) capture.Record {
	t.Helper()
	rec, err := records.Insert(context.Background(), capture.Record{
		UserID:  userID,
		Species: species,
		Count:   1,
	})
	if err != nil {
		t.Fatalf("seed record: %v", err)
	}
	return rec
}

func TestCreateRequiresOwnership(t *testing.T) {
	svc, records := testService(t)
	ctx := context.Background()
	mine := seedRecord(t, records, 1, "pikachu")
	theirs := seedRecord(t, records, 2, "eevee")

	tr, err := svc.Create(ctx, 1, 2, mine.ID, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if tr.Status != StatusPending {
		t.Fatalf("expected pending trade, got %s", tr.Status)
	}

	if _, err := svc.Create(ctx, 1, 2, theirs.ID, nil); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("offering someone else's record: expected ErrNotOwner, got %v", err)
	}
	if _, err := svc.Create(ctx, 1, 2, 999, nil); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("offering a missing record: expected ErrNotOwner, got %v", err)
	}
	if _, err := svc.Create(ctx, 1, 1, mine.ID, nil); !errors.Is(err, ErrSelfTrade) {
		t.Fatalf("expected ErrSelfTrade, got %v", err)
	}
}

func TestRespondAuthorization(t *testing.T) {
	svc, records := testService(t)
	ctx := context.Background()
	mine := seedRecord(t, records, 1, "pikachu")

	tr, err := svc.Create(ctx, 1, 2, mine.ID, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Neither the initiator nor a bystander may respond.
	if _, err := svc.Respond(ctx, tr.ID, 1, true); !errors.Is(err, ErrNotReceiver) {
		t.Fatalf("initiator responding: expected ErrNotReceiver, got %v", err)
	}
	if _, err := svc.Respond(ctx, tr.ID, 3, true); !errors.Is(err, ErrNotReceiver) {
		t.Fatalf("bystander responding: expected ErrNotReceiver, got %v", err)
	}

	settled, err := svc.Respond(ctx, tr.ID, 2, true)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if settled.Status != StatusAccepted {
		t.Fatalf("expected accepted, got %s", settled.Status)
	}

	// Settled trades stay settled.
	if _, err := svc.Respond(ctx, tr.ID, 2, false); !errors.Is(err, ErrNotPending) {
		t.Fatalf("double response: expected ErrNotPending, got %v", err)
	}
}

func TestRespondReject(t *testing.T) {
	svc, records := testService(t)
	ctx := context.Background()
	mine := seedRecord(t, records, 1, "pikachu")

	tr, _ := svc.Create(ctx, 1, 2, mine.ID, nil)
	settled, err := svc.Respond(ctx, tr.ID, 2, false)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if settled.Status != StatusRejected {
		t.Fatalf("expected rejected, got %s", settled.Status)
	}
}

func TestAcceptDoesNotMoveOwnership(t *testing.T) {
	svc, records := testService(t)
	ctx := context.Background()
	mine := seedRecord(t, records, 1, "pikachu")

	tr, _ := svc.Create(ctx, 1, 2, mine.ID, nil)
	if _, err := svc.Respond(ctx, tr.ID, 2, true); err != nil {
		t.Fatalf("accept: %v", err)
	}

	rec, err := records.Get(ctx, mine.ID)
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if rec.UserID != 1 {
		t.Fatalf("acceptance must not re-own the record, got owner %d", rec.UserID)
	}
}

func TestListForUserNewestFirst(t *testing.T) {
	svc, records := testService(t)
	ctx := context.Background()
	first := seedRecord(t, records, 1, "pikachu")
	second := seedRecord(t, records, 1, "bulbasaur")
	other := seedRecord(t, records, 3, "eevee")

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }
	if _, err := svc.Create(ctx, 1, 2, first.ID, nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	svc.now = func() time.Time { return base.Add(time.Minute) }
	if _, err := svc.Create(ctx, 1, 2, second.ID, nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	svc.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, err := svc.Create(ctx, 3, 1, other.ID, nil); err != nil {
		t.Fatalf("create: %v", err)
	}

	trades, err := svc.ListForUser(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(trades) != 3 {
		t.Fatalf("expected trades on both sides, got %d", len(trades))
	}
	// Newest first, with the incoming offer on top.
	if trades[0].InitiatorUserID != 3 {
		t.Fatalf("expected incoming trade first, got %+v", trades[0])
	}
	if trades[1].InitiatorPokemonID != second.ID || trades[2].InitiatorPokemonID != first.ID {
		t.Fatalf("unexpected order: %+v", trades)
	}

	trades, err = svc.ListForUser(ctx, 4)
	if err != nil {
		t.Fatalf("list uninvolved: %v", err)
	}
	if len(trades) != 0 {
		t.Fatalf("uninvolved user should see no trades, got %d", len(trades))
	}
}
