package quota

import (
	"testing"
	"time"
)

func TestRemainingInsideWindow(t *testing.T) {
	last := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	l := Limit{UserID: 1, CapturesPerHour: 5, LastCaptureTime: last, CapturesSinceReset: 4}

	// Half an hour into the window: one slot left, reset an hour after the
	// last capture.
	now := last.Add(30 * time.Minute)
	a := Remaining(l, now)
	if a.Remaining != 1 {
		t.Fatalf("expected remaining 1, got %d", a.Remaining)
	}
	if !a.NextReset.Equal(last.Add(time.Hour)) {
		t.Fatalf("expected reset at %v, got %v", last.Add(time.Hour), a.NextReset)
	}
}

func TestRemainingAfterWindowRollover(t *testing.T) {
	last := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	l := Limit{UserID: 1, CapturesPerHour: 5, LastCaptureTime: last, CapturesSinceReset: 5}

	a := Remaining(l, last.Add(time.Hour))
	if a.Remaining != 5 {
		t.Fatalf("expected full quota after rollover, got %d", a.Remaining)
	}
	if !a.NextReset.IsZero() {
		t.Fatalf("expected no reset time after rollover, got %v", a.NextReset)
	}
}

func TestRemainingNeverNegative(t *testing.T) {
	last := time.Now().UTC()
	l := Limit{UserID: 1, CapturesPerHour: 3, LastCaptureTime: last, CapturesSinceReset: 7}

	if a := Remaining(l, last.Add(time.Minute)); a.Remaining != 0 {
		t.Fatalf("expected remaining clamped to 0, got %d", a.Remaining)
	}
}

func TestConsumeWithinWindow(t *testing.T) {
	last := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	l := Limit{UserID: 1, CapturesPerHour: 5, LastCaptureTime: last, CapturesSinceReset: 2}

	now := last.Add(10 * time.Minute)
	got := Consume(l, now)
	if got.CapturesSinceReset != 3 {
		t.Fatalf("expected counter 3, got %d", got.CapturesSinceReset)
	}
	if !got.LastCaptureTime.Equal(now) {
		t.Fatalf("expected last capture %v, got %v", now, got.LastCaptureTime)
	}
}

func TestConsumeRestartsRolledOverWindow(t *testing.T) {
	last := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	l := Limit{UserID: 1, CapturesPerHour: 5, LastCaptureTime: last, CapturesSinceReset: 5}

	now := last.Add(2 * time.Hour)
	got := Consume(l, now)
	if got.CapturesSinceReset != 1 {
		t.Fatalf("expected counter restarted at 1, got %d", got.CapturesSinceReset)
	}
}

func TestConsumeThenRemainingArithmetic(t *testing.T) {
	last := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	quota := 8

	for used := 0; used < quota; used++ {
		l := Limit{UserID: 1, CapturesPerHour: quota, LastCaptureTime: last, CapturesSinceReset: used}
		now := last.Add(time.Minute)
		after := Consume(l, now)
		a := Remaining(after, now)
		if a.Remaining != quota-(used+1) {
			t.Fatalf("used=%d: expected remaining %d, got %d", used, quota-(used+1), a.Remaining)
		}
	}
}
