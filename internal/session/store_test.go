package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cache.Close() })

	return NewStore(cache, ttl), mr
}

func TestCreateAndLoadRoundtrip(t *testing.T) {
	store, _ := setupStore(t, 24*time.Hour)
	ctx := context.Background()

	user := User{ID: 7, Username: "ash", IsAdmin: false}
	token, sess, err := store.Create(ctx, user)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if sess.UserID != user.ID {
		t.Fatalf("expected session user %d, got %d", user.ID, sess.UserID)
	}

	gotUser, gotSess, err := store.Load(ctx, token)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if gotUser != user {
		t.Fatalf("expected user %+v, got %+v", user, gotUser)
	}
	if gotSess.SessionID != sess.SessionID {
		t.Fatalf("expected session id %d, got %d", sess.SessionID, gotSess.SessionID)
	}
}

func TestLoadUnknownTokenYieldsNoSession(t *testing.T) {
	store, _ := setupStore(t, 24*time.Hour)

	if _, _, err := store.Load(context.Background(), "missing"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestLoadMalformedEntryClearsState(t *testing.T) {
	store, mr := setupStore(t, 24*time.Hour)
	ctx := context.Background()

	token, _, err := store.Create(ctx, User{ID: 1, Username: "misty"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	mr.Set(descKeyPrefix+token, "{not json")

	if _, _, err := store.Load(ctx, token); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if mr.Exists(userKeyPrefix + token) {
		t.Fatal("expected user entry cleared after malformed load")
	}
}

func TestLoadStaleActivityClearsState(t *testing.T) {
	store, mr := setupStore(t, 24*time.Hour)
	ctx := context.Background()

	// Descriptor whose last activity is older than the 24h window.
	sess := Session{
		UserID:       3,
		SessionID:    time.Now().Add(-30 * time.Hour).UnixMilli(),
		LastActivity: time.Now().UTC().Add(-25 * time.Hour),
		ExpiresAt:    time.Now().UTC().Add(time.Hour),
	}
	rawSess, _ := json.Marshal(sess)
	rawUser, _ := json.Marshal(User{ID: 3, Username: "brock"})
	mr.Set(userKeyPrefix+"tok", string(rawUser))
	mr.Set(descKeyPrefix+"tok", string(rawSess))

	if _, _, err := store.Load(ctx, "tok"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if mr.Exists(descKeyPrefix + "tok") {
		t.Fatal("expected stale session cleared")
	}
}

func TestTouchBumpsLastActivity(t *testing.T) {
	store, _ := setupStore(t, 24*time.Hour)
	ctx := context.Background()

	user := User{ID: 9, Username: "gary"}
	token, sess, err := store.Create(ctx, user)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	before := sess.LastActivity
	time.Sleep(5 * time.Millisecond)

	touched, err := store.Touch(ctx, token, user, sess)
	if err != nil {
		t.Fatalf("touch: %v", err)
	}
	if !touched.LastActivity.After(before) {
		t.Fatalf("expected last activity after %v, got %v", before, touched.LastActivity)
	}
	if !touched.ExpiresAt.Equal(sess.ExpiresAt) {
		t.Fatalf("touch must not move the absolute expiry: %v vs %v", sess.ExpiresAt, touched.ExpiresAt)
	}
}

func TestClearRemovesBothEntries(t *testing.T) {
	store, mr := setupStore(t, 24*time.Hour)
	ctx := context.Background()

	token, _, err := store.Create(ctx, User{ID: 2, Username: "jessie"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := store.Clear(ctx, token); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if mr.Exists(userKeyPrefix+token) || mr.Exists(descKeyPrefix+token) {
		t.Fatal("expected both session entries removed")
	}
}

func TestValidityWindow(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ttl := 24 * time.Hour
	sess := Session{
		UserID:       1,
		SessionID:    created.UnixMilli(),
		LastActivity: created,
		ExpiresAt:    created.Add(ttl),
	}

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"immediately", created.Add(time.Second), true},
		{"mid window", created.Add(12 * time.Hour), true},
		{"just before expiry", created.Add(ttl - time.Second), true},
		{"at expiry", created.Add(ttl), false},
		{"after expiry", created.Add(ttl + time.Hour), false},
	}
	for _, tc := range cases {
		if got := validAt(sess, tc.now, ttl); got != tc.want {
			t.Fatalf("%s: expected valid=%v at %v", tc.name, tc.want, tc.now)
		}
	}
}
