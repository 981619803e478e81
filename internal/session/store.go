package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	userKeyPrefix = "session:user:"
	descKeyPrefix = "session:desc:"
)

// ErrNoSession is returned when no valid session exists for a token. Expired
// or malformed entries are cleared before this is reported, so the caller
// treats it as logged-out rather than as a failure.
var ErrNoSession = errors.New("no active session")

// Store keeps the serialized current-user record and session descriptor in
// Redis as two string entries per token.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore builds a session store with the given session lifetime.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Create persists a fresh session for the user and returns its opaque token.
func (s *Store) Create(ctx context.Context, user User) (string, Session, error) {
	now := time.Now().UTC()
	sess := Session{
		UserID:       user.ID,
		SessionID:    now.UnixMilli(),
		LastActivity: now,
		ExpiresAt:    now.Add(s.ttl),
	}
	token := uuid.NewString()
	if err := s.write(ctx, token, user, sess, s.ttl); err != nil {
		return "", Session{}, err
	}
	return token, sess, nil
}

// Load deserializes both records for the token. Missing, malformed, or
// expired entries yield ErrNoSession after clearing the stored state.
func (s *Store) Load(ctx context.Context, token string) (User, Session, error) {
	vals, err := s.rdb.MGet(ctx, userKeyPrefix+token, descKeyPrefix+token).Result()
	if err != nil {
		return User{}, Session{}, fmt.Errorf("load session: %w", err)
	}

	rawUser, okUser := vals[0].(string)
	rawSess, okSess := vals[1].(string)
	if !okUser || !okSess {
		_ = s.Clear(ctx, token)
		return User{}, Session{}, ErrNoSession
	}

	var user User
	var sess Session
	if json.Unmarshal([]byte(rawUser), &user) != nil || json.Unmarshal([]byte(rawSess), &sess) != nil {
		_ = s.Clear(ctx, token)
		return User{}, Session{}, ErrNoSession
	}

	if !validAt(sess, time.Now().UTC(), s.ttl) {
		_ = s.Clear(ctx, token)
		return User{}, Session{}, ErrNoSession
	}

	return user, sess, nil
}

// Touch bumps the session's last-activity timestamp. The absolute expiry is
// left untouched.
func (s *Store) Touch(ctx context.Context, token string, user User, sess Session) (Session, error) {
	now := time.Now().UTC()
	sess.LastActivity = now
	remaining := sess.ExpiresAt.Sub(now)
	if remaining <= 0 {
		_ = s.Clear(ctx, token)
		return Session{}, ErrNoSession
	}
	if err := s.write(ctx, token, user, sess, remaining); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Clear removes both entries for the token.
func (s *Store) Clear(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, userKeyPrefix+token, descKeyPrefix+token).Err()
}

func (s *Store) write(ctx context.Context, token string, user User, sess Session, expiry time.Duration) error {
	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	rawSess, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, userKeyPrefix+token, rawUser, expiry)
	pipe.Set(ctx, descKeyPrefix+token, rawSess, expiry)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
