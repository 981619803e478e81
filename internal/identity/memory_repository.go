package identity

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepository is an in-memory user/code store for tests and dev mode.
type MemoryRepository struct {
	mu     sync.RWMutex
	users  map[int64]User
	hashes map[string][]byte
	codes  map[string]VerificationCode
	nextID int64
}

// NewMemoryRepository builds an empty in-memory identity repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:  make(map[int64]User),
		hashes: make(map[string][]byte),
		codes:  make(map[string]VerificationCode),
		nextID: 1,
	}
}

// SeedUser inserts a user and returns it with an assigned id.
func (r *MemoryRepository) SeedUser(user User) User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	} else if user.ID >= r.nextID {
		r.nextID = user.ID + 1
	}
	r.users[user.ID] = user
	return user
}

// SeedCredentials stores a password hash for a username.
func (r *MemoryRepository) SeedCredentials(username string, hash []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hashes[username] = hash
}

// SeedCode registers a verification code.
func (r *MemoryRepository) SeedCode(code VerificationCode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes[code.Code] = code
}

func (r *MemoryRepository) FindByID(_ context.Context, id int64) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *MemoryRepository) FindByUsername(_ context.Context, username string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (r *MemoryRepository) List(_ context.Context) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (r *MemoryRepository) PasswordHash(_ context.Context, username string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	hash, ok := r.hashes[username]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return hash, nil
}

func (r *MemoryRepository) ConsumeCode(_ context.Context, code string, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	vc, ok := r.codes[code]
	if !ok || vc.Used || !vc.ExpiresAt.After(now) {
		return 0, ErrInvalidOrExpiredCode
	}
	vc.Used = true
	r.codes[code] = vc
	return vc.UserID, nil
}
