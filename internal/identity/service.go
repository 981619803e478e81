package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidOrExpiredCode is returned when an access code does not match
	// an unused, unexpired verification record.
	ErrInvalidOrExpiredCode = errors.New("invalid or expired access code")

	// ErrInvalidCredentials is returned when a username/password login fails.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound indicates the referenced user record does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// Service verifies presented credentials against the record store.
type Service struct {
	repo Repository
}

// NewService creates a new identity service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// LoginByCode consumes a single-use access code and resolves its user.
// The code is marked used by one conditional update in the store, so a
// retried call after a successful consumption fails.
func (s *Service) LoginByCode(ctx context.Context, code string) (User, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return User{}, ErrInvalidOrExpiredCode
	}

	userID, err := s.repo.ConsumeCode(ctx, code, time.Now().UTC())
	if err != nil {
		return User{}, err
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

// LoginByCredentials authenticates the privileged account by username and
// password. Only admin-flagged users may log in this way; the comparison
// hash never leaves the store.
func (s *Service) LoginByCredentials(ctx context.Context, username, password string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}

	hash, err := s.repo.PasswordHash(ctx, username)
	if err != nil {
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return User{}, err
	}
	if !user.IsAdmin {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}
