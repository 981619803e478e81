package quota

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"
)

// ErrExhausted is returned by Spend when the current window has no
// allowance left.
var ErrExhausted = errors.New("hourly capture allowance exhausted")

// unlimitedRemaining is the count reported for users that bypass limiting.
const unlimitedRemaining = math.MaxInt32

// Service tracks capture allowances. Read-modify-write of a given user's
// limit is serialized through a per-user mutex so two rapid captures cannot
// both pass the same allowance check.
type Service struct {
	repo         Repository
	defaultQuota int
	locks        sync.Map // user id -> *sync.Mutex
}

// NewService builds an allowance service. Users without a configured limit
// row fall back to defaultQuota captures per hour.
func NewService(repo Repository, defaultQuota int) *Service {
	if defaultQuota <= 0 {
		defaultQuota = 1
	}
	return &Service{repo: repo, defaultQuota: defaultQuota}
}

// Allowance reports the remaining captures for a user. Admins always see an
// unlimited allowance with no reset time.
func (s *Service) Allowance(ctx context.Context, userID int64, admin bool) (Allowance, error) {
	if admin {
		return Allowance{Remaining: unlimitedRemaining, Unlimited: true}, nil
	}
	limit, err := s.load(ctx, userID)
	if err != nil {
		return Allowance{}, err
	}
	return Remaining(limit, time.Now().UTC()), nil
}

// Spend consumes one allowance slot, failing with ErrExhausted when the
// window is spent. For admins this is a no-op.
func (s *Service) Spend(ctx context.Context, userID int64, admin bool) (Allowance, error) {
	if admin {
		return Allowance{Remaining: unlimitedRemaining, Unlimited: true}, nil
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	limit, err := s.load(ctx, userID)
	if err != nil {
		return Allowance{}, err
	}

	now := time.Now().UTC()
	current := Remaining(limit, now)
	if current.Remaining <= 0 {
		return current, ErrExhausted
	}

	limit = Consume(limit, now)
	if err := s.repo.Upsert(ctx, limit); err != nil {
		return Allowance{}, err
	}
	return Remaining(limit, now), nil
}

// SetQuota replaces a user's hourly quota and restarts the window. Used by
// the admin panel.
func (s *Service) SetQuota(ctx context.Context, userID int64, perHour int) error {
	if perHour <= 0 {
		return errors.New("captures per hour must be positive")
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	return s.repo.Upsert(ctx, Limit{
		UserID:             userID,
		CapturesPerHour:    perHour,
		LastCaptureTime:    time.Now().UTC(),
		CapturesSinceReset: 0,
	})
}

func (s *Service) load(ctx context.Context, userID int64) (Limit, error) {
	limit, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNoLimit) {
			return Limit{UserID: userID, CapturesPerHour: s.defaultQuota}, nil
		}
		return Limit{}, err
	}
	return limit, nil
}

func (s *Service) userLock(userID int64) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	return v.(*sync.Mutex)
}
