package companion

import (
	"context"
	"errors"
	"strings"
)

// Service manages companion progression.
type Service struct {
	repo Repository
}

// NewService creates a companion service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns a user's companion.
func (s *Service) Get(ctx context.Context, userID int64) (Companion, error) {
	return s.repo.GetByUser(ctx, userID)
}

// Rename updates the companion's display name.
func (s *Service) Rename(ctx context.Context, userID int64, name string) (Companion, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Companion{}, errors.New("companion name must not be empty")
	}

	c, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return Companion{}, err
	}
	c.Name = name
	if err := s.repo.Update(ctx, c); err != nil {
		return Companion{}, err
	}
	return c, nil
}

// RecordCapture advances the companion by one capture, evolving it when a
// full stage of captures is complete. Users without a companion are
// skipped.
func (s *Service) RecordCapture(ctx context.Context, userID int64) error {
	c, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNoCompanion) {
			return nil
		}
		return err
	}

	c.CaptureCount++
	if c.CaptureCount%capturesPerStage == 0 {
		c.EvolutionStage++
	}
	return s.repo.Update(ctx, c)
}
