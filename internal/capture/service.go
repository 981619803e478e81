package capture

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/poggerdex/poggerdex/internal/companion"
	"github.com/poggerdex/poggerdex/internal/notification"
	"github.com/poggerdex/poggerdex/internal/pokedex"
	"github.com/poggerdex/poggerdex/internal/quota"
)

const (
	// ShinyOdds is the fixed per-capture probability of a shiny outcome.
	ShinyOdds = 0.01

	// MaxBatch caps how many captures a single batch request may attempt.
	MaxBatch = 10
)

// ErrNoSpecies is returned when the catchable species list is empty.
var ErrNoSpecies = errors.New("no catchable species available")

// Outcome is the result of one successful capture.
type Outcome struct {
	Record    Record
	Message   string
	Allowance quota.Allowance
}

// Service resolves captures against the species catalog and the record
// store.
type Service struct {
	catalog    pokedex.Catalog
	repo       Repository
	allowances *quota.Service
	companions *companion.Service
	notifier   notification.Notifier

	roll func() float64
	pick func(n int) int
}

// NewService builds a capture service. The companion service may be nil.
func NewService(catalog pokedex.Catalog, repo Repository, allowances *quota.Service, companions *companion.Service, notifier notification.Notifier) *Service {
	return &Service{
		catalog:    catalog,
		repo:       repo,
		allowances: allowances,
		companions: companions,
		notifier:   notifier,
		roll:       rand.Float64,
		pick:       rand.Intn,
	}
}

// CatchOne captures one randomly selected species for the user. The
// allowance slot is reserved atomically before resolution so two rapid
// requests cannot both pass the same check.
func (s *Service) CatchOne(ctx context.Context, userID int64, admin bool, species []pokedex.SpeciesRef) (Outcome, error) {
	if len(species) == 0 {
		return Outcome{}, ErrNoSpecies
	}

	allowance, err := s.allowances.Spend(ctx, userID, admin)
	if err != nil {
		return Outcome{Allowance: allowance}, err
	}

	name := species[s.pick(len(species))].Name
	return s.resolve(ctx, userID, name, s.roll() < ShinyOdds, allowance)
}

// CatchBatch performs up to n sequential captures, each consuming one
// allowance slot. The loop stops early when the allowance runs out;
// completed units are kept, never rolled back.
func (s *Service) CatchBatch(ctx context.Context, userID int64, admin bool, species []pokedex.SpeciesRef, n int) ([]Outcome, error) {
	if n <= 0 {
		n = 1
	}
	if n > MaxBatch {
		n = MaxBatch
	}

	var outcomes []Outcome
	for i := 0; i < n; i++ {
		out, err := s.CatchOne(ctx, userID, admin, species)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}

// Grant records a chosen species for a user with a chosen shininess,
// bypassing allowance tracking. Used by the admin panel.
func (s *Service) Grant(ctx context.Context, userID int64, speciesName string, shiny bool) (Record, error) {
	out, err := s.resolveForced(ctx, userID, speciesName, shiny)
	if err != nil {
		return Record{}, err
	}
	return out.Record, nil
}

func (s *Service) resolve(ctx context.Context, userID int64, name string, shiny bool, allowance quota.Allowance) (Outcome, error) {
	out, err := s.resolveForced(ctx, userID, name, shiny)
	if err != nil {
		return Outcome{Allowance: allowance}, err
	}
	out.Allowance = allowance

	if s.companions != nil {
		// Companion progression is best effort; a failure must not undo a
		// recorded capture.
		_ = s.companions.RecordCapture(ctx, userID)
	}
	return out, nil
}

func (s *Service) resolveForced(ctx context.Context, userID int64, name string, shiny bool) (Outcome, error) {
	existing, err := s.repo.FindByUserAndSpecies(ctx, userID, name)
	haveExisting := err == nil
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		return Outcome{}, err
	}

	details, err := s.catalog.Get(ctx, name)
	if err != nil {
		return Outcome{}, err
	}

	var rec Record
	if haveExisting {
		existing.Count++
		// Ever-caught-shiny: a shiny roll upgrades the record permanently,
		// an ordinary roll never downgrades it.
		if shiny && !existing.Shiny {
			existing.Shiny = true
			existing.ImageURL = details.Image(true)
		}
		if err := s.repo.Update(ctx, existing); err != nil {
			return Outcome{}, err
		}
		rec = existing
	} else {
		rec = Record{
			UserID:    userID,
			Species:   name,
			ImageURL:  details.Image(shiny),
			Shiny:     shiny,
			Legendary: details.Legendary,
			Mythical:  details.Mythical,
			Count:     1,
		}
		rec, err = s.repo.Insert(ctx, rec)
		if err != nil {
			return Outcome{}, err
		}
	}

	message, kind := successMessage(rec, shiny)
	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        kind,
			Destination: fmt.Sprintf("user:%d", userID),
			Body:        message,
		})
	}

	return Outcome{Record: rec, Message: message}, nil
}

// successMessage picks the capture announcement, prioritized shiny over
// legendary/mythical over ordinary.
func successMessage(rec Record, shinyRoll bool) (string, string) {
	switch {
	case shinyRoll:
		return fmt.Sprintf("✨ Caught a shiny %s! ✨", rec.Species), notification.KindShinyCapture
	case rec.Legendary || rec.Mythical:
		return fmt.Sprintf("🌟 Caught the legendary %s! 🌟", rec.Species), notification.KindRareCapture
	case rec.Count > 1:
		return fmt.Sprintf("%s was caught again! Total: %d", rec.Species, rec.Count), notification.KindCapture
	default:
		return fmt.Sprintf("%s was caught!", rec.Species), notification.KindCapture
	}
}
