package trade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/poggerdex/poggerdex/internal/capture"
	"github.com/poggerdex/poggerdex/internal/notification"
)

var (
	// ErrNotReceiver is returned when someone other than the trade's
	// receiver tries to respond to it.
	ErrNotReceiver = errors.New("only the trade receiver may respond")

	// ErrNotPending is returned when responding to an already settled
	// trade.
	ErrNotPending = errors.New("trade is no longer pending")

	// ErrNotOwner is returned when the initiator offers a record they
	// do not hold.
	ErrNotOwner = errors.New("offered pokemon is not owned by the initiator")

	// ErrSelfTrade is returned when initiator and receiver are the same
	// user.
	ErrSelfTrade = errors.New("cannot open a trade with yourself")
)

// Service manages trade offers. Accepting or rejecting only settles the
// offer's status; record ownership is exchanged out of band.
type Service struct {
	repo     Repository
	records  capture.Repository
	notifier notification.Notifier

	now func() time.Time
}

// NewService builds a trade service. The notifier may be nil.
func NewService(repo Repository, records capture.Repository, notifier notification.Notifier) *Service {
	return &Service{
		repo:     repo,
		records:  records,
		notifier: notifier,
		now:      time.Now,
	}
}

// ListForUser returns the user's trades, either side, newest first.
func (s *Service) ListForUser(ctx context.Context, userID int64) ([]Trade, error) {
	return s.repo.ListForUser(ctx, userID)
}

// Create opens a pending trade. The initiator must own the offered
// record.
func (s *Service) Create(ctx context.Context, initiatorID, receiverID, offeredPokemonID int64, wantedPokemonID *int64) (Trade, error) {
	if initiatorID == receiverID {
		return Trade{}, ErrSelfTrade
	}

	rec, err := s.records.Get(ctx, offeredPokemonID)
	if errors.Is(err, capture.ErrRecordNotFound) {
		return Trade{}, ErrNotOwner
	}
	if err != nil {
		return Trade{}, err
	}
	if rec.UserID != initiatorID {
		return Trade{}, ErrNotOwner
	}

	return s.repo.Insert(ctx, Trade{
		InitiatorUserID:    initiatorID,
		ReceiverUserID:     receiverID,
		InitiatorPokemonID: offeredPokemonID,
		ReceiverPokemonID:  wantedPokemonID,
		Status:             StatusPending,
		CreatedAt:          s.now().UTC(),
	})
}

// Respond settles a pending trade. Only the receiver may respond, and
// only while the trade is pending; the settle is a conditional update
// so a raced double response cannot flip a settled trade.
func (s *Service) Respond(ctx context.Context, tradeID, userID int64, accept bool) (Trade, error) {
	t, err := s.repo.Get(ctx, tradeID)
	if err != nil {
		return Trade{}, err
	}
	if t.ReceiverUserID != userID {
		return Trade{}, ErrNotReceiver
	}
	if t.Status != StatusPending {
		return Trade{}, ErrNotPending
	}

	status := StatusRejected
	if accept {
		status = StatusAccepted
	}

	settled, err := s.repo.SettleIfPending(ctx, tradeID, status)
	if err != nil {
		return Trade{}, err
	}
	if !settled {
		return Trade{}, ErrNotPending
	}
	t.Status = status

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindTradeResolved,
			Destination: fmt.Sprintf("user:%d", t.InitiatorUserID),
			Body:        fmt.Sprintf("Your trade offer was %s", status),
		})
	}
	return t, nil
}
