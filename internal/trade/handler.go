package trade

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/poggerdex/poggerdex/internal/session"
)

// Handler exposes trade HTTP endpoints.
type Handler struct {
	svc *Service
}

// NewHandler builds a trade HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type tradePayload struct {
	ID                 int64  `json:"id"`
	InitiatorUserID    int64  `json:"initiator_user_id"`
	ReceiverUserID     int64  `json:"receiver_user_id"`
	InitiatorPokemonID int64  `json:"initiator_pokemon_id"`
	ReceiverPokemonID  *int64 `json:"receiver_pokemon_id,omitempty"`
	Status             Status `json:"status"`
	CreatedAt          string `json:"created_at"`
}

// List serves the caller's trades, newest first.
func (h *Handler) List(c *fiber.Ctx) error {
	user, _ := c.Locals("current_user").(session.User)

	trades, err := h.svc.ListForUser(c.UserContext(), user.ID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "trade store failure")
	}

	payloads := make([]tradePayload, 0, len(trades))
	for _, t := range trades {
		payloads = append(payloads, toTradePayload(t))
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"trades": payloads})
}

type createRequest struct {
	ReceiverUserID   int64  `json:"receiver_user_id"`
	OfferedPokemonID int64  `json:"offered_pokemon_id"`
	WantedPokemonID  *int64 `json:"wanted_pokemon_id"`
}

// Create opens a pending trade offer from the caller.
func (h *Handler) Create(c *fiber.Ctx) error {
	user, _ := c.Locals("current_user").(session.User)

	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "malformed trade request")
	}
	if req.ReceiverUserID == 0 || req.OfferedPokemonID == 0 {
		return fiber.NewError(http.StatusBadRequest, "receiver and offered pokemon are required")
	}

	t, err := h.svc.Create(c.UserContext(), user.ID, req.ReceiverUserID, req.OfferedPokemonID, req.WantedPokemonID)
	if err != nil {
		return tradeError(err)
	}
	return c.Status(http.StatusCreated).JSON(toTradePayload(t))
}

type respondRequest struct {
	Accept bool `json:"accept"`
}

// Respond settles the pending trade named by the :id path parameter.
func (h *Handler) Respond(c *fiber.Ctx) error {
	user, _ := c.Locals("current_user").(session.User)

	tradeID, err := c.ParamsInt("id")
	if err != nil || tradeID <= 0 {
		return fiber.NewError(http.StatusBadRequest, "invalid trade id")
	}

	var req respondRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "malformed trade response")
	}

	t, err := h.svc.Respond(c.UserContext(), int64(tradeID), user.ID, req.Accept)
	if err != nil {
		return tradeError(err)
	}
	return c.Status(http.StatusOK).JSON(toTradePayload(t))
}

func tradeError(err error) error {
	switch {
	case errors.Is(err, ErrTradeNotFound):
		return fiber.NewError(http.StatusNotFound, ErrTradeNotFound.Error())
	case errors.Is(err, ErrNotReceiver):
		return fiber.NewError(http.StatusForbidden, ErrNotReceiver.Error())
	case errors.Is(err, ErrNotPending):
		return fiber.NewError(http.StatusConflict, ErrNotPending.Error())
	case errors.Is(err, ErrNotOwner), errors.Is(err, ErrSelfTrade):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, "trade store failure")
	}
}

func toTradePayload(t Trade) tradePayload {
	return tradePayload{
		ID:                 t.ID,
		InitiatorUserID:    t.InitiatorUserID,
		ReceiverUserID:     t.ReceiverUserID,
		InitiatorPokemonID: t.InitiatorPokemonID,
		ReceiverPokemonID:  t.ReceiverPokemonID,
		Status:             t.Status,
		CreatedAt:          t.CreatedAt.Format(time.RFC3339),
	}
}
