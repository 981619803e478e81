package companion

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/poggerdex/poggerdex/internal/session"
)

// Handler exposes companion HTTP endpoints.
type Handler struct {
	svc *Service
}

// NewHandler builds a companion HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type companionResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ImageURL       string `json:"image_url,omitempty"`
	EvolutionStage int    `json:"evolution_stage"`
	CaptureCount   int    `json:"capture_count"`
	StageProgress  int    `json:"stage_progress"`
	UntilNextStage int    `json:"until_next_stage"`
}

// Get returns the caller's companion.
func (h *Handler) Get(c *fiber.Ctx) error {
	user, _ := c.Locals("current_user").(session.User)
	comp, err := h.svc.Get(c.UserContext(), user.ID)
	if err != nil {
		if errors.Is(err, ErrNoCompanion) {
			return fiber.NewError(http.StatusNotFound, ErrNoCompanion.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, "companion store failure")
	}
	return c.Status(http.StatusOK).JSON(toResponse(comp))
}

type renameRequest struct {
	Name string `json:"name"`
}

// Rename updates the caller's companion name.
func (h *Handler) Rename(c *fiber.Ctx) error {
	user, _ := c.Locals("current_user").(session.User)
	var req renameRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	comp, err := h.svc.Rename(c.UserContext(), user.ID, req.Name)
	if err != nil {
		if errors.Is(err, ErrNoCompanion) {
			return fiber.NewError(http.StatusNotFound, ErrNoCompanion.Error())
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusOK).JSON(toResponse(comp))
}

func toResponse(comp Companion) companionResponse {
	done, left := comp.Progress()
	return companionResponse{
		ID:             comp.ID,
		Name:           comp.Name,
		ImageURL:       comp.ImageURL,
		EvolutionStage: comp.EvolutionStage,
		CaptureCount:   comp.CaptureCount,
		StageProgress:  done,
		UntilNextStage: left,
	}
}
