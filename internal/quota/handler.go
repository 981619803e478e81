package quota

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/poggerdex/poggerdex/internal/session"
)

// Handler exposes the allowance endpoint.
type Handler struct {
	svc *Service
}

// NewHandler builds a quota HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Allowance reports the caller's remaining captures and next window reset.
func (h *Handler) Allowance(c *fiber.Ctx) error {
	user, _ := c.Locals("current_user").(session.User)

	a, err := h.svc.Allowance(c.UserContext(), user.ID, user.IsAdmin)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "allowance store failure")
	}

	resp := fiber.Map{
		"remaining": a.Remaining,
		"unlimited": a.Unlimited,
	}
	if !a.NextReset.IsZero() {
		resp["next_reset"] = a.NextReset.Format(time.RFC3339)
	}
	return c.Status(http.StatusOK).JSON(resp)
}
