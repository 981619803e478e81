package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/poggerdex/poggerdex/internal/trade"
)

// RegisterTradeRoutes wires trade endpoints. Mutations sit behind the
// idempotency middleware so a retried response cannot settle twice.
func RegisterTradeRoutes(r fiber.Router, h *trade.Handler, idempotency fiber.Handler) {
	group := r.Group("/trades", idempotency)
	group.Get("/", h.List)
	group.Post("/", h.Create)
	group.Post("/:id/respond", h.Respond)
}
