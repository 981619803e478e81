package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/poggerdex/poggerdex/internal/companion"
)

// RegisterCompanionRoutes wires the companion endpoints.
func RegisterCompanionRoutes(r fiber.Router, h *companion.Handler) {
	group := r.Group("/companion")
	group.Get("/", h.Get)
	group.Put("/name", h.Rename)
}
