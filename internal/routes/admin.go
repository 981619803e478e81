package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/poggerdex/poggerdex/internal/admin"
	"github.com/poggerdex/poggerdex/internal/middleware"
)

// RegisterAdminRoutes wires the admin panel behind the admin guard.
func RegisterAdminRoutes(r fiber.Router, h *admin.Handler) {
	group := r.Group("/admin", middleware.AdminOnly())
	group.Get("/users", h.ListUsers)
	group.Post("/users/:id/pokemon", h.GrantPokemon)
	group.Put("/users/:id/capture-limit", h.SetCaptureLimit)
}
