package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/poggerdex/poggerdex/internal/identity"
)

// RegisterAuthRoutes wires the login endpoints. Logout lives in the
// protected group since it needs an authenticated session.
func RegisterAuthRoutes(r fiber.Router, h *identity.Handler, throttle fiber.Handler) {
	group := r.Group("/auth")
	if throttle != nil {
		group.Post("/login", throttle, h.LoginByCode)
		group.Post("/login/credentials", throttle, h.LoginByCredentials)
	} else {
		group.Post("/login", h.LoginByCode)
		group.Post("/login/credentials", h.LoginByCredentials)
	}
}
