package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/poggerdex/poggerdex/internal/collection"
)

// RegisterCollectionRoutes wires the collection read endpoints.
func RegisterCollectionRoutes(r fiber.Router, h *collection.Handler) {
	group := r.Group("/pokemon")
	group.Get("/", h.List)
	group.Get("/stats", h.Stats)
}
