package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/poggerdex/poggerdex/internal/ranking"
)

// RegisterRankingRoutes wires the leaderboard endpoints.
func RegisterRankingRoutes(r fiber.Router, h *ranking.Handler) {
	group := r.Group("/rankings")
	group.Get("/", h.Board)
	group.Get("/:board", h.Board)
}
