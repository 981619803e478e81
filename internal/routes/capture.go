package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/poggerdex/poggerdex/internal/capture"
	"github.com/poggerdex/poggerdex/internal/pokedex"
	"github.com/poggerdex/poggerdex/internal/quota"
)

// RegisterCaptureRoutes wires the capture endpoints and the catchable
// species listing.
func RegisterCaptureRoutes(r fiber.Router, h *capture.Handler, allowances *quota.Handler, catalog pokedex.Catalog, speciesLimit int) {
	group := r.Group("/capture")
	group.Post("/", h.CatchOne)
	group.Post("/batch", h.CatchBatch)
	group.Get("/allowance", allowances.Allowance)

	r.Get("/species", func(c *fiber.Ctx) error {
		refs, err := catalog.List(c.UserContext(), speciesLimit)
		if err != nil {
			return fiber.NewError(http.StatusBadGateway, "species catalog unavailable")
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{"species": refs, "total": len(refs)})
	})
}
