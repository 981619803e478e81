package collection

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/poggerdex/poggerdex/internal/capture"
	"github.com/poggerdex/poggerdex/internal/session"
)

// Handler exposes collection read endpoints.
type Handler struct {
	svc *Service
}

// NewHandler builds a collection HTTP handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type recordPayload struct {
	ID        int64  `json:"id"`
	Species   string `json:"species"`
	ImageURL  string `json:"image_url"`
	Shiny     bool   `json:"is_shiny"`
	Legendary bool   `json:"is_legendary"`
	Mythical  bool   `json:"is_mythical"`
	Count     int    `json:"count"`
}

// List serves the caller's collection, filtered and sorted by query
// parameters: search, category (all|shiny|legendary|mythical) and sort
// (name|count).
func (h *Handler) List(c *fiber.Ctx) error {
	user, _ := c.Locals("current_user").(session.User)

	q := Query{
		Search:   c.Query("search"),
		Category: Category(c.Query("category", string(CategoryAll))),
		Sort:     Sort(c.Query("sort", string(SortByName))),
	}

	records, err := h.svc.List(c.UserContext(), user.ID, q)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "collection store failure")
	}

	payloads := make([]recordPayload, 0, len(records))
	for _, rec := range records {
		payloads = append(payloads, toRecordPayload(rec))
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"pokemon": payloads,
		"total":   len(payloads),
	})
}

// Stats serves the caller's collection totals.
func (h *Handler) Stats(c *fiber.Ctx) error {
	user, _ := c.Locals("current_user").(session.User)

	st, err := h.svc.Stats(c.UserContext(), user.ID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "collection store failure")
	}
	return c.Status(http.StatusOK).JSON(st)
}

func toRecordPayload(rec capture.Record) recordPayload {
	return recordPayload{
		ID:        rec.ID,
		Species:   rec.Species,
		ImageURL:  rec.ImageURL,
		Shiny:     rec.Shiny,
		Legendary: rec.Legendary,
		Mythical:  rec.Mythical,
		Count:     rec.Count,
	}
}
