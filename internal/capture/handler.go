package capture

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/poggerdex/poggerdex/internal/pokedex"
	"github.com/poggerdex/poggerdex/internal/quota"
	"github.com/poggerdex/poggerdex/internal/session"
)

// Handler exposes capture HTTP endpoints.
type Handler struct {
	svc          *Service
	catalog      pokedex.Catalog
	speciesLimit int
}

// NewHandler builds a capture HTTP handler. speciesLimit bounds the
// catchable species listing requested from the catalog.
func NewHandler(svc *Service, catalog pokedex.Catalog, speciesLimit int) *Handler {
	return &Handler{svc: svc, catalog: catalog, speciesLimit: speciesLimit}
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

type allowancePayload struct {
	Remaining int    `json:"remaining"`
	Unlimited bool   `json:"unlimited,omitempty"`
	NextReset string `json:"next_reset,omitempty"`
}

type outcomePayload struct {
	Record  recordPayload `json:"record"`
	Message string        `json:"message"`
}

// CatchOne captures a single random species for the caller.
func (h *Handler) CatchOne(c *fiber.Ctx) error {
	user, _ := c.Locals("current_user").(session.User)

	species, err := h.catalog.List(c.UserContext(), h.speciesLimit)
	if err != nil {
		return fiber.NewError(http.StatusBadGateway, "species catalog unavailable")
	}

	out, err := h.svc.CatchOne(c.UserContext(), user.ID, user.IsAdmin, species)
	if err != nil {
		return captureError(c, err, out.Allowance)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"outcome":   toOutcomePayload(out),
		"allowance": toAllowancePayload(out.Allowance),
	})
}

type batchRequest struct {
	Count int `json:"count"`
}

// CatchBatch captures up to ten species sequentially. Completed captures
// are reported even when the batch stops early.
func (h *Handler) CatchBatch(c *fiber.Ctx) error {
	user, _ := c.Locals("current_user").(session.User)

	var req batchRequest
	_ = c.BodyParser(&req)
	if req.Count == 0 {
		req.Count = MaxBatch
	}

	species, err := h.catalog.List(c.UserContext(), h.speciesLimit)
	if err != nil {
		return fiber.NewError(http.StatusBadGateway, "species catalog unavailable")
	}

	outcomes, err := h.svc.CatchBatch(c.UserContext(), user.ID, user.IsAdmin, species, req.Count)

	payloads := make([]outcomePayload, 0, len(outcomes))
	var last quota.Allowance
	for _, out := range outcomes {
		payloads = append(payloads, toOutcomePayload(out))
		last = out.Allowance
	}

	if err != nil && len(outcomes) == 0 {
		return captureError(c, err, last)
	}

	resp := fiber.Map{
		"outcomes":  payloads,
		"allowance": toAllowancePayload(last),
	}
	if err != nil {
		// Partial batch: completed units stand, the stop reason rides along.
		resp["stopped"] = err.Error()
	}
	return c.Status(http.StatusOK).JSON(resp)
}

func captureError(c *fiber.Ctx, err error, allowance quota.Allowance) error {
	switch {
	case errors.Is(err, quota.ErrExhausted):
		return c.Status(http.StatusTooManyRequests).JSON(fiber.Map{
			"error":     quota.ErrExhausted.Error(),
			"allowance": toAllowancePayload(allowance),
		})
	case errors.Is(err, pokedex.ErrCatalogFetch):
		return fiber.NewError(http.StatusBadGateway, "species catalog unavailable")
	case errors.Is(err, ErrNoSpecies):
		return fiber.NewError(http.StatusServiceUnavailable, ErrNoSpecies.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, "capture store failure")
	}
}

func toOutcomePayload(out Outcome) outcomePayload {
	return outcomePayload{Record: toRecordPayload(out.Record), Message: out.Message}
}

func toRecordPayload(rec Record) recordPayload {
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

func toAllowancePayload(a quota.Allowance) allowancePayload {
	p := allowancePayload{Remaining: a.Remaining, Unlimited: a.Unlimited}
	if !a.NextReset.IsZero() {
		p.NextReset = a.NextReset.Format(time.RFC3339)
	}
	return p
}
