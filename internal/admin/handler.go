package admin

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/poggerdex/poggerdex/internal/capture"
	"github.com/poggerdex/poggerdex/internal/identity"
	"github.com/poggerdex/poggerdex/internal/pokedex"
	"github.com/poggerdex/poggerdex/internal/quota"
)

// Handler exposes the admin panel endpoints. Routes using it must sit
// behind the admin middleware.
type Handler struct {
	users      identity.Repository
	captures   *capture.Service
	allowances *quota.Service
}

// NewHandler builds an admin HTTP handler.
func NewHandler(users identity.Repository, captures *capture.Service, allowances *quota.Service) *Handler {
	return &Handler{users: users, captures: captures, allowances: allowances}
}

type userPayload struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Phone     string `json:"phone,omitempty"`
	IsAdmin   bool   `json:"is_admin"`
	CreatedAt string `json:"created_at"`
}

// ListUsers serves every registered user.
func (h *Handler) ListUsers(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "user store failure")
	}

	payloads := make([]userPayload, 0, len(users))
	for _, u := range users {
		payloads = append(payloads, userPayload{
			ID:        u.ID,
			Username:  u.Username,
			Phone:     u.Phone,
			IsAdmin:   u.IsAdmin,
			CreatedAt: u.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"users": payloads})
}

type grantRequest struct {
	Species string `json:"species"`
	Shiny   bool   `json:"shiny"`
}

// GrantPokemon records a chosen species for the user named by :id,
// bypassing their capture allowance.
func (h *Handler) GrantPokemon(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID <= 0 {
		return fiber.NewError(http.StatusBadRequest, "invalid user id")
	}

	var req grantRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "malformed grant request")
	}
	req.Species = strings.ToLower(strings.TrimSpace(req.Species))
	if req.Species == "" {
		return fiber.NewError(http.StatusBadRequest, "species is required")
	}

	if _, err := h.users.FindByID(c.UserContext(), int64(userID)); err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return fiber.NewError(http.StatusNotFound, identity.ErrUserNotFound.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, "user store failure")
	}

	rec, err := h.captures.Grant(c.UserContext(), int64(userID), req.Species, req.Shiny)
	if err != nil {
		if errors.Is(err, pokedex.ErrCatalogFetch) {
			return fiber.NewError(http.StatusBadGateway, "species catalog unavailable")
		}
		return fiber.NewError(http.StatusInternalServerError, "capture store failure")
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"record": fiber.Map{
			"id":       rec.ID,
			"species":  rec.Species,
			"is_shiny": rec.Shiny,
			"count":    rec.Count,
		},
	})
}

type limitRequest struct {
	CapturesPerHour int `json:"captures_per_hour"`
}

// SetCaptureLimit replaces the hourly capture quota for the user named
// by :id and restarts their window.
func (h *Handler) SetCaptureLimit(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID <= 0 {
		return fiber.NewError(http.StatusBadRequest, "invalid user id")
	}

	var req limitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "malformed limit request")
	}
	if req.CapturesPerHour <= 0 {
		return fiber.NewError(http.StatusBadRequest, "captures per hour must be positive")
	}

	if _, err := h.users.FindByID(c.UserContext(), int64(userID)); err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return fiber.NewError(http.StatusNotFound, identity.ErrUserNotFound.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, "user store failure")
	}

	if err := h.allowances.SetQuota(c.UserContext(), int64(userID), req.CapturesPerHour); err != nil {
		return fiber.NewError(http.StatusInternalServerError, "allowance store failure")
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"user_id":           userID,
		"captures_per_hour": req.CapturesPerHour,
	})
}
