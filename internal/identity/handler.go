package identity

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/poggerdex/poggerdex/internal/session"
)

// Handler exposes login and logout endpoints.
type Handler struct {
	svc      *Service
	sessions *session.Store
}

// NewHandler builds an identity HTTP handler.
func NewHandler(svc *Service, sessions *session.Store) *Handler {
	return &Handler{svc: svc, sessions: sessions}
}

type codeLoginRequest struct {
	Code string `json:"code"`
}

type credentialLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userPayload struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Phone    string `json:"phone,omitempty"`
	IsAdmin  bool   `json:"is_admin"`
}

type loginResponse struct {
	Token     string      `json:"token"`
	User      userPayload `json:"user"`
	ExpiresAt string      `json:"expires_at"`
}

// LoginByCode consumes a one-time access code and opens a session. The code
// may arrive in the JSON body or, for the code-in-URL convenience, as a
// query parameter.
func (h *Handler) LoginByCode(c *fiber.Ctx) error {
	var req codeLoginRequest
	_ = c.BodyParser(&req)
	if req.Code == "" {
		req.Code = c.Query("code")
	}

	user, err := h.svc.LoginByCode(c.UserContext(), req.Code)
	if err != nil {
		if errors.Is(err, ErrInvalidOrExpiredCode) || errors.Is(err, ErrUserNotFound) {
			return fiber.NewError(http.StatusUnauthorized, ErrInvalidOrExpiredCode.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, "verification store failure")
	}

	return h.openSession(c, user)
}

// LoginByCredentials authenticates the privileged account.
func (h *Handler) LoginByCredentials(c *fiber.Ctx) error {
	var req credentialLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	user, err := h.svc.LoginByCredentials(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrUserNotFound) {
			return fiber.NewError(http.StatusUnauthorized, ErrInvalidCredentials.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, "identity store failure")
	}

	return h.openSession(c, user)
}

// Logout clears the caller's session state.
func (h *Handler) Logout(c *fiber.Ctx) error {
	token, _ := c.Locals("session_token").(string)
	if token == "" {
		return fiber.NewError(http.StatusUnauthorized, "missing session")
	}
	if err := h.sessions.Clear(c.UserContext(), token); err != nil {
		return fiber.NewError(http.StatusInternalServerError, "session store failure")
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "logged_out"})
}

func (h *Handler) openSession(c *fiber.Ctx, user User) error {
	snapshot := session.User{
		ID:       user.ID,
		Username: user.Username,
		Phone:    user.Phone,
		IsAdmin:  user.IsAdmin,
	}
	token, sess, err := h.sessions.Create(c.UserContext(), snapshot)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "session store failure")
	}
	return c.Status(http.StatusOK).JSON(loginResponse{
		Token: token,
		User: userPayload{
			ID:       user.ID,
			Username: user.Username,
			Phone:    user.Phone,
			IsAdmin:  user.IsAdmin,
		},
		ExpiresAt: sess.ExpiresAt.Format(time.RFC3339),
	})
}
