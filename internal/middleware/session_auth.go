package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/poggerdex/poggerdex/internal/session"
)

const (
	// CurrentUserKey is the ctx local holding the authenticated user.
	CurrentUserKey = "current_user"

	// SessionTokenKey is the ctx local holding the bearer token.
	SessionTokenKey = "session_token"
)

// SessionAuth authenticates requests with an opaque bearer token. A valid
// session gets its last-activity bumped and the user snapshot stored in the
// request locals; anything else is a 401.
func SessionAuth(sessions *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		user, sess, err := sessions.Load(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				return fiber.NewError(fiber.StatusUnauthorized, session.ErrNoSession.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "session store failure")
		}

		if _, err := sessions.Touch(c.UserContext(), token, user, sess); err != nil {
			if errors.Is(err, session.ErrNoSession) {
				return fiber.NewError(fiber.StatusUnauthorized, session.ErrNoSession.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "session store failure")
		}

		c.Locals(CurrentUserKey, user)
		c.Locals(SessionTokenKey, token)
		return c.Next()
	}
}

// AdminOnly rejects requests whose session user lacks the admin flag. It
// must run after SessionAuth.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals(CurrentUserKey).(session.User)
		if !ok || !user.IsAdmin {
			return fiber.NewError(fiber.StatusForbidden, "admin access required")
		}
		return c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
