package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/poggerdex/poggerdex/internal/session"
)

func setupAuthApp(t *testing.T) (*fiber.App, *session.Store, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessions := session.NewStore(cache, 24*time.Hour)

	app := fiber.New()
	app.Use(SessionAuth(sessions))
	app.Get("/me", func(c *fiber.Ctx) error {
		user, _ := c.Locals(CurrentUserKey).(session.User)
		return c.JSON(fiber.Map{"id": user.ID, "username": user.Username})
	})
	app.Get("/admin", AdminOnly(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	cleanup := func() {
		cache.Close()
		mr.Close()
	}
	return app, sessions, cleanup
}

func TestSessionAuthRejectsMissingToken(t *testing.T) {
	app, _, cleanup := setupAuthApp(t)
	defer cleanup()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/me", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestSessionAuthRejectsUnknownToken(t *testing.T) {
	app, _, cleanup := setupAuthApp(t)
	defer cleanup()

	req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-session")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestSessionAuthAcceptsValidToken(t *testing.T) {
	app, sessions, cleanup := setupAuthApp(t)
	defer cleanup()

	token, _, err := sessions.Create(context.Background(), session.User{ID: 7, Username: "ash"})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestAdminOnly(t *testing.T) {
	app, sessions, cleanup := setupAuthApp(t)
	defer cleanup()

	ctx := context.Background()
	plain, _, err := sessions.Create(ctx, session.User{ID: 1, Username: "ash"})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	admin, _, err := sessions.Create(ctx, session.User{ID: 2, Username: "oak", IsAdmin: true})
	if err != nil {
		t.Fatalf("create admin session: %v", err)
	}

	req := httptest.NewRequest(fiber.MethodGet, "/admin", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+plain)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest(fiber.MethodGet, "/admin", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+admin)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", resp.StatusCode)
	}
}
