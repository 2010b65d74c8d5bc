package middleware

import (
	"context"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	"portfolio-hub/internal/domain/user"
	"portfolio-hub/internal/session"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const testCookie = "portfolio_session"

type mockRoleSource struct {
	roles map[uuid.UUID]user.Role
}

func (m *mockRoleSource) GetRole(_ context.Context, id uuid.UUID) (user.Role, error) {
	role, ok := m.roles[id]
	if !ok {
		return "", user.ErrNotFound
	}
	return role, nil
}

func newAuthFixture(t *testing.T) (*session.Store, *mockRoleSource, *AuthMiddleware) {
	t.Helper()

	sessions := session.NewStore(time.Hour, time.Hour, log.Default())
	roles := &mockRoleSource{roles: make(map[uuid.UUID]user.Role)}
	mw := NewAuthMiddleware(sessions, roles, testCookie)
	return sessions, roles, mw
}

func TestRequireAuth_NoCookie(t *testing.T) {
	_, _, mw := newAuthFixture(t)

	app := fiber.New()
	app.Group("/", mw.RequireAuth()).Get("/guarded", func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest("GET", "/guarded", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	_, _, mw := newAuthFixture(t)

	app := fiber.New()
	app.Group("/", mw.RequireAuth()).Get("/guarded", func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Cookie", testCookie+"=bogus")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestRequireAuth_SetsLocals(t *testing.T) {
	sessions, _, mw := newAuthFixture(t)
	userID := uuid.New()
	token, err := sessions.Create(userID, "ada@example.com", "Ada")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	var gotID uuid.UUID
	var gotEmail string

	app := fiber.New()
	app.Group("/", mw.RequireAuth()).Get("/guarded", func(c fiber.Ctx) error {
		gotID, _ = AuthUserID(c)
		gotEmail, _ = c.Locals(CtxEmailKey).(string)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Cookie", testCookie+"="+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if gotID != userID {
		t.Fatalf("unexpected user id in locals")
	}
	if gotEmail != "ada@example.com" {
		t.Fatalf("unexpected email in locals: %q", gotEmail)
	}
}

func TestRequireAdmin_RoleReadFresh(t *testing.T) {
	sessions, roles, mw := newAuthFixture(t)
	adminID := uuid.New()
	roles.roles[adminID] = user.RoleAdmin
	token, err := sessions.Create(adminID, "root@example.com", "Root")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	app := fiber.New()
	app.Group("/", mw.RequireAdmin()).Get("/guarded", func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Cookie", testCookie+"="+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", resp.StatusCode)
	}

	// Demote without touching the session: the next request must be refused.
	roles.roles[adminID] = user.RoleUser

	req = httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Cookie", testCookie+"="+token)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 after demotion, got %d", resp.StatusCode)
	}
}

func TestRequireAdmin_DeletedUser(t *testing.T) {
	sessions, _, mw := newAuthFixture(t)
	ghostID := uuid.New()
	token, err := sessions.Create(ghostID, "ghost@example.com", "Ghost")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	app := fiber.New()
	app.Group("/", mw.RequireAdmin()).Get("/guarded", func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Cookie", testCookie+"="+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for deleted account, got %d", resp.StatusCode)
	}
}
