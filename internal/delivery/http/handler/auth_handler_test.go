package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"portfolio-hub/internal/delivery/http/middleware"
	"portfolio-hub/internal/domain/user"
	"portfolio-hub/internal/session"
	"portfolio-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const testCookieName = "portfolio_session"

type memUserRepo struct {
	byEmail map[string]user.User
	byID    map[uuid.UUID]user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		byEmail: make(map[string]user.User),
		byID:    make(map[uuid.UUID]user.User),
	}
}

func (m *memUserRepo) Create(_ context.Context, u user.User) error {
	m.byEmail[u.Email] = u
	m.byID[u.ID] = u
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *memUserRepo) GetRole(_ context.Context, id uuid.UUID) (user.Role, error) {
	u, ok := m.byID[id]
	if !ok {
		return "", user.ErrNotFound
	}
	return u.Role, nil
}

func (m *memUserRepo) Update(_ context.Context, u user.User) error {
	m.byEmail[u.Email] = u
	m.byID[u.ID] = u
	return nil
}

func (m *memUserRepo) List(_ context.Context, _ user.ListFilter) ([]user.User, int, error) {
	return nil, 0, nil
}

func (m *memUserRepo) DeleteCascade(_ context.Context, id uuid.UUID) error {
	u, ok := m.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	delete(m.byID, id)
	delete(m.byEmail, u.Email)
	return nil
}

func newAuthApp(t *testing.T) *fiber.App {
	t.Helper()

	repo := newMemUserRepo()
	sessions := session.NewStore(time.Hour, time.Hour, log.Default())
	uc := usecase.NewAuthUsecase(repo, sessions)

	authMw := middleware.NewAuthMiddleware(sessions, repo, testCookieName)
	h := NewAuthHandler(uc, CookieSettings{Name: testCookieName, TTL: time.Hour})

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(log.Default()).Middleware())

	v1 := app.Group("/api/v1")
	h.RegisterPublicRoutes(v1.Group("/auth"))
	guarded := v1.Group("/", authMw.RequireAuth())
	h.RegisterSessionRoutes(guarded.Group("/auth"))

	return app
}

func sessionCookie(t *testing.T, resp *http.Response) string {
	t.Helper()

	for _, c := range resp.Cookies() {
		if c.Name == testCookieName {
			return c.Value
		}
	}
	return ""
}

func TestAuthFlow_RegisterMeLogoutMe(t *testing.T) {
	app := newAuthApp(t)

	body := `{"fullName":"Ada Lovelace","email":"ada@example.com","password":"secret1","bio":"maths"}`
	req := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201 on register, got %d", resp.StatusCode)
	}

	token := sessionCookie(t, resp)
	if token == "" {
		t.Fatalf("expected register to set the session cookie")
	}

	var registered struct {
		User struct {
			FullName string `json:"fullName"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&registered); err != nil {
		t.Fatalf("decode register body: %v", err)
	}
	if registered.User.FullName != "Ada Lovelace" || registered.User.Role != "user" {
		t.Fatalf("unexpected register body: %+v", registered)
	}

	// A cookie-bearing /auth/me resolves the session.
	req = httptest.NewRequest("GET", "/api/v1/auth/me", nil)
	req.Header.Set("Cookie", testCookieName+"="+token)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 on me, got %d", resp.StatusCode)
	}

	// Logout revokes the session and expires the cookie.
	req = httptest.NewRequest("POST", "/api/v1/auth/logout", nil)
	req.Header.Set("Cookie", testCookieName+"="+token)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 on logout, got %d", resp.StatusCode)
	}

	// The revoked token is refused.
	req = httptest.NewRequest("GET", "/api/v1/auth/me", nil)
	req.Header.Set("Cookie", testCookieName+"="+token)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", resp.StatusCode)
	}

	var errBody struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if errBody.Error == "" {
		t.Fatalf("expected an error message in the body")
	}
}

func TestAuthFlow_RegisterDuplicateEmail(t *testing.T) {
	app := newAuthApp(t)

	body := `{"fullName":"Ada","email":"ada@example.com","password":"secret1"}`
	for i, want := range []int{fiber.StatusCreated, fiber.StatusConflict} {
		req := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("attempt %d: unexpected err: %v", i, err)
		}
		if resp.StatusCode != want {
			t.Fatalf("attempt %d: expected %d, got %d", i, want, resp.StatusCode)
		}
	}
}

func TestAuthFlow_LoginWrongPassword(t *testing.T) {
	app := newAuthApp(t)

	body := `{"fullName":"Ada","email":"ada@example.com","password":"secret1"}`
	req := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if _, err := app.Test(req); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	req = httptest.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(`{"email":"ada@example.com","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", resp.StatusCode)
	}
	if sessionCookie(t, resp) != "" {
		t.Fatalf("failed login must not set a session cookie")
	}
}
