package middleware

import (
	"context"
	"errors"

	"portfolio-hub/internal/domain/user"
	"portfolio-hub/internal/pkg/response"
	"portfolio-hub/internal/session"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// Locals keys set by RequireAuth for downstream handlers.
const (
	CtxUserIDKey   = "authUserID"
	CtxEmailKey    = "authEmail"
	CtxFullNameKey = "authFullName"
	CtxTokenKey    = "authToken"
)

type SessionResolver interface {
	Resolve(token string) (session.Session, bool)
}

// RoleSource reads the caller's current role from the store of record, so a
// demoted admin loses access on their next request, not at session expiry.
type RoleSource interface {
	GetRole(ctx context.Context, id uuid.UUID) (user.Role, error)
}

type AuthMiddleware struct {
	sessions   SessionResolver
	roles      RoleSource
	cookieName string
}

func NewAuthMiddleware(sessions SessionResolver, roles RoleSource, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions, roles: roles, cookieName: cookieName}
}

// RequireAuth rejects requests without a live session and stashes the
// session identity in locals.
func (m *AuthMiddleware) RequireAuth() fiber.Handler {
	return func(c fiber.Ctx) error {
		token := c.Cookies(m.cookieName)
		if token == "" {
			return response.Error(c, fiber.StatusUnauthorized, "authentication required")
		}

		sess, ok := m.sessions.Resolve(token)
		if !ok {
			return response.Error(c, fiber.StatusUnauthorized, "session expired or invalid")
		}

		c.Locals(CtxUserIDKey, sess.UserID)
		c.Locals(CtxEmailKey, sess.Email)
		c.Locals(CtxFullNameKey, sess.FullName)
		c.Locals(CtxTokenKey, sess.Token)
		return c.Next()
	}
}

// RequireAdmin chains RequireAuth's checks with a fresh role read.
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c fiber.Ctx) error {
		token := c.Cookies(m.cookieName)
		if token == "" {
			return response.Error(c, fiber.StatusUnauthorized, "authentication required")
		}

		sess, ok := m.sessions.Resolve(token)
		if !ok {
			return response.Error(c, fiber.StatusUnauthorized, "session expired or invalid")
		}

		role, err := m.roles.GetRole(c.Context(), sess.UserID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return response.Error(c, fiber.StatusUnauthorized, "session expired or invalid")
			}
			return response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError)
		}
		if role != user.RoleAdmin {
			return response.Error(c, fiber.StatusForbidden, "admin access required")
		}

		c.Locals(CtxUserIDKey, sess.UserID)
		c.Locals(CtxEmailKey, sess.Email)
		c.Locals(CtxFullNameKey, sess.FullName)
		c.Locals(CtxTokenKey, sess.Token)
		return c.Next()
	}
}

// AuthUserID extracts the session user id set by RequireAuth.
func AuthUserID(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(CtxUserIDKey).(uuid.UUID)
	return id, ok
}

func AuthToken(c fiber.Ctx) (string, bool) {
	token, ok := c.Locals(CtxTokenKey).(string)
	return token, ok
}
