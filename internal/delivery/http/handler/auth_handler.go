package handler

import (
	"errors"
	"time"

	"portfolio-hub/internal/delivery/http/dto"
	"portfolio-hub/internal/delivery/http/middleware"
	"portfolio-hub/internal/pkg/response"
	"portfolio-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// CookieSettings describes the session cookie the auth handler issues.
type CookieSettings struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

type AuthHandler struct {
	uc     usecase.AuthUsecase
	cookie CookieSettings
}

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewAuthHandler(uc usecase.AuthUsecase, cookie CookieSettings) *AuthHandler {
	return &AuthHandler{uc: uc, cookie: cookie}
}

func (h *AuthHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
}

func (h *AuthHandler) RegisterSessionRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/logout", h.Logout)
	r.Get("/me", h.Me)
}

// Register creates the account and logs the caller in immediately.
func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", err)
	}

	usr, token, err := h.uc.Register(c.Context(), usecase.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Bio:      req.Bio,
	})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	h.setSessionCookie(c, token)
	return response.JSON(c, fiber.StatusCreated, fiber.Map{"user": dto.FromUser(usr)})
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", err)
	}

	usr, token, err := h.uc.Login(c.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	h.setSessionCookie(c, token)
	return response.JSON(c, fiber.StatusOK, fiber.Map{"user": dto.FromUser(usr)})
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	if token, ok := middleware.AuthToken(c); ok {
		h.uc.Logout(token)
	}
	h.clearSessionCookie(c)
	return response.JSON(c, fiber.StatusOK, fiber.Map{"loggedOut": true})
}

// Me returns the caller's current profile, read fresh from the store so it
// reflects admin edits made after login.
func (h *AuthHandler) Me(c fiber.Ctx) error {
	token, ok := middleware.AuthToken(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "authentication required", nil)
	}

	usr, err := h.uc.Me(c.Context(), token)
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{"user": dto.FromUser(usr)})
}

func (h *AuthHandler) setSessionCookie(c fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookie.TTL.Seconds()),
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func mapAuthUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid registration data", err)
	case errors.Is(err, usecase.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "email already registered", err)
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "invalid email or password", err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusUnauthorized, "session expired or invalid", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
