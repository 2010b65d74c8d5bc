package handler

import (
	"strconv"

	"portfolio-hub/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// parseQueryIntStrict returns the default when the key is absent and an error
// when the value is present but not an integer.
func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func parseParamID(c fiber.Ctx, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(key))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "invalid id", err)
	}
	return id, nil
}

func sessionUserID(c fiber.Ctx) (uuid.UUID, error) {
	id, ok := middleware.AuthUserID(c)
	if !ok {
		return uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "authentication required", nil)
	}
	return id, nil
}
