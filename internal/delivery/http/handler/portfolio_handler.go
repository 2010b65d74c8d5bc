package handler

import (
	"errors"

	"portfolio-hub/internal/delivery/http/dto"
	"portfolio-hub/internal/delivery/http/middleware"
	"portfolio-hub/internal/pkg/response"
	"portfolio-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type PortfolioHandler struct {
	uc usecase.PortfolioUsecase
}

func NewPortfolioHandler(uc usecase.PortfolioUsecase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc}
}

func (h *PortfolioHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/portfolio/:userId", h.Get)
}

func (h *PortfolioHandler) Get(c fiber.Ctx) error {
	userID, err := parseParamID(c, "userId")
	if err != nil {
		return err
	}

	p, err := h.uc.Get(c.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "portfolio not found", err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
	return response.JSON(c, fiber.StatusOK, dto.FromPortfolio(p))
}
