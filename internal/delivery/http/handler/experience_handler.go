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

type ExperienceHandler struct {
	uc usecase.ExperienceUsecase
}

type experienceRequest struct {
	JobTitle  string     `json:"jobTitle"`
	Company   string     `json:"company"`
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

func NewExperienceHandler(uc usecase.ExperienceUsecase) *ExperienceHandler {
	return &ExperienceHandler{uc: uc}
}

func (h *ExperienceHandler) RegisterSessionRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/experience")
	grp.Get("/", h.ListMine)
	grp.Post("/", h.Create)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

func (h *ExperienceHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/experience")
	grp.Get("/", h.ListAll)
	grp.Delete("/:id", h.DeleteAny)
}

func (h *ExperienceHandler) ListMine(c fiber.Ctx) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListMine(c.Context(), userID)
	if err != nil {
		return mapExperienceUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.FromExperiences(items))
}

func (h *ExperienceHandler) Create(c fiber.Ctx) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return err
	}

	var req experienceRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", err)
	}

	e, err := h.uc.Create(c.Context(), userID, usecase.ExperienceInput{
		JobTitle:  req.JobTitle,
		Company:   req.Company,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return mapExperienceUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusCreated, dto.FromExperience(e))
}

func (h *ExperienceHandler) Update(c fiber.Ctx) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return err
	}
	id, err := parseParamID(c, "id")
	if err != nil {
		return err
	}

	var req experienceRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", err)
	}

	e, err := h.uc.Update(c.Context(), id, userID, usecase.ExperienceInput{
		JobTitle:  req.JobTitle,
		Company:   req.Company,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return mapExperienceUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.FromExperience(e))
}

func (h *ExperienceHandler) Delete(c fiber.Ctx) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return err
	}
	id, err := parseParamID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), id, userID); err != nil {
		return mapExperienceUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

func (h *ExperienceHandler) ListAll(c fiber.Ctx) error {
	page, err := parseQueryIntStrict(c, "page", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid page", err)
	}
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid limit", err)
	}

	items, info, err := h.uc.ListAll(c.Context(), usecase.ListExperienceInput{
		Search: c.Query("search"),
		UserID: c.Query("userId"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return mapExperienceUsecaseError(err)
	}

	return response.JSON(c, fiber.StatusOK, dto.ListResponse{
		Items:      dto.FromExperienceListRows(items),
		Pagination: info,
	})
}

func (h *ExperienceHandler) DeleteAny(c fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteAny(c.Context(), id); err != nil {
		return mapExperienceUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

func mapExperienceUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidDateRange):
		return middleware.NewAppError(fiber.StatusBadRequest, "end date cannot be before start date", err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid experience data", err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "experience entry not found", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
