package handler

import (
	"errors"

	"portfolio-hub/internal/delivery/http/dto"
	"portfolio-hub/internal/delivery/http/middleware"
	"portfolio-hub/internal/pkg/response"
	"portfolio-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc usecase.SkillUsecase
}

type skillDefinitionRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/skills/definitions", h.Catalog)
}

func (h *SkillHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/skills")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

// Catalog is the public skill list used by the assignment picker.
func (h *SkillHandler) Catalog(c fiber.Ctx) error {
	items, err := h.uc.Catalog(c.Context(), c.Query("search"), c.Query("category"))
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.FromSkillDefinitions(items))
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	page, err := parseQueryIntStrict(c, "page", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid page", err)
	}
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid limit", err)
	}

	items, info, err := h.uc.List(c.Context(), usecase.ListSkillDefinitionsInput{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return mapSkillUsecaseError(err)
	}

	return response.JSON(c, fiber.StatusOK, dto.ListResponse{
		Items:      dto.FromSkillDefinitions(items),
		Pagination: info,
	})
}

func (h *SkillHandler) Create(c fiber.Ctx) error {
	var req skillDefinitionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", err)
	}

	s, err := h.uc.Create(c.Context(), usecase.SkillDefinitionInput{
		Name:     req.Name,
		Category: req.Category,
	})
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusCreated, dto.FromSkillDefinition(s))
}

func (h *SkillHandler) Update(c fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return err
	}

	var req skillDefinitionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", err)
	}

	s, err := h.uc.Update(c.Context(), id, usecase.SkillDefinitionInput{
		Name:     req.Name,
		Category: req.Category,
	})
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.FromSkillDefinition(s))
}

func (h *SkillHandler) Delete(c fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), id); err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

func mapSkillUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidCategory):
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid skill category", err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid skill data", err)
	case errors.Is(err, usecase.ErrSkillNameTaken):
		return middleware.NewAppError(fiber.StatusConflict, "skill name already exists", err)
	case errors.Is(err, usecase.ErrSkillDefinitionInUse):
		return middleware.NewAppError(fiber.StatusConflict, "skill definition is still assigned to users", err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "skill definition not found", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
