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

type ProjectHandler struct {
	uc usecase.ProjectUsecase
}

type projectRequest struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	ProjectURL    string     `json:"projectUrl"`
	DateCompleted *time.Time `json:"dateCompleted"`
}

func NewProjectHandler(uc usecase.ProjectUsecase) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

func (h *ProjectHandler) RegisterSessionRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/projects")
	grp.Get("/", h.ListMine)
	grp.Get("/:id", h.Get)
	grp.Post("/", h.Create)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

func (h *ProjectHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/projects")
	grp.Get("/", h.ListAll)
	grp.Delete("/:id", h.DeleteAny)
}

func (h *ProjectHandler) ListMine(c fiber.Ctx) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListMine(c.Context(), userID)
	if err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.FromProjects(items))
}

func (h *ProjectHandler) Get(c fiber.Ctx) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return err
	}
	id, err := parseParamID(c, "id")
	if err != nil {
		return err
	}

	p, err := h.uc.Get(c.Context(), id, userID)
	if err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.FromProject(p))
}

func (h *ProjectHandler) Create(c fiber.Ctx) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return err
	}

	var req projectRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", err)
	}

	p, err := h.uc.Create(c.Context(), userID, usecase.ProjectInput{
		Title:         req.Title,
		Description:   req.Description,
		ProjectURL:    req.ProjectURL,
		DateCompleted: req.DateCompleted,
	})
	if err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusCreated, dto.FromProject(p))
}

func (h *ProjectHandler) Update(c fiber.Ctx) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return err
	}
	id, err := parseParamID(c, "id")
	if err != nil {
		return err
	}

	var req projectRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", err)
	}

	p, err := h.uc.Update(c.Context(), id, userID, usecase.ProjectInput{
		Title:         req.Title,
		Description:   req.Description,
		ProjectURL:    req.ProjectURL,
		DateCompleted: req.DateCompleted,
	})
	if err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.FromProject(p))
}

func (h *ProjectHandler) Delete(c fiber.Ctx) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return err
	}
	id, err := parseParamID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), id, userID); err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

func (h *ProjectHandler) ListAll(c fiber.Ctx) error {
	page, err := parseQueryIntStrict(c, "page", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid page", err)
	}
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid limit", err)
	}

	items, info, err := h.uc.ListAll(c.Context(), usecase.ListProjectsInput{
		Search: c.Query("search"),
		UserID: c.Query("userId"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return mapProjectUsecaseError(err)
	}

	return response.JSON(c, fiber.StatusOK, dto.ListResponse{
		Items:      dto.FromProjectListRows(items),
		Pagination: info,
	})
}

func (h *ProjectHandler) DeleteAny(c fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteAny(c.Context(), id); err != nil {
		return mapProjectUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

func mapProjectUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid project data", err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "project not found", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
