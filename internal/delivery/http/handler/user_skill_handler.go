package handler

import (
	"errors"

	"portfolio-hub/internal/delivery/http/dto"
	"portfolio-hub/internal/delivery/http/middleware"
	"portfolio-hub/internal/pkg/response"
	"portfolio-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserSkillHandler struct {
	uc usecase.UserSkillUsecase
}

type assignSkillRequest struct {
	SkillDefID       uuid.UUID `json:"skillDefId"`
	ProficiencyLevel int       `json:"proficiencyLevel"`
}

type adminAssignSkillRequest struct {
	UserID           uuid.UUID `json:"userId"`
	SkillDefID       uuid.UUID `json:"skillDefId"`
	ProficiencyLevel int       `json:"proficiencyLevel"`
}

type updateProficiencyRequest struct {
	ProficiencyLevel int `json:"proficiencyLevel"`
}

func NewUserSkillHandler(uc usecase.UserSkillUsecase) *UserSkillHandler {
	return &UserSkillHandler{uc: uc}
}

func (h *UserSkillHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/experts", h.Experts)
}

func (h *UserSkillHandler) RegisterSessionRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/skills")
	grp.Get("/", h.ListMine)
	grp.Post("/", h.Assign)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

func (h *UserSkillHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/user-skills")
	grp.Get("/", h.List)
	grp.Post("/", h.AssignForUser)
	grp.Put("/:id", h.UpdateAny)
	grp.Delete("/:id", h.DeleteAny)
}

// defaultExpertProficiency is the floor applied when the caller does not
// supply one; an "expert" means near the top of the 1..10 scale.
const defaultExpertProficiency = 8

// Experts is the public expert search: ?skill=<name>&minProficiency=<n>.
func (h *UserSkillHandler) Experts(c fiber.Ctx) error {
	minProficiency, err := parseQueryIntStrict(c, "minProficiency", defaultExpertProficiency)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid minProficiency", err)
	}

	skill := c.Query("skill")
	items, err := h.uc.Experts(c.Context(), skill, minProficiency)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "skill name is required", err)
		}
		return mapUserSkillUsecaseError(err)
	}

	return response.JSON(c, fiber.StatusOK, dto.ExpertSearchResponse{
		Experts: dto.FromExpertRows(items),
		SearchCriteria: dto.ExpertSearchCriteria{
			Skill:          skill,
			MinProficiency: minProficiency,
		},
	})
}

func (h *UserSkillHandler) ListMine(c fiber.Ctx) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListMine(c.Context(), userID)
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.FromUserSkillRows(items))
}

func (h *UserSkillHandler) Assign(c fiber.Ctx) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return err
	}

	var req assignSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", err)
	}

	created, err := h.uc.Assign(c.Context(), userID, usecase.AssignSkillInput{
		SkillDefID:       req.SkillDefID,
		ProficiencyLevel: req.ProficiencyLevel,
	})
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusCreated, dto.FromUserSkillRow(created))
}

func (h *UserSkillHandler) Update(c fiber.Ctx) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return err
	}
	id, err := parseParamID(c, "id")
	if err != nil {
		return err
	}

	var req updateProficiencyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", err)
	}

	updated, err := h.uc.UpdateProficiency(c.Context(), id, userID, req.ProficiencyLevel)
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.FromUserSkillRow(updated))
}

func (h *UserSkillHandler) Delete(c fiber.Ctx) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return err
	}
	id, err := parseParamID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Remove(c.Context(), id, userID); err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

func (h *UserSkillHandler) List(c fiber.Ctx) error {
	page, err := parseQueryIntStrict(c, "page", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid page", err)
	}
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid limit", err)
	}

	items, info, err := h.uc.List(c.Context(), usecase.ListUserSkillsInput{
		Search: c.Query("search"),
		UserID: c.Query("userId"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}

	return response.JSON(c, fiber.StatusOK, dto.ListResponse{
		Items:      dto.FromUserSkillListRows(items),
		Pagination: info,
	})
}

func (h *UserSkillHandler) AssignForUser(c fiber.Ctx) error {
	var req adminAssignSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", err)
	}
	if req.UserID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "userId is required", nil)
	}

	created, err := h.uc.AssignForUser(c.Context(), req.UserID, usecase.AssignSkillInput{
		SkillDefID:       req.SkillDefID,
		ProficiencyLevel: req.ProficiencyLevel,
	})
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusCreated, dto.FromUserSkillRow(created))
}

func (h *UserSkillHandler) UpdateAny(c fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return err
	}

	var req updateProficiencyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", err)
	}

	if err := h.uc.UpdateAny(c.Context(), id, req.ProficiencyLevel); err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{"updated": true})
}

func (h *UserSkillHandler) DeleteAny(c fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.RemoveAny(c.Context(), id); err != nil {
		return mapUserSkillUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

func mapUserSkillUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidProficiency):
		return middleware.NewAppError(fiber.StatusBadRequest, "proficiency level must be between 1 and 10", err)
	case errors.Is(err, usecase.ErrSkillAlreadyAssigned):
		return middleware.NewAppError(fiber.StatusConflict, "skill already assigned", err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid skill assignment", err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "skill assignment not found", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
