package handler

import (
	"errors"

	"portfolio-hub/internal/delivery/http/dto"
	"portfolio-hub/internal/delivery/http/middleware"
	"portfolio-hub/internal/pkg/response"
	"portfolio-hub/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

type createUserRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio"`
	Role     string `json:"role"`
}

type updateUserRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Bio      string `json:"bio"`
	Role     string `json:"role"`
}

type updateProfileRequest struct {
	FullName *string `json:"fullName"`
	Bio      *string `json:"bio"`
	Password *string `json:"password"`
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterSessionRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/profile")
	grp.Get("/", h.GetProfile)
	grp.Put("/", h.UpdateProfile)
}

func (h *UserHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/users")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
}

func (h *UserHandler) GetProfile(c fiber.Ctx) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return err
	}

	usr, err := h.uc.GetProfile(c.Context(), userID)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.FromUser(usr))
}

func (h *UserHandler) UpdateProfile(c fiber.Ctx) error {
	userID, err := sessionUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", err)
	}

	usr, err := h.uc.UpdateProfile(c.Context(), userID, usecase.UpdateProfileInput{
		FullName: req.FullName,
		Bio:      req.Bio,
		Password: req.Password,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.FromUser(usr))
}

func (h *UserHandler) List(c fiber.Ctx) error {
	page, err := parseQueryIntStrict(c, "page", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid page", err)
	}
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid limit", err)
	}

	items, info, err := h.uc.ListUsers(c.Context(), usecase.ListUsersInput{
		Search: c.Query("search"),
		Role:   c.Query("role"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}

	return response.JSON(c, fiber.StatusOK, dto.ListResponse{
		Items:      dto.FromUsers(items),
		Pagination: info,
	})
}

func (h *UserHandler) Create(c fiber.Ctx) error {
	var req createUserRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", err)
	}

	usr, err := h.uc.CreateUser(c.Context(), usecase.CreateUserInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Bio:      req.Bio,
		Role:     req.Role,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusCreated, dto.FromUser(usr))
}

func (h *UserHandler) Update(c fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "bad request", err)
	}

	usr, err := h.uc.UpdateUser(c.Context(), id, usecase.UpdateUserInput{
		FullName: req.FullName,
		Email:    req.Email,
		Bio:      req.Bio,
		Role:     req.Role,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.FromUser(usr))
}

// Delete removes the user and everything they own in one transaction.
func (h *UserHandler) Delete(c fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteUser(c.Context(), id); err != nil {
		return mapUserUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

func mapUserUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid user data", err)
	case errors.Is(err, usecase.ErrInvalidRole):
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid role", err)
	case errors.Is(err, usecase.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "email already registered", err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "user not found", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}
}
