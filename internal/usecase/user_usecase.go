package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"portfolio-hub/internal/domain/user"
	"portfolio-hub/internal/query"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type ListUsersInput struct {
	Search string
	Role   string
	Page   int
	Limit  int
}

type CreateUserInput struct {
	FullName string
	Email    string
	Password string
	Bio      string
	Role     string
}

type UpdateUserInput struct {
	FullName string
	Email    string
	Bio      string
	Role     string
}

type UpdateProfileInput struct {
	FullName *string
	Bio      *string
	Password *string
}

type UserUsecase interface {
	ListUsers(ctx context.Context, in ListUsersInput) ([]user.User, query.PageInfo, error)
	CreateUser(ctx context.Context, in CreateUserInput) (user.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, in UpdateUserInput) (user.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	GetProfile(ctx context.Context, userID uuid.UUID) (user.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.User, error)
}

type Users struct {
	users user.Repository
	cache Cache
}

func NewUserUsecase(users user.Repository, cache Cache) *Users {
	return &Users{users: users, cache: cache}
}

func (u *Users) ListUsers(ctx context.Context, in ListUsersInput) ([]user.User, query.PageInfo, error) {
	p := query.NewPagination(in.Page, in.Limit)

	items, total, err := u.users.List(ctx, user.ListFilter{
		Search: strings.TrimSpace(in.Search),
		Role:   strings.TrimSpace(in.Role),
		Page:   p.Page,
		Limit:  p.Limit,
	})
	if err != nil {
		return nil, query.PageInfo{}, ErrInternal
	}

	out := make([]user.User, 0, len(items))
	for _, it := range items {
		out = append(out, sanitizeUser(it))
	}
	return out, query.NewPageInfo(p, total), nil
}

func (u *Users) CreateUser(ctx context.Context, in CreateUserInput) (user.User, error) {
	fullName := strings.TrimSpace(in.FullName)
	email := normalizeEmail(in.Email)
	if fullName == "" || email == "" {
		return user.User{}, ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return user.User{}, ErrInvalidInput
	}

	role := user.Role(strings.TrimSpace(in.Role))
	if role == "" {
		role = user.RoleUser
	}
	if !role.Valid() {
		return user.User{}, ErrInvalidRole
	}

	exists, err := u.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if exists {
		return user.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, ErrInternal
	}

	usr := user.User{
		ID:           uuid.New(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		Bio:          strings.TrimSpace(in.Bio),
		Role:         role,
		JoinDate:     time.Now().UTC(),
	}

	if err := u.users.Create(ctx, usr); err != nil {
		if isUniqueViolation(err) {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, ErrInternal
	}
	return sanitizeUser(usr), nil
}

func (u *Users) UpdateUser(ctx context.Context, id uuid.UUID, in UpdateUserInput) (user.User, error) {
	fullName := strings.TrimSpace(in.FullName)
	email := normalizeEmail(in.Email)
	if fullName == "" || email == "" {
		return user.User{}, ErrInvalidInput
	}

	role := user.Role(strings.TrimSpace(in.Role))
	if !role.Valid() {
		return user.User{}, ErrInvalidRole
	}

	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}

	usr.FullName = fullName
	usr.Email = email
	usr.Bio = strings.TrimSpace(in.Bio)
	usr.Role = role

	if err := u.users.Update(ctx, usr); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		if isUniqueViolation(err) {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, ErrInternal
	}

	u.invalidatePortfolio(ctx, id)
	return sanitizeUser(usr), nil
}

// DeleteUser removes the user and everything the user owns, atomically.
func (u *Users) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := u.users.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	u.invalidatePortfolio(ctx, id)
	return nil
}

func (u *Users) GetProfile(ctx context.Context, userID uuid.UUID) (user.User, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return sanitizeUser(usr), nil
}

// UpdateProfile lets the authenticated user change display fields and
// password. Email and role are deliberately not editable here.
func (u *Users) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (user.User, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}

	if in.FullName != nil {
		fullName := strings.TrimSpace(*in.FullName)
		if fullName == "" {
			return user.User{}, ErrInvalidInput
		}
		usr.FullName = fullName
	}
	if in.Bio != nil {
		usr.Bio = strings.TrimSpace(*in.Bio)
	}
	if in.Password != nil {
		if !isValidPassword(*in.Password) {
			return user.User{}, ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return user.User{}, ErrInternal
		}
		usr.PasswordHash = string(hash)
	}

	if err := u.users.Update(ctx, usr); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}

	u.invalidatePortfolio(ctx, userID)
	return sanitizeUser(usr), nil
}

func (u *Users) invalidatePortfolio(ctx context.Context, userID uuid.UUID) {
	if u.cache == nil {
		return
	}
	_ = u.cache.Delete(ctx, portfolioCacheKey(userID.String()))
}
