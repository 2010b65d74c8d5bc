package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"portfolio-hub/internal/query"
	"portfolio-hub/internal/repository"

	"github.com/google/uuid"
)

type ProjectInput struct {
	Title         string
	Description   string
	ProjectURL    string
	DateCompleted *time.Time
}

type ListProjectsInput struct {
	Search string
	UserID string
	Page   int
	Limit  int
}

type ProjectUsecase interface {
	ListMine(ctx context.Context, userID uuid.UUID) ([]repository.Project, error)
	Get(ctx context.Context, id, userID uuid.UUID) (repository.Project, error)
	Create(ctx context.Context, userID uuid.UUID, in ProjectInput) (repository.Project, error)
	Update(ctx context.Context, id, userID uuid.UUID, in ProjectInput) (repository.Project, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	ListAll(ctx context.Context, in ListProjectsInput) ([]repository.ProjectListRow, query.PageInfo, error)
	DeleteAny(ctx context.Context, id uuid.UUID) error
}

type Projects struct {
	repo  repository.ProjectRepository
	cache Cache
}

func NewProjectUsecase(repo repository.ProjectRepository, cache Cache) *Projects {
	return &Projects{repo: repo, cache: cache}
}

func (u *Projects) ListMine(ctx context.Context, userID uuid.UUID) ([]repository.Project, error) {
	items, err := u.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Projects) Get(ctx context.Context, id, userID uuid.UUID) (repository.Project, error) {
	p, err := u.repo.FindByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return repository.Project{}, ErrNotFound
		}
		return repository.Project{}, ErrInternal
	}
	return p, nil
}

func (u *Projects) Create(ctx context.Context, userID uuid.UUID, in ProjectInput) (repository.Project, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return repository.Project{}, ErrInvalidInput
	}

	created, err := u.repo.Create(ctx, repository.Project{
		ID:            uuid.New(),
		UserID:        userID,
		Title:         title,
		Description:   strings.TrimSpace(in.Description),
		ProjectURL:    strings.TrimSpace(in.ProjectURL),
		DateCompleted: in.DateCompleted,
	})
	if err != nil {
		return repository.Project{}, ErrInternal
	}

	u.invalidatePortfolio(ctx, userID)
	return created, nil
}

func (u *Projects) Update(ctx context.Context, id, userID uuid.UUID, in ProjectInput) (repository.Project, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return repository.Project{}, ErrInvalidInput
	}

	updated, err := u.repo.Update(ctx, repository.Project{
		ID:            id,
		UserID:        userID,
		Title:         title,
		Description:   strings.TrimSpace(in.Description),
		ProjectURL:    strings.TrimSpace(in.ProjectURL),
		DateCompleted: in.DateCompleted,
	})
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return repository.Project{}, ErrNotFound
		}
		return repository.Project{}, ErrInternal
	}

	u.invalidatePortfolio(ctx, userID)
	return updated, nil
}

func (u *Projects) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := u.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	u.invalidatePortfolio(ctx, userID)
	return nil
}

func (u *Projects) ListAll(ctx context.Context, in ListProjectsInput) ([]repository.ProjectListRow, query.PageInfo, error) {
	p := query.NewPagination(in.Page, in.Limit)

	items, total, err := u.repo.List(ctx, repository.ProjectListFilter{
		Search: strings.TrimSpace(in.Search),
		UserID: strings.TrimSpace(in.UserID),
		Page:   p.Page,
		Limit:  p.Limit,
	})
	if err != nil {
		return nil, query.PageInfo{}, ErrInternal
	}
	return items, query.NewPageInfo(p, total), nil
}

func (u *Projects) DeleteAny(ctx context.Context, id uuid.UUID) error {
	ownerID, err := u.repo.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	u.invalidatePortfolio(ctx, ownerID)
	return nil
}

func (u *Projects) invalidatePortfolio(ctx context.Context, userID uuid.UUID) {
	if u.cache == nil {
		return
	}
	_ = u.cache.Delete(ctx, portfolioCacheKey(userID.String()))
}
