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

type ExperienceInput struct {
	JobTitle  string
	Company   string
	StartDate time.Time
	EndDate   *time.Time
}

type ListExperienceInput struct {
	Search string
	UserID string
	Page   int
	Limit  int
}

type ExperienceUsecase interface {
	ListMine(ctx context.Context, userID uuid.UUID) ([]repository.Experience, error)
	Create(ctx context.Context, userID uuid.UUID, in ExperienceInput) (repository.Experience, error)
	Update(ctx context.Context, id, userID uuid.UUID, in ExperienceInput) (repository.Experience, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	ListAll(ctx context.Context, in ListExperienceInput) ([]repository.ExperienceListRow, query.PageInfo, error)
	DeleteAny(ctx context.Context, id uuid.UUID) error
}

type Experiences struct {
	repo  repository.ExperienceRepository
	cache Cache
}

func NewExperienceUsecase(repo repository.ExperienceRepository, cache Cache) *Experiences {
	return &Experiences{repo: repo, cache: cache}
}

func (u *Experiences) ListMine(ctx context.Context, userID uuid.UUID) ([]repository.Experience, error) {
	items, err := u.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Experiences) Create(ctx context.Context, userID uuid.UUID, in ExperienceInput) (repository.Experience, error) {
	e, err := validateExperience(userID, in)
	if err != nil {
		return repository.Experience{}, err
	}
	e.ID = uuid.New()

	created, err := u.repo.Create(ctx, e)
	if err != nil {
		if isCheckViolation(err) {
			return repository.Experience{}, ErrInvalidDateRange
		}
		return repository.Experience{}, ErrInternal
	}

	u.invalidatePortfolio(ctx, userID)
	return created, nil
}

func (u *Experiences) Update(ctx context.Context, id, userID uuid.UUID, in ExperienceInput) (repository.Experience, error) {
	e, err := validateExperience(userID, in)
	if err != nil {
		return repository.Experience{}, err
	}
	e.ID = id

	updated, err := u.repo.Update(ctx, e)
	if err != nil {
		if errors.Is(err, repository.ErrExperienceNotFound) {
			return repository.Experience{}, ErrNotFound
		}
		if isCheckViolation(err) {
			return repository.Experience{}, ErrInvalidDateRange
		}
		return repository.Experience{}, ErrInternal
	}

	u.invalidatePortfolio(ctx, userID)
	return updated, nil
}

func (u *Experiences) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := u.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrExperienceNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	u.invalidatePortfolio(ctx, userID)
	return nil
}

func (u *Experiences) ListAll(ctx context.Context, in ListExperienceInput) ([]repository.ExperienceListRow, query.PageInfo, error) {
	p := query.NewPagination(in.Page, in.Limit)

	items, total, err := u.repo.List(ctx, repository.ExperienceListFilter{
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

func (u *Experiences) DeleteAny(ctx context.Context, id uuid.UUID) error {
	ownerID, err := u.repo.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrExperienceNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	u.invalidatePortfolio(ctx, ownerID)
	return nil
}

// validateExperience rejects missing required fields and an end date before
// the start date; nothing is written when it fails.
func validateExperience(userID uuid.UUID, in ExperienceInput) (repository.Experience, error) {
	jobTitle := strings.TrimSpace(in.JobTitle)
	company := strings.TrimSpace(in.Company)
	if jobTitle == "" || company == "" || in.StartDate.IsZero() {
		return repository.Experience{}, ErrInvalidInput
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return repository.Experience{}, ErrInvalidDateRange
	}

	return repository.Experience{
		UserID:    userID,
		JobTitle:  jobTitle,
		Company:   company,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
	}, nil
}

func (u *Experiences) invalidatePortfolio(ctx context.Context, userID uuid.UUID) {
	if u.cache == nil {
		return
	}
	_ = u.cache.Delete(ctx, portfolioCacheKey(userID.String()))
}
