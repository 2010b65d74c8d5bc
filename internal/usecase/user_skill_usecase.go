package usecase

import (
	"context"
	"errors"
	"strings"

	"portfolio-hub/internal/query"
	"portfolio-hub/internal/repository"

	"github.com/google/uuid"
)

const (
	minProficiency = 1
	maxProficiency = 10
)

type AssignSkillInput struct {
	SkillDefID       uuid.UUID
	ProficiencyLevel int
}

type ListUserSkillsInput struct {
	Search string
	UserID string
	Page   int
	Limit  int
}

type UserSkillUsecase interface {
	ListMine(ctx context.Context, userID uuid.UUID) ([]repository.UserSkillRow, error)
	Assign(ctx context.Context, userID uuid.UUID, in AssignSkillInput) (repository.UserSkillRow, error)
	UpdateProficiency(ctx context.Context, id, userID uuid.UUID, proficiency int) (repository.UserSkillRow, error)
	Remove(ctx context.Context, id, userID uuid.UUID) error

	AssignForUser(ctx context.Context, userID uuid.UUID, in AssignSkillInput) (repository.UserSkillRow, error)
	UpdateAny(ctx context.Context, id uuid.UUID, proficiency int) error
	RemoveAny(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, in ListUserSkillsInput) ([]repository.UserSkillListRow, query.PageInfo, error)

	Experts(ctx context.Context, skill string, minProficiency int) ([]repository.ExpertRow, error)
}

type UserSkills struct {
	repo   repository.UserSkillRepository
	skills repository.SkillDefinitionRepository
	cache  Cache
}

func NewUserSkillUsecase(repo repository.UserSkillRepository, skills repository.SkillDefinitionRepository, cache Cache) *UserSkills {
	return &UserSkills{repo: repo, skills: skills, cache: cache}
}

func (u *UserSkills) ListMine(ctx context.Context, userID uuid.UUID) ([]repository.UserSkillRow, error) {
	items, err := u.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *UserSkills) Assign(ctx context.Context, userID uuid.UUID, in AssignSkillInput) (repository.UserSkillRow, error) {
	return u.assign(ctx, userID, in)
}

// AssignForUser is the admin path; it is the same operation with the target
// user supplied by the caller instead of the session.
func (u *UserSkills) AssignForUser(ctx context.Context, userID uuid.UUID, in AssignSkillInput) (repository.UserSkillRow, error) {
	return u.assign(ctx, userID, in)
}

func (u *UserSkills) assign(ctx context.Context, userID uuid.UUID, in AssignSkillInput) (repository.UserSkillRow, error) {
	if in.SkillDefID == uuid.Nil {
		return repository.UserSkillRow{}, ErrInvalidInput
	}
	if !validProficiency(in.ProficiencyLevel) {
		return repository.UserSkillRow{}, ErrInvalidProficiency
	}

	exists, err := u.skills.ExistsByID(ctx, in.SkillDefID)
	if err != nil {
		return repository.UserSkillRow{}, ErrInternal
	}
	if !exists {
		return repository.UserSkillRow{}, ErrNotFound
	}

	assigned, err := u.repo.PairExists(ctx, userID, in.SkillDefID)
	if err != nil {
		return repository.UserSkillRow{}, ErrInternal
	}
	if assigned {
		return repository.UserSkillRow{}, ErrSkillAlreadyAssigned
	}

	created, err := u.repo.Create(ctx, repository.UserSkill{
		ID:               uuid.New(),
		UserID:           userID,
		SkillDefID:       in.SkillDefID,
		ProficiencyLevel: in.ProficiencyLevel,
	})
	if err != nil {
		// A concurrent assign of the same pair lands here.
		if isUniqueViolation(err) {
			return repository.UserSkillRow{}, ErrSkillAlreadyAssigned
		}
		if isForeignKeyViolation(err) {
			return repository.UserSkillRow{}, ErrNotFound
		}
		if isCheckViolation(err) {
			return repository.UserSkillRow{}, ErrInvalidProficiency
		}
		return repository.UserSkillRow{}, ErrInternal
	}

	u.invalidatePortfolio(ctx, userID)
	return created, nil
}

func (u *UserSkills) UpdateProficiency(ctx context.Context, id, userID uuid.UUID, proficiency int) (repository.UserSkillRow, error) {
	if !validProficiency(proficiency) {
		return repository.UserSkillRow{}, ErrInvalidProficiency
	}

	updated, err := u.repo.Update(ctx, id, userID, proficiency)
	if err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return repository.UserSkillRow{}, ErrNotFound
		}
		return repository.UserSkillRow{}, ErrInternal
	}

	u.invalidatePortfolio(ctx, userID)
	return updated, nil
}

func (u *UserSkills) Remove(ctx context.Context, id, userID uuid.UUID) error {
	if err := u.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	u.invalidatePortfolio(ctx, userID)
	return nil
}

func (u *UserSkills) UpdateAny(ctx context.Context, id uuid.UUID, proficiency int) error {
	if !validProficiency(proficiency) {
		return ErrInvalidProficiency
	}
	ownerID, err := u.repo.UpdateByID(ctx, id, proficiency)
	if err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	u.invalidatePortfolio(ctx, ownerID)
	return nil
}

func (u *UserSkills) RemoveAny(ctx context.Context, id uuid.UUID) error {
	ownerID, err := u.repo.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	u.invalidatePortfolio(ctx, ownerID)
	return nil
}

func (u *UserSkills) List(ctx context.Context, in ListUserSkillsInput) ([]repository.UserSkillListRow, query.PageInfo, error) {
	p := query.NewPagination(in.Page, in.Limit)

	items, total, err := u.repo.List(ctx, repository.UserSkillListFilter{
		Search: in.Search,
		UserID: in.UserID,
		Page:   p.Page,
		Limit:  p.Limit,
	})
	if err != nil {
		return nil, query.PageInfo{}, ErrInternal
	}
	return items, query.NewPageInfo(p, total), nil
}

// Experts is the public expert search: users holding a skill whose name
// matches the search, at or above minProficiency.
func (u *UserSkills) Experts(ctx context.Context, skill string, minProficiency int) ([]repository.ExpertRow, error) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return nil, ErrInvalidInput
	}
	if !validProficiency(minProficiency) {
		return nil, ErrInvalidProficiency
	}

	items, err := u.repo.FindExperts(ctx, skill, minProficiency)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func validProficiency(level int) bool {
	return level >= minProficiency && level <= maxProficiency
}

func (u *UserSkills) invalidatePortfolio(ctx context.Context, userID uuid.UUID) {
	if u.cache == nil {
		return
	}
	_ = u.cache.Delete(ctx, portfolioCacheKey(userID.String()))
}
