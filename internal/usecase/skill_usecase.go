package usecase

import (
	"context"
	"errors"
	"strings"

	"portfolio-hub/internal/query"
	"portfolio-hub/internal/repository"

	"github.com/google/uuid"
)

// skillCategories mirrors the CHECK constraint on skill_definitions.category.
var skillCategories = map[string]struct{}{
	"Frontend": {},
	"Backend":  {},
	"Database": {},
	"DevOps":   {},
	"Mobile":   {},
	"Language": {},
	"Tool":     {},
	"Other":    {},
}

type SkillDefinitionInput struct {
	Name     string
	Category string
}

type ListSkillDefinitionsInput struct {
	Search   string
	Category string
	Page     int
	Limit    int
}

type SkillUsecase interface {
	Catalog(ctx context.Context, search, category string) ([]repository.SkillDefinition, error)
	List(ctx context.Context, in ListSkillDefinitionsInput) ([]repository.SkillDefinition, query.PageInfo, error)
	Create(ctx context.Context, in SkillDefinitionInput) (repository.SkillDefinition, error)
	Update(ctx context.Context, id uuid.UUID, in SkillDefinitionInput) (repository.SkillDefinition, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Skills struct {
	repo repository.SkillDefinitionRepository
}

func NewSkillUsecase(repo repository.SkillDefinitionRepository) *Skills {
	return &Skills{repo: repo}
}

// Catalog is the public, unpaginated listing used by skill pickers.
func (u *Skills) Catalog(ctx context.Context, search, category string) ([]repository.SkillDefinition, error) {
	items, err := u.repo.FindAll(ctx, strings.TrimSpace(search), strings.TrimSpace(category))
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Skills) List(ctx context.Context, in ListSkillDefinitionsInput) ([]repository.SkillDefinition, query.PageInfo, error) {
	p := query.NewPagination(in.Page, in.Limit)

	items, total, err := u.repo.List(ctx, repository.SkillDefinitionListFilter{
		Search:   strings.TrimSpace(in.Search),
		Category: strings.TrimSpace(in.Category),
		Page:     p.Page,
		Limit:    p.Limit,
	})
	if err != nil {
		return nil, query.PageInfo{}, ErrInternal
	}
	return items, query.NewPageInfo(p, total), nil
}

func (u *Skills) Create(ctx context.Context, in SkillDefinitionInput) (repository.SkillDefinition, error) {
	s, err := validateSkillDefinition(in)
	if err != nil {
		return repository.SkillDefinition{}, err
	}
	s.ID = uuid.New()

	created, err := u.repo.Create(ctx, s)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.SkillDefinition{}, ErrSkillNameTaken
		}
		if isCheckViolation(err) {
			return repository.SkillDefinition{}, ErrInvalidCategory
		}
		return repository.SkillDefinition{}, ErrInternal
	}
	return created, nil
}

func (u *Skills) Update(ctx context.Context, id uuid.UUID, in SkillDefinitionInput) (repository.SkillDefinition, error) {
	s, err := validateSkillDefinition(in)
	if err != nil {
		return repository.SkillDefinition{}, err
	}
	s.ID = id

	// Existence up front, so a rename onto a missing row reads as not-found
	// rather than surfacing a constraint error.
	if _, err := u.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSkillDefinitionNotFound) {
			return repository.SkillDefinition{}, ErrNotFound
		}
		return repository.SkillDefinition{}, ErrInternal
	}

	updated, err := u.repo.Update(ctx, s)
	if err != nil {
		if errors.Is(err, repository.ErrSkillDefinitionNotFound) {
			return repository.SkillDefinition{}, ErrNotFound
		}
		if isUniqueViolation(err) {
			return repository.SkillDefinition{}, ErrSkillNameTaken
		}
		if isCheckViolation(err) {
			return repository.SkillDefinition{}, ErrInvalidCategory
		}
		return repository.SkillDefinition{}, ErrInternal
	}
	return updated, nil
}

// Delete refuses to remove a definition that any user still references, so
// assigned skills never dangle.
func (u *Skills) Delete(ctx context.Context, id uuid.UUID) error {
	refs, err := u.repo.CountReferences(ctx, id)
	if err != nil {
		return ErrInternal
	}
	if refs > 0 {
		return ErrSkillDefinitionInUse
	}

	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSkillDefinitionNotFound) {
			return ErrNotFound
		}
		// The RESTRICT constraint catches assignments created between the
		// reference count and the delete.
		if isForeignKeyViolation(err) {
			return ErrSkillDefinitionInUse
		}
		return ErrInternal
	}
	return nil
}

func validateSkillDefinition(in SkillDefinitionInput) (repository.SkillDefinition, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if name == "" || category == "" {
		return repository.SkillDefinition{}, ErrInvalidInput
	}
	if _, ok := skillCategories[category]; !ok {
		return repository.SkillDefinition{}, ErrInvalidCategory
	}
	return repository.SkillDefinition{Name: name, Category: category}, nil
}
