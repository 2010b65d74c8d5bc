package usecase

import (
	"context"
	"errors"
	"time"

	"portfolio-hub/internal/domain/user"
	"portfolio-hub/internal/repository"

	"github.com/google/uuid"
)

const portfolioCacheTTL = 5 * time.Minute

// Portfolio is the public aggregate view of one user: profile plus
// everything they have published.
type Portfolio struct {
	User       user.User
	Projects   []repository.Project
	Experience []repository.Experience
	Skills     []repository.UserSkillRow
}

type PortfolioUsecase interface {
	Get(ctx context.Context, userID uuid.UUID) (Portfolio, error)
}

type Portfolios struct {
	users       user.Repository
	projects    repository.ProjectRepository
	experiences repository.ExperienceRepository
	userSkills  repository.UserSkillRepository
	cache       Cache
}

func NewPortfolioUsecase(
	users user.Repository,
	projects repository.ProjectRepository,
	experiences repository.ExperienceRepository,
	userSkills repository.UserSkillRepository,
	cache Cache,
) *Portfolios {
	return &Portfolios{
		users:       users,
		projects:    projects,
		experiences: experiences,
		userSkills:  userSkills,
		cache:       cache,
	}
}

// Get assembles the portfolio, reading through the cache when one is
// configured. Cache failures fall back to the database silently.
func (u *Portfolios) Get(ctx context.Context, userID uuid.UUID) (Portfolio, error) {
	key := portfolioCacheKey(userID.String())

	if u.cache != nil {
		var cached Portfolio
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	owner, err := u.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Portfolio{}, ErrNotFound
		}
		return Portfolio{}, ErrInternal
	}

	projects, err := u.projects.FindByUser(ctx, userID)
	if err != nil {
		return Portfolio{}, ErrInternal
	}
	experience, err := u.experiences.FindByUser(ctx, userID)
	if err != nil {
		return Portfolio{}, ErrInternal
	}
	skills, err := u.userSkills.FindByUser(ctx, userID)
	if err != nil {
		return Portfolio{}, ErrInternal
	}

	p := Portfolio{
		User:       sanitizeUser(owner),
		Projects:   projects,
		Experience: experience,
		Skills:     skills,
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, p, portfolioCacheTTL)
	}
	return p, nil
}
