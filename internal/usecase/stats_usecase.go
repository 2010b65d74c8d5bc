package usecase

import (
	"context"

	"portfolio-hub/internal/repository"
)

// PublicCounts is the subset of counts exposed without a session.
type PublicCounts struct {
	Users            int
	Projects         int
	SkillDefinitions int
}

type StatsUsecase interface {
	Admin(ctx context.Context) (repository.Counts, error)
	Public(ctx context.Context) (PublicCounts, error)
}

type Stats struct {
	repo repository.StatsRepository
}

func NewStatsUsecase(repo repository.StatsRepository) *Stats {
	return &Stats{repo: repo}
}

func (u *Stats) Admin(ctx context.Context) (repository.Counts, error) {
	c, err := u.repo.Counts(ctx)
	if err != nil {
		return repository.Counts{}, ErrInternal
	}
	return c, nil
}

func (u *Stats) Public(ctx context.Context) (PublicCounts, error) {
	c, err := u.repo.Counts(ctx)
	if err != nil {
		return PublicCounts{}, ErrInternal
	}
	return PublicCounts{
		Users:            c.Users,
		Projects:         c.Projects,
		SkillDefinitions: c.SkillDefinitions,
	}, nil
}
