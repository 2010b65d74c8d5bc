package app

import (
	"context"
	"log"
	"time"

	"portfolio-hub/internal/config"
	"portfolio-hub/internal/database"
	"portfolio-hub/internal/database/migration"
	dbpostgres "portfolio-hub/internal/database/postgres"
	"portfolio-hub/internal/domain/user"
	"portfolio-hub/internal/infrastructure/cache"
	"portfolio-hub/internal/repository"
	"portfolio-hub/internal/session"
	"portfolio-hub/internal/usecase"
)

// Container wires configuration, storage, and usecases together.
type Container struct {
	Config   config.Config
	DB       database.DB
	Cache    *cache.Redis
	Sessions *session.Store

	Users      user.Repository
	Projects   repository.ProjectRepository
	Experience repository.ExperienceRepository
	Skills     repository.SkillDefinitionRepository
	UserSkills repository.UserSkillRepository
	Stats      repository.StatsRepository

	AuthUC       usecase.AuthUsecase
	UserUC       usecase.UserUsecase
	ProjectUC    usecase.ProjectUsecase
	ExperienceUC usecase.ExperienceUsecase
	SkillUC      usecase.SkillUsecase
	UserSkillUC  usecase.UserSkillUsecase
	PortfolioUC  usecase.PortfolioUsecase
	StatsUC      usecase.StatsUsecase
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	runner := migration.Runner{Dir: cfg.App.MigrationsDir, Logger: logger}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)
	sessions := session.NewStore(cfg.Session.TTL, cfg.Session.SweepInterval, logger)

	users := repository.NewPostgresUserRepository(db)
	projects := repository.NewPostgresProjectRepository(db)
	experience := repository.NewPostgresExperienceRepository(db)
	skills := repository.NewPostgresSkillDefinitionRepository(db)
	userSkills := repository.NewPostgresUserSkillRepository(db)
	stats := repository.NewPostgresStatsRepository(db)

	c := &Container{
		Config:   cfg,
		DB:       db,
		Cache:    redisCache,
		Sessions: sessions,

		Users:      users,
		Projects:   projects,
		Experience: experience,
		Skills:     skills,
		UserSkills: userSkills,
		Stats:      stats,
	}

	c.AuthUC = usecase.NewAuthUsecase(users, sessions)
	c.UserUC = usecase.NewUserUsecase(users, redisCache)
	c.ProjectUC = usecase.NewProjectUsecase(projects, redisCache)
	c.ExperienceUC = usecase.NewExperienceUsecase(experience, redisCache)
	c.SkillUC = usecase.NewSkillUsecase(skills)
	c.UserSkillUC = usecase.NewUserSkillUsecase(userSkills, skills, redisCache)
	c.PortfolioUC = usecase.NewPortfolioUsecase(users, projects, experience, userSkills, redisCache)
	c.StatsUC = usecase.NewStatsUsecase(stats)

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	if c.Sessions != nil {
		c.Sessions.Stop()
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
