package app

import (
	"fmt"
	"log"
	"strings"

	"portfolio-hub/internal/config"
	"portfolio-hub/internal/delivery/http/handler"
	"portfolio-hub/internal/delivery/http/middleware"
	"portfolio-hub/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap builds the container, the fiber app, and the route tree, and
// starts the session sweeper. The returned cleanup releases everything.
func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	if logger == nil {
		logger = log.Default()
	}

	container, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	errMw := middleware.NewErrorMiddleware(logger)
	accessMw := middleware.NewAccessLogMiddleware(logger)
	f.Use(errMw.Middleware())
	f.Use(accessMw.Middleware())

	authMw := middleware.NewAuthMiddleware(container.Sessions, container.Users, cfg.Session.CookieName)

	cookie := handler.CookieSettings{
		Name:   cfg.Session.CookieName,
		TTL:    cfg.Session.TTL,
		Secure: cfg.App.IsProduction(),
	}

	registry := routes.NewRegistry(routes.Deps{
		Auth:       authMw,
		Health:     handler.NewHealthHandler(container.DB),
		AuthH:      handler.NewAuthHandler(container.AuthUC, cookie),
		Users:      handler.NewUserHandler(container.UserUC),
		Projects:   handler.NewProjectHandler(container.ProjectUC),
		Experience: handler.NewExperienceHandler(container.ExperienceUC),
		Skills:     handler.NewSkillHandler(container.SkillUC),
		UserSkills: handler.NewUserSkillHandler(container.UserSkillUC),
		Portfolio:  handler.NewPortfolioHandler(container.PortfolioUC),
		Stats:      handler.NewStatsHandler(container.StatsUC),
	})
	registry.Register(f)

	container.Sessions.Start()

	cleanup := func() error {
		return container.Close()
	}
	return &App{Fiber: f, Container: container}, cleanup, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
