package routes

import (
	"portfolio-hub/internal/delivery/http/handler"
	"portfolio-hub/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

// Deps holds everything the route tree needs; the app container builds it.
type Deps struct {
	Auth       *middleware.AuthMiddleware
	Health     *handler.HealthHandler
	AuthH      *handler.AuthHandler
	Users      *handler.UserHandler
	Projects   *handler.ProjectHandler
	Experience *handler.ExperienceHandler
	Skills     *handler.SkillHandler
	UserSkills *handler.UserSkillHandler
	Portfolio  *handler.PortfolioHandler
	Stats      *handler.StatsHandler
}

type Registry struct {
	deps Deps
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{deps: deps}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.deps.Health.RegisterPublicRoutes(app)

	api := app.Group("/api")
	r.registerV1(api.Group("/v1"))
}

func (r *Registry) registerV1(v1 fiber.Router) {
	// Public surface: no session required.
	r.deps.AuthH.RegisterPublicRoutes(v1.Group("/auth"))
	r.deps.Skills.RegisterPublicRoutes(v1)
	r.deps.Portfolio.RegisterPublicRoutes(v1)
	r.deps.Stats.RegisterPublicRoutes(v1)
	r.deps.UserSkills.RegisterPublicRoutes(v1)

	// Session surface: any logged-in user.
	session := v1.Group("/", r.deps.Auth.RequireAuth())
	r.deps.AuthH.RegisterSessionRoutes(session.Group("/auth"))
	r.deps.Users.RegisterSessionRoutes(session)
	r.deps.Projects.RegisterSessionRoutes(session)
	r.deps.Experience.RegisterSessionRoutes(session)
	r.deps.UserSkills.RegisterSessionRoutes(session)

	// Admin surface: role re-checked against the store on every request.
	admin := v1.Group("/admin", r.deps.Auth.RequireAdmin())
	r.deps.Users.RegisterAdminRoutes(admin)
	r.deps.Projects.RegisterAdminRoutes(admin)
	r.deps.Experience.RegisterAdminRoutes(admin)
	r.deps.Skills.RegisterAdminRoutes(admin)
	r.deps.UserSkills.RegisterAdminRoutes(admin)
	r.deps.Stats.RegisterAdminRoutes(admin)
}
