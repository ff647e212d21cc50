package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/identity-service/internal/api/http/handlers"
	"github.com/spec-kit/identity-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	AuthStage *auth.Middleware
}

// RegisterRoutes wires HTTP routes. The authentication stage runs on
// every route after the global middlewares; it attaches an identity
// when one can be established and otherwise lets the request continue
// anonymously. Guards on protected groups enforce presence.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.AuthStage.Authenticate)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)

	protected := authGroup.Group("", auth.RequireIdentity())
	protected.Get("/me", cfg.Auth.Me)
}
