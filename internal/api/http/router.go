package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cybervibe/helpdesk/internal/api/http/handlers"
	"github.com/cybervibe/helpdesk/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	AdminUsers     *handlers.AdminUsersHandler
	Stats          *handlers.StatsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/auth/me", cfg.Auth.Me)
	protected.Post("/auth/password/change", cfg.Auth.ChangePassword)

	tickets := protected.Group("/tickets")
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Post("", cfg.Tickets.CreateTicket)
	tickets.Get("/export", cfg.Tickets.ExportTickets)
	tickets.Patch("/:id", auth.RequireAdmin(), cfg.Tickets.UpdateTicket)
	tickets.Delete("/:id", auth.RequireAdmin(), cfg.Tickets.DeleteTicket)

	protected.Get("/stats/dashboard", cfg.Stats.Dashboard)

	admin := protected.Group("/admin", auth.RequireAdmin())
	admin.Get("/users", cfg.AdminUsers.ListUsers)
	admin.Post("/users", cfg.AdminUsers.CreateUser)
	admin.Delete("/users/:id", cfg.AdminUsers.DeleteUser)
}
