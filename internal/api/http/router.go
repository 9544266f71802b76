package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/swiftapp/staff-service/internal/api/http/handlers"
	"github.com/swiftapp/staff-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Staff          *handlers.StaffHandler
	Calendar       *handlers.CalendarHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/logout", cfg.Auth.Logout)

	authenticated := api.Group("", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())
	authenticated.Get("/staff", cfg.Staff.ListStaff)
	authenticated.Get("/staff/employees", cfg.Staff.ListEmployees)
	authenticated.Get("/staff/contractors", cfg.Staff.ListContractors)
	authenticated.Get("/contractors/search", cfg.Staff.SearchContractors)

	manager := auth.RequireStaffManager()
	authenticated.Post("/staff/employees/invite", manager, cfg.Staff.InviteEmployee)
	authenticated.Post("/staff/contractors/add", manager, cfg.Staff.AddContractor)
	authenticated.Post("/staff/contractors/invite", manager, cfg.Staff.InviteContractor)
	authenticated.Put("/staff/:id", manager, cfg.Staff.UpdateStaff)
	authenticated.Delete("/staff/:id", manager, cfg.Staff.RemoveStaff)

	app.Post("/calendar-days", cfg.AuthMiddleware.Handle, auth.RequireAnyRole(), cfg.Calendar.Days)
}
