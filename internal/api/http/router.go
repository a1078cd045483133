package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dispatch-dashboard/internal/api/http/handlers"
	"github.com/spec-kit/dispatch-dashboard/internal/guard"
	"github.com/spec-kit/dispatch-dashboard/internal/session"
)

// Default navigation targets for the two gates.
const (
	LoginPath   = "/login"
	LandingPath = "/"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Tasks       *handlers.TasksHandler
	Maintenance *handlers.MaintenanceHandler
	Session     *session.Store
}

// RegisterRoutes wires HTTP routes behind their gates.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	// Session state is readable regardless of gate outcome; the UI polls it
	// to drive its global loading indicator.
	app.Get("/session", cfg.Auth.Session)

	public := app.Group("", guard.PublicOnlyMiddleware(cfg.Session, LandingPath))
	public.Post("/login", cfg.Auth.Login)
	public.Post("/signup", cfg.Auth.Signup)

	protected := app.Group("/api", guard.ProtectedMiddleware(cfg.Session, LoginPath))
	protected.Get("/counts", cfg.Tasks.Counts)
	protected.Get("/tasks/completed", cfg.Tasks.Completed)
	protected.Get("/tasks/ongoing", cfg.Tasks.Ongoing)
	protected.Get("/tasks/unassigned", cfg.Tasks.Unassigned)
	protected.Get("/drivers", cfg.Tasks.Drivers)
	protected.Get("/vehicles", cfg.Tasks.Vehicles)
	protected.Post("/tasks/assign", cfg.Tasks.Assign)
	protected.Post("/tasks/deallocate", cfg.Tasks.Deallocate)
	protected.Get("/export/tasks-without-invoice", cfg.Tasks.Export)
	protected.Get("/maintenance/drivers", cfg.Maintenance.Drivers)
	protected.Post("/maintenance/drivers", cfg.Maintenance.Create)
	protected.Patch("/maintenance/drivers/batch-update", cfg.Maintenance.BatchUpdate)
	protected.Delete("/maintenance/drivers/:driverId", cfg.Maintenance.Delete)

	// Logout stays outside both gates: it must work whatever the state.
	app.Post("/logout", cfg.Auth.Logout)
}
