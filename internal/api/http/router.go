package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/noc-fault-service/internal/api/http/handlers"
	"github.com/spec-kit/noc-fault-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Faults         *handlers.FaultsHandler
	Users          *handlers.UsersHandler
	Departments    *handlers.DepartmentsHandler
	Customers      *handlers.CustomersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/register", cfg.Users.Register)

	protected := api.Group("", cfg.AuthMiddleware.Handle)

	faults := protected.Group("/faults")
	faults.Get("/", cfg.Faults.ListFaults)
	faults.Post("/", cfg.Faults.CreateFault)
	faults.Get("/export", cfg.Faults.ExportFaults)
	faults.Get("/:id", cfg.Faults.GetFault)
	faults.Put("/:id", cfg.Faults.UpdateFault)
	faults.Get("/:id/history", cfg.Faults.ListHistory)
	faults.Get("/:id/notes", cfg.Faults.ListNotes)
	faults.Post("/:id/notes", cfg.Faults.AddNote)

	departments := protected.Group("/departments")
	departments.Get("/", cfg.Departments.ListDepartments)
	departments.Post("/", auth.RequireAdmin(), cfg.Departments.CreateDepartment)

	customers := protected.Group("/customers")
	customers.Get("/", cfg.Customers.ListCustomers)
	customers.Post("/", cfg.Customers.CreateCustomer)

	users := protected.Group("/users", auth.RequireAdmin())
	users.Get("/", cfg.Users.ListUsers)
	users.Post("/", cfg.Users.CreateUser)
	users.Get("/:id", cfg.Users.GetUser)
}
