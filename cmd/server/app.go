package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"

	"github.com/diewo77/go-hr/gate"
	"github.com/diewo77/go-hr/internal/handlers"
	"github.com/diewo77/go-hr/internal/logger"
	"github.com/diewo77/go-hr/internal/policy"
)

// App is the HTTP surface of the service.
type App struct {
	router    chi.Router
	db        *gorm.DB
	routerCfg *policy.RouterConfig
	log       *slog.Logger
}

// NewApp creates the application with all routes configured.
func NewApp(db *gorm.DB, routerCfg *policy.RouterConfig, log *slog.Logger) *App {
	app := &App{
		router:    chi.NewRouter(),
		db:        db,
		routerCfg: routerCfg,
		log:       log,
	}
	app.setupRoutes()
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

func (a *App) setupRoutes() {
	r := a.router
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.AccessLog(a.log))
	r.Use(middleware.Recoverer)

	ag := a.routerCfg.AuthGate
	anyone := ag.Require()
	admin := ag.Require(gate.RoleAdmin)
	employee := ag.Require(gate.RoleEmployee)

	uh := a.routerCfg.UserHandler
	eh := a.routerCfg.EmployeeHandler
	lh := a.routerCfg.LeaveHandler
	dh := a.routerCfg.DepartmentHandler
	dbh := a.routerCfg.DashboardHandler

	health := handlers.Health(a.db)
	r.Get("/health", health)
	r.Get("/healthz", health)

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/register-admin", uh.RegisterAdmin)
		r.Post("/login", uh.Login)
		r.With(admin).Post("/create-employee", uh.CreateEmployee)
		r.With(anyone, ag.RequirePermission(policy.ResourceProfile, gate.ActionView)).Get("/profile", uh.Profile)
		r.With(anyone, ag.RequirePermission(policy.ResourceProfile, gate.ActionUpdate)).Put("/profile", uh.UpdateProfile)
	})

	r.Route("/api/employees", func(r chi.Router) {
		r.With(admin).Get("/", eh.List)
		r.With(anyone, ag.RequirePermission(policy.ResourceProfile, gate.ActionView)).Get("/profile", uh.Profile)

		r.Route("/leave-requests", func(r chi.Router) {
			r.With(employee, ag.RequirePermission(policy.ResourceLeave, gate.ActionCreate)).Post("/", lh.Create)
			r.With(admin).Patch("/{employeeId}/{leaveRequestId}", lh.Transition)
			r.With(anyone, ag.RequireOwnerOrAdmin(policy.ResourceLeave, gate.ActionList, "employeeId")).
				Get("/{employeeId}", lh.List)
		})

		r.With(admin).Get("/{id}", eh.Get)
		r.With(admin).Put("/{id}", eh.Update)
	})

	r.Route("/api/departments", func(r chi.Router) {
		r.Use(admin)
		r.Get("/", dh.List)
		r.Post("/", dh.Create)
		r.Put("/{id}", dh.Update)
		r.Delete("/{id}", dh.Delete)
	})

	r.With(admin).Get("/api/dashboard", dbh.Get)
}
