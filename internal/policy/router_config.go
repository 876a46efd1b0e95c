package policy

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/diewo77/go-hr/auth"
	"github.com/diewo77/go-hr/internal/config"
	"github.com/diewo77/go-hr/internal/handlers"
	"github.com/diewo77/go-hr/internal/services"
)

// RouterConfig holds the gate and the handlers the router is built from.
type RouterConfig struct {
	AuthGate *AuthGate

	UserHandler       *handlers.UserHandler
	EmployeeHandler   *handlers.EmployeeHandler
	LeaveHandler      *handlers.LeaveHandler
	DepartmentHandler *handlers.DepartmentHandler
	DashboardHandler  *handlers.DashboardHandler
}

// NewRouterConfig wires the gate, the services and the handlers over db.
func NewRouterConfig(db *gorm.DB, cfg *config.Config, log *slog.Logger) (*RouterConfig, error) {
	issuer := auth.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authGate, err := NewAuthGate(db, issuer, cfg.Auth.IdentityCacheTTL, log)
	if err != nil {
		return nil, err
	}

	fold := cfg.App.EmailFoldCase
	accounts := services.NewAccountService(db, auth.NewBcryptHasher(cfg.Auth.BcryptCost), issuer, fold)
	employees := services.NewEmployeeService(db, fold)
	leave := services.NewLeaveService(db)
	departments := services.NewDepartmentService(db)
	reports := services.NewReportService(db)

	return &RouterConfig{
		AuthGate:          authGate,
		UserHandler:       handlers.NewUserHandler(accounts, employees, log),
		EmployeeHandler:   handlers.NewEmployeeHandler(employees, departments, log),
		LeaveHandler:      handlers.NewLeaveHandler(leave, log),
		DepartmentHandler: handlers.NewDepartmentHandler(departments, log),
		DashboardHandler:  handlers.NewDashboardHandler(reports, log),
	}, nil
}
