package services_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/go-hr/auth"
	"github.com/diewo77/go-hr/gate"
	"github.com/diewo77/go-hr/internal/db"
	"github.com/diewo77/go-hr/internal/models"
	"github.com/diewo77/go-hr/internal/services"
)

const testSecret = "test-secret"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(conn))
	return conn
}

func newAccounts(conn *gorm.DB) *services.AccountService {
	return services.NewAccountService(conn, auth.NewBcryptHasher(bcrypt.MinCost), auth.NewJWTIssuer(testSecret, 0), false)
}

func ptr[T any](v T) *T { return &v }

// fixture inserts an employee-role record directly, bypassing the services.
func fixture(t *testing.T, conn *gorm.DB, name string, mutate ...func(*models.Employee)) *models.Employee {
	t.Helper()
	e := &models.Employee{
		Name:         name,
		Email:        strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		PasswordHash: "x",
		Role:         gate.RoleEmployee,
		Status:       models.StatusActive,
	}
	for _, m := range mutate {
		m(e)
	}
	require.NoError(t, conn.Create(e).Error)
	return e
}

func department(t *testing.T, conn *gorm.DB, name string) *models.Department {
	t.Helper()
	d := &models.Department{Name: name}
	require.NoError(t, conn.Create(d).Error)
	return d
}

func withSalary(v float64) func(*models.Employee) {
	return func(e *models.Employee) { e.Salary = &v }
}

func withDepartment(d *models.Department) func(*models.Employee) {
	return func(e *models.Employee) { e.DepartmentID = &d.ID }
}

func withStatus(s models.EmployeeStatus) func(*models.Employee) {
	return func(e *models.Employee) { e.Status = s }
}

func withCreatedAt(ts time.Time) func(*models.Employee) {
	return func(e *models.Employee) { e.CreatedAt = ts }
}

func asAdmin(e *models.Employee) { e.Role = gate.RoleAdmin }
