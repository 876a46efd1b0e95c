package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/diewo77/go-hr/auth"
	"github.com/diewo77/go-hr/gate"
	"github.com/diewo77/go-hr/internal/apperr"
	"github.com/diewo77/go-hr/internal/models"
	"github.com/diewo77/go-hr/internal/services"
)

func TestRegisterAdmin(t *testing.T) {
	conn := setupTestDB(t)
	svc := newAccounts(conn)
	ctx := context.Background()

	sess, err := svc.RegisterAdmin(ctx, services.Credentials{Name: "Root", Email: "root@example.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, gate.RoleAdmin, sess.User.Role)
	assert.NotEqual(t, "s3cret", sess.User.PasswordHash)

	p, err := auth.NewJWTIssuer(testSecret, 0).Verify(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, p.ID)
	assert.Equal(t, gate.RoleAdmin, p.Role)

	_, err = svc.RegisterAdmin(ctx, services.Credentials{Name: "Second", Email: "second@example.com", Password: "pw"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestRegisterAdmin_SeededAdminClosesBootstrap(t *testing.T) {
	conn := setupTestDB(t)
	fixture(t, conn, "Seeded Root", asAdmin)

	_, err := newAccounts(conn).RegisterAdmin(context.Background(),
		services.Credentials{Name: "Late", Email: "late@example.com", Password: "pw"})
	require.ErrorIs(t, err, apperr.ErrConflict)

	var admins, markers int64
	require.NoError(t, conn.Model(&models.Employee{}).Where("role = ?", gate.RoleAdmin).Count(&admins).Error)
	require.NoError(t, conn.Model(&models.BootstrapMarker{}).Count(&markers).Error)
	assert.EqualValues(t, 1, admins)
	assert.Zero(t, markers)
}

func TestRegisterAdmin_Validation(t *testing.T) {
	svc := newAccounts(setupTestDB(t))
	_, err := svc.RegisterAdmin(context.Background(), services.Credentials{Email: "not-an-email"})
	require.ErrorIs(t, err, apperr.ErrValidation)
	v := apperr.Violations(err)
	assert.Equal(t, "required", v["name"])
	assert.Equal(t, "invalid_email", v["email"])
	assert.Equal(t, "required", v["password"])
}

func TestRegisterAdmin_ConcurrentBootstrap(t *testing.T) {
	conn := setupTestDB(t)
	svc := newAccounts(conn)
	ctx := context.Background()

	const attempts = 8
	errs := make([]error, attempts)
	var g errgroup.Group
	for i := range attempts {
		g.Go(func() error {
			_, errs[i] = svc.RegisterAdmin(ctx, services.Credentials{
				Name:     fmt.Sprintf("Admin %d", i),
				Email:    fmt.Sprintf("admin%d@example.com", i),
				Password: "pw",
			})
			return nil
		})
	}
	require.NoError(t, g.Wait())

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, apperr.ErrConflict):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, conflicts)

	var admins int64
	require.NoError(t, conn.Model(&models.Employee{}).Where("role = ?", gate.RoleAdmin).Count(&admins).Error)
	assert.EqualValues(t, 1, admins)
}

func TestLogin(t *testing.T) {
	svc := newAccounts(setupTestDB(t))
	ctx := context.Background()
	_, err := svc.RegisterAdmin(ctx, services.Credentials{Name: "Root", Email: "root@example.com", Password: "s3cret"})
	require.NoError(t, err)

	sess, err := svc.Login(ctx, "root@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "root@example.com", sess.User.Email)

	_, wrongPassword := svc.Login(ctx, "root@example.com", "nope")
	_, unknownEmail := svc.Login(ctx, "ghost@example.com", "s3cret")
	_, empty := svc.Login(ctx, "", "")
	for _, err := range []error{wrongPassword, unknownEmail, empty} {
		assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	}
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestCreateEmployee(t *testing.T) {
	conn := setupTestDB(t)
	svc := newAccounts(conn)
	ctx := context.Background()
	dep := department(t, conn, "Engineering")

	e, err := svc.CreateEmployee(ctx, services.EmployeeInput{
		Name:         "Ada Lovelace",
		Email:        "ada@example.com",
		Password:     "pw",
		DepartmentID: dep.ID,
		Salary:       ptr(42000.0),
		Position:     "Engineer",
		PersonalDetails: &models.PersonalDetails{
			Gender:  models.GenderFemale,
			Address: models.Address{City: "London"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, gate.RoleEmployee, e.Role)
	assert.Equal(t, models.StatusActive, e.Status)
	require.NotNil(t, e.Department)
	assert.Equal(t, "Engineering", e.Department.Name)

	sess, err := svc.Login(ctx, "ada@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, e.ID, sess.User.ID)
}

func TestCreateEmployee_EmailUnique(t *testing.T) {
	svc := newAccounts(setupTestDB(t))
	ctx := context.Background()
	in := services.EmployeeInput{Name: "A", Email: "dup@example.com", Password: "pw"}
	_, err := svc.CreateEmployee(ctx, in)
	require.NoError(t, err)

	_, err = svc.CreateEmployee(ctx, in)
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "taken", apperr.Violations(err)["email"])
}

func TestCreateEmployee_EmailFoldCase(t *testing.T) {
	conn := setupTestDB(t)
	svc := newAccounts(conn)
	svc.FoldEmail = true
	ctx := context.Background()

	_, err := svc.CreateEmployee(ctx, services.EmployeeInput{Name: "A", Email: "Mixed@Example.com", Password: "pw"})
	require.NoError(t, err)
	_, err = svc.CreateEmployee(ctx, services.EmployeeInput{Name: "B", Email: "mixed@example.com", Password: "pw"})
	require.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Login(ctx, "MIXED@example.com", "pw")
	assert.NoError(t, err)
}

func TestCreateEmployee_InvalidInput(t *testing.T) {
	svc := newAccounts(setupTestDB(t))
	_, err := svc.CreateEmployee(context.Background(), services.EmployeeInput{
		Name:         "A",
		Email:        "a@example.com",
		Password:     "pw",
		Salary:       ptr(-1.0),
		Status:       "retired",
		DepartmentID: "not-a-uuid",
		WorkingHours: &models.WorkingHours{StartTime: "9am", Days: []models.Weekday{"Funday"}},
	})
	require.ErrorIs(t, err, apperr.ErrValidation)
	v := apperr.Violations(err)
	assert.Equal(t, "must_not_be_negative", v["salary"])
	assert.Equal(t, "invalid_value", v["status"])
	assert.Equal(t, "invalid_time", v["workingHours.startTime"])
	assert.Equal(t, "invalid_value", v["workingHours.days"])
}

func TestCreateEmployee_UnknownDepartment(t *testing.T) {
	svc := newAccounts(setupTestDB(t))
	_, err := svc.CreateEmployee(context.Background(), services.EmployeeInput{
		Name:         "A",
		Email:        "a@example.com",
		Password:     "pw",
		DepartmentID: "7f0b1a52-8f5e-4c61-9d59-6a8a3b2f4e10",
	})
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "not_found", apperr.Violations(err)["department"])
}
