package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/diewo77/go-hr/auth"
	"github.com/diewo77/go-hr/gate"
	"github.com/diewo77/go-hr/internal/apperr"
	"github.com/diewo77/go-hr/internal/models"
	"github.com/diewo77/go-hr/validation"
)

// TokenIssuer signs bearer tokens for authenticated identities.
type TokenIssuer interface {
	Issue(p gate.Principal) (string, time.Time, error)
}

// Session is the result of a successful registration or login.
type Session struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	User      *models.Employee `json:"user"`
}

// Credentials is the input of admin registration and login.
type Credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EmployeeInput is the admin input for a new employee account.
type EmployeeInput struct {
	Name            string                  `json:"name"`
	Email           string                  `json:"email"`
	Password        string                  `json:"password"`
	DepartmentID    string                  `json:"department"`
	Salary          *float64                `json:"salary"`
	Status          models.EmployeeStatus   `json:"status"`
	Position        string                  `json:"position"`
	PersonalDetails *models.PersonalDetails `json:"personalDetails"`
	Contacts        *models.Contacts        `json:"contacts"`
	WorkingHours    *models.WorkingHours    `json:"workingHours"`
}

// AccountService owns identity creation and authentication.
type AccountService struct {
	DB        *gorm.DB
	Hasher    auth.Hasher
	Tokens    TokenIssuer
	FoldEmail bool

	dummyOnce sync.Once
	dummyHash string
}

func NewAccountService(db *gorm.DB, hasher auth.Hasher, tokens TokenIssuer, foldEmail bool) *AccountService {
	return &AccountService{DB: db, Hasher: hasher, Tokens: tokens, FoldEmail: foldEmail}
}

// RegisterAdmin creates the first admin. The bootstrap marker and the admin
// are written in one transaction; the marker's primary key lets exactly one
// caller win, every other caller gets apperr.ErrConflict. An admin row that
// exists without a marker, e.g. loaded by a SQL seed, also closes bootstrap.
func (s *AccountService) RegisterAdmin(ctx context.Context, in Credentials) (*Session, error) {
	v := validation.Violations{}
	email := normalizeEmail(in.Email, s.FoldEmail)
	validation.Required("name", in.Name, v)
	validation.Email("email", email, v)
	validation.Required("password", in.Password, v)
	if err := apperr.Invalid(v); err != nil {
		return nil, err
	}

	var existing int64
	if err := s.DB.WithContext(ctx).Model(&models.BootstrapMarker{}).
		Where("name = ?", models.AdminBootstrap).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("check bootstrap: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: admin already registered", apperr.ErrConflict)
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	admin := models.Employee{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         gate.RoleAdmin,
		Status:       models.StatusActive,
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var admins int64
		if err := tx.Model(&models.Employee{}).Where("role = ?", gate.RoleAdmin).Count(&admins).Error; err != nil {
			return fmt.Errorf("check admins: %w", err)
		}
		if admins > 0 {
			return fmt.Errorf("%w: admin already exists", apperr.ErrConflict)
		}
		marker := models.BootstrapMarker{Name: models.AdminBootstrap, EmployeeID: admin.ID}
		if err := tx.Create(&marker).Error; err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: admin already registered", apperr.ErrConflict)
			}
			return fmt.Errorf("insert bootstrap marker: %w", err)
		}
		if err := tx.Create(&admin).Error; err != nil {
			if isUniqueViolation(err) {
				return apperr.InvalidField("email", "taken")
			}
			return fmt.Errorf("create admin: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.session(&admin)
}

// Login authenticates by email and password. Unknown emails and wrong
// passwords both return apperr.ErrInvalidCredentials after one hash comparison.
func (s *AccountService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email, s.FoldEmail)
	if email == "" || password == "" {
		s.Hasher.Compare(s.dummy(), password)
		return nil, apperr.ErrInvalidCredentials
	}
	var e models.Employee
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.Hasher.Compare(s.dummy(), password)
		return nil, apperr.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup identity: %w", err)
	}
	if !s.Hasher.Compare(e.PasswordHash, password) {
		return nil, apperr.ErrInvalidCredentials
	}
	return s.session(&e)
}

// CreateEmployee creates an employee account. The role is always employee.
func (s *AccountService) CreateEmployee(ctx context.Context, in EmployeeInput) (*models.Employee, error) {
	v := validation.Violations{}
	email := normalizeEmail(in.Email, s.FoldEmail)
	validation.Required("name", in.Name, v)
	validation.Email("email", email, v)
	validation.Required("password", in.Password, v)
	if in.Salary != nil {
		validation.NonNegative("salary", *in.Salary, v)
	}
	validation.OneOf("status", in.Status, models.EmployeeStatuses, v)

	e := models.Employee{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Role:     gate.RoleEmployee,
		Status:   models.StatusActive,
		Position: strings.TrimSpace(in.Position),
		Salary:   in.Salary,
	}
	if in.Status != "" {
		e.Status = in.Status
	}
	if in.PersonalDetails != nil {
		e.PersonalDetails = *in.PersonalDetails
		validatePersonalDetails(e.PersonalDetails, v)
	}
	if in.Contacts != nil {
		e.Contacts = *in.Contacts
	}
	if in.WorkingHours != nil {
		e.WorkingHours = *in.WorkingHours
		validateWorkingHours(e.WorkingHours, v)
	}
	if id := strings.TrimSpace(in.DepartmentID); id != "" {
		e.DepartmentID = &id
	}
	if err := apperr.Invalid(v); err != nil {
		return nil, err
	}

	db := s.DB.WithContext(ctx)
	dep, err := departmentRef(db, e.DepartmentID)
	if err != nil {
		return nil, err
	}
	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	e.PasswordHash = hash
	if err := db.Omit("LeaveRequests").Create(&e).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.InvalidField("email", "taken")
		}
		return nil, fmt.Errorf("create employee: %w", err)
	}
	e.Department = dep
	return &e, nil
}

func (s *AccountService) session(e *models.Employee) (*Session, error) {
	token, exp, err := s.Tokens.Issue(e.Principal())
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: exp, User: e}, nil
}

// dummy returns a hash compared against when the identity is unknown, so
// both login failures cost one hash comparison.
func (s *AccountService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.Hasher.Hash(uuid.NewString())
	})
	return s.dummyHash
}
