package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/diewo77/go-hr/gate"
	"github.com/diewo77/go-hr/internal/apperr"
	"github.com/diewo77/go-hr/internal/models"
	"github.com/diewo77/go-hr/validation"
)

// Filter narrows an employee listing. Empty fields do not filter.
// Position and Query match case-insensitive substrings; Query is OR-ed over
// name, email and position and AND-ed with the other fields.
type Filter struct {
	Role         gate.Role
	DepartmentID string
	Status       models.EmployeeStatus
	Position     string
	Query        string
}

// EmployeeService reads and updates identity records.
type EmployeeService struct {
	DB        *gorm.DB
	FoldEmail bool
}

func NewEmployeeService(db *gorm.DB, foldEmail bool) *EmployeeService {
	return &EmployeeService{DB: db, FoldEmail: foldEmail}
}

// Get returns an employee-role record by id with its department and leave requests.
// Admin records and malformed ids are reported as not found.
func (s *EmployeeService) Get(ctx context.Context, id string) (*models.Employee, error) {
	e, err := loadEmployee(s.DB.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if e.Role != gate.RoleEmployee {
		return nil, apperr.NotFound("employee")
	}
	return e, nil
}

// Profile returns the caller's own record, whatever its role.
func (s *EmployeeService) Profile(ctx context.Context, p gate.Principal) (*models.Employee, error) {
	if p.IsZero() {
		return nil, apperr.ErrUnauthenticated
	}
	return loadEmployee(s.DB.WithContext(ctx), p.ID)
}

// Find lists records matching f, newest first.
func (s *EmployeeService) Find(ctx context.Context, f Filter) ([]models.Employee, error) {
	v := validation.Violations{}
	validation.OneOf("role", f.Role, []gate.Role{gate.RoleAdmin, gate.RoleEmployee}, v)
	validation.OneOf("status", f.Status, models.EmployeeStatuses, v)
	if err := apperr.Invalid(v); err != nil {
		return nil, err
	}

	q := s.DB.WithContext(ctx).Model(&models.Employee{}).Preload("LeaveRequests", byCreation)
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.DepartmentID != "" {
		q = q.Where("department_id = ?", f.DepartmentID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Position != "" {
		q = q.Where(`LOWER(position) LIKE ? ESCAPE '\'`, likePattern(f.Position))
	}
	if f.Query != "" {
		pat := likePattern(f.Query)
		q = q.Where(
			`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\' OR LOWER(position) LIKE ? ESCAPE '\')`,
			pat, pat, pat,
		)
	}

	var out []models.Employee
	if err := q.Order("created_at DESC").Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("find employees: %w", err)
	}
	if err := attachDepartments(s.DB.WithContext(ctx), out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies an admin patch to an employee-role record.
func (s *EmployeeService) Update(ctx context.Context, id string, patch EmployeePatch) (*models.Employee, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	v := validation.Violations{}
	patch.apply(e, s.FoldEmail, v)
	if err := apperr.Invalid(v); err != nil {
		return nil, err
	}
	return s.save(ctx, e, patch.DepartmentID != nil)
}

// UpdateOwnProfile lets any identity change its name, personal details and
// contacts. Everything else on the record is left alone.
func (s *EmployeeService) UpdateOwnProfile(ctx context.Context, p gate.Principal, patch ProfilePatch) (*models.Employee, error) {
	e, err := s.Profile(ctx, p)
	if err != nil {
		return nil, err
	}
	v := validation.Violations{}
	patch.apply(e, v)
	if err := apperr.Invalid(v); err != nil {
		return nil, err
	}
	return s.save(ctx, e, false)
}

func (s *EmployeeService) save(ctx context.Context, e *models.Employee, departmentChanged bool) (*models.Employee, error) {
	db := s.DB.WithContext(ctx)
	if departmentChanged {
		dep, err := departmentRef(db, e.DepartmentID)
		if err != nil {
			return nil, err
		}
		e.Department = dep
	}
	if err := db.Omit(clause.Associations).Save(e).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.InvalidField("email", "taken")
		}
		return nil, fmt.Errorf("save employee: %w", err)
	}
	return e, nil
}

// loadEmployee fetches any record by id with leave requests in creation order
// and its department, if that still exists.
func loadEmployee(db *gorm.DB, id string) (*models.Employee, error) {
	if !validID(id) {
		return nil, apperr.NotFound("employee")
	}
	var e models.Employee
	if err := db.Preload("LeaveRequests", byCreation).First(&e, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "employee")
	}
	one := []models.Employee{e}
	if err := attachDepartments(db, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

// attachDepartments fills Department for every record whose reference still
// resolves. Dangling references are left with a nil Department.
func attachDepartments(db *gorm.DB, list []models.Employee) error {
	ids := make([]string, 0, len(list))
	for _, e := range list {
		if e.DepartmentID != nil {
			ids = append(ids, *e.DepartmentID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	var deps []models.Department
	if err := db.Where("id IN ?", ids).Find(&deps).Error; err != nil {
		return fmt.Errorf("load departments: %w", err)
	}
	byID := make(map[string]*models.Department, len(deps))
	for i := range deps {
		byID[deps[i].ID] = &deps[i]
	}
	for i := range list {
		if list[i].DepartmentID != nil {
			list[i].Department = byID[*list[i].DepartmentID]
		}
	}
	return nil
}

// departmentRef checks that a department reference points to an existing
// department. A nil reference is valid and returns nil.
func departmentRef(db *gorm.DB, id *string) (*models.Department, error) {
	if id == nil {
		return nil, nil
	}
	if !validID(*id) {
		return nil, apperr.InvalidField("department", "not_found")
	}
	var d models.Department
	if err := db.First(&d, "id = ?", *id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.InvalidField("department", "not_found")
		}
		return nil, fmt.Errorf("load department: %w", err)
	}
	return &d, nil
}

func byCreation(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(strings.TrimSpace(s))) + "%"
}
