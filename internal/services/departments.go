package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/diewo77/go-hr/internal/apperr"
	"github.com/diewo77/go-hr/internal/models"
	"github.com/diewo77/go-hr/validation"
)

// DepartmentInput creates a department or, with nil fields left out,
// patches one.
type DepartmentInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// DepartmentService manages departments. Deleting a department leaves the
// references held by employees in place.
type DepartmentService struct {
	DB *gorm.DB
}

func NewDepartmentService(db *gorm.DB) *DepartmentService {
	return &DepartmentService{DB: db}
}

// List returns every department with its employee count, sorted by name.
func (s *DepartmentService) List(ctx context.Context) ([]DepartmentCount, error) {
	return departmentRollup(s.DB.WithContext(ctx))
}

func (s *DepartmentService) Get(ctx context.Context, id string) (*models.Department, error) {
	if !validID(id) {
		return nil, apperr.NotFound("department")
	}
	var d models.Department
	if err := s.DB.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "department")
	}
	return &d, nil
}

func (s *DepartmentService) Create(ctx context.Context, in DepartmentInput) (*models.Department, error) {
	var d models.Department
	if in.Name == nil {
		return nil, apperr.InvalidField("name", "required")
	}
	if err := in.apply(&d); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Create(&d).Error; err != nil {
		return nil, translateDepartment(err, "create")
	}
	return &d, nil
}

func (s *DepartmentService) Update(ctx context.Context, id string, in DepartmentInput) (*models.Department, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := in.apply(d); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Save(d).Error; err != nil {
		return nil, translateDepartment(err, "update")
	}
	return d, nil
}

func (s *DepartmentService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return apperr.NotFound("department")
	}
	res := s.DB.WithContext(ctx).Delete(&models.Department{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete department: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("department")
	}
	return nil
}

func (in DepartmentInput) apply(d *models.Department) error {
	v := validation.Violations{}
	if in.Name != nil {
		validation.Required("name", *in.Name, v)
		d.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		d.Description = strings.TrimSpace(*in.Description)
	}
	return apperr.Invalid(v)
}

func translateDepartment(err error, op string) error {
	if isUniqueViolation(err) {
		return apperr.InvalidField("name", "taken")
	}
	return fmt.Errorf("%s department: %w", op, err)
}
