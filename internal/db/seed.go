package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/diewo77/go-hr/internal/models"
)

// DefaultDepartments is the reference org structure created on first start.
var DefaultDepartments = []models.Department{
	{Name: "Engineering", Description: "Engineering Department"},
	{Name: "HR", Description: "Human Resources Department"},
	{Name: "Sales", Description: "Sales Department"},
	{Name: "Marketing", Description: "Marketing Department"},
	{Name: "Finance", Description: "Finance & Accounting"},
	{Name: "Support", Description: "Customer Support Department"},
}

// SeedDepartments creates the default departments that do not exist yet.
// Existing departments are left untouched, so it is safe to call on every start.
func SeedDepartments(ctx context.Context, conn *gorm.DB) error {
	for _, d := range DefaultDepartments {
		dep := d
		if err := conn.WithContext(ctx).Where(models.Department{Name: dep.Name}).
			Attrs(models.Department{Description: dep.Description}).
			FirstOrCreate(&dep).Error; err != nil {
			return fmt.Errorf("seed department %s: %w", d.Name, err)
		}
	}
	return nil
}
