package policy

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/diewo77/go-hr/gate"
	"github.com/diewo77/go-hr/internal/models"
)

// DBIdentityResolver reads the stored role of an identity.
// It implements gate.IdentityResolver.
type DBIdentityResolver struct {
	DB *gorm.DB
}

func NewDBIdentityResolver(db *gorm.DB) *DBIdentityResolver {
	return &DBIdentityResolver{DB: db}
}

// Resolve returns "" for unknown or malformed ids.
func (r *DBIdentityResolver) Resolve(ctx context.Context, id string) (gate.Role, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", nil
	}
	var e models.Employee
	err := r.DB.WithContext(ctx).Select("id", "role").First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return e.Role, nil
}
