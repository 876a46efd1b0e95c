package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Department is an organizational unit referenced by employees.
type Department struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Name        string    `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Description string    `gorm:"size:1000" json:"description,omitempty"`
}

func (d *Department) BeforeCreate(*gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
