package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/diewo77/go-hr/gate"
)

// EmployeeStatus is the employment status of an identity.
type EmployeeStatus string

const (
	StatusActive   EmployeeStatus = "active"
	StatusInactive EmployeeStatus = "inactive"
)

var EmployeeStatuses = []EmployeeStatus{StatusActive, StatusInactive}

// Employee is an identity record: an admin or employee account together with
// its org assignment, free-form personal data and its leave requests.
type Employee struct {
	ID           string         `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"` // never exposed in JSON
	Role         gate.Role      `gorm:"size:20;not null;index" json:"role"`
	Status       EmployeeStatus `gorm:"size:20;not null;default:active;index" json:"status"`
	Position     string         `gorm:"size:255" json:"position,omitempty"`
	Salary       *float64       `json:"salary,omitempty"`
	// DepartmentID is a weak reference: deleting the department leaves it dangling.
	DepartmentID *string     `gorm:"size:36;index" json:"departmentId,omitempty"`
	Department   *Department `gorm:"-" json:"department,omitempty"`

	PersonalDetails PersonalDetails `gorm:"serializer:json;type:text" json:"personalDetails"`
	Contacts        Contacts        `gorm:"serializer:json;type:text" json:"contacts"`
	WorkingHours    WorkingHours    `gorm:"serializer:json;type:text" json:"workingHours"`

	// LeaveRequests are ordered by creation when loaded through the services.
	LeaveRequests []LeaveRequest `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"leaveRequests"`
}

// BeforeCreate assigns a UUID when none is set.
func (e *Employee) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// OwnerID makes an employee record subject to ownership policies.
func (e *Employee) OwnerID() string { return e.ID }

// Principal returns the gate identity of the record.
func (e *Employee) Principal() gate.Principal {
	return gate.Principal{ID: e.ID, Role: e.Role}
}
