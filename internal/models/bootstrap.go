package models

import "time"

// AdminBootstrap is the marker name written when the first admin self-registers.
const AdminBootstrap = "admin"

// BootstrapMarker rows are written once per bootstrap step. The primary key
// makes a second insert with the same name fail at the store level.
type BootstrapMarker struct {
	Name       string    `gorm:"primaryKey;size:50"`
	EmployeeID string    `gorm:"size:36;not null"`
	CreatedAt  time.Time
}

// All lists every model managed by AutoMigrate, in dependency order.
func All() []any {
	return []any{&Department{}, &Employee{}, &LeaveRequest{}, &BootstrapMarker{}}
}
