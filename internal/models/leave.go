package models

import "time"

// LeaveStatus is the state of a leave request.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// LeaveDecisions are the states an admin may move a pending request to.
var LeaveDecisions = []LeaveStatus{LeaveApproved, LeaveRejected}

// LeaveRequest belongs to exactly one employee and is addressed by
// (EmployeeID, ID). IDs grow monotonically, so ID order is creation order.
type LeaveRequest struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	EmployeeID string      `gorm:"size:36;not null;index" json:"-"`
	StartDate  time.Time   `gorm:"not null" json:"startDate"`
	EndDate    time.Time   `gorm:"not null" json:"endDate"`
	Reason     string      `gorm:"size:1000;not null" json:"reason"`
	Status     LeaveStatus `gorm:"size:20;not null;default:pending" json:"status"`
	CreatedAt  time.Time   `gorm:"<-:create" json:"createdAt"`
	DecidedAt  *time.Time  `json:"decidedAt,omitempty"`
}

// Resolved reports whether the request has left the pending state.
func (l LeaveRequest) Resolved() bool { return l.Status != LeavePending }

// OwnerID returns the owning employee id.
func (l LeaveRequest) OwnerID() string { return l.EmployeeID }
