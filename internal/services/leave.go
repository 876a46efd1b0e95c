package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/go-hr/gate"
	"github.com/diewo77/go-hr/internal/apperr"
	"github.com/diewo77/go-hr/internal/models"
	"github.com/diewo77/go-hr/validation"
)

// LeaveInput is the body of a new leave request.
type LeaveInput struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

// LeaveListing is the projection returned when listing an employee's leave.
type LeaveListing struct {
	EmployeeID    string                `json:"employeeId"`
	Name          string                `json:"name"`
	LeaveRequests []models.LeaveRequest `json:"leaveRequests"`
}

// LeaveService runs the leave request workflow:
// pending -> approved and pending -> rejected, nothing else.
type LeaveService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewLeaveService(db *gorm.DB) *LeaveService {
	return &LeaveService{DB: db, Now: time.Now}
}

// Create files a pending leave request for ownerID. Only the owner may file,
// and only identities with the employee role own leave requests.
func (s *LeaveService) Create(ctx context.Context, p gate.Principal, ownerID string, in LeaveInput) (*models.LeaveRequest, error) {
	if p.IsZero() {
		return nil, apperr.ErrUnauthenticated
	}
	if p.ID != ownerID {
		return nil, apperr.ErrForbidden
	}

	v := validation.Violations{}
	start := validation.Date("startDate", in.StartDate, v)
	end := validation.Date("endDate", in.EndDate, v)
	validation.Required("reason", in.Reason, v)
	if !start.IsZero() && !end.IsZero() {
		validation.NotBefore("endDate", start, end, v)
	}
	if err := apperr.Invalid(v); err != nil {
		return nil, err
	}

	db := s.DB.WithContext(ctx)
	owner, err := ownerRecord(db, ownerID)
	if err != nil {
		return nil, err
	}
	if owner.Role != gate.RoleEmployee {
		return nil, apperr.ErrForbidden
	}

	lr := models.LeaveRequest{
		EmployeeID: owner.ID,
		StartDate:  start,
		EndDate:    end,
		Reason:     strings.TrimSpace(in.Reason),
		Status:     models.LeavePending,
		CreatedAt:  s.Now().UTC(),
	}
	if err := db.Create(&lr).Error; err != nil {
		return nil, fmt.Errorf("create leave request: %w", err)
	}
	return &lr, nil
}

// Transition moves a pending request addressed by (ownerID, requestID) to
// approved or rejected. A decided request returns apperr.ErrAlreadyResolved.
func (s *LeaveService) Transition(ctx context.Context, ownerID, requestID string, status models.LeaveStatus) (*models.LeaveRequest, error) {
	v := validation.Violations{}
	validation.Required("status", string(status), v)
	validation.OneOf("status", status, models.LeaveDecisions, v)
	if err := apperr.Invalid(v); err != nil {
		return nil, err
	}
	seq, ok := parseSeq(requestID)
	if !validID(ownerID) {
		return nil, apperr.NotFound("employee")
	}

	var lr models.LeaveRequest
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ownerRecord(tx, ownerID); err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("leave request")
		}
		if err := tx.Where("employee_id = ?", ownerID).First(&lr, seq).Error; err != nil {
			return notFound(err, "leave request")
		}
		if lr.Resolved() {
			return apperr.ErrAlreadyResolved
		}
		decided := s.Now().UTC()
		res := tx.Model(&models.LeaveRequest{}).
			Where("id = ? AND employee_id = ? AND status = ?", lr.ID, ownerID, models.LeavePending).
			Updates(map[string]any{"status": status, "decided_at": decided})
		if res.Error != nil {
			return fmt.Errorf("update leave request: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.ErrAlreadyResolved
		}
		lr.Status = status
		lr.DecidedAt = &decided
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

// List returns the owner's leave requests in creation order.
func (s *LeaveService) List(ctx context.Context, ownerID string) (*LeaveListing, error) {
	db := s.DB.WithContext(ctx)
	owner, err := ownerRecord(db, ownerID)
	if err != nil {
		return nil, err
	}
	requests := []models.LeaveRequest{}
	if err := byCreation(db.Where("employee_id = ?", owner.ID)).Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("list leave requests: %w", err)
	}
	return &LeaveListing{EmployeeID: owner.ID, Name: owner.Name, LeaveRequests: requests}, nil
}

// ownerRecord loads the identity owning leave requests without its associations.
func ownerRecord(db *gorm.DB, id string) (*models.Employee, error) {
	if !validID(id) {
		return nil, apperr.NotFound("employee")
	}
	var e models.Employee
	if err := db.Select("id", "name", "role").First(&e, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "employee")
	}
	return &e, nil
}
