package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/diewo77/go-hr/gate"
	"github.com/diewo77/go-hr/internal/db"
	"github.com/diewo77/go-hr/internal/models"
)

// SalaryBucket is a closed salary interval [Min, Max].
type SalaryBucket struct {
	Range string
	Min   float64
	Max   float64
}

// SalaryBuckets is the fixed histogram layout. Salaries above the last Max,
// and values between two buckets, are counted nowhere.
var SalaryBuckets = []SalaryBucket{
	{Range: "0-30000", Min: 0, Max: 30000},
	{Range: "30001-50000", Min: 30001, Max: 50000},
	{Range: "50001+", Min: 50001, Max: 1000000},
}

type StatusCounts struct {
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
	Total    int64 `json:"total"`
}

type DepartmentCount struct {
	DepartmentID  string `json:"departmentId"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	EmployeeCount int64  `json:"employeeCount"`
}

// Dashboard holds the admin statistics, all computed from one read view.
type Dashboard struct {
	Counts             StatusCounts      `json:"counts"`
	Departments        []DepartmentCount `json:"departments"`
	SalaryDistribution map[string]int64  `json:"salaryDistribution"`
}

// ReportService computes statistics over employee-role records.
type ReportService struct {
	DB *gorm.DB
}

func NewReportService(conn *gorm.DB) *ReportService {
	return &ReportService{DB: conn}
}

// Dashboard runs the three aggregations inside a single read-only
// transaction so concurrent writes cannot make them disagree.
func (s *ReportService) Dashboard(ctx context.Context) (*Dashboard, error) {
	var opts []*sql.TxOptions
	if db.IsPostgres(s.DB) {
		opts = append(opts, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	}
	var out Dashboard
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if out.Counts, err = globalCounts(tx); err != nil {
			return err
		}
		if out.Departments, err = departmentRollup(tx); err != nil {
			return err
		}
		out.SalaryDistribution, err = salaryHistogram(tx)
		return err
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type statusRow struct {
	Status models.EmployeeStatus
	N      int64
}

func globalCounts(tx *gorm.DB) (StatusCounts, error) {
	var rows []statusRow
	err := tx.Model(&models.Employee{}).
		Select("status, COUNT(*) AS n").
		Where("role = ?", gate.RoleEmployee).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return StatusCounts{}, fmt.Errorf("count employees: %w", err)
	}
	var c StatusCounts
	for _, r := range rows {
		switch r.Status {
		case models.StatusActive:
			c.Active = r.N
		case models.StatusInactive:
			c.Inactive = r.N
		}
		c.Total += r.N
	}
	return c, nil
}

// departmentRollup counts employee-role records per department. The outer
// join keeps departments without employees with a count of zero.
func departmentRollup(tx *gorm.DB) ([]DepartmentCount, error) {
	out := []DepartmentCount{}
	err := tx.Table("departments AS d").
		Select("d.id AS department_id, d.name AS name, COALESCE(d.description, '') AS description, COUNT(e.id) AS employee_count").
		Joins("LEFT JOIN employees AS e ON e.department_id = d.id AND e.role = ?", gate.RoleEmployee).
		Group("d.id, d.name, d.description").
		Order("d.name ASC").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("department rollup: %w", err)
	}
	return out, nil
}

// salaryHistogram counts employee-role salaries per bucket in one statement.
// Every bucket label is present in the result, with zero when empty.
func salaryHistogram(tx *gorm.DB) (map[string]int64, error) {
	cols := make([]string, len(SalaryBuckets))
	args := make([]any, 0, 2*len(SalaryBuckets))
	for i, b := range SalaryBuckets {
		cols[i] = fmt.Sprintf("COALESCE(SUM(CASE WHEN salary >= ? AND salary <= ? THEN 1 ELSE 0 END), 0) AS b%d", i)
		args = append(args, b.Min, b.Max)
	}
	counts := make([]int64, len(SalaryBuckets))
	dest := make([]any, len(counts))
	for i := range counts {
		dest[i] = &counts[i]
	}
	row := tx.Model(&models.Employee{}).
		Select(strings.Join(cols, ", "), args...).
		Where("role = ?", gate.RoleEmployee).
		Row()
	if err := row.Scan(dest...); err != nil {
		return nil, fmt.Errorf("salary histogram: %w", err)
	}
	out := make(map[string]int64, len(SalaryBuckets))
	for i, b := range SalaryBuckets {
		out[b.Range] = counts[i]
	}
	return out, nil
}
