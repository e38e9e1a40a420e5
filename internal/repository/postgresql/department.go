package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/department"
	"github.com/attendly/attendance-backend-go/internal/engine/timeclock"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type departmentRepository struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepository{db: db}
}

// GetByID implements department.DepartmentRepository.
func (r *departmentRepository) GetByID(ctx context.Context, id string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, timezone, shift_start::text, shift_end::text, grace_period_minutes,
		       created_at, updated_at
		FROM departments
		WHERE id = $1
	`

	return scanDepartment(q.QueryRow(ctx, query, id))
}

// GetByUserID implements department.DepartmentRepository.
func (r *departmentRepository) GetByUserID(ctx context.Context, userID string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.id, d.name, d.timezone, d.shift_start::text, d.shift_end::text, d.grace_period_minutes,
		       d.created_at, d.updated_at
		FROM departments d
		JOIN users u ON u.department_id = d.id
		WHERE u.id = $1
	`

	return scanDepartment(q.QueryRow(ctx, query, userID))
}

func scanDepartment(row pgx.Row) (department.Department, error) {
	var dept department.Department
	var shiftStart, shiftEnd string
	var graceMinutes int

	err := row.Scan(
		&dept.ID, &dept.Name, &dept.Timezone, &shiftStart, &shiftEnd, &graceMinutes,
		&dept.CreatedAt, &dept.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department: %w", err)
	}

	start, err := parseClockTime(shiftStart)
	if err != nil {
		return department.Department{}, fmt.Errorf("failed to parse shift start: %w", err)
	}
	end, err := parseClockTime(shiftEnd)
	if err != nil {
		return department.Department{}, fmt.Errorf("failed to parse shift end: %w", err)
	}

	dept.Shift = timeclock.ShiftConfig{
		Start:       start,
		End:         end,
		GracePeriod: time.Duration(graceMinutes) * time.Minute,
	}

	return dept, nil
}

// parseClockTime reads a TIME column rendered as text, with or without seconds.
func parseClockTime(s string) (timeclock.ClockTime, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		t, err = time.Parse("15:04", s)
		if err != nil {
			return timeclock.ClockTime{}, err
		}
	}
	return timeclock.ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}
