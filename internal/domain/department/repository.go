package department

import "context"

// DepartmentRepository looks up shift configuration. GetByUserID returns
// ErrDepartmentNotFound for users without a department; callers fall back to
// DefaultShiftConfig and the application timezone, never fail.
type DepartmentRepository interface {
	GetByID(ctx context.Context, id string) (Department, error)
	GetByUserID(ctx context.Context, userID string) (Department, error)
}
