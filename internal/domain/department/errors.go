package department

import "errors"

var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrInvalidTimezone    = errors.New("department has an invalid timezone identifier")
)
