package response

import (
	"errors"
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/department"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrUnknownEventType):
		BadRequest(w, "Unknown event type", nil)
	case errors.Is(err, attendance.ErrPunchInFuture):
		BadRequest(w, "Punch timestamp cannot be in the future", nil)
	case errors.Is(err, attendance.ErrNotEligibleForAbsent):
		Conflict(w, "User is not currently eligible to be marked absent")
	case errors.Is(err, attendance.ErrOverrideNotFound):
		NotFound(w, "Adherence override not found")
	case errors.Is(err, attendance.ErrUserNotFound):
		NotFound(w, "User not found")

	// Department domain errors
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, department.ErrInvalidTimezone):
		InternalServerError(w, "Department timezone is misconfigured")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
