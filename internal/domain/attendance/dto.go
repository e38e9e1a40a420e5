package attendance

import (
	"time"

	"github.com/attendly/attendance-backend-go/internal/engine/timeclock"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type RecordPunchRequest struct {
	UserID    string     `json:"user_id"`
	EventType string     `json:"event_type"`
	Timestamp *time.Time `json:"timestamp,omitempty"` // defaults to "now" at the service boundary
}

func (r *RecordPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if !timeclock.EventType(r.EventType).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "event_type",
			Message: "event_type must be one of signin, signout, break_start, break_end",
		})
	}

	if r.Timestamp != nil && r.Timestamp.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "timestamp",
			Message: "timestamp must be a valid instant when provided",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PunchResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	EventType string `json:"event_type"`
	Timestamp string `json:"timestamp"`
	CreatedAt string `json:"created_at,omitempty"`
}

// LastActivity exposes the raw most recent punch plus a display synonym.
// The synonym mapping lives here, at the response boundary, not in the engine.
type LastActivity struct {
	EventType string `json:"event_type"`
	Label     string `json:"label"`
	Timestamp string `json:"timestamp"`
}

// ActivityLabel maps a punch type to its display synonym.
func ActivityLabel(et timeclock.EventType) string {
	switch et {
	case timeclock.EventBreakStart:
		return "on break"
	case timeclock.EventSignOut:
		return "signed out"
	case timeclock.EventSignIn, timeclock.EventBreakEnd:
		return "signed in"
	default:
		return string(et)
	}
}

type MetricsResponse struct {
	UserID           string        `json:"user_id"`
	WorkTimeSeconds  int64         `json:"work_time_seconds"`
	BreakTimeSeconds int64         `json:"break_time_seconds"`
	OvertimeSeconds  int64         `json:"overtime_seconds"`
	IsActive         bool          `json:"is_active"`
	IsOnBreak        bool          `json:"is_on_break"`
	LastActivity     *LastActivity `json:"last_activity"`
	WeekTimeSeconds  int64         `json:"week_time_seconds"`
	MonthTimeSeconds int64         `json:"month_time_seconds"`
	Capped           bool          `json:"capped"`
	Warnings         []string      `json:"warnings,omitempty"`
}

type AdherenceResponse struct {
	UserID            string `json:"user_id"`
	Date              string `json:"date"`
	Status            string `json:"status"`
	Overridden        bool   `json:"overridden"`
	EligibleForAbsent bool   `json:"eligible_for_absent"`
}

type MarkAbsentRequest struct {
	UserID string `json:"user_id"`
}

func (r *MarkAbsentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PunchFilter struct {
	Page  int
	Limit int
	From  *time.Time
	To    *time.Time
}

// Normalize applies the pagination defaults the handlers rely on.
func (f *PunchFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

type ListPunchesResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Punches    []PunchResponse `json:"punches"`
}
