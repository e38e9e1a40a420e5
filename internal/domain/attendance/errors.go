package attendance

import "errors"

// Attendance domain errors
var (
	ErrUnknownEventType     = errors.New("unknown punch event type")
	ErrPunchInFuture        = errors.New("punch timestamp is in the future")
	ErrNotEligibleForAbsent = errors.New("user is not currently eligible to be marked absent")
	ErrOverrideNotFound     = errors.New("no adherence override for this user and date")
	ErrUserNotFound         = errors.New("user not found")
)
