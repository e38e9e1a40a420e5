package attendance

import (
	"time"

	"github.com/attendly/attendance-backend-go/internal/engine/timeclock"
)

// PunchEvent is a single immutable sign-in/sign-out/break punch. The table is
// append-only; corrections happen through adherence overrides, never by
// editing punches.
type PunchEvent struct {
	ID        string
	UserID    string
	Type      timeclock.EventType
	Timestamp time.Time
	CreatedAt time.Time
}

// AdherenceOverride is a persisted explicit status for one (user, local date),
// e.g. a manager marked the day absent. It takes precedence over any freshly
// computed classification.
type AdherenceOverride struct {
	UserID    string
	Date      string // local wall-clock date, "2006-01-02"
	Status    timeclock.AdherenceStatus
	MarkedBy  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
