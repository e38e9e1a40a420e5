// Package timeclock turns an ordered log of punch events into derived
// attendance facts: work/break durations, overtime, activity state and an
// adherence classification against a shift schedule.
//
// Every function in this package is pure: all inputs, including the
// evaluation instant ("now") and the timezone, are passed in explicitly.
// Nothing here touches a clock, a database or any shared state, so the
// package is safe to call concurrently and trivially deterministic in tests.
package timeclock

import "time"

// EventType identifies a single punch.
type EventType string

const (
	EventSignIn     EventType = "signin"
	EventSignOut    EventType = "signout"
	EventBreakStart EventType = "break_start"
	EventBreakEnd   EventType = "break_end"
)

// IsValid reports whether t is one of the four known punch types.
func (t EventType) IsValid() bool {
	switch t {
	case EventSignIn, EventSignOut, EventBreakStart, EventBreakEnd:
		return true
	}
	return false
}

// Event is a single punch in a user's log. Events are owned by the caller's
// event store; the engine only ever reads them.
type Event struct {
	ID        string
	UserID    string
	Type      EventType
	Timestamp time.Time
}

// Interval is a closed [Start, End] span derived from two punches (or one
// punch closed at the evaluation instant). End >= Start always holds for
// intervals produced by BuildPeriods.
type Interval struct {
	Start time.Time
	End   time.Time
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// ClockTime is a wall-clock time of day, independent of any date or zone.
type ClockTime struct {
	Hour   int
	Minute int
}

// ShiftConfig is a department's scheduled shift window plus the grace period
// during which a late arrival still counts as on time.
type ShiftConfig struct {
	Start       ClockTime
	End         ClockTime
	GracePeriod time.Duration
}

// StartOn returns the instant the shift starts on day's wall-clock date in loc.
func (s ShiftConfig) StartOn(day time.Time, loc *time.Location) time.Time {
	local := day.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), s.Start.Hour, s.Start.Minute, 0, 0, loc)
}

// EndOn returns the instant the shift ends on day's wall-clock date in loc.
// An end at or before the start is an overnight shift ending the next day.
func (s ShiftConfig) EndOn(day time.Time, loc *time.Location) time.Time {
	local := day.In(loc)
	end := time.Date(local.Year(), local.Month(), local.Day(), s.End.Hour, s.End.Minute, 0, 0, loc)
	if !end.After(s.StartOn(day, loc)) {
		end = end.AddDate(0, 0, 1)
	}
	return end
}
