package timeclock

import "time"

// AdherenceStatus classifies a user's arrival against the scheduled shift
// start for one (user, calendar day) pair.
type AdherenceStatus string

const (
	StatusEarly  AdherenceStatus = "early"
	StatusOnTime AdherenceStatus = "on_time"
	StatusLate   AdherenceStatus = "late"
	StatusAbsent AdherenceStatus = "absent"

	// StatusNotSet means no determination could be made yet: no schedule,
	// no events, or the shift start has not passed.
	StatusNotSet AdherenceStatus = "not_set"
)

func (s AdherenceStatus) IsValid() bool {
	switch s {
	case StatusEarly, StatusOnTime, StatusLate, StatusAbsent, StatusNotSet:
		return true
	}
	return false
}

// Classify determines today's adherence status from the day-scoped event log.
// A non-empty override (a previously persisted status, e.g. a manager marked
// the day absent) wins over any fresh computation so manual corrections are
// never fought by recomputation.
//
// Without a sign-in the status stays not_set until the grace window has
// passed, then becomes absent pending explicit marking. With a sign-in the
// first one decides: at or before shift start is early, within the grace
// period is on_time, anything after is late.
func Classify(todayEvents []Event, shift ShiftConfig, now time.Time, loc *time.Location, override AdherenceStatus) AdherenceStatus {
	if override != "" && override != StatusNotSet {
		return override
	}

	shiftStart := shift.StartOn(now, loc)
	graceEnd := shiftStart.Add(shift.GracePeriod)

	firstSignIn := firstOfType(todayEvents, EventSignIn)
	if firstSignIn == nil {
		if now.After(graceEnd) {
			return StatusAbsent
		}
		return StatusNotSet
	}

	switch {
	case !firstSignIn.Timestamp.After(shiftStart):
		return StatusEarly
	case !firstSignIn.Timestamp.After(graceEnd):
		return StatusOnTime
	default:
		return StatusLate
	}
}

// EligibleForAbsent reports whether a manual "mark absent" action is currently
// permitted: only a late user, and only once now is past the grace window by
// the configured margin. It never changes the status itself.
func EligibleForAbsent(status AdherenceStatus, now time.Time, shift ShiftConfig, loc *time.Location, margin time.Duration) bool {
	if status != StatusLate {
		return false
	}
	cutoff := shift.StartOn(now, loc).Add(shift.GracePeriod + margin)
	return now.After(cutoff)
}

func firstOfType(events []Event, et EventType) *Event {
	var first *Event
	for i := range events {
		if events[i].Type != et || events[i].Timestamp.IsZero() {
			continue
		}
		if first == nil || events[i].Timestamp.Before(first.Timestamp) {
			first = &events[i]
		}
	}
	return first
}
