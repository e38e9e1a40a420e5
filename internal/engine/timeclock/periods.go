package timeclock

import (
	"fmt"
	"sort"
	"time"
)

// State is the punch state machine state between two events.
type State int

const (
	StateOff State = iota
	StateActive
	StateOnBreak
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateOnBreak:
		return "on_break"
	default:
		return "off"
	}
}

// Effect is what a transition does to the open intervals. The builder applies
// effects; the transition function itself stays pure and testable per row.
type Effect int

const (
	EffectNone Effect = iota
	EffectOpenActive
	EffectCloseActive
	EffectCloseActiveOpenBreak
	EffectCloseBreakOpenActive
	EffectCloseBreak
	EffectOrphanSignOut
	EffectDuplicateSignIn
	EffectOrphanBreakEnd
)

// Transition is the pure transition function of the punch state machine.
// It never fails: unexpected events keep the current state and report an
// anomaly effect the builder records as a diagnostic.
func Transition(s State, et EventType) (State, Effect) {
	switch s {
	case StateOff:
		switch et {
		case EventSignIn:
			return StateActive, EffectOpenActive
		case EventSignOut:
			return StateOff, EffectOrphanSignOut
		case EventBreakEnd:
			return StateOff, EffectOrphanBreakEnd
		default:
			return StateOff, EffectNone
		}
	case StateActive:
		switch et {
		case EventSignOut:
			return StateOff, EffectCloseActive
		case EventBreakStart:
			return StateOnBreak, EffectCloseActiveOpenBreak
		case EventSignIn:
			return StateActive, EffectDuplicateSignIn
		default: // break_end without an open break
			return StateActive, EffectOrphanBreakEnd
		}
	case StateOnBreak:
		switch et {
		case EventBreakEnd:
			return StateActive, EffectCloseBreakOpenActive
		case EventSignOut:
			// End of day while on break: the break closes, no new active span.
			return StateOff, EffectCloseBreak
		case EventSignIn:
			return StateOnBreak, EffectDuplicateSignIn
		default:
			return StateOnBreak, EffectNone
		}
	}
	return s, EffectNone
}

// Diagnostic codes for recoverable anomalies in the event log.
const (
	DiagMalformedTimestamp = "malformed_timestamp"
	DiagDuplicateSignIn    = "duplicate_signin"
	DiagOrphanSignOut      = "orphan_signout"
	DiagOrphanBreakEnd     = "orphan_break_end"
)

// Diagnostic records a non-fatal anomaly found while building periods.
// Processing always continues past a diagnostic.
type Diagnostic struct {
	Code    string
	EventID string
	Message string
}

// BuildResult is the outcome of folding one user's event log.
type BuildResult struct {
	ActivePeriods []Interval
	BreakPeriods  []Interval
	State         State
	IsActive      bool
	IsOnBreak     bool
	LastEvent     *Event
	Diagnostics   []Diagnostic
}

// BuildPeriods folds events into closed active and break intervals. Any
// interval still open when the log ends is closed at now, which is what lets
// a currently-active user's running total grow between calls. Events are
// assumed ascending by timestamp and re-sorted defensively if they are not.
//
// An active interval may cross wall-clock day boundaries; windowing is the
// aggregator's job, never the builder's.
func BuildPeriods(events []Event, now time.Time) BuildResult {
	var res BuildResult

	events = sortedByTime(events)

	state := StateOff
	var openStart time.Time
	for i := range events {
		ev := events[i]
		if ev.Timestamp.IsZero() {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Code:    DiagMalformedTimestamp,
				EventID: ev.ID,
				Message: fmt.Sprintf("event %s has no timestamp, skipped", ev.ID),
			})
			continue
		}

		next, effect := Transition(state, ev.Type)
		switch effect {
		case EffectOpenActive:
			openStart = ev.Timestamp
		case EffectCloseActive:
			res.ActivePeriods = append(res.ActivePeriods, Interval{Start: openStart, End: ev.Timestamp})
		case EffectCloseActiveOpenBreak:
			res.ActivePeriods = append(res.ActivePeriods, Interval{Start: openStart, End: ev.Timestamp})
			openStart = ev.Timestamp
		case EffectCloseBreakOpenActive:
			res.BreakPeriods = append(res.BreakPeriods, Interval{Start: openStart, End: ev.Timestamp})
			openStart = ev.Timestamp
		case EffectCloseBreak:
			res.BreakPeriods = append(res.BreakPeriods, Interval{Start: openStart, End: ev.Timestamp})
		case EffectOrphanSignOut:
			// Zero-length audit entry; contributes nothing to totals.
			res.ActivePeriods = append(res.ActivePeriods, Interval{Start: ev.Timestamp, End: ev.Timestamp})
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Code:    DiagOrphanSignOut,
				EventID: ev.ID,
				Message: fmt.Sprintf("signout %s without an open session", ev.ID),
			})
		case EffectDuplicateSignIn:
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Code:    DiagDuplicateSignIn,
				EventID: ev.ID,
				Message: fmt.Sprintf("signin %s while already signed in, ignored", ev.ID),
			})
		case EffectOrphanBreakEnd:
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Code:    DiagOrphanBreakEnd,
				EventID: ev.ID,
				Message: fmt.Sprintf("break_end %s without an open break, ignored", ev.ID),
			})
		}
		state = next
		res.LastEvent = &events[i]
	}

	// Close whatever is still open at the evaluation instant. A future-dated
	// opening punch closes at its own start so End >= Start still holds.
	if now.Before(openStart) {
		now = openStart
	}
	switch state {
	case StateActive:
		res.ActivePeriods = append(res.ActivePeriods, Interval{Start: openStart, End: now})
	case StateOnBreak:
		res.BreakPeriods = append(res.BreakPeriods, Interval{Start: openStart, End: now})
	}

	res.State = state
	res.IsActive = state == StateActive
	res.IsOnBreak = state == StateOnBreak
	return res
}

// sortedByTime returns events in ascending timestamp order, copying only when
// the input is actually out of order.
func sortedByTime(events []Event) []Event {
	sorted := true
	for i := 1; i < len(events); i++ {
		if events[i].Timestamp.Before(events[i-1].Timestamp) {
			sorted = false
			break
		}
	}
	if sorted {
		return events
	}
	cp := make([]Event, len(events))
	copy(cp, events)
	sort.SliceStable(cp, func(i, j int) bool {
		return cp[i].Timestamp.Before(cp[j].Timestamp)
	})
	return cp
}
