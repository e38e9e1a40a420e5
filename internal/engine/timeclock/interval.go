package timeclock

import "time"

// Per-interval ceilings guarding against a missing signout (or clock skew)
// inflating totals. Applied to every interval before aggregation, never only
// to the sum.
const (
	DefaultActiveCap = 24 * time.Hour
	DefaultBreakCap  = 8 * time.Hour
)

// Caps bundles the two ceilings so callers can tune them together.
type Caps struct {
	Active time.Duration
	Break  time.Duration
}

func DefaultCaps() Caps {
	return Caps{Active: DefaultActiveCap, Break: DefaultBreakCap}
}

// CapDuration returns iv's duration in whole seconds, clamped to max, and
// whether clamping occurred. An end at or before the start yields zero
// without flagging.
func CapDuration(iv Interval, max time.Duration) (seconds int64, capped bool) {
	d := iv.Duration()
	if d <= 0 {
		return 0, false
	}
	if d > max {
		return int64(max / time.Second), true
	}
	return int64(d / time.Second), false
}

// ClipToWindow intersects iv with [windowStart, windowEnd]. The second return
// is false when the interval lies entirely outside the window.
func ClipToWindow(iv Interval, windowStart, windowEnd time.Time) (Interval, bool) {
	start, end := iv.Start, iv.End
	if start.Before(windowStart) {
		start = windowStart
	}
	if end.After(windowEnd) {
		end = windowEnd
	}
	if !end.After(start) {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}
