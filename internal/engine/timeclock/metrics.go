package timeclock

import "time"

// Metrics are the aggregated durations for one user's log at one instant.
// A derived view only: recomputed on every call, never stored by the engine.
type Metrics struct {
	WorkSeconds     int64
	BreakSeconds    int64
	OvertimeSeconds int64
	WeekSeconds     int64
	MonthSeconds    int64
	Capped          bool
}

// Aggregate sums capped interval durations into totals. Work and break totals
// cover every interval passed in; week and month totals clip each active
// interval to [windowStart, now] before capping, so a span crossing the
// window boundary contributes only the part inside it.
//
// standardWorkdaySeconds is the configured standard workday; overtime is
// whatever work time exceeds it, floored at zero.
func Aggregate(active, breaks []Interval, now time.Time, loc *time.Location, standardWorkdaySeconds int64, caps Caps) Metrics {
	var m Metrics

	for _, iv := range active {
		secs, capped := CapDuration(iv, caps.Active)
		m.WorkSeconds += secs
		m.Capped = m.Capped || capped
	}
	for _, iv := range breaks {
		secs, capped := CapDuration(iv, caps.Break)
		m.BreakSeconds += secs
		m.Capped = m.Capped || capped
	}

	if m.WorkSeconds > standardWorkdaySeconds {
		m.OvertimeSeconds = m.WorkSeconds - standardWorkdaySeconds
	}

	m.WeekSeconds = windowTotal(active, WeekStart(now, loc), now, caps.Active)
	m.MonthSeconds = windowTotal(active, MonthStart(now, loc), now, caps.Active)
	return m
}

func windowTotal(intervals []Interval, windowStart, now time.Time, cap time.Duration) int64 {
	var total int64
	for _, iv := range intervals {
		clipped, ok := ClipToWindow(iv, windowStart, now)
		if !ok {
			continue
		}
		secs, _ := CapDuration(clipped, cap)
		total += secs
	}
	return total
}
