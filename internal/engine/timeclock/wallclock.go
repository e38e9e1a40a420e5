package timeclock

import "time"

// WallClock is an instant broken into calendar components in some timezone.
// Same-day, week and month comparisons go through these components rather
// than formatted strings so DST transitions cannot shift a date.
type WallClock struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
	Second int
}

// ToWallClock converts t to wall-clock components in loc. The location must
// already be validated by the caller (time.LoadLocation at config time);
// passing a nil location is a programming error and panics like time.In does.
func ToWallClock(t time.Time, loc *time.Location) WallClock {
	local := t.In(loc)
	return WallClock{
		Year:   local.Year(),
		Month:  local.Month(),
		Day:    local.Day(),
		Hour:   local.Hour(),
		Minute: local.Minute(),
		Second: local.Second(),
	}
}

// SameDay reports whether a and b fall on the same wall-clock date in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	wa, wb := ToWallClock(a, loc), ToWallClock(b, loc)
	return wa.Year == wb.Year && wa.Month == wb.Month && wa.Day == wb.Day
}

// DayStart returns midnight of t's wall-clock date in loc.
func DayStart(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// WeekStart returns the most recent Sunday at 00:00 in loc, counting t's own
// day when t already falls on a Sunday.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	day := DayStart(t, loc)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// MonthStart returns the 1st of t's wall-clock month at 00:00 in loc.
func MonthStart(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
}
