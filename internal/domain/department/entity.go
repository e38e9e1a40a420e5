package department

import (
	"time"

	"github.com/attendly/attendance-backend-go/internal/engine/timeclock"
)

// Department carries the per-department attendance configuration: the IANA
// timezone its wall clock runs on and the scheduled shift window.
type Department struct {
	ID        string
	Name      string
	Timezone  string
	Shift     timeclock.ShiftConfig
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultShiftConfig is the documented fallback applied when a user has no
// department: 09:00-17:00 with a 30 minute grace period.
func DefaultShiftConfig() timeclock.ShiftConfig {
	return timeclock.ShiftConfig{
		Start:       timeclock.ClockTime{Hour: 9},
		End:         timeclock.ClockTime{Hour: 17},
		GracePeriod: 30 * time.Minute,
	}
}
