package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for punch recording and the
// derived attendance views. "now" is threaded in from the handler boundary so
// every computation is deterministic and repeatable.
type AttendanceService interface {
	// RecordPunch appends a punch event for a user
	RecordPunch(ctx context.Context, req RecordPunchRequest, now time.Time) (PunchResponse, error)

	// GetMetrics computes the derived work/break/overtime view at "now"
	GetMetrics(ctx context.Context, userID string, now time.Time) (MetricsResponse, error)

	// GetAdherence classifies today's arrival against the shift schedule
	GetAdherence(ctx context.Context, userID string, now time.Time) (AdherenceResponse, error)

	// MarkAbsent persists an explicit absent status when currently permitted
	MarkAbsent(ctx context.Context, req MarkAbsentRequest, markedBy string, now time.Time) (AdherenceResponse, error)

	// ListPunches returns a user's raw punch log for audit
	ListPunches(ctx context.Context, userID string, filter PunchFilter) (ListPunchesResponse, error)
}
