package attendance

import (
	"context"
	"time"

	"github.com/attendly/attendance-backend-go/internal/engine/timeclock"
)

// EventRepository defines data access for the append-only punch event log.
// Listings return events in ascending timestamp order; the engine re-sorts
// defensively anyway.
type EventRepository interface {
	// Create appends a punch event
	Create(ctx context.Context, event PunchEvent) (PunchEvent, error)

	// ListByUserBetween returns a user's events with from <= timestamp <= to
	ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]PunchEvent, error)

	// ListByUser returns a filtered, paginated slice plus the total count
	ListByUser(ctx context.Context, userID string, filter PunchFilter) ([]PunchEvent, int64, error)
}

// OverrideRepository persists explicit adherence statuses per (user, local date).
type OverrideRepository interface {
	// Get returns the override for the date, or ErrOverrideNotFound
	Get(ctx context.Context, userID string, date string) (AdherenceOverride, error)

	// Upsert writes the override, replacing any previous one for the date
	Upsert(ctx context.Context, userID string, date string, status timeclock.AdherenceStatus, markedBy string) error
}

// Transactor runs fn inside a single database transaction; repository calls
// made with the ctx it passes share that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
