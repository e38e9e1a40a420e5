package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/engine/timeclock"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
)

type punchEventRepository struct {
	db *database.DB
}

func NewPunchEventRepository(db *database.DB) attendance.EventRepository {
	return &punchEventRepository{db: db}
}

// Create implements attendance.EventRepository.
func (r *punchEventRepository) Create(ctx context.Context, event attendance.PunchEvent) (attendance.PunchEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO punch_events (id, user_id, event_type, event_timestamp)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		event.ID,
		event.UserID,
		string(event.Type),
		event.Timestamp,
	).Scan(&event.CreatedAt)

	if err != nil {
		return attendance.PunchEvent{}, fmt.Errorf("failed to create punch event: %w", err)
	}

	return event, nil
}

// ListByUserBetween implements attendance.EventRepository.
func (r *punchEventRepository) ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]attendance.PunchEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, event_type, event_timestamp, created_at
		FROM punch_events
		WHERE user_id = $1
		  AND event_timestamp >= $2
		  AND event_timestamp <= $3
		ORDER BY event_timestamp ASC
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list punch events: %w", err)
	}
	defer rows.Close()

	var events []attendance.PunchEvent
	for rows.Next() {
		var ev attendance.PunchEvent
		var eventType string
		if err := rows.Scan(&ev.ID, &ev.UserID, &eventType, &ev.Timestamp, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan punch event: %w", err)
		}
		ev.Type = timeclock.EventType(eventType)
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate punch events: %w", err)
	}

	return events, nil
}

// ListByUser implements attendance.EventRepository.
func (r *punchEventRepository) ListByUser(ctx context.Context, userID string, filter attendance.PunchFilter) ([]attendance.PunchEvent, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := `WHERE user_id = $1`
	args := []any{userID}
	if filter.From != nil {
		args = append(args, *filter.From)
		where += fmt.Sprintf(" AND event_timestamp >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where += fmt.Sprintf(" AND event_timestamp <= $%d", len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM punch_events ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count punch events: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	listQuery := fmt.Sprintf(`
		SELECT id, user_id, event_type, event_timestamp, created_at
		FROM punch_events
		%s
		ORDER BY event_timestamp DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list punch events: %w", err)
	}
	defer rows.Close()

	var events []attendance.PunchEvent
	for rows.Next() {
		var ev attendance.PunchEvent
		var eventType string
		if err := rows.Scan(&ev.ID, &ev.UserID, &eventType, &ev.Timestamp, &ev.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan punch event: %w", err)
		}
		ev.Type = timeclock.EventType(eventType)
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate punch events: %w", err)
	}

	return events, total, nil
}
