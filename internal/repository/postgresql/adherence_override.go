package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/engine/timeclock"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type adherenceOverrideRepository struct {
	db *database.DB
}

func NewAdherenceOverrideRepository(db *database.DB) attendance.OverrideRepository {
	return &adherenceOverrideRepository{db: db}
}

// Get implements attendance.OverrideRepository.
func (r *adherenceOverrideRepository) Get(ctx context.Context, userID string, date string) (attendance.AdherenceOverride, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT user_id, date::text, status, marked_by, created_at, updated_at
		FROM adherence_overrides
		WHERE user_id = $1
		  AND date = $2
	`

	var ov attendance.AdherenceOverride
	var status string
	err := q.QueryRow(ctx, query, userID, date).Scan(
		&ov.UserID, &ov.Date, &status, &ov.MarkedBy, &ov.CreatedAt, &ov.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AdherenceOverride{}, attendance.ErrOverrideNotFound
		}
		return attendance.AdherenceOverride{}, fmt.Errorf("failed to get adherence override: %w", err)
	}

	ov.Status = timeclock.AdherenceStatus(status)
	return ov, nil
}

// Upsert implements attendance.OverrideRepository.
func (r *adherenceOverrideRepository) Upsert(ctx context.Context, userID string, date string, status timeclock.AdherenceStatus, markedBy string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO adherence_overrides (user_id, date, status, marked_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, date)
		DO UPDATE SET status = EXCLUDED.status,
		              marked_by = EXCLUDED.marked_by,
		              updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, userID, date, string(status), markedBy); err != nil {
		return fmt.Errorf("failed to upsert adherence override: %w", err)
	}

	return nil
}
