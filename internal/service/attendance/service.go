package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/department"
	"github.com/attendly/attendance-backend-go/internal/engine/timeclock"
	"github.com/google/uuid"
)

// EngineConfig is the explicit tuning handed to every computation, mirroring
// config.EngineConfig so the service never reads ambient settings.
type EngineConfig struct {
	Location        *time.Location
	StandardWorkday time.Duration
	Caps            timeclock.Caps
	AbsentMargin    time.Duration
}

type AttendanceServiceImpl struct {
	tx          attendance.Transactor
	events      attendance.EventRepository
	overrides   attendance.OverrideRepository
	departments department.DepartmentRepository
	cfg         EngineConfig
}

func NewAttendanceService(
	tx attendance.Transactor,
	eventRepo attendance.EventRepository,
	overrideRepo attendance.OverrideRepository,
	departmentRepo department.DepartmentRepository,
	cfg EngineConfig,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		tx:          tx,
		events:      eventRepo,
		overrides:   overrideRepo,
		departments: departmentRepo,
		cfg:         cfg,
	}
}

// RecordPunch implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecordPunch(ctx context.Context, req attendance.RecordPunchRequest, now time.Time) (attendance.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchResponse{}, err
	}

	ts := now
	if req.Timestamp != nil {
		ts = *req.Timestamp
	}
	if ts.After(now.Add(time.Minute)) {
		return attendance.PunchResponse{}, attendance.ErrPunchInFuture
	}

	event := attendance.PunchEvent{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Type:      timeclock.EventType(req.EventType),
		Timestamp: ts.UTC(),
	}

	created, err := s.events.Create(ctx, event)
	if err != nil {
		return attendance.PunchResponse{}, fmt.Errorf("failed to create punch event: %w", err)
	}

	return mapPunchToResponse(created), nil
}

// GetMetrics implements attendance.AttendanceService.
//
// Two engine passes over one fetch: the day-scoped log (today's punches plus
// the still-open session carried over from the previous day, so an overnight
// span is never truncated at midnight) yields work/break/overtime and the
// activity flags; the full window yields the week and month totals.
func (s *AttendanceServiceImpl) GetMetrics(ctx context.Context, userID string, now time.Time) (attendance.MetricsResponse, error) {
	loc, _, err := s.resolveSchedule(ctx, userID)
	if err != nil {
		return attendance.MetricsResponse{}, err
	}

	weekStart := timeclock.WeekStart(now, loc)
	monthStart := timeclock.MonthStart(now, loc)
	from := weekStart
	if monthStart.Before(from) {
		from = monthStart
	}
	// Reach back far enough to pick up a session opened before the window;
	// anything older than the active cap cannot contribute inside it, so the
	// lookback must grow with a raised cap.
	lookback := 48 * time.Hour
	if s.cfg.Caps.Active > lookback {
		lookback = s.cfg.Caps.Active
	}
	from = from.Add(-lookback)

	punches, err := s.events.ListByUserBetween(ctx, userID, from, now)
	if err != nil {
		return attendance.MetricsResponse{}, fmt.Errorf("failed to list punch events: %w", err)
	}
	events := toEngineEvents(punches)

	standard := int64(s.cfg.StandardWorkday / time.Second)

	windowResult := timeclock.BuildPeriods(events, now)
	windowMetrics := timeclock.Aggregate(windowResult.ActivePeriods, windowResult.BreakPeriods, now, loc, standard, s.cfg.Caps)

	dayEvents := dayScope(events, timeclock.DayStart(now, loc))
	dayResult := timeclock.BuildPeriods(dayEvents, now)
	dayMetrics := timeclock.Aggregate(dayResult.ActivePeriods, dayResult.BreakPeriods, now, loc, standard, s.cfg.Caps)

	resp := attendance.MetricsResponse{
		UserID:           userID,
		WorkTimeSeconds:  dayMetrics.WorkSeconds,
		BreakTimeSeconds: dayMetrics.BreakSeconds,
		OvertimeSeconds:  dayMetrics.OvertimeSeconds,
		IsActive:         windowResult.IsActive,
		IsOnBreak:        windowResult.IsOnBreak,
		WeekTimeSeconds:  windowMetrics.WeekSeconds,
		MonthTimeSeconds: windowMetrics.MonthSeconds,
		Capped:           dayMetrics.Capped || windowMetrics.Capped,
	}

	if last := windowResult.LastEvent; last != nil {
		resp.LastActivity = &attendance.LastActivity{
			EventType: string(last.Type),
			Label:     attendance.ActivityLabel(last.Type),
			Timestamp: last.Timestamp.UTC().Format(time.RFC3339),
		}
	}

	for _, diag := range dayResult.Diagnostics {
		resp.Warnings = append(resp.Warnings, diag.Message)
	}

	return resp, nil
}

// GetAdherence implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAdherence(ctx context.Context, userID string, now time.Time) (attendance.AdherenceResponse, error) {
	return s.adherence(ctx, userID, now)
}

// MarkAbsent implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkAbsent(ctx context.Context, req attendance.MarkAbsentRequest, markedBy string, now time.Time) (attendance.AdherenceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AdherenceResponse{}, err
	}

	var result attendance.AdherenceResponse

	// The recompute and the override write share one transaction so a punch
	// landing in between cannot split the eligibility check from the write.
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.adherence(ctx, req.UserID, now)
		if err != nil {
			return err
		}

		if current.Status == string(timeclock.StatusAbsent) {
			// Marking twice is a no-op, not an error. A computed absent (no
			// sign-in past grace) still gets the override persisted, so a
			// backdated punch cannot flip the day after the manager acted.
			if !current.Overridden {
				if err := s.overrides.Upsert(ctx, req.UserID, current.Date, timeclock.StatusAbsent, markedBy); err != nil {
					return fmt.Errorf("failed to persist absent override: %w", err)
				}
				current.Overridden = true
			}
			current.EligibleForAbsent = false
			result = current
			return nil
		}

		if !current.EligibleForAbsent {
			return attendance.ErrNotEligibleForAbsent
		}

		if err := s.overrides.Upsert(ctx, req.UserID, current.Date, timeclock.StatusAbsent, markedBy); err != nil {
			return fmt.Errorf("failed to persist absent override: %w", err)
		}

		current.Status = string(timeclock.StatusAbsent)
		current.Overridden = true
		current.EligibleForAbsent = false
		result = current
		return nil
	})
	if err != nil {
		return attendance.AdherenceResponse{}, err
	}

	return result, nil
}

// ListPunches implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListPunches(ctx context.Context, userID string, filter attendance.PunchFilter) (attendance.ListPunchesResponse, error) {
	filter.Normalize()

	punches, total, err := s.events.ListByUser(ctx, userID, filter)
	if err != nil {
		return attendance.ListPunchesResponse{}, fmt.Errorf("failed to list punch events: %w", err)
	}

	responses := make([]attendance.PunchResponse, 0, len(punches))
	for _, p := range punches {
		responses = append(responses, mapPunchToResponse(p))
	}

	return attendance.ListPunchesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Punches:    responses,
	}, nil
}

func (s *AttendanceServiceImpl) adherence(ctx context.Context, userID string, now time.Time) (attendance.AdherenceResponse, error) {
	loc, shift, err := s.resolveSchedule(ctx, userID)
	if err != nil {
		return attendance.AdherenceResponse{}, err
	}

	dateLocal := now.In(loc).Format("2006-01-02")

	var override timeclock.AdherenceStatus
	stored, err := s.overrides.Get(ctx, userID, dateLocal)
	switch {
	case err == nil:
		override = stored.Status
	case errors.Is(err, attendance.ErrOverrideNotFound):
		// no override, compute fresh
	default:
		return attendance.AdherenceResponse{}, fmt.Errorf("failed to get adherence override: %w", err)
	}

	punches, err := s.events.ListByUserBetween(ctx, userID, timeclock.DayStart(now, loc), now)
	if err != nil {
		return attendance.AdherenceResponse{}, fmt.Errorf("failed to list punch events: %w", err)
	}

	status := timeclock.Classify(toEngineEvents(punches), shift, now, loc, override)
	eligible := timeclock.EligibleForAbsent(status, now, shift, loc, s.cfg.AbsentMargin)

	return attendance.AdherenceResponse{
		UserID:            userID,
		Date:              dateLocal,
		Status:            string(status),
		Overridden:        override != "",
		EligibleForAbsent: eligible,
	}, nil
}

// resolveSchedule returns the timezone and shift window for a user. A user
// without a department gets the documented defaults; a department with a bad
// timezone identifier is a configuration defect surfaced immediately.
func (s *AttendanceServiceImpl) resolveSchedule(ctx context.Context, userID string) (*time.Location, timeclock.ShiftConfig, error) {
	dept, err := s.departments.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, department.ErrDepartmentNotFound) {
			return s.cfg.Location, department.DefaultShiftConfig(), nil
		}
		return nil, timeclock.ShiftConfig{}, fmt.Errorf("failed to get department for user: %w", err)
	}

	loc := s.cfg.Location
	if dept.Timezone != "" {
		loc, err = time.LoadLocation(dept.Timezone)
		if err != nil {
			return nil, timeclock.ShiftConfig{}, fmt.Errorf("%w: %q", department.ErrInvalidTimezone, dept.Timezone)
		}
	}
	return loc, dept.Shift, nil
}

// dayScope trims events to today's log: everything stamped on or after
// todayStart, preceded by the punches of a session that opened earlier and is
// still open at todayStart.
func dayScope(events []timeclock.Event, todayStart time.Time) []timeclock.Event {
	cut := len(events)
	for i, ev := range events {
		if !ev.Timestamp.Before(todayStart) {
			cut = i
			break
		}
	}

	state := timeclock.StateOff
	sessionStart := -1
	for i := 0; i < cut; i++ {
		next, _ := timeclock.Transition(state, events[i].Type)
		if state == timeclock.StateOff && next != timeclock.StateOff {
			sessionStart = i
		}
		if next == timeclock.StateOff {
			sessionStart = -1
		}
		state = next
	}

	if sessionStart >= 0 {
		return events[sessionStart:]
	}
	return events[cut:]
}

func toEngineEvents(punches []attendance.PunchEvent) []timeclock.Event {
	events := make([]timeclock.Event, 0, len(punches))
	for _, p := range punches {
		events = append(events, timeclock.Event{
			ID:        p.ID,
			UserID:    p.UserID,
			Type:      p.Type,
			Timestamp: p.Timestamp,
		})
	}
	return events
}

func mapPunchToResponse(p attendance.PunchEvent) attendance.PunchResponse {
	resp := attendance.PunchResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		EventType: string(p.Type),
		Timestamp: p.Timestamp.UTC().Format(time.RFC3339),
	}
	if !p.CreatedAt.IsZero() {
		resp.CreatedAt = p.CreatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
