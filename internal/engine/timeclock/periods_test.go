package timeclock

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func punch(id string, et EventType, ts time.Time) Event {
	return Event{ID: id, UserID: "user-1", Type: et, Timestamp: ts}
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 12, hour, minute, 0, 0, time.UTC)
}

func TestTransition_Table(t *testing.T) {
	t.Parallel()
	tests := []struct {
		state      State
		event      EventType
		wantState  State
		wantEffect Effect
	}{
		{StateOff, EventSignIn, StateActive, EffectOpenActive},
		{StateOff, EventSignOut, StateOff, EffectOrphanSignOut},
		{StateOff, EventBreakStart, StateOff, EffectNone},
		{StateOff, EventBreakEnd, StateOff, EffectOrphanBreakEnd},
		{StateActive, EventSignOut, StateOff, EffectCloseActive},
		{StateActive, EventBreakStart, StateOnBreak, EffectCloseActiveOpenBreak},
		{StateActive, EventSignIn, StateActive, EffectDuplicateSignIn},
		{StateActive, EventBreakEnd, StateActive, EffectOrphanBreakEnd},
		{StateOnBreak, EventBreakEnd, StateActive, EffectCloseBreakOpenActive},
		{StateOnBreak, EventSignOut, StateOff, EffectCloseBreak},
		{StateOnBreak, EventSignIn, StateOnBreak, EffectDuplicateSignIn},
		{StateOnBreak, EventBreakStart, StateOnBreak, EffectNone},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(fmt.Sprintf("%s_%s", tt.state, tt.event), func(t *testing.T) {
			t.Parallel()
			next, effect := Transition(tt.state, tt.event)
			assert.Equal(t, tt.wantState, next)
			assert.Equal(t, tt.wantEffect, effect)
		})
	}
}

func TestBuildPeriods_FullDay(t *testing.T) {
	t.Parallel()
	events := []Event{
		punch("e1", EventSignIn, at(9, 0)),
		punch("e2", EventBreakStart, at(12, 0)),
		punch("e3", EventBreakEnd, at(12, 30)),
		punch("e4", EventSignOut, at(17, 30)),
	}

	res := BuildPeriods(events, at(18, 0))

	require.Len(t, res.ActivePeriods, 2)
	assert.Equal(t, Interval{Start: at(9, 0), End: at(12, 0)}, res.ActivePeriods[0])
	assert.Equal(t, Interval{Start: at(12, 30), End: at(17, 30)}, res.ActivePeriods[1])
	require.Len(t, res.BreakPeriods, 1)
	assert.Equal(t, Interval{Start: at(12, 0), End: at(12, 30)}, res.BreakPeriods[0])

	assert.Equal(t, StateOff, res.State)
	assert.False(t, res.IsActive)
	assert.False(t, res.IsOnBreak)
	require.NotNil(t, res.LastEvent)
	assert.Equal(t, "e4", res.LastEvent.ID)
	assert.Empty(t, res.Diagnostics)
}

func TestBuildPeriods_OpenSessionClosesAtNow(t *testing.T) {
	t.Parallel()
	events := []Event{punch("e1", EventSignIn, at(9, 0))}

	res := BuildPeriods(events, at(11, 0))

	require.Len(t, res.ActivePeriods, 1)
	assert.Equal(t, Interval{Start: at(9, 0), End: at(11, 0)}, res.ActivePeriods[0])
	assert.True(t, res.IsActive)

	// The same log evaluated later yields a longer interval: the only part
	// of the result that may legitimately change between identical calls.
	later := BuildPeriods(events, at(12, 0))
	assert.True(t, later.ActivePeriods[0].End.After(res.ActivePeriods[0].End))
}

func TestBuildPeriods_OpenBreakClosesAtNow(t *testing.T) {
	t.Parallel()
	events := []Event{
		punch("e1", EventSignIn, at(9, 0)),
		punch("e2", EventBreakStart, at(12, 0)),
	}

	res := BuildPeriods(events, at(12, 45))

	assert.True(t, res.IsOnBreak)
	assert.False(t, res.IsActive)
	require.Len(t, res.BreakPeriods, 1)
	assert.Equal(t, Interval{Start: at(12, 0), End: at(12, 45)}, res.BreakPeriods[0])
}

func TestBuildPeriods_SignOutWhileOnBreak(t *testing.T) {
	t.Parallel()
	events := []Event{
		punch("e1", EventSignIn, at(9, 0)),
		punch("e2", EventBreakStart, at(12, 0)),
		punch("e3", EventSignOut, at(12, 30)),
	}

	res := BuildPeriods(events, at(18, 0))

	require.Len(t, res.ActivePeriods, 1)
	assert.Equal(t, Interval{Start: at(9, 0), End: at(12, 0)}, res.ActivePeriods[0])
	require.Len(t, res.BreakPeriods, 1)
	assert.Equal(t, Interval{Start: at(12, 0), End: at(12, 30)}, res.BreakPeriods[0])
	assert.Equal(t, StateOff, res.State)
}

func TestBuildPeriods_OrphanSignOut(t *testing.T) {
	t.Parallel()
	events := []Event{punch("e1", EventSignOut, at(10, 0))}

	res := BuildPeriods(events, at(11, 0))

	// Zero-length audit entry, nothing added to totals.
	require.Len(t, res.ActivePeriods, 1)
	assert.Equal(t, res.ActivePeriods[0].Start, res.ActivePeriods[0].End)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, DiagOrphanSignOut, res.Diagnostics[0].Code)
	assert.Equal(t, "e1", res.Diagnostics[0].EventID)
}

func TestBuildPeriods_DuplicateSignInIgnored(t *testing.T) {
	t.Parallel()
	events := []Event{
		punch("e1", EventSignIn, at(9, 0)),
		punch("e2", EventSignIn, at(10, 0)),
		punch("e3", EventSignOut, at(17, 0)),
	}

	res := BuildPeriods(events, at(18, 0))

	// The second signin neither closes nor reopens the running interval.
	require.Len(t, res.ActivePeriods, 1)
	assert.Equal(t, Interval{Start: at(9, 0), End: at(17, 0)}, res.ActivePeriods[0])
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, DiagDuplicateSignIn, res.Diagnostics[0].Code)
}

func TestBuildPeriods_OrphanBreakEndIgnored(t *testing.T) {
	t.Parallel()
	events := []Event{
		punch("e1", EventBreakEnd, at(8, 0)),
		punch("e2", EventSignIn, at(9, 0)),
		punch("e3", EventSignOut, at(17, 0)),
	}

	res := BuildPeriods(events, at(18, 0))

	require.Len(t, res.ActivePeriods, 1)
	assert.Empty(t, res.BreakPeriods)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, DiagOrphanBreakEnd, res.Diagnostics[0].Code)
}

func TestBuildPeriods_MalformedTimestampSkipped(t *testing.T) {
	t.Parallel()
	events := []Event{
		punch("e1", EventSignIn, time.Time{}),
		punch("e2", EventSignIn, at(9, 0)),
		punch("e3", EventSignOut, at(17, 0)),
	}

	res := BuildPeriods(events, at(18, 0))

	require.Len(t, res.ActivePeriods, 1)
	assert.Equal(t, Interval{Start: at(9, 0), End: at(17, 0)}, res.ActivePeriods[0])
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, DiagMalformedTimestamp, res.Diagnostics[0].Code)
	assert.Equal(t, "e1", res.Diagnostics[0].EventID)
}

func TestBuildPeriods_ResortsOutOfOrderInput(t *testing.T) {
	t.Parallel()
	events := []Event{
		punch("e2", EventSignOut, at(17, 0)),
		punch("e1", EventSignIn, at(9, 0)),
	}

	res := BuildPeriods(events, at(18, 0))

	require.Len(t, res.ActivePeriods, 1)
	assert.Equal(t, Interval{Start: at(9, 0), End: at(17, 0)}, res.ActivePeriods[0])
	assert.Empty(t, res.Diagnostics)
	// Input slice must not be mutated by the defensive sort.
	assert.Equal(t, "e2", events[0].ID)
}

func TestBuildPeriods_OvernightSpanNotTruncated(t *testing.T) {
	t.Parallel()
	signin := time.Date(2025, 3, 11, 22, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 12, 3, 0, 0, 0, time.UTC)

	res := BuildPeriods([]Event{punch("e1", EventSignIn, signin)}, now)

	require.Len(t, res.ActivePeriods, 1)
	assert.Equal(t, Interval{Start: signin, End: now}, res.ActivePeriods[0])
	assert.True(t, res.IsActive)
}

func TestBuildPeriods_EmptyLog(t *testing.T) {
	t.Parallel()
	res := BuildPeriods(nil, at(12, 0))

	assert.Empty(t, res.ActivePeriods)
	assert.Empty(t, res.BreakPeriods)
	assert.Equal(t, StateOff, res.State)
	assert.Nil(t, res.LastEvent)
}

// Active and break periods never overlap: every instant belongs to at most
// one of the two sequences.
func TestBuildPeriods_PeriodsNeverOverlap(t *testing.T) {
	t.Parallel()
	events := []Event{
		punch("e1", EventSignIn, at(9, 0)),
		punch("e2", EventBreakStart, at(11, 0)),
		punch("e3", EventBreakEnd, at(11, 15)),
		punch("e4", EventBreakStart, at(13, 0)),
		punch("e5", EventBreakEnd, at(13, 45)),
		punch("e6", EventSignOut, at(17, 0)),
	}

	res := BuildPeriods(events, at(18, 0))

	all := append(append([]Interval{}, res.ActivePeriods...), res.BreakPeriods...)
	for i := range all {
		for j := i + 1; j < len(all); j++ {
			a, b := all[i], all[j]
			overlap := a.Start.Before(b.End) && b.Start.Before(a.End)
			assert.Falsef(t, overlap, "intervals %v and %v overlap", a, b)
		}
	}
}
