package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func at(sec int) time.Time { return t0.Add(time.Duration(sec) * time.Second) }

func mustApply(t *testing.T, s WorkSession, ev WorkEventType, note string, now time.Time) WorkSession {
	t.Helper()
	next, err := s.Apply(ev, note, now)
	require.NoError(t, err)
	return next
}

func TestNewWorkSession_StartsNotStarted(t *testing.T) {
	s := NewWorkSession("p1", "m1", t0)
	assert.Equal(t, WorkNotStarted, s.Status)
	assert.Nil(t, s.RunningSince)
	assert.Zero(t, s.AccumulatedSeconds)
	assert.Zero(t, s.Cycle)
	assert.Zero(t, s.ElapsedSeconds(at(500)))
}

func TestApply_ValidTransitions(t *testing.T) {
	running := WorkSession{Status: WorkRunning, RunningSince: timePtr(at(0)), AccumulatedSeconds: 50, Cycle: 1}
	held := WorkSession{Status: WorkOnHold, AccumulatedSeconds: 120, Cycle: 1}
	ended := WorkSession{Status: WorkEnded, AccumulatedSeconds: 900, Cycle: 1}

	tests := []struct {
		name        string
		from        WorkSession
		ev          WorkEventType
		note        string
		now         time.Time
		wantStatus  WorkStatus
		wantAcc     int64
		wantRunning bool
		wantCycle   int
	}{
		{"start from not started", WorkSession{Status: WorkNotStarted}, EventStart, "", at(10), WorkRunning, 0, true, 1},
		{"start again after end", ended, EventStart, "", at(10), WorkRunning, 0, true, 2},
		{"hold closes running segment", running, EventHold, "", at(30), WorkOnHold, 80, false, 1},
		{"resume keeps accumulated", held, EventResume, "", at(40), WorkRunning, 120, true, 1},
		{"end from running adds segment", running, EventEnd, "done", at(100), WorkEnded, 150, false, 1},
		{"end from hold keeps accumulated", held, EventEnd, "done", at(100), WorkEnded, 120, false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := mustApply(t, tt.from, tt.ev, tt.note, tt.now)
			assert.Equal(t, tt.wantStatus, next.Status)
			assert.Equal(t, tt.wantAcc, next.AccumulatedSeconds)
			assert.Equal(t, tt.wantCycle, next.Cycle)
			if tt.wantRunning {
				require.NotNil(t, next.RunningSince)
				assert.Equal(t, tt.now, *next.RunningSince)
			} else {
				assert.Nil(t, next.RunningSince)
			}
		})
	}
}

func TestApply_InvalidTransitionsLeaveStateUnchanged(t *testing.T) {
	sessions := map[WorkStatus]WorkSession{
		WorkNotStarted: {Status: WorkNotStarted},
		WorkRunning:    {Status: WorkRunning, RunningSince: timePtr(at(0)), Cycle: 1},
		WorkOnHold:     {Status: WorkOnHold, AccumulatedSeconds: 60, Cycle: 1},
		WorkEnded:      {Status: WorkEnded, AccumulatedSeconds: 60, Cycle: 1},
	}
	invalid := []struct {
		from WorkStatus
		ev   WorkEventType
	}{
		{WorkNotStarted, EventHold},
		{WorkNotStarted, EventResume},
		{WorkNotStarted, EventEnd},
		{WorkRunning, EventStart},
		{WorkRunning, EventResume},
		{WorkOnHold, EventHold},
		{WorkOnHold, EventStart},
		{WorkEnded, EventHold},
		{WorkEnded, EventResume},
		{WorkEnded, EventEnd},
	}
	for _, tc := range invalid {
		t.Run(string(tc.from)+"->"+string(tc.ev), func(t *testing.T) {
			from := sessions[tc.from]
			assert.False(t, from.Allows(tc.ev))
			got, err := from.Apply(tc.ev, "a note", at(100))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTransition))
			assert.Equal(t, from, got)
		})
	}
}

func TestApply_EndRequiresNote(t *testing.T) {
	running := WorkSession{Status: WorkRunning, RunningSince: timePtr(at(0)), Cycle: 1}
	for _, note := range []string{"", "   ", "\t\n"} {
		got, err := running.Apply(EventEnd, note, at(60))
		assert.ErrorIs(t, err, ErrDoneNoteRequired)
		assert.Equal(t, running, got)
	}

	next, err := running.Apply(EventEnd, "Fixed layout bug", at(60))
	require.NoError(t, err)
	assert.Equal(t, WorkEnded, next.Status)
}

func TestElapsedSeconds_LiveWhileRunning(t *testing.T) {
	s := mustApply(t, WorkSession{Status: WorkNotStarted}, EventStart, "", at(0))
	assert.EqualValues(t, 90, s.ElapsedSeconds(at(90)))
	assert.Equal(t, 90*time.Second, s.Elapsed(at(90)))

	// strictly increases over time
	prev := s.ElapsedSeconds(at(90))
	for i := 91; i < 100; i++ {
		cur := s.ElapsedSeconds(at(i))
		assert.Greater(t, cur, prev)
		assert.Equal(t, s.AccumulatedSeconds+int64(i), cur)
		prev = cur
	}
}

func TestElapsedSeconds_StaticWhenHeldOrEnded(t *testing.T) {
	s := mustApply(t, WorkSession{Status: WorkNotStarted}, EventStart, "", at(0))
	s = mustApply(t, s, EventHold, "", at(300))
	assert.EqualValues(t, 300, s.ElapsedSeconds(at(300)))
	assert.EqualValues(t, 300, s.ElapsedSeconds(at(5000)))

	s = mustApply(t, s, EventEnd, "wrap up", at(400))
	assert.EqualValues(t, 300, s.ElapsedSeconds(at(9000)))
}

func TestElapsedSeconds_ClockSkewClampsToZero(t *testing.T) {
	s := mustApply(t, WorkSession{Status: WorkNotStarted}, EventStart, "", at(100))
	assert.Zero(t, s.ElapsedSeconds(at(50)))

	held := mustApply(t, s, EventHold, "", at(50))
	assert.Zero(t, held.AccumulatedSeconds)
}

func TestScenario_HoldResumeEnd(t *testing.T) {
	s := WorkSession{Status: WorkNotStarted}
	s = mustApply(t, s, EventStart, "", at(0))
	s = mustApply(t, s, EventHold, "", at(300))
	assert.EqualValues(t, 300, s.AccumulatedSeconds)
	s = mustApply(t, s, EventResume, "", at(600))
	s = mustApply(t, s, EventEnd, "Fixed layout bug", at(900))
	assert.EqualValues(t, 600, s.AccumulatedSeconds)
	assert.Equal(t, WorkEnded, s.Status)
	assert.Equal(t, 1, s.Cycle)
}

func TestScenario_StartAgainResetsCycle(t *testing.T) {
	s := WorkSession{Status: WorkNotStarted}
	s = mustApply(t, s, EventStart, "", at(0))
	s = mustApply(t, s, EventEnd, "first pass", at(120))
	assert.EqualValues(t, 120, s.AccumulatedSeconds)

	s = mustApply(t, s, EventStart, "", at(200))
	assert.Zero(t, s.AccumulatedSeconds)
	assert.Equal(t, 2, s.Cycle)
	assert.EqualValues(t, 10, s.ElapsedSeconds(at(210)))
}

func TestAccumulated_MonotonicWithinCycle(t *testing.T) {
	s := WorkSession{Status: WorkNotStarted}
	s = mustApply(t, s, EventStart, "", at(0))
	var last int64
	for i := 0; i < 5; i++ {
		s = mustApply(t, s, EventHold, "", at(i*100+40))
		assert.GreaterOrEqual(t, s.AccumulatedSeconds, last)
		last = s.AccumulatedSeconds
		s = mustApply(t, s, EventResume, "", at(i*100+100))
	}
	s = mustApply(t, s, EventEnd, "done", at(600))
	// five 40s segments plus the final 100s run
	assert.EqualValues(t, 5*40+100, s.AccumulatedSeconds)
}

func TestNewWorkEvent_KeepsNoteOnlyOnEnd(t *testing.T) {
	s := WorkSession{ProjectID: "p1", MemberID: "m1", Status: WorkRunning, Cycle: 3}
	hold := NewWorkEvent("e1", s, EventHold, "ignored", at(5))
	assert.Empty(t, hold.Note)
	assert.Equal(t, 3, hold.Cycle)
	assert.Equal(t, "p1", hold.ProjectID)

	end := NewWorkEvent("e2", s, EventEnd, "  shipped  ", at(6))
	assert.Equal(t, "shipped", end.Note)
	assert.Equal(t, at(6), end.OccurredAt)
}

func TestParseWorkEventType(t *testing.T) {
	ev, err := ParseWorkEventType("resume")
	require.NoError(t, err)
	assert.Equal(t, EventResume, ev)

	_, err = ParseWorkEventType("pause")
	assert.Error(t, err)
}

func TestWorkStatuses_AllValid(t *testing.T) {
	for _, s := range WorkStatuses() {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, WorkStatus("paused").Valid())
}
