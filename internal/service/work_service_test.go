package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/projectdesk/internal/clock"
	"github.com/alexanderramin/projectdesk/internal/domain"
	"github.com/alexanderramin/projectdesk/internal/repository"
	"github.com/alexanderramin/projectdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkService_AssignCreatesNotStartedRow(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	clk := clock.NewManual(t0)
	proj, member := seedAssignment(t, r, clk)

	svc := newWorkService(r, clk)
	s, err := svc.GetSession(ctx, proj.ID, member.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkNotStarted, s.Status)
	assert.Zero(t, s.Cycle)

	events, err := r.events.ListByPair(ctx, proj.ID, member.ID, repository.EventWindow{})
	require.NoError(t, err)
	assert.Empty(t, events, "assignment records no events")

	_, err = svc.Assign(ctx, proj.ID, member.ID)
	assert.ErrorIs(t, err, ErrAlreadyAssigned)
}

func TestWorkService_AssignRejectsArchivedAndInactive(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := newWorkService(r, clock.NewManual(t0))

	archived := testutil.NewTestProject("Old")
	require.NoError(t, r.projects.Create(ctx, archived))
	require.NoError(t, r.projects.Archive(ctx, archived.ID))
	active := testutil.NewTestProject("New")
	require.NoError(t, r.projects.Create(ctx, active))
	gone := testutil.NewTestMember("Gone", testutil.Inactive())
	require.NoError(t, r.members.Create(ctx, gone))
	here := testutil.NewTestMember("Here")
	require.NoError(t, r.members.Create(ctx, here))

	_, err := svc.Assign(ctx, archived.ID, here.ID)
	assert.Error(t, err)
	_, err = svc.Assign(ctx, active.ID, gone.ID)
	assert.Error(t, err)
}

func TestWorkService_HoldResumeEndScenario(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	clk := clock.NewManual(t0)
	proj, member := seedAssignment(t, r, clk)
	svc := newWorkService(r, clk)

	s, err := svc.RecordWorkEvent(ctx, proj.ID, member.ID, domain.EventStart, "")
	require.NoError(t, err)
	assert.Equal(t, domain.WorkRunning, s.Status)
	assert.Equal(t, 1, s.Version)

	clk.Advance(5 * time.Minute)
	s, err = svc.RecordWorkEvent(ctx, proj.ID, member.ID, domain.EventHold, "")
	require.NoError(t, err)
	assert.EqualValues(t, 300, s.AccumulatedSeconds)

	clk.Advance(5 * time.Minute)
	_, err = svc.RecordWorkEvent(ctx, proj.ID, member.ID, domain.EventResume, "")
	require.NoError(t, err)

	clk.Advance(5 * time.Minute)
	s, err = svc.RecordWorkEvent(ctx, proj.ID, member.ID, domain.EventEnd, "Fixed layout bug")
	require.NoError(t, err)
	assert.Equal(t, domain.WorkEnded, s.Status)
	assert.EqualValues(t, 600, s.AccumulatedSeconds)
	assert.Equal(t, 4, s.Version)

	stored, err := svc.GetSession(ctx, proj.ID, member.ID)
	require.NoError(t, err)
	assert.Equal(t, *s, *stored)

	events, err := r.events.ListByPair(ctx, proj.ID, member.ID, repository.EventWindow{})
	require.NoError(t, err)
	require.Len(t, events, 4)
	assert.Equal(t, domain.EventEnd, events[3].Type)
	assert.Equal(t, "Fixed layout bug", events[3].Note)
	for _, e := range events {
		assert.Equal(t, 1, e.Cycle)
	}
}

func TestWorkService_StartAfterEndOpensNewCycle(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	clk := clock.NewManual(t0)
	proj, member := seedAssignment(t, r, clk)
	svc := newWorkService(r, clk)

	_, err := svc.RecordWorkEvent(ctx, proj.ID, member.ID, domain.EventStart, "")
	require.NoError(t, err)
	clk.Advance(time.Minute)
	_, err = svc.RecordWorkEvent(ctx, proj.ID, member.ID, domain.EventEnd, "first")
	require.NoError(t, err)
	clk.Advance(time.Minute)
	s, err := svc.RecordWorkEvent(ctx, proj.ID, member.ID, domain.EventStart, "")
	require.NoError(t, err)
	assert.Equal(t, 2, s.Cycle)
	assert.Zero(t, s.AccumulatedSeconds)
}

func TestWorkService_InvalidTransitionWritesNothing(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	clk := clock.NewManual(t0)
	proj, member := seedAssignment(t, r, clk)
	svc := newWorkService(r, clk)

	_, err := svc.RecordWorkEvent(ctx, proj.ID, member.ID, domain.EventHold, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = svc.RecordWorkEvent(ctx, proj.ID, member.ID, domain.EventStart, "")
	require.NoError(t, err)
	_, err = svc.RecordWorkEvent(ctx, proj.ID, member.ID, domain.EventStart, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "second tab's start is rejected, not applied twice")

	_, err = svc.RecordWorkEvent(ctx, proj.ID, member.ID, domain.EventEnd, "   ")
	assert.ErrorIs(t, err, domain.ErrDoneNoteRequired)

	s, err := svc.GetSession(ctx, proj.ID, member.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkRunning, s.Status)
	assert.Equal(t, 1, s.Version)

	events, err := r.events.ListByPair(ctx, proj.ID, member.ID, repository.EventWindow{})
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestWorkService_UnknownEventAndUnassigned(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := newWorkService(r, clock.NewManual(t0))

	_, err := svc.RecordWorkEvent(ctx, "p", "m", domain.WorkEventType("pause"), "")
	assert.Error(t, err)

	_, err = svc.RecordWorkEvent(ctx, "p", "m", domain.EventStart, "")
	assert.ErrorIs(t, err, ErrNotAssigned)
}

func TestWorkService_UnassignKeepsHistory(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	clk := clock.NewManual(t0)
	proj, member := seedAssignment(t, r, clk)
	svc := newWorkService(r, clk)

	_, err := svc.RecordWorkEvent(ctx, proj.ID, member.ID, domain.EventStart, "")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Unassign(ctx, proj.ID, member.ID), ErrSessionActive)

	clk.Advance(time.Minute)
	_, err = svc.RecordWorkEvent(ctx, proj.ID, member.ID, domain.EventEnd, "done")
	require.NoError(t, err)
	require.NoError(t, svc.Unassign(ctx, proj.ID, member.ID))

	_, err = svc.GetSession(ctx, proj.ID, member.ID)
	assert.ErrorIs(t, err, ErrNotAssigned)

	events, err := r.events.ListByPair(ctx, proj.ID, member.ID, repository.EventWindow{})
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestWorkService_ListSessionsComputesElapsed(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	clk := clock.NewManual(t0)
	proj, member := seedAssignment(t, r, clk)
	svc := newWorkService(r, clk)

	_, err := svc.RecordWorkEvent(ctx, proj.ID, member.ID, domain.EventStart, "")
	require.NoError(t, err)
	clk.Advance(90 * time.Second)

	views, err := svc.ListSessions(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Robin", views[0].MemberName)
	assert.EqualValues(t, 90, views[0].ElapsedSeconds)

	mine, err := svc.ListMemberSessions(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, proj.Name, mine[0].ProjectName)
}
