package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexanderramin/projectdesk/internal/clock"
	"github.com/alexanderramin/projectdesk/internal/domain"
	"github.com/alexanderramin/projectdesk/internal/repository"
	"github.com/alexanderramin/projectdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordWorkEvent_RollbackOnEventAppendFailure(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	clk := clock.NewManual(t0)
	proj, member := seedAssignment(t, r, clk)

	failUoW := &testutil.FailingUoW{
		DB:    r.database,
		Match: "INSERT INTO work_events",
		Err:   fmt.Errorf("injected event append failure"),
	}
	svc := NewWorkService(r.projects, r.members, r.sessions, failUoW, clk)

	_, err := svc.RecordWorkEvent(ctx, proj.ID, member.ID, domain.EventStart, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected event append failure")
	assert.True(t, failUoW.Fired())

	s, err := r.sessions.Get(ctx, proj.ID, member.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkNotStarted, s.Status, "session row rolled back")
	assert.Nil(t, s.RunningSince)
	assert.Zero(t, s.Version)

	events, err := r.events.ListByPair(ctx, proj.ID, member.ID, repository.EventWindow{})
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestRecordWorkEvent_RollbackOnSessionUpdateFailure(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	clk := clock.NewManual(t0)
	proj, member := seedAssignment(t, r, clk)

	failUoW := &testutil.FailingUoW{
		DB:    r.database,
		Match: "UPDATE work_sessions",
		Err:   fmt.Errorf("injected session update failure"),
	}
	svc := NewWorkService(r.projects, r.members, r.sessions, failUoW, clk)

	_, err := svc.RecordWorkEvent(ctx, proj.ID, member.ID, domain.EventStart, "")
	require.Error(t, err)

	events, err := r.events.ListByPair(ctx, proj.ID, member.ID, repository.EventWindow{})
	require.NoError(t, err)
	assert.Empty(t, events, "no event without a confirmed row")
}
