package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/projectdesk/internal/clock"
	"github.com/alexanderramin/projectdesk/internal/contract"
	"github.com/alexanderramin/projectdesk/internal/domain"
	"github.com/alexanderramin/projectdesk/internal/testutil"
	"github.com/alexanderramin/projectdesk/internal/worklog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func record(t *testing.T, svc WorkService, clk *clock.Manual, p, m string, ev domain.WorkEventType, note string, after time.Duration) {
	t.Helper()
	clk.Advance(after)
	_, err := svc.RecordWorkEvent(context.Background(), p, m, ev, note)
	require.NoError(t, err)
}

func TestWorkHistory_ScenarioSegmentsAndTotals(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	clk := clock.NewManual(t0)
	proj, member := seedAssignment(t, r, clk)
	work := newWorkService(r, clk)

	record(t, work, clk, proj.ID, member.ID, domain.EventStart, "", 0)
	record(t, work, clk, proj.ID, member.ID, domain.EventHold, "", 5*time.Minute)
	record(t, work, clk, proj.ID, member.ID, domain.EventResume, "", 5*time.Minute)
	record(t, work, clk, proj.ID, member.ID, domain.EventEnd, "Fixed layout bug", 5*time.Minute)

	svc := NewHistoryService(r.projects, r.events, clk, time.UTC, nil)
	h, err := svc.WorkHistory(ctx, contract.NewHistoryRequest(proj.ID, 7))
	require.NoError(t, err)

	require.Len(t, h.Days, 1)
	day := h.Days[0]
	assert.Equal(t, worklog.StartOfDay(t0), day.Date)
	assert.EqualValues(t, 600, day.TotalSeconds)
	require.Len(t, day.Segments, 2)
	assert.Equal(t, 5*time.Minute, day.Segments[0].Duration(clk.Now()))
	assert.Empty(t, day.Segments[0].Note)
	assert.Equal(t, "Fixed layout bug", day.Segments[1].Note)
	assert.EqualValues(t, 600, h.MemberTotals[member.ID])
	assert.EqualValues(t, 600, h.TotalSeconds)
	assert.Empty(t, h.Anomalies)
}

func TestWorkHistory_OpenSegmentCountsLive(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	clk := clock.NewManual(t0)
	proj, member := seedAssignment(t, r, clk)
	work := newWorkService(r, clk)

	record(t, work, clk, proj.ID, member.ID, domain.EventStart, "", 0)
	clk.Advance(7 * time.Minute)

	svc := NewHistoryService(r.projects, r.events, clk, time.UTC, nil)
	h, err := svc.WorkHistory(ctx, contract.NewHistoryRequest(proj.ID, 1))
	require.NoError(t, err)
	require.Len(t, h.Days, 1)
	require.Len(t, h.Days[0].Segments, 1)
	assert.True(t, h.Days[0].Segments[0].IsOpen())
	assert.EqualValues(t, 420, h.Days[0].TotalSeconds)
}

func TestWorkHistory_DaysWindowAndMemberFilter(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	clk := clock.NewManual(t0)
	proj, robin := seedAssignment(t, r, clk)
	alex := testutil.NewTestMember("Alex")
	require.NoError(t, r.members.Create(ctx, alex))
	work := newWorkService(r, clk)
	_, err := work.Assign(ctx, proj.ID, alex.ID)
	require.NoError(t, err)

	// Day 1: Robin works 10 minutes.
	record(t, work, clk, proj.ID, robin.ID, domain.EventStart, "", 0)
	record(t, work, clk, proj.ID, robin.ID, domain.EventEnd, "day one", 10*time.Minute)
	// Day 3: both work.
	record(t, work, clk, proj.ID, robin.ID, domain.EventStart, "", 48*time.Hour)
	record(t, work, clk, proj.ID, alex.ID, domain.EventStart, "", time.Minute)
	record(t, work, clk, proj.ID, robin.ID, domain.EventEnd, "day three", 4*time.Minute)
	record(t, work, clk, proj.ID, alex.ID, domain.EventEnd, "alex done", time.Minute)

	svc := NewHistoryService(r.projects, r.events, clk, time.UTC, nil)

	all, err := svc.WorkHistory(ctx, contract.NewHistoryRequest(proj.ID, 0))
	require.NoError(t, err)
	require.Len(t, all.Days, 2)
	assert.True(t, all.Days[0].Date.After(all.Days[1].Date), "newest day first")
	assert.Len(t, all.Days[0].Segments, 2)
	assert.EqualValues(t, 5*60+5*60, all.Days[0].TotalSeconds)

	recent, err := svc.WorkHistory(ctx, contract.NewHistoryRequest(proj.ID, 1))
	require.NoError(t, err)
	require.Len(t, recent.Days, 1, "only today")

	req := contract.NewHistoryRequest(proj.ID, 0)
	req.MemberID = alex.ID
	onlyAlex, err := svc.WorkHistory(ctx, req)
	require.NoError(t, err)
	require.Len(t, onlyAlex.Days, 1)
	require.Len(t, onlyAlex.Days[0].Segments, 1)
	assert.Equal(t, "alex done", onlyAlex.Days[0].Segments[0].Note)
}

func TestWorkHistory_TimezoneDayBoundary(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	// 23:30 UTC is already the next day at UTC+2.
	clk := clock.NewManual(time.Date(2026, 3, 2, 23, 30, 0, 0, time.UTC))
	proj, member := seedAssignment(t, r, clk)
	work := newWorkService(r, clk)
	record(t, work, clk, proj.ID, member.ID, domain.EventStart, "", 0)
	record(t, work, clk, proj.ID, member.ID, domain.EventEnd, "late", 10*time.Minute)

	loc := time.FixedZone("UTC+2", 2*60*60)
	svc := NewHistoryService(r.projects, r.events, clk, loc, nil)
	h, err := svc.WorkHistory(ctx, contract.NewHistoryRequest(proj.ID, 0))
	require.NoError(t, err)
	require.Len(t, h.Days, 1)
	assert.Equal(t, 3, h.Days[0].Date.Day())
}

func TestWorkHistory_AnomaliesAreLoggedNotFatal(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	clk := clock.NewManual(t0.Add(time.Hour))
	proj, member := seedAssignment(t, r, clk)

	// A stray hold with no start, written directly to the log.
	require.NoError(t, r.events.Append(ctx, &domain.WorkEvent{
		ID: "stray", ProjectID: proj.ID, MemberID: member.ID, Cycle: 1,
		Type: domain.EventHold, OccurredAt: t0, CreatedAt: t0,
	}))

	core, logs := observer.New(zapcore.WarnLevel)
	svc := NewHistoryService(r.projects, r.events, clk, time.UTC, zap.New(core))
	h, err := svc.WorkHistory(ctx, contract.NewHistoryRequest(proj.ID, 0))
	require.NoError(t, err)
	assert.Empty(t, h.Days)
	require.Len(t, h.Anomalies, 1)
	assert.Equal(t, worklog.AnomalyCloseWithoutOpen, h.Anomalies[0].Kind)

	entries := logs.FilterMessage("work log anomaly").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "stray", entries[0].ContextMap()["event_id"])
}

func TestWorkHistory_UnknownProject(t *testing.T) {
	r := setupRepos(t)
	svc := NewHistoryService(r.projects, r.events, clock.NewManual(t0), time.UTC, nil)
	_, err := svc.WorkHistory(context.Background(), contract.NewHistoryRequest("missing", 7))
	assert.Error(t, err)

	_, err = svc.WorkHistory(context.Background(), contract.HistoryRequest{})
	assert.Error(t, err)
}
