package worklog

import (
	"testing"
	"time"

	"github.com/alexanderramin/projectdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByDay_TotalsAndOrdering(t *testing.T) {
	day1 := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	segments := []domain.Segment{
		{MemberID: "m1", StartAt: day1, EndAt: tp(day1.Add(30 * time.Minute))},
		{MemberID: "m1", StartAt: day1.Add(time.Hour), EndAt: tp(day1.Add(90 * time.Minute)), Note: "done"},
		{MemberID: "m1", StartAt: day2, EndAt: tp(day2.Add(10 * time.Minute))},
	}

	days := GroupByDay(segments, time.UTC, day2.Add(time.Hour))
	require.Len(t, days, 2)
	assert.Equal(t, StartOfDay(day2), days[0].Date, "newest day first")
	assert.EqualValues(t, 600, days[0].TotalSeconds)
	assert.Equal(t, StartOfDay(day1), days[1].Date)
	assert.EqualValues(t, 3600, days[1].TotalSeconds)
	assert.Len(t, days[1].Segments, 2)
}

func TestGroupByDay_OpenSegmentCountsLive(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	segments := []domain.Segment{
		{MemberID: "m1", StartAt: start, EndAt: tp(start.Add(5 * time.Minute))},
		{MemberID: "m1", StartAt: start.Add(10 * time.Minute)},
	}

	days := GroupByDay(segments, time.UTC, start.Add(12*time.Minute))
	require.Len(t, days, 1)
	assert.EqualValues(t, 5*60+2*60, days[0].TotalSeconds)
}

func TestGroupByDay_UsesLocationForDayBoundary(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	// 22:30 UTC on Mar 2 is 01:30 on Mar 3 at UTC+3.
	start := time.Date(2026, 3, 2, 22, 30, 0, 0, time.UTC)
	segments := []domain.Segment{{MemberID: "m1", StartAt: start, EndAt: tp(start.Add(time.Hour))}}

	days := GroupByDay(segments, loc, start.Add(2*time.Hour))
	require.Len(t, days, 1)
	assert.Equal(t, 3, days[0].Date.Day())
	assert.Equal(t, loc, days[0].Date.Location())
}

func TestGroupByDay_CrossMidnightCountsTowardStartDay(t *testing.T) {
	start := time.Date(2026, 3, 2, 23, 30, 0, 0, time.UTC)
	segments := []domain.Segment{{MemberID: "m1", StartAt: start, EndAt: tp(start.Add(time.Hour))}}

	days := GroupByDay(segments, time.UTC, start.Add(2*time.Hour))
	require.Len(t, days, 1)
	assert.Equal(t, 2, days[0].Date.Day())
	assert.EqualValues(t, 3600, days[0].TotalSeconds)
}

func TestTotalsByMember(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	segments := []domain.Segment{
		{MemberID: "m1", StartAt: start, EndAt: tp(start.Add(time.Minute))},
		{MemberID: "m2", StartAt: start, EndAt: tp(start.Add(2 * time.Minute))},
		{MemberID: "m1", StartAt: start.Add(time.Hour)},
	}
	totals := TotalsByMember(segments, start.Add(time.Hour+30*time.Second))
	assert.EqualValues(t, 90, totals["m1"])
	assert.EqualValues(t, 120, totals["m2"])
}

func TestGroupByDay_Empty(t *testing.T) {
	assert.Empty(t, GroupByDay(nil, nil, time.Now()))
}
