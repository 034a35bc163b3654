package worklog

import (
	"sort"
	"time"

	"github.com/alexanderramin/projectdesk/internal/domain"
)

// GroupByDay buckets segments by the calendar date of their start in loc.
// A segment that crosses midnight counts toward the day it started. Open
// segments contribute their live length up to until. Days are returned newest
// first; segments inside a day keep start order.
func GroupByDay(segments []domain.Segment, loc *time.Location, until time.Time) []domain.DayHistory {
	if loc == nil {
		loc = time.UTC
	}
	index := make(map[string]int)
	var days []domain.DayHistory

	for _, seg := range segments {
		day := StartOfDay(seg.StartAt.In(loc))
		key := day.Format("2006-01-02")
		i, ok := index[key]
		if !ok {
			days = append(days, domain.DayHistory{Date: day})
			i = len(days) - 1
			index[key] = i
		}
		days[i].Segments = append(days[i].Segments, seg)
		days[i].TotalSeconds += SegmentSeconds(seg, until)
	}

	for i := range days {
		sort.SliceStable(days[i].Segments, func(a, b int) bool {
			return days[i].Segments[a].StartAt.Before(days[i].Segments[b].StartAt)
		})
	}
	sort.Slice(days, func(a, b int) bool { return days[a].Date.After(days[b].Date) })
	return days
}

// SegmentSeconds is the whole-second length of seg, live up to until when open.
func SegmentSeconds(seg domain.Segment, until time.Time) int64 {
	return int64(seg.Duration(until) / time.Second)
}

// TotalsByMember sums segment seconds per member.
func TotalsByMember(segments []domain.Segment, until time.Time) map[string]int64 {
	totals := make(map[string]int64)
	for _, seg := range segments {
		totals[seg.MemberID] += SegmentSeconds(seg, until)
	}
	return totals
}

// StartOfDay returns 00:00:00 of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
