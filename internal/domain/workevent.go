package domain

import (
	"strings"
	"time"
)

// WorkEvent is one append-only record of a work session transition.
type WorkEvent struct {
	ID         string
	ProjectID  string
	MemberID   string
	Cycle      int
	Type       WorkEventType
	OccurredAt time.Time
	Note       string
	CreatedAt  time.Time
}

// NewWorkEvent builds the event that records next, the session produced by
// applying ev. Notes are only kept on end events.
func NewWorkEvent(id string, next WorkSession, ev WorkEventType, note string, now time.Time) *WorkEvent {
	e := &WorkEvent{
		ID:         id,
		ProjectID:  next.ProjectID,
		MemberID:   next.MemberID,
		Cycle:      next.Cycle,
		Type:       ev,
		OccurredAt: now,
		CreatedAt:  now,
	}
	if ev == EventEnd {
		e.Note = strings.TrimSpace(note)
	}
	return e
}

// OpensSegment reports whether the event starts a running segment.
func (e WorkEvent) OpensSegment() bool { return e.Type.opensSegment() }

// Segment is a contiguous running interval reconstructed from events.
// EndAt is nil while the segment is still running.
type Segment struct {
	MemberID string
	Cycle    int
	StartAt  time.Time
	EndAt    *time.Time
	Note     string
}

// IsOpen reports whether the segment has no closing event yet.
func (s Segment) IsOpen() bool { return s.EndAt == nil }

// Duration is the closed length of the segment, or the live length up to
// now for an open one.
func (s Segment) Duration(now time.Time) time.Duration {
	end := now
	if s.EndAt != nil {
		end = *s.EndAt
	}
	d := end.Sub(s.StartAt)
	if d < 0 {
		return 0
	}
	return d
}

// DayHistory is the segments of one calendar day and their total.
type DayHistory struct {
	Date         time.Time
	Segments     []Segment
	TotalSeconds int64
}
