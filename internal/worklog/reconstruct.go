package worklog

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/projectdesk/internal/domain"
)

// AnomalyKind classifies a malformed stretch of an event log.
type AnomalyKind string

const (
	AnomalyOutOfOrder       AnomalyKind = "out_of_order"
	AnomalyDuplicateOpen    AnomalyKind = "duplicate_open"
	AnomalyCloseWithoutOpen AnomalyKind = "close_without_open"
	AnomalyUnknownEvent     AnomalyKind = "unknown_event"
)

// Anomaly describes one event that reconstruction had to skip or reorder.
type Anomaly struct {
	Kind     AnomalyKind
	EventID  string
	MemberID string
	At       time.Time
	Detail   string
}

func (a Anomaly) String() string {
	return fmt.Sprintf("%s: event %s (member %s) at %s: %s",
		a.Kind, a.EventID, a.MemberID, a.At.Format(time.RFC3339), a.Detail)
}

// memberCursor tracks the open and most recently held segment of one member.
type memberCursor struct {
	open    int
	held    int
	hasOpen bool
	hasHeld bool
}

// Reconstruct turns work events into running segments. Events may belong to
// several members; each member's segments are built independently and the
// result is ordered by start time. Malformed sequences never fail: duplicate
// opens keep the earlier open, stray closes are dropped, and unsorted input is
// sorted. Every such repair is reported as an Anomaly.
//
// The input slice is not modified, so calling Reconstruct twice on the same
// events yields identical output.
func Reconstruct(events []domain.WorkEvent) ([]domain.Segment, []Anomaly) {
	var anomalies []Anomaly

	sorted := make([]domain.WorkEvent, len(events))
	copy(sorted, events)
	byTime := func(i, j int) bool { return sorted[i].OccurredAt.Before(sorted[j].OccurredAt) }
	if !sort.SliceIsSorted(sorted, byTime) {
		anomalies = append(anomalies, Anomaly{
			Kind:   AnomalyOutOfOrder,
			Detail: fmt.Sprintf("%d events were not in occurred_at order", len(sorted)),
		})
		sort.SliceStable(sorted, byTime)
	}

	segments := make([]domain.Segment, 0, len(sorted)/2+1)
	cursors := make(map[string]*memberCursor)

	for _, ev := range sorted {
		cur, ok := cursors[ev.MemberID]
		if !ok {
			cur = &memberCursor{}
			cursors[ev.MemberID] = cur
		}

		switch ev.Type {
		case domain.EventStart, domain.EventResume:
			if cur.hasOpen {
				anomalies = append(anomalies, anomalyFor(ev, AnomalyDuplicateOpen,
					fmt.Sprintf("%s while a segment opened at %s is still running",
						ev.Type, segments[cur.open].StartAt.Format(time.RFC3339))))
				continue
			}
			segments = append(segments, domain.Segment{
				MemberID: ev.MemberID,
				Cycle:    ev.Cycle,
				StartAt:  ev.OccurredAt,
			})
			cur.open = len(segments) - 1
			cur.hasOpen = true
			cur.hasHeld = false

		case domain.EventHold:
			if !cur.hasOpen {
				anomalies = append(anomalies, anomalyFor(ev, AnomalyCloseWithoutOpen, "hold with no running segment"))
				continue
			}
			closeSegment(&segments[cur.open], ev.OccurredAt, "")
			cur.held = cur.open
			cur.hasHeld = true
			cur.hasOpen = false

		case domain.EventEnd:
			switch {
			case cur.hasOpen:
				closeSegment(&segments[cur.open], ev.OccurredAt, ev.Note)
				cur.hasOpen = false
			case cur.hasHeld && segments[cur.held].Cycle == ev.Cycle:
				// hold -> end closes nothing; the done note belongs to the
				// segment the hold closed.
				segments[cur.held].Note = ev.Note
			default:
				anomalies = append(anomalies, anomalyFor(ev, AnomalyCloseWithoutOpen, "end with no running or held segment"))
				continue
			}
			cur.hasHeld = false

		default:
			anomalies = append(anomalies, anomalyFor(ev, AnomalyUnknownEvent, fmt.Sprintf("unknown event type %q", ev.Type)))
		}
	}

	return segments, anomalies
}

func closeSegment(seg *domain.Segment, at time.Time, note string) {
	end := at
	seg.EndAt = &end
	seg.Note = note
}

func anomalyFor(ev domain.WorkEvent, kind AnomalyKind, detail string) Anomaly {
	return Anomaly{Kind: kind, EventID: ev.ID, MemberID: ev.MemberID, At: ev.OccurredAt, Detail: detail}
}
