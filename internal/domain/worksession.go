package domain

import (
	"fmt"
	"strings"
	"time"
)

// WorkSession is the confirmed work-tracking state of one member on one
// project. RunningSince is set only while Status is WorkRunning.
type WorkSession struct {
	ProjectID          string
	MemberID           string
	Status             WorkStatus
	RunningSince       *time.Time
	AccumulatedSeconds int64
	// Cycle counts starts from not_started or end; events carry it so that
	// history can tell cycles apart.
	Cycle     int
	Version   int
	UpdatedAt time.Time
}

// NewWorkSession returns the implicit session created when a member is
// assigned to a project.
func NewWorkSession(projectID, memberID string, now time.Time) *WorkSession {
	return &WorkSession{
		ProjectID: projectID,
		MemberID:  memberID,
		Status:    WorkNotStarted,
		UpdatedAt: now,
	}
}

// Apply returns the session that results from ev at now. The receiver is
// never modified; on error the caller keeps its current state.
func (s WorkSession) Apply(ev WorkEventType, note string, now time.Time) (WorkSession, error) {
	next := s
	next.UpdatedAt = now

	switch {
	case ev == EventStart && (s.Status == WorkNotStarted || s.Status == WorkEnded):
		next.Status = WorkRunning
		next.RunningSince = timePtr(now)
		next.AccumulatedSeconds = 0
		next.Cycle = s.Cycle + 1

	case ev == EventHold && s.Status == WorkRunning:
		next.AccumulatedSeconds = s.AccumulatedSeconds + s.runningSeconds(now)
		next.Status = WorkOnHold
		next.RunningSince = nil

	case ev == EventResume && s.Status == WorkOnHold:
		next.Status = WorkRunning
		next.RunningSince = timePtr(now)

	case ev == EventEnd && (s.Status == WorkRunning || s.Status == WorkOnHold):
		if err := ValidateDoneNote(note); err != nil {
			return s, err
		}
		next.AccumulatedSeconds = s.AccumulatedSeconds + s.runningSeconds(now)
		next.Status = WorkEnded
		next.RunningSince = nil

	default:
		return s, fmt.Errorf("%w: cannot %s from %s", ErrInvalidTransition, ev, s.Status)
	}

	return next, nil
}

// Allows reports whether ev is a legal transition from the current status.
// It does not check the done note.
func (s WorkSession) Allows(ev WorkEventType) bool {
	switch ev {
	case EventStart:
		return s.Status == WorkNotStarted || s.Status == WorkEnded
	case EventHold:
		return s.Status == WorkRunning
	case EventResume:
		return s.Status == WorkOnHold
	case EventEnd:
		return s.Status == WorkRunning || s.Status == WorkOnHold
	}
	return false
}

// ElapsedSeconds is the live "current session" value at now.
func (s WorkSession) ElapsedSeconds(now time.Time) int64 {
	switch s.Status {
	case WorkRunning:
		return s.AccumulatedSeconds + s.runningSeconds(now)
	case WorkOnHold, WorkEnded:
		return s.AccumulatedSeconds
	default:
		return 0
	}
}

// Elapsed is ElapsedSeconds as a time.Duration.
func (s WorkSession) Elapsed(now time.Time) time.Duration {
	return time.Duration(s.ElapsedSeconds(now)) * time.Second
}

// runningSeconds is the length of the open segment, clamped at zero so a
// clock that moved backwards never shrinks the accumulated total.
func (s WorkSession) runningSeconds(now time.Time) int64 {
	if s.Status != WorkRunning || s.RunningSince == nil {
		return 0
	}
	d := int64(now.Sub(*s.RunningSince) / time.Second)
	if d < 0 {
		return 0
	}
	return d
}

// ValidateDoneNote rejects empty and whitespace-only done notes.
func ValidateDoneNote(note string) error {
	if strings.TrimSpace(note) == "" {
		return ErrDoneNoteRequired
	}
	return nil
}

func timePtr(t time.Time) *time.Time { return &t }
