package domain

import (
	"fmt"
	"strings"
	"time"
)

// FollowUp is a dated reminder to get back to a project's client.
type FollowUp struct {
	ID        string
	ProjectID string
	OwnerID   *string
	Summary   string
	DueDate   time.Time
	DoneAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (f *FollowUp) Validate() error {
	if f.ProjectID == "" {
		return fmt.Errorf("follow-up project is required")
	}
	if strings.TrimSpace(f.Summary) == "" {
		return fmt.Errorf("follow-up summary is required")
	}
	if f.DueDate.IsZero() {
		return fmt.Errorf("follow-up due date is required")
	}
	return nil
}

// IsDone reports whether the follow-up has been completed.
func (f *FollowUp) IsDone() bool { return f.DoneAt != nil }

// IsOverdue reports whether a pending follow-up was due before today.
func (f *FollowUp) IsOverdue(now time.Time) bool {
	return !f.IsDone() && f.DueDate.Before(startOfDay(now))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
