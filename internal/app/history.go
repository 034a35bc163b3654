package app

import (
	"time"

	"github.com/alexanderramin/projectdesk/internal/domain"
	"github.com/alexanderramin/projectdesk/internal/worklog"
)

// HistoryRequest selects the work history of one project. MemberID narrows it
// to a single member. From and To bound the events by occurred_at; when From
// is nil and Days is positive, the window starts Days-1 local days before Now.
type HistoryRequest struct {
	ProjectID string
	MemberID  string
	Days      int
	From      *time.Time
	To        *time.Time
	Now       *time.Time
}

func NewHistoryRequest(projectID string, days int) HistoryRequest {
	return HistoryRequest{
		ProjectID: projectID,
		Days:      days,
	}
}

// WorkHistory is the reconstructed, day-grouped work log of a project.
type WorkHistory struct {
	ProjectID    string
	GeneratedAt  time.Time
	Location     *time.Location
	Days         []domain.DayHistory
	MemberTotals map[string]int64
	TotalSeconds int64
	Anomalies    []worklog.Anomaly
}

// SessionView pairs a confirmed session row with display names and the
// elapsed seconds at the time it was read.
type SessionView struct {
	Session        *domain.WorkSession
	ProjectName    string
	ProjectShortID string
	MemberName     string
	ElapsedSeconds int64
}
