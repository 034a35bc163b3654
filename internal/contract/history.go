package contract

import "github.com/alexanderramin/projectdesk/internal/app"

type HistoryRequest = app.HistoryRequest

func NewHistoryRequest(projectID string, days int) HistoryRequest {
	return app.NewHistoryRequest(projectID, days)
}

type WorkHistory = app.WorkHistory

type SessionView = app.SessionView
