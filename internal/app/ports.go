package app

import (
	"context"

	"github.com/alexanderramin/projectdesk/internal/domain"
)

type RecordWorkEventUseCase interface {
	RecordWorkEvent(ctx context.Context, projectID, memberID string, ev domain.WorkEventType, note string) (*domain.WorkSession, error)
}

type GetSessionUseCase interface {
	GetSession(ctx context.Context, projectID, memberID string) (*domain.WorkSession, error)
}

type WorkHistoryUseCase interface {
	WorkHistory(ctx context.Context, req HistoryRequest) (*WorkHistory, error)
}
