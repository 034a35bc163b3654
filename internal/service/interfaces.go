package service

import (
	"context"

	"github.com/alexanderramin/projectdesk/internal/app"
	"github.com/alexanderramin/projectdesk/internal/contract"
	"github.com/alexanderramin/projectdesk/internal/domain"
	"github.com/alexanderramin/projectdesk/internal/repository"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// Resolve accepts either a short ID (case-insensitive) or a UUID.
	Resolve(ctx context.Context, ref string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, force bool) error
}

type MemberService interface {
	Create(ctx context.Context, m *domain.Member) error
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	// Resolve accepts a UUID, an email address or an exact name.
	Resolve(ctx context.Context, ref string) (*domain.Member, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Member, error)
	Update(ctx context.Context, m *domain.Member) error
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string, filter repository.TaskFilter) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	MarkDone(ctx context.Context, id string) error
	Reopen(ctx context.Context, id string) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type NoteService interface {
	Add(ctx context.Context, n *domain.Note) error
	ListByProject(ctx context.Context, projectID string, kind domain.NoteKind) ([]*domain.Note, error)
	Delete(ctx context.Context, id string) error
}

type FollowUpService interface {
	Add(ctx context.Context, f *domain.FollowUp) error
	ListByProject(ctx context.Context, projectID string, pendingOnly bool) ([]*domain.FollowUp, error)
	ListOverdue(ctx context.Context) ([]*domain.FollowUp, error)
	Complete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// WorkService owns the confirmed session row of each (project, member) pair
// and the append-only event log behind it.
type WorkService interface {
	Assign(ctx context.Context, projectID, memberID string) (*domain.WorkSession, error)
	Unassign(ctx context.Context, projectID, memberID string) error
	GetSession(ctx context.Context, projectID, memberID string) (*domain.WorkSession, error)
	ListSessions(ctx context.Context, projectID string) ([]contract.SessionView, error)
	ListMemberSessions(ctx context.Context, memberID string) ([]contract.SessionView, error)
	RecordWorkEvent(ctx context.Context, projectID, memberID string, ev domain.WorkEventType, note string) (*domain.WorkSession, error)
}

type HistoryService interface {
	app.WorkHistoryUseCase
}
