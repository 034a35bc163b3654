package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/projectdesk/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Archive(ctx context.Context, id string) error
	Unarchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type MemberRepo interface {
	Create(ctx context.Context, m *domain.Member) error
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	GetByEmail(ctx context.Context, email string) (*domain.Member, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Member, error)
	Update(ctx context.Context, m *domain.Member) error
	Delete(ctx context.Context, id string) error
}

// TaskFilter narrows ListByProject. Zero values mean "any".
type TaskFilter struct {
	Status          domain.TaskStatus
	AssigneeID      string
	IncludeArchived bool
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string, filter TaskFilter) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

type NoteRepo interface {
	Create(ctx context.Context, n *domain.Note) error
	GetByID(ctx context.Context, id string) (*domain.Note, error)
	ListByProject(ctx context.Context, projectID string, kind domain.NoteKind) ([]*domain.Note, error)
	Delete(ctx context.Context, id string) error
}

type FollowUpRepo interface {
	Create(ctx context.Context, f *domain.FollowUp) error
	GetByID(ctx context.Context, id string) (*domain.FollowUp, error)
	ListByProject(ctx context.Context, projectID string, pendingOnly bool) ([]*domain.FollowUp, error)
	ListPendingDueBefore(ctx context.Context, before time.Time) ([]*domain.FollowUp, error)
	Update(ctx context.Context, f *domain.FollowUp) error
	Delete(ctx context.Context, id string) error
}

// WorkSessionRepo stores the single confirmed-state row per (project, member).
type WorkSessionRepo interface {
	Create(ctx context.Context, s *domain.WorkSession) error
	Get(ctx context.Context, projectID, memberID string) (*domain.WorkSession, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.WorkSession, error)
	ListByMember(ctx context.Context, memberID string) ([]*domain.WorkSession, error)
	// CompareAndSwap writes s only if the stored version still equals
	// expectedVersion, then sets s.Version to the new value. A lost race
	// returns ErrConcurrentUpdate.
	CompareAndSwap(ctx context.Context, s *domain.WorkSession, expectedVersion int) error
	Delete(ctx context.Context, projectID, memberID string) error
}

// EventWindow bounds an event query by occurred_at. Nil ends are open.
type EventWindow struct {
	From *time.Time
	To   *time.Time
}

type WorkEventRepo interface {
	Append(ctx context.Context, e *domain.WorkEvent) error
	ListByPair(ctx context.Context, projectID, memberID string, window EventWindow) ([]domain.WorkEvent, error)
	ListByProject(ctx context.Context, projectID string, window EventWindow) ([]domain.WorkEvent, error)
	ListMembersWithEvents(ctx context.Context, projectID string) ([]string, error)
}
