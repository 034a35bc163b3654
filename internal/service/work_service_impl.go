package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/projectdesk/internal/clock"
	"github.com/alexanderramin/projectdesk/internal/contract"
	"github.com/alexanderramin/projectdesk/internal/db"
	"github.com/alexanderramin/projectdesk/internal/domain"
	"github.com/alexanderramin/projectdesk/internal/repository"
)

type workService struct {
	projects repository.ProjectRepo
	members  repository.MemberRepo
	sessions repository.WorkSessionRepo
	uow      db.UnitOfWork
	clock    clock.Clock
	observer UseCaseObserver
}

func NewWorkService(
	projects repository.ProjectRepo,
	members repository.MemberRepo,
	sessions repository.WorkSessionRepo,
	uow db.UnitOfWork,
	clk clock.Clock,
	observers ...UseCaseObserver,
) WorkService {
	return &workService{
		projects: projects,
		members:  members,
		sessions: sessions,
		uow:      uow,
		clock:    clk,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Assign creates the not-started session row for the pair. Archived projects
// and inactive members cannot be assigned.
func (s *workService) Assign(ctx context.Context, projectID, memberID string) (*domain.WorkSession, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p.Status == domain.ProjectArchived {
		return nil, fmt.Errorf("project %s is archived", p.DisplayID())
	}
	m, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if !m.Active {
		return nil, fmt.Errorf("member %s is inactive", m.Name)
	}

	session := domain.NewWorkSession(projectID, memberID, stamp(s.clock))
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteWorkSessionRepo(tx)
		if _, err := txSessions.Get(ctx, projectID, memberID); err == nil {
			return fmt.Errorf("%s on %s: %w", m.Name, p.DisplayID(), ErrAlreadyAssigned)
		} else if !isNotFound(err) {
			return err
		}
		return txSessions.Create(ctx, session)
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Unassign removes the session row. Events stay, so history remains readable.
func (s *workService) Unassign(ctx context.Context, projectID, memberID string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteWorkSessionRepo(tx)
		current, err := txSessions.Get(ctx, projectID, memberID)
		if err != nil {
			if isNotFound(err) {
				return fmt.Errorf("%w: %v", ErrNotAssigned, err)
			}
			return err
		}
		if current.Status == domain.WorkRunning || current.Status == domain.WorkOnHold {
			return fmt.Errorf("%w: end it before unassigning (status %s)", ErrSessionActive, current.Status)
		}
		return txSessions.Delete(ctx, projectID, memberID)
	})
}

func (s *workService) GetSession(ctx context.Context, projectID, memberID string) (*domain.WorkSession, error) {
	session, err := s.sessions.Get(ctx, projectID, memberID)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %v", ErrNotAssigned, err)
		}
		return nil, err
	}
	return session, nil
}

func (s *workService) ListSessions(ctx context.Context, projectID string) ([]contract.SessionView, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessions.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	views := make([]contract.SessionView, 0, len(sessions))
	for _, ws := range sessions {
		m, err := s.members.GetByID(ctx, ws.MemberID)
		if err != nil {
			return nil, err
		}
		views = append(views, contract.SessionView{
			Session:        ws,
			ProjectName:    p.Name,
			ProjectShortID: p.DisplayID(),
			MemberName:     m.Name,
			ElapsedSeconds: ws.ElapsedSeconds(now),
		})
	}
	return views, nil
}

func (s *workService) ListMemberSessions(ctx context.Context, memberID string) ([]contract.SessionView, error) {
	m, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessions.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	views := make([]contract.SessionView, 0, len(sessions))
	for _, ws := range sessions {
		p, err := s.projects.GetByID(ctx, ws.ProjectID)
		if err != nil {
			return nil, err
		}
		views = append(views, contract.SessionView{
			Session:        ws,
			ProjectName:    p.Name,
			ProjectShortID: p.DisplayID(),
			MemberName:     m.Name,
			ElapsedSeconds: ws.ElapsedSeconds(now),
		})
	}
	return views, nil
}

// RecordWorkEvent applies ev to the authoritative session row and appends the
// matching event in one transaction. The transition is evaluated against the
// row as stored at write time, so a request built from a stale view is
// rejected with domain.ErrInvalidTransition or repository.ErrConcurrentUpdate
// instead of overwriting a newer state.
func (s *workService) RecordWorkEvent(ctx context.Context, projectID, memberID string, ev domain.WorkEventType, note string) (result *domain.WorkSession, err error) {
	startedAt := time.Now()
	fields := map[string]any{
		"project_id": projectID,
		"member_id":  memberID,
		"event":      string(ev),
	}
	defer func() {
		observe(ctx, s.observer, "record-work-event", startedAt, err, fields)
	}()

	if _, err = domain.ParseWorkEventType(string(ev)); err != nil {
		return nil, err
	}
	now := stamp(s.clock)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteWorkSessionRepo(tx)
		txEvents := repository.NewSQLiteWorkEventRepo(tx)

		current, err := txSessions.Get(ctx, projectID, memberID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: %v", ErrNotAssigned, err)
			}
			return err
		}

		next, err := current.Apply(ev, note, now)
		if err != nil {
			return err
		}
		if err := txSessions.CompareAndSwap(ctx, &next, current.Version); err != nil {
			return err
		}
		if err := txEvents.Append(ctx, domain.NewWorkEvent(newID(), next, ev, note, now)); err != nil {
			return err
		}
		result = &next
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["status"] = string(result.Status)
	fields["cycle"] = result.Cycle
	fields["accumulated_seconds"] = result.AccumulatedSeconds
	return result, nil
}
