// Package tracker keeps the displayed work-session state of one
// (project, member) pair in step with the store.
//
// The tracker holds the last confirmed session plus, while a transition is in
// flight, a pending record. Only start is shown optimistically: its pending
// record carries a shadow session that view() prefers over the confirmed one.
// Clearing the pending record is the single rollback path.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/projectdesk/internal/app"
	"github.com/alexanderramin/projectdesk/internal/clock"
	"github.com/alexanderramin/projectdesk/internal/domain"
	"github.com/alexanderramin/projectdesk/internal/repository"
	"go.uber.org/zap"
)

// ErrTransitionInFlight is returned when a transition is requested while
// another one for the same pair has not resolved yet.
var ErrTransitionInFlight = errors.New("a work transition is already in flight")

// Store is the confirmed-state backend. service.WorkService satisfies it.
type Store interface {
	app.RecordWorkEventUseCase
	app.GetSessionUseCase
}

// Snapshot is the externally observable tracker state.
type Snapshot struct {
	ProjectID          string
	MemberID           string
	Status             domain.WorkStatus
	RunningSince       *time.Time
	AccumulatedSeconds int64
	Cycle              int
	IsUpdating         bool
}

// ElapsedSeconds is the live "current session" value at now.
func (s Snapshot) ElapsedSeconds(now time.Time) int64 {
	return s.session().ElapsedSeconds(now)
}

// Allows reports whether ev is a legal next transition.
func (s Snapshot) Allows(ev domain.WorkEventType) bool {
	return !s.IsUpdating && s.session().Allows(ev)
}

func (s Snapshot) session() domain.WorkSession {
	return domain.WorkSession{
		ProjectID:          s.ProjectID,
		MemberID:           s.MemberID,
		Status:             s.Status,
		RunningSince:       s.RunningSince,
		AccumulatedSeconds: s.AccumulatedSeconds,
		Cycle:              s.Cycle,
	}
}

type pendingState struct {
	event  domain.WorkEventType
	shadow *domain.WorkSession
}

// Tracker mediates transitions for one (project, member) pair. It is safe for
// concurrent use; at most one transition is in flight at a time.
type Tracker struct {
	projectID string
	memberID  string
	store     Store
	clock     clock.Clock
	logger    *zap.Logger

	mu        sync.Mutex
	confirmed domain.WorkSession
	pending   *pendingState
}

// New loads the confirmed session for the pair from store.
func New(ctx context.Context, store Store, clk clock.Clock, logger *zap.Logger, projectID, memberID string) (*Tracker, error) {
	s, err := store.GetSession(ctx, projectID, memberID)
	if err != nil {
		return nil, fmt.Errorf("loading work session: %w", err)
	}
	return NewFromSession(store, clk, logger, *s), nil
}

// NewFromSession builds a tracker around an already loaded session.
func NewFromSession(store Store, clk clock.Clock, logger *zap.Logger, session domain.WorkSession) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		projectID: session.ProjectID,
		memberID:  session.MemberID,
		store:     store,
		clock:     clk,
		logger: logger.Named("tracker").With(
			zap.String("project_id", session.ProjectID),
			zap.String("member_id", session.MemberID),
		),
		confirmed: session,
	}
}

// view reconciles confirmed and pending state. Callers hold t.mu.
func (t *Tracker) view() domain.WorkSession {
	if t.pending != nil && t.pending.shadow != nil {
		return *t.pending.shadow
	}
	return t.confirmed
}

func (t *Tracker) snapshotLocked() Snapshot {
	v := t.view()
	return Snapshot{
		ProjectID:          t.projectID,
		MemberID:           t.memberID,
		Status:             v.Status,
		RunningSince:       v.RunningSince,
		AccumulatedSeconds: v.AccumulatedSeconds,
		Cycle:              v.Cycle,
		IsUpdating:         t.pending != nil,
	}
}

// Snapshot returns the state to display right now.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

// Confirmed returns the last session the store acknowledged.
func (t *Tracker) Confirmed() domain.WorkSession {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.confirmed
}

// ElapsedSeconds is the displayed elapsed value at the clock's now.
func (t *Tracker) ElapsedSeconds() int64 {
	return t.Snapshot().ElapsedSeconds(t.clock.Now())
}

func (t *Tracker) Start(ctx context.Context) (Snapshot, error) {
	return t.Transition(ctx, domain.EventStart, "")
}

func (t *Tracker) Hold(ctx context.Context) (Snapshot, error) {
	return t.Transition(ctx, domain.EventHold, "")
}

func (t *Tracker) Resume(ctx context.Context) (Snapshot, error) {
	return t.Transition(ctx, domain.EventResume, "")
}

func (t *Tracker) End(ctx context.Context, note string) (Snapshot, error) {
	return t.Transition(ctx, domain.EventEnd, note)
}

// Transition validates ev against the confirmed state, then writes it through
// the store. Invalid transitions and blank done notes never reach the store.
// A start is displayed immediately and rolled back if the store fails; other
// events change the display only once confirmed. When the store rejects the
// event because the stored row moved on, the tracker reloads it.
func (t *Tracker) Transition(ctx context.Context, ev domain.WorkEventType, note string) (Snapshot, error) {
	t.mu.Lock()
	if t.pending != nil {
		snap := t.snapshotLocked()
		inFlight := t.pending.event
		t.mu.Unlock()
		return snap, fmt.Errorf("%w: %s is pending", ErrTransitionInFlight, inFlight)
	}

	now := t.clock.Now().UTC().Truncate(time.Second)
	optimistic, err := t.confirmed.Apply(ev, note, now)
	if err != nil {
		snap := t.snapshotLocked()
		t.mu.Unlock()
		return snap, err
	}

	p := &pendingState{event: ev}
	if ev == domain.EventStart {
		p.shadow = &optimistic
	}
	t.pending = p
	t.mu.Unlock()

	confirmed, storeErr := t.store.RecordWorkEvent(ctx, t.projectID, t.memberID, ev, note)

	t.mu.Lock()
	t.pending = nil
	if storeErr == nil {
		t.confirmed = *confirmed
		snap := t.snapshotLocked()
		t.mu.Unlock()
		return snap, nil
	}
	t.mu.Unlock()

	t.logger.Warn("work transition rolled back",
		zap.String("event", string(ev)),
		zap.Bool("optimistic", p.shadow != nil),
		zap.Error(storeErr),
	)
	if errors.Is(storeErr, domain.ErrInvalidTransition) || errors.Is(storeErr, repository.ErrConcurrentUpdate) {
		if err := t.Refresh(ctx); err != nil {
			t.logger.Warn("reloading work session failed", zap.Error(err))
		}
	}
	return t.Snapshot(), storeErr
}

// Refresh reloads the confirmed session from the store. A row older than the
// one already held is ignored.
func (t *Tracker) Refresh(ctx context.Context) error {
	s, err := t.store.GetSession(ctx, t.projectID, t.memberID)
	if err != nil {
		return fmt.Errorf("reloading work session: %w", err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if s.Version >= t.confirmed.Version {
		t.confirmed = *s
	}
	return nil
}
