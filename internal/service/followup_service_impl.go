package service

import (
	"context"
	"strings"

	"github.com/alexanderramin/projectdesk/internal/clock"
	"github.com/alexanderramin/projectdesk/internal/domain"
	"github.com/alexanderramin/projectdesk/internal/repository"
	"github.com/alexanderramin/projectdesk/internal/worklog"
)

type followUpService struct {
	followUps repository.FollowUpRepo
	clock     clock.Clock
}

func NewFollowUpService(followUps repository.FollowUpRepo, clk clock.Clock) FollowUpService {
	return &followUpService{followUps: followUps, clock: clk}
}

func (s *followUpService) Add(ctx context.Context, f *domain.FollowUp) error {
	f.Summary = strings.TrimSpace(f.Summary)
	if err := f.Validate(); err != nil {
		return err
	}
	if f.ID == "" {
		f.ID = newID()
	}
	now := stamp(s.clock)
	f.CreatedAt = now
	f.UpdatedAt = now
	return s.followUps.Create(ctx, f)
}

func (s *followUpService) ListByProject(ctx context.Context, projectID string, pendingOnly bool) ([]*domain.FollowUp, error) {
	return s.followUps.ListByProject(ctx, projectID, pendingOnly)
}

// ListOverdue returns pending follow-ups due before today (UTC).
func (s *followUpService) ListOverdue(ctx context.Context) ([]*domain.FollowUp, error) {
	return s.followUps.ListPendingDueBefore(ctx, worklog.StartOfDay(stamp(s.clock)))
}

// Complete marks a follow-up done. Completing it again keeps the first time.
func (s *followUpService) Complete(ctx context.Context, id string) error {
	f, err := s.followUps.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if f.IsDone() {
		return nil
	}
	now := stamp(s.clock)
	f.DoneAt = &now
	f.UpdatedAt = now
	return s.followUps.Update(ctx, f)
}

func (s *followUpService) Delete(ctx context.Context, id string) error {
	return s.followUps.Delete(ctx, id)
}
