package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/projectdesk/internal/clock"
	"github.com/alexanderramin/projectdesk/internal/contract"
	"github.com/alexanderramin/projectdesk/internal/domain"
	"github.com/alexanderramin/projectdesk/internal/repository"
	"github.com/alexanderramin/projectdesk/internal/worklog"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxHistoryLoaders bounds the per-member event loads run in parallel.
const maxHistoryLoaders = 4

type historyService struct {
	projects repository.ProjectRepo
	events   repository.WorkEventRepo
	clock    clock.Clock
	location *time.Location
	logger   *zap.Logger
	observer UseCaseObserver
}

// NewHistoryService builds the work history reader. Days are cut at midnight
// in loc; a nil loc means UTC.
func NewHistoryService(
	projects repository.ProjectRepo,
	events repository.WorkEventRepo,
	clk clock.Clock,
	loc *time.Location,
	logger *zap.Logger,
	observers ...UseCaseObserver,
) HistoryService {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &historyService{
		projects: projects,
		events:   events,
		clock:    clk,
		location: loc,
		logger:   logger.Named("history"),
		observer: useCaseObserverOrNoop(observers),
	}
}

type memberLog struct {
	segments  []domain.Segment
	anomalies []worklog.Anomaly
}

func (s *historyService) WorkHistory(ctx context.Context, req contract.HistoryRequest) (result *contract.WorkHistory, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": req.ProjectID}
	defer func() {
		observe(ctx, s.observer, "work-history", startedAt, err, fields)
	}()

	if req.ProjectID == "" {
		return nil, fmt.Errorf("project is required")
	}
	if _, err = s.projects.GetByID(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if req.Now != nil {
		now = *req.Now
	}
	from := req.From
	if from == nil && req.Days > 0 {
		f := worklog.StartOfDay(now.In(s.location)).AddDate(0, 0, -(req.Days - 1))
		from = &f
	}
	until := now
	if req.To != nil && req.To.Before(now) {
		until = *req.To
	}

	memberIDs := []string{req.MemberID}
	if req.MemberID == "" {
		memberIDs, err = s.events.ListMembersWithEvents(ctx, req.ProjectID)
		if err != nil {
			return nil, err
		}
	}
	fields["members"] = len(memberIDs)

	// Segments are selected by start time, so events are loaded without a
	// lower bound; an earlier start must still pair with a later close.
	window := repository.EventWindow{To: req.To}
	logs := make([]memberLog, len(memberIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxHistoryLoaders)
	for i, memberID := range memberIDs {
		g.Go(func() error {
			events, err := s.events.ListByPair(gctx, req.ProjectID, memberID, window)
			if err != nil {
				return fmt.Errorf("loading events for member %s: %w", memberID, err)
			}
			segments, anomalies := worklog.Reconstruct(events)
			logs[i] = memberLog{segments: segments, anomalies: anomalies}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	var segments []domain.Segment
	var anomalies []worklog.Anomaly
	for _, l := range logs {
		for _, seg := range l.segments {
			if from != nil && seg.StartAt.Before(*from) {
				continue
			}
			segments = append(segments, seg)
		}
		anomalies = append(anomalies, l.anomalies...)
	}
	for _, a := range anomalies {
		s.logger.Warn("work log anomaly",
			zap.String("project_id", req.ProjectID),
			zap.String("kind", string(a.Kind)),
			zap.String("event_id", a.EventID),
			zap.String("member_id", a.MemberID),
			zap.String("detail", a.Detail),
		)
	}

	days := worklog.GroupByDay(segments, s.location, until)
	var total int64
	for _, d := range days {
		total += d.TotalSeconds
	}
	fields["days"] = len(days)
	fields["anomalies"] = len(anomalies)

	return &contract.WorkHistory{
		ProjectID:    req.ProjectID,
		GeneratedAt:  now,
		Location:     s.location,
		Days:         days,
		MemberTotals: worklog.TotalsByMember(segments, until),
		TotalSeconds: total,
		Anomalies:    anomalies,
	}, nil
}
