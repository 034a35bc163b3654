package service

import (
	"context"
	"strings"

	"github.com/alexanderramin/projectdesk/internal/clock"
	"github.com/alexanderramin/projectdesk/internal/domain"
	"github.com/alexanderramin/projectdesk/internal/repository"
)

type taskService struct {
	tasks repository.TaskRepo
	clock clock.Clock
}

func NewTaskService(tasks repository.TaskRepo, clk clock.Clock) TaskService {
	return &taskService{tasks: tasks, clock: clk}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	t.Title = strings.TrimSpace(t.Title)
	if t.Status == "" {
		t.Status = domain.TaskTodo
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if err := t.Validate(); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = newID()
	}
	now := stamp(s.clock)
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.tasks.Create(ctx, t)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) ListByProject(ctx context.Context, projectID string, filter repository.TaskFilter) ([]*domain.Task, error) {
	return s.tasks.ListByProject(ctx, projectID, filter)
}

func (s *taskService) Update(ctx context.Context, t *domain.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	t.UpdatedAt = stamp(s.clock)
	return s.tasks.Update(ctx, t)
}

func (s *taskService) MarkDone(ctx context.Context, id string) error {
	return s.mutate(ctx, id, func(t *domain.Task) {
		t.MarkDone(stamp(s.clock))
	})
}

func (s *taskService) Reopen(ctx context.Context, id string) error {
	return s.mutate(ctx, id, func(t *domain.Task) {
		t.Reopen(stamp(s.clock))
	})
}

func (s *taskService) Archive(ctx context.Context, id string) error {
	return s.mutate(ctx, id, func(t *domain.Task) {
		t.Status = domain.TaskArchived
		t.UpdatedAt = stamp(s.clock)
	})
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

func (s *taskService) mutate(ctx context.Context, id string, fn func(*domain.Task)) error {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	fn(t)
	return s.tasks.Update(ctx, t)
}
