package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/projectdesk/internal/clock"
	"github.com/alexanderramin/projectdesk/internal/domain"
	"github.com/alexanderramin/projectdesk/internal/repository"
	"github.com/alexanderramin/projectdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_CreateDefaults(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Tasks")
	require.NoError(t, r.projects.Create(ctx, proj))
	svc := NewTaskService(r.tasks, clock.NewManual(t0))

	task := &domain.Task{ProjectID: proj.ID, Title: "  Draft homepage  "}
	require.NoError(t, svc.Create(ctx, task))
	assert.Equal(t, "Draft homepage", task.Title)
	assert.Equal(t, domain.TaskTodo, task.Status)
	assert.Equal(t, domain.PriorityMedium, task.Priority)

	assert.Error(t, svc.Create(ctx, &domain.Task{ProjectID: proj.ID}), "title required")
	assert.Error(t, svc.Create(ctx, &domain.Task{Title: "orphan"}), "project required")
	assert.Error(t, svc.Create(ctx, &domain.Task{ProjectID: proj.ID, Title: "x", Priority: "urgent"}))
}

func TestTaskService_DoneReopenArchive(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Tasks")
	require.NoError(t, r.projects.Create(ctx, proj))
	clk := clock.NewManual(t0)
	svc := NewTaskService(r.tasks, clk)

	task := &domain.Task{ProjectID: proj.ID, Title: "Ship"}
	require.NoError(t, svc.Create(ctx, task))

	clk.Advance(time.Hour)
	require.NoError(t, svc.MarkDone(ctx, task.ID))
	got, err := svc.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskDone, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, t0.Add(time.Hour), *got.CompletedAt)

	clk.Advance(time.Hour)
	require.NoError(t, svc.MarkDone(ctx, task.ID))
	got, err = svc.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, t0.Add(time.Hour), *got.CompletedAt, "second done keeps first completion time")

	require.NoError(t, svc.Reopen(ctx, task.ID))
	got, err = svc.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskTodo, got.Status)
	assert.Nil(t, got.CompletedAt)

	require.NoError(t, svc.Archive(ctx, task.ID))
	visible, err := svc.ListByProject(ctx, proj.ID, repository.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, visible)
}

func TestTaskService_MarkDone_NotFound(t *testing.T) {
	r := setupRepos(t)
	svc := NewTaskService(r.tasks, clock.NewManual(t0))
	assert.ErrorIs(t, svc.MarkDone(context.Background(), "missing"), repository.ErrNotFound)
}
