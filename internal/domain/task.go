package domain

import (
	"fmt"
	"strings"
	"time"
)

type Task struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	AssigneeID  *string
	DueDate     *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks required fields and enum values.
func (t *Task) Validate() error {
	if t.ProjectID == "" {
		return fmt.Errorf("task project is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("task title is required")
	}
	if t.Priority != "" && !ValidTaskPriorities[t.Priority] {
		return fmt.Errorf("task priority %q must be low, medium or high", t.Priority)
	}
	return nil
}

// MarkDone moves the task to done and stamps the completion time.
// Marking an already-done task keeps the original completion time.
func (t *Task) MarkDone(now time.Time) {
	if t.Status == TaskDone && t.CompletedAt != nil {
		return
	}
	t.Status = TaskDone
	t.CompletedAt = &now
	t.UpdatedAt = now
}

// Reopen moves a done task back to todo.
func (t *Task) Reopen(now time.Time) {
	t.Status = TaskTodo
	t.CompletedAt = nil
	t.UpdatedAt = now
}

// IsOverdue reports whether an unfinished task is past its due date.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == TaskDone || t.Status == TaskArchived {
		return false
	}
	return t.DueDate.Before(startOfDay(now))
}
