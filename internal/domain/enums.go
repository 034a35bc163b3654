package domain

import "fmt"

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectPaused   ProjectStatus = "paused"
	ProjectDone     ProjectStatus = "done"
	ProjectArchived ProjectStatus = "archived"
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
	TaskArchived   TaskStatus = "archived"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// ValidTaskPriorities is the canonical set of accepted priority strings.
var ValidTaskPriorities = map[TaskPriority]bool{
	PriorityLow: true, PriorityMedium: true, PriorityHigh: true,
}

type NoteKind string

const (
	NoteGeneral     NoteKind = "note"
	NoteRequirement NoteKind = "requirement"
)

// WorkStatus is the derived state of a member's work session on a project.
type WorkStatus string

const (
	WorkNotStarted WorkStatus = "not_started"
	WorkRunning    WorkStatus = "start"
	WorkOnHold     WorkStatus = "hold"
	WorkEnded      WorkStatus = "end"
)

// WorkStatuses lists every WorkStatus value. Consumers that key labels or
// styles on status are tested against this list.
func WorkStatuses() []WorkStatus {
	return []WorkStatus{WorkNotStarted, WorkRunning, WorkOnHold, WorkEnded}
}

// Valid reports whether s is one of the known statuses.
func (s WorkStatus) Valid() bool {
	switch s {
	case WorkNotStarted, WorkRunning, WorkOnHold, WorkEnded:
		return true
	}
	return false
}

// WorkEventType is the kind of an appended work event.
type WorkEventType string

const (
	EventStart  WorkEventType = "start"
	EventHold   WorkEventType = "hold"
	EventResume WorkEventType = "resume"
	EventEnd    WorkEventType = "end"
)

// ParseWorkEventType converts user input into a WorkEventType.
func ParseWorkEventType(s string) (WorkEventType, error) {
	switch WorkEventType(s) {
	case EventStart, EventHold, EventResume, EventEnd:
		return WorkEventType(s), nil
	}
	return "", fmt.Errorf("unknown work event %q (expected start, hold, resume or end)", s)
}

// opensSegment reports whether the event begins a running segment.
func (e WorkEventType) opensSegment() bool {
	return e == EventStart || e == EventResume
}
