package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/projectdesk/internal/domain"
	"github.com/google/uuid"
)

var testShortIDCounter atomic.Int64

// Project options
type ProjectOption func(*domain.Project)

func WithTargetDate(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.TargetDate = &d
	}
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithShortID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ShortID = id
	}
}

func WithClient(name string) ProjectOption {
	return func(p *domain.Project) {
		p.ClientName = name
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID:         uuid.New().String(),
		ShortID:    defaultShortID(name),
		Name:       name,
		ClientName: "Acme",
		StartDate:  now.AddDate(0, -1, 0),
		Status:     domain.ProjectActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Member options
type MemberOption func(*domain.Member)

func WithEmail(email string) MemberOption {
	return func(m *domain.Member) {
		m.Email = email
	}
}

func WithRole(role string) MemberOption {
	return func(m *domain.Member) {
		m.Role = role
	}
}

func Inactive() MemberOption {
	return func(m *domain.Member) {
		m.Active = false
	}
}

func NewTestMember(name string, opts ...MemberOption) *domain.Member {
	now := time.Now().UTC().Truncate(time.Second)
	m := &domain.Member{
		ID:        uuid.New().String(),
		Name:      name,
		Role:      "developer",
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithPriority(p domain.TaskPriority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithAssignee(memberID string) TaskOption {
	return func(t *domain.Task) {
		t.AssigneeID = &memberID
	}
}

func WithTaskDueDate(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.DueDate = &d
	}
}

func NewTestTask(projectID, title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC().Truncate(time.Second)
	t := &domain.Task{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Title:     title,
		Status:    domain.TaskTodo,
		Priority:  domain.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestNote(projectID string, kind domain.NoteKind, body string) *domain.Note {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Note{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Kind:      kind,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func NewTestFollowUp(projectID, summary string, due time.Time) *domain.FollowUp {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.FollowUp{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Summary:   summary,
		DueDate:   due,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestWorkSession returns a not-started session row for the pair.
func NewTestWorkSession(projectID, memberID string) *domain.WorkSession {
	return domain.NewWorkSession(projectID, memberID, time.Now().UTC().Truncate(time.Second))
}
