package service

import (
	"context"
	"strings"

	"github.com/alexanderramin/projectdesk/internal/clock"
	"github.com/alexanderramin/projectdesk/internal/domain"
	"github.com/alexanderramin/projectdesk/internal/repository"
)

type noteService struct {
	notes repository.NoteRepo
	clock clock.Clock
}

func NewNoteService(notes repository.NoteRepo, clk clock.Clock) NoteService {
	return &noteService{notes: notes, clock: clk}
}

func (s *noteService) Add(ctx context.Context, n *domain.Note) error {
	n.Body = strings.TrimSpace(n.Body)
	if n.Kind == "" {
		n.Kind = domain.NoteGeneral
	}
	if err := n.Validate(); err != nil {
		return err
	}
	if n.ID == "" {
		n.ID = newID()
	}
	now := stamp(s.clock)
	n.CreatedAt = now
	n.UpdatedAt = now
	return s.notes.Create(ctx, n)
}

func (s *noteService) ListByProject(ctx context.Context, projectID string, kind domain.NoteKind) ([]*domain.Note, error) {
	return s.notes.ListByProject(ctx, projectID, kind)
}

func (s *noteService) Delete(ctx context.Context, id string) error {
	if _, err := s.notes.GetByID(ctx, id); err != nil {
		return err
	}
	return s.notes.Delete(ctx, id)
}
