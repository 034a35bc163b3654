package domain

import (
	"fmt"
	"strings"
	"time"
)

// Note is a free-text project note. Requirements are notes of kind NoteRequirement.
type Note struct {
	ID        string
	ProjectID string
	AuthorID  *string
	Kind      NoteKind
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (n *Note) Validate() error {
	if n.ProjectID == "" {
		return fmt.Errorf("note project is required")
	}
	if strings.TrimSpace(n.Body) == "" {
		return fmt.Errorf("note body is required")
	}
	switch n.Kind {
	case NoteGeneral, NoteRequirement:
		return nil
	default:
		return fmt.Errorf("note kind %q must be note or requirement", n.Kind)
	}
}
