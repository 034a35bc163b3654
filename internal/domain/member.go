package domain

import (
	"fmt"
	"strings"
	"time"
)

// Member is a staff member who can be assigned to projects and track work time.
type Member struct {
	ID        string
	Name      string
	Email     string
	Role      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the fields required before a member is stored.
func (m *Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("member name is required")
	}
	if m.Email != "" && !strings.Contains(m.Email, "@") {
		return fmt.Errorf("member email %q is not a valid address", m.Email)
	}
	return nil
}
