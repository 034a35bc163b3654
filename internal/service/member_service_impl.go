package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/projectdesk/internal/clock"
	"github.com/alexanderramin/projectdesk/internal/domain"
	"github.com/alexanderramin/projectdesk/internal/repository"
)

type memberService struct {
	members repository.MemberRepo
	clock   clock.Clock
}

func NewMemberService(members repository.MemberRepo, clk clock.Clock) MemberService {
	return &memberService{members: members, clock: clk}
}

func (s *memberService) Create(ctx context.Context, m *domain.Member) error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	if err := m.Validate(); err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = newID()
	}
	now := stamp(s.clock)
	m.Active = true
	m.CreatedAt = now
	m.UpdatedAt = now
	return s.members.Create(ctx, m)
}

func (s *memberService) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	return s.members.GetByID(ctx, id)
}

func (s *memberService) Resolve(ctx context.Context, ref string) (*domain.Member, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("member reference is required")
	}
	if looksLikeUUID(ref) {
		return s.members.GetByID(ctx, ref)
	}
	if strings.Contains(ref, "@") {
		return s.members.GetByEmail(ctx, ref)
	}

	all, err := s.members.List(ctx, true)
	if err != nil {
		return nil, err
	}
	var match *domain.Member
	for _, m := range all {
		if !strings.EqualFold(m.Name, ref) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("member name %q is ambiguous; use the email or ID", ref)
		}
		match = m
	}
	if match == nil {
		return nil, fmt.Errorf("no member named %q: %w", ref, repository.ErrNotFound)
	}
	return match, nil
}

func (s *memberService) List(ctx context.Context, includeInactive bool) ([]*domain.Member, error) {
	return s.members.List(ctx, includeInactive)
}

func (s *memberService) Update(ctx context.Context, m *domain.Member) error {
	if err := m.Validate(); err != nil {
		return err
	}
	m.UpdatedAt = stamp(s.clock)
	return s.members.Update(ctx, m)
}

func (s *memberService) Deactivate(ctx context.Context, id string) error {
	m, err := s.members.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !m.Active {
		return nil
	}
	m.Active = false
	m.UpdatedAt = stamp(s.clock)
	return s.members.Update(ctx, m)
}

func (s *memberService) Delete(ctx context.Context, id string) error {
	return s.members.Delete(ctx, id)
}
