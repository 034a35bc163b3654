package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/projectdesk/internal/clock"
	"github.com/alexanderramin/projectdesk/internal/domain"
	"github.com/alexanderramin/projectdesk/internal/repository"
	"github.com/alexanderramin/projectdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteService_AddAndFilter(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Notes")
	require.NoError(t, r.projects.Create(ctx, proj))
	svc := NewNoteService(r.notes, clock.NewManual(t0))

	require.NoError(t, svc.Add(ctx, &domain.Note{ProjectID: proj.ID, Body: "met the client"}))
	require.NoError(t, svc.Add(ctx, &domain.Note{ProjectID: proj.ID, Body: "needs SSO", Kind: domain.NoteRequirement}))
	assert.Error(t, svc.Add(ctx, &domain.Note{ProjectID: proj.ID, Body: "   "}))
	assert.Error(t, svc.Add(ctx, &domain.Note{ProjectID: proj.ID, Body: "x", Kind: "memo"}))

	reqs, err := svc.ListByProject(ctx, proj.ID, domain.NoteRequirement)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "needs SSO", reqs[0].Body)

	all, err := svc.ListByProject(ctx, proj.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestNoteService_DeleteMissing(t *testing.T) {
	r := setupRepos(t)
	svc := NewNoteService(r.notes, clock.NewManual(t0))
	assert.ErrorIs(t, svc.Delete(context.Background(), "missing"), repository.ErrNotFound)
}
