package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/projectdesk/internal/domain"
	"github.com/alexanderramin/projectdesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCascadeDelete_ProjectToChildren verifies that deleting a project removes
// its tasks, notes, follow-ups, sessions and events.
func TestCascadeDelete_ProjectToChildren(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj, member := seedPair(t, db)

	task := testutil.NewTestTask(proj.ID, "Child task")
	require.NoError(t, NewSQLiteTaskRepo(db).Create(ctx, task))
	note := testutil.NewTestNote(proj.ID, domain.NoteGeneral, "child note")
	require.NoError(t, NewSQLiteNoteRepo(db).Create(ctx, note))
	fu := testutil.NewTestFollowUp(proj.ID, "child follow-up", time.Now().UTC())
	require.NoError(t, NewSQLiteFollowUpRepo(db).Create(ctx, fu))
	require.NoError(t, NewSQLiteWorkSessionRepo(db).Create(ctx, testutil.NewTestWorkSession(proj.ID, member.ID)))
	require.NoError(t, NewSQLiteWorkEventRepo(db).Append(ctx,
		newEvent(proj.ID, member.ID, domain.EventStart, time.Now().UTC(), "")))

	require.NoError(t, NewSQLiteProjectRepo(db).Delete(ctx, proj.ID))

	_, err := NewSQLiteTaskRepo(db).GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, ErrNotFound, "task should be cascade-deleted")
	_, err = NewSQLiteNoteRepo(db).GetByID(ctx, note.ID)
	assert.ErrorIs(t, err, ErrNotFound, "note should be cascade-deleted")
	_, err = NewSQLiteFollowUpRepo(db).GetByID(ctx, fu.ID)
	assert.ErrorIs(t, err, ErrNotFound, "follow-up should be cascade-deleted")
	_, err = NewSQLiteWorkSessionRepo(db).Get(ctx, proj.ID, member.ID)
	assert.ErrorIs(t, err, ErrNotFound, "session should be cascade-deleted")

	events, err := NewSQLiteWorkEventRepo(db).ListByProject(ctx, proj.ID, EventWindow{})
	require.NoError(t, err)
	assert.Empty(t, events)
}

// TestCascadeDelete_MemberToSessions verifies members -> work_sessions cascade.
func TestCascadeDelete_MemberToSessions(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj, member := seedPair(t, db)

	require.NoError(t, NewSQLiteWorkSessionRepo(db).Create(ctx, testutil.NewTestWorkSession(proj.ID, member.ID)))
	require.NoError(t, NewSQLiteMemberRepo(db).Delete(ctx, member.ID))

	sessions, err := NewSQLiteWorkSessionRepo(db).ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}
