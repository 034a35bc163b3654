package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/projectdesk/internal/clock"
	"github.com/alexanderramin/projectdesk/internal/db"
	"github.com/alexanderramin/projectdesk/internal/domain"
	"github.com/alexanderramin/projectdesk/internal/repository"
	"github.com/alexanderramin/projectdesk/internal/testutil"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type testRepos struct {
	database  *sql.DB
	uow       db.UnitOfWork
	projects  repository.ProjectRepo
	members   repository.MemberRepo
	tasks     repository.TaskRepo
	notes     repository.NoteRepo
	followUps repository.FollowUpRepo
	sessions  repository.WorkSessionRepo
	events    repository.WorkEventRepo
}

func setupRepos(t *testing.T) testRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testRepos{
		database:  database,
		uow:       testutil.NewTestUoW(database),
		projects:  repository.NewSQLiteProjectRepo(database),
		members:   repository.NewSQLiteMemberRepo(database),
		tasks:     repository.NewSQLiteTaskRepo(database),
		notes:     repository.NewSQLiteNoteRepo(database),
		followUps: repository.NewSQLiteFollowUpRepo(database),
		sessions:  repository.NewSQLiteWorkSessionRepo(database),
		events:    repository.NewSQLiteWorkEventRepo(database),
	}
}

func newWorkService(r testRepos, clk clock.Clock) WorkService {
	return NewWorkService(r.projects, r.members, r.sessions, r.uow, clk)
}

// seedAssignment stores a project and member and assigns them.
func seedAssignment(t *testing.T, r testRepos, clk clock.Clock) (*domain.Project, *domain.Member) {
	t.Helper()
	ctx := context.Background()
	proj := testutil.NewTestProject("Website")
	require.NoError(t, r.projects.Create(ctx, proj))
	member := testutil.NewTestMember("Robin")
	require.NoError(t, r.members.Create(ctx, member))
	_, err := newWorkService(r, clk).Assign(ctx, proj.ID, member.ID)
	require.NoError(t, err)
	return proj, member
}
