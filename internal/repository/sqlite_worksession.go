package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/projectdesk/internal/db"
	"github.com/alexanderramin/projectdesk/internal/domain"
)

// SQLiteWorkSessionRepo implements WorkSessionRepo using a SQLite database.
type SQLiteWorkSessionRepo struct {
	db db.DBTX
}

// NewSQLiteWorkSessionRepo creates a new SQLiteWorkSessionRepo.
func NewSQLiteWorkSessionRepo(conn db.DBTX) *SQLiteWorkSessionRepo {
	return &SQLiteWorkSessionRepo{db: conn}
}

const workSessionColumns = `project_id, member_id, status, running_since, accumulated_seconds, cycle, version, updated_at`

func (r *SQLiteWorkSessionRepo) Create(ctx context.Context, s *domain.WorkSession) error {
	query := `INSERT INTO work_sessions (` + workSessionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ProjectID,
		s.MemberID,
		string(s.Status),
		nullableTimeToString(s.RunningSince, time.RFC3339),
		s.AccumulatedSeconds,
		s.Cycle,
		s.Version,
		formatTime(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting work session: %w", err)
	}
	return nil
}

func (r *SQLiteWorkSessionRepo) Get(ctx context.Context, projectID, memberID string) (*domain.WorkSession, error) {
	query := `SELECT ` + workSessionColumns + ` FROM work_sessions WHERE project_id = ? AND member_id = ?`
	return r.scanWorkSession(r.db.QueryRowContext(ctx, query, projectID, memberID))
}

func (r *SQLiteWorkSessionRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.WorkSession, error) {
	query := `SELECT ws.project_id, ws.member_id, ws.status, ws.running_since, ws.accumulated_seconds,
			ws.cycle, ws.version, ws.updated_at
		FROM work_sessions ws
		JOIN members m ON m.id = ws.member_id
		WHERE ws.project_id = ?
		ORDER BY m.name`
	return r.list(ctx, query, projectID)
}

func (r *SQLiteWorkSessionRepo) ListByMember(ctx context.Context, memberID string) ([]*domain.WorkSession, error) {
	query := `SELECT ws.project_id, ws.member_id, ws.status, ws.running_since, ws.accumulated_seconds,
			ws.cycle, ws.version, ws.updated_at
		FROM work_sessions ws
		JOIN projects p ON p.id = ws.project_id
		WHERE ws.member_id = ?
		ORDER BY p.name`
	return r.list(ctx, query, memberID)
}

// CompareAndSwap persists s if the stored row is still at expectedVersion.
// On success s.Version is advanced to match the row.
func (r *SQLiteWorkSessionRepo) CompareAndSwap(ctx context.Context, s *domain.WorkSession, expectedVersion int) error {
	query := `UPDATE work_sessions
		SET status = ?, running_since = ?, accumulated_seconds = ?, cycle = ?,
			version = version + 1, updated_at = ?
		WHERE project_id = ? AND member_id = ? AND version = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(s.Status),
		nullableTimeToString(s.RunningSince, time.RFC3339),
		s.AccumulatedSeconds,
		s.Cycle,
		formatTime(s.UpdatedAt),
		s.ProjectID,
		s.MemberID,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("updating work session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking work session rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("work session %s/%s at version %d: %w",
			s.ProjectID, s.MemberID, expectedVersion, ErrConcurrentUpdate)
	}
	s.Version = expectedVersion + 1
	return nil
}

func (r *SQLiteWorkSessionRepo) Delete(ctx context.Context, projectID, memberID string) error {
	query := `DELETE FROM work_sessions WHERE project_id = ? AND member_id = ?`
	res, err := r.db.ExecContext(ctx, query, projectID, memberID)
	if err != nil {
		return fmt.Errorf("deleting work session: %w", err)
	}
	return expectOneRow(res, "work session")
}

func (r *SQLiteWorkSessionRepo) list(ctx context.Context, query string, args ...interface{}) ([]*domain.WorkSession, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing work sessions: %w", err)
	}
	defer rows.Close()

	var out []*domain.WorkSession
	for rows.Next() {
		s, err := r.scanWorkSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work sessions: %w", err)
	}
	return out, nil
}

func (r *SQLiteWorkSessionRepo) scanWorkSession(row rowScanner) (*domain.WorkSession, error) {
	var s domain.WorkSession
	var statusStr, updatedAtStr string
	var runningSince sql.NullString

	err := row.Scan(
		&s.ProjectID, &s.MemberID, &statusStr, &runningSince,
		&s.AccumulatedSeconds, &s.Cycle, &s.Version, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("work session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work session: %w", err)
	}

	s.Status = domain.WorkStatus(statusStr)
	if !s.Status.Valid() {
		return nil, fmt.Errorf("work session %s/%s has unknown status %q", s.ProjectID, s.MemberID, statusStr)
	}
	s.RunningSince = parseNullableTime(runningSince, time.RFC3339)

	var parseErr error
	s.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &s, nil
}
