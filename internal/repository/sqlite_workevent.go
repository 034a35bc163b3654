package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/projectdesk/internal/db"
	"github.com/alexanderramin/projectdesk/internal/domain"
)

// SQLiteWorkEventRepo implements WorkEventRepo using a SQLite database.
// Events are only ever inserted.
type SQLiteWorkEventRepo struct {
	db db.DBTX
}

// NewSQLiteWorkEventRepo creates a new SQLiteWorkEventRepo.
func NewSQLiteWorkEventRepo(conn db.DBTX) *SQLiteWorkEventRepo {
	return &SQLiteWorkEventRepo{db: conn}
}

const workEventColumns = `id, project_id, member_id, cycle, event_type, occurred_at, note, created_at`

func (r *SQLiteWorkEventRepo) Append(ctx context.Context, e *domain.WorkEvent) error {
	query := `INSERT INTO work_events (` + workEventColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.ProjectID,
		e.MemberID,
		e.Cycle,
		string(e.Type),
		formatTime(e.OccurredAt),
		e.Note,
		formatTime(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("appending work event: %w", err)
	}
	return nil
}

// ListByPair returns one member's events on a project in append order.
func (r *SQLiteWorkEventRepo) ListByPair(ctx context.Context, projectID, memberID string, window EventWindow) ([]domain.WorkEvent, error) {
	query := `SELECT ` + workEventColumns + ` FROM work_events WHERE project_id = ? AND member_id = ?`
	args := []interface{}{projectID, memberID}
	query, args = applyWindow(query, args, window)
	return r.list(ctx, query, args...)
}

// ListByProject returns every member's events on a project in append order.
func (r *SQLiteWorkEventRepo) ListByProject(ctx context.Context, projectID string, window EventWindow) ([]domain.WorkEvent, error) {
	query := `SELECT ` + workEventColumns + ` FROM work_events WHERE project_id = ?`
	args := []interface{}{projectID}
	query, args = applyWindow(query, args, window)
	return r.list(ctx, query, args...)
}

// ListMembersWithEvents returns the distinct member IDs that have logged work
// on a project, including members who have since been unassigned.
func (r *SQLiteWorkEventRepo) ListMembersWithEvents(ctx context.Context, projectID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT member_id FROM work_events WHERE project_id = ? ORDER BY member_id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing event members: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning event member: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating event members: %w", err)
	}
	return ids, nil
}

func applyWindow(query string, args []interface{}, w EventWindow) (string, []interface{}) {
	if w.From != nil {
		query += ` AND occurred_at >= ?`
		args = append(args, formatTime(*w.From))
	}
	if w.To != nil {
		query += ` AND occurred_at < ?`
		args = append(args, formatTime(*w.To))
	}
	return query + ` ORDER BY occurred_at, rowid`, args
}

func (r *SQLiteWorkEventRepo) list(ctx context.Context, query string, args ...interface{}) ([]domain.WorkEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing work events: %w", err)
	}
	defer rows.Close()

	var out []domain.WorkEvent
	for rows.Next() {
		var e domain.WorkEvent
		var typeStr, occurredStr, createdStr string
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.MemberID, &e.Cycle, &typeStr, &occurredStr, &e.Note, &createdStr); err != nil {
			return nil, fmt.Errorf("scanning work event: %w", err)
		}
		e.Type = domain.WorkEventType(typeStr)

		var parseErr error
		e.OccurredAt, parseErr = time.Parse(time.RFC3339, occurredStr)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing occurred_at: %w", parseErr)
		}
		e.CreatedAt, parseErr = time.Parse(time.RFC3339, createdStr)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing created_at: %w", parseErr)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work events: %w", err)
	}
	return out, nil
}
