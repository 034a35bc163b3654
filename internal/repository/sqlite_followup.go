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

// SQLiteFollowUpRepo implements FollowUpRepo using a SQLite database.
type SQLiteFollowUpRepo struct {
	db db.DBTX
}

// NewSQLiteFollowUpRepo creates a new SQLiteFollowUpRepo.
func NewSQLiteFollowUpRepo(conn db.DBTX) *SQLiteFollowUpRepo {
	return &SQLiteFollowUpRepo{db: conn}
}

const followUpColumns = `id, project_id, owner_id, summary, due_date, done_at, created_at, updated_at`

func (r *SQLiteFollowUpRepo) Create(ctx context.Context, f *domain.FollowUp) error {
	query := `INSERT INTO follow_ups (` + followUpColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		f.ID,
		f.ProjectID,
		nullableString(f.OwnerID),
		f.Summary,
		f.DueDate.Format(dateLayout),
		nullableTimeToString(f.DoneAt, time.RFC3339),
		formatTime(f.CreatedAt),
		formatTime(f.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting follow-up: %w", err)
	}
	return nil
}

func (r *SQLiteFollowUpRepo) GetByID(ctx context.Context, id string) (*domain.FollowUp, error) {
	query := `SELECT ` + followUpColumns + ` FROM follow_ups WHERE id = ?`
	return r.scanFollowUp(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteFollowUpRepo) ListByProject(ctx context.Context, projectID string, pendingOnly bool) ([]*domain.FollowUp, error) {
	query := `SELECT ` + followUpColumns + ` FROM follow_ups WHERE project_id = ?`
	if pendingOnly {
		query += ` AND done_at IS NULL`
	}
	query += ` ORDER BY due_date, created_at`
	return r.list(ctx, query, projectID)
}

// ListPendingDueBefore returns open follow-ups across all projects whose due
// date is strictly before the given day.
func (r *SQLiteFollowUpRepo) ListPendingDueBefore(ctx context.Context, before time.Time) ([]*domain.FollowUp, error) {
	query := `SELECT ` + followUpColumns + ` FROM follow_ups
		WHERE done_at IS NULL AND due_date < ?
		ORDER BY due_date, created_at`
	return r.list(ctx, query, before.Format(dateLayout))
}

func (r *SQLiteFollowUpRepo) Update(ctx context.Context, f *domain.FollowUp) error {
	query := `UPDATE follow_ups SET owner_id = ?, summary = ?, due_date = ?, done_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableString(f.OwnerID),
		f.Summary,
		f.DueDate.Format(dateLayout),
		nullableTimeToString(f.DoneAt, time.RFC3339),
		formatTime(f.UpdatedAt),
		f.ID,
	)
	if err != nil {
		return fmt.Errorf("updating follow-up: %w", err)
	}
	return expectOneRow(res, "follow-up")
}

func (r *SQLiteFollowUpRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM follow_ups WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting follow-up: %w", err)
	}
	return nil
}

func (r *SQLiteFollowUpRepo) list(ctx context.Context, query string, args ...interface{}) ([]*domain.FollowUp, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing follow-ups: %w", err)
	}
	defer rows.Close()

	var out []*domain.FollowUp
	for rows.Next() {
		f, err := r.scanFollowUp(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating follow-ups: %w", err)
	}
	return out, nil
}

func (r *SQLiteFollowUpRepo) scanFollowUp(row rowScanner) (*domain.FollowUp, error) {
	var f domain.FollowUp
	var ownerID, doneAtStr sql.NullString
	var dueStr, createdAtStr, updatedAtStr string

	err := row.Scan(&f.ID, &f.ProjectID, &ownerID, &f.Summary, &dueStr, &doneAtStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("follow-up: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning follow-up: %w", err)
	}
	f.OwnerID = parseNullableString(ownerID)
	f.DoneAt = parseNullableTime(doneAtStr, time.RFC3339)

	var parseErr error
	f.DueDate, parseErr = time.Parse(dateLayout, dueStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing due_date: %w", parseErr)
	}
	f.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	f.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &f, nil
}
