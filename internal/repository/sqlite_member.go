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

// SQLiteMemberRepo implements MemberRepo using a SQLite database.
type SQLiteMemberRepo struct {
	db db.DBTX
}

// NewSQLiteMemberRepo creates a new SQLiteMemberRepo.
func NewSQLiteMemberRepo(conn db.DBTX) *SQLiteMemberRepo {
	return &SQLiteMemberRepo{db: conn}
}

const memberColumns = `id, name, email, role, active, created_at, updated_at`

func (r *SQLiteMemberRepo) Create(ctx context.Context, m *domain.Member) error {
	query := `INSERT INTO members (` + memberColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Name, m.Email, m.Role, boolToInt(m.Active),
		formatTime(m.CreatedAt), formatTime(m.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting member: %w", err)
	}
	return nil
}

func (r *SQLiteMemberRepo) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = ?`
	return r.scanMember(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteMemberRepo) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE LOWER(email) = LOWER(?) AND email != ''`
	return r.scanMember(r.db.QueryRowContext(ctx, query, email))
}

func (r *SQLiteMemberRepo) List(ctx context.Context, includeInactive bool) ([]*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members`
	if !includeInactive {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	defer rows.Close()

	var members []*domain.Member
	for rows.Next() {
		m, err := r.scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating members: %w", err)
	}
	return members, nil
}

func (r *SQLiteMemberRepo) Update(ctx context.Context, m *domain.Member) error {
	query := `UPDATE members SET name = ?, email = ?, role = ?, active = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		m.Name, m.Email, m.Role, boolToInt(m.Active), formatTime(m.UpdatedAt), m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating member: %w", err)
	}
	return expectOneRow(res, "member")
}

func (r *SQLiteMemberRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting member: %w", err)
	}
	return nil
}

func (r *SQLiteMemberRepo) scanMember(row rowScanner) (*domain.Member, error) {
	var m domain.Member
	var active int
	var createdAtStr, updatedAtStr string

	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Role, &active, &createdAtStr, &updatedAtStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("member: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning member: %w", err)
	}
	m.Active = intToBool(active)

	var parseErr error
	m.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	m.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &m, nil
}
