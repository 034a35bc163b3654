package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		short_id    TEXT NOT NULL DEFAULT '',
		name        TEXT NOT NULL,
		client_name TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		start_date  TEXT NOT NULL,
		target_date TEXT,
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','paused','done','archived')),
		archived_at TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_short_id ON projects(short_id) WHERE short_id != ''`,

	`CREATE TABLE IF NOT EXISTS members (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL DEFAULT '',
		role       TEXT NOT NULL DEFAULT '',
		active     INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_members_email ON members(email) WHERE email != ''`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id           TEXT PRIMARY KEY,
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL DEFAULT 'todo'
		             CHECK(status IN ('todo','in_progress','done','archived')),
		priority     TEXT NOT NULL DEFAULT 'medium'
		             CHECK(priority IN ('low','medium','high')),
		assignee_id  TEXT REFERENCES members(id) ON DELETE SET NULL,
		due_date     TEXT,
		completed_at TEXT,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,

	`CREATE TABLE IF NOT EXISTS notes (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		author_id  TEXT REFERENCES members(id) ON DELETE SET NULL,
		kind       TEXT NOT NULL DEFAULT 'note'
		           CHECK(kind IN ('note','requirement')),
		body       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notes_project ON notes(project_id)`,

	`CREATE TABLE IF NOT EXISTS follow_ups (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		owner_id   TEXT REFERENCES members(id) ON DELETE SET NULL,
		summary    TEXT NOT NULL,
		due_date   TEXT NOT NULL,
		done_at    TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_follow_ups_project ON follow_ups(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_follow_ups_due ON follow_ups(due_date)`,

	// One confirmed-state row per (project, member). Writers compare-and-swap
	// on version so two clients cannot interleave transitions.
	`CREATE TABLE IF NOT EXISTS work_sessions (
		project_id          TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		member_id           TEXT NOT NULL REFERENCES members(id) ON DELETE CASCADE,
		status              TEXT NOT NULL DEFAULT 'not_started'
		                    CHECK(status IN ('not_started','start','hold','end')),
		running_since       TEXT,
		accumulated_seconds INTEGER NOT NULL DEFAULT 0 CHECK(accumulated_seconds >= 0),
		cycle               INTEGER NOT NULL DEFAULT 0,
		version             INTEGER NOT NULL DEFAULT 0,
		updated_at          TEXT NOT NULL,
		PRIMARY KEY (project_id, member_id),
		CHECK((status = 'start') = (running_since IS NOT NULL))
	)`,
	`CREATE INDEX IF NOT EXISTS idx_work_sessions_member ON work_sessions(member_id)`,

	// Append-only. Events outlive the session row so history survives unassign.
	`CREATE TABLE IF NOT EXISTS work_events (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		member_id   TEXT NOT NULL REFERENCES members(id) ON DELETE CASCADE,
		cycle       INTEGER NOT NULL,
		event_type  TEXT NOT NULL CHECK(event_type IN ('start','hold','resume','end')),
		occurred_at TEXT NOT NULL,
		note        TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_work_events_pair ON work_events(project_id, member_id, occurred_at)`,
	`CREATE INDEX IF NOT EXISTS idx_work_events_occurred ON work_events(occurred_at)`,
}
