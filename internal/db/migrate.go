package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations is the ordered list of schema statements. Statements are written
// to be re-runnable: CREATE ... IF NOT EXISTS, and ALTER TABLE errors for
// existing columns are tolerated by Migrate.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'active'
		           CHECK(status IN ('active','paused','done','archived')),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id                  TEXT PRIMARY KEY,
		project_id          TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		parent_task_id      TEXT REFERENCES tasks(id) ON DELETE SET NULL,
		type                TEXT NOT NULL CHECK(type IN ('task','group')),
		name                TEXT NOT NULL,
		category            TEXT NOT NULL DEFAULT '',
		subcategory         TEXT NOT NULL DEFAULT '',
		subsubcategory      TEXT NOT NULL DEFAULT '',
		plan_start_date     TEXT NOT NULL,
		plan_end_date       TEXT NOT NULL,
		actual_start_date   TEXT,
		actual_end_date     TEXT,
		progress            INTEGER NOT NULL DEFAULT 0,
		progress_updated_at TEXT,
		progress_note       TEXT NOT NULL DEFAULT '',
		status              TEXT NOT NULL DEFAULT 'not_started'
		                    CHECK(status IN ('not_started','in_progress','completed')),
		predecessors        TEXT NOT NULL DEFAULT '',
		display_order       INTEGER NOT NULL DEFAULT 0,
		color               TEXT NOT NULL DEFAULT '',
		cost                REAL NOT NULL DEFAULT 0,
		quantity            REAL NOT NULL DEFAULT 0,
		responsible         TEXT NOT NULL DEFAULT '',
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_parent ON tasks(parent_task_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_order ON tasks(project_id, display_order)`,

	`CREATE TABLE IF NOT EXISTS employees (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		team       TEXT NOT NULL DEFAULT '',
		color      TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS members (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		role       TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
}

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
