package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations in order.
func Migrate(database *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := database.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration list re-runs on every open.
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
		title       TEXT NOT NULL,
		location    TEXT NOT NULL DEFAULT '',
		acreage     REAL NOT NULL DEFAULT 0,
		objective   TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT 'active'
		            CHECK(status IN ('active','paused','done','archived')),
		archived_at TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		notes       TEXT NOT NULL DEFAULT '',
		order_index INTEGER NOT NULL DEFAULT 0,
		status      TEXT NOT NULL DEFAULT 'todo'
		            CHECK(status IN ('todo','in_progress','done')),
		due_on      TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,

	`CREATE TABLE IF NOT EXISTS funding_programs (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS funding_practices (
		id                   TEXT PRIMARY KEY,
		program_id           TEXT NOT NULL REFERENCES funding_programs(id) ON DELETE CASCADE,
		code                 TEXT NOT NULL DEFAULT '',
		title                TEXT NOT NULL DEFAULT '',
		default_payment_rate REAL,
		unit                 TEXT NOT NULL DEFAULT '',
		created_at           TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_funding_practices_program ON funding_practices(program_id)`,

	`CREATE TABLE IF NOT EXISTS project_practices (
		id            TEXT PRIMARY KEY,
		project_id    TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		practice_id   TEXT REFERENCES funding_practices(id) ON DELETE SET NULL,
		custom_title  TEXT NOT NULL DEFAULT '',
		quantity      REAL,
		unit          TEXT NOT NULL DEFAULT '',
		est_rate      REAL,
		status        TEXT NOT NULL DEFAULT 'researching'
		              CHECK(status IN ('researching','applied','contracted','completed')),
		deadline      TEXT,
		notes         TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_project_practices_project ON project_practices(project_id)`,

	`CREATE TABLE IF NOT EXISTS files (
		id           TEXT PRIMARY KEY,
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		label        TEXT NOT NULL DEFAULT '',
		blob_key     TEXT NOT NULL,
		content_type TEXT NOT NULL DEFAULT '',
		size_bytes   INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_files_project ON files(project_id)`,
}
