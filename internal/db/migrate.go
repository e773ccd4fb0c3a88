package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
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
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'freelancer'
		              CHECK(role IN ('freelancer','client')),
		created_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS auth_sessions (
		id           TEXT PRIMARY KEY DEFAULT 'current',
		user_id      TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		signed_in_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS clients (
		id              TEXT PRIMARY KEY,
		owner_id        TEXT NOT NULL,
		name            TEXT NOT NULL,
		available_hours REAL NOT NULL DEFAULT 0 CHECK(available_hours >= 0),
		info            TEXT NOT NULL DEFAULT '',
		has_fee         INTEGER NOT NULL DEFAULT 0,
		created_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_clients_owner ON clients(owner_id)`,

	`CREATE TABLE IF NOT EXISTS sessions (
		id           TEXT PRIMARY KEY,
		owner_id     TEXT NOT NULL,
		client_id    TEXT NOT NULL REFERENCES clients(id),
		client_name  TEXT NOT NULL DEFAULT '',
		project_name TEXT NOT NULL,
		date         TEXT NOT NULL,
		hours        REAL NOT NULL CHECK(hours >= 0),
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sessions_owner ON sessions(owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_client ON sessions(client_id)`,

	// Added after the first release: hourly rate display and entry source.
	`ALTER TABLE clients ADD COLUMN hourly_rate REAL NOT NULL DEFAULT 0`,
	`ALTER TABLE sessions ADD COLUMN source TEXT NOT NULL DEFAULT 'manual'`,
	`ALTER TABLE clients ADD COLUMN category TEXT NOT NULL DEFAULT ''`,
}
