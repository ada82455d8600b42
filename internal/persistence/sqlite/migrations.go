package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	stmts   []string
}

// migrations are applied in order inside one transaction each. Append only;
// never edit an applied entry.
var migrations = []migration{
	{
		version: 1,
		name:    "core tables",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS users (
				id TEXT PRIMARY KEY,
				email TEXT NOT NULL UNIQUE,
				display_name TEXT NOT NULL,
				password_hash TEXT NOT NULL,
				is_admin INTEGER NOT NULL DEFAULT 0,
				disabled INTEGER NOT NULL DEFAULT 0,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS classrooms (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				room_number TEXT,
				building TEXT,
				floor INTEGER NOT NULL DEFAULT 0,
				capacity INTEGER NOT NULL CHECK (capacity > 0),
				features TEXT,
				description TEXT,
				is_active INTEGER NOT NULL DEFAULT 1,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_classrooms_active_name
				ON classrooms(name) WHERE is_active = 1`,
			`CREATE TABLE IF NOT EXISTS terms (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				start_date TEXT NOT NULL,
				end_date TEXT NOT NULL,
				is_active INTEGER NOT NULL DEFAULT 1,
				description TEXT,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS reservations (
				id TEXT PRIMARY KEY,
				classroom_id TEXT NOT NULL REFERENCES classrooms(id),
				requester_id TEXT NOT NULL REFERENCES users(id),
				term_id TEXT NOT NULL REFERENCES terms(id),
				start_time TEXT NOT NULL,
				end_time TEXT NOT NULL,
				purpose TEXT NOT NULL,
				status TEXT NOT NULL CHECK (status IN ('pending','approved','rejected','cancelled')),
				rejection_reason TEXT,
				notes TEXT,
				is_recurring INTEGER NOT NULL DEFAULT 0,
				recurrence_pattern TEXT,
				recurrence_end_date TEXT,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_reservations_classroom_window
				ON reservations(classroom_id, start_time, end_time)`,
			`CREATE INDEX IF NOT EXISTS idx_reservations_requester
				ON reservations(requester_id)`,
		},
	},
	{
		version: 2,
		name:    "feedback and notifications",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS feedback (
				id TEXT PRIMARY KEY,
				author_id TEXT NOT NULL REFERENCES users(id),
				classroom_id TEXT NOT NULL REFERENCES classrooms(id),
				rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
				comment TEXT NOT NULL,
				created_at TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_feedback_classroom
				ON feedback(classroom_id)`,
			`CREATE TABLE IF NOT EXISTS notifications (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL REFERENCES users(id),
				title TEXT NOT NULL,
				message TEXT NOT NULL,
				type TEXT NOT NULL,
				reservation_id TEXT REFERENCES reservations(id),
				is_read INTEGER NOT NULL DEFAULT 0,
				created_at TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_notifications_user
				ON notifications(user_id, created_at)`,
		},
	},
	{
		version: 3,
		name:    "sessions",
		stmts: []string{
			`CREATE TABLE IF NOT EXISTS sessions (
				id TEXT PRIMARY KEY,
				user_id TEXT NOT NULL REFERENCES users(id),
				token TEXT NOT NULL UNIQUE,
				expires_at TEXT NOT NULL,
				created_at TEXT NOT NULL,
				updated_at TEXT NOT NULL,
				revoked_at TEXT
			)`,
			`CREATE INDEX IF NOT EXISTS idx_sessions_user
				ON sessions(user_id)`,
		},
	},
}

// Migrate brings the schema to the latest version, recording applied
// versions in schema_migrations.
func (cp *ConnectionPool) Migrate(ctx context.Context) error {
	if _, err := cp.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	applied := make(map[int]bool)
	rows, err := cp.db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return fmt.Errorf("read schema_migrations: %w", err)
	}
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			rows.Close()
			return err
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for _, m := range migrations {
		if applied[m.version] {
			continue
		}
		m := m
		if err := cp.WithTransaction(ctx, func(tx *sql.Tx) error {
			for _, stmt := range m.stmts {
				if _, err := tx.Exec(stmt); err != nil {
					return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
				}
			}
			_, err := tx.Exec(`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`, m.version, m.name)
			return err
		}); err != nil {
			return err
		}
	}
	return nil
}
