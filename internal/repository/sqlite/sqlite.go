// Package sqlite implements the repository interfaces with SQLite as the
// relational system of record.
//
// WHY SQLITE?
// It is an embedded database — a single file, no server to install or
// manage. That matches this app's single-process deployment model, and the
// ":memory:" DSN gives tests a fresh isolated database for free.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which means a C compiler at build time and
// painful cross-compilation. modernc.org/sqlite is a pure Go translation of
// SQLite — works everywhere Go works.
//
// CONTRACT:
// This backend must be indistinguishable from repository/memory through the
// repository interfaces. Identifier monotonicity comes from
// INTEGER PRIMARY KEY AUTOINCREMENT (SQLite then never reuses a rowid, even
// after deletes); ordering and filtering move into SQL; everything else —
// defaults, timestamps, partial-update merging — is handled the same way.
package sqlite

import (
	"database/sql"
	"fmt"

	// Blank import: the driver registers itself with database/sql under the
	// name "sqlite" in its init function.
	_ "modernc.org/sqlite"

	"github.com/sakif/hiredesk/internal/repository"
)

// Compile-time check that *DB provides every storage capability.
var _ repository.Store = (*DB)(nil)

// DB wraps a sql.DB connection pool and provides the repository methods.
type DB struct {
	conn *sql.DB
}

// New opens the database, applies pragmas, and runs migrations.
//
// dbPath examples:
//   - "data/hiredesk.db" → file-based, persistent
//   - ":memory:"         → in-memory, gone on close (tests)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// One connection, always. SQLite serializes writes anyway, and with
	// ":memory:" every pool connection would otherwise get its own separate
	// empty database — migrations on one, queries on another.
	conn.SetMaxOpenConns(1)

	// sql.Open only creates the pool; Ping forces a real connection so a bad
	// path or permissions problem surfaces here, not on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight — important for a
	// web server where listing and mutation requests overlap.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool, flushing the WAL.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps it idempotent.
//
// Deliberately NO foreign key from candidates.position_id to positions:
// deleting a position leaves dependent candidates' references dangling, and
// position_applied is free text that is never checked against positions.
// That divergence is part of the documented data model, so the schema must
// not "fix" it.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS positions (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			title       TEXT NOT NULL,
			department  TEXT NOT NULL,
			location    TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status      TEXT NOT NULL DEFAULT 'Active',
			created_at  DATETIME NOT NULL,
			updated_at  DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_positions_created_at ON positions(created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating positions table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS candidates (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			name             TEXT NOT NULL,
			email            TEXT NOT NULL,
			phone            TEXT NOT NULL,
			position_applied TEXT NOT NULL,
			resume_link      TEXT NOT NULL DEFAULT '',
			status           TEXT NOT NULL DEFAULT 'New',
			position_id      INTEGER,
			created_at       DATETIME NOT NULL,
			updated_at       DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_candidates_created_at ON candidates(created_at);
		CREATE INDEX IF NOT EXISTS idx_candidates_status ON candidates(status);
	`)
	if err != nil {
		return fmt.Errorf("creating candidates table: %w", err)
	}

	// users.email is unique only when present — the partial index skips empty
	// strings so many users may hide their email without colliding.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			identity   TEXT PRIMARY KEY,
			email      TEXT NOT NULL DEFAULT '',
			first_name TEXT NOT NULL DEFAULT '',
			last_name  TEXT NOT NULL DEFAULT '',
			avatar_url TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email
			ON users(email) WHERE email != '';
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	return nil
}
