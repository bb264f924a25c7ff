// Package persistence provides SQLite-backed storage for worlds, citizens,
// memories, feed entries, and inbox items. The engine never touches this
// package; the boundary reads state, runs a tick, and applies the result
// batch here in one transaction.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// ErrUnavailable is returned by Store accessors when no database handle is
// configured. Checked once at the boundary instead of scattering nil checks.
var ErrUnavailable = errors.New("persistence: store unavailable")

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("persistence: not found")

// DB wraps a SQLite connection.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ready reports whether the handle is usable. Callers that may run without
// storage should check once and degrade, not probe per call.
func (db *DB) Ready() bool {
	return db != nil && db.conn != nil
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS worlds (
		id TEXT PRIMARY KEY,
		owner_user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		config_json TEXT NOT NULL,
		current_tick INTEGER NOT NULL,
		status TEXT NOT NULL,
		end_state TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS citizens (
		id TEXT PRIMARY KEY,
		world_id TEXT NOT NULL,
		name TEXT NOT NULL,
		attributes_json TEXT NOT NULL,
		state_json TEXT NOT NULL,
		consent_json TEXT NOT NULL,
		beliefs_json TEXT NOT NULL,
		last_divine_tick INTEGER NOT NULL,
		created_at_tick INTEGER NOT NULL,
		last_active_tick INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS memories (
		id TEXT PRIMARY KEY,
		citizen_id TEXT NOT NULL,
		content TEXT NOT NULL,
		type TEXT NOT NULL,
		is_divine INTEGER NOT NULL,
		importance REAL NOT NULL,
		emotional_weight REAL NOT NULL,
		decay_rate REAL NOT NULL,
		formed_at_tick INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS feed (
		id TEXT PRIMARY KEY,
		world_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL,
		citizen_id TEXT
	);

	CREATE TABLE IF NOT EXISTS inbox (
		id TEXT PRIMARY KEY,
		world_id TEXT NOT NULL,
		citizen_id TEXT NOT NULL,
		citizen_name TEXT NOT NULL,
		content TEXT NOT NULL,
		category TEXT NOT NULL,
		reasons_json TEXT NOT NULL,
		relevance REAL NOT NULL,
		snapshot_json TEXT NOT NULL,
		tick INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		seen_at TEXT,
		responded_at TEXT
	);

	CREATE TABLE IF NOT EXISTS movements (
		id TEXT PRIMARY KEY,
		world_id TEXT NOT NULL,
		topic TEXT NOT NULL,
		direction REAL NOT NULL,
		adherent_count INTEGER NOT NULL,
		formed_at_tick INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_citizens_world ON citizens(world_id);
	CREATE INDEX IF NOT EXISTS idx_memories_citizen ON memories(citizen_id);
	CREATE INDEX IF NOT EXISTS idx_feed_world_tick ON feed(world_id, tick);
	CREATE INDEX IF NOT EXISTS idx_inbox_world ON inbox(world_id);
	CREATE INDEX IF NOT EXISTS idx_inbox_unseen ON inbox(world_id, seen_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// nullString maps an empty string to SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
