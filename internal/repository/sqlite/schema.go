package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		content TEXT NOT NULL,
		source TEXT NOT NULL DEFAULT 'local',
		external_id TEXT,
		created_at_ms INTEGER NOT NULL,
		last_saved_ms INTEGER NOT NULL,
		activity_timestamp_ms INTEGER
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notes_user ON notes (user_id, created_at_ms)`,
	`CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		type TEXT NOT NULL,
		status TEXT NOT NULL,
		timestamp_ms INTEGER NOT NULL,
		is_verified INTEGER NOT NULL DEFAULT 0,
		activity_id TEXT,
		note_id TEXT,
		program_id TEXT,
		protocol_id TEXT,
		metadata TEXT NOT NULL DEFAULT '{}'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_user ON events (user_id, type, timestamp_ms)`,
	`CREATE INDEX IF NOT EXISTS idx_events_note ON events (note_id)`,
	`CREATE TABLE IF NOT EXISTS activities (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		muscle_groups TEXT NOT NULL DEFAULT '[]',
		equipment TEXT NOT NULL DEFAULT '[]',
		created_at_ms INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE,
		full_name TEXT NOT NULL DEFAULT '',
		token_id TEXT,
		external_user_id TEXT,
		timezone TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS programs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		user_id TEXT,
		author_id TEXT,
		phases TEXT NOT NULL DEFAULT '[]'
	)`,
	`CREATE TABLE IF NOT EXISTS planned_activities (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		activity_id TEXT NOT NULL,
		activity_slug TEXT NOT NULL,
		program_id TEXT NOT NULL,
		protocol_id TEXT,
		phase TEXT,
		planned_time_utc_ms INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_planned_user ON planned_activities (user_id, planned_time_utc_ms)`,
}

// EnsureSchema creates the tables this store needs when they are absent. It never alters
// existing tables.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
