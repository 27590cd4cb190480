package store

import (
	"context"
	"database/sql"
	"fmt"
)

// tables lists the DDL for every table the store owns. Timestamps are unix
// milliseconds.
var tables = []string{
	`CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		white TEXT NOT NULL DEFAULT '',
		black TEXT NOT NULL DEFAULT '',
		result TEXT NOT NULL DEFAULT '*',
		time_class TEXT NOT NULL DEFAULT '',
		event TEXT NOT NULL DEFAULT '',
		pgn TEXT NOT NULL,
		imported_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS drills (
		id TEXT PRIMARY KEY,
		game_id TEXT NOT NULL,
		mode TEXT NOT NULL,
		theme TEXT NOT NULL,
		position TEXT NOT NULL,
		goal TEXT NOT NULL,
		solution TEXT NOT NULL,
		difficulty INTEGER NOT NULL,
		explanation TEXT NOT NULL DEFAULT '',
		played_move TEXT NOT NULL,
		ply INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_drills_theme ON drills(theme)`,
	`CREATE TABLE IF NOT EXISTS attempt_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		drill_id TEXT NOT NULL,
		theme TEXT NOT NULL,
		correct INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		retries INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		mastery_after REAL NOT NULL,
		interval_after INTEGER NOT NULL,
		locked INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_attempt_events_theme ON attempt_events(theme)`,
	`CREATE INDEX IF NOT EXISTS idx_attempt_events_drill ON attempt_events(drill_id)`,
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL,
		output_tokens INTEGER NOT NULL,
		latency_ms INTEGER NOT NULL,
		success INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		timestamp INTEGER NOT NULL,
		data TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_snapshots_timestamp ON snapshots(timestamp)`,
}

// migrate creates any missing tables and indexes.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, ddl := range tables {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
