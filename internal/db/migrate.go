package db

import (
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS masterplans (
		id              TEXT PRIMARY KEY,
		conversation_id TEXT NOT NULL,
		title           TEXT NOT NULL,
		version         TEXT NOT NULL,
		sections        TEXT NOT NULL,
		formats         TEXT NOT NULL,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_masterplans_conversation
		ON masterplans(conversation_id)`,

	`CREATE TABLE IF NOT EXISTS masterplan_versions (
		id            TEXT PRIMARY KEY,
		masterplan_id TEXT NOT NULL REFERENCES masterplans(id) ON DELETE CASCADE,
		version       TEXT NOT NULL,
		user_id       TEXT NOT NULL,
		user_name     TEXT NOT NULL,
		changes       TEXT NOT NULL,
		created_at    TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_versions_masterplan
		ON masterplan_versions(masterplan_id)`,

	`CREATE TABLE IF NOT EXISTS masterplan_comments (
		id            TEXT PRIMARY KEY,
		masterplan_id TEXT NOT NULL REFERENCES masterplans(id) ON DELETE CASCADE,
		section_id    TEXT NOT NULL,
		user_id       TEXT NOT NULL,
		user_name     TEXT NOT NULL,
		content       TEXT NOT NULL,
		category      TEXT NOT NULL
			CHECK(category IN ('clarification','risk','modification','technical')),
		mentions      TEXT,
		created_at    TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_masterplan
		ON masterplan_comments(masterplan_id)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_section
		ON masterplan_comments(masterplan_id, section_id)`,
}

// Migrate runs all schema migrations. Statements are idempotent so the
// full list re-runs on every startup.
func Migrate(database *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := database.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
