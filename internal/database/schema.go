package database

import (
	"context"
	"database/sql"
	"fmt"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS stories (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		name          TEXT NOT NULL,
		age           TEXT NOT NULL,
		location      TEXT,
		story_title   TEXT NOT NULL,
		story_summary TEXT NOT NULL,
		story_moral   TEXT NOT NULL,
		created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS place_histories (
		id                      INTEGER PRIMARY KEY AUTOINCREMENT,
		name                    TEXT NOT NULL,
		age                     TEXT NOT NULL,
		location                TEXT NOT NULL,
		place_name              TEXT NOT NULL,
		place_description       TEXT NOT NULL,
		historical_significance TEXT,
		created_at              TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stories_created_at ON stories(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_place_histories_created_at ON place_histories(created_at)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS stories (
		id            BIGSERIAL PRIMARY KEY,
		name          VARCHAR(255) NOT NULL,
		age           VARCHAR(50) NOT NULL,
		location      VARCHAR(255),
		story_title   VARCHAR(255) NOT NULL,
		story_summary TEXT NOT NULL,
		story_moral   VARCHAR(255) NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS place_histories (
		id                      BIGSERIAL PRIMARY KEY,
		name                    VARCHAR(255) NOT NULL,
		age                     VARCHAR(50) NOT NULL,
		location                VARCHAR(255) NOT NULL,
		place_name              VARCHAR(255) NOT NULL,
		place_description       TEXT NOT NULL,
		historical_significance TEXT,
		created_at              TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stories_created_at ON stories(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_place_histories_created_at ON place_histories(created_at)`,
}

// InitTables creates the stories and place_histories tables if they don't exist.
func InitTables(ctx context.Context, db *sql.DB, dialect Dialect) error {
	queries := sqliteSchema
	if dialect == Postgres {
		queries = postgresSchema
	}
	for _, query := range queries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("init %s tables: %w", dialect, err)
		}
	}
	return nil
}
