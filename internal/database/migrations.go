// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/newsprep/internal/logging"
)

// Migration is one append-only schema change applied on top of the base
// tables in database_schema.go. Versions are never reused or edited once
// released.
type Migration struct {
	Version     int
	Name        string
	Description string
	SQL         string
	AppliedAt   time.Time
}

var migrations = []Migration{
	{
		Version:     1,
		Name:        "create_topic_counts_view",
		Description: "Article counts per assigned topic, excluding the outlier topic -1",
		SQL: `CREATE OR REPLACE VIEW topic_counts AS
			SELECT topic_id, COUNT(*) AS article_count
			FROM articles
			WHERE topic_id IS NOT NULL AND topic_id <> -1
			GROUP BY topic_id;`,
	},
	{
		Version:     2,
		Name:        "create_article_engagement",
		Description: "Share and click counters kept apart from the core stats row",
		SQL: `CREATE TABLE IF NOT EXISTS article_engagement (
			article_id BIGINT PRIMARY KEY,
			shares BIGINT NOT NULL DEFAULT 0,
			clicks BIGINT NOT NULL DEFAULT 0
		);`,
	},
}

const createMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

func (db *DB) appliedMigrations(ctx context.Context) (map[int]bool, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan migration version: %w", err)
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

// applyMigration runs m and records it in one transaction, so a failed
// statement leaves no half-applied version behind.
func (db *DB) applyMigration(ctx context.Context, m Migration) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, description) VALUES (?, ?, ?)`,
		m.Version, m.Name, m.Description); err != nil {
		return err
	}
	return tx.Commit()
}

// runVersionedMigrations applies every migration not yet recorded.
func (db *DB) runVersionedMigrations() error {
	ctx, cancel := schemaContext()
	defer cancel()

	if _, err := db.conn.ExecContext(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}
	applied, err := db.appliedMigrations(ctx)
	if err != nil {
		return err
	}

	count := 0
	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if err := db.applyMigration(ctx, m); err != nil {
			return fmt.Errorf("migration v%d (%s): %w", m.Version, m.Name, err)
		}
		count++
	}
	if count > 0 {
		logging.Info().Int("count", count).Int("version", migrations[len(migrations)-1].Version).Msg("Applied database migrations")
	}
	return nil
}

// GetCurrentSchemaVersion returns the highest applied migration version.
func (db *DB) GetCurrentSchemaVersion(ctx context.Context) (int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var version int
	if err := db.conn.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version); err != nil {
		return 0, fmt.Errorf("get schema version: %w", err)
	}
	return version, nil
}
