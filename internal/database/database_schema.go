// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

/*
database_schema.go - Database Schema Management

Tables:
  - articles: News corpus with optional topic assignment and stored summaries
  - article_stats: Per-article view/like/bookmark counters
  - users: Known readers
  - user_interactions: Append-only interaction log (view, like, bookmark, ...)
  - quizzes, quiz_questions: Generated comprehension quizzes

Ids come from sequences so rows inserted through read_csv_auto and through
prepared statements share one id space.

JSON-valued columns (key_points, options) are stored as VARCHAR holding a JSON
array, since extension autoloading is disabled and the json extension may be absent.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range getTableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// getTableCreationQueries returns the table creation SQL statements
func getTableCreationQueries() []string {
	return []string{
		`CREATE SEQUENCE IF NOT EXISTS articles_id_seq START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS users_id_seq START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS user_interactions_id_seq START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS quizzes_id_seq START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS quiz_questions_id_seq START 1;`,

		`CREATE TABLE IF NOT EXISTS articles (
			id BIGINT PRIMARY KEY DEFAULT nextval('articles_id_seq'),
			title VARCHAR(255),
			text TEXT,
			published_date TIMESTAMP,
			topic_id BIGINT,
			summary TEXT,
			key_points TEXT
		);`,

		`CREATE TABLE IF NOT EXISTS article_stats (
			article_id BIGINT PRIMARY KEY,
			views BIGINT NOT NULL DEFAULT 0,
			likes BIGINT NOT NULL DEFAULT 0,
			bookmarks BIGINT NOT NULL DEFAULT 0
		);`,

		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY DEFAULT nextval('users_id_seq'),
			name VARCHAR(200),
			email VARCHAR(200)
		);`,

		`CREATE TABLE IF NOT EXISTS user_interactions (
			id BIGINT PRIMARY KEY DEFAULT nextval('user_interactions_id_seq'),
			user_id BIGINT,
			article_id BIGINT NOT NULL,
			event_type VARCHAR(50) NOT NULL,
			created_at TIMESTAMP NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS quizzes (
			id BIGINT PRIMARY KEY DEFAULT nextval('quizzes_id_seq'),
			article_id BIGINT NOT NULL,
			title VARCHAR(255)
		);`,

		`CREATE TABLE IF NOT EXISTS quiz_questions (
			id BIGINT PRIMARY KEY DEFAULT nextval('quiz_questions_id_seq'),
			quiz_id BIGINT NOT NULL,
			ordinal INTEGER NOT NULL,
			question TEXT NOT NULL,
			options TEXT NOT NULL,
			answer VARCHAR(10) NOT NULL
		);`,
	}
}

// createIndexes creates database indexes for query optimization
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range getIndexQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute index query: %s: %w", query, err)
		}
	}

	return nil
}

// getIndexQueries returns index creation SQL statements
func getIndexQueries() []string {
	return []string{
		`CREATE INDEX IF NOT EXISTS idx_articles_topic ON articles(topic_id);`,
		`CREATE INDEX IF NOT EXISTS idx_articles_published ON articles(published_date);`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_article ON user_interactions(article_id);`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_user ON user_interactions(user_id, created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_quiz_questions_quiz ON quiz_questions(quiz_id, ordinal);`,
	}
}
