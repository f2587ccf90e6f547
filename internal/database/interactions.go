// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/newsprep/internal/logging"
)

// maxConflictRetries bounds retries of a write transaction that lost a DuckDB
// optimistic concurrency conflict.
const maxConflictRetries = 3

// statsDelta maps an event type to the counters it increments:
// views, likes, bookmarks, shares, clicks.
func statsDelta(eventType string) [5]int64 {
	switch eventType {
	case "view":
		return [5]int64{1, 0, 0, 0, 0}
	case "like":
		return [5]int64{0, 1, 0, 0, 0}
	case "bookmark":
		return [5]int64{0, 0, 1, 0, 0}
	case "share":
		return [5]int64{0, 0, 0, 1, 0}
	case "click":
		return [5]int64{0, 0, 0, 0, 1}
	default:
		return [5]int64{}
	}
}

// RecordInteraction appends an interaction row and bumps the article counters
// in a single transaction. A zero Timestamp is replaced with the current time.
func (db *DB) RecordInteraction(ctx context.Context, in *Interaction) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("insert", "user_interactions")(&err)

	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now().UTC()
	}

	for attempt := 1; ; attempt++ {
		err = db.recordInteractionTx(ctx, in)
		if err == nil || !isTransactionConflict(err) || attempt >= maxConflictRetries {
			return err
		}
		logging.Debug().Int("attempt", attempt).Int64("article_id", in.ArticleID).Msg("Retrying interaction after transaction conflict")
	}
}

func (db *DB) recordInteractionTx(ctx context.Context, in *Interaction) (err error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logging.Error().Err(rbErr).AnErr("original_error", err).Msg("Transaction rollback failed")
			}
		}
	}()

	var userID any
	if in.UserID != nil {
		userID = *in.UserID
		if _, err = tx.ExecContext(ctx, `INSERT INTO users (id) VALUES (?) ON CONFLICT DO NOTHING`, *in.UserID); err != nil {
			return fmt.Errorf("failed to register user %d: %w", *in.UserID, err)
		}
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO user_interactions (user_id, article_id, event_type, created_at) VALUES (?, ?, ?, ?) RETURNING id`,
		userID, in.ArticleID, in.EventType, in.Timestamp.UTC()).Scan(&in.ID)
	if err != nil {
		return fmt.Errorf("failed to insert interaction: %w", err)
	}

	d := statsDelta(in.EventType)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO article_stats (article_id, views, likes, bookmarks) VALUES (?, ?, ?, ?)
		ON CONFLICT (article_id) DO UPDATE SET
			views = article_stats.views + EXCLUDED.views,
			likes = article_stats.likes + EXCLUDED.likes,
			bookmarks = article_stats.bookmarks + EXCLUDED.bookmarks`,
		in.ArticleID, d[0], d[1], d[2])
	if err != nil {
		return fmt.Errorf("failed to update article stats: %w", err)
	}

	if d[3] != 0 || d[4] != 0 {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO article_engagement (article_id, shares, clicks) VALUES (?, ?, ?)
			ON CONFLICT (article_id) DO UPDATE SET
				shares = article_engagement.shares + EXCLUDED.shares,
				clicks = article_engagement.clicks + EXCLUDED.clicks`,
			in.ArticleID, d[3], d[4])
		if err != nil {
			return fmt.Errorf("failed to update article engagement: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit interaction: %w", err)
	}
	return nil
}

// ArticleStats returns the counters of an article. Articles without any
// recorded interaction yield zero counters.
func (db *DB) ArticleStats(ctx context.Context, articleID int64) (_ *ArticleStats, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("select", "article_stats")(&err)

	stats := &ArticleStats{ArticleID: articleID}
	err = db.conn.QueryRowContext(ctx,
		`SELECT
			COALESCE((SELECT views FROM article_stats WHERE article_id = ?), 0),
			COALESCE((SELECT likes FROM article_stats WHERE article_id = ?), 0),
			COALESCE((SELECT bookmarks FROM article_stats WHERE article_id = ?), 0),
			COALESCE((SELECT shares FROM article_engagement WHERE article_id = ?), 0),
			COALESCE((SELECT clicks FROM article_engagement WHERE article_id = ?), 0)`,
		articleID, articleID, articleID, articleID, articleID).
		Scan(&stats.Views, &stats.Likes, &stats.Bookmarks, &stats.Shares, &stats.Clicks)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats of article %d: %w", articleID, err)
	}
	return stats, nil
}

// ListInteractions returns the most recent interactions of an article.
func (db *DB) ListInteractions(ctx context.Context, articleID int64, limit int) (_ []Interaction, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("select", "user_interactions")(&err)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, article_id, event_type, created_at FROM user_interactions
		WHERE article_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, articleID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query interactions: %w", err)
	}
	defer rows.Close()

	var out []Interaction
	for rows.Next() {
		var (
			in     Interaction
			userID sql.NullInt64
		)
		if err := rows.Scan(&in.ID, &userID, &in.ArticleID, &in.EventType, &in.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		in.UserID = nullInt64Ptr(userID)
		out = append(out, in)
	}
	return out, rows.Err()
}
