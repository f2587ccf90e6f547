// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package database

import (
	"context"
	"fmt"
)

// TopicCounts returns the article count per topic ordered by topic id.
// Unassigned articles and the outlier topic -1 are excluded.
func (db *DB) TopicCounts(ctx context.Context) (_ []TopicCount, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("select", "topic_counts")(&err)

	rows, err := db.conn.QueryContext(ctx, `SELECT topic_id, article_count FROM topic_counts ORDER BY topic_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query topic counts: %w", err)
	}
	defer rows.Close()

	counts := []TopicCount{}
	for rows.Next() {
		var tc TopicCount
		if err := rows.Scan(&tc.TopicID, &tc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan topic count: %w", err)
		}
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}

// TopicArticles returns up to limit articles of a topic, most recent first.
func (db *DB) TopicArticles(ctx context.Context, topicID int64, limit int) (_ []Article, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("select", "articles")(&err)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+articleColumns+` FROM articles
		WHERE topic_id = ?
		ORDER BY published_date DESC NULLS LAST, id
		LIMIT ?`, topicID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles of topic %d: %w", topicID, err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, *a)
	}
	return articles, rows.Err()
}

// TopicArticleCount returns how many articles are assigned to topicID.
func (db *DB) TopicArticleCount(ctx context.Context, topicID int64) (n int64, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("count", "articles")(&err)

	if err = db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles WHERE topic_id = ?`, topicID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count articles of topic %d: %w", topicID, err)
	}
	return n, nil
}
