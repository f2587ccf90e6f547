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
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const articleColumns = `id, title, text, published_date, topic_id, summary, key_points`

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(s scanner) (*Article, error) {
	var (
		a         Article
		title     sql.NullString
		text      sql.NullString
		published sql.NullTime
		topicID   sql.NullInt64
		summary   sql.NullString
		keyPoints sql.NullString
	)
	if err := s.Scan(&a.ID, &title, &text, &published, &topicID, &summary, &keyPoints); err != nil {
		return nil, err
	}
	a.Title = title.String
	a.Text = text.String
	a.PublishedDate = nullTimePtr(published)
	a.TopicID = nullInt64Ptr(topicID)
	if summary.Valid {
		sv := summary.String
		a.Summary = &sv
	}
	if keyPoints.Valid && keyPoints.String != "" {
		if err := json.Unmarshal([]byte(keyPoints.String), &a.KeyPoints); err != nil {
			return nil, fmt.Errorf("failed to decode key points of article %d: %w", a.ID, err)
		}
	}
	return &a, nil
}

// GetArticle returns one article or ErrNotFound.
func (db *DB) GetArticle(ctx context.Context, id int64) (_ *Article, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("select", "articles")(&err)

	row := db.conn.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = ?`, id)
	a, err := scanArticle(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("article %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article %d: %w", id, err)
	}
	return a, nil
}

// ListArticles returns up to limit articles, most recent first.
// Undated articles sort last, then by id.
func (db *DB) ListArticles(ctx context.Context, limit int) (_ []Article, err error) {
	if limit <= 0 {
		limit = 50
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("select", "articles")(&err)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+articleColumns+` FROM articles
		ORDER BY published_date DESC NULLS LAST, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	articles := make([]Article, 0, limit)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, *a)
	}
	return articles, rows.Err()
}

// ArticleMeta returns metadata for the given ids keyed by id. Ids without a
// row are absent from the map. Excerpts are the first excerptLen runes of the text.
func (db *DB) ArticleMeta(ctx context.Context, ids []int64, excerptLen int) (_ map[int64]ArticleMeta, err error) {
	out := make(map[int64]ArticleMeta, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("select", "articles")(&err)

	placeholders, args := inClause(ids)
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, text, topic_id FROM articles WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query article metadata: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			m       ArticleMeta
			title   sql.NullString
			text    sql.NullString
			topicID sql.NullInt64
		)
		if err := rows.Scan(&m.ID, &title, &text, &topicID); err != nil {
			return nil, fmt.Errorf("failed to scan article metadata: %w", err)
		}
		m.Title = title.String
		m.Excerpt = TruncateRunes(text.String, excerptLen)
		m.TopicID = nullInt64Ptr(topicID)
		out[m.ID] = m
	}
	return out, rows.Err()
}

// ArticleIDsByTopic returns the ids of all articles assigned to topicID in id order.
func (db *DB) ArticleIDsByTopic(ctx context.Context, topicID int64) (_ []int64, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("select", "articles")(&err)

	rows, err := db.conn.QueryContext(ctx, `SELECT id FROM articles WHERE topic_id = ? ORDER BY id`, topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles of topic %d: %w", topicID, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan article id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListCorpus returns every article in ascending id order.
func (db *DB) ListCorpus(ctx context.Context) (_ []CorpusDoc, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("select", "articles")(&err)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, text, summary, topic_id, published_date FROM articles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list corpus: %w", err)
	}
	defer rows.Close()

	var docs []CorpusDoc
	for rows.Next() {
		var (
			d         CorpusDoc
			title     sql.NullString
			text      sql.NullString
			summary   sql.NullString
			topicID   sql.NullInt64
			published sql.NullTime
		)
		if err := rows.Scan(&d.ID, &title, &text, &summary, &topicID, &published); err != nil {
			return nil, fmt.Errorf("failed to scan corpus row: %w", err)
		}
		d.Title = title.String
		d.Text = text.String
		d.Summary = summary.String
		d.TopicID = nullInt64Ptr(topicID)
		d.PublishedDate = nullTimePtr(published)
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// CountArticles returns the number of rows in the articles table.
func (db *DB) CountArticles(ctx context.Context) (n int64, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("count", "articles")(&err)

	if err = db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return n, nil
}

// InsertArticle stores a new article and returns its id.
func (db *DB) InsertArticle(ctx context.Context, a *Article) (id int64, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("insert", "articles")(&err)

	var published any
	if a.PublishedDate != nil {
		published = a.PublishedDate.UTC()
	}
	var topic any
	if a.TopicID != nil {
		topic = *a.TopicID
	}

	err = db.conn.QueryRowContext(ctx,
		`INSERT INTO articles (title, text, published_date, topic_id) VALUES (?, ?, ?, ?) RETURNING id`,
		a.Title, a.Text, published, topic).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert article: %w", err)
	}
	return id, nil
}

// UpdateSummary stores a summary paragraph and key points on an article row.
func (db *DB) UpdateSummary(ctx context.Context, id int64, summary string, keyPoints []string) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("update", "articles")(&err)

	if keyPoints == nil {
		keyPoints = []string{}
	}
	encoded, err := json.Marshal(keyPoints)
	if err != nil {
		return fmt.Errorf("failed to encode key points: %w", err)
	}

	res, err := db.conn.ExecContext(ctx,
		`UPDATE articles SET summary = ?, key_points = ? WHERE id = ?`, summary, string(encoded), id)
	if err != nil {
		return fmt.Errorf("failed to update summary of article %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("article %d: %w", id, ErrNotFound)
	}
	return nil
}

// TruncateRunes returns the first n runes of s.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// inClause builds "?, ?, ?" and the matching argument list.
func inClause(ids []int64) (string, []any) {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", "), args
}

func nullInt64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func nullTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
