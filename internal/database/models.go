// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package database

import "time"

// Article is a full row of the articles table.
type Article struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Text          string     `json:"text"`
	PublishedDate *time.Time `json:"published_date"`
	TopicID       *int64     `json:"topic_id"`
	Summary       *string    `json:"summary,omitempty"`
	KeyPoints     []string   `json:"key_points,omitempty"`
}

// ArticleMeta is the lightweight view attached to recommendations.
type ArticleMeta struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
	TopicID *int64 `json:"topic_id"`
}

// CorpusDoc is one searchable document.
type CorpusDoc struct {
	ID            int64
	Title         string
	Text          string
	Summary       string
	TopicID       *int64
	PublishedDate *time.Time
}

// TopicCount is the number of articles assigned to one topic.
type TopicCount struct {
	TopicID int64 `json:"topic_id"`
	Count   int64 `json:"count"`
}

// ArticleStats holds the counters maintained from interaction events.
type ArticleStats struct {
	ArticleID int64 `json:"article_id"`
	Views     int64 `json:"views"`
	Likes     int64 `json:"likes"`
	Bookmarks int64 `json:"bookmarks"`
	Shares    int64 `json:"shares"`
	Clicks    int64 `json:"clicks"`
}

// Interaction is one row of the user_interactions log.
type Interaction struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"user_id"`
	ArticleID int64     `json:"article_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// Quiz is a persisted quiz with its ordered questions.
type Quiz struct {
	ID        int64      `json:"quiz_id"`
	ArticleID int64      `json:"article_id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Question is one multiple-choice question. Answer is the letter of the
// correct option ("A" for Options[0]).
type Question struct {
	ID       int64    `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}
