// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package search

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/newsprep/internal/database"
)

var (
	// ErrSemanticUnavailable is returned when no encoder is configured.
	ErrSemanticUnavailable = errors.New("semantic search unavailable")

	// ErrIdentifierNotFound is returned when an article has no stored embedding.
	ErrIdentifierNotFound = errors.New("article id not found in embeddings")
)

// Corpus is the article store read by the search service.
type Corpus interface {
	// ListCorpus returns every article in ascending id order.
	ListCorpus(ctx context.Context) ([]database.CorpusDoc, error)

	// ArticleMeta returns metadata keyed by id with text cut to excerptLen runes.
	ArticleMeta(ctx context.Context, ids []int64, excerptLen int) (map[int64]database.ArticleMeta, error)
}

// KeywordHit is a keyword search result.
type KeywordHit struct {
	ID      int64   `json:"id"`
	Title   string  `json:"title"`
	Text    string  `json:"text"`
	TopicID *int64  `json:"topic"`
	Score   float64 `json:"score"`
}

// Hit is a semantic search or similar-article result.
type Hit struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Result is the combined response of Search. Semantic is nil when no
// encoder is configured or the semantic pass failed.
type Result struct {
	Query    string       `json:"query"`
	Keyword  []KeywordHit `json:"keyword"`
	Semantic []Hit        `json:"semantic,omitempty"`
}

// Config holds the search settings.
type Config struct {
	DefaultK int
	MaxK     int

	// MinQueryLength is the shortest query, in runes, that Search accepts.
	MinQueryLength int

	// TextLimit is the rune length of semantic result text.
	TextLimit int

	// CorpusCacheTTL keeps corpus embeddings built on the fallback path.
	CorpusCacheTTL time.Duration
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		DefaultK:       10,
		MaxK:           100,
		MinQueryLength: 2,
		TextLimit:      600,
		CorpusCacheTTL: 10 * time.Minute,
	}
}

func (c Config) clampK(k int) int {
	if k <= 0 {
		k = c.DefaultK
	}
	if c.MaxK > 0 && k > c.MaxK {
		k = c.MaxK
	}
	return k
}
