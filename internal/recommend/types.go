// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package recommend

import (
	"context"
	"errors"

	"github.com/tomtom215/newsprep/internal/database"
)

var (
	// ErrStoreFault wraps failures of the article store while resolving metadata.
	ErrStoreFault = errors.New("article store unavailable")

	// ErrSignalsInvalid indicates a collaborative or popularity artifact
	// exists but cannot be decoded.
	ErrSignalsInvalid = errors.New("recommendation signal artifact invalid")
)

// ArticleStore is the subset of the article database the recommender reads.
type ArticleStore interface {
	// ArticleMeta returns metadata keyed by id; unknown ids are absent.
	ArticleMeta(ctx context.Context, ids []int64, excerptLen int) (map[int64]database.ArticleMeta, error)

	// ArticleIDsByTopic returns the ids of the articles assigned to a topic.
	ArticleIDsByTopic(ctx context.Context, topicID int64) ([]int64, error)
}

// Recommendation is a ranked article with its display metadata.
type Recommendation struct {
	ID      int64    `json:"id"`
	Title   string   `json:"title"`
	Excerpt string   `json:"excerpt"`
	Score   float64  `json:"score"`
	TopicID *int64   `json:"topic_id"`
	Signals *Signals `json:"signals,omitempty"`
}

// Signals is the per-signal breakdown of a hybrid score.
type Signals struct {
	Content    float64 `json:"content"`
	Collab     float64 `json:"collab"`
	Popularity float64 `json:"popularity"`
}

// CollabEntry is one co-occurrence candidate of a source article.
type CollabEntry struct {
	ID    int64
	Count float64
}

// CollabTable maps a source article to its candidates in stored order.
type CollabTable map[int64][]CollabEntry

// PopularityTable maps an article to its raw interaction count.
type PopularityTable map[int64]float64

// Max returns the largest count in the table, or 0 for an empty table.
func (p PopularityTable) Max() float64 {
	maxCount := 0.0
	first := true
	for _, v := range p {
		if first || v > maxCount {
			maxCount = v
			first = false
		}
	}
	return maxCount
}

// Config holds the recommender settings.
type Config struct {
	// ContentPool is how many content neighbours enter the hybrid candidate set.
	ContentPool int

	// ExcerptLength is the rune length of metadata excerpts.
	ExcerptLength int

	// DefaultN is used when a caller passes n <= 0; MaxN caps n.
	DefaultN int
	MaxN     int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		ContentPool:   50,
		ExcerptLength: 350,
		DefaultN:      8,
		MaxN:          100,
	}
}

// clampN maps a caller-supplied n onto [1, MaxN], using DefaultN for n <= 0.
func (c Config) clampN(n int) int {
	if n <= 0 {
		n = c.DefaultN
	}
	if c.MaxN > 0 && n > c.MaxN {
		n = c.MaxN
	}
	return n
}
