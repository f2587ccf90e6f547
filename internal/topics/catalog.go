// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

// Package topics lists the topics assigned offline to articles and names them
// from the topic keyword artifact.
package topics

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/newsprep/internal/database"
)

// ErrTopicNotFound is returned for a topic with no articles.
var ErrTopicNotFound = errors.New("topic not found")

const (
	nameKeywords    = 3
	detailArticles  = 50
	detailTextRunes = 800
	defaultExamples = 12
)

// Store is the article store read by the catalog.
type Store interface {
	TopicCounts(ctx context.Context) ([]database.TopicCount, error)
	TopicArticles(ctx context.Context, topicID int64, limit int) ([]database.Article, error)
	TopicArticleCount(ctx context.Context, topicID int64) (int64, error)
}

// Topic is a catalog entry.
type Topic struct {
	TopicID  int64    `json:"topic_id"`
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
	Count    int64    `json:"count"`
}

// Doc is an article of a topic.
type Doc struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Text      string     `json:"text"`
	Summary   *string    `json:"summary"`
	KeyPoints []string   `json:"key_points"`
	Published *time.Time `json:"published"`
}

// Detail is a topic with its most recent articles.
type Detail struct {
	Topic
	Docs []Doc `json:"docs"`
}

// Catalog answers topic queries.
type Catalog struct {
	store    Store
	keywords Keywords
	logger   zerolog.Logger
}

// NewCatalog creates a catalog. keywords may be empty, in which case topics
// are named "Topic N".
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalog(store Store, keywords Keywords, logger zerolog.Logger) *Catalog {
	if keywords == nil {
		keywords = Keywords{}
	}
	return &Catalog{
		store:    store,
		keywords: keywords,
		logger:   logger.With().Str("component", "topics").Logger(),
	}
}

// Name returns the display name of a topic: its top three keywords
// title-cased and joined with " | ", or "Topic N" without keywords.
func (c *Catalog) Name(topicID int64) string {
	kw := c.keywords[topicID]
	if len(kw) == 0 {
		return "Topic " + strconv.FormatInt(topicID, 10)
	}
	if len(kw) > nameKeywords {
		kw = kw[:nameKeywords]
	}
	return TitleCase(strings.Join(kw, " | "))
}

// Keywords returns the keywords of a topic, never nil.
func (c *Catalog) Keywords(topicID int64) []string {
	if kw, ok := c.keywords[topicID]; ok {
		return kw
	}
	return []string{}
}

func (c *Catalog) topic(id, count int64) Topic {
	return Topic{TopicID: id, Name: c.Name(id), Keywords: c.Keywords(id), Count: count}
}

// List returns every topic with at least one article, in topic id order.
// The outlier topic -1 is excluded.
func (c *Catalog) List(ctx context.Context) ([]Topic, error) {
	counts, err := c.store.TopicCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	out := make([]Topic, 0, len(counts))
	for _, tc := range counts {
		out = append(out, c.topic(tc.TopicID, tc.Count))
	}
	return out, nil
}

// Detail returns a topic with up to 50 of its most recent articles, text cut
// to 800 runes.
func (c *Catalog) Detail(ctx context.Context, topicID int64) (*Detail, error) {
	count, err := c.store.TopicArticleCount(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("count topic articles: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("topic %d: %w", topicID, ErrTopicNotFound)
	}

	articles, err := c.store.TopicArticles(ctx, topicID, detailArticles)
	if err != nil {
		return nil, fmt.Errorf("list topic articles: %w", err)
	}
	return &Detail{
		Topic: c.topic(topicID, count),
		Docs:  toDocs(articles, detailTextRunes),
	}, nil
}

// Example returns up to n representative articles of a topic, most recent
// first, with full text. n <= 0 means 12.
func (c *Catalog) Example(ctx context.Context, topicID int64, n int) ([]Doc, error) {
	if n <= 0 {
		n = defaultExamples
	}
	articles, err := c.store.TopicArticles(ctx, topicID, n)
	if err != nil {
		return nil, fmt.Errorf("list topic articles: %w", err)
	}
	if len(articles) == 0 {
		return nil, fmt.Errorf("topic %d: %w", topicID, ErrTopicNotFound)
	}
	return toDocs(articles, 0), nil
}

// toDocs projects articles; textLimit <= 0 keeps the full text.
func toDocs(articles []database.Article, textLimit int) []Doc {
	docs := make([]Doc, len(articles))
	for i := range articles {
		a := &articles[i]
		text := a.Text
		if textLimit > 0 {
			text = database.TruncateRunes(text, textLimit)
		}
		docs[i] = Doc{
			ID:        a.ID,
			Title:     a.Title,
			Text:      text,
			Summary:   a.Summary,
			KeyPoints: a.KeyPoints,
			Published: a.PublishedDate,
		}
	}
	return docs
}
