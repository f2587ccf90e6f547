// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package api

import (
	"context"
	"time"

	"github.com/tomtom215/newsprep/internal/database"
	"github.com/tomtom215/newsprep/internal/embedding"
	"github.com/tomtom215/newsprep/internal/events"
	"github.com/tomtom215/newsprep/internal/quiz"
	"github.com/tomtom215/newsprep/internal/rag"
	"github.com/tomtom215/newsprep/internal/recommend"
	"github.com/tomtom215/newsprep/internal/search"
	"github.com/tomtom215/newsprep/internal/summarize"
	"github.com/tomtom215/newsprep/internal/topics"
)

// Database is the part of the article store the handlers read directly.
type Database interface {
	Ping(ctx context.Context) error
	GetArticle(ctx context.Context, id int64) (*database.Article, error)
	ListArticles(ctx context.Context, limit int) ([]database.Article, error)
	ArticleStats(ctx context.Context, articleID int64) (*database.ArticleStats, error)
}

// Dependencies are the services behind the API. Assistant, Index, Summarizer
// and Quizzes may be nil when their feature is disabled; the matching
// endpoints then answer 503.
type Dependencies struct {
	DB          Database
	Embeddings  *embedding.Store
	Recommender *recommend.Service
	Search      *search.Service
	Topics      *topics.Catalog
	Events      *events.Ingestor
	Index       *rag.Index
	Assistant   *rag.Assistant
	Summarizer  *summarize.Service
	Quizzes     *quiz.Service

	// Version is reported by the health endpoint.
	Version string
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files by resource:
//   - handlers_health.go: health, liveness and readiness
//   - handlers_articles.go: article listing and detail, topics
//   - handlers_recommend.go: content, topic, collaborative and hybrid recommendations
//   - handlers_search.go: keyword/semantic search and search-side recommend
//   - handlers_events.go: interaction ingestion
//   - handlers_assistant.go: RAG questions, summaries and quizzes
type Handler struct {
	db          Database
	embeddings  *embedding.Store
	recommender *recommend.Service
	search      *search.Service
	topics      *topics.Catalog
	events      *events.Ingestor
	index       *rag.Index
	assistant   *rag.Assistant
	summarizer  *summarize.Service
	quizzes     *quiz.Service
	version     string
	startTime   time.Time
}

// NewHandler creates a new API handler.
//
// Example:
//
//	handler := api.NewHandler(api.Dependencies{DB: db, Recommender: rec, ...})
//	router := api.NewRouter(handler, &cfg.Server, &cfg.Security, logger)
//	srv := &http.Server{Handler: router.SetupChi()}
func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		db:          deps.DB,
		embeddings:  deps.Embeddings,
		recommender: deps.Recommender,
		search:      deps.Search,
		topics:      deps.Topics,
		events:      deps.Events,
		index:       deps.Index,
		assistant:   deps.Assistant,
		summarizer:  deps.Summarizer,
		quizzes:     deps.Quizzes,
		version:     deps.Version,
		startTime:   time.Now(),
	}
}
