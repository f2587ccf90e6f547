// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package main

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/newsprep/internal/config"
	"github.com/tomtom215/newsprep/internal/database"
	"github.com/tomtom215/newsprep/internal/embedder"
	"github.com/tomtom215/newsprep/internal/embedding"
	"github.com/tomtom215/newsprep/internal/llm"
	"github.com/tomtom215/newsprep/internal/logging"
	"github.com/tomtom215/newsprep/internal/quiz"
	"github.com/tomtom215/newsprep/internal/rag"
	"github.com/tomtom215/newsprep/internal/recommend"
	"github.com/tomtom215/newsprep/internal/search"
	"github.com/tomtom215/newsprep/internal/summarize"
	"github.com/tomtom215/newsprep/internal/topics"
)

// Components holds the domain services shared by the HTTP handlers and the
// supervisor tree.
type Components struct {
	Embeddings  *embedding.Store
	Signals     *recommend.SignalSource
	Recommender *recommend.Service
	Search      *search.Service
	Topics      *topics.Catalog
	Summarizer  *summarize.Service
	Quizzes     *quiz.Service

	// Index and Assistant are nil when rag.enabled is false.
	Index     *rag.Index
	Assistant *rag.Assistant
	Sessions  rag.SessionStore
}

// Close releases caches and the session store.
func (c *Components) Close() {
	c.Signals.Close()
	c.Search.Close()
	if c.Sessions != nil {
		if err := c.Sessions.Close(); err != nil {
			logging.Warn().Err(err).Msg("Error closing session store")
		}
	}
}

// initComponents builds every domain service. Missing artifacts and
// disabled providers degrade the features that need them; only invalid
// configuration is an error.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func initComponents(cfg *config.Config, db *database.DB, logger zerolog.Logger) (*Components, error) {
	store := embedding.NewStore(cfg.Artifacts.EmbeddingsPath, cfg.Artifacts.IDsPath, logger)
	if err := store.Load(); err != nil {
		logger.Warn().Err(err).Msg("Embeddings unavailable, content recommendations and semantic search disabled")
	}

	enc, err := initEmbedder(&cfg.Embedder, logger)
	if err != nil {
		return nil, err
	}
	client, err := initLLM(&cfg.LLM, logger)
	if err != nil {
		return nil, err
	}
	// A nil *OpenAIClient must stay a nil interface.
	var (
		chat      llm.Client
		completer summarize.Completer
	)
	if client != nil {
		chat, completer = client, client
	}

	signals := recommend.NewSignalSource(cfg.Artifacts.CollabPath, cfg.Artifacts.PopularityPath, cfg.Recommend.SignalTTL, logger)
	defaults, err := recommend.NewWeights(cfg.Recommend.DefaultAlpha, cfg.Recommend.DefaultBeta)
	if err != nil {
		signals.Close()
		return nil, fmt.Errorf("recommend weights: %w", err)
	}
	recommender, err := recommend.NewService(recommend.Config{
		ContentPool:   cfg.Recommend.ContentPool,
		ExcerptLength: cfg.Recommend.ExcerptLength,
		DefaultN:      cfg.Recommend.DefaultN,
		MaxN:          cfg.Recommend.MaxN,
	}, defaults, store, db, signals, logger)
	if err != nil {
		signals.Close()
		return nil, err
	}

	searchSvc := search.NewService(search.Config{
		DefaultK:       cfg.Search.DefaultK,
		MaxK:           cfg.Search.MaxK,
		MinQueryLength: cfg.Search.MinQueryLength,
		TextLimit:      cfg.Search.TextLimit,
		CorpusCacheTTL: cfg.Search.CorpusCacheTTL,
	}, store, db, enc, logger)

	keywords, err := topics.LoadKeywords(cfg.Artifacts.TopicKeywordsPath)
	if err != nil {
		logger.Warn().Err(err).Msg("Topic keywords unreadable, topic names fall back to ids")
		keywords = topics.Keywords{}
	}

	c := &Components{
		Embeddings:  store,
		Signals:     signals,
		Recommender: recommender,
		Search:      searchSvc,
		Topics:      topics.NewCatalog(db, keywords, logger),
		Summarizer:  summarize.NewService(db, completer, logger),
		Quizzes:     quiz.NewService(db, logger),
	}

	if !cfg.RAG.Enabled {
		logger.Info().Msg("Assistant disabled (RAG_ENABLED=false)")
		return c, nil
	}
	if enc == nil {
		logger.Warn().Msg("Assistant index uses the hash encoder because no embedder is configured")
		enc = embedder.NewHashEmbedder(cfg.Embedder.Dimensions)
	}
	sessions, err := rag.NewSessionStore(&cfg.RAG)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("open session store: %w", err)
	}
	c.Sessions = sessions
	c.Index = rag.NewIndex(db, enc, rag.NewSplitter(cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap), logger)
	c.Assistant = rag.NewAssistant(c.Index, chat, sessions, rag.AssistantConfig{
		TopK:       cfg.RAG.TopK,
		MaxHistory: cfg.RAG.MaxHistory,
	}, logger)
	return c, nil
}

// initEmbedder returns a nil encoder when the provider is "none".
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func initEmbedder(cfg *config.EmbedderConfig, logger zerolog.Logger) (embedder.Embedder, error) {
	enc, err := embedder.New(cfg, logger)
	if errors.Is(err, embedder.ErrDisabled) {
		logger.Info().Msg("Query encoder disabled (EMBEDDER_PROVIDER=none), semantic search unavailable")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("embedder: %w", err)
	}
	logger.Info().Str("provider", enc.Provider()).Int("dims", enc.Dimensions()).Msg("Query encoder configured")
	return enc, nil
}

// initLLM returns a nil client when the provider is "none".
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func initLLM(cfg *config.LLMConfig, logger zerolog.Logger) (*llm.OpenAIClient, error) {
	client, err := llm.New(cfg, logger)
	if errors.Is(err, llm.ErrDisabled) {
		logger.Info().Msg("Language model disabled (LLM_PROVIDER=none), summaries are extractive and the assistant is unavailable")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("llm: %w", err)
	}
	logger.Info().Str("provider", cfg.Provider).Str("model", cfg.Model).Msg("Language model configured")
	return client, nil
}
