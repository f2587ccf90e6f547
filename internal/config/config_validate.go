// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package config

import (
	"fmt"
	"strings"
)

// weightTolerance absorbs float rounding in alpha+beta sums such as 0.7+0.3.
const weightTolerance = 1e-9

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateDatabase,
		c.validateLogging,
		c.validateSecurity,
		c.validateEmbedder,
		c.validateLLM,
		c.validateRecommend,
		c.validateSearch,
		c.validateRAG,
		c.validateEvents,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	if c.Server.GenerationTimeout <= 0 {
		return fmt.Errorf("GENERATION_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be >= 0, got %d", c.Database.Threads)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, got %q", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQS must be positive when rate limiting is enabled")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive when rate limiting is enabled")
	}
	return nil
}

func (c *Config) validateEmbedder() error {
	switch c.Embedder.Provider {
	case "none":
		return nil
	case "hash":
	case "openai":
		if c.Embedder.APIKey == "" && c.Embedder.BaseURL == "" {
			return fmt.Errorf("EMBEDDER_API_KEY or EMBEDDER_BASE_URL is required when EMBEDDER_PROVIDER=openai")
		}
	case "ollama":
	default:
		return fmt.Errorf("EMBEDDER_PROVIDER must be none, hash, openai or ollama, got %q", c.Embedder.Provider)
	}

	if c.Embedder.BaseURL != "" {
		if err := validateBaseURL(c.Embedder.BaseURL, "EMBEDDER_BASE_URL"); err != nil {
			return err
		}
	}
	if c.Embedder.Dimensions <= 0 {
		return fmt.Errorf("EMBEDDER_DIMENSIONS must be positive, got %d", c.Embedder.Dimensions)
	}
	if c.Embedder.BatchSize <= 0 {
		return fmt.Errorf("EMBEDDER_BATCH_SIZE must be positive, got %d", c.Embedder.BatchSize)
	}
	if c.Embedder.RequestsPerSecond < 0 {
		return fmt.Errorf("EMBEDDER_RPS must be >= 0")
	}
	return nil
}

func (c *Config) validateLLM() error {
	switch c.LLM.Provider {
	case "none":
		return nil
	case "openai":
		if c.LLM.APIKey == "" && c.LLM.BaseURL == "" {
			return fmt.Errorf("LLM_API_KEY or LLM_BASE_URL is required when LLM_PROVIDER=openai")
		}
	case "ollama":
	default:
		return fmt.Errorf("LLM_PROVIDER must be none, openai or ollama, got %q", c.LLM.Provider)
	}

	if c.LLM.BaseURL != "" {
		if err := validateBaseURL(c.LLM.BaseURL, "LLM_BASE_URL"); err != nil {
			return err
		}
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("LLM_MODEL is required when LLM_PROVIDER=%s", c.LLM.Provider)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("LLM_TEMPERATURE must be between 0 and 2, got %v", c.LLM.Temperature)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.MaxN <= 0 {
		return fmt.Errorf("RECOMMEND_MAX_N must be positive, got %d", r.MaxN)
	}
	if r.DefaultN <= 0 || r.DefaultN > r.MaxN {
		return fmt.Errorf("RECOMMEND_DEFAULT_N must be between 1 and %d, got %d", r.MaxN, r.DefaultN)
	}
	if r.ContentPool <= 0 {
		return fmt.Errorf("RECOMMEND_CONTENT_POOL must be positive, got %d", r.ContentPool)
	}
	if r.DefaultAlpha < 0 || r.DefaultBeta < 0 || r.DefaultAlpha+r.DefaultBeta > 1+weightTolerance {
		return fmt.Errorf("RECOMMEND_ALPHA and RECOMMEND_BETA must be >= 0 with alpha+beta <= 1, got %v and %v",
			r.DefaultAlpha, r.DefaultBeta)
	}
	if r.SignalTTL < 0 {
		return fmt.Errorf("RECOMMEND_SIGNAL_TTL must be >= 0")
	}
	if r.ExcerptLength <= 0 {
		return fmt.Errorf("recommend.excerpt_length must be positive, got %d", r.ExcerptLength)
	}
	return nil
}

func (c *Config) validateSearch() error {
	s := c.Search
	if s.MaxK <= 0 || s.DefaultK <= 0 || s.DefaultK > s.MaxK {
		return fmt.Errorf("SEARCH_DEFAULT_K must be between 1 and SEARCH_MAX_K (%d), got %d", s.MaxK, s.DefaultK)
	}
	if s.MinQueryLength < 1 {
		return fmt.Errorf("SEARCH_MIN_QUERY_LENGTH must be >= 1, got %d", s.MinQueryLength)
	}
	if s.TextLimit <= 0 {
		return fmt.Errorf("search.text_limit must be positive, got %d", s.TextLimit)
	}
	return nil
}

func (c *Config) validateRAG() error {
	r := c.RAG
	if !r.Enabled {
		return nil
	}
	if r.ChunkSize <= 0 {
		return fmt.Errorf("RAG_CHUNK_SIZE must be positive, got %d", r.ChunkSize)
	}
	if r.ChunkOverlap < 0 || r.ChunkOverlap >= r.ChunkSize {
		return fmt.Errorf("RAG_CHUNK_OVERLAP must be >= 0 and smaller than RAG_CHUNK_SIZE, got %d", r.ChunkOverlap)
	}
	if r.TopK <= 0 {
		return fmt.Errorf("RAG_TOP_K must be positive, got %d", r.TopK)
	}
	if r.MaxHistory <= 0 {
		return fmt.Errorf("RAG_MAX_HISTORY must be positive, got %d", r.MaxHistory)
	}
	switch r.SessionStore {
	case "memory":
	case "badger":
		if r.SessionPath == "" {
			return fmt.Errorf("RAG_SESSION_PATH is required when RAG_SESSION_STORE=badger")
		}
	default:
		return fmt.Errorf("RAG_SESSION_STORE must be badger or memory, got %q", r.SessionStore)
	}
	return nil
}

func (c *Config) validateEvents() error {
	e := c.Events
	switch e.Transport {
	case "channel":
	case "nats":
		if e.EmbeddedNATS {
			if e.NATSStoreDir == "" {
				return fmt.Errorf("NATS_STORE_DIR is required when EMBEDDED_NATS is set")
			}
		} else if err := validateNATSURL(e.NATSURL); err != nil {
			return fmt.Errorf("NATS_URL is invalid: %w", err)
		}
		if e.SubscribersCount <= 0 {
			return fmt.Errorf("EVENTS_SUBSCRIBERS must be positive, got %d", e.SubscribersCount)
		}
		// The JetStream stream is named after the topic.
		if strings.ContainsAny(e.Topic, ".*> ") {
			return fmt.Errorf("EVENTS_TOPIC %q cannot be used as a JetStream stream name", e.Topic)
		}
	default:
		return fmt.Errorf("EVENTS_TRANSPORT must be channel or nats, got %q", e.Transport)
	}
	if e.Topic == "" {
		return fmt.Errorf("EVENTS_TOPIC is required")
	}
	if e.RetryCount < 0 {
		return fmt.Errorf("EVENTS_RETRY_COUNT must be >= 0, got %d", e.RetryCount)
	}
	return nil
}
