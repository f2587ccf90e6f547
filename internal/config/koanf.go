// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/newsprep/config.yaml",
	"/etc/newsprep/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              8000,
			Host:              "0.0.0.0",
			Timeout:           30 * time.Second,
			Environment:       "development",
			RequestTimeout:    10 * time.Second,
			GenerationTimeout: 120 * time.Second,
		},
		Database: DatabaseConfig{
			Path:      "/data/newsprep.duckdb",
			MaxMemory: "1GB",
			Threads:   0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Artifacts: ArtifactsConfig{
			EmbeddingsPath:    "data/embeddings.npy",
			IDsPath:           "data/article_ids.npy",
			CollabPath:        "data/collab_recs.json",
			PopularityPath:    "data/popularity.json",
			TopicKeywordsPath: "data/topic_keywords.json",
		},
		Embedder: EmbedderConfig{
			Provider:          "none",
			Model:             "all-minilm",
			Dimensions:        384,
			BatchSize:         64,
			RequestsPerSecond: 10,
			Timeout:           30 * time.Second,
			QueryCacheTTL:     10 * time.Minute,
		},
		LLM: LLMConfig{
			Provider:    "none",
			Model:       "llama3.1",
			Temperature: 0.2,
			MaxTokens:   1024,
			Timeout:     120 * time.Second,
		},
		Recommend: RecommendConfig{
			DefaultN:      8,
			MaxN:          100,
			ContentPool:   50,
			DefaultAlpha:  0.7,
			DefaultBeta:   0.2,
			SignalTTL:     0,
			ExcerptLength: 350,
		},
		Search: SearchConfig{
			DefaultK:       10,
			MaxK:           100,
			MinQueryLength: 2,
			TextLimit:      600,
			CorpusCacheTTL: 10 * time.Minute,
		},
		RAG: RAGConfig{
			Enabled:         true,
			ChunkSize:       800,
			ChunkOverlap:    100,
			TopK:            3,
			RebuildInterval: 6 * time.Hour,
			SessionStore:    "badger",
			SessionPath:     "/data/sessions",
			SessionTTL:      24 * time.Hour,
			MaxHistory:      20,
		},
		Events: EventsConfig{
			Transport:        "channel",
			NATSURL:          "nats://127.0.0.1:4222",
			NATSStoreDir:     "data/nats",
			Topic:            "newsprep-events",
			QueueGroup:       "newsprep",
			DurableName:      "events-consumer",
			SubscribersCount: 1,
			JournalPath:      "data/events.jsonl",
			Synchronous:      false,
			RetryCount:       3,
			RetryInterval:    100 * time.Millisecond,
			CloseTimeout:     10 * time.Second,
		},
	}
}

// Default returns the built-in defaults without reading a file or the
// environment. The result has not been validated.
func Default() *Config {
	return defaultConfig()
}

// LoadWithKoanf loads configuration using Koanf with layered sources.
//
//  1. Built-in defaults
//  2. Config file (config.yaml, or the path in CONFIG_PATH)
//  3. Environment variables
func LoadWithKoanf() (*Config, error) {
	return loadFrom(findConfigFile())
}

// loadFrom runs the layered load with an explicit config file path ("" = none).
func loadFrom(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Environment variables (EMBEDDINGS_PATH -> artifacts.embeddings_path)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file found, or "" when none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unmapped variables are ignored so unrelated environment does not leak into config.
var envMappings = map[string]string{
	// Server
	"http_port":          "server.port",
	"http_host":          "server.host",
	"http_timeout":       "server.timeout",
	"environment":        "server.environment",
	"request_timeout":    "server.request_timeout",
	"generation_timeout": "server.generation_timeout",

	// Database
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",
	"import_csv":        "database.import_csv",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Security
	"rate_limit_reqs":    "security.rate_limit_reqs",
	"rate_limit_window":  "security.rate_limit_window",
	"disable_rate_limit": "security.rate_limit_disabled",
	"cors_origins":       "security.cors_origins",

	// Artifacts
	"embeddings_path":     "artifacts.embeddings_path",
	"article_ids_path":    "artifacts.ids_path",
	"collab_path":         "artifacts.collab_path",
	"popularity_path":     "artifacts.popularity_path",
	"topic_keywords_path": "artifacts.topic_keywords_path",

	// Embedder
	"embedder_provider":   "embedder.provider",
	"embedder_base_url":   "embedder.base_url",
	"embedder_api_key":    "embedder.api_key",
	"embedder_model":      "embedder.model",
	"embedder_dimensions": "embedder.dimensions",
	"embedder_batch_size": "embedder.batch_size",
	"embedder_rps":        "embedder.requests_per_second",
	"embedder_timeout":    "embedder.timeout",
	"embedder_cache_ttl":  "embedder.query_cache_ttl",

	// LLM
	"llm_provider":    "llm.provider",
	"llm_base_url":    "llm.base_url",
	"llm_api_key":     "llm.api_key",
	"llm_model":       "llm.model",
	"llm_temperature": "llm.temperature",
	"llm_max_tokens":  "llm.max_tokens",
	"llm_timeout":     "llm.timeout",

	// Recommend
	"recommend_default_n":    "recommend.default_n",
	"recommend_max_n":        "recommend.max_n",
	"recommend_content_pool": "recommend.content_pool",
	"recommend_alpha":        "recommend.default_alpha",
	"recommend_beta":         "recommend.default_beta",
	"recommend_signal_ttl":   "recommend.signal_ttl",

	// Search
	"search_default_k":        "search.default_k",
	"search_max_k":            "search.max_k",
	"search_min_query_length": "search.min_query_length",
	"search_corpus_cache_ttl": "search.corpus_cache_ttl",

	// RAG
	"rag_enabled":          "rag.enabled",
	"rag_chunk_size":       "rag.chunk_size",
	"rag_chunk_overlap":    "rag.chunk_overlap",
	"rag_top_k":            "rag.top_k",
	"rag_rebuild_interval": "rag.rebuild_interval",
	"rag_session_store":    "rag.session_store",
	"rag_session_path":     "rag.session_path",
	"rag_session_ttl":      "rag.session_ttl",
	"rag_max_history":      "rag.max_history",

	// Events
	"events_transport":    "events.transport",
	"nats_url":            "events.nats_url",
	"embedded_nats":       "events.embedded_nats",
	"nats_store_dir":      "events.nats_store_dir",
	"events_topic":        "events.topic",
	"events_queue_group":  "events.queue_group",
	"events_durable_name": "events.durable_name",
	"events_subscribers":  "events.subscribers_count",
	"events_journal_path": "events.journal_path",
	"events_synchronous":  "events.synchronous",
	"events_retry_count":  "events.retry_count",
}

// envTransformFunc transforms environment variable names to koanf paths.
// Returns "" for unmapped keys, which koanf skips.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
