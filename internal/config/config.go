// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package config

import "time"

// Config holds all application configuration loaded from defaults, an optional
// YAML file and environment variables (highest priority wins).
//
// Configuration Categories:
//
//  1. Infrastructure: Server, Database, Logging, Security
//  2. Artifacts: precomputed embeddings, collaborative and popularity tables, topic keywords
//  3. External models: Embedder (text to vector), LLM (chat completions)
//  4. Domain: Recommend, Search, RAG, Events
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//	db, err := database.New(&cfg.Database)
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Logging   LoggingConfig   `koanf:"logging"`
	Security  SecurityConfig  `koanf:"security"`
	Artifacts ArtifactsConfig `koanf:"artifacts"`
	Embedder  EmbedderConfig  `koanf:"embedder"`
	LLM       LLMConfig       `koanf:"llm"`
	Recommend RecommendConfig `koanf:"recommend"`
	Search    SearchConfig    `koanf:"search"`
	RAG       RAGConfig       `koanf:"rag"`
	Events    EventsConfig    `koanf:"events"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // "development", "staging", "production"

	// RequestTimeout bounds store and similarity calls made by a handler.
	// Default: 10s.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// GenerationTimeout bounds handlers that call the LLM (ask, abstractive summaries).
	// Default: 120s.
	GenerationTimeout time.Duration `koanf:"generation_timeout"`
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = use NumCPU

	// ImportCSV is an article corpus CSV loaded at startup when the articles table is empty.
	// Columns: title, text, published, bertopic_topic.
	ImportCSV string `koanf:"import_csv"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// SecurityConfig holds rate limiting and CORS settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// ArtifactsConfig locates the files produced by the offline pipeline.
type ArtifactsConfig struct {
	// EmbeddingsPath is an N x D float32 NPY matrix.
	EmbeddingsPath string `koanf:"embeddings_path"`

	// IDsPath is a length-N integer NPY array aligned with EmbeddingsPath.
	IDsPath string `koanf:"ids_path"`

	// CollabPath is a JSON object {"<id>": [[candidate, count], ...]}.
	CollabPath string `koanf:"collab_path"`

	// PopularityPath is a JSON object {"<id>": count}.
	PopularityPath string `koanf:"popularity_path"`

	// TopicKeywordsPath is a JSON object {"<topic>": [keywords...]}.
	TopicKeywordsPath string `koanf:"topic_keywords_path"`
}

// EmbedderConfig configures the text embedding collaborator.
type EmbedderConfig struct {
	// Provider selects the encoder: none, hash, openai, ollama.
	// Default: none (semantic search and the ask assistant are disabled).
	Provider string `koanf:"provider"`

	// BaseURL of an OpenAI-compatible API (e.g. http://localhost:11434/v1).
	BaseURL string `koanf:"base_url"`
	APIKey  string `koanf:"api_key"`
	Model   string `koanf:"model"`

	// Dimensions of the produced vectors. Must match the stored matrix.
	// Default: 384.
	Dimensions int `koanf:"dimensions"`

	// BatchSize caps the number of texts per embeddings request.
	// Default: 64.
	BatchSize int `koanf:"batch_size"`

	// RequestsPerSecond limits outbound embedding calls. 0 = unlimited.
	// Default: 10.
	RequestsPerSecond float64 `koanf:"requests_per_second"`

	Timeout time.Duration `koanf:"timeout"`

	// QueryCacheTTL caches query embeddings. 0 disables the cache.
	// Default: 10m.
	QueryCacheTTL time.Duration `koanf:"query_cache_ttl"`
}

// LLMConfig configures the chat completion collaborator.
type LLMConfig struct {
	// Provider selects the backend: none, openai, ollama.
	// Default: none.
	Provider    string        `koanf:"provider"`
	BaseURL     string        `koanf:"base_url"`
	APIKey      string        `koanf:"api_key"`
	Model       string        `koanf:"model"`
	Temperature float32       `koanf:"temperature"`
	MaxTokens   int           `koanf:"max_tokens"`
	Timeout     time.Duration `koanf:"timeout"`
}

// RecommendConfig holds recommendation defaults.
type RecommendConfig struct {
	// DefaultN is the result count when the caller omits n.
	// Default: 8.
	DefaultN int `koanf:"default_n"`

	// MaxN caps caller-supplied n.
	// Default: 100.
	MaxN int `koanf:"max_n"`

	// ContentPool is how many content-similar articles enter the hybrid candidate set.
	// Default: 50.
	ContentPool int `koanf:"content_pool"`

	// DefaultAlpha and DefaultBeta weight content and collaborative signals.
	// Popularity receives 1 - alpha - beta. Defaults: 0.7 and 0.2.
	DefaultAlpha float64 `koanf:"default_alpha"`
	DefaultBeta  float64 `koanf:"default_beta"`

	// SignalTTL caches the collaborative and popularity tables. 0 re-reads them on every request.
	// Default: 0.
	SignalTTL time.Duration `koanf:"signal_ttl"`

	// ExcerptLength is the rune length of metadata excerpts.
	// Default: 350.
	ExcerptLength int `koanf:"excerpt_length"`
}

// SearchConfig holds keyword and semantic search settings.
type SearchConfig struct {
	DefaultK       int `koanf:"default_k"`
	MaxK           int `koanf:"max_k"`
	MinQueryLength int `koanf:"min_query_length"`

	// TextLimit truncates the text of semantic results.
	// Default: 600.
	TextLimit int `koanf:"text_limit"`

	// CorpusCacheTTL caches corpus embeddings computed on the fallback path.
	// Default: 10m.
	CorpusCacheTTL time.Duration `koanf:"corpus_cache_ttl"`
}

// RAGConfig holds retrieval-augmented Q&A settings.
type RAGConfig struct {
	Enabled      bool `koanf:"enabled"`
	ChunkSize    int  `koanf:"chunk_size"`
	ChunkOverlap int  `koanf:"chunk_overlap"`
	TopK         int  `koanf:"top_k"`

	// RebuildInterval re-indexes the corpus periodically. 0 builds once at startup.
	RebuildInterval time.Duration `koanf:"rebuild_interval"`

	// SessionStore selects chat history storage: badger or memory.
	// Default: badger.
	SessionStore string `koanf:"session_store"`
	SessionPath  string `koanf:"session_path"`

	// SessionTTL expires idle chat sessions. Default: 24h.
	SessionTTL time.Duration `koanf:"session_ttl"`

	// MaxHistory caps the turns kept per session. Default: 20.
	MaxHistory int `koanf:"max_history"`
}

// EventsConfig configures the interaction event pipeline.
type EventsConfig struct {
	// Transport is channel (in-process) or nats (JetStream).
	// Default: channel.
	Transport string `koanf:"transport"`

	NATSURL          string `koanf:"nats_url"`

	// EmbeddedNATS starts a JetStream server in-process and points the
	// nats transport at it. NATSURL is ignored when set.
	EmbeddedNATS bool   `koanf:"embedded_nats"`
	NATSStoreDir string `koanf:"nats_store_dir"`

	Topic            string `koanf:"topic"`
	QueueGroup       string `koanf:"queue_group"`
	DurableName      string `koanf:"durable_name"`
	SubscribersCount int    `koanf:"subscribers_count"`

	// JournalPath is the append-only JSONL audit file. Empty disables it.
	JournalPath string `koanf:"journal_path"`

	// Synchronous processes events inline in the request instead of through the bus.
	Synchronous bool `koanf:"synchronous"`

	RetryCount    int           `koanf:"retry_count"`
	RetryInterval time.Duration `koanf:"retry_interval"`
	CloseTimeout  time.Duration `koanf:"close_timeout"`
}

// Load reads configuration from all layered sources.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
