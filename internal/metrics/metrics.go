// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 120}, // LLM handlers run long
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Embedding Store Metrics
	EmbeddingStoreLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "embedding_store_loaded",
			Help: "1 when the article embedding store is loaded, 0 otherwise",
		},
	)

	EmbeddingStoreRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "embedding_store_rows",
			Help: "Number of article vectors in the embedding store",
		},
	)

	EmbeddingStoreDimensions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "embedding_store_dimensions",
			Help: "Vector dimensionality of the embedding store",
		},
	)

	// Recommendation Metrics
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Total number of recommendation requests by strategy and outcome",
		},
		[]string{"strategy", "outcome"}, // strategy: "content", "topic", "collab", "hybrid"; outcome: "ok", "empty", "error"
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Time spent computing recommendations",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"strategy"},
	)

	SignalTableLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signal_table_loads_total",
			Help: "Total number of collaborative/popularity table reads",
		},
		[]string{"table", "result"}, // result: "ok", "missing", "error"
	)

	// Search Metrics
	SearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_requests_total",
			Help: "Total number of search requests by mode",
		},
		[]string{"mode", "outcome"}, // mode: "keyword", "semantic", "similar"
	)

	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "search_duration_seconds",
			Help:    "Search latency by mode",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)

	// External Model Metrics
	EmbedderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "embedder_requests_total",
			Help: "Total number of outbound embedding requests",
		},
		[]string{"provider", "result"},
	)

	EmbedderTexts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "embedder_texts_total",
			Help: "Total number of texts sent to the embedder",
		},
	)

	LLMRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_requests_total",
			Help: "Total number of chat completion requests",
		},
		[]string{"provider", "purpose", "result"}, // purpose: "ask", "summary_map", "summary_reduce"
	)

	LLMDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "Chat completion latency",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"provider"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "signals", "query_embedding", "corpus_embedding"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Event Pipeline Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interaction_events_published_total",
			Help: "Total number of interaction events published",
		},
		[]string{"event_type"},
	)

	EventsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interaction_events_processed_total",
			Help: "Total number of interaction events consumed",
		},
		[]string{"event_type", "result"},
	)

	EventProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "interaction_event_processing_seconds",
			Help:    "Time to persist one interaction event",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	// RAG Metrics
	RAGIndexChunks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rag_index_chunks",
			Help: "Number of chunks in the retrieval index",
		},
	)

	RAGIndexBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rag_index_build_duration_seconds",
			Help:    "Time to rebuild the retrieval index",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	RAGIndexLastBuild = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rag_index_last_build_timestamp",
			Help: "Unix timestamp of the last successful retrieval index build",
		},
	)

	RAGSessions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rag_session_operations_total",
			Help: "Chat session store operations",
		},
		[]string{"operation", "result"}, // operation: "load", "append", "clear"
	)

	// Application Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// SetEmbeddingStore publishes the loaded state and shape of the embedding store.
func SetEmbeddingStore(loaded bool, rows, dims int) {
	if !loaded {
		EmbeddingStoreLoaded.Set(0)
		EmbeddingStoreRows.Set(0)
		EmbeddingStoreDimensions.Set(0)
		return
	}
	EmbeddingStoreLoaded.Set(1)
	EmbeddingStoreRows.Set(float64(rows))
	EmbeddingStoreDimensions.Set(float64(dims))
}

// RecordRecommendation records one recommendation request.
func RecordRecommendation(strategy string, results int, duration time.Duration, err error) {
	RecommendationDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	RecommendationsServed.WithLabelValues(strategy, outcome(results, err)).Inc()
}

// RecordSignalLoad records a read of the collaborative or popularity table.
func RecordSignalLoad(table, result string) {
	SignalTableLoads.WithLabelValues(table, result).Inc()
}

// RecordSearch records one search request.
func RecordSearch(mode string, results int, duration time.Duration, err error) {
	SearchDuration.WithLabelValues(mode).Observe(duration.Seconds())
	SearchRequests.WithLabelValues(mode, outcome(results, err)).Inc()
}

// RecordEmbedderRequest records one outbound embedding batch.
func RecordEmbedderRequest(provider string, texts int, err error) {
	EmbedderRequests.WithLabelValues(provider, result(err)).Inc()
	if err == nil {
		EmbedderTexts.Add(float64(texts))
	}
}

// RecordLLMRequest records one chat completion.
func RecordLLMRequest(provider, purpose string, duration time.Duration, err error) {
	LLMRequests.WithLabelValues(provider, purpose, result(err)).Inc()
	LLMDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordCacheAccess records a cache hit or miss
func RecordCacheAccess(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
	} else {
		CacheMisses.WithLabelValues(cacheType).Inc()
	}
}

// RecordCircuitBreakerTransition records a gobreaker state change.
// States follow gobreaker numbering: 0=closed, 1=half-open, 2=open.
func RecordCircuitBreakerTransition(name, from, to string, toState int) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(float64(toState))
}

// RecordCircuitBreakerRequest records the outcome of a call made through a breaker.
func RecordCircuitBreakerRequest(name, result string) {
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// RecordEventPublished records an interaction event entering the bus.
func RecordEventPublished(eventType string) {
	EventsPublished.WithLabelValues(eventType).Inc()
}

// RecordEventProcessed records an interaction event leaving the bus.
func RecordEventProcessed(eventType string, duration time.Duration, err error) {
	EventsProcessed.WithLabelValues(eventType, result(err)).Inc()
	EventProcessingDuration.Observe(duration.Seconds())
}

// RecordRAGIndexBuild records a retrieval index rebuild.
func RecordRAGIndexBuild(chunks int, duration time.Duration, err error) {
	RAGIndexBuildDuration.Observe(duration.Seconds())
	if err != nil {
		return
	}
	RAGIndexChunks.Set(float64(chunks))
	RAGIndexLastBuild.Set(float64(time.Now().Unix()))
}

// RecordSessionOperation records a chat session store operation.
func RecordSessionOperation(operation string, err error) {
	RAGSessions.WithLabelValues(operation, result(err)).Inc()
}

// SetAppInfo publishes build information.
func SetAppInfo(version, goVersion string) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
}

// StatusLabel converts an HTTP status code to a metric label.
func StatusLabel(code int) string {
	return strconv.Itoa(code)
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func outcome(results int, err error) string {
	switch {
	case err != nil:
		return "error"
	case results == 0:
		return "empty"
	default:
		return "ok"
	}
}
