// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

/*
Package metrics provides Prometheus metrics collection and export for observability.

Collectors are registered on the default registry through promauto at package
initialization, and the API router exposes them at /metrics:

	curl http://localhost:8000/metrics

# Available Metrics

HTTP:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Recommendation and search:
  - recommendations_served_total{strategy, outcome}
  - recommendation_duration_seconds{strategy}
  - signal_table_loads_total{table, result}
  - search_requests_total{mode, outcome}
  - search_duration_seconds{mode}
  - embedding_store_loaded, embedding_store_rows, embedding_store_dimensions

External models:
  - embedder_requests_total{provider, result}, embedder_texts_total
  - llm_requests_total{provider, purpose, result}
  - llm_request_duration_seconds{provider}
  - circuit_breaker_state{name}, circuit_breaker_requests_total{name, result}
  - circuit_breaker_state_transitions_total{name, from_state, to_state}

Events and RAG:
  - interaction_events_published_total{event_type}
  - interaction_events_processed_total{event_type, result}
  - rag_index_chunks, rag_index_build_duration_seconds, rag_index_last_build_timestamp
  - rag_session_operations_total{operation, result}

Database:
  - duckdb_query_duration_seconds{operation, table}
  - duckdb_query_errors_total{operation, table, error_type}

# Usage

	start := time.Now()
	recs, err := svc.Hybrid(ctx, articleID, n, weights)
	metrics.RecordRecommendation("hybrid", len(recs), time.Since(start), err)
*/
package metrics
