// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

/*
Package cache provides the in-memory caches used by the read paths.

Two shapes are offered:

  - Cache: keyed TTL cache with a background sweeper. Used for the
    collaborative and popularity tables (recommend.signal_ttl) and for corpus
    embeddings computed on the search fallback path.
  - LRU: generic capacity-bounded cache with TTL. Used for query embeddings,
    whose key space is free text.

Both report hits and misses to Prometheus under cache_hits_total and
cache_misses_total with the cache name as the cache_type label.

Keys built from structured parameters should go through GenerateKey, which
hashes the JSON encoding so that equal parameters share an entry.
*/
package cache
