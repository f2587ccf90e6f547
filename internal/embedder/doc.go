// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

// Package embedder provides text encoders for semantic search and the
// retrieval index.
//
// Providers:
//
//   - openai, ollama: any OpenAI-compatible /embeddings endpoint, batched,
//     rate limited (golang.org/x/time/rate) and guarded by a circuit breaker
//   - hash: deterministic signed feature hashing, no network
//
// The vectors of the serving model must match the width of the precomputed
// embedding matrix; Dimensions is checked against responses when set.
package embedder
