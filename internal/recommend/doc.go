// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

// Package recommend implements article recommendations over precomputed
// embeddings, blended with collaborative and popularity signals.
//
// # Strategies
//
//   - Content: nearest neighbours of an article in the embedding store
//   - Topic: nearest neighbours of the centroid of a topic's articles
//   - Collaborative: stored co-occurrence candidates of an article
//   - Hybrid: content, collaborative and popularity scores blended with
//     validated weights (alpha, beta, 1-alpha-beta)
//
// # Signal Tables
//
// The collaborative table ({"<id>": [[candidate, count], ...]}) and the
// popularity table ({"<id>": count}) are produced offline. Keys are converted
// to int64 once at decode time. SignalSource re-reads the files on each
// request unless a TTL is configured.
//
// # Determinism
//
// Similarity ties keep row order. Hybrid ties keep candidate order: content
// neighbours first, then collaborative candidates in stored order.
//
// # Example
//
//	svc, err := recommend.NewService(recommend.DefaultConfig(), recommend.DefaultWeights(),
//	    store, db, recommend.NewSignalSource(collabPath, popPath, 0, logger), logger)
//	w, err := recommend.NewWeights(0.5, 0.3)
//	recs, err := svc.Hybrid(ctx, 42, 8, &w)
package recommend
