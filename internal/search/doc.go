// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

// Package search implements keyword and semantic search over the article
// corpus.
//
// Keyword search is a case-insensitive substring match scored 2 for the
// title and 1 for the body; ties keep ascending id order. Semantic search
// encodes the query and ranks it against the precomputed embedding store,
// or, when the store is not loaded, against corpus embeddings computed on
// demand and cached per corpus size. Every score leaving the package is
// finite.
package search
