// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

// Package database is the DuckDB-backed article store for NewsPrep.
//
// # Overview
//
// The package owns the relational side of the system: the article corpus,
// topic assignments, stored summaries, interaction counters and generated
// quizzes. Embedding vectors do not live here; see package embedding.
//
// # Architecture
//
//   - database.go: Connection lifecycle (open, initialize, checkpoint, close)
//   - database_schema.go: Base tables, sequences and indexes
//   - migrations.go: Versioned migrations tracked in schema_migrations
//   - articles.go: Article reads, metadata views, corpus listing, summaries
//   - topics.go: Topic counts and per-topic article listings
//   - interactions.go: Interaction log and counter upserts
//   - quizzes.go: Quiz persistence
//   - import.go: CSV corpus import through read_csv_auto
//
// # Usage
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	meta, err := db.ArticleMeta(ctx, []int64{1, 2, 3}, 350)
//
// # Errors
//
// Lookups of a single row wrap ErrNotFound; use errors.Is to detect it.
// Every query is recorded in the duckdb_query_duration_seconds histogram.
//
// # Thread Safety
//
// DB is safe for concurrent use. Write transactions that lose a DuckDB
// optimistic concurrency conflict are retried a bounded number of times.
package database
