// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

/*
Package main is the entry point for the NewsPrep server.

NewsPrep serves a news article corpus over a JSON API: content-based,
topic, collaborative and hybrid recommendations from precomputed
embeddings, keyword and semantic search, topic browsing, interaction
tracking, extractive and abstractive summaries, quizzes, and a
retrieval-augmented news assistant.

# Application Architecture

	RootSupervisor ("newsprep")
	├── DataSupervisor ("data-layer")
	│   └── IndexBuilderService (RAG_ENABLED=true)
	├── MessagingSupervisor ("messaging-layer")
	│   └── EventRouterService (EVENTS_SYNCHRONOUS=false)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Database: DuckDB schema, migrations and the optional CSV import
 4. Artifacts: embedding matrix, collaborative and popularity tables, topic keywords
 5. Providers: query encoder and language model (both optional)
 6. Services: recommend, search, topics, summarize, quiz, assistant
 7. Events: journal, Watermill bus (gochannel or NATS JetStream) and router
 8. Supervisor Tree: Suture v4 process supervision
 9. HTTP Server: Chi router with middleware stack

A missing artifact or provider never stops startup. The endpoints that
need it answer 503 and /api/health reports "degraded".

# Configuration

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	HTTP_PORT=8000
	LOG_LEVEL=info                 # trace, debug, info, warn, error
	DUCKDB_PATH=/data/newsprep.duckdb
	IMPORT_CSV=data/news.csv       # imported when the articles table is empty

	EMBEDDINGS_PATH=data/embeddings.npy
	ARTICLE_IDS_PATH=data/article_ids.npy
	COLLAB_PATH=data/collab_recs.json
	POPULARITY_PATH=data/popularity.json

	EMBEDDER_PROVIDER=none         # none, hash, openai, ollama
	LLM_PROVIDER=none              # none, openai, ollama
	LLM_BASE_URL=http://localhost:11434/v1

	EVENTS_TRANSPORT=channel       # channel or nats
	NATS_URL=nats://127.0.0.1:4222

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree: the HTTP server drains for
up to 10s, the event router closes its handlers, the event bus and journal
are flushed and the database is closed.

# Usage

	export LLM_PROVIDER=ollama LLM_MODEL=llama3.1
	export EMBEDDER_PROVIDER=ollama EMBEDDER_MODEL=all-minilm
	go run ./cmd/server
*/
package main
