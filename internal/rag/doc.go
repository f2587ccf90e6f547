// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

// Package rag answers questions about the news corpus with retrieval
// augmented generation.
//
// The Index chunks article summaries (falling back to the article text),
// embeds the chunks and ranks them with the similarity engine. Builds run
// in the background under the supervisor; until the first build completes
// Ask returns ErrIndexNotReady.
//
// Chat history is kept per session id in a SessionStore. BadgerSessionStore
// persists sessions across restarts with a TTL per session;
// MemorySessionStore is for tests and single-process development.
package rag
