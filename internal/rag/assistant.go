// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/newsprep/internal/database"
	"github.com/tomtom215/newsprep/internal/llm"
)

// ErrEmptyQuery is returned for a blank question.
var ErrEmptyQuery = errors.New("query must not be empty")

const (
	snippetLength = 200
	notFoundReply = "Information not found in the news corpus."
)

// AssistantConfig tunes retrieval and history.
type AssistantConfig struct {
	TopK       int
	MaxHistory int
}

// DefaultAssistantConfig returns k=3 and 20 turns of history.
func DefaultAssistantConfig() AssistantConfig {
	return AssistantConfig{TopK: 3, MaxHistory: 20}
}

// Source is a retrieved chunk cited in an answer.
type Source struct {
	ArticleID int64      `json:"article_id"`
	Title     string     `json:"title"`
	Snippet   string     `json:"snippet"`
	Published *time.Time `json:"published"`
}

// Answer is the result of one question.
type Answer struct {
	SessionID string     `json:"session_id"`
	Answer    string     `json:"answer"`
	Sources   []Source   `json:"sources"`
	History   []ChatTurn `json:"history"`
}

// Assistant answers questions from the news corpus. Each session sees only
// its own history.
type Assistant struct {
	index    *Index
	llm      llm.Client
	sessions SessionStore
	cfg      AssistantConfig
	logger   zerolog.Logger
}

// NewAssistant creates an assistant. client may be nil when no LLM is
// configured; Ask then returns llm.ErrDisabled.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAssistant(index *Index, client llm.Client, sessions SessionStore, cfg AssistantConfig, logger zerolog.Logger) *Assistant {
	def := DefaultAssistantConfig()
	if cfg.TopK <= 0 {
		cfg.TopK = def.TopK
	}
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = def.MaxHistory
	}
	return &Assistant{
		index:    index,
		llm:      client,
		sessions: sessions,
		cfg:      cfg,
		logger:   logger.With().Str("component", "rag_assistant").Logger(),
	}
}

// Ask retrieves context for query, asks the LLM and records the turn in
// the session. An empty sessionID starts a new session.
func (a *Assistant) Ask(ctx context.Context, sessionID, query string) (*Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if a.llm == nil {
		return nil, llm.ErrDisabled
	}
	if !a.index.Ready() {
		return nil, ErrIndexNotReady
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	history, err := a.sessions.History(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	hits, err := a.index.Search(ctx, query, a.cfg.TopK)
	if err != nil {
		return nil, err
	}

	reply, err := a.llm.Complete(llm.WithPurpose(ctx, "rag"), buildPrompt(query, hits, history))
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	history, err = a.sessions.Append(ctx, sessionID, ChatTurn{User: query, Assistant: reply, At: time.Now().UTC()}, a.cfg.MaxHistory)
	if err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	a.logger.Debug().
		Str("session_id", sessionID).
		Int("sources", len(hits)).
		Int("turns", len(history)).
		Msg("Answered question")

	return &Answer{
		SessionID: sessionID,
		Answer:    reply,
		Sources:   sources(hits),
		History:   history,
	}, nil
}

// Reset clears the history of sessionID.
func (a *Assistant) Reset(ctx context.Context, sessionID string) error {
	return a.sessions.Reset(ctx, sessionID)
}

func sources(hits []Retrieved) []Source {
	out := make([]Source, len(hits))
	for i := range hits {
		h := &hits[i]
		out[i] = Source{
			ArticleID: h.ArticleID,
			Title:     h.Title,
			Snippet:   database.TruncateRunes(h.Text, snippetLength) + "...",
			Published: h.Published,
		}
	}
	return out
}

func buildPrompt(query string, hits []Retrieved, history []ChatTurn) string {
	var b strings.Builder
	b.WriteString("You are an AI news assistant. Use ONLY the context below to answer the user's question.\n\n")

	b.WriteString("CONTEXT:\n")
	for i := range hits {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Source %d: %s", i+1, hits[i].Text)
	}

	b.WriteString("\n\nCHAT HISTORY:\n")
	for _, t := range history {
		fmt.Fprintf(&b, "User: %s\nAssistant: %s\n", t.User, t.Assistant)
	}

	fmt.Fprintf(&b, "\nQUESTION:\n%s\n\n", query)
	fmt.Fprintf(&b, "Give a factual answer. If the answer is not in the context, say: %q\n", notFoundReply)
	return b.String()
}
