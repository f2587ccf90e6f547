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
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/newsprep/internal/database"
	"github.com/tomtom215/newsprep/internal/embedder"
	"github.com/tomtom215/newsprep/internal/embedding"
	"github.com/tomtom215/newsprep/internal/metrics"
	"github.com/tomtom215/newsprep/internal/similarity"
)

// ErrIndexNotReady is returned before the first successful Build.
var ErrIndexNotReady = errors.New("retrieval index not built")

// Corpus supplies the articles to index.
type Corpus interface {
	ListCorpus(ctx context.Context) ([]database.CorpusDoc, error)
}

// Chunk is one indexed piece of an article.
type Chunk struct {
	ArticleID int64
	Title     string
	Text      string
	Published *time.Time
}

// Retrieved is a chunk with its similarity to the query.
type Retrieved struct {
	Chunk
	Score float64
}

type indexState struct {
	chunks  []Chunk
	engine  *similarity.Engine
	builtAt time.Time
}

// Index is the chunk-level vector index used for retrieval. Build replaces
// the whole state at once; searches see either the old or the new index.
type Index struct {
	corpus   Corpus
	encoder  embedder.Embedder
	splitter Splitter
	logger   zerolog.Logger

	buildMu sync.Mutex // serializes builds

	mu    sync.RWMutex
	state *indexState
}

// NewIndex creates an empty index.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewIndex(corpus Corpus, enc embedder.Embedder, splitter Splitter, logger zerolog.Logger) *Index {
	return &Index{
		corpus:   corpus,
		encoder:  enc,
		splitter: splitter,
		logger:   logger.With().Str("component", "rag_index").Logger(),
	}
}

// Ready reports whether a build has completed.
func (x *Index) Ready() bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.state != nil
}

// Len returns the number of indexed chunks.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	if x.state == nil {
		return 0
	}
	return len(x.state.chunks)
}

// BuiltAt returns the time of the last successful build.
func (x *Index) BuiltAt() time.Time {
	x.mu.RLock()
	defer x.mu.RUnlock()
	if x.state == nil {
		return time.Time{}
	}
	return x.state.builtAt
}

// Build chunks every article's summary (or text when there is no summary),
// embeds the chunks and swaps in the new index. On failure the previous
// index stays in place.
func (x *Index) Build(ctx context.Context) (n int, err error) {
	x.buildMu.Lock()
	defer x.buildMu.Unlock()

	start := time.Now()
	defer func() { metrics.RecordRAGIndexBuild(n, time.Since(start), err) }()

	if x.encoder == nil {
		return 0, embedder.ErrDisabled
	}

	docs, err := x.corpus.ListCorpus(ctx)
	if err != nil {
		return 0, fmt.Errorf("list corpus: %w", err)
	}

	chunks := x.chunk(docs)
	if len(chunks) == 0 {
		return 0, errors.New("no article text to index")
	}

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Text
	}
	vectors, err := x.encoder.Embed(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed chunks: %w", err)
	}

	ids := make([]int64, len(chunks))
	for i := range ids {
		ids[i] = int64(i)
	}
	store, err := embedding.NewFromMatrix(ids, vectors)
	if err != nil {
		return 0, fmt.Errorf("build chunk matrix: %w", err)
	}

	state := &indexState{chunks: chunks, engine: similarity.NewEngine(store), builtAt: time.Now()}
	x.mu.Lock()
	x.state = state
	x.mu.Unlock()

	x.logger.Info().
		Int("articles", len(docs)).
		Int("chunks", len(chunks)).
		Dur("duration", time.Since(start)).
		Msg("Retrieval index built")
	return len(chunks), nil
}

func (x *Index) chunk(docs []database.CorpusDoc) []Chunk {
	var chunks []Chunk
	for i := range docs {
		d := &docs[i]
		source := d.Summary
		if strings.TrimSpace(source) == "" {
			source = d.Text
		}
		for _, piece := range x.splitter.Split(source) {
			chunks = append(chunks, Chunk{
				ArticleID: d.ID,
				Title:     d.Title,
				Text:      piece,
				Published: d.PublishedDate,
			})
		}
	}
	return chunks
}

// Search returns the k chunks most similar to query.
func (x *Index) Search(ctx context.Context, query string, k int) ([]Retrieved, error) {
	x.mu.RLock()
	state := x.state
	x.mu.RUnlock()
	if state == nil {
		return nil, ErrIndexNotReady
	}

	vec, err := embedder.EmbedOne(ctx, x.encoder, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	pairs := state.engine.RankByVector(vec, k, nil)
	out := make([]Retrieved, len(pairs))
	for i, p := range pairs {
		out[i] = Retrieved{Chunk: state.chunks[p.ID], Score: p.Score}
	}
	return out, nil
}
