// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package search

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/newsprep/internal/cache"
	"github.com/tomtom215/newsprep/internal/database"
	"github.com/tomtom215/newsprep/internal/embedder"
	"github.com/tomtom215/newsprep/internal/embedding"
	"github.com/tomtom215/newsprep/internal/metrics"
	"github.com/tomtom215/newsprep/internal/sanitize"
	"github.com/tomtom215/newsprep/internal/similarity"
)

// fullText asks ArticleMeta for untruncated text.
const fullText = math.MaxInt32

// Service runs keyword and semantic search over the article corpus.
type Service struct {
	cfg      Config
	store    *embedding.Store
	engine   *similarity.Engine
	corpus   Corpus
	embedder embedder.Embedder

	// corpusVectors holds *embedding.Store values keyed by corpus size.
	corpusVectors *cache.Cache
	encodes       singleflight.Group

	logger zerolog.Logger
}

// NewService creates a search service. enc may be nil, which disables
// semantic search. store may be unloaded, in which case semantic search
// encodes the corpus itself.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(cfg Config, store *embedding.Store, corpus Corpus, enc embedder.Embedder, logger zerolog.Logger) *Service {
	def := DefaultConfig()
	if cfg.DefaultK <= 0 {
		cfg.DefaultK = def.DefaultK
	}
	if cfg.MinQueryLength <= 0 {
		cfg.MinQueryLength = def.MinQueryLength
	}
	if cfg.TextLimit <= 0 {
		cfg.TextLimit = def.TextLimit
	}
	if cfg.CorpusCacheTTL <= 0 {
		cfg.CorpusCacheTTL = def.CorpusCacheTTL
	}
	return &Service{
		cfg:           cfg,
		store:         store,
		engine:        similarity.NewEngine(store),
		corpus:        corpus,
		embedder:      enc,
		corpusVectors: cache.New("corpus_embeddings", cfg.CorpusCacheTTL),
		logger:        logger.With().Str("component", "search").Logger(),
	}
}

// Close stops the corpus cache janitor.
func (s *Service) Close() {
	s.corpusVectors.Close()
}

// MinQueryLength returns the shortest accepted query in runes.
func (s *Service) MinQueryLength() int {
	return s.cfg.MinQueryLength
}

// HasSemantic reports whether semantic search can run.
func (s *Service) HasSemantic() bool {
	return s.embedder != nil
}

// KeywordSearch returns up to k articles containing q, scored 2 for a title
// match plus 1 for a text match.
func (s *Service) KeywordSearch(ctx context.Context, q string, k int) (hits []KeywordHit, err error) {
	start := time.Now()
	defer func() { metrics.RecordSearch("keyword", len(hits), time.Since(start), err) }()

	docs, err := s.corpus.ListCorpus(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	return rankKeyword(docs, q, s.cfg.clampK(k)), nil
}

// SemanticSearch ranks articles by cosine similarity to the encoded query.
// With a loaded store only the query is encoded; otherwise the whole corpus
// is encoded and cached until the corpus size changes or the TTL expires.
func (s *Service) SemanticSearch(ctx context.Context, q string, k int) (hits []Hit, err error) {
	start := time.Now()
	defer func() { metrics.RecordSearch("semantic", len(hits), time.Since(start), err) }()

	if s.embedder == nil {
		return nil, ErrSemanticUnavailable
	}
	k = s.cfg.clampK(k)

	qvec, err := embedder.EmbedOne(ctx, s.embedder, q)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	if s.store.Loaded() {
		if len(qvec) != s.store.Dim() {
			s.logger.Warn().
				Int("query_dims", len(qvec)).
				Int("store_dims", s.store.Dim()).
				Msg("Query embedding width does not match the embedding store")
		}
		pairs := s.engine.RankByVector(qvec, k, nil)
		return s.resolve(ctx, pairs, s.cfg.TextLimit)
	}
	return s.searchCorpus(ctx, qvec, k)
}

func (s *Service) searchCorpus(ctx context.Context, qvec []float32, k int) ([]Hit, error) {
	docs, err := s.corpus.ListCorpus(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	if len(docs) == 0 {
		return []Hit{}, nil
	}

	vectors, err := s.corpusStore(ctx, docs)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*database.CorpusDoc, len(docs))
	for i := range docs {
		byID[docs[i].ID] = &docs[i]
	}

	pairs := similarity.NewEngine(vectors).RankByVector(qvec, k, nil)
	hits := make([]Hit, 0, len(pairs))
	for _, p := range pairs {
		d, ok := byID[p.ID]
		if !ok {
			continue
		}
		hits = append(hits, Hit{
			ID:    d.ID,
			Title: d.Title,
			Text:  database.TruncateRunes(d.Text, s.cfg.TextLimit),
			Score: sanitize.Score(p.Score),
		})
	}
	return hits, nil
}

// corpusStore returns the encoded corpus, encoding it at most once per
// corpus size at a time.
func (s *Service) corpusStore(ctx context.Context, docs []database.CorpusDoc) (*embedding.Store, error) {
	key := "corpus:" + strconv.Itoa(len(docs))
	if v, ok := s.corpusVectors.Get(key); ok {
		if store, ok := v.(*embedding.Store); ok {
			return store, nil
		}
	}

	v, err, _ := s.encodes.Do(key, func() (interface{}, error) {
		texts := make([]string, len(docs))
		ids := make([]int64, len(docs))
		for i := range docs {
			texts[i] = docs[i].Text
			ids[i] = docs[i].ID
		}

		started := time.Now()
		vecs, err := s.embedder.Embed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("encode corpus: %w", err)
		}
		store, err := embedding.NewFromMatrix(ids, vecs)
		if err != nil {
			return nil, fmt.Errorf("build corpus vectors: %w", err)
		}

		s.corpusVectors.Set(key, store)
		s.logger.Info().
			Int("articles", len(docs)).
			Dur("duration", time.Since(started)).
			Msg("Encoded corpus for semantic search")
		return store, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*embedding.Store), nil
}

// Search runs keyword search and, when available, semantic search. A
// failing semantic pass is logged and omitted.
func (s *Service) Search(ctx context.Context, q string, k int) (*Result, error) {
	keyword, err := s.KeywordSearch(ctx, q, k)
	if err != nil {
		return nil, err
	}
	res := &Result{Query: q, Keyword: keyword}

	if !s.HasSemantic() {
		return res, nil
	}
	semantic, err := s.SemanticSearch(ctx, q, k)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", q).Msg("Semantic search failed, returning keyword results only")
		return res, nil
	}
	res.Semantic = semantic
	return res, nil
}

// RecommendByArticle returns the k articles most similar to id with their
// full text. It needs the precomputed store.
func (s *Service) RecommendByArticle(ctx context.Context, id int64, k int) (hits []Hit, err error) {
	start := time.Now()
	defer func() { metrics.RecordSearch("similar", len(hits), time.Since(start), err) }()

	if !s.store.Loaded() {
		return nil, fmt.Errorf("embedding store not loaded: %w", embedding.ErrArtifactMissing)
	}
	if !s.store.Has(id) {
		return nil, fmt.Errorf("article %d: %w", id, ErrIdentifierNotFound)
	}
	if k <= 0 {
		k = 5
	}
	pairs := s.engine.RankByArticle(id, s.cfg.clampK(k), true)
	return s.resolve(ctx, pairs, fullText)
}

func (s *Service) resolve(ctx context.Context, pairs []similarity.Pair, textLimit int) ([]Hit, error) {
	hits := make([]Hit, 0, len(pairs))
	if len(pairs) == 0 {
		return hits, nil
	}
	ids := make([]int64, len(pairs))
	for i, p := range pairs {
		ids[i] = p.ID
	}
	meta, err := s.corpus.ArticleMeta(ctx, ids, textLimit)
	if err != nil {
		return nil, fmt.Errorf("resolve articles: %w", err)
	}
	for _, p := range pairs {
		m, ok := meta[p.ID]
		if !ok {
			continue
		}
		hits = append(hits, Hit{ID: m.ID, Title: m.Title, Text: m.Excerpt, Score: sanitize.Score(p.Score)})
	}
	return hits, nil
}
