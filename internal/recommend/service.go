// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/newsprep/internal/embedding"
	"github.com/tomtom215/newsprep/internal/metrics"
	"github.com/tomtom215/newsprep/internal/sanitize"
	"github.com/tomtom215/newsprep/internal/similarity"
)

// Service answers content, topic, collaborative and hybrid recommendation
// queries. It is safe for concurrent use.
type Service struct {
	cfg      Config
	weights  Weights
	store    *embedding.Store
	engine   *similarity.Engine
	articles ArticleStore
	signals  *SignalSource
	logger   zerolog.Logger
}

// NewService wires the recommender. defaults are the hybrid weights used when
// a caller does not pass any; they must be valid.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(cfg Config, defaults Weights, store *embedding.Store, articles ArticleStore, signals *SignalSource, logger zerolog.Logger) (*Service, error) {
	if err := defaults.Validate(); err != nil {
		return nil, fmt.Errorf("default weights: %w", err)
	}
	if cfg.ContentPool <= 0 {
		cfg.ContentPool = DefaultConfig().ContentPool
	}
	if cfg.ExcerptLength <= 0 {
		cfg.ExcerptLength = DefaultConfig().ExcerptLength
	}
	if cfg.DefaultN <= 0 {
		cfg.DefaultN = DefaultConfig().DefaultN
	}
	return &Service{
		cfg:      cfg,
		weights:  defaults,
		store:    store,
		engine:   similarity.NewEngine(store),
		articles: articles,
		signals:  signals,
		logger:   logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// DefaultWeights returns the configured hybrid weights.
func (s *Service) DefaultWeights() Weights {
	return s.weights
}

// Config returns the recommender settings.
func (s *Service) Config() Config {
	return s.cfg
}

func (s *Service) requireStore() error {
	if !s.store.Loaded() {
		return fmt.Errorf("embedding store not loaded: %w", embedding.ErrArtifactMissing)
	}
	return nil
}

// SimilarByArticle returns the n articles most similar to id, excluding id.
// An id without an embedding yields an empty result.
func (s *Service) SimilarByArticle(ctx context.Context, id int64, n int) ([]similarity.Pair, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.engine.RankByArticle(id, s.cfg.clampN(n), true), nil
}

// SimilarByTopic ranks against the centroid of the topic's articles that have
// embeddings. A topic with no such article yields an empty result.
func (s *Service) SimilarByTopic(ctx context.Context, topicID int64, n int) ([]similarity.Pair, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}
	ids, err := s.articles.ArticleIDsByTopic(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreFault, err)
	}

	resolvable := make([]int64, 0, len(ids))
	for _, id := range ids {
		if s.store.Has(id) {
			resolvable = append(resolvable, id)
		}
	}
	if len(resolvable) == 0 {
		return []similarity.Pair{}, nil
	}
	return s.engine.CentroidRank(resolvable, s.cfg.clampN(n)), nil
}

// ResolveMetadata joins pairs with article metadata in pair order. Ids with no
// article row are skipped.
func (s *Service) ResolveMetadata(ctx context.Context, pairs []similarity.Pair) ([]Recommendation, error) {
	out := make([]Recommendation, 0, len(pairs))
	if len(pairs) == 0 {
		return out, nil
	}

	ids := make([]int64, len(pairs))
	for i, p := range pairs {
		ids[i] = p.ID
	}
	meta, err := s.articles.ArticleMeta(ctx, ids, s.cfg.ExcerptLength)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreFault, err)
	}

	emitted := make(map[int64]struct{}, len(pairs))
	for _, p := range pairs {
		m, ok := meta[p.ID]
		if !ok {
			continue
		}
		if _, dup := emitted[p.ID]; dup {
			continue
		}
		emitted[p.ID] = struct{}{}
		out = append(out, Recommendation{
			ID:      m.ID,
			Title:   m.Title,
			Excerpt: m.Excerpt,
			Score:   sanitize.Score(p.Score),
			TopicID: m.TopicID,
		})
	}
	return out, nil
}

// RecommendByArticle is SimilarByArticle joined with metadata.
func (s *Service) RecommendByArticle(ctx context.Context, id int64, n int) (recs []Recommendation, err error) {
	start := time.Now()
	defer func() { metrics.RecordRecommendation("content", len(recs), time.Since(start), err) }()

	pairs, err := s.SimilarByArticle(ctx, id, n)
	if err != nil {
		return nil, err
	}
	return s.ResolveMetadata(ctx, pairs)
}

// RecommendByTopic is SimilarByTopic joined with metadata.
func (s *Service) RecommendByTopic(ctx context.Context, topicID int64, n int) (recs []Recommendation, err error) {
	start := time.Now()
	defer func() { metrics.RecordRecommendation("topic", len(recs), time.Since(start), err) }()

	pairs, err := s.SimilarByTopic(ctx, topicID, n)
	if err != nil {
		return nil, err
	}
	return s.ResolveMetadata(ctx, pairs)
}

// Collaborative returns the first n collaborative candidates of id scored by
// their co-occurrence count. Embeddings are not required.
func (s *Service) Collaborative(ctx context.Context, id int64, n int) (recs []Recommendation, err error) {
	start := time.Now()
	defer func() { metrics.RecordRecommendation("collab", len(recs), time.Since(start), err) }()

	table, err := s.signals.Collab(ctx)
	if err != nil {
		return nil, err
	}
	entries := table[id]
	if limit := s.cfg.clampN(n); len(entries) > limit {
		entries = entries[:limit]
	}

	pairs := make([]similarity.Pair, len(entries))
	for i, e := range entries {
		pairs[i] = similarity.Pair{ID: e.ID, Score: e.Count}
	}
	return s.ResolveMetadata(ctx, pairs)
}

// Hybrid blends content similarity, collaborative counts and popularity for
// id with the given weights and returns the top n with their signal breakdown.
// Pass nil to use the configured defaults.
func (s *Service) Hybrid(ctx context.Context, id int64, n int, w *Weights) (recs []Recommendation, err error) {
	start := time.Now()
	defer func() { metrics.RecordRecommendation("hybrid", len(recs), time.Since(start), err) }()

	weights := s.weights
	if w != nil {
		if err := w.Validate(); err != nil {
			return nil, err
		}
		weights = *w
	}

	if err := s.requireStore(); err != nil {
		return nil, err
	}
	content := s.engine.RankByArticle(id, s.cfg.ContentPool, true)

	collab, pop, err := s.signals.Both(ctx)
	if err != nil {
		return nil, err
	}

	scored := Blend(content, collab[id], pop, weights)
	if limit := s.cfg.clampN(n); len(scored) > limit {
		scored = scored[:limit]
	}

	pairs := make([]similarity.Pair, len(scored))
	signals := make(map[int64]Signals, len(scored))
	for i, sc := range scored {
		pairs[i] = similarity.Pair{ID: sc.ID, Score: sc.Score}
		signals[sc.ID] = sc.Signals
	}

	recs, err = s.ResolveMetadata(ctx, pairs)
	if err != nil {
		return nil, err
	}
	for i := range recs {
		sig := signals[recs[i].ID]
		sig.Content = sanitize.Score(sig.Content)
		sig.Collab = sanitize.Score(sig.Collab)
		sig.Popularity = sanitize.Score(sig.Popularity)
		recs[i].Signals = &sig
	}

	s.logger.Debug().
		Int64("article_id", id).
		Int("content", len(content)).
		Int("collab", len(collab[id])).
		Int("results", len(recs)).
		Msg("hybrid recommendation")
	return recs, nil
}
