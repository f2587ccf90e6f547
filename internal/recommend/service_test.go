// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package recommend

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/newsprep/internal/database"
	"github.com/tomtom215/newsprep/internal/embedding"
)

// fakeArticles serves metadata for a fixed set of ids.
type fakeArticles struct {
	meta   map[int64]database.ArticleMeta
	topics map[int64][]int64
	err    error
}

func (f *fakeArticles) ArticleMeta(_ context.Context, ids []int64, _ int) (map[int64]database.ArticleMeta, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[int64]database.ArticleMeta)
	for _, id := range ids {
		if m, ok := f.meta[id]; ok {
			out[id] = m
		}
	}
	return out, nil
}

func (f *fakeArticles) ArticleIDsByTopic(_ context.Context, topicID int64) ([]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.topics[topicID], nil
}

func newFakeArticles() *fakeArticles {
	meta := make(map[int64]database.ArticleMeta)
	// Article 5 has an embedding but no row
	for _, id := range []int64{1, 2, 3, 4} {
		meta[id] = database.ArticleMeta{ID: id, Title: "article", Excerpt: "text"}
	}
	return &fakeArticles{
		meta:   meta,
		topics: map[int64][]int64{1: {1, 99}, 2: {99}},
	}
}

func newTestStore(t *testing.T) *embedding.Store {
	t.Helper()
	store, err := embedding.NewFromMatrix(
		[]int64{1, 2, 3, 4, 5},
		[][]float32{{1, 0}, {0.9, 0.1}, {0, 1}, {-1, 0}, {0.8, 0.2}},
	)
	if err != nil {
		t.Fatalf("NewFromMatrix() error = %v", err)
	}
	return store
}

func newTestService(t *testing.T, store *embedding.Store, articles ArticleStore, collab, pop string) *Service {
	t.Helper()
	dir := t.TempDir()
	collabPath := filepath.Join(dir, "missing-collab.json")
	popPath := filepath.Join(dir, "missing-pop.json")
	if collab != "" {
		collabPath = writeFile(t, dir, "collab.json", collab)
	}
	if pop != "" {
		popPath = writeFile(t, dir, "pop.json", pop)
	}
	signals := NewSignalSource(collabPath, popPath, 0, zerolog.Nop())
	t.Cleanup(signals.Close)

	svc, err := NewService(DefaultConfig(), DefaultWeights(), store, articles, signals, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc
}

func recIDs(recs []Recommendation) []int64 {
	out := make([]int64, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func TestNewService_InvalidDefaults(t *testing.T) {
	_, err := NewService(DefaultConfig(), Weights{Alpha: 0.9, Beta: 0.9}, newTestStore(t), newFakeArticles(), nil, zerolog.Nop())
	if !errors.Is(err, ErrInvalidWeights) {
		t.Errorf("NewService() error = %v, want ErrInvalidWeights", err)
	}
}

func TestRecommendByArticle(t *testing.T) {
	svc := newTestService(t, newTestStore(t), newFakeArticles(), "", "")

	pairs, err := svc.SimilarByArticle(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("SimilarByArticle() error = %v", err)
	}
	if len(pairs) != 3 || pairs[0].ID != 2 || pairs[1].ID != 5 || pairs[2].ID != 3 {
		t.Fatalf("SimilarByArticle() = %v, want ids [2 5 3]", pairs)
	}

	recs, err := svc.RecommendByArticle(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("RecommendByArticle() error = %v", err)
	}
	// 5 has no article row and is dropped; order and scores follow the pairs
	if !equalIDs(recIDs(recs), []int64{2, 3}) {
		t.Errorf("RecommendByArticle() ids = %v, want [2 3]", recIDs(recs))
	}
	if recs[0].Score != pairs[0].Score {
		t.Errorf("score = %v, want %v", recs[0].Score, pairs[0].Score)
	}
	if recs[0].Signals != nil {
		t.Error("content recommendations should not carry signals")
	}

	unknown, err := svc.RecommendByArticle(context.Background(), 12345, 3)
	if err != nil || len(unknown) != 0 {
		t.Errorf("RecommendByArticle(unknown) = %v, %v, want empty", unknown, err)
	}
}

func TestRecommendByTopic(t *testing.T) {
	svc := newTestService(t, newTestStore(t), newFakeArticles(), "", "")
	ctx := context.Background()

	pairs, err := svc.SimilarByTopic(ctx, 1, 2)
	if err != nil {
		t.Fatalf("SimilarByTopic() error = %v", err)
	}
	// Centroid of the only resolvable article equals its own vector
	if len(pairs) != 2 || pairs[0].ID != 1 || math.Abs(pairs[0].Score-1) > 1e-6 {
		t.Errorf("SimilarByTopic(1) = %v", pairs)
	}

	empty, err := svc.RecommendByTopic(ctx, 2, 5)
	if err != nil || len(empty) != 0 {
		t.Errorf("RecommendByTopic(no embeddings) = %v, %v, want empty", empty, err)
	}
}

func TestCollaborative(t *testing.T) {
	svc := newTestService(t, newTestStore(t), newFakeArticles(),
		`{"1": [[3, 4], [77, 3], [2, 1], [4, 1]]}`, "")

	recs, err := svc.Collaborative(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("Collaborative() error = %v", err)
	}
	// The first three entries are taken, then 77 is dropped for lacking a row
	if !equalIDs(recIDs(recs), []int64{3, 2}) {
		t.Fatalf("Collaborative() ids = %v, want [3 2]", recIDs(recs))
	}
	if recs[0].Score != 4 || recs[1].Score != 1 {
		t.Errorf("scores = %v, %v, want counts 4 and 1", recs[0].Score, recs[1].Score)
	}

	none, err := svc.Collaborative(context.Background(), 2, 3)
	if err != nil || len(none) != 0 {
		t.Errorf("Collaborative(no entries) = %v, %v", none, err)
	}
}

func TestHybrid(t *testing.T) {
	svc := newTestService(t, newTestStore(t), newFakeArticles(),
		`{"1": [[3, 2], [4, 1]]}`, `{"2": 10, "3": 5}`)

	recs, err := svc.Hybrid(context.Background(), 1, 8, nil)
	if err != nil {
		t.Fatalf("Hybrid() error = %v", err)
	}
	// Candidates 2, 5, 3, 4 score about 0.80, 0.68, 0.45, -0.5; 5 has no row
	if !equalIDs(recIDs(recs), []int64{2, 3, 4}) {
		t.Fatalf("Hybrid() ids = %v, want [2 3 4]", recIDs(recs))
	}

	three := recs[1]
	if three.Signals == nil {
		t.Fatal("hybrid result missing signals")
	}
	if three.Signals.Content != 0 || three.Signals.Collab != 2 || three.Signals.Popularity != 0.5 {
		t.Errorf("signals of 3 = %+v", *three.Signals)
	}
	if math.Abs(three.Score-0.45) > 1e-9 {
		t.Errorf("score of 3 = %v, want 0.45", three.Score)
	}

	top, err := svc.Hybrid(context.Background(), 1, 1, nil)
	if err != nil || !equalIDs(recIDs(top), []int64{2}) {
		t.Errorf("Hybrid(n=1) = %v, %v", recIDs(top), err)
	}
}

func TestHybrid_CollabOnlyForUnknownArticle(t *testing.T) {
	svc := newTestService(t, newTestStore(t), newFakeArticles(), `{"500": [[4, 3], [2, 1]]}`, "")

	recs, err := svc.Hybrid(context.Background(), 500, 8, nil)
	if err != nil {
		t.Fatalf("Hybrid() error = %v", err)
	}
	if !equalIDs(recIDs(recs), []int64{4, 2}) {
		t.Errorf("Hybrid(unknown) ids = %v, want collaborative candidates [4 2]", recIDs(recs))
	}
}

func TestHybrid_InvalidWeights(t *testing.T) {
	svc := newTestService(t, newTestStore(t), newFakeArticles(), "", "")

	w := Weights{Alpha: 0.9, Beta: 0.5}
	if _, err := svc.Hybrid(context.Background(), 1, 8, &w); !errors.Is(err, ErrInvalidWeights) {
		t.Errorf("Hybrid() error = %v, want ErrInvalidWeights", err)
	}
}

func TestHybrid_InvalidArtifact(t *testing.T) {
	svc := newTestService(t, newTestStore(t), newFakeArticles(), `{broken`, "")

	if _, err := svc.Hybrid(context.Background(), 1, 8, nil); !errors.Is(err, ErrSignalsInvalid) {
		t.Errorf("Hybrid() error = %v, want ErrSignalsInvalid", err)
	}
}

func TestService_StoreNotLoaded(t *testing.T) {
	dir := t.TempDir()
	store := embedding.NewStore(filepath.Join(dir, "e.npy"), filepath.Join(dir, "i.npy"), zerolog.Nop())
	svc := newTestService(t, store, newFakeArticles(), `{"1": [[2, 1]]}`, "")
	ctx := context.Background()

	if _, err := svc.RecommendByArticle(ctx, 1, 3); !errors.Is(err, embedding.ErrArtifactMissing) {
		t.Errorf("RecommendByArticle() error = %v, want ErrArtifactMissing", err)
	}
	if _, err := svc.RecommendByTopic(ctx, 1, 3); !errors.Is(err, embedding.ErrArtifactMissing) {
		t.Errorf("RecommendByTopic() error = %v, want ErrArtifactMissing", err)
	}
	if _, err := svc.Hybrid(ctx, 1, 3, nil); !errors.Is(err, embedding.ErrArtifactMissing) {
		t.Errorf("Hybrid() error = %v, want ErrArtifactMissing", err)
	}

	// Collaborative recommendations do not need embeddings
	recs, err := svc.Collaborative(ctx, 1, 3)
	if err != nil || len(recs) != 1 {
		t.Errorf("Collaborative() = %v, %v", recs, err)
	}
}

func TestService_StoreFault(t *testing.T) {
	articles := newFakeArticles()
	articles.err = errors.New("connection reset")
	svc := newTestService(t, newTestStore(t), articles, "", "")
	ctx := context.Background()

	if _, err := svc.RecommendByArticle(ctx, 1, 3); !errors.Is(err, ErrStoreFault) {
		t.Errorf("RecommendByArticle() error = %v, want ErrStoreFault", err)
	}
	if _, err := svc.SimilarByTopic(ctx, 1, 3); !errors.Is(err, ErrStoreFault) {
		t.Errorf("SimilarByTopic() error = %v, want ErrStoreFault", err)
	}
}

func TestConfigClampN(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		in, want int
	}{
		{0, 8},
		{-3, 8},
		{5, 5},
		{1000, 100},
	}
	for _, tt := range tests {
		if got := cfg.clampN(tt.in); got != tt.want {
			t.Errorf("clampN(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
