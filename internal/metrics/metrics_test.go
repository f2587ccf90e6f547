// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDBQuery(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("SELECT", "articles", "connection refused"))

	RecordDBQuery("SELECT", "articles", 5*time.Millisecond, nil)
	RecordDBQuery("SELECT", "articles", 5*time.Millisecond, errors.New("connection refused"))

	after := testutil.ToFloat64(DBQueryErrors.WithLabelValues("SELECT", "articles", "connection refused"))
	if after-before != 1 {
		t.Errorf("error counter delta = %v, want 1", after-before)
	}
}

func TestRecordDBQueryTruncatesError(t *testing.T) {
	long := "this is a very long error message that exceeds fifty characters and should be truncated"
	RecordDBQuery("INSERT", "user_interactions", time.Millisecond, errors.New(long))

	got := testutil.ToFloat64(DBQueryErrors.WithLabelValues("INSERT", "user_interactions", long[:50]))
	if got < 1 {
		t.Errorf("expected truncated error label to be recorded, got %v", got)
	}
}

func TestRecordRecommendationOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		results int
		err     error
		label   string
	}{
		{"ok", 5, nil, "ok"},
		{"empty", 0, nil, "empty"},
		{"error", 0, errors.New("store fault"), "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := RecommendationsServed.WithLabelValues("hybrid", tt.label)
			before := testutil.ToFloat64(c)
			RecordRecommendation("hybrid", tt.results, time.Millisecond, tt.err)
			if got := testutil.ToFloat64(c) - before; got != 1 {
				t.Errorf("outcome %q delta = %v, want 1", tt.label, got)
			}
		})
	}
}

func TestSetEmbeddingStore(t *testing.T) {
	SetEmbeddingStore(true, 120, 384)
	if got := testutil.ToFloat64(EmbeddingStoreRows); got != 120 {
		t.Errorf("rows = %v, want 120", got)
	}
	if got := testutil.ToFloat64(EmbeddingStoreLoaded); got != 1 {
		t.Errorf("loaded = %v, want 1", got)
	}

	SetEmbeddingStore(false, 120, 384)
	if got := testutil.ToFloat64(EmbeddingStoreLoaded); got != 0 {
		t.Errorf("loaded = %v, want 0", got)
	}
	if got := testutil.ToFloat64(EmbeddingStoreDimensions); got != 0 {
		t.Errorf("dims = %v, want 0", got)
	}
}

func TestRecordCircuitBreakerTransition(t *testing.T) {
	RecordCircuitBreakerTransition("embedder", "closed", "open", 2)
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("embedder")); got != 2 {
		t.Errorf("state = %v, want 2", got)
	}
	RecordCircuitBreakerTransition("embedder", "open", "half-open", 1)
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("embedder")); got != 1 {
		t.Errorf("state = %v, want 1", got)
	}
}

func TestRecordEmbedderRequestCountsTextsOnSuccess(t *testing.T) {
	before := testutil.ToFloat64(EmbedderTexts)
	RecordEmbedderRequest("hash", 4, nil)
	RecordEmbedderRequest("hash", 10, errors.New("timeout"))
	if got := testutil.ToFloat64(EmbedderTexts) - before; got != 4 {
		t.Errorf("texts delta = %v, want 4", got)
	}
}

func TestRecordRAGIndexBuild(t *testing.T) {
	RecordRAGIndexBuild(42, time.Second, nil)
	if got := testutil.ToFloat64(RAGIndexChunks); got != 42 {
		t.Errorf("chunks = %v, want 42", got)
	}
	RecordRAGIndexBuild(0, time.Second, errors.New("embedder down"))
	if got := testutil.ToFloat64(RAGIndexChunks); got != 42 {
		t.Errorf("failed build should not reset chunks, got %v", got)
	}
}

func TestRecordCacheAccess(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits.WithLabelValues("signals"))
	misses := testutil.ToFloat64(CacheMisses.WithLabelValues("signals"))
	RecordCacheAccess("signals", true)
	RecordCacheAccess("signals", false)
	RecordCacheAccess("signals", false)
	if got := testutil.ToFloat64(CacheHits.WithLabelValues("signals")) - hits; got != 1 {
		t.Errorf("hits delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("signals")) - misses; got != 2 {
		t.Errorf("misses delta = %v, want 2", got)
	}
}

func TestConcurrentRecording(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			TrackActiveRequest(true)
			RecordAPIRequest("GET", "/api/search", StatusLabel(200), time.Millisecond)
			RecordEventPublished("view")
			TrackActiveRequest(false)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(APIActiveRequests); got != 0 {
		t.Errorf("active requests = %v, want 0", got)
	}
}
