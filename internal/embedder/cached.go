// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package embedder

import (
	"context"
	"time"

	"github.com/tomtom215/newsprep/internal/cache"
)

const defaultQueryCacheSize = 2048

// Cached memoizes single-text calls, which are search and ask queries.
// Multi-text calls pass straight through.
type Cached struct {
	inner Embedder
	lru   *cache.LRU[[]float32]
}

// NewCached wraps e with an LRU of capacity entries expiring after ttl.
func NewCached(e Embedder, capacity int, ttl time.Duration) *Cached {
	return &Cached{
		inner: e,
		lru:   cache.NewLRU[[]float32]("query_embeddings", capacity, ttl),
	}
}

// Provider implements Embedder.
func (c *Cached) Provider() string {
	return c.inner.Provider()
}

// Dimensions implements Embedder.
func (c *Cached) Dimensions() int {
	return c.inner.Dimensions()
}

// Embed implements Embedder. Returned vectors are shared and must not be modified.
func (c *Cached) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) != 1 {
		return c.inner.Embed(ctx, texts)
	}
	if v, ok := c.lru.Get(texts[0]); ok {
		return [][]float32{v}, nil
	}
	vecs, err := c.inner.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vecs) == 1 {
		c.lru.Add(texts[0], vecs[0])
	}
	return vecs, nil
}
