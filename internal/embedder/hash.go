// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package embedder

import (
	"context"
	"hash/fnv"
	"strings"
	"unicode"

	"github.com/tomtom215/newsprep/internal/embedding"
)

const defaultHashDimensions = 384

// HashEmbedder is a deterministic bag-of-words encoder using signed feature
// hashing of lowercase tokens. It needs no model server and is used for
// offline runs and tests. Identical texts produce identical vectors.
type HashEmbedder struct {
	dims int
}

// NewHashEmbedder creates an encoder with dims buckets (384 when dims <= 0).
func NewHashEmbedder(dims int) *HashEmbedder {
	if dims <= 0 {
		dims = defaultHashDimensions
	}
	return &HashEmbedder{dims: dims}
}

// Provider implements Embedder.
func (h *HashEmbedder) Provider() string {
	return "hash"
}

// Dimensions implements Embedder.
func (h *HashEmbedder) Dimensions() int {
	return h.dims
}

// Embed implements Embedder.
func (h *HashEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		out[i] = h.vector(t)
	}
	return out, nil
}

func (h *HashEmbedder) vector(text string) []float32 {
	v := make([]float32, h.dims)
	for _, tok := range Tokenize(text) {
		hasher := fnv.New64a()
		_, _ = hasher.Write([]byte(tok))
		sum := hasher.Sum64()
		bucket := int(sum % uint64(h.dims))
		if sum>>63 == 1 {
			v[bucket]--
		} else {
			v[bucket]++
		}
	}
	embedding.Normalize(v)
	return v
}

// Tokenize lowercases text and splits it on anything that is not a letter or digit.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
