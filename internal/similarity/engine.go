// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package similarity

import (
	"math"
	"sort"

	"github.com/tomtom215/newsprep/internal/embedding"
)

// Matrix is the read side of a loaded, row-normalized embedding store.
// *embedding.Store implements it.
type Matrix interface {
	Len() int
	Dim() int
	Row(i int) []float32
	IDAt(i int) int64
	Vector(id int64) ([]float32, bool)
}

// Pair is an article identifier with its cosine similarity score.
type Pair struct {
	ID    int64   `json:"id"`
	Score float64 `json:"score"`
}

// Engine ranks the rows of a Matrix. It holds no mutable state and is safe
// for concurrent use once the matrix is loaded.
type Engine struct {
	m Matrix
}

// NewEngine creates an engine over m.
func NewEngine(m Matrix) *Engine {
	return &Engine{m: m}
}

// RankByVector returns at most topN rows ordered by descending cosine
// similarity to vec, skipping ids in exclude. A zero or non-finite vector,
// a width mismatch or topN <= 0 yields an empty result.
func (e *Engine) RankByVector(vec []float32, topN int, exclude map[int64]struct{}) []Pair {
	if topN <= 0 || e.m.Len() == 0 || len(vec) != e.m.Dim() {
		return []Pair{}
	}

	q := append([]float32(nil), vec...)
	if embedding.Normalize(q) == 0 {
		return []Pair{}
	}

	type scored struct {
		row   int
		score float64
	}
	n := e.m.Len()
	all := make([]scored, 0, n)
	for i := 0; i < n; i++ {
		if _, skip := exclude[e.m.IDAt(i)]; skip {
			continue
		}
		all = append(all, scored{row: i, score: Dot(q, e.m.Row(i))})
	}

	sort.SliceStable(all, func(a, b int) bool {
		return all[a].score > all[b].score
	})

	if len(all) > topN {
		all = all[:topN]
	}
	out := make([]Pair, len(all))
	for i, s := range all {
		out[i] = Pair{ID: e.m.IDAt(s.row), Score: s.score}
	}
	return out
}

// RankByArticle ranks against the stored vector of id. An id without an
// embedding yields an empty result, not an error.
func (e *Engine) RankByArticle(id int64, topN int, excludeSelf bool) []Pair {
	vec, ok := e.m.Vector(id)
	if !ok {
		return []Pair{}
	}
	var exclude map[int64]struct{}
	if excludeSelf {
		exclude = map[int64]struct{}{id: {}}
	}
	return e.RankByVector(vec, topN, exclude)
}

// CentroidRank ranks against the mean vector of ids. Ids without an
// embedding are skipped; if none resolve the result is empty.
func (e *Engine) CentroidRank(ids []int64, topN int) []Pair {
	return e.CentroidRankExcluding(ids, topN, nil)
}

// CentroidRankExcluding is CentroidRank with an explicit exclusion set.
func (e *Engine) CentroidRankExcluding(ids []int64, topN int, exclude map[int64]struct{}) []Pair {
	centroid, ok := e.Centroid(ids)
	if !ok {
		return []Pair{}
	}
	return e.RankByVector(centroid, topN, exclude)
}

// Centroid returns the arithmetic mean of the stored vectors of ids and
// whether at least one id resolved.
func (e *Engine) Centroid(ids []int64) ([]float32, bool) {
	dim := e.m.Dim()
	if dim == 0 {
		return nil, false
	}
	sum := make([]float64, dim)
	count := 0
	for _, id := range ids {
		vec, ok := e.m.Vector(id)
		if !ok {
			continue
		}
		for j, x := range vec {
			sum[j] += float64(x)
		}
		count++
	}
	if count == 0 {
		return nil, false
	}

	centroid := make([]float32, dim)
	for j := range sum {
		centroid[j] = float32(sum[j] / float64(count))
	}
	return centroid, true
}

// Dot returns the dot product of a and b accumulated in float64.
// Both slices must have the same length.
func Dot(a, b []float32) float64 {
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}

// Cosine returns the cosine similarity of a and b, or 0 when either is zero
// or not finite.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	na, nb := embedding.Norm(a), embedding.Norm(b)
	if !finitePositive(na) || !finitePositive(nb) {
		return 0
	}
	return Dot(a, b) / (na * nb)
}

func finitePositive(x float64) bool {
	return x > 0 && !math.IsInf(x, 0)
}
