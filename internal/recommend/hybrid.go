// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package recommend

import (
	"sort"

	"github.com/tomtom215/newsprep/internal/similarity"
)

// Scored is a hybrid candidate with its blended score.
type Scored struct {
	ID      int64
	Score   float64
	Signals Signals
}

// Blend ranks the union of content neighbours and collaborative candidates.
//
// Candidates are taken in content order, then collaborative order, skipping
// ids already seen. Content and collaborative scores default to 0 for
// candidates that only one source produced; a repeated collaborative
// candidate keeps its last count. Popularity is count/max(table), and 0 when
// the table is empty or its maximum is not positive.
//
// The result is sorted by blended score descending; equal scores keep
// candidate order.
func Blend(content []similarity.Pair, collab []CollabEntry, pop PopularityTable, w Weights) []Scored {
	order := make([]int64, 0, len(content)+len(collab))
	seen := make(map[int64]struct{}, len(content)+len(collab))
	add := func(id int64) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		order = append(order, id)
	}

	contentScore := make(map[int64]float64, len(content))
	for _, p := range content {
		if _, ok := contentScore[p.ID]; !ok {
			contentScore[p.ID] = p.Score
		}
		add(p.ID)
	}

	collabScore := make(map[int64]float64, len(collab))
	for _, e := range collab {
		collabScore[e.ID] = e.Count
		add(e.ID)
	}

	popMax := pop.Max()
	popWeight := w.PopularityWeight()

	scored := make([]Scored, len(order))
	for i, id := range order {
		sig := Signals{
			Content: contentScore[id],
			Collab:  collabScore[id],
		}
		if popMax > 0 {
			sig.Popularity = pop[id] / popMax
		}
		scored[i] = Scored{
			ID:      id,
			Score:   w.Alpha*sig.Content + w.Beta*sig.Collab + popWeight*sig.Popularity,
			Signals: sig,
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}
