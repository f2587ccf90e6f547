// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package search

import (
	"sort"
	"strings"

	"github.com/tomtom215/newsprep/internal/database"
)

const (
	titleWeight = 2
	textWeight  = 1
)

// KeywordScore scores doc against a lowercased query: 2 for a title
// substring match plus 1 for a text match.
func KeywordScore(doc *database.CorpusDoc, lowerQuery string) int {
	score := 0
	if strings.Contains(strings.ToLower(doc.Title), lowerQuery) {
		score += titleWeight
	}
	if strings.Contains(strings.ToLower(doc.Text), lowerQuery) {
		score += textWeight
	}
	return score
}

// rankKeyword returns the top k matching docs. Equal scores keep corpus order.
func rankKeyword(docs []database.CorpusDoc, query string, k int) []KeywordHit {
	q := strings.ToLower(query)
	hits := make([]KeywordHit, 0)
	if q == "" || k <= 0 {
		return hits
	}

	for i := range docs {
		d := &docs[i]
		score := KeywordScore(d, q)
		if score == 0 {
			continue
		}
		hits = append(hits, KeywordHit{
			ID:      d.ID,
			Title:   d.Title,
			Text:    d.Text,
			TopicID: d.TopicID,
			Score:   float64(score),
		})
	}

	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].Score > hits[b].Score
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}
