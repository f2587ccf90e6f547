// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package summarize

import "strings"

// DefaultSentences is the sentence budget of an extractive summary.
const DefaultSentences = 2

// Extract is an extractive summary.
type Extract struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
}

// Extractive summarizes text by sentence selection. Text with at most n
// sentences is returned whole; longer text is reduced to its first and last
// sentence.
func Extractive(text string, n int) Extract {
	if n <= 0 {
		n = DefaultSentences
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Extract{KeyPoints: []string{}}
	}

	var sentences []string
	for _, s := range strings.Split(text, ".") {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}
	if len(sentences) <= n {
		if sentences == nil {
			sentences = []string{}
		}
		return Extract{Summary: text, KeyPoints: sentences}
	}

	key := []string{sentences[0], sentences[len(sentences)-1]}
	return Extract{Summary: strings.Join(key, ". ") + ".", KeyPoints: key}
}
