// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package topics

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/goccy/go-json"

	"github.com/tomtom215/newsprep/internal/embedding"
)

// Keywords maps a topic id to its keywords, most representative first.
type Keywords map[int64][]string

// LoadKeywords reads the topic keyword artifact. A missing file (or an empty
// path) yields an empty table.
func LoadKeywords(path string) (Keywords, error) {
	if path == "" {
		return Keywords{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Keywords{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read topic keywords: %w", err)
	}
	return DecodeKeywords(data)
}

// DecodeKeywords parses {"<topic>": ["kw", ...]} or {"<topic>": [["kw", weight], ...]}.
func DecodeKeywords(data []byte) (Keywords, error) {
	var raw map[string][]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: topic keywords: %w", embedding.ErrArtifactInvalid, err)
	}

	out := make(Keywords, len(raw))
	for key, entries := range raw {
		id, err := strconv.ParseInt(strings.TrimSpace(key), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: topic keywords: key %q is not an integer", embedding.ErrArtifactInvalid, key)
		}

		words := make([]string, 0, len(entries))
		for _, entry := range entries {
			word, err := decodeKeyword(entry)
			if err != nil {
				return nil, fmt.Errorf("%w: topic keywords: topic %d: %w", embedding.ErrArtifactInvalid, id, err)
			}
			if word != "" {
				words = append(words, word)
			}
		}
		out[id] = words
	}
	return out, nil
}

func decodeKeyword(entry json.RawMessage) (string, error) {
	var word string
	if err := json.Unmarshal(entry, &word); err == nil {
		return strings.TrimSpace(word), nil
	}

	var pair []any
	if err := json.Unmarshal(entry, &pair); err != nil || len(pair) == 0 {
		return "", fmt.Errorf("entry %s is neither a keyword nor a [keyword, weight] pair", entry)
	}
	word, ok := pair[0].(string)
	if !ok {
		return "", fmt.Errorf("entry %s has a non-string keyword", entry)
	}
	return strings.TrimSpace(word), nil
}

// TitleCase upper-cases the first letter of every run of letters and
// lower-cases the rest.
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) && !prevLetter:
			b.WriteRune(unicode.ToUpper(r))
			prevLetter = true
		case unicode.IsLetter(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}
