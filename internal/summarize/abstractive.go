// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/newsprep/internal/llm"
	"github.com/tomtom215/newsprep/internal/rag"
)

// Map-reduce chunking for long articles.
const (
	mapChunkSize    = 1800
	mapChunkOverlap = 200
	mapConcurrency  = 3
)

// ErrMalformedOutput is returned when the reduce step yields no usable JSON.
var ErrMalformedOutput = errors.New("model returned malformed summary")

// Completer is the subset of llm.Client used for summaries.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Abstract is an LLM-written summary.
type Abstract struct {
	SummaryParagraph string   `json:"summary_paragraph"`
	KeyPoints        []string `json:"key_points"`
}

const mapPrompt = "Summarize the following part in 2-3 clear sentences:\n\n%s"

const reducePrompt = `You are a world-class summarizer.
Combine the partial summaries below into:
- ONE clear summary paragraph
- 3 to 5 concise bullet points

Return ONLY valid JSON with this shape:
{"summary_paragraph": "<paragraph>", "key_points": ["<point>", "..."]}

Partial summaries:
%s`

// Abstractive summarizes text with client in two steps: each chunk is
// summarized on its own, then the partial summaries are combined into a
// JSON paragraph plus key points.
func Abstractive(ctx context.Context, client Completer, text string) (*Abstract, error) {
	if strings.TrimSpace(text) == "" {
		return &Abstract{KeyPoints: []string{}}, nil
	}
	ctx = llm.WithPurpose(ctx, "summarize")

	chunks := rag.NewSplitter(mapChunkSize, mapChunkOverlap).Split(text)
	partials := make([]string, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(mapConcurrency)
	for i, chunk := range chunks {
		g.Go(func() error {
			out, err := client.Complete(gctx, fmt.Sprintf(mapPrompt, chunk))
			if err != nil {
				return fmt.Errorf("summarize chunk %d: %w", i, err)
			}
			partials[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	raw, err := client.Complete(ctx, fmt.Sprintf(reducePrompt, strings.Join(partials, "\n")))
	if err != nil {
		return nil, fmt.Errorf("combine summaries: %w", err)
	}
	return parseAbstract(raw)
}

// parseAbstract decodes raw, retrying on the outermost {...} span when the
// model wraps the JSON in prose or code fences.
func parseAbstract(raw string) (*Abstract, error) {
	var out Abstract
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}")
		if start < 0 || end <= start {
			return nil, fmt.Errorf("%w: no JSON object", ErrMalformedOutput)
		}
		out = Abstract{}
		if err := json.Unmarshal([]byte(raw[start:end+1]), &out); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
		}
	}
	out.SummaryParagraph = strings.TrimSpace(out.SummaryParagraph)
	if out.SummaryParagraph == "" {
		return nil, fmt.Errorf("%w: empty summary_paragraph", ErrMalformedOutput)
	}
	if out.KeyPoints == nil {
		out.KeyPoints = []string{}
	}
	return &out, nil
}
