// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package embedder

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/tomtom215/newsprep/internal/breaker"
	"github.com/tomtom215/newsprep/internal/config"
	"github.com/tomtom215/newsprep/internal/metrics"
)

const (
	defaultOllamaURL = "http://localhost:11434/v1"

	// maxParallelBatches bounds concurrent requests for one Embed call.
	maxParallelBatches = 4
)

// OpenAIEmbedder calls an OpenAI-compatible /embeddings endpoint
// (OpenAI, Ollama, vLLM, ...). Requests are batched, rate limited and sent
// through a circuit breaker.
type OpenAIEmbedder struct {
	client     *openai.Client
	provider   string
	model      string
	dimensions int
	batchSize  int
	timeout    time.Duration
	limiter    *rate.Limiter
	breaker    *breaker.Breaker[[][]float32]
	logger     zerolog.Logger
}

// NewOpenAIEmbedder creates a client for cfg.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewOpenAIEmbedder(cfg *config.EmbedderConfig, logger zerolog.Logger) (*OpenAIEmbedder, error) {
	provider := strings.ToLower(cfg.Provider)
	if cfg.Model == "" {
		return nil, fmt.Errorf("embedder model is required for provider %s", provider)
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	switch {
	case cfg.BaseURL != "":
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	case provider == "ollama":
		clientConfig.BaseURL = defaultOllamaURL
	}
	clientConfig.HTTPClient = &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        16,
			MaxIdleConnsPerHost: 8,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 64
	}

	limit := rate.Inf
	burst := 1
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
		burst = max(1, int(cfg.RequestsPerSecond))
	}

	return &OpenAIEmbedder{
		client:     openai.NewClientWithConfig(clientConfig),
		provider:   provider,
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
		batchSize:  batchSize,
		timeout:    timeout,
		limiter:    rate.NewLimiter(limit, burst),
		breaker:    breaker.New[[][]float32]("embedder-"+provider, breaker.DefaultSettings()),
		logger:     logger.With().Str("component", "embedder").Str("provider", provider).Logger(),
	}, nil
}

// Provider implements Embedder.
func (e *OpenAIEmbedder) Provider() string {
	return e.provider
}

// Dimensions implements Embedder.
func (e *OpenAIEmbedder) Dimensions() int {
	return e.dimensions
}

// Embed implements Embedder. Batches run concurrently; the first failure
// cancels the rest.
func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	out := make([][]float32, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelBatches)

	for start := 0; start < len(texts); start += e.batchSize {
		end := min(start+e.batchSize, len(texts))
		batch := texts[start:end]
		offset := start
		g.Go(func() error {
			vecs, err := e.embedBatch(gctx, batch)
			if err != nil {
				return err
			}
			copy(out[offset:], vecs)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *OpenAIEmbedder) embedBatch(ctx context.Context, batch []string) ([][]float32, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("embedder rate limit: %w", err)
	}

	vecs, err := e.breaker.Execute(func() ([][]float32, error) {
		reqCtx, cancel := context.WithTimeout(ctx, e.timeout)
		defer cancel()

		req := openai.EmbeddingRequest{
			Input: batch,
			Model: openai.EmbeddingModel(e.model),
		}
		// Ollama rejects the dimensions parameter.
		if e.provider == "openai" && e.dimensions > 0 {
			req.Dimensions = e.dimensions
		}

		resp, err := e.client.CreateEmbeddings(reqCtx, req)
		if err != nil {
			return nil, fmt.Errorf("create embeddings: %w", err)
		}
		return e.collect(resp, len(batch))
	})
	metrics.RecordEmbedderRequest(e.provider, len(batch), err)
	if err != nil {
		e.logger.Warn().Err(err).Int("texts", len(batch)).Msg("Embedding request failed")
		return nil, err
	}
	return vecs, nil
}

// collect orders response rows by index and checks their count and width.
func (e *OpenAIEmbedder) collect(resp openai.EmbeddingResponse, want int) ([][]float32, error) {
	if len(resp.Data) != want {
		return nil, fmt.Errorf("embedding response has %d rows for %d texts", len(resp.Data), want)
	}

	data := resp.Data
	sort.SliceStable(data, func(i, j int) bool { return data[i].Index < data[j].Index })

	vecs := make([][]float32, want)
	for i, d := range data {
		if e.dimensions > 0 && len(d.Embedding) != e.dimensions {
			return nil, fmt.Errorf("embedding width %d, want %d", len(d.Embedding), e.dimensions)
		}
		vecs[i] = d.Embedding
	}
	return vecs, nil
}
