// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package embedder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/newsprep/internal/config"
)

// ErrDisabled is returned by New when no encoder is configured.
var ErrDisabled = errors.New("embedder disabled")

// Embedder turns texts into dense vectors.
type Embedder interface {
	// Embed returns one vector per text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the vector width, or 0 when the provider decides.
	Dimensions() int

	// Provider names the backend for logs and metrics.
	Provider() string
}

// New builds the encoder selected by cfg.Provider. Provider "none" (or empty)
// returns ErrDisabled. A positive QueryCacheTTL wraps the encoder in a query cache.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg *config.EmbedderConfig, logger zerolog.Logger) (Embedder, error) {
	var (
		e   Embedder
		err error
	)
	switch strings.ToLower(cfg.Provider) {
	case "", "none":
		return nil, ErrDisabled
	case "hash":
		e = NewHashEmbedder(cfg.Dimensions)
	case "openai", "ollama":
		e, err = NewOpenAIEmbedder(cfg, logger)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown embedder provider %q", cfg.Provider)
	}

	if cfg.QueryCacheTTL > 0 {
		e = NewCached(e, defaultQueryCacheSize, cfg.QueryCacheTTL)
	}
	return e, nil
}

// EmbedOne encodes a single text.
func EmbedOne(ctx context.Context, e Embedder, text string) ([]float32, error) {
	vecs, err := e.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("embedder %s returned %d vectors for 1 text", e.Provider(), len(vecs))
	}
	return vecs[0], nil
}
