// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// IndexBuilder rebuilds a retrieval index from the article store.
// Satisfied by *rag.Index.
type IndexBuilder interface {
	Build(ctx context.Context) (int, error)
}

// IndexBuilderConfig holds configuration for the index builder service.
type IndexBuilderConfig struct {
	// RebuildInterval is how often to rebuild. Zero builds once.
	RebuildInterval time.Duration

	// RetryInterval spaces attempts while no build has succeeded yet.
	// Default: 30s
	RetryInterval time.Duration

	// BuildTimeout bounds a single build. Default: 30m
	BuildTimeout time.Duration
}

// IndexBuilderService builds the assistant's index at startup and rebuilds
// it on a schedule. A failed build keeps the previous index; until the
// first success the build is retried every RetryInterval.
type IndexBuilderService struct {
	index  IndexBuilder
	config IndexBuilderConfig
	logger zerolog.Logger
	name   string
}

// NewIndexBuilderService creates a new index builder service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewIndexBuilderService(index IndexBuilder, cfg IndexBuilderConfig, logger zerolog.Logger) *IndexBuilderService {
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 30 * time.Second
	}
	if cfg.BuildTimeout <= 0 {
		cfg.BuildTimeout = 30 * time.Minute
	}
	return &IndexBuilderService{
		index:  index,
		config: cfg,
		logger: logger.With().Str("service", "index-builder").Logger(),
		name:   "index-builder",
	}
}

// Serve implements the suture.Service interface.
func (s *IndexBuilderService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("rebuild_interval", s.config.RebuildInterval).
		Msg("index builder starting")

	built := s.build(ctx)
	for !built {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.config.RetryInterval):
			built = s.build(ctx)
		}
	}

	if s.config.RebuildInterval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.RebuildInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("index builder shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.build(ctx)
		}
	}
}

// build reports whether a build succeeded.
func (s *IndexBuilderService) build(ctx context.Context) bool {
	buildCtx, cancel := context.WithTimeout(ctx, s.config.BuildTimeout)
	defer cancel()

	start := time.Now()
	n, err := s.index.Build(buildCtx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn().Err(err).Msg("index build failed")
		}
		return false
	}
	s.logger.Info().
		Int("chunks", n).
		Dur("duration", time.Since(start)).
		Msg("index built")
	return true
}

// String returns the service name for logging.
func (s *IndexBuilderService) String() string {
	return s.name
}
