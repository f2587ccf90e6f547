// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/newsprep/internal/cache"
	"github.com/tomtom215/newsprep/internal/metrics"
)

const (
	collabTable     = "collab"
	popularityTable = "popularity"
)

// SignalSource reads the collaborative and popularity artifacts. With a
// positive TTL decoded tables are cached; with TTL 0 every call re-reads the
// files so a refreshed artifact is picked up on the next request.
//
// A missing file yields an empty table. A file that exists but cannot be
// decoded is an error wrapping ErrSignalsInvalid.
type SignalSource struct {
	collabPath     string
	popularityPath string
	cache          *cache.Cache
	logger         zerolog.Logger
}

// NewSignalSource creates a source for the given artifact paths.
func NewSignalSource(collabPath, popularityPath string, ttl time.Duration, logger zerolog.Logger) *SignalSource {
	s := &SignalSource{
		collabPath:     collabPath,
		popularityPath: popularityPath,
		logger:         logger.With().Str("component", "signals").Logger(),
	}
	if ttl > 0 {
		s.cache = cache.New("signals", ttl)
	}
	return s
}

// Close stops the cache cleanup goroutine.
func (s *SignalSource) Close() {
	if s.cache != nil {
		s.cache.Close()
	}
}

// Collab returns the collaborative table.
func (s *SignalSource) Collab(ctx context.Context) (CollabTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.cache != nil {
		if v, ok := s.cache.Get(collabTable); ok {
			metrics.RecordSignalLoad(collabTable, "cached")
			return v.(CollabTable), nil
		}
	}

	data, ok, err := s.read(collabTable, s.collabPath)
	if err != nil || !ok {
		return CollabTable{}, err
	}
	table, err := DecodeCollab(data)
	if err != nil {
		metrics.RecordSignalLoad(collabTable, "invalid")
		return nil, fmt.Errorf("collaborative table %s: %w", s.collabPath, err)
	}
	metrics.RecordSignalLoad(collabTable, "loaded")
	if s.cache != nil {
		s.cache.Set(collabTable, table)
	}
	return table, nil
}

// Popularity returns the popularity table.
func (s *SignalSource) Popularity(ctx context.Context) (PopularityTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.cache != nil {
		if v, ok := s.cache.Get(popularityTable); ok {
			metrics.RecordSignalLoad(popularityTable, "cached")
			return v.(PopularityTable), nil
		}
	}

	data, ok, err := s.read(popularityTable, s.popularityPath)
	if err != nil || !ok {
		return PopularityTable{}, err
	}
	table, err := DecodePopularity(data)
	if err != nil {
		metrics.RecordSignalLoad(popularityTable, "invalid")
		return nil, fmt.Errorf("popularity table %s: %w", s.popularityPath, err)
	}
	metrics.RecordSignalLoad(popularityTable, "loaded")
	if s.cache != nil {
		s.cache.Set(popularityTable, table)
	}
	return table, nil
}

// Both loads the two tables concurrently.
func (s *SignalSource) Both(ctx context.Context) (CollabTable, PopularityTable, error) {
	var (
		collab CollabTable
		pop    PopularityTable
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		collab, err = s.Collab(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		pop, err = s.Popularity(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return collab, pop, nil
}

// read returns the file content, or ok=false when the file does not exist.
func (s *SignalSource) read(table, path string) (data []byte, ok bool, err error) {
	if path == "" {
		metrics.RecordSignalLoad(table, "missing")
		return nil, false, nil
	}
	data, err = os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		metrics.RecordSignalLoad(table, "missing")
		s.logger.Debug().Str("table", table).Str("path", path).Msg("Signal artifact missing, using empty table")
		return nil, false, nil
	}
	if err != nil {
		metrics.RecordSignalLoad(table, "invalid")
		return nil, false, fmt.Errorf("read %s table %s: %w", table, path, err)
	}
	return data, true, nil
}

// DecodeCollab parses {"<id>": [[candidate, count], ...]} converting every
// key and candidate to int64 once.
func DecodeCollab(data []byte) (CollabTable, error) {
	var raw map[string][][]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSignalsInvalid, err)
	}

	table := make(CollabTable, len(raw))
	for key, pairs := range raw {
		src, err := parseKey(key)
		if err != nil {
			return nil, err
		}
		entries := make([]CollabEntry, 0, len(pairs))
		for i, pair := range pairs {
			if len(pair) < 2 {
				return nil, fmt.Errorf("%w: entry %d of %q has %d values, want 2", ErrSignalsInvalid, i, key, len(pair))
			}
			id, ok := integral(pair[0])
			if !ok {
				return nil, fmt.Errorf("%w: candidate %v of %q is not an integer", ErrSignalsInvalid, pair[0], key)
			}
			entries = append(entries, CollabEntry{ID: id, Count: pair[1]})
		}
		table[src] = entries
	}
	return table, nil
}

// DecodePopularity parses {"<id>": count}.
func DecodePopularity(data []byte) (PopularityTable, error) {
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSignalsInvalid, err)
	}

	table := make(PopularityTable, len(raw))
	for key, count := range raw {
		id, err := parseKey(key)
		if err != nil {
			return nil, err
		}
		table[id] = count
	}
	return table, nil
}

// parseKey converts a JSON object key such as "42" or "42.0" to an id.
func parseKey(key string) (int64, error) {
	key = strings.TrimSpace(key)
	if id, err := strconv.ParseInt(key, 10, 64); err == nil {
		return id, nil
	}
	if f, err := strconv.ParseFloat(key, 64); err == nil {
		if id, ok := integral(f); ok {
			return id, nil
		}
	}
	return 0, fmt.Errorf("%w: key %q is not an article id", ErrSignalsInvalid, key)
}

func integral(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, false
	}
	return int64(f), true
}
