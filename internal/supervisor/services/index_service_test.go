// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fakeIndex fails the first failures calls to Build.
type fakeIndex struct {
	mu       sync.Mutex
	calls    int
	failures int
}

func (f *fakeIndex) Build(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if f.calls <= f.failures {
		return 0, errors.New("corpus unavailable")
	}
	return 42, nil
}

func (f *fakeIndex) buildCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func runFor(t *testing.T, svc *IndexBuilderService, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
	}
}

func TestIndexBuilderService(t *testing.T) {
	tests := []struct {
		name     string
		failures int
		cfg      IndexBuilderConfig
		minCalls int
		maxCalls int
	}{
		{
			name:     "builds once without interval",
			cfg:      IndexBuilderConfig{},
			minCalls: 1,
			maxCalls: 1,
		},
		{
			name:     "retries until the first build succeeds",
			failures: 2,
			cfg:      IndexBuilderConfig{RetryInterval: 10 * time.Millisecond},
			minCalls: 3,
			maxCalls: 3,
		},
		{
			name:     "rebuilds on the interval",
			cfg:      IndexBuilderConfig{RebuildInterval: 20 * time.Millisecond},
			minCalls: 3,
			maxCalls: 20,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index := &fakeIndex{failures: tt.failures}
			runFor(t, NewIndexBuilderService(index, tt.cfg, zerolog.Nop()), 150*time.Millisecond)

			if got := index.buildCalls(); got < tt.minCalls || got > tt.maxCalls {
				t.Errorf("Build() called %d times, want %d..%d", got, tt.minCalls, tt.maxCalls)
			}
		})
	}
}

func TestNewIndexBuilderService_Defaults(t *testing.T) {
	svc := NewIndexBuilderService(&fakeIndex{}, IndexBuilderConfig{}, zerolog.Nop())
	if svc.config.RetryInterval != 30*time.Second || svc.config.BuildTimeout != 30*time.Minute {
		t.Errorf("config = %+v", svc.config)
	}
	if svc.String() != "index-builder" {
		t.Errorf("String() = %q", svc.String())
	}
}
