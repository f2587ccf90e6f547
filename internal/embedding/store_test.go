// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package embedding

import (
	"errors"
	"math"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

func writeArtifacts(t *testing.T, rows [][]float32, ids []int64) (string, string) {
	t.Helper()
	dir := t.TempDir()
	embPath := filepath.Join(dir, "embeddings.npy")
	idsPath := filepath.Join(dir, "article_ids.npy")

	flat := make([]float32, 0)
	for _, r := range rows {
		flat = append(flat, r...)
	}
	writeNPY(t, embPath, "<f4", []int{len(rows), len(rows[0])}, flat)
	writeNPY(t, idsPath, "<i8", []int{len(ids)}, ids)
	return embPath, idsPath
}

func TestStoreLoadNormalizes(t *testing.T) {
	embPath, idsPath := writeArtifacts(t, [][]float32{
		{3, 4},
		{0, 0},
		{1, 1},
	}, []int64{11, 12, 13})

	s := NewStore(embPath, idsPath, zerolog.Nop())
	if s.Loaded() {
		t.Fatal("store reports loaded before Load()")
	}
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if s.Len() != 3 || s.Dim() != 2 {
		t.Fatalf("Len/Dim = %d/%d, want 3/2", s.Len(), s.Dim())
	}
	for i := 0; i < s.Len(); i++ {
		n := Norm(s.Row(i))
		if s.IDAt(i) == 12 {
			if n != 0 {
				t.Errorf("zero row norm = %v, want 0", n)
			}
			continue
		}
		if math.Abs(n-1) > 1e-6 {
			t.Errorf("row %d norm = %v, want 1", i, n)
		}
	}

	v, ok := s.Vector(11)
	if !ok || math.Abs(float64(v[0])-0.6) > 1e-6 || math.Abs(float64(v[1])-0.8) > 1e-6 {
		t.Errorf("Vector(11) = %v, %v", v, ok)
	}
}

func TestStoreLoadIdempotent(t *testing.T) {
	embPath, idsPath := writeArtifacts(t, [][]float32{{1, 0}}, []int64{1})
	s := NewStore(embPath, idsPath, zerolog.Nop())

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.Load()
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
	}
	select {
	case <-s.Ready():
	default:
		t.Error("Ready() not closed after load")
	}
}

func TestStoreLoadMissing(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "a.npy"), filepath.Join(dir, "b.npy"), zerolog.Nop())

	err := s.Load()
	if !errors.Is(err, ErrArtifactMissing) {
		t.Fatalf("Load() error = %v, want ErrArtifactMissing", err)
	}
	if s.Loaded() || s.Len() != 0 {
		t.Error("failed load must leave the store unloaded")
	}
	if _, ok := s.IndexOf(1); ok {
		t.Error("IndexOf on an unloaded store should miss")
	}
}

func TestStoreLoadLengthMismatch(t *testing.T) {
	embPath, idsPath := writeArtifacts(t, [][]float32{{1, 0}, {0, 1}}, []int64{1})
	s := NewStore(embPath, idsPath, zerolog.Nop())

	if err := s.Load(); !errors.Is(err, ErrArtifactInvalid) {
		t.Fatalf("Load() error = %v, want ErrArtifactInvalid", err)
	}
}

func TestNewFromMatrix(t *testing.T) {
	src := [][]float32{{2, 0}, {0, 5}}
	s, err := NewFromMatrix([]int64{7, 7}, src)
	if err != nil {
		t.Fatalf("NewFromMatrix() error = %v", err)
	}

	// Input rows are copied, not normalized in place.
	if src[0][0] != 2 {
		t.Errorf("source row mutated: %v", src[0])
	}
	// Duplicate ids: last write wins.
	if i, ok := s.IndexOf(7); !ok || i != 1 {
		t.Errorf("IndexOf(7) = %d, %v, want 1, true", i, ok)
	}

	if _, err := NewFromMatrix([]int64{1, 2}, [][]float32{{1, 0}, {1}}); !errors.Is(err, ErrArtifactInvalid) {
		t.Errorf("ragged rows error = %v, want ErrArtifactInvalid", err)
	}
}

func TestNormalizeZero(t *testing.T) {
	v := []float32{0, 0, 0}
	if n := Normalize(v); n != 0 {
		t.Errorf("Normalize(zero) = %v, want 0", n)
	}
	for _, x := range v {
		if x != 0 || math.IsNaN(float64(x)) {
			t.Fatalf("zero vector changed: %v", v)
		}
	}
}

func TestNormalizeNonFinite(t *testing.T) {
	tests := []struct {
		name string
		v    []float32
	}{
		{"nan", []float32{float32(math.NaN()), 1}},
		{"inf", []float32{float32(math.Inf(-1)), 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if n := Normalize(tt.v); n != 0 {
				t.Errorf("Normalize() = %v, want 0", n)
			}
			for _, x := range tt.v {
				if x != 0 {
					t.Fatalf("vector not zeroed: %v", tt.v)
				}
			}
		})
	}
}
