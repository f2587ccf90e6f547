// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package embedding

import (
	"fmt"
	"math"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/newsprep/internal/metrics"
)

// Store holds a row-normalized embedding matrix and the identifier of each row.
//
// A Store is constructed at the composition root and loaded once. Load is
// guarded by a mutex and is a no-op after the first success; once loaded the
// matrix is never mutated, so readers do not lock.
type Store struct {
	embeddingsPath string
	idsPath        string
	logger         zerolog.Logger

	mu     sync.Mutex
	loaded bool

	// snap is written once, before done is closed, and is read-only afterwards.
	snap *snapshot
	once sync.Once
	done chan struct{}
}

type snapshot struct {
	rows  [][]float32
	ids   []int64
	index map[int64]int
	dim   int
}

// NewStore creates an unloaded store reading from the given NPY paths.
func NewStore(embeddingsPath, idsPath string, logger zerolog.Logger) *Store {
	return &Store{
		embeddingsPath: embeddingsPath,
		idsPath:        idsPath,
		logger:         logger.With().Str("component", "embedding_store").Logger(),
		done:           make(chan struct{}),
	}
}

// NewFromMatrix builds a loaded store from in-memory rows. Rows are copied
// and normalized. len(ids) must equal len(rows) and all rows must share a width.
func NewFromMatrix(ids []int64, rows [][]float32) (*Store, error) {
	snap, err := buildSnapshot(ids, rows, true)
	if err != nil {
		return nil, err
	}
	s := &Store{done: make(chan struct{}), logger: zerolog.Nop()}
	s.publish(snap)
	return s, nil
}

// Load reads and normalizes the artifacts. It returns ErrArtifactMissing when
// either file is absent and ErrArtifactInvalid when they cannot be decoded or
// disagree in length. Repeated calls after success return nil immediately.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return nil
	}

	rows, err := ReadMatrix(s.embeddingsPath)
	if err != nil {
		metrics.SetEmbeddingStore(false, 0, 0)
		return fmt.Errorf("load embeddings: %w", err)
	}
	ids, err := ReadIDs(s.idsPath)
	if err != nil {
		metrics.SetEmbeddingStore(false, 0, 0)
		return fmt.Errorf("load article ids: %w", err)
	}

	// ReadMatrix returns freshly allocated rows; normalize them in place.
	snap, err := buildSnapshot(ids, rows, false)
	if err != nil {
		metrics.SetEmbeddingStore(false, 0, 0)
		return err
	}

	s.publish(snap)
	metrics.SetEmbeddingStore(true, len(snap.rows), snap.dim)

	s.logger.Info().
		Int("rows", len(snap.rows)).
		Int("dims", snap.dim).
		Int("distinct_ids", len(snap.index)).
		Msg("Embedding store loaded")
	return nil
}

func (s *Store) publish(snap *snapshot) {
	s.snap = snap
	s.loaded = true
	s.once.Do(func() { close(s.done) })
}

// Ready returns a channel closed once the store has loaded.
func (s *Store) Ready() <-chan struct{} {
	return s.done
}

// Loaded reports whether the matrix is available.
func (s *Store) Loaded() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// current returns the loaded snapshot or nil. The done channel establishes
// the happens-before edge with publish.
func (s *Store) current() *snapshot {
	if !s.Loaded() {
		return nil
	}
	return s.snap
}

// Len returns the number of rows, or 0 when not loaded.
func (s *Store) Len() int {
	if snap := s.current(); snap != nil {
		return len(snap.rows)
	}
	return 0
}

// Dim returns the vector width, or 0 when not loaded.
func (s *Store) Dim() int {
	if snap := s.current(); snap != nil {
		return snap.dim
	}
	return 0
}

// Row returns the normalized vector at row i. Valid only once loaded; the
// slice must not be modified.
func (s *Store) Row(i int) []float32 {
	return s.current().rows[i]
}

// IDAt returns the article identifier of row i.
func (s *Store) IDAt(i int) int64 {
	return s.current().ids[i]
}

// IndexOf returns the row index of id.
func (s *Store) IndexOf(id int64) (int, bool) {
	snap := s.current()
	if snap == nil {
		return 0, false
	}
	i, ok := snap.index[id]
	return i, ok
}

// Has reports whether id has a stored embedding.
func (s *Store) Has(id int64) bool {
	_, ok := s.IndexOf(id)
	return ok
}

// Vector returns the stored vector for id.
func (s *Store) Vector(id int64) ([]float32, bool) {
	i, ok := s.IndexOf(id)
	if !ok {
		return nil, false
	}
	return s.current().rows[i], true
}

func buildSnapshot(ids []int64, rows [][]float32, copyRows bool) (*snapshot, error) {
	if len(ids) != len(rows) {
		return nil, fmt.Errorf("%w: %d embedding rows but %d ids", ErrArtifactInvalid, len(rows), len(ids))
	}

	dim := 0
	if len(rows) > 0 {
		dim = len(rows[0])
	}

	snap := &snapshot{
		rows:  make([][]float32, len(rows)),
		ids:   make([]int64, len(ids)),
		index: make(map[int64]int, len(ids)),
		dim:   dim,
	}
	copy(snap.ids, ids)

	for i, row := range rows {
		if len(row) != dim {
			return nil, fmt.Errorf("%w: row %d has width %d, want %d", ErrArtifactInvalid, i, len(row), dim)
		}
		if copyRows {
			row = append([]float32(nil), row...)
		}
		Normalize(row)
		snap.rows[i] = row
		// Duplicate ids: last write wins.
		snap.index[ids[i]] = i
	}
	return snap, nil
}

// Norm returns the L2 norm of v, accumulated in float64.
func Norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// Normalize scales v to unit length in place. Zero vectors are left unchanged
// and the returned norm is 0. A vector holding NaN or Inf is zeroed and
// treated the same way.
func Normalize(v []float32) float64 {
	n := Norm(v)
	if n == 0 {
		return 0
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		for i := range v {
			v[i] = 0
		}
		return 0
	}
	for i := range v {
		v[i] = float32(float64(v[i]) / n)
	}
	return n
}
