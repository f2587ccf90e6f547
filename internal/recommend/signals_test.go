// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package recommend

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile(%s): %v", name, err)
	}
	return path
}

func TestDecodeCollab(t *testing.T) {
	table, err := DecodeCollab([]byte(`{"10": [[20, 3], [30, 1]], "20.0": [[10, 3]], "30": []}`))
	if err != nil {
		t.Fatalf("DecodeCollab() error = %v", err)
	}
	want := []CollabEntry{{ID: 20, Count: 3}, {ID: 30, Count: 1}}
	got := table[10]
	if len(got) != len(want) {
		t.Fatalf("table[10] = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("table[10][%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
	if len(table[20]) != 1 || table[20][0].ID != 10 {
		t.Errorf("float key not canonicalized: %v", table)
	}
	if entries, ok := table[30]; !ok || len(entries) != 0 {
		t.Errorf("table[30] = %v, %v, want present and empty", entries, ok)
	}
}

func TestDecodeCollab_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"10": [[20, 3]`},
		{"array root", `[[1, 2]]`},
		{"text key", `{"abc": [[1, 2]]}`},
		{"short pair", `{"1": [[2]]}`},
		{"fractional candidate", `{"1": [[2.5, 1]]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCollab([]byte(tt.data))
			if !errors.Is(err, ErrSignalsInvalid) {
				t.Errorf("DecodeCollab(%s) error = %v, want ErrSignalsInvalid", tt.data, err)
			}
		})
	}
}

func TestDecodePopularity(t *testing.T) {
	table, err := DecodePopularity([]byte(`{"1": 5, "2": 10, "3": 0}`))
	if err != nil {
		t.Fatalf("DecodePopularity() error = %v", err)
	}
	if table[2] != 10 || table.Max() != 10 {
		t.Errorf("table = %v, Max = %v", table, table.Max())
	}

	if _, err := DecodePopularity([]byte(`{"x": 1}`)); !errors.Is(err, ErrSignalsInvalid) {
		t.Errorf("DecodePopularity(text key) error = %v, want ErrSignalsInvalid", err)
	}
}

func TestPopularityTableMax(t *testing.T) {
	tests := []struct {
		name  string
		table PopularityTable
		want  float64
	}{
		{"empty", PopularityTable{}, 0},
		{"positive", PopularityTable{1: 3, 2: 7}, 7},
		{"all zero", PopularityTable{1: 0, 2: 0}, 0},
		{"negative", PopularityTable{1: -2, 2: -1}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.table.Max(); got != tt.want {
				t.Errorf("Max() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSignalSource_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	src := NewSignalSource(filepath.Join(dir, "collab.json"), filepath.Join(dir, "pop.json"), 0, zerolog.Nop())
	defer src.Close()

	collab, pop, err := src.Both(context.Background())
	if err != nil {
		t.Fatalf("Both() error = %v", err)
	}
	if len(collab) != 0 || len(pop) != 0 {
		t.Errorf("Both() = %v, %v, want empty tables", collab, pop)
	}
}

func TestSignalSource_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	collabPath := writeFile(t, dir, "collab.json", `not json`)
	popPath := writeFile(t, dir, "pop.json", `{"1": 2}`)
	src := NewSignalSource(collabPath, popPath, 0, zerolog.Nop())
	defer src.Close()

	_, _, err := src.Both(context.Background())
	if !errors.Is(err, ErrSignalsInvalid) {
		t.Errorf("Both() error = %v, want ErrSignalsInvalid", err)
	}

	pop, err := src.Popularity(context.Background())
	if err != nil || pop[1] != 2 {
		t.Errorf("Popularity() = %v, %v", pop, err)
	}
}

func TestSignalSource_Reload(t *testing.T) {
	dir := t.TempDir()
	popPath := writeFile(t, dir, "pop.json", `{"1": 2}`)

	uncached := NewSignalSource("", popPath, 0, zerolog.Nop())
	defer uncached.Close()
	cached := NewSignalSource("", popPath, time.Hour, zerolog.Nop())
	defer cached.Close()

	ctx := context.Background()
	if _, err := cached.Popularity(ctx); err != nil {
		t.Fatalf("Popularity() error = %v", err)
	}

	writeFile(t, dir, "pop.json", `{"1": 9}`)

	fresh, err := uncached.Popularity(ctx)
	if err != nil || fresh[1] != 9 {
		t.Errorf("uncached Popularity() = %v, %v, want the rewritten value", fresh, err)
	}
	stale, err := cached.Popularity(ctx)
	if err != nil || stale[1] != 2 {
		t.Errorf("cached Popularity() = %v, %v, want the cached value", stale, err)
	}
}
