// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package breaker

import (
	"errors"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

func TestBreaker_OpensAfterFailures(t *testing.T) {
	b := New[string]("test-opens", Settings{MinRequests: 3, FailureRatio: 0.5, Timeout: time.Hour})

	if b.State() != gobreaker.StateClosed {
		t.Fatalf("initial state = %v, want closed", b.State())
	}

	fail := func() (string, error) { return "", errors.New("upstream down") }
	for i := 0; i < 3; i++ {
		if _, err := b.Execute(fail); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}

	if b.State() != gobreaker.StateOpen {
		t.Fatalf("state = %v, want open", b.State())
	}

	called := false
	_, err := b.Execute(func() (string, error) {
		called = true
		return "ok", nil
	})
	if !IsOpen(err) {
		t.Errorf("error = %v, want open-state rejection", err)
	}
	if called {
		t.Error("open breaker should not invoke the function")
	}
}

func TestBreaker_PassesResults(t *testing.T) {
	b := New[int]("test-passes", Settings{})

	got, err := b.Execute(func() (int, error) { return 42, nil })
	if err != nil || got != 42 {
		t.Errorf("Execute() = %d, %v, want 42", got, err)
	}

	sentinel := errors.New("boom")
	if _, err := b.Execute(func() (int, error) { return 0, sentinel }); !errors.Is(err, sentinel) {
		t.Errorf("Execute() error = %v, want the function error", err)
	}
	if b.Name() != "test-passes" {
		t.Errorf("Name() = %q", b.Name())
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.MinRequests != 10 || s.FailureRatio != 0.6 || s.MaxRequests != 3 {
		t.Errorf("DefaultSettings() = %+v", s)
	}
}

func TestIsOpen(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{gobreaker.ErrOpenState, true},
		{gobreaker.ErrTooManyRequests, true},
		{errors.New("other"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsOpen(tt.err); got != tt.want {
			t.Errorf("IsOpen(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
