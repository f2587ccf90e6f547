// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/newsprep/internal/logging"
	"github.com/tomtom215/newsprep/internal/metrics"
)

func TestPrometheusMetrics_RoutePatternLabel(t *testing.T) {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/api/articles/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/api/articles/{id}", "418")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/articles/"+id, nil))
	}

	if got := testutil.ToFloat64(counter) - before; got != 3 {
		t.Errorf("api_requests_total delta = %v, want 3", got)
	}
}

func TestPrometheusMetrics_Unmatched(t *testing.T) {
	handler := PrometheusMetrics(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404")
	before := testutil.ToFloat64(counter)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/no/such/path", nil))

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("unmatched delta = %v, want 1", got)
	}
}

func TestStatusResponseWriter(t *testing.T) {
	tests := []struct {
		name       string
		write      func(w http.ResponseWriter)
		wantStatus int
		wantBytes  int
	}{
		{"implicit 200", func(w http.ResponseWriter) { _, _ = w.Write([]byte("hello")) }, http.StatusOK, 5},
		{"explicit status", func(w http.ResponseWriter) { w.WriteHeader(http.StatusCreated) }, http.StatusCreated, 0},
		{"first header wins", func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusBadRequest)
			w.WriteHeader(http.StatusOK)
		}, http.StatusBadRequest, 0},
		{"header after body ignored", func(w http.ResponseWriter) {
			_, _ = w.Write([]byte("ab"))
			w.WriteHeader(http.StatusInternalServerError)
		}, http.StatusOK, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ww := newStatusResponseWriter(httptest.NewRecorder())
			tt.write(ww)
			if ww.statusCode != tt.wantStatus || ww.bytes != tt.wantBytes {
				t.Errorf("status=%d bytes=%d, want %d %d", ww.statusCode, ww.bytes, tt.wantStatus, tt.wantBytes)
			}
		})
	}
}

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		delay     time.Duration
		wantLevel string
	}{
		{"ok at debug", http.StatusOK, 0, `"level":"debug"`},
		{"server error at error", http.StatusServiceUnavailable, 0, `"level":"error"`},
		{"slow at warn", http.StatusOK, 20 * time.Millisecond, `"slow":true`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := logging.NewTestLogger(&buf)

			var fromCtx bool
			handler := RequestID(RequestLogger(logger, 10*time.Millisecond)(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					l := logging.LoggerFromContext(r.Context())
					l.Info().Msg("inside handler")
					fromCtx = true
					time.Sleep(tt.delay)
					w.WriteHeader(tt.status)
				})))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/topics", nil))

			out := buf.String()
			if !fromCtx || !strings.Contains(out, "inside handler") {
				t.Errorf("handler logger not reachable from context: %s", out)
			}
			if !strings.Contains(out, tt.wantLevel) {
				t.Errorf("log output missing %s: %s", tt.wantLevel, out)
			}
			if !strings.Contains(out, `"request_id"`) || !strings.Contains(out, `"path":"/api/topics"`) {
				t.Errorf("log output missing request fields: %s", out)
			}
		})
	}
}

func TestTimeout(t *testing.T) {
	var deadline bool
	var err error
	handler := Timeout(5 * time.Millisecond)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		_, deadline = r.Context().Deadline()
		<-r.Context().Done()
		err = r.Context().Err()
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !deadline || !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("deadline=%v err=%v, want deadline exceeded", deadline, err)
	}

	handler = Timeout(0)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		_, deadline = r.Context().Deadline()
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if deadline {
		t.Error("Timeout(0) set a deadline")
	}
}
