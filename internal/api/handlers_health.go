// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package api

import (
	"context"
	"net/http"
	"time"
)

// healthPingTimeout bounds the database ping of a health check.
const healthPingTimeout = 2 * time.Second

// HealthStatus is the body of GET /api/health.
type HealthStatus struct {
	Status        string          `json:"status"` // "healthy" or "degraded"
	Version       string          `json:"version,omitempty"`
	UptimeSeconds float64         `json:"uptime_seconds"`
	Database      DatabaseHealth  `json:"database"`
	Embeddings    EmbeddingHealth `json:"embeddings"`
	Index         IndexHealth     `json:"index"`
	Semantic      bool            `json:"semantic_search"`
	EventsSync    bool            `json:"events_synchronous"`
}

// DatabaseHealth reports article store connectivity.
type DatabaseHealth struct {
	Connected bool `json:"connected"`
}

// EmbeddingHealth reports the precomputed embedding matrix.
type EmbeddingHealth struct {
	Loaded bool `json:"loaded"`
	Count  int  `json:"count"`
	Dim    int  `json:"dim"`
}

// IndexHealth reports the assistant retrieval index.
type IndexHealth struct {
	Enabled bool       `json:"enabled"`
	Ready   bool       `json:"ready"`
	Chunks  int        `json:"chunks"`
	BuiltAt *time.Time `json:"built_at,omitempty"`
}

func (h *Handler) dbConnected(ctx context.Context) bool {
	if h.db == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()
	return h.db.Ping(ctx) == nil
}

// Health handles health check requests
//
// @Summary Get system health status
// @Description Reports database connectivity, embedding store and retrieval index state
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	status := HealthStatus{
		Status:        "healthy",
		Version:       h.version,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		Database:      DatabaseHealth{Connected: h.dbConnected(r.Context())},
	}

	if h.embeddings != nil && h.embeddings.Loaded() {
		status.Embeddings = EmbeddingHealth{Loaded: true, Count: h.embeddings.Len(), Dim: h.embeddings.Dim()}
	}
	if h.index != nil {
		status.Index = IndexHealth{Enabled: true, Ready: h.index.Ready(), Chunks: h.index.Len()}
		if built := h.index.BuiltAt(); !built.IsZero() {
			status.Index.BuiltAt = &built
		}
	}
	if h.search != nil {
		status.Semantic = h.search.HasSemantic()
	}
	if h.events != nil {
		status.EventsSync = h.events.Synchronous()
	}

	if !status.Database.Connected || !status.Embeddings.Loaded {
		status.Status = "degraded"
	}
	rw.Success(status)
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":          true,
		"uptime_seconds": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only when the article store answers. Missing embeddings do
// not make the service unready; the endpoints that need them answer 503.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.dbConnected(r.Context()) {
		rw.ServiceUnavailable("Database is not reachable")
		return
	}
	rw.Success(map[string]interface{}{"ready": true})
}
