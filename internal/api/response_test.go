// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package api

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/newsprep/internal/logging"
)

func TestResponseWriter(t *testing.T) {
	tests := []struct {
		name        string
		write       func(rw *ResponseWriter)
		wantStatus  int
		wantSuccess bool
		wantCode    string
		wantCount   int
	}{
		{"success", func(rw *ResponseWriter) { rw.Success(map[string]int{"a": 1}) }, http.StatusOK, true, "", -1},
		{"list", func(rw *ResponseWriter) { rw.SuccessList([]int{1, 2, 3}, 3) }, http.StatusOK, true, "", 3},
		{"empty list", func(rw *ResponseWriter) { rw.SuccessList([]int{}, 0) }, http.StatusOK, true, "", 0},
		{"created", func(rw *ResponseWriter) { rw.Created("ok") }, http.StatusCreated, true, "", -1},
		{"bad request", func(rw *ResponseWriter) { rw.BadRequest("nope") }, http.StatusBadRequest, false, ErrCodeBadRequest, -1},
		{"validation", func(rw *ResponseWriter) { rw.ValidationError("bad", map[string]string{"f": "x"}) }, http.StatusBadRequest, false, ErrCodeValidation, -1},
		{"not found", func(rw *ResponseWriter) { rw.NotFound("gone") }, http.StatusNotFound, false, ErrCodeNotFound, -1},
		{"rate limited", func(rw *ResponseWriter) { rw.TooManyRequests("slow down") }, http.StatusTooManyRequests, false, ErrCodeTooManyRequests, -1},
		{"internal", func(rw *ResponseWriter) { rw.InternalError("oops") }, http.StatusInternalServerError, false, ErrCodeInternalError, -1},
		{"unavailable", func(rw *ResponseWriter) { rw.ServiceUnavailable("later") }, http.StatusServiceUnavailable, false, ErrCodeServiceUnavailable, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/x", nil)
			req = req.WithContext(logging.ContextWithRequestID(req.Context(), "req-1"))
			rec := httptest.NewRecorder()
			tt.write(NewResponseWriter(rec, req))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
				t.Errorf("Content-Type = %q", ct)
			}

			var resp APIResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if resp.Success != tt.wantSuccess {
				t.Errorf("success = %v, want %v", resp.Success, tt.wantSuccess)
			}
			if tt.wantCode != "" && (resp.Error == nil || resp.Error.Code != tt.wantCode) {
				t.Errorf("error = %+v, want %s", resp.Error, tt.wantCode)
			}
			if resp.Meta == nil || resp.Meta.RequestID != "req-1" {
				t.Fatalf("meta = %+v, want request id req-1", resp.Meta)
			}
			switch {
			case tt.wantCount < 0 && resp.Meta.Count != nil:
				t.Errorf("count = %d, want none", *resp.Meta.Count)
			case tt.wantCount >= 0 && (resp.Meta.Count == nil || *resp.Meta.Count != tt.wantCount):
				t.Errorf("count = %v, want %d", resp.Meta.Count, tt.wantCount)
			}
		})
	}
}

func TestResponseWriter_NoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	NewResponseWriter(rec, httptest.NewRequest(http.MethodDelete, "/", nil)).NoContent()
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Errorf("status = %d body = %q", rec.Code, rec.Body.String())
	}
}

func TestResponseWriterNonFiniteFloats(t *testing.T) {
	type scored struct {
		ID    int64   `json:"id"`
		Score float64 `json:"score"`
	}
	req := httptest.NewRequest(http.MethodGet, "/api/x", nil)
	rec := httptest.NewRecorder()
	NewResponseWriter(rec, req).SuccessList([]scored{{ID: 1, Score: math.NaN()}, {ID: 2, Score: 0.5}}, 2)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Data []map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON %q: %v", rec.Body.String(), err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("data = %v", resp.Data)
	}
	if v, ok := resp.Data[0]["score"]; !ok || v != nil {
		t.Errorf("data[0].score = %v (present %v), want null", v, ok)
	}
	if resp.Data[1]["score"] != 0.5 {
		t.Errorf("data[1].score = %v, want 0.5", resp.Data[1]["score"])
	}
}
