// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package api

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/newsprep/internal/validation"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// validateRequest validates a struct using go-playground/validator. The
// result is a typed pointer; compare it with nil before converting it to error.
func validateRequest(v interface{}) *validation.RequestValidationError {
	return validation.ValidateStruct(v)
}

// pathID parses the chi URL parameter name as a positive int64.
func pathID(r *http.Request, name string) (int64, *validation.RequestValidationError) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, validation.NewFieldError(name, "id", raw, "must be a positive integer")
	}
	return id, nil
}

// pathTopicID parses a topic id. Topic numbering starts at 0.
func pathTopicID(r *http.Request) (int64, *validation.RequestValidationError) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, validation.NewFieldError("id", "id", raw, "must be a non-negative integer")
	}
	return id, nil
}

// queryInt parses the integer query parameter key. An absent or empty
// parameter yields def; a malformed one is a validation error.
func queryInt(r *http.Request, key string, def int) (int, *validation.RequestValidationError) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, validation.NewFieldError(key, "int", raw, "must be an integer")
	}
	return v, nil
}

// queryInt64 is queryInt for int64 identifiers.
func queryInt64(r *http.Request, key string) (int64, *validation.RequestValidationError) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, validation.NewFieldError(key, "int", raw, "must be an integer")
	}
	return v, nil
}

// queryFloat parses the float query parameter key, rejecting NaN and
// infinities.
func queryFloat(r *http.Request, key string, def float64) (float64, *validation.RequestValidationError) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, validation.NewFieldError(key, "number", raw, "must be a finite number")
	}
	return v, nil
}

// decodeJSON decodes a bounded JSON body into dst. An empty body leaves dst
// untouched when allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, allowEmpty bool) *validation.RequestValidationError {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return validation.NewFieldError("body", "max", tooLarge.Limit, "request body is too large")
		}
		return validation.NewFieldError("body", "read", nil, "request body could not be read")
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		if allowEmpty {
			return nil
		}
		return validation.NewFieldError("body", "required", nil, "request body must not be empty")
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return validation.NewFieldError("body", "json", nil, "request body is not valid JSON")
	}
	return nil
}
