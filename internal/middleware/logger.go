// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/newsprep/internal/logging"
)

// DefaultSlowRequestThreshold is the latency above which a request is logged
// at warn level.
const DefaultSlowRequestThreshold = 2 * time.Second

// RequestLogger logs one line per request with method, route, status,
// size and duration. Requests slower than slow, or answered with a 5xx, are
// logged at warn and error level respectively; everything else at debug.
// The request-scoped logger (with request and correlation IDs) is placed in
// the context for handlers.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func RequestLogger(logger zerolog.Logger, slow time.Duration) func(http.Handler) http.Handler {
	if slow <= 0 {
		slow = DefaultSlowRequestThreshold
	}
	logger = logger.With().Str("component", "http").Logger()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := newStatusResponseWriter(w)

			reqLogger := logger.With().
				Str("request_id", logging.RequestIDFromContext(r.Context())).
				Str("correlation_id", logging.CorrelationIDFromContext(r.Context())).
				Logger()
			ctx := logging.ContextWithLogger(r.Context(), reqLogger)

			next.ServeHTTP(ww, r.WithContext(ctx))

			duration := time.Since(start)
			var event *zerolog.Event
			switch {
			case ww.statusCode >= http.StatusInternalServerError:
				event = reqLogger.Error()
			case duration > slow:
				event = reqLogger.Warn().Bool("slow", true)
			default:
				event = reqLogger.Debug()
			}
			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", routePattern(r)).
				Int("status", ww.statusCode).
				Int("bytes", ww.bytes).
				Dur("duration", duration).
				Str("remote_addr", r.RemoteAddr).
				Msg("Request completed")
		})
	}
}
