// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

/*
Package middleware provides HTTP middleware shared by the API router.

Every middleware has the chi signature func(http.Handler) http.Handler and
is installed with r.Use in internal/api.

Key Components:

  - RequestID: UUID request IDs, reusing X-Request-ID from upstream proxies,
    propagated into the logging context together with a correlation ID
  - PrometheusMetrics: api_requests_total, api_request_duration_seconds and
    api_active_requests, labelled by chi route pattern
  - RequestLogger: one structured zerolog line per request; slow requests
    at warn, 5xx at error
  - Timeout: per-request context deadline observed by the services

Middleware Stack:

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger, middleware.DefaultSlowRequestThreshold))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.With(middleware.Timeout(cfg.RequestTimeout)).Get(...)

RequestLogger and PrometheusMetrics read the route pattern after the
handler returns, so they must wrap the chi router rather than be mounted
inside a sub-router.

Thread Safety:

All middleware is safe for concurrent use. Per-request state lives in the
request context or a per-request response writer wrapper.

See Also:

  - internal/api: HTTP handlers wrapped by middleware
  - internal/metrics: Prometheus metrics definitions
  - internal/logging: request and correlation ID context helpers
*/
package middleware
