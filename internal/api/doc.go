// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

/*
Package api provides the HTTP interface of NewsPrep.

Every endpoint lives under /api and answers with the same envelope:

	{
	  "success": true,
	  "data": ...,
	  "error": {"code": "NOT_FOUND", "message": "...", "details": ...},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}
	}

Routes:

	GET    /api/health, /api/health/live, /api/health/ready
	GET    /api/articles?limit=50
	GET    /api/articles/{id}
	GET    /api/topics
	GET    /api/topics/{id}
	GET    /api/topics/{id}/example?n=12
	GET    /api/recommend/article/{id}?n=8
	GET    /api/recommend/topic/{id}?n=8
	GET    /api/recommend/collab/article/{id}?n=8
	GET    /api/recommend/hybrid/article/{id}?n=8&alpha=0.7&beta=0.2
	GET    /api/search?q=..&k=10
	GET    /api/recommend?article_id=..&k=5
	POST   /api/events
	POST   /api/ask
	DELETE /api/ask/sessions/{id}
	GET    /api/summarize?text=..&type=abstractive|extractive
	POST   /api/summarize/{id}
	POST   /api/quiz/{id}      (id is an article ID)
	GET    /api/quiz/{id}      (id is a quiz ID)
	GET    /metrics

Error Mapping:

Service errors are matched with errors.Is in errors.go:

  - missing embeddings, disabled encoder or LLM, unbuilt index: 503 SERVICE_UNAVAILABLE
  - article store failures during metadata resolution: 503 STORE_UNAVAILABLE
  - malformed parameters and invalid hybrid weights: 400 VALIDATION_ERROR
  - unknown articles, topics and quizzes: 404 NOT_FOUND
  - handler deadline exceeded: 504 GATEWAY_TIMEOUT
  - anything else: 500 INTERNAL_ERROR with a generic message; the cause is logged

Middleware:

RequestID, RealIP, request logging, panic recovery, CORS (go-chi/cors) and
Prometheus metrics apply to every route. API groups add security headers,
gzip, per-IP rate limits (go-chi/httprate) and a context deadline: the
server request timeout for reads and writes, the generation timeout for
endpoints that call the language model.

See Also:

  - internal/middleware: request ID, metrics, logging and timeout middleware
  - internal/validation: request struct validation
*/
package api
