// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/newsprep/internal/config"
	"github.com/tomtom215/newsprep/internal/middleware"
)

// Default handler deadlines, used when the server section leaves them unset.
const (
	defaultRequestTimeout    = 10 * time.Second
	defaultGenerationTimeout = 120 * time.Second
)

// Router wires the handler into a chi route tree.
type Router struct {
	handler           *Handler
	chiMiddleware     *ChiMiddleware
	requestTimeout    time.Duration
	generationTimeout time.Duration
	logger            zerolog.Logger
}

// NewRouter creates a router for handler.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRouter(handler *Handler, server *config.ServerConfig, security *config.SecurityConfig, logger zerolog.Logger) *Router {
	router := &Router{
		handler:           handler,
		chiMiddleware:     NewChiMiddleware(ChiMiddlewareConfigFromSecurity(security)),
		requestTimeout:    defaultRequestTimeout,
		generationTimeout: defaultGenerationTimeout,
		logger:            logger,
	}
	if server != nil {
		if server.RequestTimeout > 0 {
			router.requestTimeout = server.RequestTimeout
		}
		if server.GenerationTimeout > 0 {
			router.generationTimeout = server.GenerationTimeout
		}
	}
	return router
}

func (router *Router) requestLogger() func(http.Handler) http.Handler {
	return middleware.RequestLogger(router.logger, middleware.DefaultSlowRequestThreshold)
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	// Applied to ALL routes in order
	r.Use(middleware.RequestID)         // X-Request-ID plus logging context
	r.Use(chimiddleware.RealIP)         // Client IP from X-Forwarded-For
	r.Use(router.requestLogger())       // One line per request
	r.Use(chimiddleware.Recoverer)      // Recover from panics
	r.Use(router.chiMiddleware.CORS())  // CORS must be global to handle OPTIONS preflight
	r.Use(middleware.PrometheusMetrics) // Labelled by route pattern

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).NotFound("No such endpoint")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	h := router.handler
	r.Route("/api", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(chimiddleware.Compress(5, "application/json"))

		// ========================
		// Health Endpoints
		// ========================
		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitHealth())
			r.Use(middleware.Timeout(router.requestTimeout))
			r.Get("/health", h.Health)
			r.Get("/health/live", h.HealthLive)
			r.Get("/health/ready", h.HealthReady)
		})

		// ========================
		// Read Endpoints
		// ========================
		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Use(middleware.Timeout(router.requestTimeout))

			r.Get("/articles", h.ListArticles)
			r.Get("/articles/{id}", h.GetArticle)

			r.Get("/topics", h.ListTopics)
			r.Get("/topics/{id}", h.GetTopic)
			r.Get("/topics/{id}/example", h.TopicExample)

			r.Get("/recommend", h.SearchRecommend)
			r.Get("/recommend/article/{id}", h.RecommendByArticle)
			r.Get("/recommend/topic/{id}", h.RecommendByTopic)
			r.Get("/recommend/collab/article/{id}", h.RecommendCollaborative)
			r.Get("/recommend/hybrid/article/{id}", h.RecommendHybrid)

			r.Get("/search", h.Search)

			r.Delete("/ask/sessions/{id}", h.ResetSession)
			r.Post("/quiz/{id}", h.CreateQuiz)
			r.Get("/quiz/{id}", h.GetQuiz)
		})

		// ========================
		// Event Ingestion
		// ========================
		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitWrite())
			r.Use(middleware.Timeout(router.requestTimeout))
			r.Post("/events", h.PostEvent)
		})

		// ========================
		// Language Model Endpoints
		// ========================
		// Longer deadline and strict limits: every call may reach the LLM
		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitGeneration())
			r.Use(middleware.Timeout(router.generationTimeout))
			r.Post("/ask", h.Ask)
			r.Get("/summarize", h.SummarizeText)
			r.Post("/summarize/{id}", h.SummarizeArticle)
		})
	})

	return r
}
