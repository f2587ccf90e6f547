// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/newsprep/internal/breaker"
	"github.com/tomtom215/newsprep/internal/database"
	"github.com/tomtom215/newsprep/internal/embedder"
	"github.com/tomtom215/newsprep/internal/embedding"
	"github.com/tomtom215/newsprep/internal/llm"
	"github.com/tomtom215/newsprep/internal/logging"
	"github.com/tomtom215/newsprep/internal/quiz"
	"github.com/tomtom215/newsprep/internal/rag"
	"github.com/tomtom215/newsprep/internal/recommend"
	"github.com/tomtom215/newsprep/internal/search"
	"github.com/tomtom215/newsprep/internal/summarize"
	"github.com/tomtom215/newsprep/internal/topics"
	"github.com/tomtom215/newsprep/internal/validation"
)

// errFeatureDisabled is returned by handlers whose service is switched off.
var errFeatureDisabled = errors.New("feature disabled")

// Client-facing messages for errors whose cause stays in the logs.
const (
	msgInternal       = "An internal error occurred"
	msgStore          = "The article store is unavailable"
	msgTimeout        = "The request timed out"
	msgEmbeddings     = "Embeddings are not available"
	msgSignals        = "Recommendation signals could not be loaded"
	msgEncoder        = "No text encoder is configured"
	msgLLM            = "No language model is configured"
	msgIndexNotReady  = "The assistant index is still being built"
	msgUpstream       = "A model provider is temporarily unavailable"
	msgArticleMissing = "Article not found"
)

// errorStatus classifies err into an HTTP status, error code and client
// message. ok is false for unclassified errors.
func errorStatus(err error) (status int, code, message string, ok bool) {
	switch {
	case errors.Is(err, recommend.ErrSignalsInvalid):
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable, msgSignals, true
	case errors.Is(err, embedding.ErrArtifactMissing), errors.Is(err, embedding.ErrArtifactInvalid):
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable, msgEmbeddings, true
	case errors.Is(err, embedder.ErrDisabled), errors.Is(err, search.ErrSemanticUnavailable):
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable, msgEncoder, true
	case errors.Is(err, errFeatureDisabled):
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "This feature is disabled", true
	case errors.Is(err, llm.ErrDisabled):
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable, msgLLM, true
	case errors.Is(err, rag.ErrIndexNotReady):
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable, msgIndexNotReady, true
	case breaker.IsOpen(err):
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable, msgUpstream, true
	case errors.Is(err, recommend.ErrStoreFault):
		return http.StatusServiceUnavailable, ErrCodeStoreUnavailable, msgStore, true

	case errors.Is(err, search.ErrIdentifierNotFound),
		errors.Is(err, summarize.ErrArticleNotFound),
		errors.Is(err, quiz.ErrArticleNotFound),
		errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound, msgArticleMissing, true
	case errors.Is(err, quiz.ErrQuizNotFound):
		return http.StatusNotFound, ErrCodeNotFound, "Quiz not found", true
	case errors.Is(err, topics.ErrTopicNotFound):
		return http.StatusNotFound, ErrCodeNotFound, "Topic not found", true

	case errors.Is(err, rag.ErrEmptyQuery):
		return http.StatusBadRequest, ErrCodeValidation, rag.ErrEmptyQuery.Error(), true
	case errors.Is(err, summarize.ErrEmptyText):
		return http.StatusBadRequest, ErrCodeValidation, summarize.ErrEmptyText.Error(), true
	case errors.Is(err, quiz.ErrNoText):
		return http.StatusBadRequest, ErrCodeBadRequest, "Article has no text to build a quiz from", true

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ErrCodeGatewayTimeout, msgTimeout, true
	}
	return http.StatusInternalServerError, ErrCodeInternalError, msgInternal, false
}

// respondServiceError writes the envelope for an error returned by a
// service. Validation failures, including invalid hybrid weights, carry
// their field details. 5xx causes are logged, never returned.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, op string) {
	rw := NewResponseWriter(w, r)

	var verr *validation.RequestValidationError
	if errors.As(err, &verr) {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	status, code, message, known := errorStatus(err)
	logger := logging.Ctx(r.Context())
	switch {
	case !known:
		logger.Error().Err(err).Str("op", op).Msg("Request failed")
	case status >= http.StatusInternalServerError:
		logger.Warn().Err(err).Str("op", op).Int("status", status).Msg("Request degraded")
	default:
		logger.Debug().Err(err).Str("op", op).Int("status", status).Msg("Request rejected")
	}
	rw.Error(status, code, message)
}

// respondValidation writes a 400 VALIDATION_ERROR for verr. It returns
// false when verr is nil so callers can write
//
//	if respondValidation(w, r, validateRequest(&req)) { return }
func respondValidation(w http.ResponseWriter, r *http.Request, verr *validation.RequestValidationError) bool {
	if verr == nil {
		return false
	}
	apiErr := verr.ToAPIError()
	NewResponseWriter(w, r).ValidationError(apiErr.Message, apiErr.Details)
	return true
}
