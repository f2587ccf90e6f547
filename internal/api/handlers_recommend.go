// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package api

import (
	"net/http"

	"github.com/tomtom215/newsprep/internal/recommend"
	"github.com/tomtom215/newsprep/internal/validation"
)

const defaultRecommendN = 8

// recommendN reads and validates the n query parameter.
func recommendN(r *http.Request) (int, *validation.RequestValidationError) {
	n, verr := queryInt(r, "n", defaultRecommendN)
	if verr != nil {
		return 0, verr
	}
	req := RecommendRequest{N: n}
	if verr := validateRequest(&req); verr != nil {
		return 0, verr
	}
	return req.N, nil
}

func writeRecommendations(w http.ResponseWriter, r *http.Request, recs []recommend.Recommendation) {
	if recs == nil {
		recs = []recommend.Recommendation{}
	}
	NewResponseWriter(w, r).SuccessList(recs, len(recs))
}

// RecommendByArticle handles GET /api/recommend/article/{id}
//
// @Summary Articles most similar to an article
// @Tags Recommend
// @Param id path int true "Article ID"
// @Param n query int false "Number of results" default(8)
// @Success 200 {object} APIResponse{data=[]recommend.Recommendation}
// @Failure 503 {object} APIResponse "Embeddings not loaded"
// @Router /recommend/article/{id} [get]
func (h *Handler) RecommendByArticle(w http.ResponseWriter, r *http.Request) {
	id, verr := pathID(r, "id")
	if respondValidation(w, r, verr) {
		return
	}
	n, verr := recommendN(r)
	if respondValidation(w, r, verr) {
		return
	}

	recs, err := h.recommender.RecommendByArticle(r.Context(), id, n)
	if err != nil {
		respondServiceError(w, r, err, "recommend_article")
		return
	}
	writeRecommendations(w, r, recs)
}

// RecommendByTopic handles GET /api/recommend/topic/{id}
func (h *Handler) RecommendByTopic(w http.ResponseWriter, r *http.Request) {
	id, verr := pathTopicID(r)
	if respondValidation(w, r, verr) {
		return
	}
	n, verr := recommendN(r)
	if respondValidation(w, r, verr) {
		return
	}

	recs, err := h.recommender.RecommendByTopic(r.Context(), id, n)
	if err != nil {
		respondServiceError(w, r, err, "recommend_topic")
		return
	}
	writeRecommendations(w, r, recs)
}

// RecommendCollaborative handles GET /api/recommend/collab/article/{id}
func (h *Handler) RecommendCollaborative(w http.ResponseWriter, r *http.Request) {
	id, verr := pathID(r, "id")
	if respondValidation(w, r, verr) {
		return
	}
	n, verr := recommendN(r)
	if respondValidation(w, r, verr) {
		return
	}

	recs, err := h.recommender.Collaborative(r.Context(), id, n)
	if err != nil {
		respondServiceError(w, r, err, "recommend_collab")
		return
	}
	writeRecommendations(w, r, recs)
}

// RecommendHybrid handles GET /api/recommend/hybrid/article/{id}
//
// @Summary Hybrid content, collaborative and popularity ranking
// @Tags Recommend
// @Param id path int true "Article ID"
// @Param n query int false "Number of results" default(8)
// @Param alpha query number false "Content weight" default(0.7)
// @Param beta query number false "Collaborative weight" default(0.2)
// @Success 200 {object} APIResponse{data=[]recommend.Recommendation}
// @Failure 400 {object} APIResponse "Invalid weights"
// @Router /recommend/hybrid/article/{id} [get]
func (h *Handler) RecommendHybrid(w http.ResponseWriter, r *http.Request) {
	id, verr := pathID(r, "id")
	if respondValidation(w, r, verr) {
		return
	}

	def := h.recommender.DefaultWeights()
	req := HybridRequest{N: defaultRecommendN, Alpha: def.Alpha, Beta: def.Beta}
	if req.N, verr = queryInt(r, "n", req.N); respondValidation(w, r, verr) {
		return
	}
	if req.Alpha, verr = queryFloat(r, "alpha", req.Alpha); respondValidation(w, r, verr) {
		return
	}
	if req.Beta, verr = queryFloat(r, "beta", req.Beta); respondValidation(w, r, verr) {
		return
	}
	if respondValidation(w, r, validateRequest(&req)) {
		return
	}

	weights, err := recommend.NewWeights(req.Alpha, req.Beta)
	if err != nil {
		respondServiceError(w, r, err, "recommend_hybrid")
		return
	}

	recs, err := h.recommender.Hybrid(r.Context(), id, req.N, &weights)
	if err != nil {
		respondServiceError(w, r, err, "recommend_hybrid")
		return
	}
	writeRecommendations(w, r, recs)
}
