// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package api

import (
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/tomtom215/newsprep/internal/sanitize"
	"github.com/tomtom215/newsprep/internal/search"
	"github.com/tomtom215/newsprep/internal/validation"
)

const (
	defaultSearchK    = 10
	defaultSearchRecK = 5
)

// Search handles GET /api/search
//
// @Summary Keyword and semantic article search
// @Description Keyword hits are always returned; semantic hits only when a text encoder and vectors are available.
// @Tags Search
// @Param q query string true "Query (at least 2 characters)"
// @Param k query int false "Results per mode" default(10)
// @Success 200 {object} APIResponse{data=search.Result}
// @Failure 400 {object} APIResponse
// @Router /search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	k, verr := queryInt(r, "k", defaultSearchK)
	if respondValidation(w, r, verr) {
		return
	}
	req := SearchRequest{Query: strings.TrimSpace(r.URL.Query().Get("q")), K: k}
	if respondValidation(w, r, validateRequest(&req)) {
		return
	}
	if minLen := h.search.MinQueryLength(); utf8.RuneCountInString(req.Query) < minLen {
		respondValidation(w, r, validation.NewFieldError("q", "min", req.Query,
			fmt.Sprintf("q must be at least %d characters", minLen)))
		return
	}

	res, err := h.search.Search(r.Context(), req.Query, req.K)
	if err != nil {
		respondServiceError(w, r, err, "search")
		return
	}
	if res.Keyword == nil {
		res.Keyword = []search.KeywordHit{}
	}
	NewResponseWriter(w, r).Success(sanitize.Scores(res))
}

// SearchRecommend handles GET /api/recommend?article_id=&k=
// It ranks neighbours of an article through the search service, returning
// article text rather than recommendation excerpts.
func (h *Handler) SearchRecommend(w http.ResponseWriter, r *http.Request) {
	id, verr := queryInt64(r, "article_id")
	if respondValidation(w, r, verr) {
		return
	}
	k, verr := queryInt(r, "k", defaultSearchRecK)
	if respondValidation(w, r, verr) {
		return
	}
	req := SearchRecommendRequest{ArticleID: id, K: k}
	if respondValidation(w, r, validateRequest(&req)) {
		return
	}

	hits, err := h.search.RecommendByArticle(r.Context(), req.ArticleID, req.K)
	if err != nil {
		respondServiceError(w, r, err, "search_recommend")
		return
	}
	if hits == nil {
		hits = []search.Hit{}
	}
	NewResponseWriter(w, r).SuccessList(sanitize.Scores(hits), len(hits))
}
