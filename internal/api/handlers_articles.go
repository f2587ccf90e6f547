// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package api

import (
	"net/http"

	"github.com/tomtom215/newsprep/internal/database"
)

const (
	defaultArticleLimit = 50
	defaultExampleCount = 12
)

// ArticleDetail is an article together with its interaction counters.
type ArticleDetail struct {
	*database.Article
	Stats *database.ArticleStats `json:"stats,omitempty"`
}

// ListArticles handles GET /api/articles
//
// @Summary List recent articles
// @Tags Articles
// @Param limit query int false "Maximum articles (1-500)" default(50)
// @Success 200 {object} APIResponse{data=[]database.Article}
// @Router /articles [get]
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	limit, verr := queryInt(r, "limit", defaultArticleLimit)
	if respondValidation(w, r, verr) {
		return
	}
	req := ListArticlesRequest{Limit: limit}
	if respondValidation(w, r, validateRequest(&req)) {
		return
	}

	articles, err := h.db.ListArticles(r.Context(), req.Limit)
	if err != nil {
		respondServiceError(w, r, err, "list_articles")
		return
	}
	if articles == nil {
		articles = []database.Article{}
	}
	NewResponseWriter(w, r).SuccessList(articles, len(articles))
}

// GetArticle handles GET /api/articles/{id}
//
// @Summary Get an article with its interaction counters
// @Tags Articles
// @Param id path int true "Article ID"
// @Success 200 {object} APIResponse{data=ArticleDetail}
// @Failure 404 {object} APIResponse
// @Router /articles/{id} [get]
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	id, verr := pathID(r, "id")
	if respondValidation(w, r, verr) {
		return
	}

	article, err := h.db.GetArticle(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err, "get_article")
		return
	}

	detail := ArticleDetail{Article: article}
	if stats, err := h.db.ArticleStats(r.Context(), id); err == nil {
		detail.Stats = stats
	}
	NewResponseWriter(w, r).Success(detail)
}

// ListTopics handles GET /api/topics
func (h *Handler) ListTopics(w http.ResponseWriter, r *http.Request) {
	list, err := h.topics.List(r.Context())
	if err != nil {
		respondServiceError(w, r, err, "list_topics")
		return
	}
	NewResponseWriter(w, r).SuccessList(list, len(list))
}

// GetTopic handles GET /api/topics/{id}
func (h *Handler) GetTopic(w http.ResponseWriter, r *http.Request) {
	id, verr := pathTopicID(r)
	if respondValidation(w, r, verr) {
		return
	}

	detail, err := h.topics.Detail(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err, "get_topic")
		return
	}
	NewResponseWriter(w, r).Success(detail)
}

// TopicExample handles GET /api/topics/{id}/example
func (h *Handler) TopicExample(w http.ResponseWriter, r *http.Request) {
	id, verr := pathTopicID(r)
	if respondValidation(w, r, verr) {
		return
	}
	n, verr := queryInt(r, "n", defaultExampleCount)
	if respondValidation(w, r, verr) {
		return
	}
	req := ExampleRequest{N: n}
	if respondValidation(w, r, validateRequest(&req)) {
		return
	}

	docs, err := h.topics.Example(r.Context(), id, req.N)
	if err != nil {
		respondServiceError(w, r, err, "topic_example")
		return
	}
	NewResponseWriter(w, r).SuccessList(docs, len(docs))
}
