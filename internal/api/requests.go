// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package api

// Request structs validated with go-playground/validator tags. Query
// parameters carry a `query` tag so validation messages use the name the
// client sent:
//
//	req := SearchRequest{Query: r.URL.Query().Get("q"), K: 10}
//	if respondValidation(w, r, validateRequest(&req)) {
//	    return
//	}

// ListArticlesRequest is the query of GET /api/articles.
type ListArticlesRequest struct {
	Limit int `query:"limit" validate:"min=1,max=500"`
}

// RecommendRequest is the query of the /api/recommend/... endpoints.
type RecommendRequest struct {
	N int `query:"n" validate:"min=1,max=100"`
}

// HybridRequest is the query of GET /api/recommend/hybrid/article/{id}.
// Alpha and Beta are range-checked here; the sum rule is enforced by
// recommend.NewWeights.
type HybridRequest struct {
	N     int     `query:"n" validate:"min=1,max=100"`
	Alpha float64 `query:"alpha" validate:"gte=0,lte=1"`
	Beta  float64 `query:"beta" validate:"gte=0,lte=1"`
}

// ExampleRequest is the query of GET /api/topics/{id}/example.
type ExampleRequest struct {
	N int `query:"n" validate:"min=1,max=50"`
}

// SearchRequest is the query of GET /api/search. The lower length bound
// comes from search.min_query_length and is checked by the handler.
type SearchRequest struct {
	Query string `query:"q" validate:"required,notblank,max=500"`
	K     int    `query:"k" validate:"min=1,max=100"`
}

// SearchRecommendRequest is the query of GET /api/recommend.
type SearchRecommendRequest struct {
	ArticleID int64 `query:"article_id" validate:"required,gt=0"`
	K         int   `query:"k" validate:"min=1,max=100"`
}

// AskRequest is the body of POST /api/ask.
type AskRequest struct {
	Query     string `json:"query" validate:"required,notblank,max=2000"`
	SessionID string `json:"session_id" validate:"omitempty,max=128"`
}

// SessionRequest identifies a chat session in DELETE /api/ask/sessions/{id}.
type SessionRequest struct {
	SessionID string `json:"session_id" validate:"required,notblank,max=128"`
}

// SummarizeTextRequest is the query of GET /api/summarize.
type SummarizeTextRequest struct {
	Text string `query:"text" validate:"required,notblank,max=50000"`
	Type string `query:"type" validate:"oneof=abstractive extractive"`
}

// SummarizeArticleRequest is the optional body of POST /api/summarize/{id}.
// A missing body or field requests an abstractive summary.
type SummarizeArticleRequest struct {
	Abstractive *bool `json:"abstractive"`
}
