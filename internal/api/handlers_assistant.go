// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/newsprep/internal/llm"
	"github.com/tomtom215/newsprep/internal/logging"
	"github.com/tomtom215/newsprep/internal/summarize"
)

// SessionReset is the body returned after clearing a chat session.
type SessionReset struct {
	SessionID string `json:"session_id"`
	Reset     bool   `json:"reset"`
}

// TextSummary is the body of GET /api/summarize.
type TextSummary struct {
	Summary string `json:"summary"`
	Type    string `json:"type"`
}

// Ask handles POST /api/ask
//
// @Summary Ask a question about the news corpus
// @Description Retrieves the most relevant article chunks and answers with the language model. Omit session_id to start a new session.
// @Tags Assistant
// @Accept json
// @Param request body AskRequest true "Question"
// @Success 200 {object} APIResponse{data=rag.Answer}
// @Failure 503 {object} APIResponse "Model disabled or index not built"
// @Router /ask [post]
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if respondValidation(w, r, decodeJSON(w, r, &req, false)) {
		return
	}
	req.Query = strings.TrimSpace(req.Query)
	if respondValidation(w, r, validateRequest(&req)) {
		return
	}
	if h.assistant == nil {
		respondServiceError(w, r, llm.ErrDisabled, "ask")
		return
	}

	answer, err := h.assistant.Ask(r.Context(), req.SessionID, req.Query)
	if err != nil {
		respondServiceError(w, r, err, "ask")
		return
	}
	logging.Ctx(r.Context()).Debug().
		Str("session_id", sanitizeLogValue(answer.SessionID)).
		Int("sources", len(answer.Sources)).
		Msg("Question answered")
	NewResponseWriter(w, r).Success(answer)
}

// ResetSession handles DELETE /api/ask/sessions/{id}
func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	req := SessionRequest{SessionID: id}
	if respondValidation(w, r, validateRequest(&req)) {
		return
	}
	if h.assistant == nil {
		respondServiceError(w, r, llm.ErrDisabled, "reset_session")
		return
	}

	if err := h.assistant.Reset(r.Context(), id); err != nil {
		respondServiceError(w, r, err, "reset_session")
		return
	}
	NewResponseWriter(w, r).Success(SessionReset{SessionID: id, Reset: true})
}

// SummarizeText handles GET /api/summarize?text=&type=
// type defaults to abstractive, which falls back to extractive when no
// language model is reachable.
func (h *Handler) SummarizeText(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := SummarizeTextRequest{Text: q.Get("text"), Type: strings.ToLower(strings.TrimSpace(q.Get("type")))}
	if req.Type == "" {
		req.Type = summarize.ModeAbstractive
	}
	if respondValidation(w, r, validateRequest(&req)) {
		return
	}
	if h.summarizer == nil {
		respondServiceError(w, r, llm.ErrDisabled, "summarize_text")
		return
	}

	summary, err := h.summarizer.SummarizeText(r.Context(), req.Text, req.Type)
	if err != nil {
		respondServiceError(w, r, err, "summarize_text")
		return
	}
	NewResponseWriter(w, r).Success(TextSummary{Summary: summary, Type: req.Type})
}

// SummarizeArticle handles POST /api/summarize/{id}
//
// @Summary Summarize an article and store the result
// @Tags Assistant
// @Param id path int true "Article ID"
// @Param request body SummarizeArticleRequest false "Options"
// @Success 200 {object} APIResponse{data=summarize.ArticleResult}
// @Failure 404 {object} APIResponse
// @Router /summarize/{id} [post]
func (h *Handler) SummarizeArticle(w http.ResponseWriter, r *http.Request) {
	id, verr := pathID(r, "id")
	if respondValidation(w, r, verr) {
		return
	}
	var req SummarizeArticleRequest
	if respondValidation(w, r, decodeJSON(w, r, &req, true)) {
		return
	}
	if h.summarizer == nil {
		respondServiceError(w, r, llm.ErrDisabled, "summarize_article")
		return
	}

	abstractive := req.Abstractive == nil || *req.Abstractive
	res, err := h.summarizer.SummarizeArticle(r.Context(), id, abstractive)
	if err != nil {
		respondServiceError(w, r, err, "summarize_article")
		return
	}
	NewResponseWriter(w, r).Success(res)
}

// CreateQuiz handles POST /api/quiz/{id}, where id is an article ID
func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	id, verr := pathID(r, "id")
	if respondValidation(w, r, verr) {
		return
	}
	if h.quizzes == nil {
		respondServiceError(w, r, errFeatureDisabled, "create_quiz")
		return
	}

	q, err := h.quizzes.Create(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err, "create_quiz")
		return
	}
	NewResponseWriter(w, r).Created(q)
}

// GetQuiz handles GET /api/quiz/{id}, where id is a quiz ID
func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	id, verr := pathID(r, "id")
	if respondValidation(w, r, verr) {
		return
	}
	if h.quizzes == nil {
		respondServiceError(w, r, errFeatureDisabled, "get_quiz")
		return
	}

	q, err := h.quizzes.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err, "get_quiz")
		return
	}
	NewResponseWriter(w, r).Success(q)
}
