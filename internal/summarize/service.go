// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/newsprep/internal/database"
)

// Errors returned by Service.
var (
	ErrArticleNotFound = errors.New("article not found")
	ErrEmptyText       = errors.New("text must not be empty")
)

// Summary modes accepted by SummarizeText.
const (
	ModeAbstractive = "abstractive"
	ModeExtractive  = "extractive"
)

// ArticleStore reads articles and stores their summaries.
type ArticleStore interface {
	GetArticle(ctx context.Context, id int64) (*database.Article, error)
	UpdateSummary(ctx context.Context, id int64, summary string, keyPoints []string) error
}

// ArticleResult reports both summaries of an article. Abstractive is nil
// when it was not requested or could not be produced.
type ArticleResult struct {
	ArticleID   int64     `json:"article_id"`
	Extractive  Extract   `json:"extractive"`
	Abstractive *Abstract `json:"abstractive"`
	Saved       bool      `json:"saved"`
}

// Service summarizes articles. A nil LLM client disables abstractive
// summaries; requests for them fall back to extractive.
type Service struct {
	articles ArticleStore
	llm      Completer
	logger   zerolog.Logger
}

// NewService creates a summarization service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(articles ArticleStore, client Completer, logger zerolog.Logger) *Service {
	return &Service{
		articles: articles,
		llm:      client,
		logger:   logger.With().Str("component", "summarizer").Logger(),
	}
}

// SummarizeArticle summarizes article id and stores the result on the
// article row. The abstractive summary is preferred when requested and
// available.
func (s *Service) SummarizeArticle(ctx context.Context, id int64, abstractive bool) (*ArticleResult, error) {
	article, err := s.articles.GetArticle(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrArticleNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	res := &ArticleResult{ArticleID: id, Extractive: Extractive(article.Text, DefaultSentences)}
	summary, keyPoints := res.Extractive.Summary, res.Extractive.KeyPoints

	if abstractive {
		res.Abstractive = s.abstractive(ctx, article.Text)
		if res.Abstractive != nil {
			summary = res.Abstractive.SummaryParagraph
			if len(res.Abstractive.KeyPoints) > 0 {
				keyPoints = res.Abstractive.KeyPoints
			}
		}
	}

	if err := s.articles.UpdateSummary(ctx, id, summary, keyPoints); err != nil {
		return nil, fmt.Errorf("store summary: %w", err)
	}
	res.Saved = true
	return res, nil
}

// SummarizeText summarizes text without storing it.
func (s *Service) SummarizeText(ctx context.Context, text, mode string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}
	if mode != ModeExtractive {
		if a := s.abstractive(ctx, text); a != nil {
			return a.SummaryParagraph, nil
		}
	}
	return Extractive(text, DefaultSentences).Summary, nil
}

// abstractive returns nil when the LLM is disabled or fails.
func (s *Service) abstractive(ctx context.Context, text string) *Abstract {
	if s.llm == nil {
		return nil
	}
	a, err := Abstractive(ctx, s.llm, text)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Abstractive summary failed, using extractive")
		return nil
	}
	if a.SummaryParagraph == "" {
		return nil
	}
	return a
}
