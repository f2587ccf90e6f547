// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

// Package quiz generates multiple-choice quizzes from article text and
// stores them.
package quiz

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
	ErrQuizNotFound    = errors.New("quiz not found")
	ErrNoText          = errors.New("article has no text")
)

const defaultTitle = "Content-Based Quiz"

// Store reads articles and persists quizzes.
type Store interface {
	GetArticle(ctx context.Context, id int64) (*database.Article, error)
	CreateQuiz(ctx context.Context, q *database.Quiz) error
	GetQuiz(ctx context.Context, id int64) (*database.Quiz, error)
}

// Service creates and fetches quizzes.
type Service struct {
	store  Store
	logger zerolog.Logger
}

// NewService creates a quiz service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(store Store, logger zerolog.Logger) *Service {
	return &Service{store: store, logger: logger.With().Str("component", "quiz").Logger()}
}

// Create generates a quiz for article articleID and stores it.
func (s *Service) Create(ctx context.Context, articleID int64) (*database.Quiz, error) {
	article, err := s.store.GetArticle(ctx, articleID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrArticleNotFound, articleID)
	}
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(article.Text) == "" {
		return nil, fmt.Errorf("%w: %d", ErrNoText, articleID)
	}

	title := defaultTitle
	if t := strings.TrimSpace(article.Title); t != "" {
		title = "Quiz: " + t
	}
	q := &database.Quiz{
		ArticleID: articleID,
		Title:     title,
		Questions: Generate(articleID, article.Text),
	}
	if err := s.store.CreateQuiz(ctx, q); err != nil {
		return nil, fmt.Errorf("store quiz: %w", err)
	}

	s.logger.Debug().Int64("article_id", articleID).Int64("quiz_id", q.ID).Msg("Quiz created")
	return q, nil
}

// Get returns quiz quizID.
func (s *Service) Get(ctx context.Context, quizID int64) (*database.Quiz, error) {
	q, err := s.store.GetQuiz(ctx, quizID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrQuizNotFound, quizID)
	}
	return q, err
}
