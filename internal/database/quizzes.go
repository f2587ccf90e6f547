// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/newsprep/internal/logging"
)

// CreateQuiz stores a quiz and its questions in one transaction. The ids of
// q and of every question are filled in on success.
func (db *DB) CreateQuiz(ctx context.Context, q *Quiz) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("insert", "quizzes")(&err)

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logging.Error().Err(rbErr).AnErr("original_error", err).Msg("Transaction rollback failed")
			}
		}
	}()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO quizzes (article_id, title) VALUES (?, ?) RETURNING id`, q.ArticleID, q.Title).Scan(&q.ID)
	if err != nil {
		return fmt.Errorf("failed to insert quiz: %w", err)
	}

	for i := range q.Questions {
		question := &q.Questions[i]
		options, encErr := json.Marshal(question.Options)
		if encErr != nil {
			err = fmt.Errorf("failed to encode options: %w", encErr)
			return err
		}
		err = tx.QueryRowContext(ctx,
			`INSERT INTO quiz_questions (quiz_id, ordinal, question, options, answer) VALUES (?, ?, ?, ?, ?) RETURNING id`,
			q.ID, i, question.Question, string(options), question.Answer).Scan(&question.ID)
		if err != nil {
			return fmt.Errorf("failed to insert quiz question %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit quiz: %w", err)
	}
	return nil
}

// GetQuiz returns a quiz with its questions in creation order, or ErrNotFound.
func (db *DB) GetQuiz(ctx context.Context, id int64) (_ *Quiz, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	defer observe("select", "quizzes")(&err)

	q := &Quiz{ID: id}
	var title sql.NullString
	err = db.conn.QueryRowContext(ctx, `SELECT article_id, title FROM quizzes WHERE id = ?`, id).Scan(&q.ArticleID, &title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("quiz %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz %d: %w", id, err)
	}
	q.Title = title.String

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, question, options, answer FROM quiz_questions WHERE quiz_id = ? ORDER BY ordinal`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query quiz questions: %w", err)
	}
	defer rows.Close()

	q.Questions = []Question{}
	for rows.Next() {
		var (
			question Question
			options  string
		)
		if err := rows.Scan(&question.ID, &question.Question, &options, &question.Answer); err != nil {
			return nil, fmt.Errorf("failed to scan quiz question: %w", err)
		}
		if err := json.Unmarshal([]byte(options), &question.Options); err != nil {
			return nil, fmt.Errorf("failed to decode options of question %d: %w", question.ID, err)
		}
		q.Questions = append(q.Questions, question)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return q, nil
}
