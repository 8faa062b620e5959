package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"noukie-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Loader reads quiz and question content from Postgres. It backs the
// in-memory and Redis caches.
type Loader struct {
	pool *pgxpool.Pool
}

func NewLoader(pool *pgxpool.Pool) *Loader {
	return &Loader{pool: pool}
}

func (l *Loader) LoadQuestion(ctx context.Context, questionID string) (domain.Question, error) {
	question := domain.Question{ID: questionID}
	var qtype string
	var choices []byte
	err := l.pool.QueryRow(ctx,
		`SELECT quiz_id, qtype, prompt, choices, expected_answer, explanation, position
		 FROM questions WHERE id = $1`, questionID).
		Scan(&question.QuizID, &qtype, &question.Prompt, &choices,
			&question.ExpectedAnswer, &question.Explanation, &question.Position)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	if err != nil {
		return domain.Question{}, fmt.Errorf("load question: %w", err)
	}
	question.Type = domain.QuestionType(qtype)
	if len(choices) > 0 {
		if err := json.Unmarshal(choices, &question.Choices); err != nil {
			return domain.Question{}, fmt.Errorf("unmarshal choices: %w", err)
		}
	}
	return question, nil
}

func (l *Loader) LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	quiz := domain.Quiz{ID: quizID}
	err := l.pool.QueryRow(ctx,
		`SELECT subject, chapter, title, description, published, owner_id
		 FROM quizzes WHERE id = $1`, quizID).
		Scan(&quiz.Subject, &quiz.Chapter, &quiz.Title, &quiz.Description,
			&quiz.Published, &quiz.OwnerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load quiz: %w", err)
	}

	rows, err := l.pool.Query(ctx,
		`SELECT id, qtype, prompt, choices, expected_answer, explanation, position
		 FROM questions WHERE quiz_id = $1 ORDER BY position`, quizID)
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		question := domain.Question{QuizID: quizID}
		var qtype string
		var choices []byte
		if err := rows.Scan(&question.ID, &qtype, &question.Prompt, &choices,
			&question.ExpectedAnswer, &question.Explanation, &question.Position); err != nil {
			return domain.Quiz{}, fmt.Errorf("scan question: %w", err)
		}
		question.Type = domain.QuestionType(qtype)
		if len(choices) > 0 {
			if err := json.Unmarshal(choices, &question.Choices); err != nil {
				return domain.Quiz{}, fmt.Errorf("unmarshal choices: %w", err)
			}
		}
		quiz.Questions = append(quiz.Questions, question)
	}
	if err := rows.Err(); err != nil {
		return domain.Quiz{}, fmt.Errorf("load questions: %w", err)
	}
	return quiz, nil
}
