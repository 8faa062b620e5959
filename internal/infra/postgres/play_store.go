package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"noukie-quiz-service/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// PlayStore persists play sessions and answer records in Postgres. Every
// method is a single statement (plus an ownership pre-read on finalize), so
// atomicity comes from the database, not from in-process locking.
type PlayStore struct {
	pool *pgxpool.Pool
}

func NewPlayStore(pool *pgxpool.Pool) *PlayStore {
	return &PlayStore{pool: pool}
}

func (s *PlayStore) CreateSession(ctx context.Context, quizID, playerID string, startedAt time.Time) (string, error) {
	id := uuid.NewString()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO quiz_results (id, quiz_id, player_id, started_at) VALUES ($1, $2, $3, $4)`,
		id, quizID, playerID, startedAt)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return id, nil
}

func (s *PlayStore) RecordAnswer(ctx context.Context, sessionID, questionID, submitted string, verdict domain.Verdict) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO quiz_answers (id, session_id, question_id, submitted, verdict) VALUES ($1, $2, $3, $4, $5)`,
		uuid.NewString(), sessionID, questionID, submitted, string(verdict))
	if err != nil {
		return fmt.Errorf("record answer: %w", err)
	}
	return nil
}

func (s *PlayStore) ListAnswers(ctx context.Context, sessionID string) ([]domain.AnswerRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, question_id, submitted, verdict FROM quiz_answers WHERE session_id = $1`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer rows.Close()

	var records []domain.AnswerRecord
	for rows.Next() {
		record := domain.AnswerRecord{SessionID: sessionID}
		var verdict string
		if err := rows.Scan(&record.ID, &record.QuestionID, &record.Submitted, &verdict); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		record.Verdict = domain.Verdict(verdict)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	return records, nil
}

func (s *PlayStore) FinalizeSession(ctx context.Context, sessionID, playerID string, total, correct int, percent float64, finishedAt time.Time) (domain.PlaySession, error) {
	var owner string
	err := s.pool.QueryRow(ctx,
		`SELECT player_id FROM quiz_results WHERE id = $1`, sessionID).Scan(&owner)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.PlaySession{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.PlaySession{}, fmt.Errorf("read session owner: %w", err)
	}
	if owner != playerID {
		return domain.PlaySession{}, domain.ErrUnauthorized
	}

	session := domain.PlaySession{
		ID:         sessionID,
		PlayerID:   playerID,
		Total:      total,
		Correct:    correct,
		Percent:    percent,
		FinishedAt: &finishedAt,
	}
	err = s.pool.QueryRow(ctx,
		`UPDATE quiz_results
		 SET finished_at = $3, total_answered = $4, correct_count = $5, percent = $6
		 WHERE id = $1 AND player_id = $2
		 RETURNING quiz_id, started_at`,
		sessionID, playerID, finishedAt, total, correct, percent).
		Scan(&session.QuizID, &session.StartedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.PlaySession{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.PlaySession{}, fmt.Errorf("finalize session: %w", err)
	}
	return session, nil
}
