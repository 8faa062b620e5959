package memory

import (
	"context"
	"sync"
	"time"

	"noukie-quiz-service/internal/domain"
	"github.com/google/uuid"
)

// PlayStore is an in-memory implementation of app.PlayStore. Answer records
// are append-only; duplicates for the same question are kept, matching the
// durable stores.
type PlayStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.PlaySession
	answers  map[string][]domain.AnswerRecord
}

func NewPlayStore() *PlayStore {
	return &PlayStore{
		sessions: make(map[string]*domain.PlaySession),
		answers:  make(map[string][]domain.AnswerRecord),
	}
}

func (s *PlayStore) CreateSession(_ context.Context, quizID, playerID string, startedAt time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.sessions[id] = &domain.PlaySession{
		ID:        id,
		QuizID:    quizID,
		PlayerID:  playerID,
		StartedAt: startedAt,
	}
	return id, nil
}

func (s *PlayStore) RecordAnswer(_ context.Context, sessionID, questionID, submitted string, verdict domain.Verdict) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.answers[sessionID] = append(s.answers[sessionID], domain.AnswerRecord{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		QuestionID: questionID,
		Submitted:  submitted,
		Verdict:    verdict,
	})
	return nil
}

func (s *PlayStore) ListAnswers(_ context.Context, sessionID string) ([]domain.AnswerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.answers[sessionID]
	out := make([]domain.AnswerRecord, len(records))
	copy(out, records)
	return out, nil
}

func (s *PlayStore) FinalizeSession(_ context.Context, sessionID, playerID string, total, correct int, percent float64, finishedAt time.Time) (domain.PlaySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return domain.PlaySession{}, domain.ErrSessionNotFound
	}
	if session.PlayerID != playerID {
		return domain.PlaySession{}, domain.ErrUnauthorized
	}

	session.Total = total
	session.Correct = correct
	session.Percent = percent
	session.FinishedAt = &finishedAt
	return *session, nil
}

// GetSession is a test helper to inspect stored state.
func (s *PlayStore) GetSession(sessionID string) (domain.PlaySession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return domain.PlaySession{}, false
	}
	return *session, true
}
