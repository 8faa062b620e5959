package redis

import (
	"context"
	"time"

	"noukie-quiz-service/internal/app"
	"noukie-quiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// TrackedPlayStore decorates a PlayStore with Redis liveness keys so other
// instances (and operators) can see which sessions are in flight:
//
//	SET play:session:{sessionID} 1 EX {ttl}
//
// The markers are best-effort; the wrapped store stays the source of truth.
type TrackedPlayStore struct {
	inner  app.PlayStore
	client *redis.Client
	ttl    time.Duration
}

func NewTrackedPlayStore(inner app.PlayStore, client *redis.Client, ttl time.Duration) *TrackedPlayStore {
	return &TrackedPlayStore{inner: inner, client: client, ttl: ttl}
}

func (s *TrackedPlayStore) CreateSession(ctx context.Context, quizID, playerID string, startedAt time.Time) (string, error) {
	sessionID, err := s.inner.CreateSession(ctx, quizID, playerID, startedAt)
	if err != nil {
		return "", err
	}
	_ = s.client.Set(ctx, s.key(sessionID), "1", s.ttl).Err()
	return sessionID, nil
}

func (s *TrackedPlayStore) RecordAnswer(ctx context.Context, sessionID, questionID, submitted string, verdict domain.Verdict) error {
	if err := s.inner.RecordAnswer(ctx, sessionID, questionID, submitted, verdict); err != nil {
		return err
	}
	// Refresh liveness on activity so long attempts do not expire mid-play.
	_ = s.client.Expire(ctx, s.key(sessionID), s.ttl).Err()
	return nil
}

func (s *TrackedPlayStore) ListAnswers(ctx context.Context, sessionID string) ([]domain.AnswerRecord, error) {
	return s.inner.ListAnswers(ctx, sessionID)
}

func (s *TrackedPlayStore) FinalizeSession(ctx context.Context, sessionID, playerID string, total, correct int, percent float64, finishedAt time.Time) (domain.PlaySession, error) {
	session, err := s.inner.FinalizeSession(ctx, sessionID, playerID, total, correct, percent, finishedAt)
	if err != nil {
		return domain.PlaySession{}, err
	}
	_ = s.client.Del(ctx, s.key(sessionID)).Err()
	return session, nil
}

func (s *TrackedPlayStore) key(sessionID string) string {
	return "play:session:" + sessionID
}
