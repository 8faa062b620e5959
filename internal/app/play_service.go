package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"noukie-quiz-service/internal/domain"
)

// PlayStore abstracts how play sessions and answer records are persisted
// (in-memory, Postgres, etc). Each method maps to a single row write or read;
// the store provides per-call atomicity, nothing more.
type PlayStore interface {
	CreateSession(ctx context.Context, quizID, playerID string, startedAt time.Time) (string, error)
	RecordAnswer(ctx context.Context, sessionID, questionID, submitted string, verdict domain.Verdict) error
	ListAnswers(ctx context.Context, sessionID string) ([]domain.AnswerRecord, error)
	// FinalizeSession writes the aggregates scoped by both session and player.
	// It returns domain.ErrSessionNotFound for an unknown session and
	// domain.ErrUnauthorized when the session belongs to another player.
	FinalizeSession(ctx context.Context, sessionID, playerID string, total, correct int, percent float64, finishedAt time.Time) (domain.PlaySession, error)
}

// QuestionRepository loads question content (from cache/backing store). The
// returned question may be a lightweight form carrying only what grading
// needs.
type QuestionRepository interface {
	GetQuestion(ctx context.Context, questionID string) (domain.Question, error)
}

// QuizRepository loads full quiz content for the play view.
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// PlayService drives one quiz attempt through start, answer and finish. It
// holds no session state of its own: every call reconstructs what it needs
// from its arguments and the store, so concurrent calls never contend on
// in-process state.
type PlayService struct {
	store     PlayStore
	questions QuestionRepository
	progress  *ProgressHub
	now       func() time.Time
}

func NewPlayService(store PlayStore, questions QuestionRepository, progress *ProgressHub) *PlayService {
	return &PlayService{store: store, questions: questions, progress: progress, now: time.Now}
}

// NewPlayServiceWithClock is test-only for deterministic timestamps.
func NewPlayServiceWithClock(store PlayStore, questions QuestionRepository, progress *ProgressHub, now func() time.Time) *PlayService {
	return &PlayService{store: store, questions: questions, progress: progress, now: now}
}

// Start opens a new play session. Every call creates an independent attempt;
// sessions are not deduplicated by (quiz, player).
func (s *PlayService) Start(ctx context.Context, quizID, playerID string) (string, error) {
	if quizID == "" || playerID == "" {
		return "", fmt.Errorf("%w: quizId and playerId are required", domain.ErrInvalidInput)
	}
	sessionID, err := s.store.CreateSession(ctx, quizID, playerID, s.now())
	if err != nil {
		return "", wrapStoreErr("create session", err)
	}
	return sessionID, nil
}

// Answer grades one submission and records it. Duplicate submissions for the
// same question, and submissions arriving after finish, are accepted and
// recorded as-is; deduplicating here would change the finish aggregates.
func (s *PlayService) Answer(ctx context.Context, sessionID, questionID, submitted string) (domain.Verdict, error) {
	if sessionID == "" || questionID == "" {
		return "", fmt.Errorf("%w: sessionId and questionId are required", domain.ErrInvalidInput)
	}

	question, err := s.questions.GetQuestion(ctx, questionID)
	if err != nil {
		return "", wrapStoreErr("load question", err)
	}

	verdict, err := EvaluateAnswer(question.Type, question.ExpectedAnswer, submitted)
	if err != nil {
		return "", err
	}

	if err := s.store.RecordAnswer(ctx, sessionID, questionID, submitted, verdict); err != nil {
		return "", wrapStoreErr("record answer", err)
	}

	if s.progress != nil {
		s.progress.PublishAnswer(sessionID, verdict, s.now())
	}
	return verdict, nil
}

// Finish recomputes the session aggregates from the recorded answers and
// writes them together with the finish timestamp. The answer rows are
// immutable, so re-finishing overwrites the row with identical values.
func (s *PlayService) Finish(ctx context.Context, sessionID, playerID string) (domain.PlaySession, error) {
	if sessionID == "" || playerID == "" {
		return domain.PlaySession{}, fmt.Errorf("%w: sessionId and playerId are required", domain.ErrInvalidInput)
	}

	answers, err := s.store.ListAnswers(ctx, sessionID)
	if err != nil {
		return domain.PlaySession{}, wrapStoreErr("list answers", err)
	}

	total := len(answers)
	correct := 0
	for _, a := range answers {
		if a.Verdict == domain.VerdictCorrect {
			correct++
		}
	}
	percent := percentScore(correct, total)

	session, err := s.store.FinalizeSession(ctx, sessionID, playerID, total, correct, percent, s.now())
	if err != nil {
		return domain.PlaySession{}, wrapStoreErr("finalize session", err)
	}

	if s.progress != nil {
		s.progress.PublishFinish(sessionID, total, correct, percent, s.now())
	}
	return session, nil
}

// wrapStoreErr tags store I/O failures as persistence errors while keeping
// domain sentinels (not-found, unauthorized) recognizable via errors.Is.
func wrapStoreErr(op string, err error) error {
	if isDomainErr(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrPersistence, op, err)
}

func isDomainErr(err error) bool {
	for _, sentinel := range []error{
		domain.ErrInvalidInput,
		domain.ErrUnauthorized,
		domain.ErrQuizNotFound,
		domain.ErrQuestionNotFound,
		domain.ErrSessionNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
