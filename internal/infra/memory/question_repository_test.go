package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"noukie-quiz-service/internal/domain"
)

func TestQuestionRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		QuestionLoader: NewStaticQuizLoader(map[string]domain.Quiz{
			"quiz-1": sampleQuiz(),
		}),
	}
	repo := NewQuestionRepository(loader, time.Minute)

	question, err := repo.GetQuestion(context.Background(), "q1")
	if err != nil {
		t.Fatalf("get question: %v", err)
	}
	if question.ExpectedAnswer != "Amsterdam" {
		t.Fatalf("expected loaded question, got %+v", question)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GetQuestion(context.Background(), "q1"); err != nil {
		t.Fatalf("get question 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestQuestionRepositoryPropagatesNotFound(t *testing.T) {
	repo := NewQuestionRepository(NewStaticQuizLoader(nil), time.Minute)
	_, err := repo.GetQuestion(context.Background(), "missing")
	if !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected question not found, got %v", err)
	}
}

func TestQuizRepositoryCaches(t *testing.T) {
	loader := &countingQuizLoader{
		QuizLoader: NewStaticQuizLoader(map[string]domain.Quiz{
			"quiz-1": sampleQuiz(),
		}),
	}
	repo := NewQuizRepository(loader, time.Minute)

	if _, err := repo.GetQuiz(context.Background(), "quiz-1"); err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GetQuiz(context.Background(), "quiz-1"); err != nil {
		t.Fatalf("get quiz 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

type countingLoader struct {
	QuestionLoader
	calls int
}

func (l *countingLoader) LoadQuestion(ctx context.Context, questionID string) (domain.Question, error) {
	l.calls++
	return l.QuestionLoader.LoadQuestion(ctx, questionID)
}

type countingQuizLoader struct {
	QuizLoader
	calls int
}

func (l *countingQuizLoader) LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	l.calls++
	return l.QuizLoader.LoadQuiz(ctx, quizID)
}

func sampleQuiz() domain.Quiz {
	return domain.Quiz{
		ID:        "quiz-1",
		Subject:   "aardrijkskunde",
		Title:     "Hoofdsteden",
		Published: true,
		OwnerID:   "coach-1",
		Questions: []domain.Question{
			{ID: "q1", QuizID: "quiz-1", Type: domain.QuestionMultipleChoice, Prompt: "Hoofdstad van Nederland?", Choices: []string{"Amsterdam", "Rotterdam"}, ExpectedAnswer: "Amsterdam", Position: 1},
			{ID: "q2", QuizID: "quiz-1", Type: domain.QuestionOpenEnded, Prompt: "Leg uit.", Position: 2},
		},
	}
}
