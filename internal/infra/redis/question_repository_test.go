package redis

import (
	"context"
	"testing"
	"time"

	"noukie-quiz-service/internal/domain"
	"noukie-quiz-service/internal/infra/memory"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestQuestionRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	loader := &countingLoader{
		QuestionLoader: memory.NewStaticQuizLoader(map[string]domain.Quiz{
			"quiz-1": sampleQuiz(),
		}),
	}
	repo := NewQuestionRepository(client, loader, time.Minute)

	question, err := repo.GetQuestion(context.Background(), "q1")
	if err != nil {
		t.Fatalf("get question: %v", err)
	}
	if question.Type != domain.QuestionMultipleChoice || question.ExpectedAnswer != "Amsterdam" {
		t.Fatalf("expected grading fields, got %+v", question)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}

	// Second call should hit the redis hash, loader not incremented.
	cached, err := repo.GetQuestion(context.Background(), "q1")
	if err != nil {
		t.Fatalf("get question 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if cached.ExpectedAnswer != "Amsterdam" {
		t.Fatalf("expected cached grading fields, got %+v", cached)
	}
}

type countingLoader struct {
	memory.QuestionLoader
	calls int
}

func (l *countingLoader) LoadQuestion(ctx context.Context, questionID string) (domain.Question, error) {
	l.calls++
	return l.QuestionLoader.LoadQuestion(ctx, questionID)
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
		},
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
