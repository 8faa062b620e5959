package app

import (
	"fmt"
	"math"
	"strings"

	"noukie-quiz-service/internal/domain"
)

// EvaluateAnswer grades a submission against a question's expected answer.
// Questions without an expected answer grade as unknown for any submission;
// the question type gates nothing beyond input validation, so open-ended
// questions with an expected answer are auto-graded like multiple-choice.
func EvaluateAnswer(questionType domain.QuestionType, expectedAnswer, submittedAnswer string) (domain.Verdict, error) {
	switch questionType {
	case domain.QuestionMultipleChoice, domain.QuestionOpenEnded:
	default:
		return "", fmt.Errorf("%w: unknown question type %q", domain.ErrInvalidInput, questionType)
	}

	if strings.TrimSpace(expectedAnswer) == "" {
		return domain.VerdictUnknown, nil
	}

	if strings.EqualFold(strings.TrimSpace(expectedAnswer), strings.TrimSpace(submittedAnswer)) {
		return domain.VerdictCorrect, nil
	}
	return domain.VerdictIncorrect, nil
}

// percentScore rounds to two decimals by scaling, half away from zero, so
// stored scores match the original app byte for byte.
func percentScore(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(total)*10000) / 100
}
