package domain

import "time"

// QuestionType distinguishes how a question is presented; grading itself is
// type-independent.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionOpenEnded      QuestionType = "open-ended"
)

// Verdict is the three-valued outcome of grading one answer. Unknown means
// the question carried no machine-checkable expected answer.
type Verdict string

const (
	VerdictCorrect   Verdict = "true"
	VerdictIncorrect Verdict = "false"
	VerdictUnknown   Verdict = "unknown"
)

// Question models one quiz question. Choices are present only for
// multiple-choice questions; ExpectedAnswer may be empty, in which case
// submissions grade as unknown.
type Question struct {
	ID             string       `json:"id"`
	QuizID         string       `json:"quizId"`
	Type           QuestionType `json:"type"`
	Prompt         string       `json:"prompt"`
	Choices        []string     `json:"choices,omitempty"`
	ExpectedAnswer string       `json:"expectedAnswer,omitempty"`
	Explanation    string       `json:"explanation,omitempty"`
	Position       int          `json:"position"`
}

// Quiz is an ordered collection of questions for one subject/chapter.
// Unpublished quizzes are hidden, never deleted.
type Quiz struct {
	ID          string     `json:"id"`
	Subject     string     `json:"subject"`
	Chapter     string     `json:"chapter"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Published   bool       `json:"published"`
	OwnerID     string     `json:"ownerId"`
	Questions   []Question `json:"questions"`
}

// PlaySession is one player's attempt at a quiz. FinishedAt is nil while the
// attempt is in progress; the aggregates are written only at finish.
type PlaySession struct {
	ID         string     `json:"id"`
	QuizID     string     `json:"quizId"`
	PlayerID   string     `json:"playerId"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
	Total      int        `json:"total"`
	Correct    int        `json:"correct"`
	Percent    float64    `json:"percent"`
}

// AnswerRecord is one graded submission within a session. Records are
// immutable once written; resubmitting a question produces a second record.
type AnswerRecord struct {
	ID         string  `json:"id"`
	SessionID  string  `json:"sessionId"`
	QuestionID string  `json:"questionId"`
	Submitted  string  `json:"submitted,omitempty"`
	Verdict    Verdict `json:"verdict"`
}
