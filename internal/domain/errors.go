package domain

import "errors"

var (
	// ErrInvalidInput is returned for malformed or missing required fields.
	// Legitimately absent optional fields (e.g. an empty expected answer) are
	// not invalid input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized is returned when a player tries to finish a session
	// they do not own.
	ErrUnauthorized = errors.New("session does not belong to player")
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound indicates a submitted question ID is invalid.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrSessionNotFound indicates an unknown play session ID.
	ErrSessionNotFound = errors.New("play session not found")
	// ErrPersistence wraps store I/O failures; the underlying message is
	// preserved via error wrapping.
	ErrPersistence = errors.New("persistence failure")
)
