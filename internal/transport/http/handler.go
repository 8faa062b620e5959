package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"noukie-quiz-service/internal/app"
	"noukie-quiz-service/internal/config"
	"noukie-quiz-service/internal/domain"
)

// Handler exposes the play state machine and the game calculator over JSON.
type Handler struct {
	play    *app.PlayService
	quizzes app.QuizRepository
	game    config.GameConfig
}

func NewHandler(play *app.PlayService, quizzes app.QuizRepository, game config.GameConfig) *Handler {
	return &Handler{play: play, quizzes: quizzes, game: game}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/play/start", h.handleStart)
	mux.HandleFunc("POST /api/play/answer", h.handleAnswer)
	mux.HandleFunc("POST /api/play/finish", h.handleFinish)
	mux.HandleFunc("GET /api/quizzes/{id}", h.handleGetQuiz)
	mux.HandleFunc("POST /api/game/award", h.handleGameAward)
	mux.HandleFunc("GET /api/game/rank", h.handleGameRank)
}

type startRequest struct {
	QuizID   string `json:"quizId"`
	PlayerID string `json:"playerId"`
}

type startResponse struct {
	SessionID string `json:"sessionId"`
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sessionID, err := h.play.Start(r.Context(), req.QuizID, req.PlayerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, startResponse{SessionID: sessionID})
}

type answerRequest struct {
	SessionID  string `json:"sessionId"`
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

type answerResponse struct {
	Verdict domain.Verdict `json:"verdict"`
}

func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	verdict, err := h.play.Answer(r.Context(), req.SessionID, req.QuestionID, req.Answer)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answerResponse{Verdict: verdict})
}

type finishRequest struct {
	SessionID string `json:"sessionId"`
	PlayerID  string `json:"playerId"`
}

func (h *Handler) handleFinish(w http.ResponseWriter, r *http.Request) {
	var req finishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	session, err := h.play.Finish(r.Context(), req.SessionID, req.PlayerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// handleGetQuiz returns the play view of a quiz: expected answers and
// explanations are stripped so the client cannot grade ahead of the server.
func (h *Handler) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.quizzes.GetQuiz(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if !quiz.Published {
		// Unpublished quizzes are soft-hidden, never deleted.
		writeDomainError(w, domain.ErrQuizNotFound)
		return
	}
	for i := range quiz.Questions {
		quiz.Questions[i].ExpectedAnswer = ""
		quiz.Questions[i].Explanation = ""
	}
	writeJSON(w, http.StatusOK, quiz)
}

type awardRequest struct {
	Subject         string `json:"subject"`
	Streak          int    `json:"streak"`
	AnsweredQuickly bool   `json:"answeredQuickly"`
}

type awardResponse struct {
	XP int `json:"xp"`
}

func (h *Handler) handleGameAward(w http.ResponseWriter, r *http.Request) {
	var req awardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Streak < 0 {
		writeError(w, http.StatusBadRequest, "streak must be non-negative")
		return
	}
	cfg := h.game.ForSubject(req.Subject)
	writeJSON(w, http.StatusOK, awardResponse{XP: cfg.AwardXP(req.Streak, req.AnsweredQuickly)})
}

type rankResponse struct {
	Rank       string `json:"rank"`
	NextRankXP *int   `json:"nextRankXp,omitempty"`
}

func (h *Handler) handleGameRank(w http.ResponseWriter, r *http.Request) {
	xp, err := parseNonNegativeInt(r.URL.Query().Get("xp"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "xp must be a non-negative integer")
		return
	}
	cfg := h.game.ForSubject(r.URL.Query().Get("subject"))
	resp := rankResponse{Rank: cfg.RankFor(xp)}
	if next, ok := cfg.NextRankXP(xp); ok {
		resp.NextRankXP = &next
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseNonNegativeInt(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrQuizNotFound),
		errors.Is(err, domain.ErrQuestionNotFound),
		errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
