// Package handler implements the JSON API surface.
package handler

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mockview/interviewd/internal/model"
	"github.com/mockview/interviewd/internal/question"
	"github.com/mockview/interviewd/internal/scoring"
	"github.com/mockview/interviewd/internal/session"
	"github.com/mockview/interviewd/internal/speech"
)

// Handler holds shared dependencies for HTTP handlers. A nil speech client
// means the speech endpoints answer with a configuration error.
type Handler struct {
	questions *question.Store
	scorer    scoring.Scorer
	sessions  *session.Store
	speech    *speech.Client
}

// New creates a new Handler.
func New(qs *question.Store, sc scoring.Scorer, sess *session.Store, sp *speech.Client) *Handler {
	return &Handler{questions: qs, scorer: sc, sessions: sess, speech: sp}
}

// Routes registers all API routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/api/questions", h.handleQuestions)
	r.Post("/api/submit", h.handleSubmit)
	r.Post("/api/speech-to-text", h.handleSpeechToText)
	r.Post("/api/text-to-speech", h.handleTextToSpeech)
	r.Post("/api/store-response", h.handleStoreResponse)
	r.Get("/api/results/{sessionID}", h.handleResults)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handler) handleQuestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.questions.Public())
}

type submitRequest struct {
	Answers   []model.AnswerSubmission `json:"answers"`
	SessionID string                   `json:"sessionId"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Answers) == 0 {
		writeError(w, http.StatusBadRequest, "No answers provided")
		return
	}

	total := 0
	feedback := make([]model.FeedbackItem, 0, len(req.Answers))

	for i, item := range req.Answers {
		q, ok := h.questions.Get(item.QuestionID)
		if !ok {
			continue
		}

		ev, err := h.scorer.Evaluate(r.Context(), q.Prompt, item.Answer, q.Answers)
		if err != nil {
			slog.Error("evaluation failed", "question_id", item.QuestionID, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to evaluate answers")
			return
		}

		total += ev.Score
		feedback = append(feedback, model.FeedbackItem{
			QuestionNumber: i + 1,
			Question:       q.Prompt,
			UserAnswer:     item.Answer,
			Score:          ev.Score,
			Feedback:       ev.Feedback,
		})

		if req.SessionID != "" {
			h.sessions.StoreResponse(req.SessionID, item.QuestionID, q.Prompt, item.Answer)
			h.sessions.StoreEvaluation(req.SessionID, item.QuestionID, ev)
		}
	}

	writeJSON(w, http.StatusOK, model.SubmitResult{
		// Divisor is the submitted answer count, unknown question ids included.
		TotalScore: total / len(req.Answers),
		Feedback:   feedback,
	})
}

func (h *Handler) handleSpeechToText(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No audio file provided")
		return
	}
	defer file.Close()

	if h.speech == nil {
		writeError(w, http.StatusInternalServerError, "Speech API key not configured")
		return
	}

	text, err := h.speech.Transcribe(r.Context(), file, header.Filename)
	if err != nil {
		slog.Error("speech-to-text failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to convert speech to text")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

type synthesisRequest struct {
	Text string `json:"text"`
}

func (h *Handler) handleTextToSpeech(w http.ResponseWriter, r *http.Request) {
	var req synthesisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "No text provided")
		return
	}

	if h.speech == nil {
		writeError(w, http.StatusInternalServerError, "Speech API key not configured")
		return
	}

	audio, err := h.speech.Synthesize(r.Context(), req.Text)
	if err != nil {
		slog.Error("text-to-speech failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to convert text to speech")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"audio": base64.StdEncoding.EncodeToString(audio),
	})
}

type storeResponseRequest struct {
	SessionID  string `json:"sessionId"`
	QuestionID int    `json:"questionId"`
	Question   string `json:"question"`
	Response   string `json:"response"`
}

func (h *Handler) handleStoreResponse(w http.ResponseWriter, r *http.Request) {
	var req storeResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Question == "" || req.Response == "" {
		writeError(w, http.StatusBadRequest, "Question and response are required")
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	h.sessions.StoreResponse(sessionID, req.QuestionID, req.Question, req.Response)

	// Reference answers are available only when the client sent a known
	// question id; the scorer copes with an empty set.
	var refs []model.ReferenceAnswer
	if q, ok := h.questions.Get(req.QuestionID); ok {
		refs = q.Answers
	}

	ev, err := h.scorer.Evaluate(r.Context(), req.Question, req.Response, refs)
	if err != nil {
		slog.Error("evaluation failed", "session_id", sessionID, "question_id", req.QuestionID, "error", err)
	} else {
		h.sessions.StoreEvaluation(sessionID, req.QuestionID, ev)
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "success",
		"sessionId": sessionID,
	})
}

func (h *Handler) handleResults(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	summary, err := h.sessions.Results(sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load results")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
