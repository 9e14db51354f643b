package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/krishisahay/backend/internal/inference"
	"github.com/krishisahay/backend/internal/models"
	"github.com/krishisahay/backend/internal/orchestrator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Categories returns the fixed topic catalog.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]models.CategoryInfo{"categories": models.QuizCategories})
}

// Start generates a quiz for the requested category and returns the first
// question.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)

	var req models.StartQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	view, err := h.service.Start(r.Context(), userID, req.Category)
	if err != nil {
		switch {
		case errors.Is(err, orchestrator.ErrSuperseded):
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Superseded by a newer quiz"})
		case inference.KindOf(err) == inference.KindMalformedResponse:
			writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "Quiz generation returned an unusable set of questions. Please try again."})
		case !models.ValidQuizCategories[req.Category]:
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		default:
			writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "Quiz generation is unavailable right now. Please try again."})
		}
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Session returns the running session state.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)

	view, ok := h.service.View(userID)
	if !ok {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "No active quiz session"})
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// SelectAnswer submits an answer for the current question.
func (h *Handler) SelectAnswer(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)

	var req models.SelectAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	view, err := h.service.SelectAnswer(userID, req.Answer)
	if err != nil {
		if _, ok := h.service.View(userID); !ok {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "No active quiz session"})
			return
		}
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Reset abandons the running session.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)
	h.service.Reset(userID)
	w.WriteHeader(http.StatusNoContent)
}

// Scores lists the user's saved quiz results.
func (h *Handler) Scores(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)

	scores, err := h.service.Scores(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load quiz scores"})
		return
	}
	writeJSON(w, http.StatusOK, models.QuizScoreListResponse{Scores: scores})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
