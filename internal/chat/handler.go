package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/krishisahay/backend/internal/inference"
	"github.com/krishisahay/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SendMessage posts a farmer message and returns the updated transcript.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)

	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Content == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Message content is required"})
		return
	}

	transcript, err := h.service.Send(r.Context(), userID, req.Content)
	if err != nil {
		var infErr *inference.Error
		if errors.As(err, &infErr) {
			writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "The advisor is unavailable right now. Please try again."})
			return
		}
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, transcript)
}

// GetTranscript returns the running conversation.
func (h *Handler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)
	writeJSON(w, http.StatusOK, h.service.Transcript(userID))
}

// Reset starts the conversation over.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)
	writeJSON(w, http.StatusOK, h.service.Reset(userID))
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
