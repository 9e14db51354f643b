package market

import (
	"encoding/json"
	"net/http"

	"github.com/krishisahay/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Prices serves the mandi board. Query params: search (crop substring),
// state (exact match), refresh (force a new fetch).
func (h *Handler) Prices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	refresh := q.Get("refresh") == "true"

	resp, err := h.service.Prices(r.Context(), q.Get("search"), q.Get("state"), refresh)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "Market prices are unavailable right now. Please try again."})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
