package profile

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"sort"

	"github.com/krishisahay/backend/internal/models"
)

type Handler struct {
	store    *Store
	teardown *Teardown
}

func NewHandler(store *Store, teardown *Teardown) *Handler {
	return &Handler{store: store, teardown: teardown}
}

// Get returns the user's farm profile, or 404 when they have not saved one.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)

	p, err := h.store.Get(r.Context(), userID)
	if err == sql.ErrNoRows {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "No farm profile yet"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load farm profile"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Save creates the profile on first call and updates it afterwards.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)

	var req models.SaveProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	p, err := h.store.Save(r.Context(), userID, req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save farm profile"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeleteAccount removes all of the user's data after an explicit
// confirmation, then logs them out.
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)

	var req models.DeleteAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Confirm != models.DeleteAccountConfirmation {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: ErrConfirmationMismatch.Error()})
		return
	}

	resp := h.teardown.Run(r.Context(), userID)
	sort.Strings(resp.Failures)
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
