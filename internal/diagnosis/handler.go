package diagnosis

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/krishisahay/backend/internal/inference"
	"github.com/krishisahay/backend/internal/models"
	"github.com/krishisahay/backend/internal/orchestrator"
	"github.com/krishisahay/backend/internal/upload"
)

const historyLimit = 10

// maxImageBytes caps uploaded scan images at 10 MB.
const maxImageBytes = 10 << 20

type Handler struct {
	service  *Service
	uploader upload.Uploader
}

func NewHandler(service *Service, uploader upload.Uploader) *Handler {
	return &Handler{service: service, uploader: uploader}
}

// Analyze accepts either a multipart upload (field "image") or a JSON body
// with an already-uploaded image_url, then runs the scan.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)

	imageURL, err := h.resolveImageURL(w, r)
	if err != nil {
		writeInferenceError(w, err)
		return
	}
	if imageURL == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "An image file or image_url is required"})
		return
	}

	outcome, err := h.service.Analyze(r.Context(), userID, imageURL)
	if err != nil {
		if errors.Is(err, orchestrator.ErrSuperseded) {
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Superseded by a newer scan"})
			return
		}
		writeInferenceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse(outcome))
}

func (h *Handler) resolveImageURL(w http.ResponseWriter, r *http.Request) (string, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
		file, header, err := r.FormFile("image")
		if err != nil {
			return "", nil
		}
		defer file.Close()
		return h.uploader.Upload(r.Context(), header.Filename, file)
	}

	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", nil
	}
	return req.ImageURL, nil
}

// State returns the user's current diagnosis lifecycle snapshot.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)
	snap := h.service.State(userID)

	resp := models.AnalyzeResponse{State: string(snap.Phase)}
	if snap.Result != nil {
		full := analyzeResponse(snap.Result)
		full.State = string(snap.Phase)
		resp = full
	}
	writeJSON(w, http.StatusOK, resp)
}

// Reset clears the diagnosis slot so the client can start a fresh scan.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)
	h.service.Reset(userID)
	writeJSON(w, http.StatusOK, models.AnalyzeResponse{State: string(orchestrator.PhaseIdle)})
}

// History lists the user's saved diagnosis reports.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("user_id").(int64)

	reports, err := h.service.History(r.Context(), userID, historyLimit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load diagnosis history"})
		return
	}
	writeJSON(w, http.StatusOK, models.DiagnosisHistoryResponse{Reports: reports})
}

func analyzeResponse(o *Outcome) models.AnalyzeResponse {
	return models.AnalyzeResponse{
		State:        string(orchestrator.PhaseSucceeded),
		Analysis:     &o.Analysis,
		Report:       o.Report,
		PersistError: o.PersistError,
	}
}

func writeInferenceError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	msg := "The analysis service is unavailable. Please try again."

	switch inference.KindOf(err) {
	case inference.KindMalformedResponse:
		status = http.StatusBadGateway
		msg = "The analysis service returned an unreadable response. Please try again."
	case inference.KindUploadFailed:
		status = http.StatusBadGateway
		msg = "The image could not be uploaded. Please try again."
	}

	writeJSON(w, status, models.ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
