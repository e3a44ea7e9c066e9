// Package server exposes the analysis engine over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/race-lens/internal/models"
	"github.com/yourusername/race-lens/internal/service"
)

// ErrorResponse is the JSON error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	svc              *service.AnalysisService
	defaultThreshold int
	logger           *logrus.Logger
}

// NewHandler creates a new handler with dependencies
func NewHandler(svc *service.AnalysisService, defaultThreshold int, logger *logrus.Logger) *Handler {
	return &Handler{
		svc:              svc,
		defaultThreshold: defaultThreshold,
		logger:           logger,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "race-lens",
	})
}

// AnalyzeSnapshot analyzes a caller-supplied race snapshot.
// POST /api/v1/analyze
func (h *Handler) AnalyzeSnapshot(w http.ResponseWriter, r *http.Request) {
	var data models.RaceData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid race data payload", err)
		return
	}

	result, err := h.svc.Analyze(&data)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "analysis failed", err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// GetRaceAnalysis analyzes a stored race snapshot.
// GET /api/v1/races/{date}/{race}/analysis
func (h *Handler) GetRaceAnalysis(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	race := chi.URLParam(r, "race")

	result, err := h.svc.AnalyzeRace(date, race)
	if err != nil {
		if errors.Is(err, models.ErrRaceNotFound) {
			h.respondError(w, http.StatusNotFound, "race not found", err)
			return
		}
		h.respondError(w, http.StatusInternalServerError, "analysis failed", err)
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// ExportRaceAnalysis returns the filtered export envelope for a race.
// GET /api/v1/races/{date}/{race}/export?minPriority=N
func (h *Handler) ExportRaceAnalysis(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	race := chi.URLParam(r, "race")
	minPriority := parseIntParam(r, "minPriority", h.defaultThreshold)

	export, err := h.svc.Export(date, race, minPriority)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrRaceNotFound):
			h.respondError(w, http.StatusNotFound, "race not found", err)
		case errors.Is(err, models.ErrInvalidPriority):
			h.respondError(w, http.StatusBadRequest, "invalid priority threshold", err)
		default:
			h.respondError(w, http.StatusInternalServerError, "export failed", err)
		}
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename()+`"`)
	h.respondJSON(w, http.StatusOK, export)
}

func parseIntParam(r *http.Request, param string, defaultValue int) int {
	valueStr := r.URL.Query().Get(param)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.WithError(err).Error("Failed to encode response")
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		h.logger.WithError(err).Warn(message)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errResp := ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}

	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		h.logger.WithError(err).Error("Failed to encode error response")
	}
}
