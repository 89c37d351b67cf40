package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/AnshRaj112/heritage-backend/internal/models"
	"github.com/AnshRaj112/heritage-backend/internal/services"
	"github.com/AnshRaj112/heritage-backend/pkg/clientip"
	"github.com/AnshRaj112/heritage-backend/pkg/utils"
)

// maxJSONBody caps API request bodies that carry no file.
const maxJSONBody = 1 << 20

// APIResponse is the envelope of every JSON reply.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// StoryResponse represents the response after submitting a story
type StoryResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Story   *models.Story `json:"story,omitempty"`
}

// StoriesResponse represents the response for listing stories
type StoriesResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Stories []models.Story `json:"stories"`
	Total   int            `json:"total"`
}

// PlaceResponse represents the response after submitting a place history
type PlaceResponse struct {
	Success      bool                 `json:"success"`
	Message      string               `json:"message"`
	PlaceHistory *models.PlaceHistory `json:"place_history,omitempty"`
}

// PlacesResponse represents the response for listing place histories
type PlacesResponse struct {
	Success        bool                  `json:"success"`
	Message        string                `json:"message,omitempty"`
	PlaceHistories []services.PlaceEntry `json:"place_histories"`
	Total          int                   `json:"total"`
}

// ExportResponse reports where a snapshot was written.
type ExportResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	Path           string `json:"path,omitempty"`
	Stories        int    `json:"stories"`
	PlaceHistories int    `json:"place_histories"`
}

// HealthResponse is returned by /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeSubmitError maps a submission error to 400 or 500.
func (h *Handler) writeSubmitError(w http.ResponseWriter, err error, failure string) {
	if errors.Is(err, models.ErrValidation) {
		resp := APIResponse{Success: false, Message: "Invalid submission"}
		var verr *utils.ValidationError
		if errors.As(err, &verr) {
			resp.Message = verr.Message
			resp.Field = verr.Field
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}
	h.logger.Error(failure, zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, APIResponse{Success: false, Message: failure})
}

// CreateStory handles submitting a story as JSON
func (h *Handler) CreateStory(w http.ResponseWriter, r *http.Request) {
	var in services.StoryInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	in.Location = h.opts.Locator.Locate(ctx, clientip.RealClientIP(r))
	story, err := h.opts.Submissions.SubmitStory(ctx, in)
	if err != nil {
		h.writeSubmitError(w, err, "Failed to submit story")
		return
	}

	writeJSON(w, http.StatusCreated, StoryResponse{
		Success: true,
		Message: "Story submitted successfully. Thank you!",
		Story:   &story,
	})
}

// GetStories lists stories, newest first
func (h *Handler) GetStories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	stories, err := h.opts.Listings.ListStories(ctx)
	if err != nil {
		h.logger.Error("Failed to fetch stories", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, StoriesResponse{
			Success: false,
			Message: "Failed to fetch stories",
			Stories: []models.Story{},
		})
		return
	}

	writeJSON(w, http.StatusOK, StoriesResponse{Success: true, Stories: stories, Total: len(stories)})
}

// CreatePlace handles a multipart place history submission with an optional
// "image" file.
func (h *Handler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	values, img, err := parsePlaceForm(w, r, h.opts.MaxUploadBytes)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Message: "Failed to parse form"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	place, err := h.opts.Submissions.SubmitPlace(ctx, placeInput(values), img)
	if err != nil {
		h.writeSubmitError(w, err, "Failed to submit place history")
		return
	}

	writeJSON(w, http.StatusCreated, PlaceResponse{
		Success:      true,
		Message:      "Place history submitted successfully. Thank you!",
		PlaceHistory: &place,
	})
}

// GetPlaces lists place histories, newest first, with image paths.
func (h *Handler) GetPlaces(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	places, err := h.opts.Listings.ListPlaces(ctx)
	if err != nil {
		h.logger.Error("Failed to fetch place histories", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, PlacesResponse{
			Success:        false,
			Message:        "Failed to fetch place histories",
			PlaceHistories: []services.PlaceEntry{},
		})
		return
	}

	writeJSON(w, http.StatusOK, PlacesResponse{Success: true, PlaceHistories: places, Total: len(places)})
}

// ExportData writes a snapshot of both tables into admin_data/.
func (h *Handler) ExportData(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	snap, path, err := h.opts.Exports.Export(ctx)
	if err != nil {
		h.logger.Error("Export failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ExportResponse{Success: false, Message: "Failed to export data"})
		return
	}

	writeJSON(w, http.StatusCreated, ExportResponse{
		Success:        true,
		Message:        "Export written",
		Path:           path,
		Stories:        len(snap.Stories),
		PlaceHistories: len(snap.PlaceHistories),
	})
}

// Health reports whether the server and its store are up.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.opts.Health == nil {
		writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Database: "unknown"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.opts.Health.Ping(ctx); err != nil {
		h.logger.Warn("Health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Database: "unreachable"})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Database: "ok"})
}
