package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"travelcast/internal/episodes"
	"travelcast/pkg/tasks"
)

// generateTimeout bounds a synchronous generation request. Callers who
// cannot wait this long should set async.
const generateTimeout = 60 * time.Second

type generateRequest struct {
	LocationName    string `json:"locationName"`
	Language        string `json:"language"`
	Async           bool   `json:"async"`
	LocationContext struct {
		City    string `json:"city"`
		Country string `json:"country"`
		Kind    string `json:"kind"`
	} `json:"locationContext"`
}

// GeneratePodcast handles POST /api/podcasts. With async set, the work
// is queued and the handler returns immediately; otherwise it blocks
// until the script is ready or the timeout budget runs out.
func (h *Handlers) GeneratePodcast(w http.ResponseWriter, r *http.Request) {
	var body generateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.LocationName == "" {
		writeError(w, http.StatusBadRequest, "locationName is required")
		return
	}

	req := episodes.GenerateRequest{
		LocationName: body.LocationName,
		Language:     body.Language,
	}
	req.Context.City = body.LocationContext.City
	req.Context.Country = body.LocationContext.Country
	req.Context.Kind = body.LocationContext.Kind

	if body.Async {
		task, err := tasks.NewGenerateEpisodeTask(req.LocationName, req.Language, req.Context.City, req.Context.Country, req.Context.Kind)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to create task")
			return
		}
		if _, err := h.asynqClient.Enqueue(task); err != nil {
			log.Printf("Failed to enqueue generation task: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to enqueue generation")
			return
		}
		writeJSON(w, http.StatusAccepted, apiResponse{Success: true, Data: map[string]interface{}{
			"queued":       true,
			"locationName": req.LocationName,
		}})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
	defer cancel()

	result, err := h.episodes.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, episodes.ErrLocationRequired) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Generation failed for %q: %v", req.LocationName, err)
		writeError(w, http.StatusInternalServerError, "podcast generation failed")
		return
	}

	status := http.StatusCreated
	if result.Reused {
		status = http.StatusOK
	}
	writeJSON(w, status, apiResponse{Success: true, Data: map[string]interface{}{
		"episodeId":         result.EpisodeID,
		"status":            result.Status,
		"segmentCount":      result.SegmentCount,
		"estimatedDuration": result.EstimatedDuration,
		"chapterCount":      result.ChapterCount,
		"reused":            result.Reused,
	}})
}

// GetPodcast handles GET /api/podcasts?location=...&language=...
func (h *Handlers) GetPodcast(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		writeError(w, http.StatusBadRequest, "location query parameter is required")
		return
	}
	language := r.URL.Query().Get("language")

	view, err := h.episodes.Get(r.Context(), location, language)
	if err != nil {
		log.Printf("Lookup failed for %q: %v", location, err)
		writeError(w, http.StatusInternalServerError, "podcast lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: view})
}
