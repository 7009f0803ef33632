package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"travelcast/internal/episodes"
	"travelcast/pkg/tasks"
)

// EpisodeService is the slice of the episode manager the HTTP layer
// needs. Tests substitute a stub.
type EpisodeService interface {
	Generate(ctx context.Context, req episodes.GenerateRequest) (*episodes.GenerateResult, error)
	Get(ctx context.Context, locationName, language string) (*episodes.EpisodeView, error)
}

type Handlers struct {
	episodes    EpisodeService
	asynqClient tasks.TaskEnqueuer
	baseURL     string
}

func New(episodeService EpisodeService, asynqClient tasks.TaskEnqueuer, baseURL string) *Handlers {
	return &Handlers{
		episodes:    episodeService,
		asynqClient: asynqClient,
		baseURL:     baseURL,
	}
}

// apiResponse is the envelope every JSON endpoint answers with.
type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiResponse{Success: false, Error: message})
}
