package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"travelcast/internal/db"
	"travelcast/internal/episodes"
	"travelcast/internal/podcast"
	"travelcast/pkg/tasks"
)

// staleEpisodeAge is how long an episode may sit in "generating" before
// the cleanup task declares it dead.
const staleEpisodeAge = time.Hour

// EpisodeGenerator is the part of the episode manager the worker needs.
type EpisodeGenerator interface {
	Generate(ctx context.Context, req episodes.GenerateRequest) (*episodes.GenerateResult, error)
}

type TaskHandler struct {
	episodes EpisodeGenerator
}

func NewTaskHandler(generator EpisodeGenerator) *TaskHandler {
	return &TaskHandler{episodes: generator}
}

func (h *TaskHandler) HandleGenerateEpisodeTask(ctx context.Context, t *asynq.Task) error {
	var p tasks.GenerateEpisodeTaskPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %w", err)
	}

	log.Printf("Generating episode for %q (%s)", p.LocationName, p.Language)

	result, err := h.episodes.Generate(ctx, episodes.GenerateRequest{
		LocationName: p.LocationName,
		Language:     p.Language,
		Context: podcast.LocationContext{
			City:    p.City,
			Country: p.Country,
			Kind:    p.Kind,
		},
	})
	if err != nil {
		return fmt.Errorf("generation for %q failed: %w", p.LocationName, err)
	}

	log.Printf("Episode %s ready: %d segments, %ds estimated (reused=%t)",
		result.EpisodeID, result.SegmentCount, result.EstimatedDuration, result.Reused)
	return nil
}

func (h *TaskHandler) HandleCleanupStaleEpisodesTask(ctx context.Context, t *asynq.Task) error {
	cutoff := time.Now().Add(-staleEpisodeAge)
	n, err := db.FailStaleGeneratingEpisodes(cutoff)
	if err != nil {
		return fmt.Errorf("failed to clean up stale episodes: %w", err)
	}
	if n > 0 {
		log.Printf("Marked %d stale episodes as failed", n)
	}
	return nil
}
