package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	TypeGenerateEpisode      = "episode:generate"
	TypeCleanupStaleEpisodes = "episodes:cleanup"
)

type GenerateEpisodeTaskPayload struct {
	LocationName string
	Language     string
	City         string
	Country      string
	Kind         string
}

func NewGenerateEpisodeTask(locationName, language, city, country, kind string) (*asynq.Task, error) {
	payload, err := json.Marshal(GenerateEpisodeTaskPayload{
		LocationName: locationName,
		Language:     language,
		City:         city,
		Country:      country,
		Kind:         kind,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeGenerateEpisode, payload), nil
}

func NewCleanupStaleEpisodesTask() (*asynq.Task, error) {
	return asynq.NewTask(TypeCleanupStaleEpisodes, nil), nil
}
