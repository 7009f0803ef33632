package main

import (
	"log"
	"os"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"travelcast/internal/ai"
	"travelcast/internal/db"
	"travelcast/internal/episodes"
	"travelcast/internal/podcast"
	"travelcast/internal/worker"
	"travelcast/pkg/tasks"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	db.InitDB()

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "127.0.0.1:6379"
	}

	aiClient, err := ai.New(os.Getenv("OPENAI_API_KEY"), os.Getenv("TEXT_MODEL"), podcast.SystemInstructions)
	if err != nil {
		log.Fatalf("Failed to create AI client: %v", err)
	}
	manager := episodes.NewManager(aiClient)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 1, // Process one generation at a time to stay under model rate limits
			Queues: map[string]int{
				"high":    2,
				"default": 1,
			},
			// Custom retry delay function for exponential backoff
			RetryDelayFunc: func(n int, err error, task *asynq.Task) time.Duration {
				delay := 2 * time.Minute
				maxDelay := 2 * time.Hour

				// Exponential backoff: 2min, 4min, 8min, 16min, etc.
				for i := 0; i < n; i++ {
					delay *= 2
					if delay > maxDelay {
						delay = maxDelay
						break
					}
				}

				log.Printf("Task %s failed %d times, retrying in %v", task.Type(), n+1, delay)
				return delay
			},
		},
	)

	mux := asynq.NewServeMux()
	taskHandler := worker.NewTaskHandler(manager)

	mux.HandleFunc(tasks.TypeGenerateEpisode, taskHandler.HandleGenerateEpisodeTask)
	mux.HandleFunc(tasks.TypeCleanupStaleEpisodes, taskHandler.HandleCleanupStaleEpisodesTask)

	log.Printf("Worker starting (commit: %s)", CommitSHA)
	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
