package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"travelcast/internal/ai"
	"travelcast/internal/db"
	"travelcast/internal/episodes"
	"travelcast/internal/handlers"
	"travelcast/internal/middleware"
	"travelcast/internal/podcast"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	db.InitDB()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	aiClient, err := ai.New(os.Getenv("OPENAI_API_KEY"), os.Getenv("TEXT_MODEL"), podcast.SystemInstructions)
	if err != nil {
		log.Fatalf("Failed to create AI client: %v", err)
	}

	manager := episodes.NewManager(aiClient)
	h := handlers.New(manager, asynqClient, os.Getenv("BASE_URL"))

	r := mux.NewRouter()
	limiter := middleware.NewRateLimiterMiddleware(rate.Every(time.Second), 5)
	r.Use(limiter.Middleware)

	r.HandleFunc("/api/podcasts", h.GeneratePodcast).Methods(http.MethodPost)
	r.HandleFunc("/api/podcasts", h.GetPodcast).Methods(http.MethodGet)
	r.HandleFunc("/rss", h.GetRSSFeed).Methods(http.MethodGet)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
	}

	log.Printf("Starting server on :%s\n", port)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
