package handlers

import (
	"log"
	"net/http"

	"travelcast/internal/db"
	"travelcast/internal/feed"
)

const feedEpisodeLimit = 50

func (h *Handlers) GetRSSFeed(w http.ResponseWriter, r *http.Request) {
	episodes, err := db.GetCompletedEpisodes(feedEpisodeLimit)
	if err != nil {
		log.Printf("Error getting episodes: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	rss, err := feed.GenerateRSS(episodes, r)
	if err != nil {
		log.Printf("Error generating RSS: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml")
	w.Write([]byte(rss))
}
