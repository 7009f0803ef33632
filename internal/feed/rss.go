package feed

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/eduncan911/podcast"

	"travelcast/internal/models"
)

func getBaseURL(r *http.Request) string {
	if baseURL := os.Getenv("BASE_URL"); baseURL != "" {
		return baseURL
	}

	scheme := r.URL.Scheme
	if scheme == "" {
		scheme = "https"
		if r.Header.Get("X-Forwarded-Proto") != "" {
			scheme = r.Header.Get("X-Forwarded-Proto")
		}
	}

	return fmt.Sprintf("%s://%s", scheme, r.Host)
}

// GenerateRSS renders completed episodes as a podcast feed. Episodes
// link back to the API lookup for their subject; audio enclosures come
// later, once synthesis exists.
func GenerateRSS(episodes []models.Episode, r *http.Request) (string, error) {
	baseURL := getBaseURL(r)

	now := time.Now()
	p := podcast.New(
		"Travelcast Audio Guides",
		fmt.Sprintf("%s/rss", baseURL),
		"AI-generated two-host audio guides for places worth visiting.",
		&now, &now,
	)

	for _, episode := range episodes {
		pubDate := episode.CreatedAt
		item := podcast.Item{
			Title:       episode.Title,
			Description: episode.Description,
			Link: fmt.Sprintf("%s/api/podcasts?location=%s&language=%s",
				baseURL, url.QueryEscape(episode.LocationInput), url.QueryEscape(episode.Language)),
			PubDate: &pubDate,
		}
		if _, err := p.AddItem(item); err != nil {
			return "", err
		}
	}

	return p.String(), nil
}
