package feed

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelcast/internal/models"
)

func TestGenerateRSS(t *testing.T) {
	episodes := []models.Episode{
		{
			ID:            "ep-1",
			Title:         "British Museum Audio Guide",
			Description:   "A two-host deep dive into the British Museum.",
			Language:      "en",
			LocationInput: "British Museum",
			LocationSlug:  "british-museum",
			Status:        models.StatusCompleted,
			CreatedAt:     time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:            "ep-2",
			Title:         "경복궁 Audio Guide",
			Description:   "A two-host deep dive into 경복궁.",
			Language:      "ko",
			LocationInput: "경복궁",
			LocationSlug:  "gyeongbokgung-palace",
			Status:        models.StatusCompleted,
			CreatedAt:     time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC),
		},
	}

	req := httptest.NewRequest("GET", "https://guides.example.com/rss", nil)
	rss, err := GenerateRSS(episodes, req)
	require.NoError(t, err)

	assert.Contains(t, rss, "British Museum Audio Guide")
	assert.Contains(t, rss, "경복궁 Audio Guide")
	assert.Contains(t, rss, "Travelcast Audio Guides")
	// Links carry the lookup query, with the location escaped.
	assert.Contains(t, rss, "location=British+Museum")
}

func TestGenerateRSSEmpty(t *testing.T) {
	req := httptest.NewRequest("GET", "https://guides.example.com/rss", nil)
	rss, err := GenerateRSS(nil, req)
	require.NoError(t, err)
	assert.Contains(t, rss, "<rss")
}

func TestGetBaseURLPrefersEnv(t *testing.T) {
	t.Setenv("BASE_URL", "https://cdn.example.com")
	req := httptest.NewRequest("GET", "http://localhost:8080/rss", nil)
	assert.Equal(t, "https://cdn.example.com", getBaseURL(req))
}

func TestGetBaseURLFromRequest(t *testing.T) {
	t.Setenv("BASE_URL", "")
	req := httptest.NewRequest("GET", "/rss", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	assert.Equal(t, "https://example.com", getBaseURL(req))
}
