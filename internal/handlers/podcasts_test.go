package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelcast/internal/episodes"
	"travelcast/internal/models"
	"travelcast/internal/test"
	"travelcast/pkg/tasks"
)

// stubEpisodeService fakes the episode manager for handler tests.
type stubEpisodeService struct {
	generateResult *episodes.GenerateResult
	generateErr    error
	view           *episodes.EpisodeView
	viewErr        error

	lastGenerate episodes.GenerateRequest
	lastLocation string
	lastLanguage string
}

func (s *stubEpisodeService) Generate(ctx context.Context, req episodes.GenerateRequest) (*episodes.GenerateResult, error) {
	s.lastGenerate = req
	return s.generateResult, s.generateErr
}

func (s *stubEpisodeService) Get(ctx context.Context, locationName, language string) (*episodes.EpisodeView, error) {
	s.lastLocation = locationName
	s.lastLanguage = language
	return s.view, s.viewErr
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestGeneratePodcast(t *testing.T) {
	stub := &stubEpisodeService{
		generateResult: &episodes.GenerateResult{
			EpisodeID:         "ep-1",
			Status:            models.StatusScriptReady,
			SegmentCount:      19,
			EstimatedDuration: 285,
			ChapterCount:      4,
		},
	}
	h := New(stub, &test.MockTaskEnqueuer{}, "")

	body := `{"locationName":"Ponte Vecchio","language":"en","locationContext":{"city":"Florence","country":"Italy"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/podcasts", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.GeneratePodcast(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, true, envelope["success"])

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, "ep-1", data["episodeId"])
	assert.Equal(t, string(models.StatusScriptReady), data["status"])
	assert.Equal(t, float64(19), data["segmentCount"])

	assert.Equal(t, "Florence", stub.lastGenerate.Context.City)
}

func TestGeneratePodcastReusedReturns200(t *testing.T) {
	stub := &stubEpisodeService{
		generateResult: &episodes.GenerateResult{EpisodeID: "ep-1", Status: models.StatusCompleted, Reused: true},
	}
	h := New(stub, &test.MockTaskEnqueuer{}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/podcasts", strings.NewReader(`{"locationName":"Ponte Vecchio"}`))
	rec := httptest.NewRecorder()

	h.GeneratePodcast(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGeneratePodcastMissingLocation(t *testing.T) {
	h := New(&stubEpisodeService{}, &test.MockTaskEnqueuer{}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/podcasts", strings.NewReader(`{"language":"en"}`))
	rec := httptest.NewRecorder()

	h.GeneratePodcast(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, "locationName is required", envelope["error"])
}

func TestGeneratePodcastInvalidJSON(t *testing.T) {
	h := New(&stubEpisodeService{}, &test.MockTaskEnqueuer{}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/podcasts", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()

	h.GeneratePodcast(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGeneratePodcastFailure(t *testing.T) {
	stub := &stubEpisodeService{generateErr: errors.New("model unavailable")}
	h := New(stub, &test.MockTaskEnqueuer{}, "")

	req := httptest.NewRequest(http.MethodPost, "/api/podcasts", strings.NewReader(`{"locationName":"Ponte Vecchio"}`))
	rec := httptest.NewRecorder()

	h.GeneratePodcast(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, false, envelope["success"])
	// Internal details never leak into the envelope.
	assert.NotContains(t, envelope["error"], "model unavailable")
}

func TestGeneratePodcastAsyncEnqueues(t *testing.T) {
	enqueuer := &test.MockTaskEnqueuer{}
	h := New(&stubEpisodeService{}, enqueuer, "")

	body := `{"locationName":"Ponte Vecchio","language":"it","async":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/podcasts", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.GeneratePodcast(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, enqueuer.EnqueuedTasks, 1)
	assert.Equal(t, tasks.TypeGenerateEpisode, enqueuer.EnqueuedTasks[0].Type())

	var payload tasks.GenerateEpisodeTaskPayload
	require.NoError(t, json.Unmarshal(enqueuer.EnqueuedTasks[0].Payload(), &payload))
	assert.Equal(t, "Ponte Vecchio", payload.LocationName)
	assert.Equal(t, "it", payload.Language)
}

func TestGetPodcast(t *testing.T) {
	stub := &stubEpisodeService{
		view: &episodes.EpisodeView{
			HasEpisode:    true,
			EpisodeID:     "ep-1",
			Status:        models.StatusCompleted,
			TotalDuration: 285,
			SegmentCount:  19,
			Timeline: models.ChapterTimeline{
				{ChapterIndex: 0, Title: "Intro", StartTime: 0, EndTime: 120, Duration: 120, SegmentCount: 8},
				{ChapterIndex: 1, Title: "Main Hall", StartTime: 120, EndTime: 285, Duration: 165, SegmentCount: 11},
			},
		},
	}
	h := New(stub, &test.MockTaskEnqueuer{}, "")

	req := httptest.NewRequest(http.MethodGet, "/api/podcasts?location=Ponte+Vecchio&language=en", nil)
	rec := httptest.NewRecorder()

	h.GetPodcast(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, true, envelope["success"])

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, true, data["hasEpisode"])
	assert.Equal(t, "ep-1", data["episodeId"])

	// The timeline is published under "chapterTimeline".
	timeline, ok := data["chapterTimeline"].([]interface{})
	require.True(t, ok)
	require.Len(t, timeline, 2)
	first := timeline[0].(map[string]interface{})
	assert.Equal(t, float64(0), first["chapterIndex"])
	assert.Equal(t, "Intro", first["title"])
	assert.Equal(t, float64(120), first["endTime"])

	assert.Equal(t, "Ponte Vecchio", stub.lastLocation)
	assert.Equal(t, "en", stub.lastLanguage)
}

func TestGetPodcastMissingLocation(t *testing.T) {
	h := New(&stubEpisodeService{}, &test.MockTaskEnqueuer{}, "")

	req := httptest.NewRequest(http.MethodGet, "/api/podcasts", nil)
	rec := httptest.NewRecorder()

	h.GetPodcast(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPodcastNoEpisode(t *testing.T) {
	stub := &stubEpisodeService{view: &episodes.EpisodeView{HasEpisode: false}}
	h := New(stub, &test.MockTaskEnqueuer{}, "")

	req := httptest.NewRequest(http.MethodGet, "/api/podcasts?location=Nowhere", nil)
	rec := httptest.NewRecorder()

	h.GetPodcast(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, false, data["hasEpisode"])
}
