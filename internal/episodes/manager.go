// Package episodes orchestrates podcast generation end to end: subject
// resolution, idempotency checks, the sequential script run, and
// persistence of the result.
package episodes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/google/uuid"

	"travelcast/internal/db"
	"travelcast/internal/models"
	"travelcast/internal/podcast"
)

const (
	// segmentBatchSize caps how many segments go into one insert.
	segmentBatchSize = 20

	// completedSegmentThreshold: a "generating" episode that already has
	// this many segments finished its inserts but lost the final status
	// write. Reads repair it to completed.
	completedSegmentThreshold = 20
)

// ErrLocationRequired rejects generation requests without a location.
var ErrLocationRequired = errors.New("locationName is required")

// GenerateRequest asks for an episode about one location in one language.
type GenerateRequest struct {
	LocationName string
	Language     string
	Context      podcast.LocationContext
}

// GenerateResult summarizes the outcome of a generation call.
type GenerateResult struct {
	EpisodeID         string
	Status            models.EpisodeStatus
	SegmentCount      int
	EstimatedDuration int
	ChapterCount      int
	Reused            bool
}

// Manager owns the generation pipeline for a single process. It is safe
// for concurrent use.
type Manager struct {
	scripts *podcast.ScriptGenerator
}

func NewManager(gen podcast.NarrativeGenerator) *Manager {
	return &Manager{scripts: podcast.NewScriptGenerator(gen, nil)}
}

// Generate produces an episode for the request's subject, or reuses the
// existing one if it already completed. An incomplete prior attempt is
// torn down and replaced.
func (m *Manager) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if strings.TrimSpace(req.LocationName) == "" {
		return nil, ErrLocationRequired
	}
	language := req.Language
	if language == "" {
		language = "en"
	}
	slug := podcast.ResolveSlug(req.LocationName)

	existing, err := db.LatestEpisodeBySubject(slug.Slug, language)
	switch {
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("looking up existing episode: %w", err)
	case err == nil && existing.Status == models.StatusCompleted:
		count, err := db.CountSegmentsByEpisodeID(existing.ID)
		if err != nil {
			return nil, fmt.Errorf("counting segments of episode %s: %w", existing.ID, err)
		}
		return &GenerateResult{
			EpisodeID:         existing.ID,
			Status:            existing.Status,
			SegmentCount:      count,
			EstimatedDuration: existing.DurationSeconds,
			ChapterCount:      len(existing.ChapterTimeline),
			Reused:            true,
		}, nil
	case err == nil:
		// Prior attempt never finished. Remove it completely so the new
		// run starts from a clean slate: segments first, then the row.
		if err := db.DeleteSegmentsByEpisodeID(existing.ID); err != nil {
			return nil, fmt.Errorf("removing stale segments of episode %s: %w", existing.ID, err)
		}
		if err := db.DeleteEpisode(existing.ID); err != nil {
			return nil, fmt.Errorf("removing stale episode %s: %w", existing.ID, err)
		}
	}

	subject := podcast.Subject{
		LocationName: req.LocationName,
		Slug:         slug.Slug,
		Language:     language,
		Context:      req.Context,
	}
	chapters := podcast.PlanChapters(subject)

	episode := &models.Episode{
		ID:            uuid.NewString(),
		Title:         fmt.Sprintf("%s Audio Guide", req.LocationName),
		Description:   fmt.Sprintf("A two-host deep dive into %s.", req.LocationName),
		Language:      language,
		LocationInput: req.LocationName,
		LocationSlug:  slug.Slug,
		SlugSource:    slug.Source,
		Status:        models.StatusGenerating,
	}
	for _, ch := range chapters {
		episode.DurationSeconds += ch.TargetDuration
	}
	if err := db.CreateEpisode(episode); err != nil {
		return nil, fmt.Errorf("creating episode: %w", err)
	}

	script, err := podcast.BuildEpisodeScript(ctx, subject, chapters, m.scripts)
	if err != nil {
		m.fail(episode.ID, err)
		return nil, err
	}

	segments, err := podcast.NormalizeSegments(script.Segments)
	if err != nil {
		m.fail(episode.ID, err)
		return nil, err
	}

	timeline := podcast.AssembleTimeline(segments, script.Chapters)
	totalDuration := podcast.TotalDuration(segments)
	quality := podcast.EstimateQuality(len(segments), len(chapters))

	for i := range segments {
		segments[i].EpisodeID = episode.ID
	}
	if err := m.insertSegments(segments); err != nil {
		m.fail(episode.ID, err)
		return nil, err
	}

	if !episode.Status.CanTransitionTo(models.StatusScriptReady) {
		return nil, fmt.Errorf("episode %s: invalid transition %s -> %s", episode.ID, episode.Status, models.StatusScriptReady)
	}
	if err := db.FinalizeEpisodeScript(episode.ID, script.Combined, totalDuration, timeline, quality); err != nil {
		m.fail(episode.ID, err)
		return nil, fmt.Errorf("finalizing episode %s: %w", episode.ID, err)
	}

	return &GenerateResult{
		EpisodeID:         episode.ID,
		Status:            models.StatusScriptReady,
		SegmentCount:      len(segments),
		EstimatedDuration: totalDuration,
		ChapterCount:      len(chapters),
	}, nil
}

func (m *Manager) insertSegments(segments []models.Segment) error {
	for start := 0; start < len(segments); start += segmentBatchSize {
		end := start + segmentBatchSize
		if end > len(segments) {
			end = len(segments)
		}
		if err := db.InsertSegmentBatch(segments[start:end]); err != nil {
			return fmt.Errorf("inserting segment batch %d: %w", start/segmentBatchSize+1, err)
		}
	}
	return nil
}

func (m *Manager) fail(episodeID string, cause error) {
	if err := db.MarkEpisodeFailed(episodeID, cause.Error()); err != nil {
		log.Printf("Failed to mark episode %s as failed: %v", episodeID, err)
	}
}

// ChapterSummary is the per-chapter view derived from stored segments.
type ChapterSummary struct {
	ChapterIndex int    `json:"chapterIndex"`
	Title        string `json:"title"`
	SegmentCount int    `json:"segmentCount"`
	Duration     int    `json:"duration"`
}

// EpisodeView is what callers get when they ask for the episode of a
// subject.
type EpisodeView struct {
	HasEpisode    bool                   `json:"hasEpisode"`
	EpisodeID     string                 `json:"episodeId,omitempty"`
	Title         string                 `json:"title,omitempty"`
	Status        models.EpisodeStatus   `json:"status,omitempty"`
	QualityScore  *int                   `json:"qualityScore,omitempty"`
	TotalDuration int                    `json:"totalDuration,omitempty"`
	SegmentCount  int                    `json:"segmentCount,omitempty"`
	Chapters      []ChapterSummary       `json:"chapters,omitempty"`
	Timeline      models.ChapterTimeline `json:"chapterTimeline,omitempty"`
}

// Get returns the newest episode for a subject, grouped by chapter. A
// "generating" episode whose segments are all in place is repaired to
// completed on the way out.
func (m *Manager) Get(ctx context.Context, locationName, language string) (*EpisodeView, error) {
	if strings.TrimSpace(locationName) == "" {
		return nil, ErrLocationRequired
	}
	if language == "" {
		language = "en"
	}
	slug := podcast.ResolveSlug(locationName)

	episode, err := db.LatestEpisodeBySubject(slug.Slug, language)
	if errors.Is(err, sql.ErrNoRows) {
		return &EpisodeView{HasEpisode: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up episode: %w", err)
	}

	segments, err := db.GetSegmentsByEpisodeID(episode.ID)
	if err != nil {
		return nil, fmt.Errorf("loading segments of episode %s: %w", episode.ID, err)
	}

	if episode.Status == models.StatusGenerating && len(segments) >= completedSegmentThreshold {
		// The inserts finished but the final status write was lost;
		// repair on read rather than regenerating a healthy episode.
		if err := db.MarkEpisodeCompleted(episode.ID); err != nil {
			log.Printf("Failed to self-heal episode %s: %v", episode.ID, err)
		} else {
			episode.Status = models.StatusCompleted
		}
	}

	return &EpisodeView{
		HasEpisode:    true,
		EpisodeID:     episode.ID,
		Title:         episode.Title,
		Status:        episode.Status,
		QualityScore:  episode.QualityScore,
		TotalDuration: episode.DurationSeconds,
		SegmentCount:  len(segments),
		Chapters:      summarizeChapters(segments),
		Timeline:      episode.ChapterTimeline,
	}, nil
}

func summarizeChapters(segments []models.Segment) []ChapterSummary {
	byIndex := make(map[int]*ChapterSummary)
	for _, seg := range segments {
		summary, ok := byIndex[seg.ChapterIndex]
		if !ok {
			summary = &ChapterSummary{ChapterIndex: seg.ChapterIndex, Title: seg.ChapterTitle}
			byIndex[seg.ChapterIndex] = summary
		}
		summary.SegmentCount++
		summary.Duration += seg.DurationSeconds
	}

	summaries := make([]ChapterSummary, 0, len(byIndex))
	for _, summary := range byIndex {
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ChapterIndex < summaries[j].ChapterIndex
	})
	return summaries
}
