package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// EpisodeStatus tracks an episode through script generation.
type EpisodeStatus string

const (
	StatusGenerating  EpisodeStatus = "generating"
	StatusScriptReady EpisodeStatus = "script_ready"
	StatusCompleted   EpisodeStatus = "completed"
	StatusFailed      EpisodeStatus = "failed"
)

// statusTransitions lists the allowed forward moves. "completed" and
// "failed" are terminal.
var statusTransitions = map[EpisodeStatus][]EpisodeStatus{
	StatusGenerating:  {StatusScriptReady, StatusFailed},
	StatusScriptReady: {StatusCompleted, StatusFailed},
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s EpisodeStatus) CanTransitionTo(next EpisodeStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Episode is a generated audio-guide episode for one (location, language)
// subject. The newest row per subject is the one that counts.
type Episode struct {
	ID              string          `db:"id"`
	Title           string          `db:"title"`
	Description     string          `db:"description"`
	Language        string          `db:"language"`
	LocationInput   string          `db:"location_input"`
	LocationSlug    string          `db:"location_slug"`
	SlugSource      string          `db:"slug_source"`
	UserScript      *string         `db:"user_script"`
	Status          EpisodeStatus   `db:"status"`
	DurationSeconds int             `db:"duration_seconds"`
	ChapterTimeline ChapterTimeline `db:"chapter_timeline"`
	QualityScore    *int            `db:"quality_score"`
	ErrorMessage    *string         `db:"error_message"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

// ChapterTimelineEntry records where one chapter sits on the episode's
// running clock. Times are offsets in seconds from the start of segment 1.
type ChapterTimelineEntry struct {
	ChapterIndex int    `json:"chapterIndex"`
	Title        string `json:"title"`
	StartTime    int    `json:"startTime"`
	EndTime      int    `json:"endTime"`
	Duration     int    `json:"duration"`
	SegmentCount int    `json:"segmentCount"`
}

// ChapterTimeline is stored as a JSONB column, ordered by chapter index.
type ChapterTimeline []ChapterTimelineEntry

func (t ChapterTimeline) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	return json.Marshal(t)
}

func (t *ChapterTimeline) Scan(src interface{}) error {
	if src == nil {
		*t = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for ChapterTimeline", src)
	}
	return json.Unmarshal(data, t)
}
