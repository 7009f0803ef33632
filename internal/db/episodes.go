package db

import (
	"time"

	"travelcast/internal/models"
)

func CreateEpisode(ep *models.Episode) error {
	_, err := DB.Exec(`
		INSERT INTO episodes (id, title, description, language, location_input, location_slug, slug_source, status, duration_seconds)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		ep.ID, ep.Title, ep.Description, ep.Language, ep.LocationInput, ep.LocationSlug, ep.SlugSource, ep.Status, ep.DurationSeconds)
	return err
}

// LatestEpisodeBySubject returns the newest episode for a (slug, language)
// subject. Callers must handle sql.ErrNoRows.
func LatestEpisodeBySubject(slug, language string) (models.Episode, error) {
	episode := models.Episode{}
	err := DB.Get(&episode, `
		SELECT * FROM episodes
		WHERE location_slug = $1 AND language = $2
		ORDER BY created_at DESC
		LIMIT 1`, slug, language)
	return episode, err
}

func GetCompletedEpisodes(limit int) ([]models.Episode, error) {
	episodes := []models.Episode{}
	err := DB.Select(&episodes, `
		SELECT * FROM episodes
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2`, models.StatusCompleted, limit)
	return episodes, err
}

// FinalizeEpisodeScript stores the generated script and its derived
// metadata and moves the episode to script_ready.
func FinalizeEpisodeScript(id, script string, totalDuration int, timeline models.ChapterTimeline, quality int) error {
	_, err := DB.Exec(`
		UPDATE episodes
		SET status = $1, user_script = $2, duration_seconds = $3, chapter_timeline = $4, quality_score = $5, updated_at = NOW()
		WHERE id = $6`,
		models.StatusScriptReady, script, totalDuration, timeline, quality, id)
	return err
}

func MarkEpisodeFailed(id, reason string) error {
	_, err := DB.Exec(`
		UPDATE episodes
		SET status = $1, error_message = $2, updated_at = NOW()
		WHERE id = $3`,
		models.StatusFailed, reason, id)
	return err
}

func MarkEpisodeCompleted(id string) error {
	_, err := DB.Exec("UPDATE episodes SET status = $1, updated_at = NOW() WHERE id = $2", models.StatusCompleted, id)
	return err
}

func DeleteEpisode(id string) error {
	_, err := DB.Exec("DELETE FROM episodes WHERE id = $1", id)
	return err
}

// FailStaleGeneratingEpisodes marks episodes stuck in "generating" since
// before the cutoff as failed. Returns the number of rows touched.
func FailStaleGeneratingEpisodes(cutoff time.Time) (int64, error) {
	res, err := DB.Exec(`
		UPDATE episodes
		SET status = $1, error_message = 'generation timed out', updated_at = NOW()
		WHERE status = $2 AND created_at < $3`,
		models.StatusFailed, models.StatusGenerating, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
