package db

import (
	"travelcast/internal/models"
)

// InsertSegmentBatch inserts a batch of segments in one statement.
// Callers are responsible for keeping batches to a reasonable size.
func InsertSegmentBatch(segments []models.Segment) error {
	if len(segments) == 0 {
		return nil
	}
	_, err := DB.NamedExec(`
		INSERT INTO segments (episode_id, sequence_number, speaker_type, text_content, duration_seconds, chapter_index, chapter_title)
		VALUES (:episode_id, :sequence_number, :speaker_type, :text_content, :duration_seconds, :chapter_index, :chapter_title)`,
		segments)
	return err
}

func GetSegmentsByEpisodeID(episodeID string) ([]models.Segment, error) {
	segments := []models.Segment{}
	err := DB.Select(&segments, `
		SELECT * FROM segments
		WHERE episode_id = $1
		ORDER BY sequence_number ASC`, episodeID)
	return segments, err
}

func CountSegmentsByEpisodeID(episodeID string) (int, error) {
	var count int
	err := DB.Get(&count, "SELECT COUNT(*) FROM segments WHERE episode_id = $1", episodeID)
	return count, err
}

func DeleteSegmentsByEpisodeID(episodeID string) error {
	_, err := DB.Exec("DELETE FROM segments WHERE episode_id = $1", episodeID)
	return err
}
