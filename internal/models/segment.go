package models

import "time"

// Speaker identifies one of the two hosts of the dialogue. The speaker
// roles ("host", "curator") are a prompt concern; persistence and
// alternation logic only see A and B.
type Speaker string

const (
	SpeakerNone Speaker = ""
	SpeakerA    Speaker = "A"
	SpeakerB    Speaker = "B"
)

// Opposite returns the other speaker. For SpeakerNone it returns
// SpeakerA so the dialogue has a deterministic opener.
func (s Speaker) Opposite() Speaker {
	if s == SpeakerA {
		return SpeakerB
	}
	return SpeakerA
}

// Segment is one spoken turn of an episode's dialogue. Sequence numbers
// are dense and start at 1 within an episode.
type Segment struct {
	ID              int64     `db:"id"`
	EpisodeID       string    `db:"episode_id"`
	SequenceNumber  int       `db:"sequence_number"`
	SpeakerType     Speaker   `db:"speaker_type"`
	TextContent     string    `db:"text_content"`
	DurationSeconds int       `db:"duration_seconds"`
	ChapterIndex    int       `db:"chapter_index"`
	ChapterTitle    string    `db:"chapter_title"`
	AudioURL        *string   `db:"audio_url"`
	CreatedAt       time.Time `db:"created_at"`
}
