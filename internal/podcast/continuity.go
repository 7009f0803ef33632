package podcast

import (
	"context"
	"fmt"
	"strings"

	"travelcast/internal/models"
)

// transitionSeconds is the fixed spoken length of a bridging line
// between chapters.
const transitionSeconds = 15

// EpisodeScript is the stitched output of a full sequential generation
// run: globally numbered segments, chapter metadata (including chapters
// that ended up with no segments), and a plain-text rendering of the
// whole dialogue.
type EpisodeScript struct {
	Segments []models.Segment
	Chapters map[int]Chapter
	Combined string
}

// ClosingSpeaker returns the speaker of the final segment. An empty
// chapter defaults to SpeakerB so the next chapter still gets a
// deterministic opener.
func ClosingSpeaker(segments []models.Segment) models.Speaker {
	if len(segments) == 0 {
		return models.SpeakerB
	}
	return segments[len(segments)-1].SpeakerType
}

// BuildEpisodeScript generates chapters strictly in order, threading the
// closing speaker of each chapter into the next prompt, and inserts a
// transition segment between consecutive chapters. The transition is
// spoken by the opposite of the chapter's closing speaker and belongs to
// the chapter it closes.
func BuildEpisodeScript(ctx context.Context, sub Subject, chapters []Chapter, gen *ScriptGenerator) (EpisodeScript, error) {
	script := EpisodeScript{Chapters: make(map[int]Chapter, len(chapters))}
	prevSpeaker := models.SpeakerNone
	seq := 1
	var combined strings.Builder

	for i, ch := range chapters {
		script.Chapters[ch.ChapterIndex] = ch

		cs, err := gen.GenerateChapter(ctx, sub, ch, prevSpeaker)
		if err != nil {
			return EpisodeScript{}, err
		}

		for _, seg := range cs.Segments {
			seg.SequenceNumber = seq
			seq++
			script.Segments = append(script.Segments, seg)
			fmt.Fprintf(&combined, "[%s] %s\n\n", seg.SpeakerType, seg.TextContent)
		}

		prevSpeaker = ClosingSpeaker(cs.Segments)

		if ch.TransitionText != "" && i < len(chapters)-1 {
			transition := models.Segment{
				SequenceNumber:  seq,
				SpeakerType:     prevSpeaker.Opposite(),
				TextContent:     ch.TransitionText,
				DurationSeconds: transitionSeconds,
				ChapterIndex:    ch.ChapterIndex,
				ChapterTitle:    ch.Title,
			}
			seq++
			script.Segments = append(script.Segments, transition)
			fmt.Fprintf(&combined, "[%s] %s\n\n", transition.SpeakerType, transition.TextContent)
			prevSpeaker = transition.SpeakerType
		}
	}

	script.Combined = strings.TrimSpace(combined.String())
	return script, nil
}
