package podcast

import (
	"context"
	"fmt"
	"sync"

	"travelcast/internal/models"
)

// NarrativeGenerator produces free-form dialogue text from a prompt.
// Implementations wrap a text model; tests supply canned scripts.
type NarrativeGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerationError marks a chapter whose script could not be produced.
// One failing chapter fails the whole run; partial episodes are worse
// than no episode.
type GenerationError struct {
	ChapterIndex int
	ChapterTitle string
	Err          error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("chapter %d (%q): %v", e.ChapterIndex, e.ChapterTitle, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

type responseKey struct {
	Slug         string
	Language     string
	ChapterIndex int
	PrevSpeaker  models.Speaker
}

// ScriptGenerator turns planned chapters into parsed dialogue segments.
// Raw model responses are cached per (subject, chapter, opener) so a
// retried run does not pay for chapters it already generated.
type ScriptGenerator struct {
	gen NarrativeGenerator
	est DurationEstimator

	mu    sync.Mutex
	cache map[responseKey]string
}

func NewScriptGenerator(gen NarrativeGenerator, est DurationEstimator) *ScriptGenerator {
	if est == nil {
		est = CharRateEstimator{}
	}
	return &ScriptGenerator{
		gen:   gen,
		est:   est,
		cache: make(map[responseKey]string),
	}
}

// ChapterScript is the parsed output for one chapter. Sequence numbers
// are assigned later, when chapters are stitched into an episode.
type ChapterScript struct {
	Chapter  Chapter
	Segments []models.Segment
}

func (g *ScriptGenerator) GenerateChapter(ctx context.Context, sub Subject, ch Chapter, prevSpeaker models.Speaker) (ChapterScript, error) {
	if ch.Title == "" {
		return ChapterScript{}, &GenerationError{ChapterIndex: ch.ChapterIndex, Err: fmt.Errorf("chapter has no title")}
	}
	if ch.TargetDuration <= 0 {
		return ChapterScript{}, &GenerationError{ChapterIndex: ch.ChapterIndex, ChapterTitle: ch.Title, Err: fmt.Errorf("chapter has no target duration")}
	}

	raw, err := g.response(ctx, sub, ch, prevSpeaker)
	if err != nil {
		return ChapterScript{}, &GenerationError{ChapterIndex: ch.ChapterIndex, ChapterTitle: ch.Title, Err: err}
	}

	lines := ParseDialogue(raw, g.est)
	if len(lines) == 0 {
		return ChapterScript{}, &GenerationError{ChapterIndex: ch.ChapterIndex, ChapterTitle: ch.Title, Err: fmt.Errorf("no speaker-tagged lines in model output")}
	}

	segments := make([]models.Segment, 0, len(lines))
	for _, line := range lines {
		segments = append(segments, models.Segment{
			SpeakerType:     line.Speaker,
			TextContent:     line.Text,
			DurationSeconds: line.Seconds,
			ChapterIndex:    ch.ChapterIndex,
			ChapterTitle:    ch.Title,
		})
	}
	return ChapterScript{Chapter: ch, Segments: segments}, nil
}

func (g *ScriptGenerator) response(ctx context.Context, sub Subject, ch Chapter, prevSpeaker models.Speaker) (string, error) {
	key := responseKey{Slug: sub.Slug, Language: sub.Language, ChapterIndex: ch.ChapterIndex, PrevSpeaker: prevSpeaker}

	g.mu.Lock()
	cached, ok := g.cache[key]
	g.mu.Unlock()
	if ok {
		return cached, nil
	}

	raw, err := g.gen.Generate(ctx, BuildChapterPrompt(sub, ch, prevSpeaker))
	if err != nil {
		return "", err
	}

	g.mu.Lock()
	g.cache[key] = raw
	g.mu.Unlock()
	return raw, nil
}
