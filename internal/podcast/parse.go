package podcast

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"travelcast/internal/models"
)

// DialogueLine is one parsed spoken turn, before it is attached to a
// chapter and sequence number.
type DialogueLine struct {
	Speaker models.Speaker
	Text    string
	Seconds int
}

// DurationEstimator guesses spoken duration from text. The estimate is a
// stand-in until real audio exists, but everything downstream (timeline,
// episode totals) is built on it, so it must be deterministic.
type DurationEstimator interface {
	Estimate(text string) int
}

// CharRateEstimator estimates duration from character count at roughly
// eight characters per second, clamped to keep single segments inside a
// sane spoken-turn range.
type CharRateEstimator struct{}

const (
	charsPerSecond    = 8
	minSegmentSeconds = 15
	maxSegmentSeconds = 45
)

func (CharRateEstimator) Estimate(text string) int {
	n := utf8.RuneCountInString(text)
	seconds := (n + charsPerSecond - 1) / charsPerSecond
	if seconds < minSegmentSeconds {
		return minSegmentSeconds
	}
	if seconds > maxSegmentSeconds {
		return maxSegmentSeconds
	}
	return seconds
}

// Speaker tags as the model emits them. Legacy gendered labels map to
// the same two voices.
var (
	speakerALine = regexp.MustCompile(`(?i)^\*\*(?:host|male)\s*:?\s*\*\*:?\s*(.+)$`)
	speakerBLine = regexp.MustCompile(`(?i)^\*\*(?:curator|female)\s*:?\s*\*\*:?\s*(.+)$`)
)

// ParseDialogue extracts speaker-tagged turns from raw model output.
// Lines that match no speaker tag are ignored; consecutive untagged
// lines after a tagged one are treated as continuations of that turn.
func ParseDialogue(raw string, est DurationEstimator) []DialogueLine {
	var lines []DialogueLine
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := speakerALine.FindStringSubmatch(line); m != nil {
			lines = append(lines, DialogueLine{Speaker: models.SpeakerA, Text: strings.TrimSpace(m[1])})
			continue
		}
		if m := speakerBLine.FindStringSubmatch(line); m != nil {
			lines = append(lines, DialogueLine{Speaker: models.SpeakerB, Text: strings.TrimSpace(m[1])})
			continue
		}
		if len(lines) > 0 && !strings.HasPrefix(line, "#") && !strings.HasPrefix(line, "**") {
			last := &lines[len(lines)-1]
			last.Text = strings.TrimSpace(last.Text + " " + line)
		}
	}
	for i := range lines {
		lines[i].Seconds = est.Estimate(lines[i].Text)
	}
	return lines
}
