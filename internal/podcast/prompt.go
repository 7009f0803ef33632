package podcast

import (
	"fmt"
	"strings"

	"travelcast/internal/models"
)

// SystemInstructions is the fixed persona for the text model. Chapter
// prompts carry everything subject-specific.
const SystemInstructions = `You are writing a two-host audio travel guide in the style of a deep-dive podcast. Speaker "Host" is a curious, enthusiastic guide; speaker "Curator" is a calm expert with deep knowledge of the place. Keep the dialogue factual, specific, and conversational. Never invent opening hours, prices, or statistics.`

var speakerLabel = map[models.Speaker]string{
	models.SpeakerA: "Host",
	models.SpeakerB: "Curator",
}

// BuildChapterPrompt renders the generation prompt for one chapter. The
// previous chapter's closing speaker is passed so the model opens with
// the other voice and the dialogue alternates across the chapter border.
func BuildChapterPrompt(sub Subject, ch Chapter, prevSpeaker models.Speaker) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write chapter %d of an audio guide podcast about %s", ch.ChapterIndex, sub.LocationName)
	if sub.Context.City != "" {
		fmt.Fprintf(&b, " in %s", sub.Context.City)
		if sub.Context.Country != "" {
			fmt.Fprintf(&b, ", %s", sub.Context.Country)
		}
	}
	b.WriteString(".\n\n")

	fmt.Fprintf(&b, "Chapter title: %s\n", ch.Title)
	if ch.Description != "" {
		fmt.Fprintf(&b, "Chapter theme: %s\n", ch.Description)
	}
	if len(ch.ContentFocus) > 0 {
		fmt.Fprintf(&b, "Cover these topics: %s\n", strings.Join(ch.ContentFocus, "; "))
	}
	fmt.Fprintf(&b, "Target length: roughly %d seconds of spoken dialogue.\n", ch.TargetDuration)
	fmt.Fprintf(&b, "Language: write the dialogue in %q.\n\n", sub.Language)

	if prevSpeaker != models.SpeakerNone {
		fmt.Fprintf(&b, "The previous chapter ended with the %s speaking, so open this chapter with the %s.\n",
			speakerLabel[prevSpeaker], speakerLabel[prevSpeaker.Opposite()])
	} else {
		b.WriteString("This is the opening chapter; the Host speaks first.\n")
	}

	b.WriteString(`
Format every line exactly as:
**Host:** <one spoken turn>
**Curator:** <one spoken turn>

Strictly alternate between the two speakers. Do not add stage directions, headings, sound cues, or any text outside the speaker lines.`)

	return b.String()
}
