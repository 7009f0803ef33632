package podcast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanChaptersMuseum(t *testing.T) {
	sub := Subject{
		LocationName: "British Museum",
		Slug:         "british-museum",
		Language:     "en",
		Context:      LocationContext{Kind: KindMuseum},
	}

	chapters := PlanChapters(sub)
	require.NotEmpty(t, chapters)

	// Intro always leads at index 0.
	assert.Equal(t, 0, chapters[0].ChapterIndex)
	assert.Contains(t, chapters[0].Title, "British Museum")
	assert.NotEmpty(t, chapters[0].TransitionText)

	// Indexes are contiguous and ascending.
	for i, ch := range chapters {
		assert.Equal(t, i, ch.ChapterIndex)
		assert.Greater(t, ch.TargetDuration, 0)
		assert.NotEmpty(t, ch.Title)
	}

	// Museums get three body chapters plus an outro.
	assert.Len(t, chapters, 5)
	last := chapters[len(chapters)-1]
	assert.Equal(t, "Before You Go", last.Title)
	assert.Empty(t, last.TransitionText)
}

func TestPlanChaptersDetectsKindFromName(t *testing.T) {
	sub := Subject{LocationName: "National Folk Museum", Language: "en"}
	chapters := PlanChapters(sub)
	// Museum template: intro + 3 body + outro.
	assert.Len(t, chapters, 5)
}

func TestPlanChaptersGeneralFallback(t *testing.T) {
	sub := Subject{LocationName: "Ponte Vecchio", Language: "en"}
	chapters := PlanChapters(sub)
	// General template: intro + 2 body + outro.
	require.Len(t, chapters, 4)
	assert.Equal(t, "What You're Looking At", chapters[1].Title)
}

func TestDetectKind(t *testing.T) {
	assert.Equal(t, KindMuseum, DetectKind("Louvre Museum"))
	assert.Equal(t, KindTemple, DetectKind("Gyeongbokgung Palace"))
	assert.Equal(t, KindTemple, DetectKind("경복궁"))
	assert.Equal(t, KindShopping, DetectKind("Namdaemun Market"))
	assert.Equal(t, KindNature, DetectKind("Yosemite National Park"))
	assert.Equal(t, KindGeneral, DetectKind("Eiffel Tower"))
}
