package podcast

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelcast/internal/models"
)

func seg(seq int, text string) models.Segment {
	return models.Segment{
		SequenceNumber:  seq,
		SpeakerType:     models.SpeakerA,
		TextContent:     text,
		DurationSeconds: 15,
		ChapterIndex:    0,
		ChapterTitle:    "Intro",
	}
}

func TestNormalizeSegmentsRenumbersAfterDrops(t *testing.T) {
	input := []models.Segment{
		seg(1, "A perfectly fine opening line."),
		seg(2, "ok"), // below the noise threshold, dropped
		seg(3, "Another fine line of dialogue."),
		seg(4, "  ...  "), // trims to 3 runes, dropped
		seg(5, "The closing line."),
	}

	out, err := NormalizeSegments(input)
	require.NoError(t, err)
	require.Len(t, out, 3)
	for i, s := range out {
		assert.Equal(t, i+1, s.SequenceNumber)
	}
	assert.Equal(t, "A perfectly fine opening line.", out[0].TextContent)
	assert.Equal(t, "The closing line.", out[2].TextContent)
}

func TestNormalizeSegmentsTrimsKeptText(t *testing.T) {
	out, err := NormalizeSegments([]models.Segment{seg(1, "  padded but solid line  ")})
	require.NoError(t, err)
	assert.Equal(t, "padded but solid line", out[0].TextContent)
}

func TestNormalizeSegmentsEmptyInput(t *testing.T) {
	_, err := NormalizeSegments(nil)
	assert.ErrorIs(t, err, ErrEmptyScript)
}

func TestNormalizeSegmentsAllDropped(t *testing.T) {
	_, err := NormalizeSegments([]models.Segment{seg(1, "ok"), seg(2, "...")})
	assert.ErrorIs(t, err, ErrEmptyScript)
}

func TestNormalizeSegmentsWhitespaceOnlyFails(t *testing.T) {
	input := []models.Segment{
		seg(1, "A real line of dialogue."),
		seg(2, "   "),
		seg(3, "Another real line here."),
		seg(4, "\t\n"),
	}

	_, err := NormalizeSegments(input)
	var emptyErr *EmptySegmentError
	require.True(t, errors.As(err, &emptyErr))
	assert.Equal(t, []int{2, 4}, emptyErr.SequenceNumbers)
}

func TestEstimateQualityBounds(t *testing.T) {
	assert.Equal(t, 75, EstimateQuality(0, 0))
	assert.Equal(t, 90, EstimateQuality(500, 20))
	// 30 segments across 4 chapters: 75 + 6 + 4.
	assert.Equal(t, 85, EstimateQuality(30, 4))
}
