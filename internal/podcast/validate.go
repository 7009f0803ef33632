package podcast

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"travelcast/internal/models"
)

// ErrEmptyScript means the run produced nothing usable.
var ErrEmptyScript = errors.New("script has no usable segments")

// EmptySegmentError reports segments whose text is entirely whitespace.
// These indicate a broken generation, not noise to be filtered.
type EmptySegmentError struct {
	SequenceNumbers []int
}

func (e *EmptySegmentError) Error() string {
	return fmt.Sprintf("segments with empty text content: %v", e.SequenceNumbers)
}

// minSegmentRunes is the threshold below which a trimmed segment is
// treated as parser noise and silently dropped.
const minSegmentRunes = 5

// NormalizeSegments validates a raw segment list and renumbers the
// survivors densely from 1. Near-empty fragments are dropped;
// whitespace-only segments fail the whole script.
func NormalizeSegments(segments []models.Segment) ([]models.Segment, error) {
	if len(segments) == 0 {
		return nil, ErrEmptyScript
	}

	kept := make([]models.Segment, 0, len(segments))
	var empty []int
	for _, seg := range segments {
		trimmed := strings.TrimSpace(seg.TextContent)
		n := utf8.RuneCountInString(trimmed)
		switch {
		case n == 0:
			empty = append(empty, seg.SequenceNumber)
		case n < minSegmentRunes:
			// parser artifact, drop it
		default:
			seg.TextContent = trimmed
			kept = append(kept, seg)
		}
	}

	if len(empty) > 0 {
		return nil, &EmptySegmentError{SequenceNumbers: empty}
	}
	if len(kept) == 0 {
		return nil, ErrEmptyScript
	}

	for i := range kept {
		kept[i].SequenceNumber = i + 1
	}
	return kept, nil
}
