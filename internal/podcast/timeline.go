package podcast

import (
	"sort"

	"travelcast/internal/models"
)

// AssembleTimeline walks validated segments in order, accumulating a
// running clock, and produces one timeline entry per chapter sorted by
// chapter index. Chapters that lost every segment to validation still
// appear, as zero-length markers pinned to the surrounding clock.
func AssembleTimeline(segments []models.Segment, chapters map[int]Chapter) models.ChapterTimeline {
	entries := make(map[int]*models.ChapterTimelineEntry)

	clock := 0
	for _, seg := range segments {
		entry, ok := entries[seg.ChapterIndex]
		if !ok {
			entry = &models.ChapterTimelineEntry{
				ChapterIndex: seg.ChapterIndex,
				Title:        seg.ChapterTitle,
				StartTime:    clock,
			}
			entries[seg.ChapterIndex] = entry
		}
		clock += seg.DurationSeconds
		entry.EndTime = clock
		entry.Duration += seg.DurationSeconds
		entry.SegmentCount++
	}

	for idx, ch := range chapters {
		if _, ok := entries[idx]; !ok {
			entries[idx] = &models.ChapterTimelineEntry{ChapterIndex: idx, Title: ch.Title}
		}
	}

	timeline := make(models.ChapterTimeline, 0, len(entries))
	for _, entry := range entries {
		timeline = append(timeline, *entry)
	}
	sort.Slice(timeline, func(i, j int) bool {
		return timeline[i].ChapterIndex < timeline[j].ChapterIndex
	})

	// An empty chapter sits at the point on the clock where its
	// predecessor ended.
	for i := range timeline {
		if timeline[i].SegmentCount == 0 && i > 0 {
			timeline[i].StartTime = timeline[i-1].EndTime
			timeline[i].EndTime = timeline[i-1].EndTime
		}
	}

	return timeline
}

// TotalDuration sums segment durations.
func TotalDuration(segments []models.Segment) int {
	total := 0
	for _, seg := range segments {
		total += seg.DurationSeconds
	}
	return total
}
