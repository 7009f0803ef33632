package podcast

// EstimateQuality scores script richness from segment volume and chapter
// structure. The score is advisory only and stays in [75, 90]: a script
// that survived validation is never rated poor, and a heuristic should
// not claim excellence.
func EstimateQuality(segmentCount, chapterCount int) int {
	score := 75 + segmentCount/5 + chapterCount
	if score < 75 {
		return 75
	}
	if score > 90 {
		return 90
	}
	return score
}
