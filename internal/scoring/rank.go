package scoring

import "sort"

// RankEntry is one scored record to place within a class.
type RankEntry struct {
	ID    string
	Score float64
}

// Placement is the computed position for one entry.
type Placement struct {
	ID       string
	Score    float64
	Position int
}

// ClassStatistics summarises the scores that were actually recorded.
type ClassStatistics struct {
	Average float64
	Highest float64
	Lowest  float64
	Count   int
}

// Rank orders entries by score descending and assigns standard competition
// ranking: tied scores share a position and the next distinct score resumes
// at the count of entries above it (1,2,2,4). Entries without a recorded
// score must be excluded by the caller before ranking; they are neither
// ranked nor counted toward the average.
func Rank(entries []RankEntry) ([]Placement, ClassStatistics) {
	if len(entries) == 0 {
		return nil, ClassStatistics{}
	}

	sorted := make([]RankEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })

	placements := make([]Placement, len(sorted))
	sum := 0.0
	for i, entry := range sorted {
		position := i + 1
		if i > 0 && entry.Score == sorted[i-1].Score {
			position = placements[i-1].Position
		}
		placements[i] = Placement{ID: entry.ID, Score: entry.Score, Position: position}
		sum += entry.Score
	}

	stats := ClassStatistics{
		Average: round2(sum / float64(len(sorted))),
		Highest: sorted[0].Score,
		Lowest:  sorted[len(sorted)-1].Score,
		Count:   len(sorted),
	}
	return placements, stats
}
