package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankCompetitionTies(t *testing.T) {
	entries := []RankEntry{
		{ID: "s1", Score: 90},
		{ID: "s2", Score: 85},
		{ID: "s3", Score: 85},
		{ID: "s4", Score: 70},
	}

	placements, stats := Rank(entries)
	require.Len(t, placements, 4)

	positions := make(map[string]int, len(placements))
	for _, p := range placements {
		positions[p.ID] = p.Position
	}
	assert.Equal(t, 1, positions["s1"])
	assert.Equal(t, 2, positions["s2"])
	assert.Equal(t, 2, positions["s3"])
	assert.Equal(t, 4, positions["s4"])

	assert.Equal(t, 82.5, stats.Average)
	assert.Equal(t, 90.0, stats.Highest)
	assert.Equal(t, 70.0, stats.Lowest)
	assert.Equal(t, 4, stats.Count)
}

func TestRankSingleEntry(t *testing.T) {
	placements, stats := Rank([]RankEntry{{ID: "s1", Score: 55}})
	require.Len(t, placements, 1)
	assert.Equal(t, 1, placements[0].Position)
	assert.Equal(t, 55.0, stats.Average)
	assert.Equal(t, 1, stats.Count)
}

func TestRankEmpty(t *testing.T) {
	placements, stats := Rank(nil)
	assert.Nil(t, placements)
	assert.Equal(t, 0, stats.Count)
}

func TestRankAllTied(t *testing.T) {
	entries := []RankEntry{
		{ID: "s1", Score: 60},
		{ID: "s2", Score: 60},
		{ID: "s3", Score: 60},
	}

	placements, _ := Rank(entries)
	for _, p := range placements {
		assert.Equal(t, 1, p.Position)
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	entries := []RankEntry{{ID: "s1", Score: 10}, {ID: "s2", Score: 90}}
	Rank(entries)
	assert.Equal(t, "s1", entries[0].ID)
	assert.Equal(t, 10.0, entries[0].Score)
}
