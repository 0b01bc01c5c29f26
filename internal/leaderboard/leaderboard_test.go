package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankSortsAscendingWithoutTouchingInput(t *testing.T) {
	in := []Entry{{"a", 12.3}, {"b", 8.1}, {"c", 15.0}}
	ranked := Rank(in)

	assert.Equal(t, []Entry{{"b", 8.1}, {"a", 12.3}, {"c", 15.0}}, ranked)
	assert.Equal(t, "a", in[0].Name)
}

func TestPodiumRemapsSortedArray(t *testing.T) {
	ranked := Rank([]Entry{{"a", 12.3}, {"b", 8.1}, {"c", 15.0}})
	podium := Podium(ranked, DefaultPodiumOrder)

	require.Len(t, podium, 3)
	assert.Equal(t, Slot{Rank: 2, Entry: Entry{"a", 12.3}}, podium[0])
	assert.Equal(t, Slot{Rank: 1, Entry: Entry{"b", 8.1}}, podium[1])
	assert.Equal(t, Slot{Rank: 3, Entry: Entry{"c", 15.0}}, podium[2])
}

func TestRankIsStableOnTies(t *testing.T) {
	ranked := Rank([]Entry{{"first", 60}, {"fast", 5}, {"second", 60}, {"third", 60}})
	names := make([]string, len(ranked))
	for i, e := range ranked {
		names[i] = e.Name
	}
	assert.Equal(t, []string{"fast", "first", "second", "third"}, names)
}

func TestPodiumOmitsMissingSlots(t *testing.T) {
	one := Podium(Rank([]Entry{{"solo", 3}}), nil)
	require.Len(t, one, 1)
	assert.Equal(t, 1, one[0].Rank)

	two := Podium(Rank([]Entry{{"slow", 9}, {"quick", 4}}), nil)
	require.Len(t, two, 2)
	assert.Equal(t, "slow", two[0].Entry.Name)
	assert.Equal(t, "quick", two[1].Entry.Name)

	assert.Empty(t, Podium(nil, nil))
}

func TestPodiumExcludesBeyondTopThree(t *testing.T) {
	ranked := Rank([]Entry{{"d", 4}, {"c", 3}, {"b", 2}, {"a", 1}, {"e", 5}})
	podium := Podium(ranked, DefaultPodiumOrder)
	require.Len(t, podium, 3)
	for _, s := range podium {
		assert.NotContains(t, []string{"d", "e"}, s.Entry.Name)
	}
	assert.Len(t, ranked, 5)
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "8.1s", FormatTime(8.12))
	assert.Equal(t, "60.0s", FormatTime(60))
}
