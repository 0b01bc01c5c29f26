// Package leaderboard ranks finished players and lays out the podium.
package leaderboard

import (
	"fmt"
	"sort"
)

// DefaultPodiumOrder shows 2nd, 1st and 3rd left to right so the winner sits
// in the middle.
var DefaultPodiumOrder = []int{1, 0, 2}

// Entry is one player's result.
type Entry struct {
	Name string
	Time float64 // seconds, lower is better
}

// Slot is a podium position.
type Slot struct {
	Rank  int // 1-based place in the ranking
	Entry Entry
}

// Rank returns a copy of entries sorted fastest first. Ties keep their input
// order.
func Rank(entries []Entry) []Entry {
	ranked := make([]Entry, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Time < ranked[j].Time
	})
	return ranked
}

// Podium maps ranked positions into display order. Positions past the end of
// ranked are omitted; entries ranked beyond the order's length are not shown.
func Podium(ranked []Entry, order []int) []Slot {
	if order == nil {
		order = DefaultPodiumOrder
	}
	slots := make([]Slot, 0, len(order))
	for _, i := range order {
		if i < 0 || i >= len(ranked) {
			continue
		}
		slots = append(slots, Slot{Rank: i + 1, Entry: ranked[i]})
	}
	return slots
}

// FormatTime renders a time the way the podium shows it.
func FormatTime(seconds float64) string {
	return fmt.Sprintf("%.1fs", seconds)
}
