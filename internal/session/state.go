package session

import (
	"fmt"
	"time"

	"chosenoffset.com/shapesort/internal/leaderboard"
)

// State is a phase of the session.
type State int

const (
	StateSetup State = iota
	StateNaming
	StatePlaying
	StateRoundEnd
	StateLeaderboard
)

func (s State) String() string {
	switch s {
	case StateSetup:
		return "SETUP"
	case StateNaming:
		return "NAMING"
	case StatePlaying:
		return "PLAYING"
	case StateRoundEnd:
		return "ROUND_END"
	case StateLeaderboard:
		return "LEADERBOARD"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// UnsetTime marks a player whose round has not finished.
const UnsetTime = 999.0

// Player is one participant and their recorded time in seconds.
type Player struct {
	Name string
	Time float64
}

// Clock supplies wall time for round timing.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Display is told about every change the UI shows.
type Display interface {
	StateChanged(state State)
	ScoreChanged(score, target int)
	TimerTick(remaining int)
	PodiumReady(podium []leaderboard.Slot)
}

// Spawner creates and discards the shapes of a round.
type Spawner interface {
	SpawnRound(count int)
	Clear()
}

type nopDisplay struct{}

func (nopDisplay) StateChanged(State) {}
func (nopDisplay) ScoreChanged(int, int) {}
func (nopDisplay) TimerTick(int) {}
func (nopDisplay) PodiumReady([]leaderboard.Slot) {}
