// Package session runs the setup, naming, play and leaderboard flow of a
// game. It owns the player list, the score and the round timer, and talks to
// the shapes and the UI only through the Spawner and Display interfaces.
package session

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"chosenoffset.com/shapesort/internal/config"
	"chosenoffset.com/shapesort/internal/leaderboard"
	"chosenoffset.com/shapesort/internal/timer"
)

// Session is a single play-through. A finished session stays in
// StateLeaderboard; restarting means building a new one.
type Session struct {
	cfg     config.GameConfig
	spawner Spawner
	display Display
	clock   Clock
	logger  *zap.Logger
	timer   *timer.RoundTimer

	state        State
	totalPlayers int
	players      []Player
	current      int
	score        int
	targetScore  int
	roundStart   time.Time
}

// New creates a session in StateSetup. display and clock may be nil.
func New(cfg config.GameConfig, spawner Spawner, display Display, clock Clock, logger *zap.Logger) *Session {
	if display == nil {
		display = nopDisplay{}
	}
	if clock == nil {
		clock = SystemClock{}
	}
	s := &Session{
		cfg:         cfg,
		spawner:     spawner,
		display:     display,
		clock:       clock,
		logger:      logger.Named("session"),
		state:       StateSetup,
		targetScore: cfg.TargetScore(),
	}
	s.timer = timer.New(s.OnTimerExpired)
	s.timer.OnTick = display.TimerTick
	return s
}

// ParsePlayerCount reads a player count, coercing anything that is not a
// positive integer to 1.
func ParsePlayerCount(text string) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// DefaultPlayerName is the name offered for the player at index.
func DefaultPlayerName(index int) string {
	return fmt.Sprintf("Player %d", index+1)
}

// ConfigurePlayerCount fixes the number of rounds and moves to naming.
func (s *Session) ConfigurePlayerCount(n int) {
	if s.state != StateSetup {
		return
	}
	if n < 1 {
		n = 1
	}
	s.totalPlayers = n
	s.current = 0
	s.players = make([]Player, 0, n)
	s.logger.Info("players configured", zap.Int("count", n))
	s.setState(StateNaming)
}

// CommitPlayerName names the current player and starts their round.
func (s *Session) CommitPlayerName(name string) {
	if s.state != StateNaming {
		return
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultPlayerName(s.current)
	}
	s.players = append(s.players, Player{Name: name, Time: UnsetTime})

	s.timer.Stop()
	s.spawner.Clear()
	s.score = 0
	s.setState(StatePlaying)
	s.display.ScoreChanged(s.score, s.targetScore)
	s.spawner.SpawnRound(s.cfg.ShapesPerRound)
	s.roundStart = s.clock.Now()
	s.timer.Start(s.cfg.RoundDurationSeconds)

	s.logger.Info("round started",
		zap.String("player", name),
		zap.Int("index", s.current),
		zap.Int("shapes", s.cfg.ShapesPerRound),
	)
}

// OnScoreEvent counts one match. Reaching the target completes the round.
func (s *Session) OnScoreEvent() {
	if s.state != StatePlaying {
		return
	}
	s.score++
	s.display.ScoreChanged(s.score, s.targetScore)
	if s.score >= s.targetScore {
		s.EndRound(true)
	}
}

// OnTimerExpired forfeits the round in progress.
func (s *Session) OnTimerExpired() {
	if s.state != StatePlaying {
		return
	}
	s.EndRound(false)
}

// EndRound records the current player's time and moves on. A completed round
// is credited with the elapsed wall time, a forfeited one with the full
// round duration.
func (s *Session) EndRound(completed bool) {
	if s.state != StatePlaying {
		return
	}
	s.timer.Stop()
	s.setState(StateRoundEnd)

	t := float64(s.cfg.RoundDurationSeconds)
	if completed {
		t = s.clock.Now().Sub(s.roundStart).Seconds()
	}
	s.players[s.current].Time = t
	s.spawner.Clear()

	s.logger.Info("round ended",
		zap.String("player", s.players[s.current].Name),
		zap.Bool("completed", completed),
		zap.Float64("time", t),
		zap.Int("score", s.score),
	)

	s.current++
	if s.current < s.totalPlayers {
		s.setState(StateNaming)
		return
	}
	s.setState(StateLeaderboard)
	s.display.PodiumReady(s.Podium())
}

func (s *Session) setState(state State) {
	s.state = state
	s.display.StateChanged(state)
}

// Timer is the round countdown. The frame loop ticks it once per second.
func (s *Session) Timer() *timer.RoundTimer {
	return s.timer
}

func (s *Session) State() State { return s.state }

func (s *Session) Score() int { return s.score }

func (s *Session) TargetScore() int { return s.targetScore }

func (s *Session) TotalPlayers() int { return s.totalPlayers }

// CurrentPlayerIndex is the index of the player naming or playing now.
func (s *Session) CurrentPlayerIndex() int { return s.current }

// Players returns a copy of the players named so far.
func (s *Session) Players() []Player {
	out := make([]Player, len(s.players))
	copy(out, s.players)
	return out
}

// Ranking returns every player sorted fastest first.
func (s *Session) Ranking() []leaderboard.Entry {
	entries := make([]leaderboard.Entry, len(s.players))
	for i, p := range s.players {
		entries[i] = leaderboard.Entry{Name: p.Name, Time: p.Time}
	}
	return leaderboard.Rank(entries)
}

// Podium returns the top of the ranking in display order.
func (s *Session) Podium() []leaderboard.Slot {
	return leaderboard.Podium(s.Ranking(), s.cfg.PodiumOrder)
}
