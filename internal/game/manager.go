package game

import (
	"math/rand"

	"go.uber.org/zap"

	"chosenoffset.com/shapesort/internal/config"
	"chosenoffset.com/shapesort/internal/input"
	"chosenoffset.com/shapesort/internal/input/landmarkfeed"
	"chosenoffset.com/shapesort/internal/leaderboard"
	"chosenoffset.com/shapesort/internal/match"
	"chosenoffset.com/shapesort/internal/render"
	"chosenoffset.com/shapesort/internal/session"
	"chosenoffset.com/shapesort/internal/ui/hud"
)

const (
	messageSeconds = 3.0
	maxNameLength  = 16
	maxCountLength = 2
)

// Options are the collaborators a Manager is built from.
type Options struct {
	Config   *config.Config
	Renderer render.Renderer
	Input    render.InputManager
	Frames   <-chan landmarkfeed.Frame // nil disables hand tracking
	Effects  Effects                   // nil is silent
	Clock    session.Clock             // nil uses the system clock
	Rand     *rand.Rand
	Logger   *zap.Logger
}

// Manager handles the overall game state and implements render.Game.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int

	Config   *config.Config
	Renderer render.Renderer
	InputMgr render.InputManager
	Effects  Effects
	Clock    session.Clock
	Logger   *zap.Logger

	Game     *Game
	Session  *session.Session
	Selector *input.Selector
	Panel    *hud.Panel
	Field    *hud.TextField
	Messages []Message

	dt       float64
	tickAcc  float64
	lastMode input.Mode
}

// NewManager creates a manager showing the setup prompt.
func NewManager(opts Options) *Manager {
	cfg := opts.Config
	effects := opts.Effects
	if effects == nil {
		effects = silentEffects{}
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	w, h := cfg.Window.Width, cfg.Window.Height

	m := &Manager{
		ScreenWidth:  w,
		ScreenHeight: h,
		Config:       cfg,
		Renderer:     opts.Renderer,
		InputMgr:     opts.Input,
		Effects:      effects,
		Clock:        opts.Clock,
		Logger:       opts.Logger,
		Game:         NewGame(cfg, rng, opts.Logger, w, h),
		Panel:        hud.NewPanel(w, h),
		Field:        hud.NewTextField(maxNameLength),
		dt:           1 / float64(cfg.Window.TPS),
	}
	m.Panel.Field = m.Field
	m.Game.Engine.OnScore = m.onScore

	mode, err := input.ParseMode(cfg.Input.Mode)
	if err != nil {
		opts.Logger.Warn("unknown input mode, using auto", zap.String("mode", cfg.Input.Mode))
		mode = input.ModeAuto
	}
	m.Selector = input.Select(mode, input.Sources{
		Input:          opts.Input,
		Projector:      m.Game.Projector,
		Frames:         opts.Frames,
		PinchThreshold: cfg.Gesture.PinchThreshold,
		Mirror:         cfg.Gesture.Mirror,
	}, opts.Logger)
	m.lastMode = m.Selector.Mode()

	m.Restart()
	return m
}

// Restart discards everything about the current session and returns to
// the setup prompt.
func (m *Manager) Restart() {
	if m.Session != nil {
		m.Session.Timer().Stop()
	}
	m.Game.Reset()
	m.Session = session.New(m.Config.Game, m.Game.Engine, m, m.Clock, m.Logger)
	m.tickAcc = 0
	m.StateChanged(session.StateSetup)
}

func (m *Manager) onScore(match.Shape) {
	m.Effects.PlayPop()
	m.Session.OnScoreEvent()
}

// Update advances one frame.
func (m *Manager) Update() error {
	if m.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		return render.ErrQuit
	}

	switch m.Session.State() {
	case session.StateSetup:
		if m.Field.Update(m.InputMgr) {
			m.Session.ConfigurePlayerCount(session.ParsePlayerCount(m.Field.Text()))
		}
	case session.StateNaming:
		if m.Field.Update(m.InputMgr) {
			m.Session.CommitPlayerName(m.Field.Text())
		}
	case session.StatePlaying:
		m.Game.Engine.Update(m.Selector.Sample())
		m.watchMode()
	case session.StateLeaderboard:
		if m.InputMgr.IsKeyJustPressed(render.KeyR) || m.InputMgr.IsMouseButtonJustPressed(render.MouseButtonLeft) {
			m.Restart()
		}
	}

	m.Game.Update(m.dt)
	m.updateMessages()

	// after input so a round completed this frame cannot also time out
	if m.Session.State() == session.StatePlaying {
		m.tickAcc += m.dt
		for m.tickAcc >= 1 {
			m.tickAcc--
			m.Session.Timer().Tick()
		}
	}
	return nil
}

func (m *Manager) watchMode() {
	mode := m.Selector.Mode()
	m.Panel.SetModeLabel("Input: " + mode.String())
	if mode == m.lastMode {
		return
	}
	if mode == input.ModeGesture {
		m.AddMessage("Hand tracking connected, pinch to grab")
	} else {
		m.AddMessage("Hand tracking lost, using " + mode.String())
	}
	m.lastMode = mode
}

// AddMessage shows a fading notice.
func (m *Manager) AddMessage(text string) {
	m.Messages = append(m.Messages, Message{Text: text, TimeLeft: messageSeconds, MaxTime: messageSeconds})
}

func (m *Manager) updateMessages() {
	kept := m.Messages[:0]
	for _, msg := range m.Messages {
		msg.TimeLeft -= m.dt
		if msg.TimeLeft > 0 {
			kept = append(kept, msg)
		}
	}
	m.Messages = kept
}

// Layout handles window resize.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != m.ScreenWidth || outsideHeight != m.ScreenHeight {
		m.ScreenWidth = outsideWidth
		m.ScreenHeight = outsideHeight
		m.Game.Projector.Resize(outsideWidth, outsideHeight)
		m.Panel.SetScreenSize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// StateChanged prepares the prompt for the new state and forwards it to
// the panel.
func (m *Manager) StateChanged(state session.State) {
	switch state {
	case session.StateSetup:
		m.Field.Numeric = true
		m.Field.MaxLen = maxCountLength
		m.Field.Set("")
	case session.StateNaming:
		i := m.Session.CurrentPlayerIndex()
		m.Field.Numeric = false
		m.Field.MaxLen = maxNameLength
		m.Field.Set(session.DefaultPlayerName(i))
		m.Panel.SetNaming(i, m.Session.TotalPlayers())
	case session.StatePlaying:
		m.tickAcc = 0
	}
	m.Logger.Debug("state changed", zap.Stringer("state", state))
	m.Panel.StateChanged(state)
}

func (m *Manager) ScoreChanged(score, target int) { m.Panel.ScoreChanged(score, target) }

func (m *Manager) TimerTick(remaining int) { m.Panel.TimerTick(remaining) }

func (m *Manager) PodiumReady(podium []leaderboard.Slot) {
	m.Panel.PodiumReady(podium)
}
