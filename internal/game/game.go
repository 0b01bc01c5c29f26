package game

import (
	"math/rand"

	"go.uber.org/zap"

	"chosenoffset.com/shapesort/internal/config"
	"chosenoffset.com/shapesort/internal/input"
	"chosenoffset.com/shapesort/internal/match"
	"chosenoffset.com/shapesort/internal/particle"
	"chosenoffset.com/shapesort/internal/scene"
)

// Game holds the play field shared by every round: the scene, the targets
// and shapes, and the particles.
type Game struct {
	Scene     *scene.Graph
	Engine    *match.Engine
	Particles *particle.Emitter
	Projector *input.Projector
}

// NewGame builds the play field for a screen of width x height.
func NewGame(cfg *config.Config, rng *rand.Rand, logger *zap.Logger, width, height int) *Game {
	g := &Game{
		Scene:     scene.NewGraph(cfg.Game.GrabRadius),
		Particles: particle.NewEmitter(rng),
		Projector: input.NewProjector(scene.Camera{
			FOVDegrees: cfg.Camera.FOVDegrees,
			Z:          cfg.Camera.Z,
			PlaneZ:     cfg.Camera.PlaneZ,
		}, width, height),
	}
	g.Engine = match.NewEngine(cfg.Game, g.Scene, g.Particles, rng, logger)
	return g
}

// Update advances everything that moves on its own by one frame of dt seconds.
func (g *Game) Update(dt float64) {
	g.Engine.Tick(dt)
	g.Particles.Update()
}

// Reset discards the shapes and particles of any round in progress.
func (g *Game) Reset() {
	g.Engine.Clear()
	g.Particles.Clear()
}
