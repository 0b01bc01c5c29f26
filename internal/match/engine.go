// Package match owns the shapes and targets of a round. It turns input
// samples into grabs, drags and releases, and decides on release whether a
// shape landed on its matching target.
package match

import (
	"image/color"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chosenoffset.com/shapesort/internal/config"
	"chosenoffset.com/shapesort/internal/core/vec"
	"chosenoffset.com/shapesort/internal/input"
	"chosenoffset.com/shapesort/internal/scene"
)

const idleSpin = 0.01 // radians per frame

// Burster receives the particle burst of a match.
type Burster interface {
	Burst(pos vec.Vec3, clr color.RGBA, count int)
}

// Engine runs drag and drop for one set of shapes over the fixed targets.
type Engine struct {
	cfg     config.GameConfig
	scene   scene.Scene
	effects Burster
	rng     *rand.Rand
	logger  *zap.Logger

	shapes  []*Shape
	targets []*Target

	// grabbed is set only by a hit on press and cleared only by release
	grabbed    *Shape
	grabOffset vec.Vec3

	// OnScore is called after a shape is matched.
	OnScore func(s Shape)
}

// NewEngine creates the engine and its three targets. effects may be nil.
func NewEngine(cfg config.GameConfig, sc scene.Scene, effects Burster, rng *rand.Rand, logger *zap.Logger) *Engine {
	e := &Engine{
		cfg:     cfg,
		scene:   sc,
		effects: effects,
		rng:     rng,
		logger:  logger.Named("match"),
	}
	for _, l := range targetLayout {
		t := &Target{Kind: l.kind, Position: vec.Vec3{X: l.x}, Scale: 1}
		t.handle = sc.CreateVisual(scene.KindTarget, scene.Material{Color: color.RGBA{255, 255, 255, 255}, Icon: l.kind.String()})
		sc.SetPosition(t.handle, t.Position)
		e.targets = append(e.targets, t)
	}
	return e
}

// SpawnRound replaces the current shapes with count new ones scattered above
// the target row.
func (e *Engine) SpawnRound(count int) {
	e.Clear()
	for i := 0; i < count; i++ {
		kind := Palette[e.rng.Intn(len(Palette))]
		pos := vec.Vec3{
			X: (e.rng.Float64() - 0.5) * 8,
			Y: 3 + e.rng.Float64()*2,
		}
		e.addShape(kind, pos, vec.Vec3{X: e.rng.Float64(), Y: e.rng.Float64()})
	}
	e.logger.Debug("spawned shapes", zap.Int("count", count))
}

func (e *Engine) addShape(kind Kind, pos, rot vec.Vec3) *Shape {
	s := &Shape{
		ID:           uuid.New(),
		Kind:         kind,
		Position:     pos,
		BasePosition: pos,
		Rotation:     rot,
		Active:       true,
	}
	s.handle = e.scene.CreateVisual(kind.String(), scene.Material{Color: kind.Color()})
	e.sync(s)
	e.shapes = append(e.shapes, s)
	return s
}

// Clear discards every shape, matched or not.
func (e *Engine) Clear() {
	for _, s := range e.shapes {
		e.scene.Remove(s.handle)
	}
	e.shapes = nil
	e.grabbed = nil
}

// Update applies one frame of input.
func (e *Engine) Update(sample input.Sample) {
	switch {
	case e.grabbed != nil && sample.Engaged:
		e.drag(sample.Position)
	case e.grabbed != nil:
		e.release()
	case sample.Engaged:
		e.tryGrab(sample.Position)
	}

	for _, s := range e.shapes {
		if !s.Active || s == e.grabbed {
			continue
		}
		s.Position = s.Position.Lerp(s.BasePosition, e.cfg.ReturnSmoothing)
		s.Rotation.X *= 1 - e.cfg.ReturnSmoothing
		s.Rotation.Z *= 1 - e.cfg.ReturnSmoothing
		s.Rotation.Y += idleSpin
		e.sync(s)
	}
}

// Tick advances target pulses by dt seconds.
func (e *Engine) Tick(dt float64) {
	for _, t := range e.targets {
		if t.pulseLeft <= 0 {
			continue
		}
		t.pulseLeft -= dt
		if t.pulseLeft <= 0 {
			t.pulseLeft = 0
			t.Scale = 1
			e.scene.SetScale(t.handle, t.Scale)
		}
	}
}

func (e *Engine) tryGrab(point vec.Vec3) {
	handles := make([]scene.Handle, 0, len(e.shapes))
	for _, s := range e.shapes {
		if s.Active {
			handles = append(handles, s.handle)
		}
	}
	h, ok := e.scene.HitTest(point, handles)
	if !ok {
		return
	}
	for _, s := range e.shapes {
		if s.handle == h {
			s.Grabbed = true
			e.grabbed = s
			e.grabOffset = vec.Vec3{X: point.X - s.Position.X, Y: point.Y - s.Position.Y}
			return
		}
	}
}

func (e *Engine) drag(point vec.Vec3) {
	s := e.grabbed
	goal := point.Sub(e.grabOffset)
	goal.Z = e.cfg.LiftHeight
	s.Position = s.Position.Lerp(goal, e.cfg.DragSmoothing)
	s.Position.Z = e.cfg.LiftHeight
	s.Rotation.X = (s.Position.Y - goal.Y) * e.cfg.TiltFactor
	s.Rotation.Z = (s.Position.X - goal.X) * e.cfg.TiltFactor
	e.sync(s)
}

func (e *Engine) release() {
	s := e.grabbed
	s.Grabbed = false
	e.grabbed = nil

	t := e.resolveDrop(s)
	if t == nil {
		s.Position.Z = 0
		e.sync(s)
		return
	}

	s.Active = false
	e.scene.Remove(s.handle)
	if e.effects != nil {
		e.effects.Burst(s.Position, s.Kind.Color(), e.cfg.BurstCount())
	}
	t.Scale = e.cfg.PulseScale
	t.pulseLeft = float64(e.cfg.PulseMillis) / 1000
	e.scene.SetScale(t.handle, t.Scale)

	e.logger.Debug("shape matched", zap.Stringer("kind", s.Kind), zap.Stringer("id", s.ID))
	if e.OnScore != nil {
		e.OnScore(*s)
	}
}

// resolveDrop returns the first target the shape matches, in layout order.
func (e *Engine) resolveDrop(s *Shape) *Target {
	for _, t := range e.targets {
		if Matches(*s, *t, e.cfg.MatchTolerance) {
			return t
		}
	}
	return nil
}

// Resolve reports whether dropping s now would match t.
func (e *Engine) Resolve(s Shape, t Target) bool {
	return Matches(s, t, e.cfg.MatchTolerance)
}

func (e *Engine) sync(s *Shape) {
	e.scene.SetPosition(s.handle, s.Position)
	e.scene.SetRotation(s.handle, s.Rotation)
}

// Shapes returns copies of the current shapes in spawn order.
func (e *Engine) Shapes() []Shape {
	out := make([]Shape, len(e.shapes))
	for i, s := range e.shapes {
		out[i] = *s
	}
	return out
}

// Targets returns copies of the targets in layout order.
func (e *Engine) Targets() []Target {
	out := make([]Target, len(e.targets))
	for i, t := range e.targets {
		out[i] = *t
	}
	return out
}

// Grabbed returns the shape being dragged, if any.
func (e *Engine) Grabbed() (Shape, bool) {
	if e.grabbed == nil {
		return Shape{}, false
	}
	return *e.grabbed, true
}

// ActiveCount returns the number of unmatched shapes.
func (e *Engine) ActiveCount() int {
	n := 0
	for _, s := range e.shapes {
		if s.Active {
			n++
		}
	}
	return n
}
