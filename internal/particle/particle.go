// Package particle provides the cosmetic burst shown on a successful match.
// Nothing in the game reads particle state back.
package particle

import (
	"image/color"
	"math/rand"

	"chosenoffset.com/shapesort/internal/core/vec"
)

const (
	spread     = 0.3  // max velocity span per axis
	scaleDecay = 0.9  // per frame
	lifeDecay  = 0.05 // per frame
)

// Particle is one short-lived fragment.
type Particle struct {
	Position vec.Vec3
	Velocity vec.Vec3
	Life     float64 // 1 at birth, removed at <= 0
	Scale    float64
	Color    color.RGBA
}

// Emitter owns the live particles.
type Emitter struct {
	rng       *rand.Rand
	particles []Particle
}

// NewEmitter creates an emitter drawing velocities from rng.
func NewEmitter(rng *rand.Rand) *Emitter {
	return &Emitter{rng: rng}
}

// Burst spawns count particles at pos with small random planar velocities.
func (e *Emitter) Burst(pos vec.Vec3, clr color.RGBA, count int) {
	for i := 0; i < count; i++ {
		e.particles = append(e.particles, Particle{
			Position: pos,
			Velocity: vec.Vec3{
				X: (e.rng.Float64() - 0.5) * spread,
				Y: (e.rng.Float64() - 0.5) * spread,
			},
			Life:  1,
			Scale: 1,
			Color: clr,
		})
	}
}

// Update advances every particle by one frame and drops the dead ones.
func (e *Emitter) Update() {
	live := e.particles[:0]
	for _, p := range e.particles {
		p.Position = p.Position.Add(p.Velocity)
		p.Scale *= scaleDecay
		p.Life -= lifeDecay
		if p.Life > 0 {
			live = append(live, p)
		}
	}
	e.particles = live
}

// Particles returns the live particles. The slice is reused by Update.
func (e *Emitter) Particles() []Particle {
	return e.particles
}

// Len returns the number of live particles.
func (e *Emitter) Len() int {
	return len(e.particles)
}

// Clear drops all particles.
func (e *Emitter) Clear() {
	e.particles = e.particles[:0]
}
