// Package input turns pointer, touch and hand-gesture sources into one stream
// of samples on the world interaction plane. Adapters translate coordinates
// and button state only; gameplay decisions belong to the match engine.
package input

import (
	"fmt"
	"strings"
	"time"

	"chosenoffset.com/shapesort/internal/core/vec"
	"chosenoffset.com/shapesort/internal/scene"
)

// Mode identifies an input modality.
type Mode int

const (
	ModeAuto Mode = iota
	ModePointer
	ModeTouch
	ModeGesture
)

// String returns the config spelling of the mode.
func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModePointer:
		return "pointer"
	case ModeTouch:
		return "touch"
	case ModeGesture:
		return "gesture"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a config value. Empty means auto.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ModeAuto, nil
	case "pointer", "mouse":
		return ModePointer, nil
	case "touch":
		return ModeTouch, nil
	case "gesture", "hand":
		return ModeGesture, nil
	default:
		return ModeAuto, fmt.Errorf("unknown input mode %q", s)
	}
}

// Sample is one frame of input.
type Sample struct {
	Position  vec.Vec3 // on the interaction plane
	Engaged   bool     // primary action held: press, touch or pinch
	Timestamp time.Duration
	Fresh     bool // false when the source had nothing new this frame
	Tracked   bool // gesture only: a hand was in view
}

// Adapter produces one Sample per frame.
type Adapter interface {
	Sample() Sample
	Mode() Mode
	// Available reports whether the source can still deliver input.
	Available() bool
}

// Projector converts device coordinates into world-plane positions using the
// camera's field of view and the current aspect ratio.
type Projector struct {
	camera        scene.Camera
	width, height int
}

// NewProjector creates a projector for a screen of width x height pixels.
func NewProjector(cam scene.Camera, width, height int) *Projector {
	p := &Projector{camera: cam}
	p.Resize(width, height)
	return p
}

// Resize updates the screen size and aspect ratio.
func (p *Projector) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.width, p.height = width, height
	p.camera.Aspect = float64(width) / float64(height)
}

// Camera returns the camera with the current aspect ratio.
func (p *Projector) Camera() scene.Camera {
	return p.camera
}

// FromScreen maps a pixel position (origin top-left) onto the plane.
func (p *Projector) FromScreen(px, py float64) vec.Vec3 {
	ndcX := px/float64(p.width)*2 - 1
	ndcY := -(py/float64(p.height)*2 - 1)
	return p.camera.Unproject(ndcX, ndcY)
}

// FromNormalized maps a normalized image position (0..1, origin top-left)
// onto the plane, mirroring horizontally for a front-facing camera.
func (p *Projector) FromNormalized(x, y float64, mirror bool) vec.Vec3 {
	if mirror {
		x = 1 - x
	}
	return p.camera.Unproject(x*2-1, -(y*2 - 1))
}
