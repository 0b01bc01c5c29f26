package input

import (
	"chosenoffset.com/shapesort/internal/render"
)

// PointerAdapter reads the mouse cursor and left button, or the first touch
// while a finger is down.
type PointerAdapter struct {
	in       render.InputManager
	proj     *Projector
	touch    *TouchAdapter
	touching bool
}

// NewPointerAdapter creates a mouse and touch adapter.
func NewPointerAdapter(in render.InputManager, proj *Projector) *PointerAdapter {
	return &PointerAdapter{in: in, proj: proj, touch: NewTouchAdapter(in, proj)}
}

// Sample reads the cursor for this frame. A held touch wins over the mouse,
// and the frame a finger lifts still reports where it was.
func (a *PointerAdapter) Sample() Sample {
	if t := a.touch.Sample(); t.Engaged || a.touching {
		a.touching = t.Engaged
		return t
	}
	x, y := a.in.GetCursorPosition()
	return Sample{
		Position: a.proj.FromScreen(float64(x), float64(y)),
		Engaged:  a.in.IsMouseButtonPressed(render.MouseButtonLeft),
		Fresh:    true,
	}
}

// Mode implements Adapter.
func (a *PointerAdapter) Mode() Mode { return ModePointer }

// Available implements Adapter.
func (a *PointerAdapter) Available() bool { return true }

// TouchAdapter follows the first held touch.
type TouchAdapter struct {
	in   render.InputManager
	proj *Projector
	last Sample
}

// NewTouchAdapter creates a touch adapter.
func NewTouchAdapter(in render.InputManager, proj *Projector) *TouchAdapter {
	return &TouchAdapter{in: in, proj: proj}
}

// Sample reads the primary touch. After the finger lifts the last position
// is kept so the release happens where the drag ended.
func (a *TouchAdapter) Sample() Sample {
	ids := a.in.TouchIDs()
	if len(ids) == 0 {
		a.last.Engaged = false
		a.last.Fresh = true
		return a.last
	}
	x, y := a.in.TouchPosition(ids[0])
	a.last = Sample{
		Position: a.proj.FromScreen(float64(x), float64(y)),
		Engaged:  true,
		Fresh:    true,
	}
	return a.last
}

// Mode implements Adapter.
func (a *TouchAdapter) Mode() Mode { return ModeTouch }

// Available implements Adapter.
func (a *TouchAdapter) Available() bool { return true }
