package input

import (
	"time"

	"chosenoffset.com/shapesort/internal/core/vec"
	"chosenoffset.com/shapesort/internal/input/landmarkfeed"
)

// Hand landmark indices of the fingertips used for pinching.
const (
	ThumbTip = 4
	IndexTip = 8
)

// A timestamp this far behind the newest one means the detector restarted
// its clock rather than delivering a late frame.
const restartGap = time.Second

// GestureAdapter derives a pinch cursor from hand landmark frames.
type GestureAdapter struct {
	frames    <-chan landmarkfeed.Frame
	proj      *Projector
	threshold float64
	mirror    bool

	last      Sample
	lastStamp time.Duration
	seen      bool
	session   uint64
	connected bool
	closed    bool
}

// NewGestureAdapter creates an adapter reading frames. threshold is the
// normalized thumb-to-index distance under which the hand counts as pinched.
func NewGestureAdapter(frames <-chan landmarkfeed.Frame, proj *Projector, threshold float64, mirror bool) *GestureAdapter {
	return &GestureAdapter{
		frames:    frames,
		proj:      proj,
		threshold: threshold,
		mirror:    mirror,
		closed:    frames == nil,
	}
}

// Sample returns the newest detection. If no newer frame arrived since the
// last call, the previous sample is returned with Fresh unset. A lost
// detector always reads as released.
func (a *GestureAdapter) Sample() Sample {
	frame, ok := a.drain()
	if ok {
		if frame.Session != a.session {
			a.session = frame.Session
			a.seen = false
		}
		if frame.Disconnected {
			a.connected = false
			a.last.Engaged = false
			a.last.Tracked = false
			ok = false
		} else {
			a.connected = true
		}
	}
	if ok && a.seen && frame.Timestamp <= a.lastStamp && a.lastStamp-frame.Timestamp < restartGap {
		ok = false
	}
	if !ok {
		s := a.last
		s.Fresh = false
		if !a.Available() {
			s.Engaged = false
		}
		return s
	}

	a.seen = true
	a.lastStamp = frame.Timestamp
	a.last = a.derive(frame)
	return a.last
}

// Mode implements Adapter.
func (a *GestureAdapter) Mode() Mode { return ModeGesture }

// Available reports whether a detector is connected. It stays false before
// the first frame, after a disconnect and once the feed has shut down.
func (a *GestureAdapter) Available() bool { return a.connected && !a.closed }

// drain reads every queued frame without blocking and keeps the newest.
func (a *GestureAdapter) drain() (landmarkfeed.Frame, bool) {
	var (
		newest landmarkfeed.Frame
		got    bool
	)
	if a.closed {
		return newest, false
	}
	for {
		select {
		case f, ok := <-a.frames:
			if !ok {
				a.closed = true
				return newest, got
			}
			newest, got = f, true
		default:
			return newest, got
		}
	}
}

func (a *GestureAdapter) derive(frame landmarkfeed.Frame) Sample {
	s := Sample{
		Position:  a.last.Position,
		Timestamp: frame.Timestamp,
		Fresh:     true,
	}
	if len(frame.Landmarks) <= IndexTip {
		// no hand, release in place
		return s
	}
	thumb := frame.Landmarks[ThumbTip]
	index := frame.Landmarks[IndexTip]
	mid := vec.Midpoint(thumb, index)
	s.Position = a.proj.FromNormalized(mid.X, mid.Y, a.mirror)
	s.Engaged = vec.Distance(thumb, index) < a.threshold
	s.Tracked = true
	return s
}
