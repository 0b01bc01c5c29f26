package input

import (
	"go.uber.org/zap"

	"chosenoffset.com/shapesort/internal/input/landmarkfeed"
	"chosenoffset.com/shapesort/internal/render"
)

// Selector drives the game from exactly one adapter at a time. A preferred
// adapter takes over from the fallback while it is available and the
// fallback is not mid-press, and hands control back when it loses its source.
// With wait set the preferred adapter must also report a tracked hand first.
type Selector struct {
	preferred Adapter // nil when only the fallback exists
	fallback  Adapter
	wait      bool
	onPrimary bool
	logger    *zap.Logger
}

// NewSelector creates a selector that only ever uses adapter.
func NewSelector(adapter Adapter, logger *zap.Logger) *Selector {
	return &Selector{fallback: adapter, logger: logger.Named("input")}
}

// NewPreferredSelector uses preferred whenever it is available and fallback
// otherwise.
func NewPreferredSelector(preferred, fallback Adapter, logger *zap.Logger) *Selector {
	s := NewSelector(fallback, logger)
	s.preferred = preferred
	return s
}

// NewAutoSelector starts on current and switches to pending once pending
// tracks a hand while current is not engaged. Losing pending returns to
// current and waits for a hand again.
func NewAutoSelector(current, pending Adapter, logger *zap.Logger) *Selector {
	s := NewPreferredSelector(pending, current, logger)
	s.wait = true
	return s
}

// Sample implements Adapter.
func (s *Selector) Sample() Sample {
	if s.preferred == nil {
		return s.fallback.Sample()
	}

	// always sampled so its feed stays drained
	next := s.preferred.Sample()
	if s.onPrimary {
		if s.preferred.Available() {
			return next
		}
		s.logger.Warn("input source lost, falling back",
			zap.Stringer("from", s.preferred.Mode()),
			zap.Stringer("to", s.fallback.Mode()))
		s.onPrimary = false
		return s.fallback.Sample()
	}

	cur := s.fallback.Sample()
	if !s.preferred.Available() || cur.Engaged {
		return cur
	}
	if s.wait && !(next.Fresh && next.Tracked) {
		return cur
	}
	s.logger.Info("switching input source",
		zap.Stringer("from", s.fallback.Mode()),
		zap.Stringer("to", s.preferred.Mode()))
	s.onPrimary = true
	return next
}

// Mode returns the active modality.
func (s *Selector) Mode() Mode {
	if s.onPrimary {
		return s.preferred.Mode()
	}
	return s.fallback.Mode()
}

// Available implements Adapter.
func (s *Selector) Available() bool {
	return s.fallback.Available() || (s.preferred != nil && s.preferred.Available())
}

// Sources are the raw inputs available at startup.
type Sources struct {
	Input          render.InputManager
	Projector      *Projector
	Frames         <-chan landmarkfeed.Frame // nil when hand tracking is off
	PinchThreshold float64
	Mirror         bool
}

// Select builds the selector for mode. Gesture mode uses the pointer while
// no detector is connected. Auto starts on the pointer and moves to gesture
// when the tracker first sees a hand.
func Select(mode Mode, src Sources, logger *zap.Logger) *Selector {
	pointer := NewPointerAdapter(src.Input, src.Projector)
	switch mode {
	case ModePointer:
		return NewSelector(pointer, logger)
	case ModeTouch:
		return NewSelector(NewTouchAdapter(src.Input, src.Projector), logger)
	}

	if src.Frames == nil {
		if mode == ModeGesture {
			logger.Warn("gesture input requested but no hand tracker is available, using pointer")
		}
		return NewSelector(pointer, logger)
	}
	gesture := NewGestureAdapter(src.Frames, src.Projector, src.PinchThreshold, src.Mirror)
	if mode == ModeAuto {
		return NewAutoSelector(pointer, gesture, logger)
	}
	return NewPreferredSelector(gesture, pointer, logger)
}
