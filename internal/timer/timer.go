// Package timer implements the per-round countdown.
package timer

// RoundTimer is a one-shot countdown advanced by Tick at a one second cadence.
// It is not safe for concurrent use; the frame loop owns it.
type RoundTimer struct {
	remaining int
	running   bool
	onExpired func()

	// OnTick, if set, receives the remaining seconds after every start and tick.
	OnTick func(remaining int)
}

// New creates a stopped timer that calls onExpired once per countdown.
func New(onExpired func()) *RoundTimer {
	return &RoundTimer{onExpired: onExpired}
}

// Start begins a new countdown, discarding any countdown in progress.
func (t *RoundTimer) Start(seconds int) {
	t.remaining = seconds
	t.running = true
	t.notify()
	if seconds <= 0 {
		t.expire()
	}
}

// Tick consumes one second. A stopped timer ignores ticks, so a round that
// ended earlier in the same frame can never also expire.
func (t *RoundTimer) Tick() {
	if !t.running {
		return
	}
	t.remaining--
	t.notify()
	if t.remaining <= 0 {
		t.expire()
	}
}

// Stop halts the countdown. Calling it again is a no-op.
func (t *RoundTimer) Stop() {
	t.running = false
}

// Remaining returns the whole seconds left.
func (t *RoundTimer) Remaining() int {
	return t.remaining
}

// Running reports whether a countdown is active.
func (t *RoundTimer) Running() bool {
	return t.running
}

func (t *RoundTimer) expire() {
	t.remaining = 0
	t.running = false
	if t.onExpired != nil {
		t.onExpired()
	}
}

func (t *RoundTimer) notify() {
	if t.OnTick != nil {
		t.OnTick(t.remaining)
	}
}
