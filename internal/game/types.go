package game

// Effects is the audio collaborator.
type Effects interface {
	PlayPop()
}

type silentEffects struct{}

func (silentEffects) PlayPop() {}

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}

// Alpha is the message opacity, fading over the last second.
func (m Message) Alpha() float64 {
	if m.TimeLeft >= 1 {
		return 1
	}
	if m.TimeLeft <= 0 {
		return 0
	}
	return m.TimeLeft
}
