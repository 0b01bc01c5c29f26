package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

const (
	popDuration  = 100 * time.Millisecond
	popStartFreq = 600.0
	popEndFreq   = 1200.0
	popStartGain = 0.3
	popEndGain   = 0.01
)

// PopGenerator is a short sine chirp: frequency rises and gain falls
// exponentially over popDuration.
type PopGenerator struct {
	sr    beep.SampleRate
	pos   int
	total int
	phase float64
}

// NewPopGenerator creates a pop at sample rate sr.
func NewPopGenerator(sr beep.SampleRate) *PopGenerator {
	return &PopGenerator{sr: sr, total: sr.N(popDuration)}
}

func (g *PopGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		p := float64(g.pos) / float64(g.total)
		freq := popStartFreq * math.Pow(popEndFreq/popStartFreq, p)
		gain := popStartGain * math.Pow(popEndGain/popStartGain, p)

		s := gain * math.Sin(g.phase)
		g.phase += 2 * math.Pi * freq / float64(g.sr)
		if g.phase > 2*math.Pi {
			g.phase -= 2 * math.Pi
		}

		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *PopGenerator) Err() error {
	return nil
}
