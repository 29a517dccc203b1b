package render

import (
	"math"

	"github.com/jsphweid/tonegen/constants"
)

// Limit puts a look-ahead peak limiter after s. The gain is already down
// when a peak arrives and recovers slowly after it, so the output never
// exceeds constants.LimiterCeiling and is never clipped.
func Limit(s Sound) Sound {
	return Sound{Node: &limiter{src: s.Node}, Duration: s.Duration, Polyphony: s.Polyphony}
}

type limiter struct {
	src Source
	sr  float64

	frames  [][2]float64
	peaks   []float64
	pos     int
	gain    float64
	attack  float64
	release float64
}

func (l *limiter) SetSampleRate(rate float64) {
	l.sr = rate
	l.src.SetSampleRate(rate)
}

func (l *limiter) Allocate() {
	l.src.Allocate()
	n := max(1, int(math.Round(constants.LimiterLookahead*l.sr)))
	l.frames = make([][2]float64, n)
	l.peaks = make([]float64, n)
	l.attack = 1 - math.Exp(-5/float64(n))
	l.release = 1 - math.Exp(-1/(constants.LimiterRelease*l.sr))
}

// Reset fills the look-ahead window from the source, so output sample k is
// input sample k.
func (l *limiter) Reset() {
	l.src.Reset()
	l.pos = 0
	l.gain = 1
	for i := range l.frames {
		a, b := l.src.Next()
		l.frames[i] = [2]float64{a, b}
		l.peaks[i] = peakOf(a, b)
	}
}

func (l *limiter) Next() (float64, float64) {
	if len(l.frames) == 0 {
		return l.src.Next()
	}
	out := l.frames[l.pos]
	a, b := l.src.Next()
	l.frames[l.pos] = [2]float64{a, b}
	l.peaks[l.pos] = peakOf(a, b)
	l.pos = (l.pos + 1) % len(l.frames)

	current := peakOf(out[0], out[1])
	peak := current
	for _, p := range l.peaks {
		peak = max(peak, p)
	}
	target := 1.0
	if peak > constants.LimiterCeiling {
		target = constants.LimiterCeiling / peak
	}
	if target < l.gain {
		l.gain += (target - l.gain) * l.attack
	} else {
		l.gain += (target - l.gain) * l.release
	}

	g := l.gain
	if current*g > constants.LimiterCeiling {
		g = constants.LimiterCeiling / current
	}
	return out[0] * g, out[1] * g
}

func peakOf(a, b float64) float64 {
	return max(math.Abs(a), math.Abs(b))
}
