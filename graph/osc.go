package graph

import "math"

type Waveform int

const (
	Sine Waveform = iota
	Saw
	Square
	Triangle
	Pulse
	Noise
)

var waveformNames = map[Waveform]string{
	Sine:     "sine",
	Saw:      "saw",
	Square:   "square",
	Triangle: "triangle",
	Pulse:    "pulse",
	Noise:    "noise",
}

func (w Waveform) String() string {
	return waveformNames[w]
}

// Osc is a naive phase accumulating oscillator.
type Osc struct {
	Wave Waveform
	// Width is the duty cycle of Pulse, in (0, 1).
	Width float64

	sr    float64
	phase float64
	noise uint32
}

func NewOsc(w Waveform) *Osc {
	return &Osc{Wave: w, Width: 0.25, sr: 44100, noise: noiseSeed}
}

const noiseSeed = 0x9e3779b9

func (o *Osc) SetSampleRate(sr float64) {
	o.sr = sr
}

func (o *Osc) Reset() {
	o.phase = 0
	o.noise = noiseSeed
}

// Next advances by one sample at freq Hz and returns a value in [-1, 1].
func (o *Osc) Next(freq float64) float64 {
	p := o.phase
	o.phase += freq / o.sr
	o.phase -= math.Floor(o.phase)

	switch o.Wave {
	case Saw:
		return 2*p - 1
	case Square:
		if p < 0.5 {
			return 1
		}
		return -1
	case Triangle:
		return 1 - 4*math.Abs(p-0.5)
	case Pulse:
		if p < o.Width {
			return 1
		}
		return -1
	case Noise:
		// xorshift32
		x := o.noise
		x ^= x << 13
		x ^= x >> 17
		x ^= x << 5
		o.noise = x
		return float64(x)/float64(math.MaxUint32)*2 - 1
	}
	return math.Sin(2 * math.Pi * p)
}
