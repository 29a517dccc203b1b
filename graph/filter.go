package graph

import "math"

type FilterMode int

const (
	LowPass FilterMode = iota
	HighPass
)

// Biquad is an RBJ cookbook filter whose cutoff may change every sample.
// Coefficients are only recomputed when cutoff or resonance move.
type Biquad struct {
	Mode FilterMode

	sr                 float64
	cutoff, q          float64
	b0, b1, b2, a1, a2 float64
	x1, x2, y1, y2     float64
}

func NewBiquad(mode FilterMode) *Biquad {
	return &Biquad{Mode: mode, sr: 44100}
}

func (f *Biquad) SetSampleRate(sr float64) {
	f.sr = sr
	f.cutoff = 0
}

func (f *Biquad) Reset() {
	f.x1, f.x2, f.y1, f.y2 = 0, 0, 0, 0
}

func (f *Biquad) Next(x, cutoff, q float64) float64 {
	if cutoff != f.cutoff || q != f.q {
		f.design(cutoff, q)
	}
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}

func (f *Biquad) design(cutoff, q float64) {
	f.cutoff, f.q = cutoff, q
	nyquist := f.sr / 2
	cutoff = math.Max(10, math.Min(cutoff, nyquist*0.99))
	if q <= 0 {
		q = math.Sqrt2 / 2
	}

	w := 2 * math.Pi * cutoff / f.sr
	cos, alpha := math.Cos(w), math.Sin(w)/(2*q)
	a0 := 1 + alpha
	switch f.Mode {
	case HighPass:
		f.b0 = (1 + cos) / 2 / a0
		f.b1 = -(1 + cos) / a0
	default:
		f.b0 = (1 - cos) / 2 / a0
		f.b1 = (1 - cos) / a0
	}
	f.b2 = f.b0
	f.a1 = -2 * cos / a0
	f.a2 = (1 - alpha) / a0
}
