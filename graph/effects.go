package graph

import "math"

// Pan spreads a mono sample with equal power; p runs from -1 (left) to 1.
func Pan(x, p float64) Frame {
	p = math.Max(-1, math.Min(1, p))
	angle := (p + 1) * math.Pi / 4
	return Frame{L: x * math.Cos(angle), R: x * math.Sin(angle)}
}

// comb and allpass lengths at 44.1kHz, after Freeverb
var (
	combTunings    = []int{1116, 1188, 1277, 1356}
	allpassTunings = []int{556, 441}
)

const stereoSpread = 23

type delay struct {
	buf []float64
	pos int
	// comb state
	store float64
}

func (d *delay) comb(x, feedback, damp float64) float64 {
	out := d.buf[d.pos]
	d.store = out*(1-damp) + d.store*damp
	d.buf[d.pos] = x + d.store*feedback
	d.pos = (d.pos + 1) % len(d.buf)
	return out
}

func (d *delay) allpass(x float64) float64 {
	buffered := d.buf[d.pos]
	d.buf[d.pos] = x + buffered*0.5
	d.pos = (d.pos + 1) % len(d.buf)
	return buffered - x
}

func (d *delay) clear() {
	for i := range d.buf {
		d.buf[i] = 0
	}
	d.pos, d.store = 0, 0
}

// Reverb is a small Freeverb-style stereo room. Delay lines are sized from
// the sample rate in Allocate.
type Reverb struct {
	RoomSize float64
	Damping  float64

	sr        float64
	combs     [2][]delay
	allpasses [2][]delay
}

func NewReverb(room, damping float64) *Reverb {
	return &Reverb{RoomSize: room, Damping: damping, sr: 44100}
}

func (r *Reverb) SetSampleRate(sr float64) {
	r.sr = sr
}

func (r *Reverb) Allocate() {
	scale := r.sr / 44100
	for ch := 0; ch < 2; ch++ {
		spread := ch * stereoSpread
		r.combs[ch] = make([]delay, len(combTunings))
		for i, n := range combTunings {
			r.combs[ch][i].buf = make([]float64, max(1, int(float64(n+spread)*scale)))
		}
		r.allpasses[ch] = make([]delay, len(allpassTunings))
		for i, n := range allpassTunings {
			r.allpasses[ch][i].buf = make([]float64, max(1, int(float64(n+spread)*scale)))
		}
	}
}

func (r *Reverb) Reset() {
	for ch := 0; ch < 2; ch++ {
		for i := range r.combs[ch] {
			r.combs[ch][i].clear()
		}
		for i := range r.allpasses[ch] {
			r.allpasses[ch][i].clear()
		}
	}
}

// Next returns only the wet signal.
func (r *Reverb) Next(in Frame) Frame {
	if r.combs[0] == nil {
		return Frame{}
	}
	feedback := 0.7 + 0.28*r.RoomSize
	x := (in.L + in.R) * 0.015
	var out [2]float64
	for ch := 0; ch < 2; ch++ {
		var sum float64
		for i := range r.combs[ch] {
			sum += r.combs[ch][i].comb(x, feedback, r.Damping)
		}
		for i := range r.allpasses[ch] {
			sum = r.allpasses[ch][i].allpass(sum)
		}
		out[ch] = sum
	}
	return Frame{L: out[0], R: out[1]}
}
