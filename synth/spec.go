// Package synth describes instruments as data and turns those descriptions
// into runnable graph nodes.
package synth

import "github.com/jsphweid/tonegen/graph"

// Spec is one of Simple, Shaped, Filtered, Vibrato, Layer or Master.
type Spec interface {
	spec()
}

type Envelope struct {
	Attack, Decay, Sustain, Release float64
}

// WaveMix weights the basic waveforms summed into one partial.
type WaveMix struct {
	Sine, Saw, Square, Triangle, Pulse, Noise float64
}

// Simple is a mix of waveforms repeated over harmonics, shaped by an ADSR.
type Simple struct {
	Mix WaveMix
	// Harmonics weights partials 1, 2, 3 and so on. Empty means the
	// fundamental alone.
	Harmonics []float64
	Envelope  Envelope
}

// Shaped multiplies its source by an envelope driven by the gate.
type Shaped struct {
	Source   Spec
	Envelope Envelope
}

type Filtered struct {
	Source    Spec
	Mode      graph.FilterMode
	Cutoff    Parameter
	Resonance float64
}

// Vibrato modulates the pitch of its source. Depth is in semitones and
// may ramp with an envelope.
type Vibrato struct {
	Source Spec
	Rate   float64
	Depth  Parameter
}

// Layer sums its children. Weights pairs with Layers; a missing weight is 1.
type Layer struct {
	Layers  []Spec
	Weights []float64
}

// Master is the final stage of a voice: pan, reverb send and volume.
type Master struct {
	Source Spec
	Pan    float64
	Reverb float64
	Volume float64
}

func (Simple) spec()   {}
func (Shaped) spec()   {}
func (Filtered) spec() {}
func (Vibrato) spec()  {}
func (Layer) spec()    {}
func (Master) spec()   {}

// ReleaseTime is how long a note keeps sounding after its gate closes.
func ReleaseTime(s Spec) float64 {
	switch s := s.(type) {
	case Simple:
		return s.Envelope.Release
	case Shaped:
		return max(s.Envelope.Release, ReleaseTime(s.Source))
	case Filtered:
		return ReleaseTime(s.Source)
	case Vibrato:
		return ReleaseTime(s.Source)
	case Layer:
		var res float64
		for _, l := range s.Layers {
			res = max(res, ReleaseTime(l))
		}
		return res
	case Master:
		return ReleaseTime(s.Source)
	}
	return 0
}
