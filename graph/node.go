// Package graph holds the per-sample building blocks synth voices are made
// of. Nothing here allocates once Allocate has run.
package graph

// Control is the per-note input every node sees each sample.
type Control struct {
	Freq     float64
	Gate     float64
	Velocity float64
}

// Gated reports whether the note is held.
func (c Control) Gated() bool {
	return c.Gate > 0
}

type Frame struct {
	L, R float64
}

func Mono(v float64) Frame {
	return Frame{L: v, R: v}
}

func (f Frame) Add(o Frame) Frame {
	return Frame{L: f.L + o.L, R: f.R + o.R}
}

func (f Frame) Scale(g float64) Frame {
	return Frame{L: f.L * g, R: f.R * g}
}

// Node is an instantiated signal graph. SetSampleRate and Allocate happen
// before rendering; Tick runs once per sample on the audio path.
type Node interface {
	SetSampleRate(sr float64)
	Allocate()
	Reset()
	Tick(c Control) Frame
}
