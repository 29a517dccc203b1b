package synth

import "github.com/jsphweid/tonegen/graph"

// Parameter is a control value that may move per sample: Const, Enveloped
// or KeyTracked.
type Parameter interface {
	param()
}

type Const float64

// Enveloped sweeps from Min to Max following its own envelope.
type Enveloped struct {
	Envelope Envelope
	Min, Max float64
}

// KeyTracked maps the note frequency linearly from [KeyMin, KeyMax] onto
// [Min, Max], clamping outside the key range.
type KeyTracked struct {
	Min, Max       float64
	KeyMin, KeyMax float64
}

func (Const) param()      {}
func (Enveloped) param()  {}
func (KeyTracked) param() {}

type paramNode interface {
	setSampleRate(sr float64)
	reset()
	next(c graph.Control) float64
}

func instantiateParam(p Parameter) paramNode {
	switch p := p.(type) {
	case Enveloped:
		e := p.Envelope
		return &envelopedParam{spec: p, env: graph.NewADSR(e.Attack, e.Decay, e.Sustain, e.Release)}
	case KeyTracked:
		return keyTrackedParam(p)
	case Const:
		return constParam(p)
	}
	return constParam(0)
}

type constParam float64

func (constParam) setSampleRate(float64)        {}
func (constParam) reset()                       {}
func (p constParam) next(graph.Control) float64 { return float64(p) }

type envelopedParam struct {
	spec Enveloped
	env  *graph.ADSR
}

func (p *envelopedParam) setSampleRate(sr float64) { p.env.SetSampleRate(sr) }
func (p *envelopedParam) reset()                   { p.env.Reset() }

func (p *envelopedParam) next(c graph.Control) float64 {
	return p.spec.Min + (p.spec.Max-p.spec.Min)*p.env.Next(c.Gate)
}

type keyTrackedParam KeyTracked

func (keyTrackedParam) setSampleRate(float64) {}
func (keyTrackedParam) reset()                {}

func (p keyTrackedParam) next(c graph.Control) float64 {
	if p.KeyMax <= p.KeyMin {
		return p.Min
	}
	t := (c.Freq - p.KeyMin) / (p.KeyMax - p.KeyMin)
	t = max(0, min(1, t))
	return p.Min + t*(p.Max-p.Min)
}
