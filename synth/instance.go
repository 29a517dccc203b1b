package synth

import (
	"math"

	"github.com/jsphweid/tonegen/graph"
)

// Instantiate builds a fresh node for one note. Every call returns
// independent state.
func Instantiate(s Spec) graph.Node {
	switch s := s.(type) {
	case Simple:
		return newSimple(s)
	case Shaped:
		e := s.Envelope
		return &shaped{source: Instantiate(s.Source), env: graph.NewADSR(e.Attack, e.Decay, e.Sustain, e.Release)}
	case Filtered:
		return &filtered{
			source:    Instantiate(s.Source),
			cutoff:    instantiateParam(s.Cutoff),
			resonance: s.Resonance,
			left:      graph.NewBiquad(s.Mode),
			right:     graph.NewBiquad(s.Mode),
		}
	case Vibrato:
		depth := s.Depth
		if depth == nil {
			depth = Const(0)
		}
		lfo := graph.NewOsc(graph.Sine)
		return &vibrato{source: Instantiate(s.Source), lfo: lfo, rate: s.Rate, depth: instantiateParam(depth)}
	case Layer:
		l := &layer{}
		for n, spec := range s.Layers {
			weight := 1.0
			if n < len(s.Weights) {
				weight = s.Weights[n]
			}
			l.layers = append(l.layers, Instantiate(spec))
			l.weights = append(l.weights, weight)
		}
		return l
	case Master:
		return &master{
			source: Instantiate(s.Source),
			reverb: graph.NewReverb(0.6, 0.4),
			spec:   s,
		}
	}
	return silence{}
}

type silence struct{}

func (silence) SetSampleRate(float64)          {}
func (silence) Allocate()                      {}
func (silence) Reset()                         {}
func (silence) Tick(graph.Control) graph.Frame { return graph.Frame{} }

type partial struct {
	osc   *graph.Osc
	level float64
	ratio float64
}

type simple struct {
	partials []partial
	env      *graph.ADSR
	norm     float64
}

func newSimple(s Simple) *simple {
	harmonics := s.Harmonics
	if len(harmonics) == 0 {
		harmonics = []float64{1}
	}
	mix := []struct {
		wave  graph.Waveform
		level float64
	}{
		{graph.Sine, s.Mix.Sine},
		{graph.Saw, s.Mix.Saw},
		{graph.Square, s.Mix.Square},
		{graph.Triangle, s.Mix.Triangle},
		{graph.Pulse, s.Mix.Pulse},
		{graph.Noise, s.Mix.Noise},
	}

	n := &simple{env: graph.NewADSR(s.Envelope.Attack, s.Envelope.Decay, s.Envelope.Sustain, s.Envelope.Release)}
	var total float64
	for h, hl := range harmonics {
		for _, m := range mix {
			if m.level == 0 || hl == 0 {
				continue
			}
			n.partials = append(n.partials, partial{osc: graph.NewOsc(m.wave), level: m.level * hl, ratio: float64(h + 1)})
			total += math.Abs(m.level * hl)
		}
	}
	n.norm = 1
	if total > 1 {
		n.norm = 1 / total
	}
	return n
}

func (n *simple) SetSampleRate(sr float64) {
	for _, p := range n.partials {
		p.osc.SetSampleRate(sr)
	}
	n.env.SetSampleRate(sr)
}

func (n *simple) Allocate() {}

func (n *simple) Reset() {
	for _, p := range n.partials {
		p.osc.Reset()
	}
	n.env.Reset()
}

func (n *simple) Tick(c graph.Control) graph.Frame {
	var sum float64
	for _, p := range n.partials {
		sum += p.level * p.osc.Next(c.Freq*p.ratio)
	}
	return graph.Mono(sum * n.norm * n.env.Next(c.Gate) * c.Velocity)
}

type filtered struct {
	source      graph.Node
	cutoff      paramNode
	resonance   float64
	left, right *graph.Biquad
}

func (n *filtered) SetSampleRate(sr float64) {
	n.source.SetSampleRate(sr)
	n.cutoff.setSampleRate(sr)
	n.left.SetSampleRate(sr)
	n.right.SetSampleRate(sr)
}

func (n *filtered) Allocate() {
	n.source.Allocate()
}

func (n *filtered) Reset() {
	n.source.Reset()
	n.cutoff.reset()
	n.left.Reset()
	n.right.Reset()
}

func (n *filtered) Tick(c graph.Control) graph.Frame {
	in := n.source.Tick(c)
	cutoff := n.cutoff.next(c)
	return graph.Frame{
		L: n.left.Next(in.L, cutoff, n.resonance),
		R: n.right.Next(in.R, cutoff, n.resonance),
	}
}

type shaped struct {
	source graph.Node
	env    *graph.ADSR
}

func (n *shaped) SetSampleRate(sr float64) {
	n.source.SetSampleRate(sr)
	n.env.SetSampleRate(sr)
}

func (n *shaped) Allocate() {
	n.source.Allocate()
}

func (n *shaped) Reset() {
	n.source.Reset()
	n.env.Reset()
}

func (n *shaped) Tick(c graph.Control) graph.Frame {
	return n.source.Tick(c).Scale(n.env.Next(c.Gate))
}

type vibrato struct {
	source graph.Node
	lfo    *graph.Osc
	rate   float64
	depth  paramNode
}

func (n *vibrato) SetSampleRate(sr float64) {
	n.source.SetSampleRate(sr)
	n.lfo.SetSampleRate(sr)
	n.depth.setSampleRate(sr)
}

func (n *vibrato) Allocate() {
	n.source.Allocate()
}

func (n *vibrato) Reset() {
	n.source.Reset()
	n.lfo.Reset()
	n.depth.reset()
}

func (n *vibrato) Tick(c graph.Control) graph.Frame {
	depth := n.depth.next(c)
	c.Freq *= math.Exp2(depth * n.lfo.Next(n.rate) / 12)
	return n.source.Tick(c)
}

type layer struct {
	layers  []graph.Node
	weights []float64
}

func (n *layer) SetSampleRate(sr float64) {
	for _, l := range n.layers {
		l.SetSampleRate(sr)
	}
}

func (n *layer) Allocate() {
	for _, l := range n.layers {
		l.Allocate()
	}
}

func (n *layer) Reset() {
	for _, l := range n.layers {
		l.Reset()
	}
}

func (n *layer) Tick(c graph.Control) graph.Frame {
	var res graph.Frame
	for i, l := range n.layers {
		res = res.Add(l.Tick(c).Scale(n.weights[i]))
	}
	return res
}

type master struct {
	source graph.Node
	reverb *graph.Reverb
	spec   Master
}

func (n *master) SetSampleRate(sr float64) {
	n.source.SetSampleRate(sr)
	n.reverb.SetSampleRate(sr)
}

func (n *master) Allocate() {
	n.source.Allocate()
	if n.spec.Reverb > 0 {
		n.reverb.Allocate()
	}
}

func (n *master) Reset() {
	n.source.Reset()
	n.reverb.Reset()
}

func (n *master) Tick(c graph.Control) graph.Frame {
	in := n.source.Tick(c)
	out := graph.Pan((in.L+in.R)/2, n.spec.Pan)
	if n.spec.Reverb > 0 {
		out = out.Scale(1 - n.spec.Reverb).Add(n.reverb.Next(out).Scale(n.spec.Reverb))
	}
	return out.Scale(n.spec.Volume)
}
