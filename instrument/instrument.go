// Package instrument schedules a tone stream onto fresh synth graphs and
// exposes the result as one stereo source.
package instrument

import (
	"math"
	"sort"

	"github.com/jsphweid/tonegen/constants"
	"github.com/jsphweid/tonegen/graph"
	"github.com/jsphweid/tonegen/model"
	"github.com/jsphweid/tonegen/render"
	"github.com/jsphweid/tonegen/synth"
	"go.uber.org/zap"
)

type Sound = render.Sound

type options struct {
	logger *zap.Logger
	timer  *graph.Timer
}

type Option func(*options)

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithTimer shares t with observers such as a progress display. The
// instrument is its only writer.
func WithTimer(t *graph.Timer) Option {
	return func(o *options) {
		o.timer = t
	}
}

// Instrument plays tones through one synth spec. Each sounding note gets
// its own graph, spanning [start, start+duration+release).
type Instrument struct {
	spec    synth.Spec
	release float64
	tones   []model.ToneEvent

	duration  float64
	restEnd   float64
	polyphony int

	logger *zap.Logger
	timer  *graph.Timer

	sr     float64
	notes  []note
	pool   []graph.Node
	free   []int
	active []int
	next   int
	pos    int64
}

type note struct {
	start, end int64
	fade       float64
	gateOff    float64
	freq       float64
	velocity   float64
	slot       int
}

// New validates tones and sorts the sounding ones by start. Rests only move
// RestEnd.
func New(spec synth.Spec, tones []model.ToneEvent, opts ...Option) (*Instrument, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.timer == nil {
		o.timer = graph.NewTimer()
	}

	i := &Instrument{
		spec:    spec,
		release: synth.ReleaseTime(spec),
		logger:  o.logger,
		timer:   o.timer,
		sr:      float64(constants.DefaultSampleRate),
	}
	for n, t := range tones {
		if bad(t.Start) || bad(t.Duration) || math.IsNaN(t.Pitch) || math.IsNaN(t.Velocity) {
			return nil, model.NewConfigError("tones", "tone %v has an invalid start or duration", n)
		}
		if t.IsRest() {
			i.restEnd = math.Max(i.restEnd, t.End())
			continue
		}
		i.tones = append(i.tones, t)
		i.duration = math.Max(i.duration, t.End()+i.release)
	}
	sort.SliceStable(i.tones, func(a, b int) bool {
		return i.tones[a].Start < i.tones[b].Start
	})
	i.polyphony = peakOverlap(i.tones, i.release)

	i.logger.Debug("instrument ready",
		zap.Int("notes", len(i.tones)),
		zap.Float64("duration", i.duration),
		zap.Int("polyphony", i.polyphony))
	return i, nil
}

// FromVoice builds the voice's preset and schedules tones on it.
func FromVoice(v model.Voice, tones []model.ToneEvent, opts ...Option) (*Instrument, error) {
	spec, err := synth.ForVoice(v)
	if err != nil {
		return nil, err
	}
	return New(spec, tones, opts...)
}

func bad(x float64) bool {
	return x < 0 || math.IsNaN(x) || math.IsInf(x, 0)
}

// Duration is the latest onset+duration+release over sounding notes, zero
// when there are none.
func (i *Instrument) Duration() float64 {
	return i.duration
}

// RestEnd is the end of the last rest, which never extends Duration.
func (i *Instrument) RestEnd() float64 {
	return i.restEnd
}

// Polyphony is the peak number of overlapping note spans. It is not
// capped.
func (i *Instrument) Polyphony() int {
	return i.polyphony
}

func (i *Instrument) Timer() *graph.Timer {
	return i.timer
}

func (i *Instrument) Sound() Sound {
	return Sound{Node: i, Duration: i.duration, Polyphony: i.polyphony}
}

func peakOverlap(tones []model.ToneEvent, release float64) int {
	type edge struct {
		at    float64
		delta int
	}
	edges := make([]edge, 0, 2*len(tones))
	for _, t := range tones {
		edges = append(edges, edge{t.Start, 1}, edge{t.End() + release, -1})
	}
	sort.Slice(edges, func(a, b int) bool {
		if edges[a].at == edges[b].at {
			return edges[a].delta < edges[b].delta
		}
		return edges[a].at < edges[b].at
	})
	var cur, peak int
	for _, e := range edges {
		cur += e.delta
		peak = max(peak, cur)
	}
	return peak
}
