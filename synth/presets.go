package synth

import (
	"sort"
	"strings"

	"github.com/jsphweid/tonegen/graph"
	"github.com/jsphweid/tonegen/model"
)

func Keys() Spec {
	return Filtered{
		Source: Simple{
			Mix:       WaveMix{Saw: 0.4, Triangle: 0.6},
			Harmonics: []float64{1, 0.3},
			Envelope:  Envelope{Attack: 0.005, Decay: 0.4, Sustain: 0.4, Release: 0.3},
		},
		Mode:      graph.LowPass,
		Cutoff:    Enveloped{Envelope: Envelope{Attack: 0.005, Decay: 0.5, Sustain: 0.2, Release: 0.3}, Min: 600, Max: 4000},
		Resonance: 0.8,
	}
}

func Strings() Spec {
	return Vibrato{
		Source: Filtered{
			Source: Simple{
				Mix:       WaveMix{Saw: 1},
				Harmonics: []float64{1, 0.5, 0.25},
				Envelope:  Envelope{Attack: 0.15, Decay: 0.2, Sustain: 0.8, Release: 0.5},
			},
			Mode:   graph.LowPass,
			Cutoff: KeyTracked{Min: 1500, Max: 6000, KeyMin: 100, KeyMax: 1000},
		},
		Rate:  5.5,
		Depth: Enveloped{Envelope: Envelope{Attack: 0.6, Sustain: 1, Release: 0.5}, Min: 0, Max: 0.15},
	}
}

func Pad() Spec {
	return Layer{Layers: []Spec{
		Simple{
			Mix:      WaveMix{Sine: 1},
			Envelope: Envelope{Attack: 0.6, Decay: 0.5, Sustain: 0.7, Release: 1.2},
		},
		Vibrato{
			Source: Simple{
				Mix:       WaveMix{Triangle: 0.5},
				Harmonics: []float64{0, 1},
				Envelope:  Envelope{Attack: 0.9, Decay: 0.5, Sustain: 0.6, Release: 1.5},
			},
			Rate:  0.3,
			Depth: Const(0.08),
		},
	}, Weights: []float64{0.7, 0.5}}
}

func Saw() Spec {
	return Simple{
		Mix:      WaveMix{Saw: 1},
		Envelope: Envelope{Attack: 0.01, Decay: 0.1, Sustain: 0.7, Release: 0.2},
	}
}

// Lead is a pulse wave behind a separate amplitude envelope.
func Lead() Spec {
	return Shaped{
		Source: Simple{
			Mix:      WaveMix{Pulse: 0.6, Saw: 0.2},
			Envelope: Envelope{Sustain: 1, Release: 0.05},
		},
		Envelope: Envelope{Attack: 0.02, Decay: 0.3, Sustain: 0.6, Release: 0.25},
	}
}

func VibratoSine() Spec {
	return Vibrato{
		Source: Simple{
			Mix:      WaveMix{Sine: 1},
			Envelope: Envelope{Attack: 0.05, Decay: 0.1, Sustain: 0.8, Release: 0.3},
		},
		Rate:  6,
		Depth: Const(0.3),
	}
}

func Bass() Spec {
	return Filtered{
		Source: Simple{
			Mix:       WaveMix{Square: 0.5, Sine: 0.5},
			Harmonics: []float64{1, 0.2},
			Envelope:  Envelope{Attack: 0.01, Decay: 0.2, Sustain: 0.6, Release: 0.15},
		},
		Mode:   graph.LowPass,
		Cutoff: Const(900),
	}
}

func Drum() Spec {
	return Filtered{
		Source: Simple{
			Mix:      WaveMix{Noise: 0.7, Sine: 0.3},
			Envelope: Envelope{Attack: 0.001, Decay: 0.08, Sustain: 0, Release: 0.05},
		},
		Mode:   graph.LowPass,
		Cutoff: Enveloped{Envelope: Envelope{Attack: 0.001, Decay: 0.05, Sustain: 0.1, Release: 0.05}, Min: 200, Max: 5000},
	}
}

var presets = map[string]func() Spec{
	"keys":         Keys,
	"strings":      Strings,
	"pad":          Pad,
	"saw":          Saw,
	"lead":         Lead,
	"vibrato-sine": VibratoSine,
	"bass":         Bass,
	"drum":         Drum,
}

// Preset looks up a named instrument.
func Preset(name string) (Spec, error) {
	p, ok := presets[name]
	if !ok {
		return nil, model.NewConfigError("synth", "unknown preset %q, want one of %v", name, strings.Join(PresetNames(), ", "))
	}
	return p(), nil
}

func PresetNames() []string {
	var res []string
	for name := range presets {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// ForVoice wraps the voice's preset in a Master stage carrying its volume
// and pan.
func ForVoice(v model.Voice) (Spec, error) {
	name := v.Synth
	if name == "" {
		name = "saw"
	}
	source, err := Preset(name)
	if err != nil {
		return nil, err
	}
	volume := v.Volume
	if volume == 0 {
		volume = 0.5
	}
	return Master{Source: source, Pan: v.Pan, Reverb: 0.15, Volume: volume}, nil
}
