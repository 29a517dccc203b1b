package generate

import (
	"math/rand"
	"sort"

	"github.com/jsphweid/tonegen/model"
)

// chordsLine sustains each measure's three members, each in a random octave
// of the register.
func chordsLine(rng *rand.Rand, piece *Piece, reg model.Register) []model.ToneEvent {
	var res []model.ToneEvent
	velocity := piece.Dynamic.Velocity()
	length := piece.Seconds(float64(piece.BeatsPerMeasure))
	for m, c := range piece.Measures() {
		start := piece.Seconds(float64(m * piece.BeatsPerMeasure))
		for i := 0; i < 3; i++ {
			octaves := c.Member(i).Octaves(reg.Low, reg.High)
			res = append(res, model.MidiTone(start, length, octaves[rng.Intn(len(octaves))], velocity))
		}
	}
	return res
}

// harmonyLine holds the voiced triad for the first half of a measure, then
// arpeggiates down through it. With the voice's extension probability a 6th
// or 7th is sustained above the triad.
func harmonyLine(rng *rand.Rand, piece *Piece, v model.Voice) []model.ToneEvent {
	var res []model.ToneEvent
	velocity := piece.Dynamic.Velocity()
	beats := float64(piece.BeatsPerMeasure)
	hold := beats
	if piece.BeatsPerMeasure >= 2 {
		hold = beats / 2
	}
	for m, c := range piece.Measures() {
		measureStart := float64(m * piece.BeatsPerMeasure)
		voiced := c.Pitches()
		shift := c.Member(int(c.Inversion)).FitRange(v.Register.Low, v.Register.High) - voiced[0]
		for i := range voiced {
			voiced[i] += shift
		}

		ext := 0
		if rng.Float64() < v.Extension {
			degree := c.Degree + 5
			if rng.Intn(2) == 0 {
				degree = c.Degree + 6
			}
			ext = piece.Key.DegreePitch(degree)
			for ext <= voiced[2] {
				ext += 12
			}
			for ext-12 > voiced[2] {
				ext -= 12
			}
		}
		voiced, ext = fitVoicing(voiced, ext, v.Register)

		for _, p := range voiced {
			res = append(res, model.MidiTone(piece.Seconds(measureStart), piece.Seconds(hold), p, velocity))
		}
		if ext > 0 {
			res = append(res, model.MidiTone(piece.Seconds(measureStart), piece.Seconds(hold), ext, velocity))
		}

		if hold < beats {
			each := (beats - hold) / 3
			for i := 0; i < 3; i++ {
				start := measureStart + hold + float64(i)*each
				res = append(res, model.MidiTone(piece.Seconds(start), piece.Seconds(each), voiced[2-i], velocity))
			}
		}
	}
	return res
}

// fitVoicing drops the voicing by octaves while its top is above the
// register and its bass can follow. Whatever still sticks out folds down
// an octave on its own. An ext of 0 means no extension.
func fitVoicing(voiced [3]int, ext int, reg model.Register) ([3]int, int) {
	top := func() int { return max(voiced[2], ext) }
	for top() > reg.High && voiced[0]-12 >= reg.Low {
		for i := range voiced {
			voiced[i] -= 12
		}
		if ext > 0 {
			ext -= 12
		}
	}
	for i := range voiced {
		for voiced[i] > reg.High {
			voiced[i] -= 12
		}
	}
	sort.Ints(voiced[:])
	for ext > reg.High {
		ext -= 12
	}
	return voiced, ext
}

// bassLine sustains each chord root for the whole measure.
func bassLine(piece *Piece, reg model.Register) []model.ToneEvent {
	var res []model.ToneEvent
	velocity := piece.Dynamic.Velocity()
	length := piece.Seconds(float64(piece.BeatsPerMeasure))
	for m, c := range piece.Measures() {
		start := piece.Seconds(float64(m * piece.BeatsPerMeasure))
		res = append(res, model.MidiTone(start, length, c.Member(0).FitRange(reg.Low, reg.High), velocity))
	}
	return res
}
