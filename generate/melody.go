package generate

import (
	"math/rand"

	"github.com/jsphweid/tonegen/chord"
	"github.com/jsphweid/tonegen/model"
	"github.com/jsphweid/tonegen/rhythm"
)

const melodyCandidates = 5

// Nearest picks the candidate closest to prev, skipping exact repeats unless
// every candidate repeats prev. Ties go to the earlier candidate.
// candidates must not be empty.
func Nearest(prev int, candidates []int) int {
	best, bestDist := candidates[0], -1
	for _, c := range candidates {
		d := abs(prev - c)
		if d == 0 {
			continue
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// chordTone picks a random member of c placed in a random octave of the
// register.
func chordTone(rng *rand.Rand, c chord.Chord, reg model.Register) int {
	octaves := c.Member(rng.Intn(3)).Octaves(reg.Low, reg.High)
	return octaves[rng.Intn(len(octaves))]
}

// melodyLine walks the measures picking, per rhythm slot, the chord tone
// nearest the previous note out of a handful of random candidates. The
// previous note carries over measure boundaries.
func melodyLine(rng *rand.Rand, piece *Piece, reg model.Register) ([]model.ToneEvent, error) {
	var (
		res     []model.ToneEvent
		prev    int
		hasPrev bool
	)
	velocity := piece.Dynamic.Velocity()
	for m, c := range piece.Measures() {
		pattern, err := rhythm.Choose(rng, piece.BeatsPerMeasure)
		if err != nil {
			return nil, err
		}
		measureStart := float64(m * piece.BeatsPerMeasure)
		onsets := pattern.Onsets()
		for i, d := range pattern.Durations {
			candidates := make([]int, melodyCandidates)
			for j := range candidates {
				candidates[j] = chordTone(rng, c, reg)
			}
			note := candidates[0]
			if hasPrev {
				note = Nearest(prev, candidates)
			}
			prev, hasPrev = note, true
			res = append(res, model.MidiTone(
				piece.Seconds(measureStart+onsets[i]), piece.Seconds(d), note, velocity))
		}
	}
	return res, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
