package generate

import (
	"math/rand"

	"github.com/jsphweid/tonegen/chord"
	"github.com/jsphweid/tonegen/model"
	"github.com/jsphweid/tonegen/pitch"
	"github.com/jsphweid/tonegen/rhythm"
)

// passingLine is a melody whose ornamental slots are filled with scale steps
// between the surrounding structural notes. Every note stays in the key.
func passingLine(rng *rand.Rand, piece *Piece, reg model.Register) ([]model.ToneEvent, error) {
	var (
		res     []model.ToneEvent
		prev    *int
		lastStr *int
	)
	key := piece.Key
	velocity := piece.Dynamic.Velocity()
	for m, c := range piece.Measures() {
		pattern, err := rhythm.Choose(rng, piece.BeatsPerMeasure)
		if err != nil {
			return nil, err
		}
		n := len(pattern.Durations)
		degrees := make([]int, n)

		// structural slots first so ornaments can look right
		for i, orn := range pattern.Ornamental {
			if orn {
				continue
			}
			candidates := make([]int, melodyCandidates)
			for j := range candidates {
				candidates[j] = key.DegreePitch(chordDegree(rng, key, c, reg))
			}
			note := candidates[0]
			if lastStr != nil {
				note = Nearest(*lastStr, candidates)
			}
			degrees[i], _ = key.DegreeOf(note)
			lastStr = &note
		}

		for i, orn := range pattern.Ornamental {
			if !orn {
				continue
			}
			var left, right *int
			if i > 0 {
				left = &degrees[i-1]
			} else if prev != nil {
				left = prev
			}
			if i+1 < n && !pattern.Ornamental[i+1] {
				right = &degrees[i+1]
			}
			degrees[i] = resolveOrnament(rng, key, c, reg, left, right)
		}

		last := degrees[n-1]
		prev = &last

		measureStart := float64(m * piece.BeatsPerMeasure)
		onsets := pattern.Onsets()
		for i, d := range pattern.Durations {
			res = append(res, model.MidiTone(
				piece.Seconds(measureStart+onsets[i]), piece.Seconds(d), key.DegreePitch(degrees[i]), velocity))
		}
	}
	return res, nil
}

// chordDegree returns an absolute degree of a random chord member in a
// random octave inside the register.
func chordDegree(rng *rand.Rand, key pitch.Key, c chord.Chord, reg model.Register) int {
	base := key.FitDegree(c.Degrees()[rng.Intn(3)], reg.Low, reg.High)
	options := []int{base}
	for d := base + 7; key.DegreePitch(d) <= reg.High; d += 7 {
		options = append(options, d)
	}
	for d := base - 7; key.DegreePitch(d) >= reg.Low; d -= 7 {
		options = append(options, d)
	}
	return options[rng.Intn(len(options))]
}

// resolveOrnament fills an ornamental slot. With both neighbours it picks a
// degree strictly between them, or steps off one of them when they are
// adjacent. With one neighbour it steps off it. With none it falls back to a
// chord tone.
func resolveOrnament(rng *rand.Rand, key pitch.Key, c chord.Chord, reg model.Register, left, right *int) int {
	switch {
	case left != nil && right != nil:
		lo, hi := *left, *right
		if lo > hi {
			lo, hi = hi, lo
		}
		if hi-lo > 1 {
			return lo + 1 + rng.Intn(hi-lo-1)
		}
		from := lo
		if rng.Intn(2) == 0 {
			from = hi
		}
		return step(rng, key, reg, from)
	case left != nil:
		return step(rng, key, reg, *left)
	case right != nil:
		return step(rng, key, reg, *right)
	}
	return chordDegree(rng, key, c, reg)
}

// step moves one scale degree in a random direction, turning around at the
// register edge.
func step(rng *rand.Rand, key pitch.Key, reg model.Register, from int) int {
	dir := 1
	if rng.Intn(2) == 0 {
		dir = -1
	}
	next := from + dir
	if p := key.DegreePitch(next); p < reg.Low || p > reg.High {
		next = from - dir
	}
	return next
}
