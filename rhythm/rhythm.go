package rhythm

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"

	"github.com/jsphweid/tonegen/model"
)

// Pattern is a sequence of note lengths in beats that fills a measure.
type Pattern struct {
	Durations []float64

	// Ornamental marks slots shorter than a beat that start off the beat.
	// Generators may substitute passing tones there.
	Ornamental []bool
}

func newPattern(durations []float64) Pattern {
	p := Pattern{Durations: durations, Ornamental: make([]bool, len(durations))}
	var onset float64
	for i, d := range durations {
		_, frac := math.Modf(onset)
		p.Ornamental[i] = d < 1 && frac > 1e-9
		onset += d
	}
	return p
}

func (p Pattern) Beats() float64 {
	var sum float64
	for _, d := range p.Durations {
		sum += d
	}
	return sum
}

// Onsets returns the start of every slot in beats.
func (p Pattern) Onsets() []float64 {
	res := make([]float64, len(p.Durations))
	var onset float64
	for i, d := range p.Durations {
		res[i] = onset
		onset += d
	}
	return res
}

func (p Pattern) key() string {
	parts := make([]string, len(p.Durations))
	for i, d := range p.Durations {
		parts[i] = fmt.Sprintf("%g", d)
	}
	return strings.Join(parts, ",")
}

const MaxBeats = 4

var (
	library     [MaxBeats + 1][]Pattern
	libraryOnce sync.Once
)

func oneBeat() [][]float64 {
	return [][]float64{{1}, {0.5, 0.5}}
}

func twoBeats() [][]float64 {
	return [][]float64{
		{2},
		{1.5, 0.5},
		{0.5, 1.5},
		{0.5, 1, 0.5},
	}
}

func concat(a, b [][]float64) [][]float64 {
	var res [][]float64
	for _, x := range a {
		for _, y := range b {
			joined := make([]float64, 0, len(x)+len(y))
			joined = append(joined, x...)
			res = append(res, append(joined, y...))
		}
	}
	return res
}

func build() {
	one := oneBeat()
	two := append(twoBeats(), concat(one, one)...)
	three := append([][]float64{{3}, {2.5, 0.5}, {1.5, 1.5}, {0.5, 2, 0.5}}, concat(one, two)...)
	three = append(three, concat(two, one)...)
	four := append([][]float64{{4}}, concat(two, two)...)
	four = append(four, concat(one, three)...)
	four = append(four, concat(three, one)...)

	for n, set := range [][][]float64{nil, one, two, three, four} {
		seen := make(map[string]bool)
		for _, durations := range set {
			p := newPattern(durations)
			if seen[p.key()] {
				continue
			}
			seen[p.key()] = true
			library[n] = append(library[n], p)
		}
	}
}

// PatternsFor returns every pattern spanning n beats. The slice is shared
// and must not be modified.
func PatternsFor(n int) ([]Pattern, error) {
	libraryOnce.Do(build)
	if n < 1 || n > MaxBeats || len(library[n]) == 0 {
		return nil, &model.ConfigError{
			Field:  "beats per measure",
			Reason: fmt.Sprintf("no rhythm patterns for %v beats (supported: 1-%v)", n, MaxBeats),
		}
	}
	return library[n], nil
}

// Choose picks one pattern for n beats uniformly at random.
func Choose(rng *rand.Rand, n int) (Pattern, error) {
	patterns, err := PatternsFor(n)
	if err != nil {
		return Pattern{}, err
	}
	return patterns[rng.Intn(len(patterns))], nil
}
