// Package mix sums finished sounds into one.
package mix

import "github.com/jsphweid/tonegen/render"

// Bus sums sounds pairwise into a balanced tree. The result lasts as long
// as the longest input; an empty bus is silent and zero length.
func Bus(sounds ...render.Sound) render.Sound {
	switch len(sounds) {
	case 0:
		return render.Silence()
	case 1:
		return sounds[0]
	}
	mid := len(sounds) / 2
	a, b := Bus(sounds[:mid]...), Bus(sounds[mid:]...)
	return render.Sound{
		Node:      &sum{a: a.Node, b: b.Node},
		Duration:  max(a.Duration, b.Duration),
		Polyphony: a.Polyphony + b.Polyphony,
	}
}

type sum struct {
	a, b render.Source
}

func (s *sum) SetSampleRate(rate float64) {
	s.a.SetSampleRate(rate)
	s.b.SetSampleRate(rate)
}

func (s *sum) Allocate() {
	s.a.Allocate()
	s.b.Allocate()
}

func (s *sum) Reset() {
	s.a.Reset()
	s.b.Reset()
}

func (s *sum) Next() (l, r float64) {
	al, ar := s.a.Next()
	bl, br := s.b.Next()
	return al + bl, ar + br
}
