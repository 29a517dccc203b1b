// Package render drives a finished sound graph: into a beep stream, a WAV
// file or the speaker.
package render

import (
	"errors"
	"math"
)

// ErrRenderAborted wraps every file or device failure. Renders are never
// retried.
var ErrRenderAborted = errors.New("render aborted")

// Source is a stereo signal pulled one sample at a time. SetSampleRate and
// Allocate run before the first Next; Next must not allocate.
type Source interface {
	SetSampleRate(rate float64)
	Allocate()
	Reset()
	Next() (l, r float64)
}

// Sound is a source plus how long it lasts, release tails included.
type Sound struct {
	Node     Source
	Duration float64
	// Polyphony is the largest number of notes sounding at once.
	Polyphony int
}

// Samples is the length of the sound at rate, rounded up.
func (s Sound) Samples(rate int) int {
	return int(math.Ceil(s.Duration * float64(rate)))
}

// Prepare readies the source for playback from the start.
func (s Sound) Prepare(rate int) {
	s.Node.SetSampleRate(float64(rate))
	s.Node.Allocate()
	s.Node.Reset()
}

type silence struct{}

func (silence) SetSampleRate(float64) {}
func (silence) Allocate()             {}
func (silence) Reset()                {}
func (silence) Next() (l, r float64)  { return 0, 0 }

// Silence lasts zero seconds.
func Silence() Sound {
	return Sound{Node: silence{}}
}
