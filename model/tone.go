package model

import "math"

// ToneEvent is one timed note. Pitch is in Hz and Velocity in 0..1; a pitch
// of zero or less is a rest.
type ToneEvent struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Pitch    float64 `json:"pitch"`
	Velocity float64 `json:"velocity"`
}

func NewTone(start, duration, pitch, velocity float64) ToneEvent {
	return ToneEvent{Start: start, Duration: duration, Pitch: pitch, Velocity: velocity}
}

// MidiTone converts a MIDI note number and a 0-127 velocity.
func MidiTone(start, duration float64, note int, velocity float64) ToneEvent {
	return ToneEvent{
		Start:    start,
		Duration: duration,
		Pitch:    440 * math.Exp2((float64(note)-69)/12),
		Velocity: velocity / 127,
	}
}

// Rest advances a timeline without sounding.
func Rest(start, duration float64) ToneEvent {
	return ToneEvent{Start: start, Duration: duration}
}

func (t ToneEvent) IsRest() bool {
	return t.Pitch <= 0
}

func (t ToneEvent) End() float64 {
	return t.Start + t.Duration
}

// Note returns the nearest MIDI note number of the pitch.
func (t ToneEvent) Note() int {
	return int(math.Round(69 + 12*math.Log2(t.Pitch/440)))
}

// Track is a named tone stream, one per voice.
type Track struct {
	Name  string      `json:"name"`
	Tones []ToneEvent `json:"tones"`
}
