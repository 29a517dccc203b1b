package midi

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/jsphweid/tonegen/constants"
	"github.com/jsphweid/tonegen/model"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF
	var err error

	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)

	if err != nil {
		return &blank, fmt.Errorf("reading midi file: %w", err)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))

	if err != nil {
		return &blank, fmt.Errorf("parsing midi file: %w", err)
	}

	return res, nil
}

type noteEvent struct {
	tick     uint32
	off      bool
	key      uint8
	velocity uint8
}

func toTicks(seconds float64, bpm int) uint32 {
	return uint32(math.Round(seconds * float64(bpm) / 60 * constants.TicksPerQuarter))
}

// WriteTones exports one track per voice at a fixed tempo. Rests are
// dropped; the timing they imply survives in the deltas.
func WriteTones(path string, tracks []model.Track, bpm int) error {
	s := buildSMF(tracks, bpm)
	if err := s.WriteFile(path); err != nil {
		return fmt.Errorf("writing %v: %w", path, err)
	}
	return nil
}

func buildSMF(tracks []model.Track, bpm int) *smf.SMF {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(constants.TicksPerQuarter)

	var tempo smf.Track
	tempo.Add(0, smf.MetaTempo(float64(bpm)))
	tempo.Close(0)
	s.Add(tempo)

	for n, t := range tracks {
		channel := uint8(n % 16)
		var events []noteEvent
		for _, tone := range t.Tones {
			if tone.IsRest() {
				continue
			}
			key := uint8(max(0, min(127, tone.Note())))
			velocity := uint8(max(1, min(127, math.Round(tone.Velocity*127))))
			events = append(events,
				noteEvent{tick: toTicks(tone.Start, bpm), key: key, velocity: velocity},
				noteEvent{tick: toTicks(tone.End(), bpm), off: true, key: key})
		}
		// offs before ons so repeated notes retrigger
		sort.SliceStable(events, func(i, j int) bool {
			if events[i].tick != events[j].tick {
				return events[i].tick < events[j].tick
			}
			return events[i].off && !events[j].off
		})

		var tr smf.Track
		tr.Add(0, smf.MetaTrackSequenceName(t.Name))
		var last uint32
		for _, e := range events {
			if e.off {
				tr.Add(e.tick-last, midi.NoteOff(channel, e.key))
			} else {
				tr.Add(e.tick-last, midi.NoteOn(channel, e.key, e.velocity))
			}
			last = e.tick
		}
		tr.Close(0)
		s.Add(tr)
	}
	return s
}

type pressed struct {
	start    int64
	velocity uint8
}

// ReadTones imports every track of a MIDI file as a tone stream. Times come
// from the file's own tempo map.
func ReadTones(path string) ([]model.Track, error) {
	s, err := ReadMidiFile(path)
	if err != nil {
		return nil, err
	}

	var res []model.Track
	for n, events := range s.Tracks {
		track := model.Track{Name: fmt.Sprintf("track %v", n)}
		open := make(map[uint8]pressed)
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			absTime := s.TimeAt(absTicks)
			var channel, key, velocity uint8
			var name string
			switch {
			case event.Message.GetMetaTrackName(&name):
				track.Name = name
			case event.Message.GetNoteStart(&channel, &key, &velocity):
				open[key] = pressed{start: absTime, velocity: velocity}
			case event.Message.GetNoteEnd(&channel, &key):
				p, ok := open[key]
				if !ok {
					continue
				}
				delete(open, key)
				start := float64(p.start) / 1e6
				track.Tones = append(track.Tones, model.MidiTone(
					start, float64(absTime)/1e6-start, int(key), float64(p.velocity)))
			}
		}
		if len(track.Tones) == 0 {
			continue
		}
		sort.SliceStable(track.Tones, func(i, j int) bool {
			return track.Tones[i].Start < track.Tones[j].Start
		})
		res = append(res, track)
	}
	return res, nil
}
