package pitch

import "github.com/jsphweid/tonegen/model"

type PitchClass int

const (
	C PitchClass = iota
	Db
	D
	Eb
	E
	F
	Gb
	G
	Ab
	A
	Bb
	B
)

// MiddleC is the MIDI number every PitchClass is anchored to.
const MiddleC = 60

var names = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

func (p PitchClass) String() string {
	return names[p.normalized()]
}

func (p PitchClass) normalized() int {
	return ((int(p) % 12) + 12) % 12
}

func (p PitchClass) Shift(semitones int) PitchClass {
	return PitchClass((p.normalized() + semitones%12 + 12) % 12)
}

// MIDI returns the pitch class in the octave starting at middle C.
func (p PitchClass) MIDI() int {
	return MiddleC + p.normalized()
}

func FromMIDI(midi int) PitchClass {
	return PitchClass(((midi % 12) + 12) % 12)
}

// FitRange moves the pitch class by whole octaves until it lies in
// [low, high]. The register must span at least 11 semitones.
func (p PitchClass) FitRange(low, high int) int {
	v := p.MIDI()
	switch {
	case v >= low && v <= high:
		return v
	case v < low:
		return v + 12*(1+(low-v-1)/12)
	default:
		return v - 12*(1+(v-high-1)/12)
	}
}

// Octaves lists every transposition of the pitch class inside [low, high],
// starting with the FitRange placement, then upwards, then downwards.
func (p PitchClass) Octaves(low, high int) []int {
	base := p.FitRange(low, high)
	res := []int{base}
	for v := base + 12; v <= high; v += 12 {
		res = append(res, v)
	}
	for v := base - 12; v >= low; v -= 12 {
		res = append(res, v)
	}
	return res
}

func ParsePitchClass(s string) (PitchClass, error) {
	aliases := map[string]PitchClass{
		"C#": Db, "D#": Eb, "F#": Gb, "G#": Ab, "A#": Bb,
	}
	for i, n := range names {
		if n == s {
			return PitchClass(i), nil
		}
	}
	if p, ok := aliases[s]; ok {
		return p, nil
	}
	return 0, model.NewConfigError("key", "unknown pitch class %q", s)
}
