package pitch

import "fmt"

var (
	majorOffsets = [7]int{0, 2, 4, 5, 7, 9, 11}
	minorOffsets = [7]int{0, 2, 3, 5, 7, 8, 10}
)

// Key is a tonic plus mode. It is a small value and is passed by copy to
// every bar that needs it.
type Key struct {
	Tonic PitchClass
	Major bool
}

func NewKey(tonic PitchClass, major bool) Key {
	return Key{Tonic: FromMIDI(int(tonic)), Major: major}
}

func (k Key) String() string {
	if k.Major {
		return fmt.Sprintf("%v major", k.Tonic)
	}
	return fmt.Sprintf("%v minor", k.Tonic)
}

// Offsets returns the semitone offset of each scale degree from the tonic.
func (k Key) Offsets() [7]int {
	if k.Major {
		return majorOffsets
	}
	return minorOffsets
}

func (k Key) Scale() [7]PitchClass {
	var res [7]PitchClass
	for i, o := range k.Offsets() {
		res[i] = k.Tonic.Shift(o)
	}
	return res
}

// Offset returns the semitone offset of a degree; degrees are cyclic and
// every wrap adds or removes an octave.
func (k Key) Offset(degree int) int {
	octave, d := splitDegree(degree)
	return 12*octave + k.Offsets()[d]
}

// DegreePitch maps an absolute scale degree (0 is the tonic at middle C,
// 7 the tonic an octave up, -1 the leading tone below) to a MIDI number.
func (k Key) DegreePitch(degree int) int {
	return k.Tonic.MIDI() + k.Offset(degree)
}

// DegreeOf is the inverse of DegreePitch. ok is false for pitches outside
// the scale.
func (k Key) DegreeOf(midi int) (degree int, ok bool) {
	rel := midi - k.Tonic.MIDI()
	octave := floorDiv(rel, 12)
	within := rel - 12*octave
	for d, o := range k.Offsets() {
		if o == within {
			return 7*octave + d, true
		}
	}
	return 0, false
}

func (k Key) Contains(midi int) bool {
	_, ok := k.DegreeOf(midi)
	return ok
}

// FitDegree transposes an absolute degree by octaves until its pitch lies in
// [low, high].
func (k Key) FitDegree(degree, low, high int) int {
	for k.DegreePitch(degree) < low {
		degree += 7
	}
	for k.DegreePitch(degree) > high {
		degree -= 7
	}
	return degree
}

func splitDegree(degree int) (octave, d int) {
	octave = floorDiv(degree, 7)
	return octave, degree - 7*octave
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
