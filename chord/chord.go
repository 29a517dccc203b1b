package chord

import (
	"fmt"
	"sort"

	"github.com/jsphweid/tonegen/pitch"
)

type ChordType int

const (
	Major ChordType = iota
	Minor
	Diminished
	Augmented
)

var typeSuffixes = map[ChordType]string{
	Major:      "",
	Minor:      "m",
	Diminished: "dim",
	Augmented:  "aug",
}

type Inversion int

const (
	Normal Inversion = iota
	First
	Second
)

// Chord is a triad built on a scale degree of a key.
type Chord struct {
	Key       pitch.Key
	Degree    int
	Type      ChordType
	Inversion Inversion

	// octave shift applied by Compact
	Octave int
}

func New(key pitch.Key, degree int, t ChordType, inv Inversion) Chord {
	return Chord{Key: key, Degree: ((degree % 7) + 7) % 7, Type: t, Inversion: inv}
}

// Diatonic builds the triad that stays inside the key, inferring its type
// from the scale intervals above the degree.
func Diatonic(key pitch.Key, degree int, inv Inversion) Chord {
	c := New(key, degree, Major, inv)
	third := key.Offset(c.Degree+2) - key.Offset(c.Degree)
	fifth := key.Offset(c.Degree+4) - key.Offset(c.Degree)
	switch {
	case third == 3 && fifth == 6:
		c.Type = Diminished
	case third == 3:
		c.Type = Minor
	case fifth == 8:
		c.Type = Augmented
	}
	return c
}

func (c Chord) thirdOffset() int {
	switch c.Type {
	case Major, Augmented:
		return 4
	default:
		return 3
	}
}

func (c Chord) fifthOffset() int {
	switch c.Type {
	case Diminished:
		return 6
	case Augmented:
		return 8
	default:
		return 7
	}
}

// Root is the MIDI number of the root in root position.
func (c Chord) Root() int {
	return c.Key.DegreePitch(c.Degree) + 12*c.Octave
}

// Pitches returns the three chord members lowest first. The inversion picks
// which member is in the bass and which are raised an octave.
func (c Chord) Pitches() [3]int {
	r, t, f := c.Root(), c.thirdOffset(), c.fifthOffset()
	switch c.Inversion {
	case First:
		return [3]int{r + t, r + f, r + 12}
	case Second:
		return [3]int{r + f, r + 12, r + t + 12}
	default:
		return [3]int{r, r + t, r + f}
	}
}

// Compact drops the chord an octave when its middle member sits an octave
// or more above the tonic.
func (c Chord) Compact() Chord {
	if c.Pitches()[1]-c.Key.Tonic.MIDI() >= 12 {
		c.Octave--
	}
	return c
}

// Degrees returns the scale degrees of root, third and fifth.
func (c Chord) Degrees() [3]int {
	return [3]int{c.Degree, c.Degree + 2, c.Degree + 4}
}

// Member returns the pitch class of root (0), third (1) or fifth (2),
// independent of inversion.
func (c Chord) Member(i int) pitch.PitchClass {
	offsets := [3]int{0, c.thirdOffset(), c.fifthOffset()}
	return pitch.FromMIDI(c.Root() + offsets[((i%3)+3)%3])
}

func (c Chord) Name() string {
	root := pitch.FromMIDI(c.Root())
	name := root.String() + typeSuffixes[c.Type]
	if bass := pitch.FromMIDI(c.Pitches()[0]); bass != root {
		name += "/" + bass.String()
	}
	return name
}

func (c Chord) String() string {
	p := c.Pitches()
	return fmt.Sprintf("%v [%v]", c.Name(), CreateChordKey(p[:]))
}

// CreateChordKey renders pitches as a sorted "60-64-67" key.
func CreateChordKey(notes []int) string {
	sorted := append([]int(nil), notes...)
	sort.Ints(sorted)
	var res string
	for i, note := range sorted {
		res += fmt.Sprintf("%v", note)
		if i < len(sorted)-1 {
			res += "-"
		}
	}
	return res
}
