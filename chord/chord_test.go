package chord

import (
	"fmt"
	"testing"

	"github.com/jsphweid/tonegen/pitch"
	"github.com/stretchr/testify/assert"
)

var (
	allTypes      = []ChordType{Major, Minor, Diminished, Augmented}
	allInversions = []Inversion{Normal, First, Second}
)

func TestPitchesAlwaysAscending(t *testing.T) {
	for tonic := pitch.C; tonic <= pitch.B; tonic++ {
		for _, major := range []bool{true, false} {
			key := pitch.NewKey(tonic, major)
			for degree := 0; degree < 7; degree++ {
				for _, ct := range allTypes {
					for _, inv := range allInversions {
						c := New(key, degree, ct, inv)
						for _, cc := range []Chord{c, c.Compact()} {
							p := cc.Pitches()
							assert.Less(t, p[0], p[1], "%v", cc)
							assert.Less(t, p[1], p[2], "%v", cc)
						}
					}
				}
			}
		}
	}
}

func TestCMajorTonicTriad(t *testing.T) {
	c := New(pitch.NewKey(pitch.C, true), 0, Major, Normal)
	assert := assert.New(t)
	assert.Equal([3]int{60, 64, 67}, c.Pitches())
	p := c.Pitches()
	assert.Equal([3]int{0, 4, 7}, [3]int{p[0] - 60, p[1] - 60, p[2] - 60})
	assert.Equal("C", c.Name())
}

func TestIntervalTables(t *testing.T) {
	key := pitch.NewKey(pitch.C, true)
	cases := []struct {
		t      ChordType
		third  int
		fifth  int
		suffix string
	}{
		{Major, 4, 7, ""},
		{Minor, 3, 7, "m"},
		{Diminished, 3, 6, "dim"},
		{Augmented, 4, 8, "aug"},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("type %v", c.t), func(t *testing.T) {
			p := New(key, 0, c.t, Normal).Pitches()
			assert.Equal(t, c.third, p[1]-p[0])
			assert.Equal(t, c.fifth, p[2]-p[0])
			assert.Equal(t, "C"+c.suffix, New(key, 0, c.t, Normal).Name())
		})
	}
}

func TestInversions(t *testing.T) {
	key := pitch.NewKey(pitch.C, true)
	assert := assert.New(t)
	assert.Equal([3]int{64, 67, 72}, New(key, 0, Major, First).Pitches())
	assert.Equal([3]int{67, 72, 76}, New(key, 0, Major, Second).Pitches())
	assert.Equal("C/E", New(key, 0, Major, First).Name())
}

func TestDiatonicTypes(t *testing.T) {
	major := pitch.NewKey(pitch.C, true)
	want := []ChordType{Major, Minor, Minor, Major, Major, Minor, Diminished}
	for d, ct := range want {
		assert.Equal(t, ct, Diatonic(major, d, Normal).Type, "degree %v", d)
	}
	minor := pitch.NewKey(pitch.A, false)
	wantMinor := []ChordType{Minor, Diminished, Major, Minor, Minor, Major, Major}
	for d, ct := range wantMinor {
		assert.Equal(t, ct, Diatonic(minor, d, Normal).Type, "degree %v", d)
	}
}

func TestDiatonicTonesStayInKey(t *testing.T) {
	key := pitch.NewKey(pitch.Eb, false)
	for d := 0; d < 7; d++ {
		for _, p := range Diatonic(key, d, Second).Pitches() {
			assert.True(t, key.Contains(p))
		}
	}
}

func TestCompact(t *testing.T) {
	assert := assert.New(t)
	key := pitch.NewKey(pitch.C, true)
	high := New(key, 5, Minor, Normal)
	assert.Equal([3]int{69, 72, 76}, high.Pitches())
	assert.Equal([3]int{57, 60, 64}, high.Compact().Pitches())

	low := New(key, 1, Minor, Normal)
	assert.Equal(low.Pitches(), low.Compact().Pitches())
}

func TestDegreeIsModulo7(t *testing.T) {
	key := pitch.NewKey(pitch.G, true)
	assert.Equal(t, New(key, 2, Minor, Normal), New(key, 9, Minor, Normal))
	assert.Equal(t, New(key, 6, Minor, Normal), New(key, -1, Minor, Normal))
}

func TestMember(t *testing.T) {
	c := New(pitch.NewKey(pitch.C, true), 4, Major, Second)
	assert.Equal(t, pitch.G, c.Member(0))
	assert.Equal(t, pitch.B, c.Member(1))
	assert.Equal(t, pitch.D, c.Member(2))
}

func TestString(t *testing.T) {
	c := New(pitch.NewKey(pitch.C, true), 0, Major, First)
	assert.Equal(t, "C/E [64-67-72]", c.String())
}

func TestCreateChordKey(t *testing.T) {
	notes := []int{67, 60, 64}
	assert.Equal(t, "60-64-67", CreateChordKey(notes))
	assert.Equal(t, []int{67, 60, 64}, notes)
}
