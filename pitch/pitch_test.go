package pitch

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShiftIsClosedModulo12(t *testing.T) {
	assert := assert.New(t)
	for p := C; p <= B; p++ {
		for s := -30; s <= 30; s++ {
			shifted := p.Shift(s)
			assert.GreaterOrEqual(int(shifted), 0)
			assert.Less(int(shifted), 12)
			assert.Equal(FromMIDI(p.MIDI()+s), shifted)
		}
	}
}

func TestFitRange(t *testing.T) {
	cases := []struct {
		p         PitchClass
		low, high int
		want      int
	}{
		{C, 60, 71, 60},
		{C, 48, 59, 48},
		{B, 48, 59, 59},
		{E, 72, 83, 76},
		{G, 36, 47, 43},
		{C, 61, 72, 72},
	}
	for _, c := range cases {
		name := fmt.Sprintf("%v in [%v, %v]", c.p, c.low, c.high)
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, c.want, c.p.FitRange(c.low, c.high))
		})
	}
}

func TestOctavesStayInRange(t *testing.T) {
	assert := assert.New(t)
	res := E.Octaves(40, 80)
	assert.Equal([]int{64, 76, 52, 40}, res)
	for _, v := range res {
		assert.Equal(E, FromMIDI(v))
	}
}

func TestScaleOffsets(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([7]int{0, 2, 4, 5, 7, 9, 11}, NewKey(C, true).Offsets())
	assert.Equal([7]int{0, 2, 3, 5, 7, 8, 10}, NewKey(A, false).Offsets())
	assert.Equal([7]PitchClass{G, A, B, C, D, E, Gb}, NewKey(G, true).Scale())
}

func TestDegreePitchRoundTrip(t *testing.T) {
	assert := assert.New(t)
	for _, key := range []Key{NewKey(C, true), NewKey(Eb, false), NewKey(B, true)} {
		for d := -14; d <= 14; d++ {
			midi := key.DegreePitch(d)
			back, ok := key.DegreeOf(midi)
			assert.True(ok)
			assert.Equal(d, back)
			assert.True(key.Contains(midi))
		}
	}
	assert.False(NewKey(C, true).Contains(61))
	assert.Equal(59, NewKey(C, true).DegreePitch(-1))
}

func TestFitDegree(t *testing.T) {
	key := NewKey(D, false)
	for d := -20; d < 20; d++ {
		fitted := key.FitDegree(d, 55, 66)
		p := key.DegreePitch(fitted)
		assert.GreaterOrEqual(t, p, 55)
		assert.LessOrEqual(t, p, 66)
		assert.Equal(t, 0, ((fitted-d)%7+7)%7)
	}
}

func TestParsePitchClass(t *testing.T) {
	p, err := ParsePitchClass("F#")
	assert.NoError(t, err)
	assert.Equal(t, Gb, p)
	_, err = ParsePitchClass("H")
	assert.Error(t, err)
}
