package rhythm

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/jsphweid/tonegen/model"
	"github.com/stretchr/testify/assert"
)

func TestPatternsFillMeasure(t *testing.T) {
	for n := 1; n <= MaxBeats; n++ {
		patterns, err := PatternsFor(n)
		assert.NoError(t, err)
		assert.NotEmpty(t, patterns)
		for _, p := range patterns {
			assert.InDelta(t, float64(n), p.Beats(), 1e-9, "%v", p.Durations)
			assert.Len(t, p.Ornamental, len(p.Durations))
		}
	}
}

func TestPatternsAreUnique(t *testing.T) {
	patterns, _ := PatternsFor(4)
	seen := map[string]bool{}
	for _, p := range patterns {
		assert.False(t, seen[p.key()], p.key())
		seen[p.key()] = true
	}
}

func TestUnsupportedBeats(t *testing.T) {
	for _, n := range []int{0, -1, MaxBeats + 1} {
		_, err := PatternsFor(n)
		assert.True(t, errors.Is(err, model.ErrInvalidConfig))
		var cfgErr *model.ConfigError
		assert.True(t, errors.As(err, &cfgErr))
	}
}

func TestOrnamentalSlots(t *testing.T) {
	p := newPattern([]float64{0.5, 1, 0.5, 2})
	assert.Equal(t, []bool{false, false, true, false}, p.Ornamental)
	p = newPattern([]float64{1.5, 0.5})
	assert.Equal(t, []bool{false, true}, p.Ornamental)
	assert.Equal(t, []float64{0, 1.5}, p.Onsets())
}

func TestChooseIsDeterministic(t *testing.T) {
	a, b := rand.New(rand.NewSource(7)), rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		pa, err := Choose(a, 3)
		assert.NoError(t, err)
		pb, _ := Choose(b, 3)
		assert.Equal(t, pa, pb)
	}
}
