package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGatherAllMidiPaths(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0777))
	for _, name := range []string{"a.mid", "b.txt", "sub/c.midi"} {
		assert.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0666))
	}
	paths, err := GatherAllMidiPaths(dir, 0)
	assert.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.mid"), filepath.Join(dir, "sub", "c.midi")}, paths)

	paths, _ = GatherAllMidiPaths(dir, 1)
	assert.Len(t, paths, 1)

	_, err = GatherAllMidiPaths(filepath.Join(dir, "missing"), 0)
	assert.Error(t, err)
}

func TestGenerics(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]string{"a", "b", "c"}, GetKeys(map[string]int{"c": 1, "a": 2, "b": 3}))
	assert.Equal(2, Min(5, 2, 9))
	assert.Equal(1.5, Max(0.5, 1.5, -3))
	assert.Equal(uint8(6), Sum([]uint8{1, 2, 3}))
	assert.InDelta(2.0, Mean([]int{1, 2, 3}), 1e-9)
	assert.Equal(0.0, Mean([]float64{}))
}
