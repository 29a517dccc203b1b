package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCreatePathsNamed(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	p, err := CreatePaths(dir, "song")
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "song.wav"), p.WAV)
	assert.Equal(t, filepath.Join(dir, "song.mid"), p.MIDI)

	info, err := os.Stat(dir)
	assert.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCreatePathsDefaultsToUUID(t *testing.T) {
	a, err := CreatePaths(t.TempDir(), "")
	assert.NoError(t, err)
	b, _ := CreatePaths(t.TempDir(), "")
	_, err = uuid.Parse(a.ID)
	assert.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}
