package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Paths are the outputs of one render.
type Paths struct {
	ID   string
	WAV  string
	MIDI string
}

// CreatePaths names outputs under dir after name, or after a fresh uuid
// when name is empty. dir is created if missing.
func CreatePaths(dir, name string) (Paths, error) {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return Paths{}, fmt.Errorf("creating output dir: %w", err)
	}
	id := name
	if id == "" {
		id = uuid.NewString()
	}
	return Paths{
		ID:   id,
		WAV:  filepath.Join(dir, id+".wav"),
		MIDI: filepath.Join(dir, id+".mid"),
	}, nil
}
