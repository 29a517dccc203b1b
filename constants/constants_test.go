package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetOutputDir(t *testing.T) {
	t.Setenv("OUTPUT_PATH", "")
	assert.Equal(t, "./out", GetOutputDir())
	t.Setenv("OUTPUT_PATH", "/tmp/renders")
	assert.Equal(t, "/tmp/renders", GetOutputDir())
}

func TestGetSampleRate(t *testing.T) {
	t.Setenv("SAMPLE_RATE", "")
	assert.Equal(t, DefaultSampleRate, GetSampleRate())
	t.Setenv("SAMPLE_RATE", "48000")
	assert.Equal(t, 48000, GetSampleRate())
	t.Setenv("SAMPLE_RATE", "fast")
	assert.Equal(t, DefaultSampleRate, GetSampleRate())
	t.Setenv("SAMPLE_RATE", "-1")
	assert.Equal(t, DefaultSampleRate, GetSampleRate())
}
