package render

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
	"github.com/jsphweid/tonegen/constants"
	"github.com/stretchr/testify/assert"
)

const sr = 8000

type constant struct {
	v        float64
	prepared bool
}

func (c *constant) SetSampleRate(float64) {}
func (c *constant) Allocate()             { c.prepared = true }
func (c *constant) Reset()                {}
func (c *constant) Next() (float64, float64) {
	return c.v, -c.v
}

func drain(s beep.Streamer) [][2]float64 {
	var res [][2]float64
	buf := make([][2]float64, 300)
	for {
		n, ok := s.Stream(buf)
		res = append(res, buf[:n]...)
		if !ok {
			return res
		}
	}
}

func TestStreamerLength(t *testing.T) {
	src := &constant{v: 0.25}
	samples := drain(Streamer(Sound{Node: src, Duration: 0.5}, sr))
	assert.True(t, src.prepared)
	assert.Len(t, samples, sr/2)
	assert.Equal(t, [2]float64{0.25, -0.25}, samples[0])
}

func TestStreamerLimitsConstant(t *testing.T) {
	samples := drain(Streamer(Sound{Node: &constant{v: 3}, Duration: 0.01}, sr))
	assert.Len(t, samples, sr/100)
	for _, s := range samples {
		assert.InDelta(t, constants.LimiterCeiling, s[0], 1e-9)
		assert.InDelta(t, -constants.LimiterCeiling, s[1], 1e-9)
	}
}

type sine struct {
	amp float64
	sr  float64
	pos int
}

func (s *sine) SetSampleRate(rate float64) { s.sr = rate }
func (s *sine) Allocate()                  {}
func (s *sine) Reset()                     { s.pos = 0 }
func (s *sine) Next() (float64, float64) {
	v := s.at(s.pos)
	s.pos++
	return v, v
}

func (s *sine) at(pos int) float64 {
	return s.amp * math.Sin(2*math.Pi*440*float64(pos)/s.sr)
}

func TestStreamerLimitsHotSignal(t *testing.T) {
	src := &sine{amp: 2.5}
	samples := drain(Streamer(Sound{Node: src, Duration: 1}, sr))
	assert.Len(t, samples, sr)

	loudest := 0.0
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, s := range samples {
		assert.LessOrEqual(t, math.Abs(s[0]), 1.0)
		assert.Less(t, math.Abs(s[0]), 0.999, "sample %v pinned at full scale", i)
		loudest = max(loudest, math.Abs(s[0]))

		// the gain is smooth once settled, so the waveform keeps its shape
		if in := src.at(i); i > sr/10 && math.Abs(in) > 1 {
			lo, hi = min(lo, s[0]/in), max(hi, s[0]/in)
		}
	}
	assert.Greater(t, loudest, 0.9)
	assert.Less(t, hi-lo, 0.02)
}

func TestLimitKeepsQuietSignal(t *testing.T) {
	src := &sine{amp: 0.5}
	samples := drain(Streamer(Sound{Node: src, Duration: 0.1}, sr))
	for i, s := range samples {
		assert.Equal(t, src.at(i), s[0])
	}
}

func TestSilence(t *testing.T) {
	assert.Empty(t, drain(Streamer(Silence(), sr)))
	assert.Equal(t, 0, Silence().Samples(sr))
}

func TestWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	assert.NoError(t, WAV(path, Sound{Node: &constant{v: 0.5}, Duration: 0.25}, sr))

	f, err := os.Open(path)
	assert.NoError(t, err)
	defer f.Close()
	streamer, format, err := wav.Decode(f)
	assert.NoError(t, err)
	assert.Equal(t, beep.SampleRate(sr), format.SampleRate)
	assert.Equal(t, 2, format.NumChannels)
	assert.Equal(t, sr/4, streamer.Len())

	samples := drain(streamer)
	assert.InDelta(t, 0.5, samples[10][0], 1e-3)
	assert.InDelta(t, -0.5, samples[10][1], 1e-3)
}

func TestWAVAborts(t *testing.T) {
	err := WAV(filepath.Join(t.TempDir(), "missing", "out.wav"), Silence(), sr)
	assert.True(t, errors.Is(err, ErrRenderAborted))
}
