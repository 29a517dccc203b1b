package instrument

import (
	"errors"
	"math"
	"testing"

	"github.com/jsphweid/tonegen/model"
	"github.com/jsphweid/tonegen/synth"
	"github.com/stretchr/testify/assert"
)

const sr = 8000

func organ(release float64) synth.Spec {
	return synth.Simple{
		Mix:      synth.WaveMix{Square: 1},
		Envelope: synth.Envelope{Sustain: 1, Release: release},
	}
}

func renderAll(t *testing.T, i *Instrument) [][2]float64 {
	s := i.Sound()
	s.Prepare(sr)
	res := make([][2]float64, s.Samples(sr)+sr/10)
	for n := range res {
		l, r := s.Node.Next()
		res[n] = [2]float64{l, r}
	}
	return res
}

func TestDurationIncludesRelease(t *testing.T) {
	tones := []model.ToneEvent{
		model.NewTone(1, 1, 440, 1),
		model.NewTone(0, 1, 220, 1),
	}
	i, err := New(organ(0.3), tones)
	assert.NoError(t, err)
	assert.InDelta(t, 2.3, i.Duration(), 1e-9)
	assert.Equal(t, 2, i.Polyphony())
}

func TestRestsOnly(t *testing.T) {
	i, err := New(organ(0.3), []model.ToneEvent{model.Rest(0, 2), model.Rest(2, 1)})
	assert.NoError(t, err)
	assert.Equal(t, 0.0, i.Duration())
	assert.Equal(t, 3.0, i.RestEnd())
	assert.Equal(t, 0, i.Polyphony())

	for _, f := range renderAll(t, i) {
		assert.Equal(t, [2]float64{}, f)
	}
}

func TestRestDoesNotExtendDuration(t *testing.T) {
	i, err := New(organ(0), []model.ToneEvent{model.NewTone(0, 1, 220, 1), model.Rest(1, 5)})
	assert.NoError(t, err)
	assert.Equal(t, 1.0, i.Duration())
	assert.Equal(t, 6.0, i.RestEnd())
}

func TestPolyphonyIsMeasured(t *testing.T) {
	tones := []model.ToneEvent{
		model.NewTone(0, 2, 220, 1),
		model.NewTone(0.5, 2, 330, 1),
		model.NewTone(1, 2, 440, 1),
		model.NewTone(3.5, 1, 440, 1),
	}
	i, err := New(organ(0.2), tones)
	assert.NoError(t, err)
	assert.Equal(t, 3, i.Polyphony())
	assert.Equal(t, 3, i.Sound().Polyphony)

	renderAll(t, i)
	assert.Len(t, i.pool, 3)
}

func TestInvalidTone(t *testing.T) {
	_, err := New(organ(0), []model.ToneEvent{model.NewTone(-1, 1, 220, 1)})
	assert.True(t, errors.Is(err, model.ErrInvalidConfig))
	_, err = New(organ(0), []model.ToneEvent{model.NewTone(0, math.NaN(), 220, 1)})
	assert.True(t, errors.Is(err, model.ErrInvalidConfig))
}

func TestRenderIsSilentOutsideNotes(t *testing.T) {
	i, err := New(organ(0.1), []model.ToneEvent{model.NewTone(0.5, 0.5, 220, 1)})
	assert.NoError(t, err)
	frames := renderAll(t, i)

	for _, f := range frames[:sr/2] {
		assert.Equal(t, [2]float64{}, f)
	}
	var loud float64
	for _, f := range frames[sr/2 : sr] {
		loud = math.Max(loud, math.Abs(f[0]))
	}
	assert.Greater(t, loud, 0.5)
	for _, f := range frames[int(1.1*sr):] {
		assert.Equal(t, [2]float64{}, f)
	}
}

func TestFadesAreSmooth(t *testing.T) {
	i, err := New(organ(0), []model.ToneEvent{model.NewTone(0, 0.5, 200, 1)})
	assert.NoError(t, err)
	frames := renderAll(t, i)
	// the first and last samples of a note are faded to silence
	assert.InDelta(t, 0.0, frames[0][0], 1e-9)
	assert.InDelta(t, 0.0, frames[sr/2-1][0], 1e-9)
	for n := 1; n < 40; n++ {
		assert.LessOrEqual(t, math.Abs(frames[n-1][0]), math.Abs(frames[n][0])+1e-9)
	}
}

func TestResetReplays(t *testing.T) {
	tones := []model.ToneEvent{model.NewTone(0, 0.3, 220, 0.8), model.NewTone(0.1, 0.3, 330, 0.5)}
	i, err := New(synth.Keys(), tones)
	assert.NoError(t, err)
	assert.Equal(t, renderAll(t, i), renderAll(t, i))
}

func TestTimerFollowsPosition(t *testing.T) {
	i, err := New(organ(0), []model.ToneEvent{model.NewTone(0, 1, 220, 1)})
	assert.NoError(t, err)
	s := i.Sound()
	s.Prepare(sr)
	for n := 0; n < sr/2; n++ {
		s.Node.Next()
	}
	assert.InDelta(t, float64(sr/2-1)/sr, i.Timer().Now(), 1e-12)
	s.Node.Reset()
	assert.Equal(t, 0.0, i.Timer().Now())
}

func TestFromVoice(t *testing.T) {
	v := model.DefaultVoices()[0]
	i, err := FromVoice(v, []model.ToneEvent{model.MidiTone(0, 1, 60, 100)})
	assert.NoError(t, err)
	assert.Greater(t, i.Duration(), 1.0)

	v.Synth = "kazoo"
	_, err = FromVoice(v, nil)
	assert.Error(t, err)
}
