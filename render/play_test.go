package render

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
)

// fakeDevice stands in for the speaker. Tests pull the played streamers
// under the device lock, the way the speaker's mixer does.
type fakeDevice struct {
	mu     sync.Mutex
	inits  int
	played chan beep.Streamer
}

func (d *fakeDevice) Init(beep.SampleRate, int) error {
	d.inits++
	return nil
}

func (d *fakeDevice) Play(s ...beep.Streamer) {
	for _, st := range s {
		d.played <- st
	}
}

func (d *fakeDevice) Lock()   { d.mu.Lock() }
func (d *fakeDevice) Unlock() { d.mu.Unlock() }

func (d *fakeDevice) pull(s beep.Streamer) (int, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return s.Stream(make([][2]float64, 64))
}

func (d *fakeDevice) finish(s beep.Streamer) {
	for {
		if _, ok := d.pull(s); !ok {
			return
		}
	}
}

func useDevice(t *testing.T) *fakeDevice {
	d := &fakeDevice{played: make(chan beep.Streamer, 4)}
	outputMu.Lock()
	prev, prevRate := output, outputRate
	output, outputRate = d, 0
	outputMu.Unlock()
	t.Cleanup(func() {
		outputMu.Lock()
		output, outputRate = prev, prevRate
		outputMu.Unlock()
	})
	return d
}

func TestPlayOpensDeviceOnce(t *testing.T) {
	d := useDevice(t)
	sound := Sound{Node: &constant{v: 0.1}, Duration: 0.01}
	for i := 0; i < 3; i++ {
		errs := make(chan error, 1)
		go func() { errs <- Play(context.Background(), sound, sr) }()
		d.finish(<-d.played)
		assert.NoError(t, <-errs)
	}
	assert.Equal(t, 1, d.inits)
}

func TestPlayRejectsSecondRate(t *testing.T) {
	d := useDevice(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Play(ctx, Sound{Node: &constant{v: 0.1}, Duration: 1}, sr)
	assert.True(t, errors.Is(err, ErrRenderAborted))
	assert.Len(t, d.played, 1)

	err = Play(context.Background(), Sound{Node: &constant{v: 0.1}, Duration: 1}, 2*sr)
	assert.True(t, errors.Is(err, ErrRenderAborted))
	assert.Len(t, d.played, 1)
	assert.Equal(t, 1, d.inits)
}

func TestCancelStopsOnlyItsOwnSound(t *testing.T) {
	d := useDevice(t)
	ctx, cancel := context.WithCancel(context.Background())

	first := make(chan error, 1)
	go func() { first <- Play(ctx, Sound{Node: &constant{v: 0.1}, Duration: 10}, sr) }()
	old := <-d.played
	_, ok := d.pull(old)
	assert.True(t, ok)

	second := make(chan error, 1)
	go func() { second <- Play(context.Background(), Sound{Node: &constant{v: 0.2}, Duration: 0.05}, sr) }()
	latest := <-d.played

	cancel()
	assert.True(t, errors.Is(<-first, ErrRenderAborted))
	n, ok := d.pull(old)
	assert.Equal(t, 0, n)
	assert.False(t, ok)

	d.finish(latest)
	assert.NoError(t, <-second)
	assert.Equal(t, 1, d.inits)
}
