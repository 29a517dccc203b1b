package render

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"
)

// Streamer prepares s behind a limiter and adapts it to beep. The stream
// ends after the sound's duration.
func Streamer(s Sound, rate int) beep.Streamer {
	limited := Limit(s)
	limited.Prepare(rate)
	remaining := limited.Samples(rate)
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if remaining <= 0 {
			return 0, false
		}
		for n < len(samples) && remaining > 0 {
			l, r := limited.Node.Next()
			samples[n] = [2]float64{l, r}
			n++
			remaining--
		}
		return n, true
	})
}

func format(rate int) beep.Format {
	return beep.Format{SampleRate: beep.SampleRate(rate), NumChannels: 2, Precision: 2}
}

// WAV renders s offline to a 16 bit stereo file at path.
func WAV(path string, s Sound, rate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRenderAborted, err)
	}
	defer f.Close()
	if err := wav.Encode(f, Streamer(s, rate), format(rate)); err != nil {
		return fmt.Errorf("%w: encoding %v: %w", ErrRenderAborted, path, err)
	}
	return nil
}

type playOptions struct {
	logger   *zap.Logger
	buffer   time.Duration
	progress func(elapsed float64)
}

type PlayOption func(*playOptions)

func WithLogger(l *zap.Logger) PlayOption {
	return func(o *playOptions) {
		o.logger = l
	}
}

// WithBuffer sets the speaker buffer length.
func WithBuffer(d time.Duration) PlayOption {
	return func(o *playOptions) {
		o.buffer = d
	}
}

// WithProgress is called about once a second while playing.
func WithProgress(fn func(elapsed float64)) PlayOption {
	return func(o *playOptions) {
		o.progress = fn
	}
}

// device is the audio output Play hands streamers to.
type device interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
}

type speakerDevice struct{}

func (speakerDevice) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

func (speakerDevice) Play(s ...beep.Streamer) { speaker.Play(s...) }
func (speakerDevice) Lock()                   { speaker.Lock() }
func (speakerDevice) Unlock()                 { speaker.Unlock() }

var (
	outputMu   sync.Mutex
	output     device = speakerDevice{}
	outputRate beep.SampleRate
)

// openOutput initialises the device on first use. The speaker can only be
// initialised once, so later calls must ask for the same rate.
func openOutput(rate beep.SampleRate, buffer time.Duration) (device, error) {
	outputMu.Lock()
	defer outputMu.Unlock()
	if outputRate != 0 {
		if rate != outputRate {
			return nil, fmt.Errorf("audio device already open at %v Hz, cannot play at %v Hz", int(outputRate), int(rate))
		}
		return output, nil
	}
	if err := output.Init(rate, rate.N(buffer)); err != nil {
		return nil, err
	}
	outputRate = rate
	return output, nil
}

// Play hands s to the speaker once and blocks until it finishes or ctx is
// done. Sounds played concurrently are mixed; cancelling one leaves the
// others playing.
func Play(ctx context.Context, s Sound, rate int, opts ...PlayOption) error {
	o := playOptions{logger: zap.NewNop(), buffer: 100 * time.Millisecond}
	for _, opt := range opts {
		opt(&o)
	}

	out, err := openOutput(beep.SampleRate(rate), o.buffer)
	if err != nil {
		return fmt.Errorf("%w: opening audio device: %w", ErrRenderAborted, err)
	}

	done := make(chan struct{})
	ctrl := &beep.Ctrl{Streamer: beep.Seq(Streamer(s, rate), beep.Callback(func() {
		close(done)
	}))}
	o.logger.Info("playing", zap.Float64("duration", s.Duration), zap.Int("sampleRate", rate))
	out.Play(ctrl)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	start := time.Now()
	for {
		select {
		case <-done:
			o.logger.Info("finished playing")
			return nil
		case <-ctx.Done():
			out.Lock()
			ctrl.Streamer = nil
			out.Unlock()
			return fmt.Errorf("%w: %w", ErrRenderAborted, ctx.Err())
		case <-ticker.C:
			if o.progress != nil {
				o.progress(time.Since(start).Seconds())
			}
		}
	}
}
