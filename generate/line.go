package generate

import (
	"math/rand"

	"github.com/jsphweid/tonegen/model"
	"go.uber.org/zap"
)

// Line generates the tone stream of one voice over piece. Equal seeds give
// identical streams.
func Line(rng *rand.Rand, piece *Piece, v model.Voice, opts ...Option) ([]model.ToneEvent, error) {
	o := applyOptions(opts)
	if err := v.Validate(); err != nil {
		return nil, err
	}

	var (
		tones []model.ToneEvent
		err   error
	)
	switch v.Kind {
	case model.MelodyVoice:
		tones, err = melodyLine(rng, piece, v.Register)
	case model.PassingVoice:
		tones, err = passingLine(rng, piece, v.Register)
	case model.ChordsVoice:
		tones = chordsLine(rng, piece, v.Register)
	case model.HarmonyVoice:
		tones = harmonyLine(rng, piece, v)
	case model.BassVoice:
		tones = bassLine(piece, v.Register)
	case model.PercussionVoice:
		tones = percussionLine(piece, v)
	}
	if err != nil {
		return nil, err
	}

	o.logger.Debug("generated line",
		zap.String("voice", v.Name),
		zap.String("kind", string(v.Kind)),
		zap.Int("tones", len(tones)))
	return tones, nil
}

// Compose generates every voice in order from one random source.
func Compose(rng *rand.Rand, piece *Piece, voices []model.Voice, opts ...Option) ([]model.Track, error) {
	tracks := make([]model.Track, 0, len(voices))
	for _, v := range voices {
		tones, err := Line(rng, piece, v, opts...)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, model.Track{Name: v.Name, Tones: tones})
	}
	return tracks, nil
}
