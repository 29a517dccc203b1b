package generate

import (
	"math/rand"

	"github.com/jsphweid/tonegen/chord"
	"github.com/jsphweid/tonegen/model"
	"github.com/jsphweid/tonegen/pitch"
	"github.com/jsphweid/tonegen/rhythm"
	"go.uber.org/zap"
)

// Piece is the harmonic skeleton every voice is generated over.
type Piece struct {
	BPM             int
	BeatsPerMeasure int
	Key             pitch.Key
	Dynamic         model.Dynamic
	Phrases         []Phrase
}

// Phrase holds one chord per measure.
type Phrase struct {
	Harmony []chord.Chord
}

// Measures flattens the phrases into one chord per measure.
func (p *Piece) Measures() []chord.Chord {
	var res []chord.Chord
	for _, phrase := range p.Phrases {
		res = append(res, phrase.Harmony...)
	}
	return res
}

func (p *Piece) Seconds(beats float64) float64 {
	return beats * 60 / float64(p.BPM)
}

// Duration is the nominal length without release tails.
func (p *Piece) Duration() float64 {
	return p.Seconds(float64(len(p.Measures()) * p.BeatsPerMeasure))
}

type StructureConfig struct {
	Phrases           int
	MeasuresPerPhrase int
	BeatsPerMeasure   int

	// BPM is drawn as the mean of two uniform draws from the range.
	BPMLow, BPMHigh int

	// Key is random when nil.
	Key     *pitch.Key
	Dynamic model.Dynamic
}

func DefaultStructure() StructureConfig {
	return StructureConfig{
		Phrases:           2,
		MeasuresPerPhrase: 8,
		BeatsPerMeasure:   4,
		BPMLow:            80,
		BPMHigh:           110,
		Dynamic:           model.MezzoForte,
	}
}

func (c StructureConfig) Validate() error {
	switch {
	case c.Phrases < 1:
		return model.NewConfigError("phrases", "need at least one phrase, got %v", c.Phrases)
	case c.MeasuresPerPhrase < 1:
		return model.NewConfigError("measures per phrase", "need at least one measure, got %v", c.MeasuresPerPhrase)
	case c.BeatsPerMeasure < 1:
		return model.NewConfigError("beats per measure", "measure length must be positive, got %v", c.BeatsPerMeasure)
	case c.BPMLow < 1 || c.BPMHigh < c.BPMLow:
		return model.NewConfigError("bpm", "invalid tempo range [%v, %v]", c.BPMLow, c.BPMHigh)
	case c.Dynamic < model.Piano || c.Dynamic > model.Forte:
		return model.NewConfigError("dynamic", "unknown dynamic %v", int(c.Dynamic))
	}
	if _, err := rhythm.PatternsFor(c.BeatsPerMeasure); err != nil {
		return err
	}
	return nil
}

// Structure draws tempo, key and a chord per measure. The piece opens on
// the tonic and the last phrase closes with a V-I cadence. When the cadence
// would replace the opening chord the piece only closes on the tonic.
func Structure(rng *rand.Rand, cfg StructureConfig, opts ...Option) (*Piece, error) {
	o := applyOptions(opts)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bpm := (cfg.BPMLow + rng.Intn(cfg.BPMHigh-cfg.BPMLow+1) + cfg.BPMLow + rng.Intn(cfg.BPMHigh-cfg.BPMLow+1)) / 2

	var key pitch.Key
	if cfg.Key != nil {
		key = *cfg.Key
	} else {
		key = pitch.NewKey(pitch.FromMIDI(rng.Intn(12)), rng.Intn(2) == 0)
	}

	piece := &Piece{
		BPM:             bpm,
		BeatsPerMeasure: cfg.BeatsPerMeasure,
		Key:             key,
		Dynamic:         cfg.Dynamic,
	}
	for i := 0; i < cfg.Phrases; i++ {
		piece.Phrases = append(piece.Phrases, generatePhrase(rng, key, cfg.MeasuresPerPhrase))
	}

	first := piece.Phrases[0].Harmony
	first[0] = chord.Diatonic(key, 0, chord.Normal)
	last := piece.Phrases[len(piece.Phrases)-1].Harmony
	if len(last) >= 2 && (len(piece.Phrases) > 1 || len(last) >= 3) {
		last[len(last)-2] = chord.Diatonic(key, 4, chord.Normal)
	}
	last[len(last)-1] = chord.Diatonic(key, 0, chord.Normal)

	o.logger.Debug("generated structure",
		zap.Int("bpm", bpm),
		zap.Stringer("key", key),
		zap.Int("measures", len(piece.Measures())))
	for i, c := range piece.Measures() {
		o.logger.Debug("measure", zap.Int("index", i), zap.Stringer("chord", c))
	}
	return piece, nil
}

func generatePhrase(rng *rand.Rand, key pitch.Key, length int) Phrase {
	harmony := make([]chord.Chord, length)
	for i := range harmony {
		degree := rng.Intn(7)
		inversion := chord.Inversion(rng.Intn(3))
		harmony[i] = chord.Diatonic(key, degree, inversion)
	}
	return Phrase{Harmony: harmony}
}
