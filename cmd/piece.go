package cmd

import (
	"math/rand"
	"strings"
	"time"

	"github.com/jsphweid/tonegen/generate"
	"github.com/jsphweid/tonegen/graph"
	"github.com/jsphweid/tonegen/instrument"
	"github.com/jsphweid/tonegen/midi"
	"github.com/jsphweid/tonegen/mix"
	"github.com/jsphweid/tonegen/model"
	"github.com/jsphweid/tonegen/pitch"
	"github.com/jsphweid/tonegen/render"
	"github.com/jsphweid/tonegen/synth"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type pieceFlags struct {
	seed     int64
	tonic    string
	minor    bool
	bpm      int
	beats    int
	phrases  int
	measures int
	dynamic  string
	input    string
	synth    string
}

func addPieceFlags(cmd *cobra.Command, f *pieceFlags) {
	flags := cmd.Flags()
	flags.Int64Var(&f.seed, "seed", 0, "random seed (default: current time)")
	flags.StringVar(&f.tonic, "key", "", "tonic pitch class, e.g. C or F# (default: random)")
	flags.BoolVar(&f.minor, "minor", false, "use the minor mode")
	flags.IntVar(&f.bpm, "bpm", 0, "tempo (default: random)")
	flags.IntVar(&f.beats, "beats", 0, "beats per measure, 1-4")
	flags.IntVar(&f.phrases, "phrases", 0, "number of phrases")
	flags.IntVar(&f.measures, "measures", 0, "measures per phrase")
	flags.StringVar(&f.dynamic, "dynamic", "", "p, mp, mf or f")
	flags.StringVar(&f.input, "input", "", "render tracks from a MIDI file instead of composing")
	flags.StringVar(&f.synth, "synth", "keys", "preset used for tracks read with --input: "+strings.Join(synth.PresetNames(), ", "))
}

func (f pieceFlags) request(cmd *cobra.Command) model.ComposeRequest {
	seed := f.seed
	if !cmd.Flags().Changed("seed") {
		seed = time.Now().UnixNano()
	}
	return model.ComposeRequest{
		Seed:              seed,
		Tonic:             f.tonic,
		Minor:             f.minor,
		BPM:               f.bpm,
		BeatsPerMeasure:   f.beats,
		Phrases:           f.phrases,
		MeasuresPerPhrase: f.measures,
		Dynamic:           f.dynamic,
	}
}

// composition is a generated piece together with its mixed sound.
type composition struct {
	seed   int64
	piece  *generate.Piece
	voices []model.Voice
	tracks []model.Track
	insts  []*instrument.Instrument
	sound  render.Sound
}

// Timer follows playback of the first voice.
func (c *composition) Timer() *graph.Timer {
	if len(c.insts) == 0 {
		return graph.NewTimer()
	}
	return c.insts[0].Timer()
}

func (c *composition) response() model.ComposeResponse {
	res := model.ComposeResponse{
		Seed:     c.seed,
		Tracks:   c.tracks,
		Duration: c.sound.Duration,
	}
	if c.piece != nil {
		res.Key = c.piece.Key.String()
		res.BPM = c.piece.BPM
		for _, ch := range c.piece.Measures() {
			res.Chords = append(res.Chords, ch.Name())
		}
	}
	return res
}

func structureConfig(req model.ComposeRequest) (generate.StructureConfig, error) {
	cfg := generate.DefaultStructure()
	if req.Tonic != "" {
		tonic, err := pitch.ParsePitchClass(req.Tonic)
		if err != nil {
			return cfg, err
		}
		key := pitch.NewKey(tonic, !req.Minor)
		cfg.Key = &key
	}
	if req.BPM != 0 {
		cfg.BPMLow, cfg.BPMHigh = req.BPM, req.BPM
	}
	if req.BeatsPerMeasure != 0 {
		cfg.BeatsPerMeasure = req.BeatsPerMeasure
	}
	if req.Phrases != 0 {
		cfg.Phrases = req.Phrases
	}
	if req.MeasuresPerPhrase != 0 {
		cfg.MeasuresPerPhrase = req.MeasuresPerPhrase
	}
	if req.Dynamic != "" {
		d, err := model.ParseDynamic(req.Dynamic)
		if err != nil {
			return cfg, err
		}
		cfg.Dynamic = d
	}
	return cfg, nil
}

func compose(req model.ComposeRequest, log *zap.Logger) (*composition, error) {
	cfg, err := structureConfig(req)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(req.Seed))
	piece, err := generate.Structure(rng, cfg, generate.WithLogger(log))
	if err != nil {
		return nil, err
	}

	voices := req.Voices
	if len(voices) == 0 {
		voices = model.DefaultVoices()
	}
	tracks, err := generate.Compose(rng, piece, voices, generate.WithLogger(log))
	if err != nil {
		return nil, err
	}

	c := &composition{seed: req.Seed, piece: piece, voices: voices, tracks: tracks}
	if err := c.instrument(log); err != nil {
		return nil, err
	}
	log.Info("composed",
		zap.Int64("seed", req.Seed),
		zap.Stringer("key", piece.Key),
		zap.Int("bpm", piece.BPM),
		zap.Float64("duration", c.sound.Duration))
	return c, nil
}

// importMidi renders the tracks of a MIDI file on one preset.
func importMidi(path, preset string, log *zap.Logger) (*composition, error) {
	tracks, err := midi.ReadTones(path)
	if err != nil {
		return nil, err
	}
	c := &composition{tracks: tracks}
	for _, t := range tracks {
		c.voices = append(c.voices, model.Voice{Name: t.Name, Synth: preset, Volume: 0.5})
	}
	if err := c.instrument(log); err != nil {
		return nil, err
	}
	log.Info("imported midi", zap.String("path", path), zap.Int("tracks", len(tracks)))
	return c, nil
}

func (c *composition) instrument(log *zap.Logger) error {
	c.insts = nil
	var sounds []render.Sound
	for n, v := range c.voices {
		inst, err := instrument.FromVoice(v, c.tracks[n].Tones, instrument.WithLogger(log.With(zap.String("voice", v.Name))))
		if err != nil {
			return err
		}
		c.insts = append(c.insts, inst)
		sounds = append(sounds, inst.Sound())
	}
	c.sound = mix.Bus(sounds...)
	return nil
}

func (f pieceFlags) build(cmd *cobra.Command) (*composition, error) {
	if f.input != "" {
		return importMidi(f.input, f.synth, logger)
	}
	return compose(f.request(cmd), logger)
}
