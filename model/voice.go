package model

import "strings"

// Dynamic is a loudness marking mapped to a MIDI velocity.
type Dynamic int

const (
	Piano Dynamic = iota
	MezzoPiano
	MezzoForte
	Forte
)

var dynamicVelocities = [...]float64{52, 77, 102, 127}

var dynamicNames = [...]string{"p", "mp", "mf", "f"}

// Velocity returns the marking on the 0-127 scale.
func (d Dynamic) Velocity() float64 {
	return dynamicVelocities[d]
}

func (d Dynamic) String() string {
	return dynamicNames[d]
}

func ParseDynamic(s string) (Dynamic, error) {
	for i, n := range dynamicNames {
		if strings.EqualFold(n, s) {
			return Dynamic(i), nil
		}
	}
	return 0, NewConfigError("dynamic", "unknown marking %q (want p, mp, mf or f)", s)
}

// Register bounds a voice in MIDI note numbers, both ends inclusive.
type Register struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

func (r Register) Validate() error {
	switch {
	case r.Low < 0 || r.High > 127:
		return NewConfigError("register", "[%v, %v] is outside 0-127", r.Low, r.High)
	case r.Low > r.High:
		return NewConfigError("register", "low bound %v is above high bound %v", r.Low, r.High)
	case r.High-r.Low < 11:
		return NewConfigError("register", "[%v, %v] spans less than an octave", r.Low, r.High)
	}
	return nil
}

type VoiceKind string

const (
	MelodyVoice     VoiceKind = "melody"
	PassingVoice    VoiceKind = "passing"
	ChordsVoice     VoiceKind = "chords"
	HarmonyVoice    VoiceKind = "harmony"
	BassVoice       VoiceKind = "bass"
	PercussionVoice VoiceKind = "percussion"
)

// Voice configures one generated line.
type Voice struct {
	Name     string    `json:"name"`
	Kind     VoiceKind `json:"kind"`
	Register Register  `json:"register"`

	// Pattern selects the percussion hit placement.
	Pattern int `json:"pattern,omitempty"`

	// Extension is the chance that a harmony measure adds a 6th or 7th.
	Extension float64 `json:"extension,omitempty"`

	// Synth names the preset the voice is rendered with.
	Synth  string  `json:"synth,omitempty"`
	Volume float64 `json:"volume,omitempty"`
	Pan    float64 `json:"pan,omitempty"`
}

func (v Voice) Validate() error {
	switch v.Kind {
	case MelodyVoice, PassingVoice, ChordsVoice, HarmonyVoice, BassVoice:
		return v.Register.Validate()
	case PercussionVoice:
		if v.Pattern < 0 || v.Pattern > 3 {
			return NewConfigError("pattern", "unknown percussion pattern %v", v.Pattern)
		}
		if v.Register.Low < 0 || v.Register.Low > 127 {
			return NewConfigError("register", "percussion note %v is outside 0-127", v.Register.Low)
		}
		return nil
	}
	return NewConfigError("voice", "unknown kind %q", v.Kind)
}

// DefaultVoices is the four-part arrangement used when none is given.
func DefaultVoices() []Voice {
	return []Voice{
		{Name: "melody", Kind: MelodyVoice, Register: Register{60, 71}, Synth: "strings", Volume: 0.5},
		{Name: "chords", Kind: ChordsVoice, Register: Register{48, 59}, Synth: "keys", Volume: 0.6},
		{Name: "bass", Kind: BassVoice, Register: Register{36, 47}, Synth: "bass", Volume: 0.6},
		{Name: "drums", Kind: PercussionVoice, Register: Register{36, 36}, Pattern: 0, Synth: "drum", Volume: 0.4},
	}
}
