package graph

type stage int

const (
	idle stage = iota
	attack
	decay
	sustain
	release
)

// ADSR follows the gate: a rising gate restarts the attack from the current
// level, a falling gate releases from wherever the envelope is.
type ADSR struct {
	Attack, Decay, Sustain, Release float64

	sr          float64
	stage       stage
	level       float64
	releaseStep float64
}

func NewADSR(a, d, s, r float64) *ADSR {
	return &ADSR{Attack: a, Decay: d, Sustain: s, Release: r, sr: 44100}
}

func (e *ADSR) SetSampleRate(sr float64) {
	e.sr = sr
}

func (e *ADSR) Reset() {
	e.stage = idle
	e.level = 0
}

// Done is true once the release has finished.
func (e *ADSR) Done() bool {
	return e.stage == idle
}

func (e *ADSR) Next(gate float64) float64 {
	held := gate > 0
	switch {
	case held && (e.stage == idle || e.stage == release):
		e.stage = attack
	case !held && e.stage != idle && e.stage != release:
		e.stage = release
		e.releaseStep = e.level / e.samples(e.Release)
	}

	switch e.stage {
	case attack:
		e.level += 1 / e.samples(e.Attack)
		if e.level >= 1 {
			e.level = 1
			e.stage = decay
		}
	case decay:
		e.level -= (1 - e.Sustain) / e.samples(e.Decay)
		if e.level <= e.Sustain {
			e.level = e.Sustain
			e.stage = sustain
		}
	case sustain:
		e.level = e.Sustain
	case release:
		e.level -= e.releaseStep
		if e.level <= 0 {
			e.level = 0
			e.stage = idle
		}
	}
	return e.level
}

func (e *ADSR) samples(seconds float64) float64 {
	n := seconds * e.sr
	if n < 1 {
		return 1
	}
	return n
}
