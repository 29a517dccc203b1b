package constants

import (
	"os"
	"strconv"
)

func GetOutputDir() string {
	path := os.Getenv("OUTPUT_PATH")
	if path != "" {
		return path
	}
	return "./out"
}

// GetSampleRate reads SAMPLE_RATE, falling back to DefaultSampleRate when
// unset or unparsable.
func GetSampleRate() int {
	rate, err := strconv.Atoi(os.Getenv("SAMPLE_RATE"))
	if err != nil || rate <= 0 {
		return DefaultSampleRate
	}
	return rate
}

const DefaultSampleRate = 44100

// width of the fade applied at both ends of every note
const CrossfadeSeconds = 0.01

// MIDI export resolution
const TicksPerQuarter = 960

// above this many simultaneous notes report warns
const PolyphonyWarning = 32

// Output limiter: peak ceiling, look-ahead and gain recovery in seconds.
const (
	LimiterCeiling   = 0.98
	LimiterLookahead = 0.005
	LimiterRelease   = 0.5
)
