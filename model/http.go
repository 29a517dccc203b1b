package model

// ComposeRequest is the JSON form of the generation parameters.
type ComposeRequest struct {
	Seed              int64   `json:"seed"`
	Tonic             string  `json:"tonic,omitempty"`
	Minor             bool    `json:"minor,omitempty"`
	BPM               int     `json:"bpm,omitempty"`
	BeatsPerMeasure   int     `json:"beats_per_measure,omitempty"`
	Phrases           int     `json:"phrases,omitempty"`
	MeasuresPerPhrase int     `json:"measures_per_phrase,omitempty"`
	Dynamic           string  `json:"dynamic,omitempty"`
	Voices            []Voice `json:"voices,omitempty"`
}

type ComposeResponse struct {
	Seed     int64    `json:"seed"`
	Key      string   `json:"key"`
	BPM      int      `json:"bpm"`
	Chords   []string `json:"chords"`
	Tracks   []Track  `json:"tracks"`
	Duration float64  `json:"duration"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
