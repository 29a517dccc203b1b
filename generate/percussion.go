package generate

import "github.com/jsphweid/tonegen/model"

// hit offsets in beats, per pattern id
var percussionPatterns = [4][]float64{
	{0, 1, 2, 3},
	{0, 2},
	{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5},
	{0, 0.75, 1.5, 2, 2.75, 3.5},
}

const (
	hitLength     = 0.25
	offbeatAccent = 0.75
)

// percussionLine repeats the selected hit pattern every measure, dropping
// hits past the end of short measures. Downbeats are accented.
func percussionLine(piece *Piece, v model.Voice) []model.ToneEvent {
	var res []model.ToneEvent
	velocity := piece.Dynamic.Velocity()
	beats := float64(piece.BeatsPerMeasure)
	for m := range piece.Measures() {
		measureStart := float64(m * piece.BeatsPerMeasure)
		for _, offset := range percussionPatterns[v.Pattern] {
			if offset >= beats {
				continue
			}
			vel := velocity
			if offset != 0 {
				vel *= offbeatAccent
			}
			length := hitLength
			if offset+length > beats {
				length = beats - offset
			}
			res = append(res, model.MidiTone(
				piece.Seconds(measureStart+offset), piece.Seconds(length), v.Register.Low, vel))
		}
	}
	return res
}
