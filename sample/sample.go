package sample

import "github.com/jsphweid/tonegen/model"

// Excerpt keeps the part of every track inside [from, from+length),
// clipping tones that cross the window and rebasing time to zero. Tracks
// with nothing left are still returned so voice order is stable.
func Excerpt(tracks []model.Track, from, length float64) []model.Track {
	to := from + length
	res := make([]model.Track, 0, len(tracks))
	for _, track := range tracks {
		newTrack := model.Track{Name: track.Name}
		for _, tone := range track.Tones {
			if tone.End() <= from || tone.Start >= to {
				continue
			}
			start := max(tone.Start, from)
			end := min(tone.End(), to)
			tone.Start = start - from
			tone.Duration = end - start
			newTrack.Tones = append(newTrack.Tones, tone)
		}
		res = append(res, newTrack)
	}
	return res
}

// Head limits every track to its first n sounding tones.
func Head(tracks []model.Track, n int) []model.Track {
	res := make([]model.Track, 0, len(tracks))
	for _, track := range tracks {
		newTrack := model.Track{Name: track.Name}
		var count int
		for _, tone := range track.Tones {
			if count >= n {
				break
			}
			newTrack.Tones = append(newTrack.Tones, tone)
			if !tone.IsRest() {
				count++
			}
		}
		res = append(res, newTrack)
	}
	return res
}
