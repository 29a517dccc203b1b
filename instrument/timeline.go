package instrument

import (
	"math"
	"sort"

	"github.com/jsphweid/tonegen/constants"
	"github.com/jsphweid/tonegen/graph"
	"github.com/jsphweid/tonegen/synth"
)

func (i *Instrument) SetSampleRate(sr float64) {
	i.sr = sr
	for _, n := range i.pool {
		n.SetSampleRate(sr)
	}
}

// Allocate converts the timeline to sample positions and builds one graph
// per concurrently sounding note. Graphs are reset and reused once a note
// ends.
func (i *Instrument) Allocate() {
	i.notes = i.notes[:0]
	for _, t := range i.tones {
		start := int64(math.Round(t.Start * i.sr))
		end := int64(math.Round((t.End() + i.release) * i.sr))
		if end <= start {
			continue
		}
		fade := math.Min(constants.CrossfadeSeconds*i.sr, float64(end-start)/2)
		i.notes = append(i.notes, note{
			start:    start,
			end:      end,
			fade:     fade,
			gateOff:  t.End(),
			freq:     t.Pitch,
			velocity: t.Velocity,
		})
	}

	slots := i.samplePolyphony()
	i.pool = make([]graph.Node, slots)
	i.free = make([]int, 0, slots)
	for s := range i.pool {
		i.pool[s] = synth.Instantiate(i.spec)
		i.pool[s].SetSampleRate(i.sr)
		i.pool[s].Allocate()
	}
	i.active = make([]int, 0, slots)
	i.Reset()
}

// samplePolyphony counts overlaps with the same end-before-start ordering
// Next uses.
func (i *Instrument) samplePolyphony() int {
	ends := make([]int64, len(i.notes))
	for n, nt := range i.notes {
		ends[n] = nt.end
	}
	sort.Slice(ends, func(a, b int) bool { return ends[a] < ends[b] })
	var cur, peak, e int
	for _, nt := range i.notes {
		for e < len(ends) && ends[e] <= nt.start {
			cur--
			e++
		}
		cur++
		peak = max(peak, cur)
	}
	return peak
}

func (i *Instrument) Reset() {
	i.pos = 0
	i.next = 0
	i.active = i.active[:0]
	i.free = i.free[:0]
	for s := len(i.pool) - 1; s >= 0; s-- {
		i.free = append(i.free, s)
	}
	i.timer.Set(0)
}

// Next mixes every sounding note for the current sample.
func (i *Instrument) Next() (l, r float64) {
	now := float64(i.pos) / i.sr
	i.timer.Set(now)

	kept := i.active[:0]
	for _, idx := range i.active {
		if i.notes[idx].end <= i.pos {
			i.free = append(i.free, i.notes[idx].slot)
			continue
		}
		kept = append(kept, idx)
	}
	i.active = kept

	for i.next < len(i.notes) && i.notes[i.next].start <= i.pos {
		n := &i.notes[i.next]
		if len(i.free) > 0 {
			n.slot = i.free[len(i.free)-1]
			i.free = i.free[:len(i.free)-1]
			i.pool[n.slot].Reset()
			i.active = append(i.active, i.next)
		}
		i.next++
	}

	t := i.timer.Now()
	for _, idx := range i.active {
		n := &i.notes[idx]
		gate := -1.0
		if t < n.gateOff {
			gate = 1
		}
		f := i.pool[n.slot].Tick(graph.Control{Freq: n.freq, Gate: gate, Velocity: n.velocity})
		w := n.weight(i.pos)
		l += f.L * w
		r += f.R * w
	}
	i.pos++
	return l, r
}

// weight fades the note in and out with a smoothstep over n.fade samples.
func (n *note) weight(pos int64) float64 {
	if n.fade <= 0 {
		return 1
	}
	w := 1.0
	if in := float64(pos-n.start) / n.fade; in < 1 {
		w *= smoothstep(in)
	}
	if out := float64(n.end-1-pos) / n.fade; out < 1 {
		w *= smoothstep(out)
	}
	return w
}

func smoothstep(x float64) float64 {
	x = math.Max(0, math.Min(1, x))
	return x * x * (3 - 2*x)
}
