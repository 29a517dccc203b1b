package graph

import (
	"math"
	"sync/atomic"
)

// Timer is the clock shared between the render loop and its observers.
// Only the render loop writes it; any goroutine may read it.
type Timer struct {
	bits atomic.Uint64
}

func NewTimer() *Timer {
	return &Timer{}
}

func (t *Timer) Set(seconds float64) {
	t.bits.Store(math.Float64bits(seconds))
}

// Now is the time of the most recently rendered sample, in seconds.
func (t *Timer) Now() float64 {
	return math.Float64frombits(t.bits.Load())
}
