package core

import "math"

// DefaultSmoothingFactor is the weight given to the previous value when a
// fresh sample is folded in.
const DefaultSmoothingFactor = 0.3

// Smoother applies an exponential moving average to mux channel samples.
// It holds no state of its own; the channel table slot it overwrites is
// the state.
type Smoother struct {
	Factor float64
}

// Apply folds a fresh raw sample into the previous value. The result is a
// convex combination, so it always lies between min(old, raw) and
// max(old, raw) and never leaves [0, 65535].
func (s Smoother) Apply(old, raw uint16) uint16 {
	return uint16(math.Round(s.Factor*float64(old) + (1-s.Factor)*float64(raw)))
}
