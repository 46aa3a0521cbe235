// Package sim implements the deterministic simulation core for a single
// run: the mutable run state, the per-tick update pipeline, the command
// handlers, the termination state machine and the snapshot projector.
// The package contains pure logic with no external dependencies; the
// platform layer drives it on a fixed cadence.
package sim

// RNG is a deterministic pseudo-random number generator (Mulberry32).
// Given the same seed and the same sequence of calls, the output is
// bit-for-bit reproducible, which lets a run be replayed from its run ID.
type RNG struct {
	state uint32
}

// NewRNG creates an RNG with the given seed.
func NewRNG(seed uint32) *RNG {
	return &RNG{state: seed}
}

// Seed resets the generator state.
func (r *RNG) Seed(s uint32) {
	r.state = s
}

// Next returns the next random float64 in [0, 1).
func (r *RNG) Next() float64 {
	r.state += 0x6d2b79f5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// IntN returns a random int in [min, maxExclusive).
func (r *RNG) IntN(min, maxExclusive int) int {
	return int(r.Next()*float64(maxExclusive-min)) + min
}

// Chance returns true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.Next() < p
}

// Choice returns a random element from items.
// The second return value is false if items is empty.
func Choice[T any](r *RNG, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[r.IntN(0, len(items))], true
}

// WeightedChoice returns an element selected proportionally to its weight.
// Returns false if the slices are empty, their lengths differ, or the
// total weight is not positive.
func WeightedChoice[T any](r *RNG, items []T, weights []float64) (T, bool) {
	var zero T
	if len(items) == 0 || len(items) != len(weights) {
		return zero, false
	}

	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return zero, false
	}

	roll := r.Next() * total
	for i, w := range weights {
		roll -= w
		if roll <= 0 {
			return items[i], true
		}
	}

	return items[len(items)-1], true
}

// SeedFromRunID derives an RNG seed deterministically from a run
// identifier string using a rolling hash.
func SeedFromRunID(runID string) uint32 {
	var hash int32
	for _, ch := range runID {
		hash = hash<<5 - hash + int32(ch)
	}
	if hash < 0 {
		hash = -hash
	}
	return uint32(hash)
}
