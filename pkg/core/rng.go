package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Bool returns a random boolean value.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}

// IntN returns a random int in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Range returns a uniformly distributed float64 in [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.r.Float64()*(hi-lo)
}

// Dyadic returns a random multiple of 1/denom in [-limit, limit]. Values of
// this form survive addition and subtraction without rounding as long as
// limit*denom stays well below 2^53.
func (r *RNG) Dyadic(limit, denom int) float64 {
	if limit <= 0 || denom <= 0 {
		return 0
	}
	span := 2 * limit * denom
	return float64(r.r.IntN(span+1)-limit*denom) / float64(denom)
}

// Pick returns a random element of values, or the zero value when empty.
func Pick[T any](r *RNG, values []T) T {
	var zero T
	if len(values) == 0 {
		return zero
	}
	return values[r.r.IntN(len(values))]
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
