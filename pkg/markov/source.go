package markov

import "math/rand/v2"

// Source is the randomness a Model draws from. *rand.Rand from math/rand/v2
// satisfies it.
type Source interface {
	// IntN returns a value in [0, n). n is always positive.
	IntN(n int) int
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// newSource returns a PCG-backed source owned by a single model.
func newSource(seed1, seed2 uint64) Source {
	return rand.New(rand.NewPCG(seed1, seed2))
}
