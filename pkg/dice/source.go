package dice

import "math/rand/v2"

// Source draws die results. Implementations need not be safe for
// concurrent use; give each goroutine its own Source.
type Source interface {
	// Roll returns a uniform value in [1, sides]. sides is always >= 1.
	Roll(sides uint64) uint64
}

// RandSource is a Source backed by a PCG generator.
type RandSource struct {
	rng *rand.Rand
}

// NewSource returns a deterministic Source for the given seed.
func NewSource(seed uint64) *RandSource {
	return &RandSource{rng: rand.New(rand.NewPCG(seed, seed))}
}

// NewRandomSource returns a Source seeded from the runtime's random state.
func NewRandomSource() *RandSource {
	return &RandSource{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// Roll implements Source.
func (s *RandSource) Roll(sides uint64) uint64 {
	return s.rng.Uint64N(sides) + 1
}
