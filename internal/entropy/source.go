// Package entropy provides the randomness source injected into every
// stochastic system (generation, battles, AI rolls, events) so outcomes
// reproduce under a fixed seed.
package entropy

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

// Source wraps a seeded PRNG. Not safe for concurrent use; the simulation
// runs on one logical thread.
type Source struct {
	rng  *rand.Rand
	seed int64
}

// NewSource creates a source from an explicit seed. A seed of 0 draws one
// from crypto/rand.
func NewSource(seed int64) *Source {
	if seed == 0 {
		seed = cryptoSeed()
	}
	return &Source{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the seed the source was created with.
func (s *Source) Seed() int64 {
	return s.seed
}

// Float returns a random float64 in [0, 1).
func (s *Source) Float() float64 {
	return s.rng.Float64()
}

// Range returns a random float64 in [lo, hi).
func (s *Source) Range(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// Intn returns a random int in [0, n). n must be > 0.
func (s *Source) Intn(n int) int {
	return s.rng.Intn(n)
}

// Between returns a random int in [lo, hi] inclusive.
func (s *Source) Between(lo, hi int) int {
	return lo + s.rng.Intn(hi-lo+1)
}

// Chance returns true with probability p.
func (s *Source) Chance(p float64) bool {
	return s.rng.Float64() < p
}

// Shuffle randomizes the order of n elements via swap.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	s.rng.Shuffle(n, swap)
}

// Pick returns a random element of items. Panics on an empty slice; callers
// check emptiness first.
func Pick[T any](s *Source, items []T) T {
	return items[s.rng.Intn(len(items))]
}

// Fork derives an independent source for a subsystem so that consuming
// randomness in one system does not perturb another.
func (s *Source) Fork(offset int64) *Source {
	return NewSource(s.seed + offset)
}

func cryptoSeed() int64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		// Never expected; fall back to a fixed seed rather than fail.
		return 1
	}
	n := int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
	if n == 0 {
		n = 1
	}
	return n
}
