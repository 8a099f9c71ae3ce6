// Package rng provides the explicit pseudo-random source shared by a match.
//
// Every consumer that needs randomness (spawn jitter, opponent mode choice,
// storm placement, dot jitter) receives a *Source instead of reaching for a
// package-level generator, so a fixed seed reproduces a run.
package rng

import (
	"math"
	"math/rand/v2"
)

// Source is a seeded PCG generator. It is not safe for concurrent use; a
// match is single-threaded and owns exactly one Source.
type Source struct {
	r    *rand.Rand
	seed uint64
}

// New returns a Source seeded with seed.
func New(seed uint64) *Source {
	return &Source{
		r:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// Seed returns the value the source was created with.
func (s *Source) Seed() uint64 { return s.seed }

// Float64 returns a uniform value in [0, 1).
func (s *Source) Float64() float64 { return s.r.Float64() }

// Range returns a uniform value in [min, max).
func (s *Source) Range(min, max float64) float64 {
	return min + s.r.Float64()*(max-min)
}

// Jitter returns a uniform value in [-k/2, k/2).
func (s *Source) Jitter(k float64) float64 {
	return (s.r.Float64() - 0.5) * k
}

// Angle returns a uniform angle in [0, 2π).
func (s *Source) Angle() float64 {
	return s.r.Float64() * math.Pi * 2
}

// Chance reports true with probability p.
func (s *Source) Chance(p float64) bool {
	return s.r.Float64() < p
}

// IntN returns a uniform int in [0, n). n <= 0 yields 0.
func (s *Source) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.IntN(n)
}
