package rng

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// Source is the only random stream generation stages draw from. Every stage
// receives its own Source derived from the run seed, so adding draws to one
// stage never shifts another.
type Source struct {
	seed int64
	r    *rand.Rand
}

func New(seed int64) *Source {
	// Non-cryptographic PRNG is intentional for deterministic generation.
	// #nosec G404
	return &Source{
		seed: seed,
		r:    rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b"))),
	}
}

// Derive returns an independent stream keyed by salt.
func (s *Source) Derive(salt string) *Source {
	return New(int64(seedWord(s.seed, salt)))
}

func (s *Source) Seed() int64 { return s.seed }

func (s *Source) Float64() float64 { return s.r.Float64() }

// Range returns a uniform value in [lo, hi).
func (s *Source) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*s.r.Float64()
}

func (s *Source) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return s.r.IntN(n)
}

// IntRange returns a uniform int in [lo, hi].
func (s *Source) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.IntN(hi-lo+1)
}

func (s *Source) Chance(p float64) bool {
	return s.r.Float64() < p
}

func (s *Source) Shuffle(n int, swap func(i, j int)) {
	s.r.Shuffle(n, swap)
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}
