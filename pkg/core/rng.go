package core

import (
	"math/rand/v2"
	"sync"
)

// SeedRange is the exclusive upper bound for freshly drawn planet seeds.
const SeedRange = 1000.0

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic
// seeding. It is safe for concurrent use; the editor and the prompt
// translator draw from the same instance.
type RNG struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 {
	if r == nil {
		return rand.Float64()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.r.Float64()
}

// Seed draws a planet seed in [0, SeedRange). A nil RNG falls back to the
// auto-seeded global source so callers can ask for a fresh seed without
// threading an RNG around.
func (r *RNG) Seed() float64 {
	return r.Float64() * SeedRange
}

// Jitter scales v by a random factor in [1-spread, 1+spread).
func (r *RNG) Jitter(v, spread float64) float64 {
	return v * (1 - spread + 2*spread*r.Float64())
}
