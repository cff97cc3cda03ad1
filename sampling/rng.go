// SPDX-License-Identifier: MIT
//
// Package sampling - RNG utilities for the trial driver.
//
// This file centralizes deterministic random generation for sampling.
//
// Goals:
//   - Determinism: same seed ⇒ identical samples ⇒ identical scores.
//   - Injection: the driver never reaches for a global or time-based source;
//     callers pass a *rand.Rand or a seed.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Do not share a *rand.Rand across goroutines.
package sampling

import "math/rand"

// defaultRNGSeed is the fixed "zero" seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// NewRand returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ use defaultRNGSeed; otherwise use the provided seed verbatim.
//
// Complexity: O(1).
func NewRand(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}

	return rand.New(rand.NewSource(s))
}

// Sample draws n distinct elements of population uniformly without
// replacement, using a partial Fisher–Yates shuffle on a copy. The population
// is never modified.
//
// If n exceeds the population size the whole population is returned (in
// shuffled order) and clamped is true. n <= 0 returns nil. If rng==nil, the
// default deterministic stream is used.
//
// Complexity: O(len(population)) time and space.
func Sample(rng *rand.Rand, population []string, n int) (out []string, clamped bool) {
	if n <= 0 || len(population) == 0 {
		return nil, n > len(population)
	}
	if n > len(population) {
		n = len(population)
		clamped = true
	}

	r := rng
	if r == nil {
		r = NewRand(0)
	}

	buf := append([]string(nil), population...)
	var i, j int
	for i = 0; i < n; i++ {
		j = i + r.Intn(len(buf)-i)
		buf[i], buf[j] = buf[j], buf[i]
	}

	return buf[:n:n], clamped
}
