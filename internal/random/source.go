// Package random provides the randomness abstraction threaded through doorway
// pair selection. Every draw the pair finder takes goes through a Source, so a
// seeded Source makes a whole enumeration reproducible.
package random

// Source is the randomness provider for tile ordering and pair weighting.
//
// Reproducibility holds for "same seed, same sequence of calls". Reseeding or
// sharing a Source with another consumer mid-enumeration silently breaks it.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
	// Float64 returns a uniformly distributed float in [0.0, 1.0).
	Float64() float64
}
