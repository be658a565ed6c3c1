// Package randutil centralises how the trainer builds deterministic random
// sources so that seeded runs (tests, --seed flags) are reproducible.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided int64.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Stream returns an independent generator for the n-th worker of a seeded
// run. Streams of the same seed never share a PCG state.
func Stream(seed int64, n int) *rand.Rand {
	return New(int64(mix(uint64(seed) + uint64(n+1)*goldenRatio64)))
}

// Seed picks a fresh seed from the wall clock, for callers that did not ask
// for a reproducible run.
func Seed() int64 {
	return int64(mix(uint64(time.Now().UnixNano())))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
