// Package randutil builds the seeded random sources used for serve angles.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Both PCG words are derived from the one seed so a match can be replayed from
// the single number printed in the logs.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Seed returns *explicit when set, otherwise a time-derived seed. The bool
// reports whether the seed was chosen by the caller.
func Seed(explicit *int64) (int64, bool) {
	if explicit != nil {
		return *explicit, true
	}
	return time.Now().UnixNano(), false
}

// Derive returns the n-th child seed of a parent seed. Concurrent workers use
// it so that each match has its own independent, reproducible stream.
func Derive(parent int64, n int) int64 {
	return int64(mix(uint64(parent) + uint64(n+1)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
