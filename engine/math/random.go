package math

import (
	"golang.org/x/exp/rand"
)

// RandomStream is a seeded, reproducible source of random numbers. Two streams
// built from the same seed produce the same sequence.
type RandomStream struct {
	seed int32
	rng  *rand.Rand
}

func NewRandomStream(seed int32) *RandomStream {
	return &RandomStream{
		seed: seed,
		rng:  rand.New(rand.NewSource(uint64(uint32(seed)))),
	}
}

func (rs *RandomStream) Seed() int32 {
	return rs.seed
}

// Reset rewinds the stream to the start of its sequence.
func (rs *RandomStream) Reset() {
	rs.rng.Seed(uint64(uint32(rs.seed)))
}

// FRand returns a value in [0, 1).
func (rs *RandomStream) FRand() float32 {
	return rs.rng.Float32()
}

// FRandRange returns a value in [min, max).
func (rs *RandomStream) FRandRange(min, max float32) float32 {
	return min + (max-min)*rs.FRand()
}

// RandRange returns an integer in [min, max].
func (rs *RandomStream) RandRange(min, max int32) int32 {
	if max <= min {
		return min
	}
	return min + rs.rng.Int31n(max-min+1)
}

// Perm returns a pseudo-random permutation of [0, n).
func (rs *RandomStream) Perm(n int) []int {
	return rs.rng.Perm(n)
}
