package math

import "golang.org/x/exp/constraints"

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// Lerp linearly interpolates between a and b by alpha. Alpha is not clamped.
func Lerp[T constraints.Float](a, b, alpha T) T {
	return a + alpha*(b-a)
}

// RoundHalfFromZero rounds to the nearest integer, with halves rounded away from zero.
func RoundHalfFromZero(f float32) int32 {
	if f < 0 {
		return -int32(-f + 0.5)
	}
	return int32(f + 0.5)
}
