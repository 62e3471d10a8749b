package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-4

func assertVec3(t *testing.T, expected, actual Vec3) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, tolerance, "x")
	assert.InDelta(t, expected.Y, actual.Y, tolerance, "y")
	assert.InDelta(t, expected.Z, actual.Z, tolerance, "z")
}

func TestVec3Normalize(t *testing.T) {
	n, ok := NewVec3(3, 0, 4).Normalize()
	require.True(t, ok)
	assert.InDelta(t, 1, n.Length(), tolerance)
	assertVec3(t, NewVec3(0.6, 0, 0.8), n)

	_, ok = NewVec3Zero().Normalize()
	assert.False(t, ok)
}

func TestRotateAngleAxis(t *testing.T) {
	v := NewVec3(1, 0, 0).RotateAngleAxis(90, NewVec3Up())
	assertVec3(t, NewVec3(0, 1, 0), v)
}

func TestRotatorOrder(t *testing.T) {
	// yaw turns X towards Y about the up axis
	assertVec3(t, NewVec3(0, 1, 0), NewRotator(0, 90, 0).RotateVector(NewVec3(1, 0, 0)))
	// roll turns Y towards Z about X
	assertVec3(t, NewVec3(0, 0, 1), NewRotator(0, 0, 90).RotateVector(NewVec3(0, 1, 0)))
	// roll is applied before yaw
	assertVec3(t, NewVec3(0, 0, 1), NewRotator(0, 90, 90).RotateVector(NewVec3(0, 1, 0)))
}

func TestRotatorScaleDoesNotWrap(t *testing.T) {
	half := NewRotator(0, 360, 0).Scale(0.5)
	assert.Equal(t, float32(180), half.Yaw)
	assertVec3(t, NewVec3(-1, 0, 0), half.RotateVector(NewVec3(1, 0, 0)))
	assertVec3(t, NewVec3(1, 0, 0), NewRotator(0, 360, 0).RotateVector(NewVec3(1, 0, 0)))
}

func TestQuaternionMatchesMatrix(t *testing.T) {
	q := NewRotator(30, 45, 10).Quaternion()
	v := NewVec3(1, 2, 3)
	assertVec3(t, q.RotateVector(v), v.Transform(q.ToMat4()))
}

func TestTransformPosition(t *testing.T) {
	tr := TransformFromPositionRotationScale(
		NewVec3(10, 0, 0),
		NewQuatFromAxisAngle(NewVec3Up(), DegToRad(90), true),
		NewVec3(2, 2, 2))
	// scale, then rotate, then translate
	assertVec3(t, NewVec3(10, 2, 0), tr.TransformPosition(NewVec3(1, 0, 0)))

	var none *Transform
	assertVec3(t, NewVec3(1, 2, 3), none.TransformPosition(NewVec3(1, 2, 3)))
}

func TestClosestPoints(t *testing.T) {
	start, end := NewVec3(0, 0, 0), NewVec3(10, 0, 0)

	assertVec3(t, NewVec3(5, 0, 0), ClosestPointOnSegment(start, end, NewVec3(5, 3, 0)))
	assertVec3(t, NewVec3(10, 0, 0), ClosestPointOnSegment(start, end, NewVec3(15, 3, 0)))
	assertVec3(t, NewVec3(15, 0, 0), ClosestPointOnInfiniteLine(start, end, NewVec3(15, 3, 0)))
	assertVec3(t, start, ClosestPointOnSegment(start, start, NewVec3(1, 1, 1)))
}

func TestRoundHalfFromZero(t *testing.T) {
	assert.Equal(t, int32(3), RoundHalfFromZero(2.5))
	assert.Equal(t, int32(-3), RoundHalfFromZero(-2.5))
	assert.Equal(t, int32(2), RoundHalfFromZero(2.49))
	assert.Equal(t, int32(0), RoundHalfFromZero(0))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, Clamp(7, 0, 5))
	assert.Equal(t, float32(0), Clamp(float32(-1), 0, 1))
	assert.Equal(t, float32(0.5), Clamp(float32(0.5), 0, 1))
}

func TestEase(t *testing.T) {
	funcs := []EasingFunc{
		EasingLinear, EasingSinusoidalIn, EasingSinusoidalOut, EasingSinusoidalInOut,
		EasingEaseIn, EasingEaseOut, EasingEaseInOut, EasingExpoIn, EasingExpoOut,
		EasingExpoInOut, EasingCircularIn, EasingCircularOut, EasingCircularInOut,
	}
	for _, fn := range funcs {
		t.Run(fn.String(), func(t *testing.T) {
			assert.InDelta(t, 0, Ease(fn, 0, 2, 2), 1e-3)
			assert.InDelta(t, 1, Ease(fn, 1, 2, 2), 1e-3)
		})
	}

	assert.InDelta(t, 0.25, Ease(EasingEaseIn, 0.5, 0, 2), tolerance)
	assert.InDelta(t, 0.75, Ease(EasingEaseOut, 0.5, 0, 2), tolerance)
	assert.InDelta(t, 0.5, Ease(EasingSinusoidalInOut, 0.5, 0, 0), tolerance)
	assert.InDelta(t, 0.3, Ease(EasingLinear, 0.3, 0, 0), tolerance)
}

func TestEaseStep(t *testing.T) {
	assert.InDelta(t, 0, InterpStep(0.2, 3), tolerance)
	assert.InDelta(t, 0.5, InterpStep(0.5, 3), tolerance)
	assert.InDelta(t, 1, InterpStep(0.7, 3), tolerance)
	assert.InDelta(t, 0, InterpStep(0.9, 1), tolerance)
}

func TestParseEasingFunc(t *testing.T) {
	fn, err := ParseEasingFunc("Expo_In_Out")
	require.NoError(t, err)
	assert.Equal(t, EasingExpoInOut, fn)

	_, err = ParseEasingFunc("bounce")
	assert.Error(t, err)
}

func TestRandomStreamReproducible(t *testing.T) {
	a := NewRandomStream(42)
	b := NewRandomStream(42)
	for i := 0; i < 16; i++ {
		v := a.FRandRange(-2, 2)
		assert.Equal(t, v, b.FRandRange(-2, 2))
		assert.GreaterOrEqual(t, v, float32(-2))
		assert.Less(t, v, float32(2))
	}

	first := NewRandomStream(7)
	x := first.FRand()
	first.Reset()
	assert.Equal(t, x, first.FRand())
	assert.Equal(t, int32(7), first.Seed())

	r := first.RandRange(3, 5)
	assert.True(t, r >= 3 && r <= 5)
	assert.Len(t, first.Perm(8), 8)
}
