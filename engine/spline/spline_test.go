package spline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spaghettifunk/sculpt/engine/math"
)

func assertVec3(t *testing.T, expected, actual math.Vec3, delta float64) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, delta, "x")
	assert.InDelta(t, expected.Y, actual.Y, delta, "y")
	assert.InDelta(t, expected.Z, actual.Z, delta, "z")
}

func TestPassesThroughControlPoints(t *testing.T) {
	s := New([]math.Vec3{
		math.NewVec3(0, 0, 0),
		math.NewVec3(100, 0, 0),
		math.NewVec3(100, 100, 0),
		math.NewVec3(0, 100, 50),
	}, false)

	assert.Equal(t, 3, s.NumSegments())
	for i, p := range s.Points {
		assertVec3(t, p, s.LocationAtInputKey(float32(i)), 1e-3)
	}
}

func TestStraightLine(t *testing.T) {
	s := New([]math.Vec3{math.NewVec3(0, 0, 0), math.NewVec3(100, 0, 0)}, false)
	assertVec3(t, math.NewVec3(50, 0, 0), s.LocationAtInputKey(0.5), 1e-3)
	assert.InDelta(t, 100, s.Length(), 1e-2)

	closest := s.FindLocationClosestTo(math.NewVec3(30, 20, 0))
	assertVec3(t, math.NewVec3(30, 0, 0), closest, 1e-2)

	// beyond the end clamps to the last point
	closest = s.FindLocationClosestTo(math.NewVec3(150, 5, 0))
	assertVec3(t, math.NewVec3(100, 0, 0), closest, 1e-2)
}

func TestClosedLoop(t *testing.T) {
	s := New([]math.Vec3{
		math.NewVec3(0, 0, 0),
		math.NewVec3(10, 0, 0),
		math.NewVec3(10, 10, 0),
		math.NewVec3(0, 10, 0),
	}, true)
	assert.Equal(t, 4, s.NumSegments())
	assertVec3(t, s.Points[0], s.LocationAtInputKey(4), 1e-3)
}

func TestDegenerateSplines(t *testing.T) {
	var none *Spline
	assert.True(t, none.IsEmpty())

	single := New([]math.Vec3{math.NewVec3(1, 2, 3)}, false)
	assertVec3(t, math.NewVec3(1, 2, 3), single.FindLocationClosestTo(math.NewVec3(9, 9, 9)), 1e-6)
	assert.Equal(t, 0, single.NumSegments())
}
