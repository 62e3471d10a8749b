package spline

import (
	"github.com/spaghettifunk/sculpt/engine/math"
)

const (
	samplesPerSegment = 16
	refineIterations  = 24
)

// Spline is a uniform Catmull-Rom curve through its control points. Points
// are in the spline's local space.
type Spline struct {
	Points []math.Vec3
	Closed bool
}

func New(points []math.Vec3, closed bool) *Spline {
	return &Spline{Points: points, Closed: closed}
}

func (s *Spline) IsEmpty() bool {
	return s == nil || len(s.Points) == 0
}

func (s *Spline) NumSegments() int {
	n := len(s.Points)
	switch {
	case n < 2:
		return 0
	case s.Closed:
		return n
	default:
		return n - 1
	}
}

func (s *Spline) point(i int) math.Vec3 {
	n := len(s.Points)
	if s.Closed {
		return s.Points[((i%n)+n)%n]
	}
	switch {
	case i < 0:
		// mirror the first segment to get a phantom control point
		return s.Points[0].MulScalar(2).Sub(s.Points[1])
	case i >= n:
		return s.Points[n-1].MulScalar(2).Sub(s.Points[n-2])
	default:
		return s.Points[i]
	}
}

// LocationAtInputKey evaluates the curve at key, where the integer part picks
// the segment and the fraction the position within it. The key is clamped to
// [0, NumSegments].
func (s *Spline) LocationAtInputKey(key float32) math.Vec3 {
	if s.IsEmpty() {
		return math.NewVec3Zero()
	}
	segments := s.NumSegments()
	if segments == 0 {
		return s.Points[0]
	}

	key = math.Clamp(key, 0, float32(segments))
	segment := int(key)
	if segment == segments {
		segment--
	}
	t := key - float32(segment)

	p0 := s.point(segment - 1)
	p1 := s.point(segment)
	p2 := s.point(segment + 1)
	p3 := s.point(segment + 2)

	t2 := t * t
	t3 := t2 * t

	a := p1.MulScalar(2)
	b := p2.Sub(p0).MulScalar(t)
	c := p0.MulScalar(2).Sub(p1.MulScalar(5)).Add(p2.MulScalar(4)).Sub(p3).MulScalar(t2)
	d := p1.MulScalar(3).Sub(p0).Sub(p2.MulScalar(3)).Add(p3).MulScalar(t3)

	return a.Add(b).Add(c).Add(d).MulScalar(0.5)
}

// FindInputKeyClosestTo returns the input key of the curve point nearest to
// point. The curve is sampled coarsely then refined around the best sample.
func (s *Spline) FindInputKeyClosestTo(point math.Vec3) float32 {
	segments := s.NumSegments()
	if segments == 0 {
		return 0
	}

	total := segments * samplesPerSegment
	step := float32(1) / samplesPerSegment
	bestKey := float32(0)
	bestDist := point.Sub(s.LocationAtInputKey(0)).LengthSquared()
	for i := 1; i <= total; i++ {
		key := float32(i) * step
		d := point.Sub(s.LocationAtInputKey(key)).LengthSquared()
		if d < bestDist {
			bestDist = d
			bestKey = key
		}
	}

	lo := math.Clamp(bestKey-step, 0, float32(segments))
	hi := math.Clamp(bestKey+step, 0, float32(segments))
	for i := 0; i < refineIterations; i++ {
		m1 := lo + (hi-lo)/3
		m2 := hi - (hi-lo)/3
		if point.Sub(s.LocationAtInputKey(m1)).LengthSquared() < point.Sub(s.LocationAtInputKey(m2)).LengthSquared() {
			hi = m2
		} else {
			lo = m1
		}
	}
	return (lo + hi) / 2
}

// FindLocationClosestTo returns the curve point nearest to point, in local space.
func (s *Spline) FindLocationClosestTo(point math.Vec3) math.Vec3 {
	return s.LocationAtInputKey(s.FindInputKeyClosestTo(point))
}

// Length approximates the arc length by summing sampled chords.
func (s *Spline) Length() float32 {
	segments := s.NumSegments()
	var length float32
	prev := s.LocationAtInputKey(0)
	for i := 1; i <= segments*samplesPerSegment; i++ {
		next := s.LocationAtInputKey(float32(i) / samplesPerSegment)
		length += next.Distance(prev)
		prev = next
	}
	return length
}
