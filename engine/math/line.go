package math

// ClosestPointOnSegment returns the point on the segment [start, end] nearest to point.
// A degenerate segment returns start.
func ClosestPointOnSegment(start, end, point Vec3) Vec3 {
	segment := end.Sub(start)
	lengthSquared := segment.LengthSquared()
	if lengthSquared <= K_SMALL_NUMBER {
		return start
	}
	t := Clamp(point.Sub(start).Dot(segment)/lengthSquared, 0, 1)
	return start.Add(segment.MulScalar(t))
}

// ClosestPointOnInfiniteLine returns the point on the infinite line through
// lineStart and lineEnd nearest to point. A degenerate line returns lineStart.
func ClosestPointOnInfiniteLine(lineStart, lineEnd, point Vec3) Vec3 {
	direction := lineEnd.Sub(lineStart)
	lengthSquared := direction.LengthSquared()
	if lengthSquared <= K_SMALL_NUMBER {
		return lineStart
	}
	t := point.Sub(lineStart).Dot(direction) / lengthSquared
	return lineStart.Add(direction.MulScalar(t))
}
