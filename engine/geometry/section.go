package geometry

import (
	"github.com/spaghettifunk/sculpt/engine/math"
)

// DefaultVertexColor is assigned to vertices whose source carries no colour.
var DefaultVertexColor = math.NewVec4One()

// SectionGeometry is one independently indexed part of a mesh. Every
// per-vertex slice is indexed by the local vertex index.
type SectionGeometry struct {
	Vertices     []math.Vec3
	Triangles    []uint32
	Normals      []math.Vec3
	UVs          []math.Vec2
	VertexColors []math.Vec4
	Tangents     []math.Tangent
}

func (s *SectionGeometry) VertexCount() int {
	return len(s.Vertices)
}

func (s *SectionGeometry) TriangleCount() int {
	return len(s.Triangles) / 3
}

// Clone returns a deep copy of the section.
func (s SectionGeometry) Clone() SectionGeometry {
	return SectionGeometry{
		Vertices:     cloneSlice(s.Vertices),
		Triangles:    cloneSlice(s.Triangles),
		Normals:      cloneSlice(s.Normals),
		UVs:          cloneSlice(s.UVs),
		VertexColors: cloneSlice(s.VertexColors),
		Tangents:     cloneSlice(s.Tangents),
	}
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// fillVertexColors makes sure there is one colour per vertex, padding with
// DefaultVertexColor.
func (s *SectionGeometry) fillVertexColors() {
	if len(s.VertexColors) == len(s.Vertices) {
		return
	}
	colors := make([]math.Vec4, len(s.Vertices))
	n := copy(colors, s.VertexColors)
	for i := n; i < len(colors); i++ {
		colors[i] = DefaultVertexColor
	}
	s.VertexColors = colors
}
