package geometry

import (
	"github.com/chewxy/math32"

	"github.com/spaghettifunk/sculpt/engine/core"
	"github.com/spaghettifunk/sculpt/engine/math"
)

// GenerateNormals returns smooth per-vertex normals. Each face contributes
// its unnormalized cross product, so larger faces weigh more. Vertices not
// used by any triangle get the up vector.
func GenerateNormals(vertices []math.Vec3, triangles []uint32) []math.Vec3 {
	normals := make([]math.Vec3, len(vertices))
	for i := 0; i+2 < len(triangles); i += 3 {
		i0, i1, i2 := triangles[i+0], triangles[i+1], triangles[i+2]
		if int(i0) >= len(vertices) || int(i1) >= len(vertices) || int(i2) >= len(vertices) {
			continue
		}

		edge1 := vertices[i1].Sub(vertices[i0])
		edge2 := vertices[i2].Sub(vertices[i0])
		face := edge1.Cross(edge2)

		normals[i0] = normals[i0].Add(face)
		normals[i1] = normals[i1].Add(face)
		normals[i2] = normals[i2].Add(face)
	}

	for i := range normals {
		n, ok := normals[i].Normalize()
		if !ok {
			n = math.NewVec3Up()
		}
		normals[i] = n
	}
	return normals
}

// GenerateTangents derives per-vertex tangents from UVs and normals. The
// tangent is orthogonalized against the normal and FlipTangentY records a
// mirrored UV layout. Without UVs every tangent points along X.
func GenerateTangents(vertices []math.Vec3, uvs []math.Vec2, normals []math.Vec3, triangles []uint32) []math.Tangent {
	tangents := make([]math.Tangent, len(vertices))
	if len(uvs) != len(vertices) {
		for i := range tangents {
			tangents[i] = math.Tangent{TangentX: math.NewVec3(1, 0, 0)}
		}
		return tangents
	}

	tan := make([]math.Vec3, len(vertices))
	bitan := make([]math.Vec3, len(vertices))

	for i := 0; i+2 < len(triangles); i += 3 {
		i0, i1, i2 := triangles[i+0], triangles[i+1], triangles[i+2]
		if int(i0) >= len(vertices) || int(i1) >= len(vertices) || int(i2) >= len(vertices) {
			continue
		}

		edge1 := vertices[i1].Sub(vertices[i0])
		edge2 := vertices[i2].Sub(vertices[i0])

		deltaU1 := uvs[i1].X - uvs[i0].X
		deltaV1 := uvs[i1].Y - uvs[i0].Y
		deltaU2 := uvs[i2].X - uvs[i0].X
		deltaV2 := uvs[i2].Y - uvs[i0].Y

		dividend := deltaU1*deltaV2 - deltaU2*deltaV1
		if math32.Abs(dividend) <= math.K_SMALL_NUMBER {
			continue
		}
		fc := 1.0 / dividend

		t := edge1.MulScalar(deltaV2).Sub(edge2.MulScalar(deltaV1)).MulScalar(fc)
		b := edge2.MulScalar(deltaU1).Sub(edge1.MulScalar(deltaU2)).MulScalar(fc)

		for _, idx := range [3]uint32{i0, i1, i2} {
			tan[idx] = tan[idx].Add(t)
			bitan[idx] = bitan[idx].Add(b)
		}
	}

	for i := range tangents {
		var n math.Vec3
		if i < len(normals) {
			n = normals[i]
		}
		// Gram-Schmidt
		t := tan[i].Sub(n.MulScalar(n.Dot(tan[i])))
		tx, ok := t.Normalize()
		if !ok {
			tx = math.NewVec3(1, 0, 0)
		}
		tangents[i] = math.Tangent{
			TangentX:     tx,
			FlipTangentY: n.Cross(tx).Dot(bitan[i]) < 0,
		}
	}
	return tangents
}

// RecalculateNormals replaces every section's normals with smooth normals
// built from its triangles.
func (m *MeshGeometry) RecalculateNormals() {
	for s := range m.Sections {
		section := &m.Sections[s]
		section.Normals = GenerateNormals(section.Vertices, section.Triangles)
	}
	core.LogDebug("recalculated normals for %d sections", len(m.Sections))
}

// RecalculateTangents rebuilds tangents from the current normals and UVs.
// Sections without matching normals get their normals rebuilt first.
func (m *MeshGeometry) RecalculateTangents() {
	for s := range m.Sections {
		section := &m.Sections[s]
		if len(section.Normals) != len(section.Vertices) {
			section.Normals = GenerateNormals(section.Vertices, section.Triangles)
		}
		section.Tangents = GenerateTangents(section.Vertices, section.UVs, section.Normals, section.Triangles)
	}
	core.LogDebug("recalculated tangents for %d sections", len(m.Sections))
}
