package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/sculpt/engine/core"
	"github.com/spaghettifunk/sculpt/engine/math"
)

func TestLoadFromStaticMesh(t *testing.T) {
	m := loaded(t)

	assert.True(t, m.ID.IsValid())
	assert.Len(t, m.Sections, 2)
	assert.Equal(t, 8, m.TotalVertexCount())
	assert.Equal(t, 4, m.TotalTriangleCount())
	assert.Equal(t, "2 sections, 8 vertices, 4 triangles", m.Summary())

	for _, s := range m.Sections {
		require.Len(t, s.VertexColors, 4)
		for _, c := range s.VertexColors {
			assert.Equal(t, DefaultVertexColor, c)
		}
	}
}

func TestLoadCopiesSourceData(t *testing.T) {
	src := twoQuads()
	m := NewMeshGeometry()
	require.NoError(t, m.LoadFromStaticMesh(src, 0))

	m.Sections[0].Vertices[0] = math.NewVec3(9, 9, 9)
	assert.Equal(t, math.NewVec3(0, 0, 0), src.lods[0][0].Vertices[0])
}

func TestLoadErrors(t *testing.T) {
	m := loaded(t)

	err := m.LoadFromStaticMesh(nil, 0)
	assert.ErrorIs(t, err, core.ErrNoSource)

	err = m.LoadFromStaticMesh(twoQuads(), 3)
	assert.ErrorIs(t, err, core.ErrInvalidLOD)
	assert.Empty(t, m.Sections)
}

func TestRoundTrip(t *testing.T) {
	src := twoQuads()
	m := NewMeshGeometry()
	require.NoError(t, m.LoadFromStaticMesh(src, 0))

	target := &fakeTarget{}
	require.NoError(t, m.UpdateProceduralMeshComponent(target, true))
	assert.Equal(t, 1, target.cleared)
	assert.True(t, target.collision)
	require.Len(t, target.sections, 2)

	for i, original := range src.lods[0] {
		rebuilt := target.sections[i]
		assert.Equal(t, original.Vertices, rebuilt.Vertices)
		assert.Equal(t, original.Triangles, rebuilt.Triangles)
		assert.Equal(t, original.Normals, rebuilt.Normals)
		assert.Equal(t, original.UVs, rebuilt.UVs)
		assert.Equal(t, original.Tangents, rebuilt.Tangents)
	}
}

func TestUpdateWithoutTarget(t *testing.T) {
	m := loaded(t)
	assert.ErrorIs(t, m.UpdateProceduralMeshComponent(nil, false), core.ErrNoTarget)
}

func TestBoundsAndClone(t *testing.T) {
	m := loaded(t)
	b := m.Bounds()
	assert.Equal(t, math.NewVec3(0, 0, 0), b.Min)
	assert.Equal(t, math.NewVec3(3, 1, 1), b.Max)

	assert.Equal(t, math.Extents3D{}, NewMeshGeometry().Bounds())

	c := m.Clone()
	assert.Equal(t, m.ID, c.ID)
	c.Sections[1].Vertices[0] = math.NewVec3(-1, -1, -1)
	assert.Equal(t, math.NewVec3(2, 0, 1), m.Sections[1].Vertices[0])
}

func TestRecalculateNormalsAndTangents(t *testing.T) {
	m := loaded(t)
	for i := range m.Sections {
		m.Sections[i].Normals = nil
		m.Sections[i].Tangents = nil
	}

	m.RecalculateTangents()
	for _, s := range m.Sections {
		require.Len(t, s.Normals, 4)
		require.Len(t, s.Tangents, 4)
		for i := range s.Vertices {
			assertVec3(t, math.NewVec3Up(), s.Normals[i])
			assertVec3(t, math.NewVec3(1, 0, 0), s.Tangents[i].TangentX)
			assert.False(t, s.Tangents[i].FlipTangentY)
		}
	}

	// mirrored UVs flip the bitangent
	for i := range m.Sections {
		for j := range m.Sections[i].UVs {
			m.Sections[i].UVs[j].Y = 1 - m.Sections[i].UVs[j].Y
		}
	}
	m.RecalculateTangents()
	assert.True(t, m.Sections[0].Tangents[0].FlipTangentY)
}

func TestGenerateNormalsArea(t *testing.T) {
	vertices := []math.Vec3{
		math.NewVec3(0, 0, 0), math.NewVec3(1, 0, 0), math.NewVec3(0, 1, 0), math.NewVec3(5, 5, 5),
	}
	normals := GenerateNormals(vertices, []uint32{0, 1, 2})
	assertVec3(t, math.NewVec3Up(), normals[0])
	// unreferenced vertex
	assertVec3(t, math.NewVec3Up(), normals[3])
}
