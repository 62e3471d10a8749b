package geometry

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spaghettifunk/sculpt/engine/core"
	"github.com/spaghettifunk/sculpt/engine/math"
)

type fakeSource struct {
	name string
	lods [][]SectionGeometry
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) NumSections(lod int) (int, error) {
	if lod < 0 || lod >= len(f.lods) {
		return 0, core.ErrInvalidLOD
	}
	return len(f.lods[lod]), nil
}

func (f *fakeSource) Section(lod, index int) (SectionGeometry, error) {
	if lod < 0 || lod >= len(f.lods) {
		return SectionGeometry{}, core.ErrInvalidLOD
	}
	if index < 0 || index >= len(f.lods[lod]) {
		return SectionGeometry{}, fmt.Errorf("no section %d", index)
	}
	return f.lods[lod][index], nil
}

type fakeTarget struct {
	sections  map[int]SectionGeometry
	collision bool
	cleared   int
}

func (f *fakeTarget) ClearAllMeshSections() {
	f.sections = map[int]SectionGeometry{}
	f.cleared++
}

func (f *fakeTarget) CreateMeshSection(index int, section SectionGeometry, createCollision bool) error {
	f.sections[index] = section
	f.collision = createCollision
	return nil
}

type fakeTexture struct {
	width, height int
	texels        []math.Vec4
}

func (f *fakeTexture) Size() (int, int) { return f.width, f.height }

func (f *fakeTexture) Texel(x, y int) math.Vec4 { return f.texels[y*f.width+x] }

// quad is a unit square in the XY plane, offset by origin, facing up.
func quad(origin math.Vec3) SectionGeometry {
	return SectionGeometry{
		Vertices: []math.Vec3{
			origin,
			origin.Add(math.NewVec3(1, 0, 0)),
			origin.Add(math.NewVec3(1, 1, 0)),
			origin.Add(math.NewVec3(0, 1, 0)),
		},
		Triangles: []uint32{0, 1, 2, 0, 2, 3},
		Normals:   []math.Vec3{math.NewVec3Up(), math.NewVec3Up(), math.NewVec3Up(), math.NewVec3Up()},
		UVs:       []math.Vec2{math.NewVec2(0, 0), math.NewVec2(1, 0), math.NewVec2(1, 1), math.NewVec2(0, 1)},
		Tangents: []math.Tangent{
			{TangentX: math.NewVec3(1, 0, 0)}, {TangentX: math.NewVec3(1, 0, 0)},
			{TangentX: math.NewVec3(1, 0, 0)}, {TangentX: math.NewVec3(1, 0, 0)},
		},
	}
}

func twoQuads() *fakeSource {
	return &fakeSource{
		name: "two-quads",
		lods: [][]SectionGeometry{{quad(math.NewVec3(0, 0, 0)), quad(math.NewVec3(2, 0, 1))}},
	}
}

func loaded(t *testing.T) *MeshGeometry {
	t.Helper()
	m := NewMeshGeometry()
	if err := m.LoadFromStaticMesh(twoQuads(), 0); err != nil {
		t.Fatalf("load: %v", err)
	}
	return m
}

func assertVec3(t *testing.T, expected, actual math.Vec3) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, 1e-4, "x")
	assert.InDelta(t, expected.Y, actual.Y, 1e-4, "y")
	assert.InDelta(t, expected.Z, actual.Z, 1e-4, "z")
}

func allVertices(m *MeshGeometry) []math.Vec3 {
	out := []math.Vec3{}
	for _, s := range m.Sections {
		out = append(out, s.Vertices...)
	}
	return out
}
