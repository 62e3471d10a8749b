package geometry

import (
	"fmt"

	"github.com/spaghettifunk/sculpt/engine/core"
	"github.com/spaghettifunk/sculpt/engine/math"
	"github.com/spaghettifunk/sculpt/engine/selection"
)

// MeshGeometry is an editable copy of a mesh, split into sections. The
// caller owns it; nothing in this package keeps a reference.
type MeshGeometry struct {
	ID       core.Identifier
	Sections []SectionGeometry
}

func NewMeshGeometry() *MeshGeometry {
	return &MeshGeometry{
		ID:       core.NewIdentifier(),
		Sections: []SectionGeometry{},
	}
}

// LoadFromStaticMesh replaces the current sections with copies of the
// source's sections at the given level of detail.
func (m *MeshGeometry) LoadFromStaticMesh(source MeshSource, lod int) error {
	if source == nil {
		core.LogWarn("LoadFromStaticMesh: no source mesh provided")
		return core.ErrNoSource
	}

	core.LogInfo("reading mesh geometry from '%s'", source.Name())

	m.Sections = m.Sections[:0]

	numSections, err := source.NumSections(lod)
	if err != nil {
		return fmt.Errorf("failed to read sections of '%s': %w", source.Name(), err)
	}
	core.LogInfo("found %d sections for LOD %d", numSections, lod)

	sections := make([]SectionGeometry, 0, numSections)
	for i := 0; i < numSections; i++ {
		section, err := source.Section(lod, i)
		if err != nil {
			return fmt.Errorf("failed to read section %d of '%s': %w", i, source.Name(), err)
		}
		section = section.Clone()
		core.LogInfo("section %d: found %d verts and %d triangles", i, section.VertexCount(), section.TriangleCount())

		section.fillVertexColors()
		sections = append(sections, section)
	}
	m.Sections = sections
	return nil
}

// UpdateProceduralMeshComponent clears target and recreates one target
// section per geometry section, in order.
func (m *MeshGeometry) UpdateProceduralMeshComponent(target MeshTarget, createCollision bool) error {
	if target == nil {
		core.LogWarn("UpdateProceduralMeshComponent: no target mesh provided")
		return core.ErrNoTarget
	}

	target.ClearAllMeshSections()
	for i, section := range m.Sections {
		core.LogDebug("rebuilding section %d", i)
		if err := target.CreateMeshSection(i, section.Clone(), createCollision); err != nil {
			return fmt.Errorf("failed to rebuild section %d: %w", i, err)
		}
	}
	return nil
}

func (m *MeshGeometry) TotalVertexCount() int {
	total := 0
	for i := range m.Sections {
		total += m.Sections[i].VertexCount()
	}
	return total
}

func (m *MeshGeometry) TotalTriangleCount() int {
	total := 0
	for i := range m.Sections {
		total += len(m.Sections[i].Triangles)
	}
	return total / 3
}

func (m *MeshGeometry) Summary() string {
	return fmt.Sprintf("%d sections, %d vertices, %d triangles", len(m.Sections), m.TotalVertexCount(), m.TotalTriangleCount())
}

// Bounds returns the axis-aligned extents of every vertex. An empty
// geometry has zero extents.
func (m *MeshGeometry) Bounds() math.Extents3D {
	var extents math.Extents3D
	first := true
	m.eachVertex(func(_ int, v *math.Vec3) {
		if first {
			extents.Min, extents.Max = *v, *v
			first = false
			return
		}
		extents.Min = extents.Min.Min(*v)
		extents.Max = extents.Max.Max(*v)
	})
	return extents
}

// Clone returns a deep copy that keeps the same ID.
func (m *MeshGeometry) Clone() *MeshGeometry {
	out := &MeshGeometry{
		ID:       m.ID,
		Sections: make([]SectionGeometry, len(m.Sections)),
	}
	for i := range m.Sections {
		out.Sections[i] = m.Sections[i].Clone()
	}
	return out
}

// eachVertex visits every vertex across sections. index counts vertices
// across the whole mesh, matching selection set order.
func (m *MeshGeometry) eachVertex(fn func(index int, v *math.Vec3)) {
	index := 0
	for s := range m.Sections {
		vertices := m.Sections[s].Vertices
		for i := range vertices {
			fn(index, &vertices[i])
			index++
		}
	}
}

// checkSelection normalizes an absent selection to nil and rejects a
// selection whose length differs from the vertex count.
func (m *MeshGeometry) checkSelection(op string, sel selection.Weights) (selection.Weights, error) {
	if selection.IsNil(sel) {
		return nil, nil
	}
	if total := m.TotalVertexCount(); sel.Len() != total {
		core.LogError("%s: selection has %d weights for %d vertices", op, sel.Len(), total)
		return nil, fmt.Errorf("%s: %w (%d weights, %d vertices)", op, core.ErrSelectionLength, sel.Len(), total)
	}
	return sel, nil
}
