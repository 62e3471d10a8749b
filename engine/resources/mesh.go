package resources

import (
	"fmt"

	"github.com/spaghettifunk/sculpt/engine/core"
	"github.com/spaghettifunk/sculpt/engine/geometry"
)

// StaticMesh is read-only source geometry, one section list per level of
// detail. It serves as a geometry.MeshSource.
type StaticMesh struct {
	ID       core.Identifier
	FullPath string
	LODs     [][]geometry.SectionGeometry

	name string
}

func NewStaticMesh(name string, lods ...[]geometry.SectionGeometry) *StaticMesh {
	return &StaticMesh{
		ID:   core.NewIdentifier(),
		LODs: lods,
		name: name,
	}
}

func (sm *StaticMesh) Name() string {
	return sm.name
}

func (sm *StaticMesh) NumLODs() int {
	return len(sm.LODs)
}

func (sm *StaticMesh) NumSections(lod int) (int, error) {
	if lod < 0 || lod >= len(sm.LODs) {
		return 0, fmt.Errorf("%w: %d of %d", core.ErrInvalidLOD, lod, len(sm.LODs))
	}
	return len(sm.LODs[lod]), nil
}

func (sm *StaticMesh) Section(lod, index int) (geometry.SectionGeometry, error) {
	n, err := sm.NumSections(lod)
	if err != nil {
		return geometry.SectionGeometry{}, err
	}
	if index < 0 || index >= n {
		return geometry.SectionGeometry{}, fmt.Errorf("section %d out of range (%d sections)", index, n)
	}
	return sm.LODs[lod][index], nil
}

// MeshSection is one section of a ProceduralMesh.
type MeshSection struct {
	geometry.SectionGeometry
	CollisionEnabled bool
}

// ProceduralMesh receives rebuilt geometry. It serves as a
// geometry.MeshTarget and can be turned back into a StaticMesh.
type ProceduralMesh struct {
	ID core.Identifier
	// Generation increments on every clear, so observers can tell a rebuild
	// happened.
	Generation uint32
	Sections   []MeshSection

	name string
}

func NewProceduralMesh(name string) *ProceduralMesh {
	return &ProceduralMesh{
		ID:   core.NewIdentifier(),
		name: name,
	}
}

func (pm *ProceduralMesh) Name() string {
	return pm.name
}

func (pm *ProceduralMesh) ClearAllMeshSections() {
	pm.Sections = pm.Sections[:0]
	pm.Generation++
}

// CreateMeshSection stores section at index, growing the section list when
// needed. Gaps are left as empty sections.
func (pm *ProceduralMesh) CreateMeshSection(index int, section geometry.SectionGeometry, createCollision bool) error {
	if index < 0 {
		return fmt.Errorf("invalid section index %d", index)
	}
	for len(pm.Sections) <= index {
		pm.Sections = append(pm.Sections, MeshSection{})
	}
	pm.Sections[index] = MeshSection{SectionGeometry: section, CollisionEnabled: createCollision}
	return nil
}

func (pm *ProceduralMesh) NumSections() int {
	return len(pm.Sections)
}

// ToStaticMesh snapshots the current sections as a single-LOD StaticMesh.
func (pm *ProceduralMesh) ToStaticMesh() *StaticMesh {
	sections := make([]geometry.SectionGeometry, len(pm.Sections))
	for i := range pm.Sections {
		sections[i] = pm.Sections[i].SectionGeometry.Clone()
	}
	return NewStaticMesh(pm.name, sections)
}
