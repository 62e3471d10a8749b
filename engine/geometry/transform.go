package geometry

import (
	"fmt"

	"github.com/spaghettifunk/sculpt/engine/core"
	"github.com/spaghettifunk/sculpt/engine/math"
	"github.com/spaghettifunk/sculpt/engine/selection"
)

// Every transform below blends each vertex from its current position towards
// a target position by the vertex's selection weight (1 without a
// selection). A selection of the wrong length is rejected before any vertex
// moves.

// Jitter moves each vertex by a random offset drawn per axis from [min, max).
// One offset is drawn for every vertex, selected or not.
func (m *MeshGeometry) Jitter(stream *math.RandomStream, min, max math.Vec3, sel selection.Weights) error {
	sel, err := m.checkSelection("Jitter", sel)
	if err != nil {
		return err
	}
	m.eachVertex(func(i int, v *math.Vec3) {
		jitter := math.NewVec3(
			stream.FRandRange(min.X, max.X),
			stream.FRandRange(min.Y, max.Y),
			stream.FRandRange(min.Z, max.Z))
		*v = v.Lerp(v.Add(jitter), selection.WeightAt(sel, i))
	})
	return nil
}

func (m *MeshGeometry) Translate(delta math.Vec3, sel selection.Weights) error {
	sel, err := m.checkSelection("Translate", sel)
	if err != nil {
		return err
	}
	m.eachVertex(func(i int, v *math.Vec3) {
		*v = v.Lerp(v.Add(delta), selection.WeightAt(sel, i))
	})
	return nil
}

// Rotate turns vertices about center. The weight scales the rotator's angles,
// so a half-weighted vertex is rotated half as far rather than moved halfway
// along the chord.
func (m *MeshGeometry) Rotate(rotation math.Rotator, center math.Vec3, sel selection.Weights) error {
	sel, err := m.checkSelection("Rotate", sel)
	if err != nil {
		return err
	}
	full := rotation.Quaternion()
	m.eachVertex(func(i int, v *math.Vec3) {
		q := full
		if w := selection.WeightAt(sel, i); w != 1 {
			q = rotation.Scale(w).Quaternion()
		}
		*v = center.Add(q.RotateVector(v.Sub(center)))
	})
	return nil
}

func (m *MeshGeometry) Scale(scale3d, center math.Vec3, sel selection.Weights) error {
	sel, err := m.checkSelection("Scale", sel)
	if err != nil {
		return err
	}
	m.eachVertex(func(i int, v *math.Vec3) {
		target := center.Add(v.Sub(center).Mul(scale3d))
		*v = v.Lerp(target, selection.WeightAt(sel, i))
	})
	return nil
}

// Transform applies transform (scale, rotation, then translation) to each
// vertex relative to center. A nil transform is the identity.
func (m *MeshGeometry) Transform(transform *math.Transform, center math.Vec3, sel selection.Weights) error {
	sel, err := m.checkSelection("Transform", sel)
	if err != nil {
		return err
	}
	world := transform.GetWorld()
	m.eachVertex(func(i int, v *math.Vec3) {
		target := center.Add(v.Sub(center).Transform(world))
		*v = v.Lerp(target, selection.WeightAt(sel, i))
	})
	return nil
}

// Spherize pulls vertices towards the surface of a sphere. With a strength
// and weight of 1 every vertex ends up exactly radius from center. Vertices
// sitting on the center have no direction and are left alone.
func (m *MeshGeometry) Spherize(radius, strength float32, center math.Vec3, sel selection.Weights) error {
	sel, err := m.checkSelection("Spherize", sel)
	if err != nil {
		return err
	}
	m.eachVertex(func(i int, v *math.Vec3) {
		offset := v.Sub(center)
		length := math.Lerp(offset.Length(), radius, strength*selection.WeightAt(sel, i))
		if direction, ok := offset.Normalize(); ok {
			*v = center.Add(direction.MulScalar(length))
		}
	})
	return nil
}

// Inflate pushes vertices along their normals by offset.
func (m *MeshGeometry) Inflate(offset float32, sel selection.Weights) error {
	sel, err := m.checkSelection("Inflate", sel)
	if err != nil {
		return err
	}
	for s := range m.Sections {
		if len(m.Sections[s].Normals) != len(m.Sections[s].Vertices) {
			core.LogError("Inflate: section %d has %d normals for %d vertices", s, len(m.Sections[s].Normals), len(m.Sections[s].Vertices))
			return fmt.Errorf("Inflate: section %d: %w", s, core.ErrNormalsMismatch)
		}
	}

	index := 0
	for s := range m.Sections {
		section := &m.Sections[s]
		for i := range section.Vertices {
			v := section.Vertices[i]
			target := v.Add(section.Normals[i].MulScalar(offset))
			section.Vertices[i] = v.Lerp(target, selection.WeightAt(sel, index))
			index++
		}
	}
	return nil
}

// ScaleAlongAxis scales vertices towards or away from center, along axis
// only. Distances from the axis are preserved.
func (m *MeshGeometry) ScaleAlongAxis(center, axis math.Vec3, scale float32, sel selection.Weights) error {
	sel, err := m.checkSelection("ScaleAlongAxis", sel)
	if err != nil {
		return err
	}
	if axis.IsNearlyZero(math.K_SMALL_NUMBER) {
		core.LogError("ScaleAlongAxis: axis is a zero vector")
		return fmt.Errorf("ScaleAlongAxis: %w", core.ErrZeroVector)
	}

	lineEnd := center.Add(axis)
	m.eachVertex(func(i int, v *math.Vec3) {
		closest := math.ClosestPointOnInfiniteLine(center, lineEnd, *v)
		offset := v.Sub(closest)
		scaled := closest.Sub(center).MulScalar(scale).Add(center)
		*v = v.Lerp(scaled.Add(offset), selection.WeightAt(sel, i))
	})
	return nil
}

// RotateAroundAxis rotates vertices by angleDegrees about the line through
// center along axis. The weight scales the angle.
func (m *MeshGeometry) RotateAroundAxis(center, axis math.Vec3, angleDegrees float32, sel selection.Weights) error {
	sel, err := m.checkSelection("RotateAroundAxis", sel)
	if err != nil {
		return err
	}
	normalized := axis.Normalized()
	if normalized.IsNearlyZero(0.1) {
		core.LogError("RotateAroundAxis: could not normalize axis, zero vector?")
		return fmt.Errorf("RotateAroundAxis: %w", core.ErrZeroVector)
	}

	lineEnd := center.Add(axis)
	m.eachVertex(func(i int, v *math.Vec3) {
		closest := math.ClosestPointOnInfiniteLine(center, lineEnd, *v)
		offset := v.Sub(closest)
		angle := math.Lerp(0, angleDegrees, selection.WeightAt(sel, i))
		*v = closest.Add(offset.RotateAngleAxis(angle, normalized))
	})
	return nil
}

// Lerp blends every vertex towards the matching vertex of target by
// alpha times the vertex weight. Both geometries must have the same section
// layout.
func (m *MeshGeometry) Lerp(target *MeshGeometry, alpha float32, sel selection.Weights) error {
	if target == nil {
		core.LogError("Lerp: no target geometry")
		return fmt.Errorf("Lerp: %w", core.ErrNoGeometry)
	}
	sel, err := m.checkSelection("Lerp", sel)
	if err != nil {
		return err
	}
	if len(m.Sections) != len(target.Sections) {
		core.LogError("Lerp: cannot lerp geometries with different numbers of sections, %d compared to %d", len(m.Sections), len(target.Sections))
		return fmt.Errorf("Lerp: %w (%d and %d)", core.ErrSectionMismatch, len(m.Sections), len(target.Sections))
	}
	for s := range m.Sections {
		ours, theirs := len(m.Sections[s].Vertices), len(target.Sections[s].Vertices)
		if ours != theirs {
			core.LogError("Lerp: cannot lerp geometries with different numbers of vertices, %d compared to %d for section %d", ours, theirs, s)
			return fmt.Errorf("Lerp: section %d: %w (%d and %d)", s, core.ErrVertexMismatch, ours, theirs)
		}
	}

	index := 0
	for s := range m.Sections {
		vertices := m.Sections[s].Vertices
		targets := target.Sections[s].Vertices
		for i := range vertices {
			vertices[i] = vertices[i].Lerp(targets[i], alpha*selection.WeightAt(sel, index))
			index++
		}
	}
	return nil
}
