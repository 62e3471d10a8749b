package geometry

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/spaghettifunk/sculpt/engine/core"
	"github.com/spaghettifunk/sculpt/engine/math"
	"github.com/spaghettifunk/sculpt/engine/noise"
	"github.com/spaghettifunk/sculpt/engine/selection"
	"github.com/spaghettifunk/sculpt/engine/spline"
)

const minLinearSelectionLength float32 = 0.1

// falloff maps a distance onto 1 inside inner, 0 beyond outer and a linear
// ramp in between. When outer <= inner the ramp becomes a hard edge at inner.
func falloff(distance, inner, outer float32) float32 {
	span := outer - inner
	if span <= 0 {
		if distance <= inner {
			return 1
		}
		return 0
	}
	return 1 - math.Clamp((distance-inner)/span, 0, 1)
}

func (m *MeshGeometry) selectEach(fn func(index int, v math.Vec3) float32) *selection.SelectionSet {
	set := selection.NewSelectionSet(m.TotalVertexCount())
	m.eachVertex(func(index int, v *math.Vec3) {
		set.Weights[index] = fn(index, *v)
	})
	return set
}

func (m *MeshGeometry) SelectAll() *selection.SelectionSet {
	return selection.NewSelectionSet(m.TotalVertexCount()).SetAllWeights(1)
}

// SelectNear weights vertices by their distance from center.
func (m *MeshGeometry) SelectNear(center math.Vec3, innerRadius, outerRadius float32) *selection.SelectionSet {
	return m.selectEach(func(_ int, v math.Vec3) float32 {
		return falloff(v.Distance(center), innerRadius, outerRadius)
	})
}

// SelectNearLine weights vertices by their distance from a segment, or from
// the infinite line through both points.
func (m *MeshGeometry) SelectNearLine(lineStart, lineEnd math.Vec3, innerRadius, outerRadius float32, lineIsInfinite bool) *selection.SelectionSet {
	return m.selectEach(func(_ int, v math.Vec3) float32 {
		var nearest math.Vec3
		if lineIsInfinite {
			nearest = math.ClosestPointOnInfiniteLine(lineStart, lineEnd, v)
		} else {
			nearest = math.ClosestPointOnSegment(lineStart, lineEnd, v)
		}
		return falloff(v.Distance(nearest), innerRadius, outerRadius)
	})
}

// SelectNearSpline weights vertices by their distance from a spline. Each
// vertex is first moved into the spline's space by transform (nil for none).
func (m *MeshGeometry) SelectNearSpline(s *spline.Spline, transform *math.Transform, innerRadius, outerRadius float32) (*selection.SelectionSet, error) {
	if s.IsEmpty() {
		return nil, core.ErrNoSpline
	}
	return m.selectEach(func(_ int, v math.Vec3) float32 {
		local := transform.TransformPosition(v)
		closest := s.FindLocationClosestTo(local)
		return falloff(local.Distance(closest), innerRadius, outerRadius)
	}), nil
}

// SelectFacing weights vertices by the angle in degrees between their normal
// and facing. Vertices with a zero normal get 0.
func (m *MeshGeometry) SelectFacing(facing math.Vec3, innerRadiusDegrees, outerRadiusDegrees float32) (*selection.SelectionSet, error) {
	facing, ok := facing.Normalize()
	if !ok {
		return nil, fmt.Errorf("SelectFacing: %w", core.ErrZeroVector)
	}
	for i := range m.Sections {
		if len(m.Sections[i].Normals) != len(m.Sections[i].Vertices) {
			return nil, fmt.Errorf("SelectFacing: section %d: %w", i, core.ErrNormalsMismatch)
		}
	}

	set := selection.NewSelectionSet(m.TotalVertexCount())
	index := 0
	for s := range m.Sections {
		for _, normal := range m.Sections[s].Normals {
			if n, ok := normal.Normalize(); ok {
				angle := math.RadToDeg(math32.Acos(math.Clamp(n.Dot(facing), -1, 1)))
				set.Weights[index] = falloff(angle, innerRadiusDegrees, outerRadiusDegrees)
			}
			index++
		}
	}
	return set, nil
}

// SelectByNoise stores the raw noise value at each vertex. Values are
// roughly within [-1, 1].
func (m *MeshGeometry) SelectByNoise(cfg noise.Config) *selection.SelectionSet {
	generator := noise.New(cfg)
	return m.selectEach(func(_ int, v math.Vec3) float32 {
		return generator.GetNoiseAt(v)
	})
}

// SelectByTexture samples one channel of texture at each vertex's UV.
// Vertices without a UV sample the texel at the origin.
func (m *MeshGeometry) SelectByTexture(texture TextureSampler, channel TextureChannel) (*selection.SelectionSet, error) {
	if texture == nil {
		return nil, core.ErrNoTexture
	}
	width, height := texture.Size()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: empty texture %dx%d", core.ErrNoTexture, width, height)
	}
	core.LogDebug("texture res: %d x %d", width, height)

	set := selection.NewSelectionSet(m.TotalVertexCount())
	index := 0
	for s := range m.Sections {
		section := &m.Sections[s]
		for i := range section.Vertices {
			var uv math.Vec2
			if i < len(section.UVs) {
				uv = section.UVs[i]
			}
			x := math.Clamp(int(math.RoundHalfFromZero(uv.X*float32(width))), 0, width-1)
			y := math.Clamp(int(math.RoundHalfFromZero(uv.Y*float32(height))), 0, height-1)
			set.Weights[index] = channel.Of(texture.Texel(x, y))
			index++
		}
	}
	return set, nil
}

// SelectByVertexColor copies one channel of each vertex colour.
func (m *MeshGeometry) SelectByVertexColor(channel TextureChannel) *selection.SelectionSet {
	set := selection.NewSelectionSet(m.TotalVertexCount())
	index := 0
	for s := range m.Sections {
		section := &m.Sections[s]
		for i := range section.Vertices {
			colour := DefaultVertexColor
			if i < len(section.VertexColors) {
				colour = section.VertexColors[i]
			}
			set.Weights[index] = channel.Of(colour)
			index++
		}
	}
	return set
}

// SelectLinear weights vertices by how far along the line from lineStart to
// lineEnd they project, from 0 at the start to 1 at the end. Projections
// past the end get 1, or 0 when limitToLine is set.
func (m *MeshGeometry) SelectLinear(lineStart, lineEnd math.Vec3, reverse, limitToLine bool) (*selection.SelectionSet, error) {
	if reverse {
		lineStart, lineEnd = lineEnd, lineStart
	}

	line := lineEnd.Sub(lineStart)
	length := line.Length()
	if length < minLinearSelectionLength {
		core.LogError("SelectLinear: line length %f is too short", length)
		return nil, fmt.Errorf("SelectLinear: %w (%f)", core.ErrLineTooShort, length)
	}
	lengthSquared := length * length

	return m.selectEach(func(_ int, v math.Vec3) float32 {
		t := v.Sub(lineStart).Dot(line) / lengthSquared
		switch {
		case t >= 1:
			if limitToLine {
				return 0
			}
			return 1
		case t <= 0:
			return 0
		default:
			return t
		}
	}), nil
}
