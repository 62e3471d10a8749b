package component

import (
	"github.com/spaghettifunk/sculpt/engine/core"
	"github.com/spaghettifunk/sculpt/engine/geometry"
	"github.com/spaghettifunk/sculpt/engine/math"
	"github.com/spaghettifunk/sculpt/engine/noise"
	"github.com/spaghettifunk/sculpt/engine/selection"
	"github.com/spaghettifunk/sculpt/engine/spline"
)

// MeshDeformationComponent owns at most one MeshGeometry and forwards every
// selection and transform to it. Every call made before a successful load
// fails with core.ErrNoGeometry.
type MeshDeformationComponent struct {
	// Transform places the owner in the world. It maps vertices into spline
	// space for SelectNearSpline; nil is the identity.
	Transform *math.Transform

	meshGeometry *geometry.MeshGeometry
}

func New() *MeshDeformationComponent {
	return &MeshDeformationComponent{
		Transform: math.TransformCreate(),
	}
}

// LoadFromStaticMesh replaces the owned geometry with a copy of source. On
// failure the component is left without geometry.
func (c *MeshDeformationComponent) LoadFromStaticMesh(source geometry.MeshSource, lod int) error {
	g := geometry.NewMeshGeometry()
	if err := g.LoadFromStaticMesh(source, lod); err != nil {
		c.meshGeometry = nil
		return err
	}
	c.meshGeometry = g
	return nil
}

func (c *MeshDeformationComponent) UpdateProceduralMeshComponent(target geometry.MeshTarget, createCollision bool) error {
	g, err := c.geometryFor("UpdateProceduralMeshComponent")
	if err != nil {
		return err
	}
	return g.UpdateProceduralMeshComponent(target, createCollision)
}

// MeshGeometry returns the owned geometry, or nil before a successful load.
func (c *MeshDeformationComponent) MeshGeometry() *geometry.MeshGeometry {
	return c.meshGeometry
}

func (c *MeshDeformationComponent) HasGeometry() bool {
	return c.meshGeometry != nil
}

func (c *MeshDeformationComponent) Summary() (string, error) {
	g, err := c.geometryFor("Summary")
	if err != nil {
		return "", err
	}
	return g.Summary(), nil
}

func (c *MeshDeformationComponent) geometryFor(op string) (*geometry.MeshGeometry, error) {
	if c.meshGeometry == nil {
		core.LogWarn("%s: no mesh geometry loaded", op)
		return nil, core.ErrNoGeometry
	}
	return c.meshGeometry, nil
}

func (c *MeshDeformationComponent) SelectAll() (*selection.SelectionSet, error) {
	g, err := c.geometryFor("SelectAll")
	if err != nil {
		return nil, err
	}
	return g.SelectAll(), nil
}

func (c *MeshDeformationComponent) SelectNear(center math.Vec3, innerRadius, outerRadius float32) (*selection.SelectionSet, error) {
	g, err := c.geometryFor("SelectNear")
	if err != nil {
		return nil, err
	}
	return g.SelectNear(center, innerRadius, outerRadius), nil
}

func (c *MeshDeformationComponent) SelectNearLine(lineStart, lineEnd math.Vec3, innerRadius, outerRadius float32, lineIsInfinite bool) (*selection.SelectionSet, error) {
	g, err := c.geometryFor("SelectNearLine")
	if err != nil {
		return nil, err
	}
	return g.SelectNearLine(lineStart, lineEnd, innerRadius, outerRadius, lineIsInfinite), nil
}

// SelectNearSpline uses the component's own Transform to reach spline space.
func (c *MeshDeformationComponent) SelectNearSpline(s *spline.Spline, innerRadius, outerRadius float32) (*selection.SelectionSet, error) {
	g, err := c.geometryFor("SelectNearSpline")
	if err != nil {
		return nil, err
	}
	return g.SelectNearSpline(s, c.Transform, innerRadius, outerRadius)
}

func (c *MeshDeformationComponent) SelectFacing(facing math.Vec3, innerRadiusDegrees, outerRadiusDegrees float32) (*selection.SelectionSet, error) {
	g, err := c.geometryFor("SelectFacing")
	if err != nil {
		return nil, err
	}
	return g.SelectFacing(facing, innerRadiusDegrees, outerRadiusDegrees)
}

func (c *MeshDeformationComponent) SelectByNoise(cfg noise.Config) (*selection.SelectionSet, error) {
	g, err := c.geometryFor("SelectByNoise")
	if err != nil {
		return nil, err
	}
	return g.SelectByNoise(cfg), nil
}

func (c *MeshDeformationComponent) SelectByTexture(texture geometry.TextureSampler, channel geometry.TextureChannel) (*selection.SelectionSet, error) {
	g, err := c.geometryFor("SelectByTexture")
	if err != nil {
		return nil, err
	}
	return g.SelectByTexture(texture, channel)
}

func (c *MeshDeformationComponent) SelectByVertexColor(channel geometry.TextureChannel) (*selection.SelectionSet, error) {
	g, err := c.geometryFor("SelectByVertexColor")
	if err != nil {
		return nil, err
	}
	return g.SelectByVertexColor(channel), nil
}

func (c *MeshDeformationComponent) SelectLinear(lineStart, lineEnd math.Vec3, reverse, limitToLine bool) (*selection.SelectionSet, error) {
	g, err := c.geometryFor("SelectLinear")
	if err != nil {
		return nil, err
	}
	return g.SelectLinear(lineStart, lineEnd, reverse, limitToLine)
}

func (c *MeshDeformationComponent) Jitter(stream *math.RandomStream, min, max math.Vec3, sel selection.Weights) error {
	g, err := c.geometryFor("Jitter")
	if err != nil {
		return err
	}
	return g.Jitter(stream, min, max, sel)
}

func (c *MeshDeformationComponent) Translate(delta math.Vec3, sel selection.Weights) error {
	g, err := c.geometryFor("Translate")
	if err != nil {
		return err
	}
	return g.Translate(delta, sel)
}

func (c *MeshDeformationComponent) Rotate(rotation math.Rotator, center math.Vec3, sel selection.Weights) error {
	g, err := c.geometryFor("Rotate")
	if err != nil {
		return err
	}
	return g.Rotate(rotation, center, sel)
}

func (c *MeshDeformationComponent) Scale(scale3d, center math.Vec3, sel selection.Weights) error {
	g, err := c.geometryFor("Scale")
	if err != nil {
		return err
	}
	return g.Scale(scale3d, center, sel)
}

func (c *MeshDeformationComponent) TransformMesh(transform *math.Transform, center math.Vec3, sel selection.Weights) error {
	g, err := c.geometryFor("Transform")
	if err != nil {
		return err
	}
	return g.Transform(transform, center, sel)
}

func (c *MeshDeformationComponent) Spherize(radius, strength float32, center math.Vec3, sel selection.Weights) error {
	g, err := c.geometryFor("Spherize")
	if err != nil {
		return err
	}
	return g.Spherize(radius, strength, center, sel)
}

func (c *MeshDeformationComponent) Inflate(offset float32, sel selection.Weights) error {
	g, err := c.geometryFor("Inflate")
	if err != nil {
		return err
	}
	return g.Inflate(offset, sel)
}

func (c *MeshDeformationComponent) ScaleAlongAxis(center, axis math.Vec3, scale float32, sel selection.Weights) error {
	g, err := c.geometryFor("ScaleAlongAxis")
	if err != nil {
		return err
	}
	return g.ScaleAlongAxis(center, axis, scale, sel)
}

func (c *MeshDeformationComponent) RotateAroundAxis(center, axis math.Vec3, angleDegrees float32, sel selection.Weights) error {
	g, err := c.geometryFor("RotateAroundAxis")
	if err != nil {
		return err
	}
	return g.RotateAroundAxis(center, axis, angleDegrees, sel)
}

// Lerp blends towards the geometry owned by target.
func (c *MeshDeformationComponent) Lerp(target *MeshDeformationComponent, alpha float32, sel selection.Weights) error {
	g, err := c.geometryFor("Lerp")
	if err != nil {
		return err
	}
	if target == nil || target.meshGeometry == nil {
		core.LogError("Lerp: target has no mesh geometry loaded")
		return core.ErrNoGeometry
	}
	return g.Lerp(target.meshGeometry, alpha, sel)
}

func (c *MeshDeformationComponent) RecalculateNormals() error {
	g, err := c.geometryFor("RecalculateNormals")
	if err != nil {
		return err
	}
	g.RecalculateNormals()
	return nil
}

func (c *MeshDeformationComponent) RecalculateTangents() error {
	g, err := c.geometryFor("RecalculateTangents")
	if err != nil {
		return err
	}
	g.RecalculateTangents()
	return nil
}
