package recipe

import (
	"context"
	"fmt"
	"time"

	"github.com/spaghettifunk/sculpt/engine/component"
	"github.com/spaghettifunk/sculpt/engine/core"
	"github.com/spaghettifunk/sculpt/engine/geometry"
	"github.com/spaghettifunk/sculpt/engine/math"
	"github.com/spaghettifunk/sculpt/engine/resources"
	"github.com/spaghettifunk/sculpt/engine/selection"
	"github.com/spaghettifunk/sculpt/engine/spline"
)

// Assets is where a Runner reads meshes and textures and writes its output.
// Names are relative to the store.
type Assets interface {
	LoadAsset(name string, resourceType resources.ResourceType, params interface{}) (*resources.Resource, error)
	SaveAsset(name string, resource *resources.Resource) error
}

type Runner struct {
	assets  Assets
	metrics *core.Metrics
	clock   *core.Clock
}

// Result is what one run produced.
type Result struct {
	Recipe     string
	Component  *component.MeshDeformationComponent
	Mesh       *resources.ProceduralMesh
	Selections map[string]*selection.SelectionSet
	Elapsed    time.Duration
}

func NewRunner(assets Assets) *Runner {
	return &Runner{
		assets:  assets,
		metrics: core.NewMetrics(),
		clock:   core.NewClock(),
	}
}

func (r *Runner) Metrics() *core.Metrics {
	return r.metrics
}

// run holds the state of a single Run call.
type run struct {
	*Runner
	recipe   *Recipe
	comp     *component.MeshDeformationComponent
	stream   *math.RandomStream
	sets     map[string]*selection.SelectionSet
	textures map[string]*resources.Texture
	targets  map[string]*component.MeshDeformationComponent
}

// Run loads the source mesh, evaluates the selections in order, applies the
// steps and rebuilds the result into a ProceduralMesh, saving it when the
// recipe names an output. The context is checked between operations.
func (r *Runner) Run(ctx context.Context, rcp *Recipe) (*Result, error) {
	if err := rcp.Validate(); err != nil {
		return nil, err
	}
	r.clock.Start()

	comp := component.New()
	comp.Transform = rcp.Transform.Transform()

	source, err := r.loadMesh(rcp.Source.Path)
	if err != nil {
		return nil, err
	}
	if err := comp.LoadFromStaticMesh(source, rcp.Source.LOD); err != nil {
		return nil, fmt.Errorf("failed to load source mesh: %w", err)
	}

	state := &run{
		Runner:   r,
		recipe:   rcp,
		comp:     comp,
		stream:   math.NewRandomStream(rcp.Seed),
		sets:     make(map[string]*selection.SelectionSet, len(rcp.Selections)),
		textures: make(map[string]*resources.Texture),
		targets:  make(map[string]*component.MeshDeformationComponent),
	}

	for _, sc := range rcp.Selections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		set, err := state.selection(sc)
		if err != nil {
			return nil, fmt.Errorf("selection '%s': %w", sc.Name, err)
		}
		state.sets[sc.Name] = set
	}

	vertices := comp.MeshGeometry().TotalVertexCount()
	for i, st := range rcp.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		if err := state.step(st); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, st.Op, err)
		}
		r.metrics.Record(st.Op, vertices, time.Since(start))
	}

	if rcp.Output.RecalculateNormals {
		if err := comp.RecalculateNormals(); err != nil {
			return nil, err
		}
	}

	name := rcp.Name
	if name == "" {
		name = source.Name()
	}
	mesh := resources.NewProceduralMesh(name)
	if err := comp.UpdateProceduralMeshComponent(mesh, rcp.Output.CreateCollision); err != nil {
		return nil, err
	}

	if rcp.Output.Path != "" {
		res := &resources.Resource{
			ResourceType: resources.ResourceTypeModel,
			Name:         name,
			FullPath:     rcp.Output.Path,
			Data:         mesh,
		}
		if err := r.assets.SaveAsset(rcp.Output.Path, res); err != nil {
			return nil, err
		}
	}

	r.clock.Update()
	summary, _ := comp.Summary()
	core.LogInfo("recipe '%s' applied %d steps to %s in %s", name, len(rcp.Steps), summary, r.clock.Elapsed())

	return &Result{
		Recipe:     name,
		Component:  comp,
		Mesh:       mesh,
		Selections: state.sets,
		Elapsed:    r.clock.Elapsed(),
	}, nil
}

func (r *Runner) loadMesh(path string) (geometry.MeshSource, error) {
	res, err := r.assets.LoadAsset(path, resources.ResourceTypeModel, nil)
	if err != nil {
		return nil, err
	}
	source, ok := res.Data.(geometry.MeshSource)
	if !ok {
		return nil, fmt.Errorf("%w: %s does not hold a mesh", core.ErrNoSource, path)
	}
	return source, nil
}

func (st *run) texture(name string) (*resources.Texture, error) {
	if tex, ok := st.textures[name]; ok {
		return tex, nil
	}
	cfg := st.recipe.Textures[name]
	res, err := st.assets.LoadAsset(cfg.Path, resources.ResourceTypeImage, &resources.ImageResourceParams{FlipY: cfg.FlipY})
	if err != nil {
		return nil, err
	}
	tex, ok := res.Data.(*resources.Texture)
	if !ok {
		return nil, fmt.Errorf("%w: %s does not hold a texture", core.ErrNoTexture, cfg.Path)
	}
	st.textures[name] = tex
	return tex, nil
}

func (st *run) target(name string) (*component.MeshDeformationComponent, error) {
	if comp, ok := st.targets[name]; ok {
		return comp, nil
	}
	cfg := st.recipe.Targets[name]
	source, err := st.loadMesh(cfg.Path)
	if err != nil {
		return nil, err
	}
	comp := component.New()
	if err := comp.LoadFromStaticMesh(source, cfg.LOD); err != nil {
		return nil, err
	}
	st.targets[name] = comp
	return comp, nil
}

// streamFor returns a fresh stream for an explicit seed, otherwise the
// recipe-wide stream.
func (st *run) streamFor(seed *int32) *math.RandomStream {
	if seed != nil {
		return math.NewRandomStream(*seed)
	}
	return st.stream
}

func (st *run) selection(sc SelectionConfig) (*selection.SelectionSet, error) {
	c := st.comp
	switch sc.Kind {
	case "all":
		return c.SelectAll()
	case "near":
		return c.SelectNear(sc.Center.Vec3(), sc.Inner, sc.Outer)
	case "near_line":
		return c.SelectNearLine(sc.Start.Vec3(), sc.End.Vec3(), sc.Inner, sc.Outer, sc.Infinite)
	case "near_spline":
		cfg := st.recipe.Splines[sc.Spline]
		points := make([]math.Vec3, len(cfg.Points))
		for i, p := range cfg.Points {
			points[i] = p.Vec3()
		}
		return c.SelectNearSpline(spline.New(points, cfg.Closed), sc.Inner, sc.Outer)
	case "facing":
		return c.SelectFacing(sc.Facing.Vec3(), sc.Inner, sc.Outer)
	case "noise":
		return c.SelectByNoise(sc.Noise.Config())
	case "texture":
		tex, err := st.texture(sc.Texture)
		if err != nil {
			return nil, err
		}
		return c.SelectByTexture(tex, sc.Channel)
	case "linear":
		return c.SelectLinear(sc.Start.Vec3(), sc.End.Vec3(), sc.Reverse, sc.LimitToLine)
	case "vertex_color":
		return c.SelectByVertexColor(sc.Channel)
	case "combine":
		return st.combine(sc), nil
	default:
		return nil, fmt.Errorf("%w: unknown selection kind '%s'", core.ErrInvalidRecipe, sc.Kind)
	}
}

func (st *run) combine(sc SelectionConfig) *selection.SelectionSet {
	a := st.sets[sc.Inputs[0]]
	var b *selection.SelectionSet
	if len(sc.Inputs) > 1 {
		b = st.sets[sc.Inputs[1]]
	}

	switch sc.Op {
	case "clamp":
		return selection.Clamp(a, sc.Min, sc.Max)
	case "ease":
		return selection.Ease(a, sc.Easing, sc.Steps, sc.BlendExp)
	case "add_float":
		return selection.AddFloat(a, sc.Value)
	case "subtract_float":
		return selection.SubtractFloat(a, sc.Value)
	case "subtract_from_float":
		return selection.SubtractFromFloat(sc.Value, a)
	case "multiply_float":
		return selection.MultiplyFloat(a, sc.Value)
	case "divide_float":
		return selection.DivideFloat(a, sc.Value)
	case "one_minus":
		return selection.OneMinus(a)
	case "set":
		return selection.Set(a, sc.Value)
	case "randomize":
		return selection.Randomize(a, st.streamFor(sc.Seed), sc.Min, sc.Max)
	case "max_float":
		return selection.MaxFloat(a, sc.Value)
	case "min_float":
		return selection.MinFloat(a, sc.Value)
	case "lerp_float":
		return selection.LerpFloat(a, sc.Value, sc.Alpha)
	case "add":
		return selection.Add(a, b)
	case "subtract":
		return selection.Subtract(a, b)
	case "multiply":
		return selection.Multiply(a, b)
	case "divide":
		return selection.Divide(a, b)
	case "max":
		return selection.Max(a, b)
	case "min":
		return selection.Min(a, b)
	default: // "lerp"
		return selection.Lerp(a, b, sc.Alpha)
	}
}

func (st *run) step(sc StepConfig) error {
	c := st.comp
	// only an unnamed selection means full strength
	var sel selection.Weights
	if sc.Selection != "" {
		set := st.sets[sc.Selection]
		if set == nil {
			return fmt.Errorf("%w: selection '%s' has no weights", core.ErrInvalidRecipe, sc.Selection)
		}
		sel = set
	}

	switch sc.Op {
	case "jitter":
		return c.Jitter(st.streamFor(sc.Seed), sc.Min.Vec3(), sc.Max.Vec3(), sel)
	case "translate":
		return c.Translate(sc.Delta.Vec3(), sel)
	case "rotate":
		return c.Rotate(sc.Rotation.Rotator(), sc.Center.Vec3(), sel)
	case "scale":
		scale := math.NewVec3One()
		if sc.Scale3D != nil {
			scale = sc.Scale3D.Vec3()
		}
		return c.Scale(scale, sc.Center.Vec3(), sel)
	case "transform":
		return c.TransformMesh(sc.Transform.Transform(), sc.Center.Vec3(), sel)
	case "spherize":
		strength := float32(1)
		if sc.Strength != nil {
			strength = *sc.Strength
		}
		return c.Spherize(sc.Radius, strength, sc.Center.Vec3(), sel)
	case "inflate":
		return c.Inflate(sc.Offset, sel)
	case "scale_along_axis":
		return c.ScaleAlongAxis(sc.Center.Vec3(), axisOf(sc.Axis), sc.Scale, sel)
	case "rotate_around_axis":
		return c.RotateAroundAxis(sc.Center.Vec3(), axisOf(sc.Axis), sc.Angle, sel)
	case "lerp":
		target, err := st.target(sc.Target)
		if err != nil {
			return err
		}
		return c.Lerp(target, sc.Alpha, sel)
	case "recalculate_normals":
		return c.RecalculateNormals()
	case "recalculate_tangents":
		return c.RecalculateTangents()
	default:
		return fmt.Errorf("%w: unknown step '%s'", core.ErrInvalidRecipe, sc.Op)
	}
}

// axisOf defaults a missing axis to up.
func axisOf(v *Vector) math.Vec3 {
	if v == nil {
		return math.NewVec3Up()
	}
	return v.Vec3()
}
