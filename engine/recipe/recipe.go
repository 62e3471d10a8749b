package recipe

import (
	"fmt"

	"github.com/spaghettifunk/sculpt/engine/core"
	"github.com/spaghettifunk/sculpt/engine/geometry"
	"github.com/spaghettifunk/sculpt/engine/math"
	"github.com/spaghettifunk/sculpt/engine/noise"
)

// Vector is a point or direction written as [x, y, z].
type Vector [3]float32

func (v Vector) Vec3() math.Vec3 {
	return math.NewVec3(v[0], v[1], v[2])
}

// Rotation is an euler rotation in degrees.
type Rotation struct {
	Pitch float32 `toml:"pitch" yaml:"pitch"`
	Yaw   float32 `toml:"yaw" yaml:"yaw"`
	Roll  float32 `toml:"roll" yaml:"roll"`
}

func (r Rotation) Rotator() math.Rotator {
	return math.NewRotator(r.Pitch, r.Yaw, r.Roll)
}

// TransformConfig describes a scale, rotation and translation. A missing
// scale means 1 on every axis.
type TransformConfig struct {
	Position Vector   `toml:"position" yaml:"position"`
	Rotation Rotation `toml:"rotation" yaml:"rotation"`
	Scale    *Vector  `toml:"scale" yaml:"scale"`
}

// Transform builds the owner transform. An unset scale stays at one.
func (tc TransformConfig) Transform() *math.Transform {
	t := math.TransformCreate()
	t.SetPosition(tc.Position.Vec3())
	t.SetRotation(tc.Rotation.Rotator().Quaternion())
	if tc.Scale != nil {
		t.SetScale(tc.Scale.Vec3())
	}
	return t
}

type MeshConfig struct {
	Path string `toml:"path" yaml:"path"`
	LOD  int    `toml:"lod" yaml:"lod"`
}

type OutputConfig struct {
	Path               string `toml:"path" yaml:"path"`
	CreateCollision    bool   `toml:"create_collision" yaml:"create_collision"`
	RecalculateNormals bool   `toml:"recalculate_normals" yaml:"recalculate_normals"`
}

type SplineConfig struct {
	Points []Vector `toml:"points" yaml:"points"`
	Closed bool     `toml:"closed" yaml:"closed"`
}

type TextureConfig struct {
	Path  string `toml:"path" yaml:"path"`
	FlipY bool   `toml:"flip_y" yaml:"flip_y"`
}

// NoiseConfig overrides single fields of noise.DefaultConfig.
type NoiseConfig struct {
	Seed             *int32                  `toml:"seed" yaml:"seed"`
	Frequency        *float32                `toml:"frequency" yaml:"frequency"`
	Interp           *noise.Interp           `toml:"interp" yaml:"interp"`
	Type             *noise.Type             `toml:"type" yaml:"type"`
	Octaves          *int                    `toml:"octaves" yaml:"octaves"`
	Lacunarity       *float32                `toml:"lacunarity" yaml:"lacunarity"`
	Gain             *float32                `toml:"gain" yaml:"gain"`
	FractalType      *noise.FractalType      `toml:"fractal_type" yaml:"fractal_type"`
	CellularDistance *noise.CellularDistance `toml:"cellular_distance" yaml:"cellular_distance"`
}

func (nc NoiseConfig) Config() noise.Config {
	cfg := noise.DefaultConfig()
	if nc.Seed != nil {
		cfg.Seed = *nc.Seed
	}
	if nc.Frequency != nil {
		cfg.Frequency = *nc.Frequency
	}
	if nc.Interp != nil {
		cfg.Interp = *nc.Interp
	}
	if nc.Type != nil {
		cfg.Type = *nc.Type
	}
	if nc.Octaves != nil {
		cfg.Octaves = *nc.Octaves
	}
	if nc.Lacunarity != nil {
		cfg.Lacunarity = *nc.Lacunarity
	}
	if nc.Gain != nil {
		cfg.Gain = *nc.Gain
	}
	if nc.FractalType != nil {
		cfg.FractalType = *nc.FractalType
	}
	if nc.CellularDistance != nil {
		cfg.CellularDistance = *nc.CellularDistance
	}
	return cfg
}

// SelectionConfig builds one named selection set. Kind picks the primitive;
// the combine kind applies Op to earlier selections listed in Inputs.
type SelectionConfig struct {
	Name string `toml:"name" yaml:"name"`
	Kind string `toml:"kind" yaml:"kind"`

	Center      Vector  `toml:"center" yaml:"center"`
	Start       Vector  `toml:"start" yaml:"start"`
	End         Vector  `toml:"end" yaml:"end"`
	Facing      Vector  `toml:"facing" yaml:"facing"`
	Inner       float32 `toml:"inner" yaml:"inner"`
	Outer       float32 `toml:"outer" yaml:"outer"`
	Infinite    bool    `toml:"infinite" yaml:"infinite"`
	Reverse     bool    `toml:"reverse" yaml:"reverse"`
	LimitToLine bool    `toml:"limit_to_line" yaml:"limit_to_line"`

	Spline  string                  `toml:"spline" yaml:"spline"`
	Texture string                  `toml:"texture" yaml:"texture"`
	Channel geometry.TextureChannel `toml:"channel" yaml:"channel"`
	Noise   NoiseConfig             `toml:"noise" yaml:"noise"`

	Op       string          `toml:"op" yaml:"op"`
	Inputs   []string        `toml:"inputs" yaml:"inputs"`
	Value    float32         `toml:"value" yaml:"value"`
	Alpha    float32         `toml:"alpha" yaml:"alpha"`
	Min      float32         `toml:"min" yaml:"min"`
	Max      float32         `toml:"max" yaml:"max"`
	Easing   math.EasingFunc `toml:"easing" yaml:"easing"`
	Steps    int32           `toml:"steps" yaml:"steps"`
	BlendExp float32         `toml:"blend_exp" yaml:"blend_exp"`
	Seed     *int32          `toml:"seed" yaml:"seed"`
}

// StepConfig is one transform applied to the mesh. Selection names a
// selection set; empty means every vertex at full strength.
type StepConfig struct {
	Op        string `toml:"op" yaml:"op"`
	Selection string `toml:"selection" yaml:"selection"`

	Delta     Vector          `toml:"delta" yaml:"delta"`
	Center    Vector          `toml:"center" yaml:"center"`
	Scale3D   *Vector         `toml:"scale3d" yaml:"scale3d"`
	Axis      *Vector         `toml:"axis" yaml:"axis"`
	Min       Vector          `toml:"min" yaml:"min"`
	Max       Vector          `toml:"max" yaml:"max"`
	Rotation  Rotation        `toml:"rotation" yaml:"rotation"`
	Transform TransformConfig `toml:"transform" yaml:"transform"`
	Angle     float32         `toml:"angle" yaml:"angle"`
	Radius    float32         `toml:"radius" yaml:"radius"`
	Strength  *float32        `toml:"strength" yaml:"strength"`
	Offset    float32         `toml:"offset" yaml:"offset"`
	Scale     float32         `toml:"scale" yaml:"scale"`
	Alpha     float32         `toml:"alpha" yaml:"alpha"`
	Target    string          `toml:"target" yaml:"target"`
	Seed      *int32          `toml:"seed" yaml:"seed"`
}

// Recipe is a declarative deformation: a source mesh, the inputs
// selections need, named selections and an ordered list of steps.
type Recipe struct {
	Name   string       `toml:"name" yaml:"name"`
	Seed   int32        `toml:"seed" yaml:"seed"`
	Source MeshConfig   `toml:"source" yaml:"source"`
	Output OutputConfig `toml:"output" yaml:"output"`

	// Placement of the mesh in spline space.
	Transform TransformConfig `toml:"transform" yaml:"transform"`

	Textures map[string]TextureConfig `toml:"textures" yaml:"textures"`
	Splines  map[string]SplineConfig  `toml:"splines" yaml:"splines"`
	Targets  map[string]MeshConfig    `toml:"targets" yaml:"targets"`

	Selections []SelectionConfig `toml:"selections" yaml:"selections"`
	Steps      []StepConfig      `toml:"steps" yaml:"steps"`
}

var selectionKinds = map[string]bool{
	"all": true, "near": true, "near_line": true, "near_spline": true, "facing": true,
	"noise": true, "texture": true, "linear": true, "vertex_color": true, "combine": true,
}

var combineOps = map[string]int{
	// value is the number of inputs the op needs
	"clamp": 1, "ease": 1, "add_float": 1, "subtract_float": 1, "subtract_from_float": 1,
	"multiply_float": 1, "divide_float": 1, "one_minus": 1, "set": 1, "randomize": 1,
	"max_float": 1, "min_float": 1, "lerp_float": 1,
	"add": 2, "subtract": 2, "multiply": 2, "divide": 2, "max": 2, "min": 2, "lerp": 2,
}

var stepOps = map[string]bool{
	"jitter": true, "translate": true, "rotate": true, "scale": true, "transform": true,
	"spherize": true, "inflate": true, "scale_along_axis": true, "rotate_around_axis": true,
	"lerp": true, "recalculate_normals": true, "recalculate_tangents": true,
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", core.ErrInvalidRecipe, fmt.Sprintf(format, args...))
}

// Validate checks names and references without touching any asset.
func (r *Recipe) Validate() error {
	if r.Source.Path == "" {
		return invalid("source path is required")
	}

	known := make(map[string]bool, len(r.Selections))
	for i, s := range r.Selections {
		if s.Name == "" {
			return invalid("selection %d has no name", i)
		}
		if known[s.Name] {
			return invalid("selection '%s' is defined twice", s.Name)
		}
		if !selectionKinds[s.Kind] {
			return invalid("selection '%s' has unknown kind '%s'", s.Name, s.Kind)
		}
		switch s.Kind {
		case "noise":
			if o := s.Noise.Octaves; o != nil && (*o < 1 || *o > noise.MAX_OCTAVES) {
				return invalid("selection '%s': octaves must be within [1, %d], got %d", s.Name, noise.MAX_OCTAVES, *o)
			}
		case "near_spline":
			if _, ok := r.Splines[s.Spline]; !ok {
				return invalid("selection '%s' uses unknown spline '%s'", s.Name, s.Spline)
			}
		case "texture":
			if _, ok := r.Textures[s.Texture]; !ok {
				return invalid("selection '%s' uses unknown texture '%s'", s.Name, s.Texture)
			}
		case "combine":
			inputs, ok := combineOps[s.Op]
			if !ok {
				return invalid("selection '%s' has unknown op '%s'", s.Name, s.Op)
			}
			if len(s.Inputs) != inputs {
				return invalid("selection '%s': op '%s' takes %d inputs, got %d", s.Name, s.Op, inputs, len(s.Inputs))
			}
			for _, in := range s.Inputs {
				if !known[in] {
					return invalid("selection '%s' uses '%s' before it is defined", s.Name, in)
				}
			}
		}
		known[s.Name] = true
	}

	for i, st := range r.Steps {
		if !stepOps[st.Op] {
			return invalid("step %d has unknown op '%s'", i, st.Op)
		}
		if st.Selection != "" && !known[st.Selection] {
			return invalid("step %d (%s) uses unknown selection '%s'", i, st.Op, st.Selection)
		}
		if st.Op == "lerp" {
			if _, ok := r.Targets[st.Target]; !ok {
				return invalid("step %d uses unknown target '%s'", i, st.Target)
			}
		}
	}
	return nil
}
