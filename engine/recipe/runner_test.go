package recipe

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/sculpt/engine/component"
	"github.com/spaghettifunk/sculpt/engine/core"
	"github.com/spaghettifunk/sculpt/engine/geometry"
	"github.com/spaghettifunk/sculpt/engine/math"
	"github.com/spaghettifunk/sculpt/engine/resources"
	"github.com/spaghettifunk/sculpt/engine/selection"
)

type memoryAssets struct {
	loaded map[string]*resources.Resource
	saved  map[string]*resources.Resource
}

func newMemoryAssets() *memoryAssets {
	return &memoryAssets{
		loaded: map[string]*resources.Resource{},
		saved:  map[string]*resources.Resource{},
	}
}

func (m *memoryAssets) add(name string, resourceType resources.ResourceType, data interface{}) {
	m.loaded[name] = &resources.Resource{ResourceType: resourceType, Name: name, Data: data}
}

func (m *memoryAssets) LoadAsset(name string, resourceType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	res, ok := m.loaded[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrAssetNotFound, name)
	}
	if res.ResourceType != resourceType {
		return nil, core.ErrUnknownAsset
	}
	return res, nil
}

func (m *memoryAssets) SaveAsset(name string, resource *resources.Resource) error {
	m.saved[name] = resource
	return nil
}

func quadMesh(name string, z float32) *resources.StaticMesh {
	up := math.NewVec3(0, 0, 1)
	return resources.NewStaticMesh(name, []geometry.SectionGeometry{{
		Vertices: []math.Vec3{
			math.NewVec3(0, 0, z), math.NewVec3(1, 0, z),
			math.NewVec3(1, 1, z), math.NewVec3(0, 1, z),
		},
		Triangles: []uint32{0, 1, 2, 0, 2, 3},
		Normals:   []math.Vec3{up, up, up, up},
	}})
}

func vertexZ(t *testing.T, res *Result) []float32 {
	t.Helper()
	require.Equal(t, 1, res.Mesh.NumSections())
	out := []float32{}
	for _, v := range res.Mesh.Sections[0].Vertices {
		out = append(out, v.Z)
	}
	return out
}

func TestRunnerAppliesSteps(t *testing.T) {
	store := newMemoryAssets()
	store.add("quad.obj", resources.ResourceTypeModel, quadMesh("quad", 0))

	rcp := &Recipe{
		Source: MeshConfig{Path: "quad.obj"},
		Output: OutputConfig{Path: "out/quad.obj", CreateCollision: true},
		Selections: []SelectionConfig{
			{Name: "right", Kind: "linear", Start: Vector{0, 0, 0}, End: Vector{1, 0, 0}},
			{Name: "left", Kind: "combine", Op: "one_minus", Inputs: []string{"right"}},
		},
		Steps: []StepConfig{
			{Op: "translate", Selection: "right", Delta: Vector{0, 0, 2}},
			{Op: "inflate", Selection: "left", Offset: 1},
		},
	}

	runner := NewRunner(store)
	res, err := runner.Run(context.Background(), rcp)
	require.NoError(t, err)

	assert.Equal(t, "quad", res.Recipe)
	assert.Equal(t, []float32{0, 1, 1, 0}, res.Selections["right"].Weights)
	assert.Equal(t, []float32{1, 0, 0, 1}, res.Selections["left"].Weights)
	z := vertexZ(t, res)
	for i, want := range []float32{1, 2, 2, 1} {
		assert.InDelta(t, want, z[i], 1e-5)
	}
	assert.True(t, res.Mesh.Sections[0].CollisionEnabled)

	saved, ok := store.saved["out/quad.obj"]
	require.True(t, ok)
	assert.Equal(t, resources.ResourceTypeModel, saved.ResourceType)
	assert.Same(t, res.Mesh, saved.Data)

	assert.Equal(t, 2, runner.Metrics().TotalOperations)
	assert.Equal(t, 8, runner.Metrics().TotalVertices)
}

func TestRunnerTexturesAndTargets(t *testing.T) {
	store := newMemoryAssets()
	store.add("quad.obj", resources.ResourceTypeModel, quadMesh("quad", 0))
	store.add("raised.obj", resources.ResourceTypeModel, quadMesh("raised", 4))
	store.add("mask.png", resources.ResourceTypeImage, &resources.Texture{
		Width: 1, Height: 1, Pixels: []math.Vec4{math.NewVec4(0.25, 0, 0, 1)},
	})

	rcp := &Recipe{
		Name:     "blend",
		Source:   MeshConfig{Path: "quad.obj"},
		Textures: map[string]TextureConfig{"mask": {Path: "mask.png"}},
		Targets:  map[string]MeshConfig{"raised": {Path: "raised.obj"}},
		Selections: []SelectionConfig{
			{Name: "painted", Kind: "texture", Texture: "mask", Channel: geometry.ChannelRed},
			{Name: "double", Kind: "combine", Op: "multiply_float", Inputs: []string{"painted"}, Value: 2},
		},
		Steps: []StepConfig{
			{Op: "lerp", Target: "raised", Alpha: 1, Selection: "double"},
		},
	}

	res, err := NewRunner(store).Run(context.Background(), rcp)
	require.NoError(t, err)
	assert.Equal(t, "blend", res.Recipe)
	for _, z := range vertexZ(t, res) {
		assert.InDelta(t, 2, z, 1e-5)
	}
	assert.Empty(t, store.saved)
}

func TestRunnerIsDeterministic(t *testing.T) {
	store := newMemoryAssets()
	store.add("quad.obj", resources.ResourceTypeModel, quadMesh("quad", 0))

	rcp := &Recipe{
		Seed:   42,
		Source: MeshConfig{Path: "quad.obj"},
		Selections: []SelectionConfig{
			{Name: "all", Kind: "all"},
			{Name: "random", Kind: "combine", Op: "randomize", Inputs: []string{"all"}, Min: 0, Max: 1},
		},
		Steps: []StepConfig{
			{Op: "jitter", Selection: "random", Min: Vector{-1, -1, -1}, Max: Vector{1, 1, 1}},
		},
	}

	first, err := NewRunner(store).Run(context.Background(), rcp)
	require.NoError(t, err)
	second, err := NewRunner(store).Run(context.Background(), rcp)
	require.NoError(t, err)
	assert.Equal(t, first.Mesh.Sections[0].Vertices, second.Mesh.Sections[0].Vertices)
	assert.Equal(t, first.Selections["random"].Weights, second.Selections["random"].Weights)
}

func TestRunnerErrors(t *testing.T) {
	store := newMemoryAssets()
	store.add("quad.obj", resources.ResourceTypeModel, quadMesh("quad", 0))
	runner := NewRunner(store)

	_, err := runner.Run(context.Background(), &Recipe{Source: MeshConfig{Path: "missing.obj"}})
	assert.ErrorIs(t, err, core.ErrAssetNotFound)

	_, err = runner.Run(context.Background(), &Recipe{Source: MeshConfig{Path: "quad.obj", LOD: 3}})
	assert.ErrorIs(t, err, core.ErrInvalidLOD)

	_, err = runner.Run(context.Background(), &Recipe{
		Source: MeshConfig{Path: "quad.obj"},
		Steps:  []StepConfig{{Op: "scale_along_axis", Axis: &Vector{0, 0, 0}, Scale: 2}},
	})
	assert.ErrorIs(t, err, core.ErrZeroVector)

	_, err = runner.Run(context.Background(), &Recipe{})
	assert.ErrorIs(t, err, core.ErrInvalidRecipe)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.Run(ctx, &Recipe{
		Source: MeshConfig{Path: "quad.obj"},
		Steps:  []StepConfig{{Op: "translate", Delta: Vector{1, 0, 0}}},
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStepRejectsMissingWeights(t *testing.T) {
	comp := component.New()
	require.NoError(t, comp.LoadFromStaticMesh(quadMesh("quad", 0), 0))
	st := &run{
		comp: comp,
		sets: map[string]*selection.SelectionSet{"gone": nil},
	}

	err := st.step(StepConfig{Op: "translate", Selection: "gone", Delta: Vector{0, 0, 1}})
	assert.ErrorIs(t, err, core.ErrInvalidRecipe)
	for _, v := range comp.MeshGeometry().Sections[0].Vertices {
		assert.InDelta(t, 0, v.Z, 1e-5)
	}

	require.NoError(t, st.step(StepConfig{Op: "translate", Delta: Vector{0, 0, 1}}))
	for _, v := range comp.MeshGeometry().Sections[0].Vertices {
		assert.InDelta(t, 1, v.Z, 1e-5)
	}
}
