package engine

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/sculpt/engine/core"
)

const quadOBJ = `o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1 4//1
`

const liftRecipe = `
name = "lift"

[source]
path = "meshes/quad.obj"

[output]
path = "out/lifted.obj"

[[selections]]
name = "right"
kind = "linear"
start = [0, 0, 0]
end = [1, 0, 0]

[[steps]]
op = "translate"
selection = "right"
delta = [0, 0, 3]
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestEngineAppliesRecipe(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "meshes", "quad.obj"), quadOBJ)
	writeFile(t, filepath.Join(dir, "recipes", "lift.toml"), liftRecipe)

	cfg := DefaultApplicationConfig()
	cfg.AssetsDir = dir
	cfg.Recipe = "recipes/lift.toml"

	e, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	assert.Equal(t, EngineStageInitialized, e.Stage())

	require.NoError(t, e.Run(context.Background()))
	require.NoError(t, e.Shutdown())
	assert.Equal(t, EngineStageShuttingDown, e.Stage())

	result := e.Result("recipes/lift.toml")
	require.NotNil(t, result)
	assert.Equal(t, "lift", result.Recipe)
	vertices := result.Mesh.Sections[0].Vertices
	assert.InDelta(t, 0, vertices[0].Z, 1e-5)
	assert.InDelta(t, 3, vertices[1].Z, 1e-5)
	assert.InDelta(t, 3, vertices[2].Z, 1e-5)
	assert.InDelta(t, 0, vertices[3].Z, 1e-5)

	_, err = os.Stat(filepath.Join(dir, "out", "lifted.obj"))
	assert.NoError(t, err)
}

func TestEngineAppliesRecipesConcurrently(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "meshes", "quad.obj"), quadOBJ)
	writeFile(t, filepath.Join(dir, "lift.toml"), liftRecipe)
	writeFile(t, filepath.Join(dir, "sink.yaml"), `name: sink
source:
  path: meshes/quad.obj
steps:
  - op: translate
    delta: [0, 0, -1]
`)

	cfg := DefaultApplicationConfig()
	cfg.AssetsDir = dir
	cfg.Recipe = "lift.toml"
	cfg.Recipes = []string{"sink.yaml", "lift.toml"}
	cfg.Workers = 2
	assert.Equal(t, []string{"lift.toml", "sink.yaml"}, cfg.RecipeNames())

	e, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	require.NoError(t, e.Run(context.Background()))
	require.NoError(t, e.Shutdown())

	require.NotNil(t, e.Result("lift.toml"))
	sink := e.Result("sink.yaml")
	require.NotNil(t, sink)
	for _, v := range sink.Mesh.Sections[0].Vertices {
		assert.InDelta(t, -1, v.Z, 1e-5)
	}
}

func TestEngineRunErrors(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultApplicationConfig()
	cfg.AssetsDir = dir

	e, err := New(cfg)
	require.NoError(t, err)
	assert.Error(t, e.Run(context.Background()))

	require.NoError(t, e.Initialize())
	assert.ErrorIs(t, e.Run(context.Background()), core.ErrInvalidRecipe)
	require.NoError(t, e.Shutdown())

	cfg.Recipe = "missing.toml"
	e, err = New(cfg)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	assert.ErrorIs(t, e.Run(context.Background()), core.ErrAssetNotFound)
	require.NoError(t, e.Shutdown())

	_, err = New(nil)
	assert.Error(t, err)
}

func TestEngineLogsFailingRecipeVerbatim(t *testing.T) {
	var buf bytes.Buffer
	core.SetLogOutput(&buf)
	defer core.SetLogOutput(os.Stderr)

	cfg := DefaultApplicationConfig()
	cfg.AssetsDir = t.TempDir()
	cfg.Recipe = "100%done.toml"

	e, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	err = e.Run(context.Background())
	require.NoError(t, e.Shutdown())

	require.ErrorIs(t, err, core.ErrAssetNotFound)
	assert.Contains(t, err.Error(), "100%done.toml")
	assert.Contains(t, buf.String(), "100%done.toml")
	assert.NotContains(t, buf.String(), "%!")
}

func TestEngineWatchStopsWithContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "meshes", "quad.obj"), quadOBJ)
	writeFile(t, filepath.Join(dir, "lift.toml"), liftRecipe)

	cfg := DefaultApplicationConfig()
	cfg.AssetsDir = dir
	cfg.Recipe = "lift.toml"
	cfg.Watch = true

	e, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, e.Run(ctx))
	require.NoError(t, e.Shutdown())
}

func TestLoadApplicationConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sculpt.toml")
	writeFile(t, path, "assets_dir = \"data\"\nrecipe = \"bend.yaml\"\nwatch = true\nlog_level = \"debug\"\n")

	cfg, err := LoadApplicationConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "sculpt", cfg.Name)
	assert.Equal(t, "data", cfg.AssetsDir)
	assert.Equal(t, "bend.yaml", cfg.Recipe)
	assert.True(t, cfg.Watch)
	assert.Equal(t, core.LogLevelDebug, cfg.LogLevel)

	_, err = LoadApplicationConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
