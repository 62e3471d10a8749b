package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/sculpt/engine/core"
	"github.com/spaghettifunk/sculpt/engine/resources"
)

const triangleOBJ = "o tri\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"

func newManager(t *testing.T) (*AssetManager, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "meshes"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "meshes", "tri.obj"), []byte(triangleOBJ), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	am, err := NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(dir))
	t.Cleanup(func() { _ = am.Shutdown() })
	return am, dir
}

func TestDetermineAssetType(t *testing.T) {
	assert.Equal(t, resources.ResourceTypeModel, determineAssetType("a/b.OBJ"))
	assert.Equal(t, resources.ResourceTypeImage, determineAssetType("mask.png"))
	assert.Equal(t, resources.ResourceTypeImage, determineAssetType("mask.webp"))
	assert.Equal(t, resources.ResourceTypeRecipe, determineAssetType("r.yml"))
	assert.Equal(t, resources.ResourceTypeNone, determineAssetType("notes.txt"))
}

func TestAssetManagerIndex(t *testing.T) {
	am, dir := newManager(t)

	assert.Equal(t, 1, am.Count())
	info, ok := am.Lookup("meshes/tri.obj")
	require.True(t, ok)
	assert.Equal(t, resources.ResourceTypeModel, info.Type)
	assert.Equal(t, filepath.Join(dir, "meshes", "tri.obj"), am.Assets()[0].Path)

	_, ok = am.Lookup("notes.txt")
	assert.False(t, ok)
}

func TestAssetManagerLoadAndSave(t *testing.T) {
	am, dir := newManager(t)

	res, err := am.LoadAsset("meshes/tri.obj", resources.ResourceTypeModel, nil)
	require.NoError(t, err)
	mesh := res.Data.(*resources.StaticMesh)
	info, _ := am.Lookup("meshes/tri.obj")
	assert.False(t, info.LastLoaded.IsZero())

	_, err = am.LoadAsset("meshes/tri.obj", resources.ResourceTypeImage, nil)
	assert.ErrorIs(t, err, core.ErrUnknownAsset)

	_, err = am.LoadAsset("meshes/missing.obj", resources.ResourceTypeModel, nil)
	assert.ErrorIs(t, err, core.ErrAssetNotFound)

	out := &resources.Resource{ResourceType: resources.ResourceTypeModel, Data: mesh}
	require.NoError(t, am.SaveAsset("out/copy.obj", out))
	_, err = os.Stat(filepath.Join(dir, "out", "copy.obj"))
	require.NoError(t, err)
	_, ok := am.Lookup("out/copy.obj")
	assert.True(t, ok)

	res, err = am.LoadAsset(filepath.Join(dir, "out", "copy.obj"), resources.ResourceTypeModel, nil)
	require.NoError(t, err)
	assert.Equal(t, "copy", res.Name)

	assert.ErrorIs(t, am.SaveAsset("out/copy.png", out), core.ErrUnknownAsset)
	assert.Error(t, am.SaveAsset("out/copy.obj", nil))
	assert.Error(t, am.SaveAsset("out/r.toml", &resources.Resource{ResourceType: resources.ResourceTypeRecipe}))
}

func TestAssetManagerLoadsUnindexedFile(t *testing.T) {
	am, dir := newManager(t)
	path := filepath.Join(dir, "late.obj")
	require.NoError(t, os.WriteFile(path, []byte(triangleOBJ), 0o644))

	_, err := am.LoadAsset("late.obj", resources.ResourceTypeModel, nil)
	assert.NoError(t, err)
}

func TestAssetManagerEvents(t *testing.T) {
	am, dir := newManager(t)
	path := filepath.Join(dir, "meshes", "tri.obj")
	require.NoError(t, os.WriteFile(path, []byte(triangleOBJ+"# edited\n"), 0o644))

	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev := <-am.Events():
			if ev.Path != path {
				continue
			}
			assert.Equal(t, resources.ResourceTypeModel, ev.Type)
			assert.False(t, ev.Removed)
			return
		case <-timeout:
			t.Fatal("no event for modified asset")
		}
	}
}

func TestAssetManagerShutdownClosesEvents(t *testing.T) {
	am, _ := newManager(t)
	require.NoError(t, am.Shutdown())
	require.NoError(t, am.Shutdown())

	timeout := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-am.Events():
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("events channel not closed")
		}
	}
}
