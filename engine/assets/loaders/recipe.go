package loaders

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/sculpt/engine/recipe"
	"github.com/spaghettifunk/sculpt/engine/resources"
)

// RecipeLoader decodes TOML or YAML deformation recipes.
type RecipeLoader struct{}

func (rl *RecipeLoader) Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	format, err := recipe.FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	rcp, err := recipe.Decode(file, format)
	if err != nil {
		return nil, err
	}
	name := rcp.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		rcp.Name = name
	}

	return &resources.Resource{
		ResourceType: resources.ResourceTypeRecipe,
		Name:         name,
		FullPath:     path,
		DataSize:     uint64(info.Size()),
		Data:         rcp,
	}, nil
}

func (rl *RecipeLoader) Unload(*resources.Resource) error {
	return nil
}
