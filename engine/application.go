package engine

import (
	"fmt"
	"os"
	"runtime"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/sculpt/engine/core"
)

type ApplicationConfig struct {
	// The application name used in log output.
	Name string `toml:"name"`
	// Directory holding meshes, textures and recipes. Asset names are relative to it.
	AssetsDir string `toml:"assets_dir"`
	// Recipe to apply, relative to AssetsDir.
	Recipe string `toml:"recipe"`
	// More recipes, applied concurrently with Recipe.
	Recipes []string `toml:"recipes"`
	// Number of recipes applied at the same time.
	Workers int `toml:"workers"`
	// Re-apply the recipe whenever it or one of its inputs changes.
	Watch    bool          `toml:"watch"`
	LogLevel core.LogLevel `toml:"log_level"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Name:      "sculpt",
		AssetsDir: "assets",
		Workers:   runtime.NumCPU(),
		LogLevel:  core.LogLevelInfo,
	}
}

// LoadApplicationConfig reads a TOML file on top of the defaults.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	cfg := DefaultApplicationConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// RecipeNames lists Recipe followed by Recipes, without duplicates.
func (c *ApplicationConfig) RecipeNames() []string {
	seen := map[string]bool{}
	names := []string{}
	for _, name := range append([]string{c.Recipe}, c.Recipes...) {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
