//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Applies the recipe named by $SCULPT_RECIPE (default recipes/twist.toml) to the sample assets.
func (Run) Recipe() error {
	recipe := os.Getenv("SCULPT_RECIPE")
	if recipe == "" {
		recipe = "recipes/twist.toml"
	}
	fmt.Printf("Applying %s...\n", recipe)
	_, err := executeCmd("go", withArgs("run", "main.go", "-assets", "assets", "-recipe", recipe), withStream())
	return err
}

// Applies the sample recipe and keeps re-applying it when the assets change.
func (Run) Watch() error {
	_, err := executeCmd("go", withArgs("run", "main.go", "-assets", "assets", "-recipe", "recipes/twist.toml", "-watch"), withStream())
	return err
}
