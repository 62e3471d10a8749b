package assets

import "github.com/spaghettifunk/sculpt/engine/resources"

type Loader interface {
	Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) // `interface{}` here allows loaders to take per-type parameters
	Unload(*resources.Resource) error
}

// Saver is implemented by loaders that can also write their resource type.
type Saver interface {
	Save(path string, resource *resources.Resource) error
}
