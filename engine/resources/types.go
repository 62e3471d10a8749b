package resources

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Unknown or unsupported file. */
	ResourceTypeNone ResourceType = iota
	/** @brief Model resource type (a StaticMesh with its sections). */
	ResourceTypeModel
	/** @brief Image resource type (a Texture). */
	ResourceTypeImage
	/** @brief Deformation recipe resource type. */
	ResourceTypeRecipe
)

func (rt ResourceType) String() string {
	switch rt {
	case ResourceTypeModel:
		return "model"
	case ResourceTypeImage:
		return "image"
	case ResourceTypeRecipe:
		return "recipe"
	default:
		return "none"
	}
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The resource type, which tells what Data holds. */
	ResourceType ResourceType
	/** @brief The name of the resource. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The size of the resource data in bytes. */
	DataSize uint64
	/** @brief The resource data. */
	Data interface{}
}

/** @brief Parameters used when loading an image. */
type ImageResourceParams struct {
	/** @brief Indicates if the image should be flipped on the y-axis when loaded. */
	FlipY bool
}

/** @brief Parameters used when loading a model. */
type ModelResourceParams struct {
	/** @brief Rebuild normals even when the file provides them. */
	ForceNormals bool
}
