package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/spaghettifunk/sculpt/engine/resources"
)

type TextureLoader struct{}

func (tl *TextureLoader) Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	flipY := false
	if p, ok := params.(*resources.ImageResourceParams); ok && p != nil {
		flipY = p.FlipY
	}

	// Open and decode the texture image file
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(file) // Decodes the image (png, jpeg, bmp, tiff, webp)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &resources.Resource{
		ResourceType: resources.ResourceTypeImage,
		Name:         name,
		FullPath:     path,
		DataSize:     uint64(info.Size()),
		Data:         resources.NewTextureFromImage(name, img, flipY),
	}, nil
}

func (tl *TextureLoader) Unload(*resources.Resource) error {
	return nil
}

// Save writes a *resources.Texture as PNG.
func (tl *TextureLoader) Save(path string, resource *resources.Resource) error {
	texture, ok := resource.Data.(*resources.Texture)
	if !ok {
		return errUnsupportedData(resource)
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".png" {
		return fmt.Errorf("textures can only be saved as png, not %s", ext)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(file, texture.Image()); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
