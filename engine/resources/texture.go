package resources

import (
	"image"
	"image/color"

	"github.com/spaghettifunk/sculpt/engine/core"
	"github.com/spaghettifunk/sculpt/engine/math"
)

/**
 * @brief A decoded image kept on the CPU as linear colours in [0, 1],
 * row-major from the top-left texel.
 */
type Texture struct {
	/** @brief The unique texture identifier. */
	ID core.Identifier
	/** @brief The texture Name. */
	Name string
	/** @brief The texture Width. */
	Width int
	/** @brief The texture Height. */
	Height int
	/** @brief The number of channels the source image carried. */
	ChannelCount uint8
	/** @brief Incremented every time the data is reloaded. */
	Generation uint32
	/** @brief The texels. */
	Pixels []math.Vec4
}

// NewTextureFromImage copies img into a new Texture.
func NewTextureFromImage(name string, img image.Image, flipY bool) *Texture {
	bounds := img.Bounds()
	t := &Texture{
		ID:           core.NewIdentifier(),
		Name:         name,
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
		ChannelCount: channelCount(img.ColorModel()),
		Pixels:       make([]math.Vec4, bounds.Dx()*bounds.Dy()),
	}
	for y := 0; y < t.Height; y++ {
		row := y
		if flipY {
			row = t.Height - 1 - y
		}
		for x := 0; x < t.Width; x++ {
			c := color.NRGBA64Model.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA64)
			t.Pixels[row*t.Width+x] = math.NewVec4(
				float32(c.R)/0xffff,
				float32(c.G)/0xffff,
				float32(c.B)/0xffff,
				float32(c.A)/0xffff)
		}
	}
	return t
}

func channelCount(model color.Model) uint8 {
	switch model {
	case color.GrayModel, color.Gray16Model:
		return 1
	case color.AlphaModel, color.Alpha16Model:
		return 1
	case color.YCbCrModel:
		return 3
	default:
		return 4
	}
}

func (t *Texture) Size() (int, int) {
	return t.Width, t.Height
}

// Texel returns the colour at (x, y), clamping coordinates to the image.
func (t *Texture) Texel(x, y int) math.Vec4 {
	if t.Width == 0 || t.Height == 0 {
		return math.Vec4{}
	}
	x = math.Clamp(x, 0, t.Width-1)
	y = math.Clamp(y, 0, t.Height-1)
	return t.Pixels[y*t.Width+x]
}

// Image converts the texels back to an 8-bit image.
func (t *Texture) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.Width, t.Height))
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			p := t.Pixels[y*t.Width+x]
			img.SetNRGBA(x, y, color.NRGBA{
				R: toByte(p.X),
				G: toByte(p.Y),
				B: toByte(p.Z),
				A: toByte(p.W),
			})
		}
	}
	return img
}

func toByte(f float32) uint8 {
	return uint8(math.Clamp(f, 0, 1)*255 + 0.5)
}
