package geometry

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/sculpt/engine/math"
)

// MeshSource provides read-only section data, per level of detail.
type MeshSource interface {
	Name() string
	NumSections(lod int) (int, error)
	Section(lod, index int) (SectionGeometry, error)
}

// MeshTarget receives rebuilt sections.
type MeshTarget interface {
	ClearAllMeshSections()
	CreateMeshSection(index int, section SectionGeometry, createCollision bool) error
}

// TextureSampler exposes texels as linear colours in [0, 1].
type TextureSampler interface {
	Size() (width, height int)
	Texel(x, y int) math.Vec4
}

type TextureChannel int

const (
	ChannelRed TextureChannel = iota
	ChannelGreen
	ChannelBlue
	ChannelAlpha
)

func (c TextureChannel) String() string {
	switch c {
	case ChannelRed:
		return "red"
	case ChannelGreen:
		return "green"
	case ChannelBlue:
		return "blue"
	case ChannelAlpha:
		return "alpha"
	default:
		return fmt.Sprintf("TextureChannel(%d)", int(c))
	}
}

// Of returns the channel's component of colour.
func (c TextureChannel) Of(colour math.Vec4) float32 {
	switch c {
	case ChannelGreen:
		return colour.Y
	case ChannelBlue:
		return colour.Z
	case ChannelAlpha:
		return colour.W
	default:
		return colour.X
	}
}

func (c TextureChannel) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *TextureChannel) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "r", "red":
		*c = ChannelRed
	case "g", "green":
		*c = ChannelGreen
	case "b", "blue":
		*c = ChannelBlue
	case "a", "alpha":
		*c = ChannelAlpha
	default:
		return fmt.Errorf("unknown texture channel '%s'", string(text))
	}
	return nil
}
