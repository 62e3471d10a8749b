package recipe

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type Format uint8

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "toml"
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("unsupported recipe file '%s'", path)
	}
}

// Decode reads a recipe and validates it. Unknown keys are rejected.
func Decode(r io.Reader, format Format) (*Recipe, error) {
	rcp := &Recipe{}
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(rcp); err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to decode yaml recipe: %w", err)
		}
	default:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(rcp); err != nil {
			return nil, fmt.Errorf("failed to decode toml recipe: %w", err)
		}
	}
	if err := rcp.Validate(); err != nil {
		return nil, err
	}
	return rcp, nil
}
