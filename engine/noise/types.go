package noise

import (
	"fmt"
	"strings"
)

type Type int

const (
	Value Type = iota
	ValueFractal
	Perlin
	PerlinFractal
	Simplex
	SimplexFractal
	Cellular
	WhiteNoise
	Cubic
	CubicFractal
)

type Interp int

const (
	InterpLinear Interp = iota
	InterpHermite
	InterpQuintic
)

type FractalType int

const (
	FBM FractalType = iota
	Billow
	RigidMulti
)

type CellularDistance int

const (
	Euclidean CellularDistance = iota
	Manhattan
	Natural
)

var typeNames = []string{"value", "value_fractal", "perlin", "perlin_fractal", "simplex", "simplex_fractal", "cellular", "white_noise", "cubic", "cubic_fractal"}
var interpNames = []string{"linear", "hermite", "quintic"}
var fractalNames = []string{"fbm", "billow", "rigid_multi"}
var distanceNames = []string{"euclidean", "manhattan", "natural"}

func nameOf(names []string, i int, kind string) string {
	if i >= 0 && i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("%s(%d)", kind, i)
}

func parseName(names []string, text []byte, kind string) (int, error) {
	n := strings.ToLower(strings.TrimSpace(string(text)))
	for i, name := range names {
		if name == n {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown noise %s '%s'", kind, string(text))
}

func (t Type) String() string { return nameOf(typeNames, int(t), "type") }

func (t Type) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Type) UnmarshalText(text []byte) error {
	i, err := parseName(typeNames, text, "type")
	*t = Type(i)
	return err
}

func (i Interp) String() string { return nameOf(interpNames, int(i), "interp") }

func (i Interp) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

func (i *Interp) UnmarshalText(text []byte) error {
	v, err := parseName(interpNames, text, "interp")
	*i = Interp(v)
	return err
}

func (f FractalType) String() string { return nameOf(fractalNames, int(f), "fractal") }

func (f FractalType) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *FractalType) UnmarshalText(text []byte) error {
	v, err := parseName(fractalNames, text, "fractal")
	*f = FractalType(v)
	return err
}

func (d CellularDistance) String() string { return nameOf(distanceNames, int(d), "distance") }

func (d CellularDistance) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *CellularDistance) UnmarshalText(text []byte) error {
	v, err := parseName(distanceNames, text, "distance")
	*d = CellularDistance(v)
	return err
}

// Config describes a noise field. Not every setting applies to every Type:
// octaves, lacunarity, gain and fractal type only affect the fractal types,
// the distance function only affects Cellular.
type Config struct {
	Seed             int32            `toml:"seed" yaml:"seed"`
	Frequency        float32          `toml:"frequency" yaml:"frequency"`
	Interp           Interp           `toml:"interp" yaml:"interp"`
	Type             Type             `toml:"type" yaml:"type"`
	Octaves          int              `toml:"octaves" yaml:"octaves"`
	Lacunarity       float32          `toml:"lacunarity" yaml:"lacunarity"`
	Gain             float32          `toml:"gain" yaml:"gain"`
	FractalType      FractalType      `toml:"fractal_type" yaml:"fractal_type"`
	CellularDistance CellularDistance `toml:"cellular_distance" yaml:"cellular_distance"`
}

func DefaultConfig() Config {
	return Config{
		Seed:             1337,
		Frequency:        0.01,
		Interp:           InterpQuintic,
		Type:             Simplex,
		Octaves:          3,
		Lacunarity:       2.0,
		Gain:             0.5,
		FractalType:      FBM,
		CellularDistance: Euclidean,
	}
}
