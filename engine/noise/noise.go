package noise

import (
	"github.com/chewxy/math32"

	"github.com/spaghettifunk/sculpt/engine/math"
)

// MAX_OCTAVES bounds fractal octaves. Each octave offsets into the
// permutation table.
const MAX_OCTAVES int = 255

const (
	xPrime int32 = 1619
	yPrime int32 = 31337
	zPrime int32 = 6971

	cubic3DBounding float32 = 1 / (1.5 * 1.5 * 1.5)

	f3 float32 = 1.0 / 3.0
	g3 float32 = 1.0 / 6.0
)

var gradients = [12]math.Vec3{
	{X: 1, Y: 1, Z: 0}, {X: -1, Y: 1, Z: 0}, {X: 1, Y: -1, Z: 0}, {X: -1, Y: -1, Z: 0},
	{X: 1, Y: 0, Z: 1}, {X: -1, Y: 0, Z: 1}, {X: 1, Y: 0, Z: -1}, {X: -1, Y: 0, Z: -1},
	{X: 0, Y: 1, Z: 1}, {X: 0, Y: -1, Z: 1}, {X: 0, Y: 1, Z: -1}, {X: 0, Y: -1, Z: -1},
}

// Generator samples a seeded 3D noise field. It is deterministic: two
// generators built from the same Config return the same values.
type Generator struct {
	cfg             Config
	perm            [512]uint8
	perm12          [512]uint8
	fractalBounding float32
}

func New(cfg Config) *Generator {
	g := &Generator{cfg: cfg}
	g.cfg.Octaves = math.Clamp(g.cfg.Octaves, 1, MAX_OCTAVES)

	stream := math.NewRandomStream(cfg.Seed)
	p := stream.Perm(256)
	for i := 0; i < 512; i++ {
		g.perm[i] = uint8(p[i&255])
		g.perm12[i] = g.perm[i] % 12
	}

	amp := g.cfg.Gain
	ampFractal := float32(1)
	for i := 1; i < g.cfg.Octaves; i++ {
		ampFractal += amp
		amp *= g.cfg.Gain
	}
	g.fractalBounding = 1 / ampFractal
	return g
}

func (g *Generator) Config() Config {
	return g.cfg
}

// GetNoise returns the noise value at a point, roughly within [-1, 1].
func (g *Generator) GetNoise(x, y, z float32) float32 {
	x *= g.cfg.Frequency
	y *= g.cfg.Frequency
	z *= g.cfg.Frequency

	switch g.cfg.Type {
	case Value:
		return g.singleValue(0, x, y, z)
	case ValueFractal:
		return g.fractal(g.singleValue, x, y, z)
	case Perlin:
		return g.singlePerlin(0, x, y, z)
	case PerlinFractal:
		return g.fractal(g.singlePerlin, x, y, z)
	case Simplex:
		return g.singleSimplex(0, x, y, z)
	case SimplexFractal:
		return g.fractal(g.singleSimplex, x, y, z)
	case Cellular:
		return g.singleCellular(x, y, z)
	case WhiteNoise:
		return g.whiteNoise(x, y, z)
	case Cubic:
		return g.singleCubic(0, x, y, z)
	case CubicFractal:
		return g.fractal(g.singleCubic, x, y, z)
	default:
		return 0
	}
}

func (g *Generator) GetNoiseAt(v math.Vec3) float32 {
	return g.GetNoise(v.X, v.Y, v.Z)
}

type singleFunc func(offset uint8, x, y, z float32) float32

func (g *Generator) fractal(single singleFunc, x, y, z float32) float32 {
	var sum float32
	amp := float32(1)

	switch g.cfg.FractalType {
	case Billow:
		sum = math32.Abs(single(g.perm[0], x, y, z))*2 - 1
		for i := 1; i < g.cfg.Octaves; i++ {
			x *= g.cfg.Lacunarity
			y *= g.cfg.Lacunarity
			z *= g.cfg.Lacunarity
			amp *= g.cfg.Gain
			sum += (math32.Abs(single(g.perm[i], x, y, z))*2 - 1) * amp
		}
	case RigidMulti:
		sum = 1 - math32.Abs(single(g.perm[0], x, y, z))
		for i := 1; i < g.cfg.Octaves; i++ {
			x *= g.cfg.Lacunarity
			y *= g.cfg.Lacunarity
			z *= g.cfg.Lacunarity
			amp *= g.cfg.Gain
			sum -= (1 - math32.Abs(single(g.perm[i], x, y, z))) * amp
		}
		return sum
	default:
		sum = single(g.perm[0], x, y, z)
		for i := 1; i < g.cfg.Octaves; i++ {
			x *= g.cfg.Lacunarity
			y *= g.cfg.Lacunarity
			z *= g.cfg.Lacunarity
			amp *= g.cfg.Gain
			sum += single(g.perm[i], x, y, z) * amp
		}
	}
	return sum * g.fractalBounding
}

func fastFloor(f float32) int32 {
	if f >= 0 {
		return int32(f)
	}
	return int32(f) - 1
}

func (g *Generator) interp(t float32) float32 {
	switch g.cfg.Interp {
	case InterpHermite:
		return t * t * (3 - 2*t)
	case InterpQuintic:
		return t * t * t * (t*(t*6-15) + 10)
	default:
		return t
	}
}

func (g *Generator) index(offset uint8, x, y, z int32) uint8 {
	return g.perm[int(x&0xff)+int(g.perm[int(y&0xff)+int(g.perm[int(z&0xff)+int(offset)])])]
}

func (g *Generator) valCoord(offset uint8, x, y, z int32) float32 {
	return float32(g.index(offset, x, y, z))/127.5 - 1
}

func (g *Generator) gradCoord(offset uint8, x, y, z int32, xd, yd, zd float32) float32 {
	i := g.perm12[int(x&0xff)+int(g.perm[int(y&0xff)+int(g.perm[int(z&0xff)+int(offset)])])]
	gr := gradients[i]
	return xd*gr.X + yd*gr.Y + zd*gr.Z
}

// hashCoord is a seed-based hash in [-1, 1], independent of the permutation table.
func hashCoord(seed, x, y, z int32) float32 {
	n := seed
	n ^= xPrime * x
	n ^= yPrime * y
	n ^= zPrime * z
	return float32(n*n*n*60493) / 2147483648.0
}

func (g *Generator) singleValue(offset uint8, x, y, z float32) float32 {
	x0, y0, z0 := fastFloor(x), fastFloor(y), fastFloor(z)
	x1, y1, z1 := x0+1, y0+1, z0+1

	xs := g.interp(x - float32(x0))
	ys := g.interp(y - float32(y0))
	zs := g.interp(z - float32(z0))

	xf00 := math.Lerp(g.valCoord(offset, x0, y0, z0), g.valCoord(offset, x1, y0, z0), xs)
	xf10 := math.Lerp(g.valCoord(offset, x0, y1, z0), g.valCoord(offset, x1, y1, z0), xs)
	xf01 := math.Lerp(g.valCoord(offset, x0, y0, z1), g.valCoord(offset, x1, y0, z1), xs)
	xf11 := math.Lerp(g.valCoord(offset, x0, y1, z1), g.valCoord(offset, x1, y1, z1), xs)

	yf0 := math.Lerp(xf00, xf10, ys)
	yf1 := math.Lerp(xf01, xf11, ys)
	return math.Lerp(yf0, yf1, zs)
}

func (g *Generator) singlePerlin(offset uint8, x, y, z float32) float32 {
	x0, y0, z0 := fastFloor(x), fastFloor(y), fastFloor(z)
	x1, y1, z1 := x0+1, y0+1, z0+1

	xd0, yd0, zd0 := x-float32(x0), y-float32(y0), z-float32(z0)
	xd1, yd1, zd1 := xd0-1, yd0-1, zd0-1

	xs, ys, zs := g.interp(xd0), g.interp(yd0), g.interp(zd0)

	xf00 := math.Lerp(g.gradCoord(offset, x0, y0, z0, xd0, yd0, zd0), g.gradCoord(offset, x1, y0, z0, xd1, yd0, zd0), xs)
	xf10 := math.Lerp(g.gradCoord(offset, x0, y1, z0, xd0, yd1, zd0), g.gradCoord(offset, x1, y1, z0, xd1, yd1, zd0), xs)
	xf01 := math.Lerp(g.gradCoord(offset, x0, y0, z1, xd0, yd0, zd1), g.gradCoord(offset, x1, y0, z1, xd1, yd0, zd1), xs)
	xf11 := math.Lerp(g.gradCoord(offset, x0, y1, z1, xd0, yd1, zd1), g.gradCoord(offset, x1, y1, z1, xd1, yd1, zd1), xs)

	yf0 := math.Lerp(xf00, xf10, ys)
	yf1 := math.Lerp(xf01, xf11, ys)
	return math.Lerp(yf0, yf1, zs)
}

func (g *Generator) singleSimplex(offset uint8, x, y, z float32) float32 {
	t := (x + y + z) * f3
	i, j, k := fastFloor(x+t), fastFloor(y+t), fastFloor(z+t)

	t = float32(i+j+k) * g3
	x0 := x - (float32(i) - t)
	y0 := y - (float32(j) - t)
	z0 := z - (float32(k) - t)

	var i1, j1, k1, i2, j2, k2 int32
	if x0 >= y0 {
		switch {
		case y0 >= z0:
			i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 1, 0
		case x0 >= z0:
			i1, j1, k1, i2, j2, k2 = 1, 0, 0, 1, 0, 1
		default:
			i1, j1, k1, i2, j2, k2 = 0, 0, 1, 1, 0, 1
		}
	} else {
		switch {
		case y0 < z0:
			i1, j1, k1, i2, j2, k2 = 0, 0, 1, 0, 1, 1
		case x0 < z0:
			i1, j1, k1, i2, j2, k2 = 0, 1, 0, 0, 1, 1
		default:
			i1, j1, k1, i2, j2, k2 = 0, 1, 0, 1, 1, 0
		}
	}

	x1 := x0 - float32(i1) + g3
	y1 := y0 - float32(j1) + g3
	z1 := z0 - float32(k1) + g3
	x2 := x0 - float32(i2) + 2*g3
	y2 := y0 - float32(j2) + 2*g3
	z2 := z0 - float32(k2) + 2*g3
	x3 := x0 - 1 + 3*g3
	y3 := y0 - 1 + 3*g3
	z3 := z0 - 1 + 3*g3

	corner := func(xd, yd, zd float32, ci, cj, ck int32) float32 {
		t := 0.6 - xd*xd - yd*yd - zd*zd
		if t < 0 {
			return 0
		}
		t *= t
		return t * t * g.gradCoord(offset, ci, cj, ck, xd, yd, zd)
	}

	n0 := corner(x0, y0, z0, i, j, k)
	n1 := corner(x1, y1, z1, i+i1, j+j1, k+k1)
	n2 := corner(x2, y2, z2, i+i2, j+j2, k+k2)
	n3 := corner(x3, y3, z3, i+1, j+1, k+1)

	return 32 * (n0 + n1 + n2 + n3)
}

func cubicLerp(a, b, c, d, t float32) float32 {
	p := (d - c) - (a - b)
	return t*t*t*p + t*t*((a-b)-p) + t*(c-a) + b
}

func (g *Generator) singleCubic(offset uint8, x, y, z float32) float32 {
	x1, y1, z1 := fastFloor(x), fastFloor(y), fastFloor(z)
	x0, y0, z0 := x1-1, y1-1, z1-1
	x2, y2, z2 := x1+1, y1+1, z1+1
	x3, y3, z3 := x1+2, y1+2, z1+2

	xs := x - float32(x1)
	ys := y - float32(y1)
	zs := z - float32(z1)

	row := func(yi, zi int32) float32 {
		return cubicLerp(
			g.valCoord(offset, x0, yi, zi),
			g.valCoord(offset, x1, yi, zi),
			g.valCoord(offset, x2, yi, zi),
			g.valCoord(offset, x3, yi, zi), xs)
	}
	plane := func(zi int32) float32 {
		return cubicLerp(row(y0, zi), row(y1, zi), row(y2, zi), row(y3, zi), ys)
	}

	return cubicLerp(plane(z0), plane(z1), plane(z2), plane(z3), zs) * cubic3DBounding
}

// singleCellular returns the value of the nearest jittered cell centre.
func (g *Generator) singleCellular(x, y, z float32) float32 {
	xr, yr, zr := fastFloor(x+0.5), fastFloor(y+0.5), fastFloor(z+0.5)

	distance := float32(999999)
	var xc, yc, zc int32

	for xi := xr - 1; xi <= xr+1; xi++ {
		for yi := yr - 1; yi <= yr+1; yi++ {
			for zi := zr - 1; zi <= zr+1; zi++ {
				jx := hashCoord(g.cfg.Seed, xi, yi, zi) * 0.45
				jy := hashCoord(g.cfg.Seed+1, xi, yi, zi) * 0.45
				jz := hashCoord(g.cfg.Seed+2, xi, yi, zi) * 0.45

				vx := float32(xi) - x + jx
				vy := float32(yi) - y + jy
				vz := float32(zi) - z + jz

				var d float32
				switch g.cfg.CellularDistance {
				case Manhattan:
					d = math32.Abs(vx) + math32.Abs(vy) + math32.Abs(vz)
				case Natural:
					d = (math32.Abs(vx) + math32.Abs(vy) + math32.Abs(vz)) + (vx*vx + vy*vy + vz*vz)
				default:
					d = vx*vx + vy*vy + vz*vz
				}

				if d < distance {
					distance = d
					xc, yc, zc = xi, yi, zi
				}
			}
		}
	}

	return hashCoord(g.cfg.Seed, xc, yc, zc)
}

func (g *Generator) whiteNoise(x, y, z float32) float32 {
	bits := func(f float32) int32 {
		b := int32(math32.Float32bits(f))
		return b ^ (b >> 16)
	}
	return hashCoord(g.cfg.Seed, bits(x), bits(y), bits(z))
}
