package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/sculpt/engine/core"
	"github.com/spaghettifunk/sculpt/engine/math"
	"github.com/spaghettifunk/sculpt/engine/noise"
	"github.com/spaghettifunk/sculpt/engine/spline"
)

func TestFalloff(t *testing.T) {
	assert.Equal(t, float32(1), falloff(0.5, 1, 3))
	assert.Equal(t, float32(0.5), falloff(2, 1, 3))
	assert.Equal(t, float32(0), falloff(4, 1, 3))
	assert.Equal(t, float32(1), falloff(1, 1, 1))
	assert.Equal(t, float32(0), falloff(1.5, 1, 1))
}

func TestSelectAll(t *testing.T) {
	m := loaded(t)
	s := m.SelectAll()
	require.Equal(t, 8, s.Len())
	for _, w := range s.Weights {
		assert.Equal(t, float32(1), w)
	}
}

func TestSelectNear(t *testing.T) {
	m := loaded(t)
	s := m.SelectNear(math.NewVec3Zero(), 0, 2)
	require.Equal(t, 8, s.Len())
	assert.InDelta(t, 1, s.Weights[0], 1e-6)
	assert.InDelta(t, 0.5, s.Weights[1], 1e-6)
	assert.InDelta(t, 0, s.Weights[4], 1e-6)
}

func TestSelectNearLine(t *testing.T) {
	m := loaded(t)
	start, end := math.NewVec3(0, 0, 0), math.NewVec3(1, 0, 0)

	segment := m.SelectNearLine(start, end, 0, 1, false)
	assert.InDelta(t, 1, segment.Weights[1], 1e-6)
	assert.InDelta(t, 0, segment.Weights[2], 1e-6)
	// (2,0,1) is sqrt(2) from the segment end
	assert.InDelta(t, 0, segment.Weights[4], 1e-6)

	infinite := m.SelectNearLine(start, end, 0, 2, true)
	// (2,0,1) is 1 from the infinite line
	assert.InDelta(t, 0.5, infinite.Weights[4], 1e-6)
}

func TestSelectNearSpline(t *testing.T) {
	m := loaded(t)
	s := spline.New([]math.Vec3{math.NewVec3(0, 0, 0), math.NewVec3(10, 0, 0)}, false)

	set, err := m.SelectNearSpline(s, nil, 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1, set.Weights[0], 1e-3)
	assert.InDelta(t, 0, set.Weights[3], 1e-3)

	// move the mesh one unit along Y into spline space
	set, err = m.SelectNearSpline(s, math.TransformFromPosition(math.NewVec3(0, -1, 0)), 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1, set.Weights[3], 1e-3)

	_, err = m.SelectNearSpline(nil, nil, 0, 1)
	assert.ErrorIs(t, err, core.ErrNoSpline)
}

func TestSelectFacing(t *testing.T) {
	m := loaded(t)
	m.Sections[1].Normals[0] = math.NewVec3(1, 0, 0)
	m.Sections[1].Normals[1] = math.NewVec3(0, 0, -1)
	m.Sections[1].Normals[2] = math.NewVec3Zero()

	s, err := m.SelectFacing(math.NewVec3(0, 0, 3), 0, 90)
	require.NoError(t, err)
	assert.InDelta(t, 1, s.Weights[0], 1e-4)
	assert.InDelta(t, 0, s.Weights[4], 1e-4)
	assert.InDelta(t, 0, s.Weights[5], 1e-4)
	assert.Equal(t, float32(0), s.Weights[6], "zero normal")

	half, err := m.SelectFacing(math.NewVec3(0, 0, 1), 0, 180)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, half.Weights[4], 1e-4)

	_, err = m.SelectFacing(math.NewVec3Zero(), 0, 30)
	assert.ErrorIs(t, err, core.ErrZeroVector)
}

func TestSelectByNoise(t *testing.T) {
	m := loaded(t)
	cfg := noise.DefaultConfig()
	cfg.Frequency = 0.3

	a := m.SelectByNoise(cfg)
	b := m.SelectByNoise(cfg)
	require.Equal(t, 8, a.Len())
	assert.Equal(t, a.Weights, b.Weights)

	g := noise.New(cfg)
	assert.Equal(t, g.GetNoise(3, 1, 1), a.Weights[6])
}

func TestSelectByTexture(t *testing.T) {
	m := loaded(t)
	tex := &fakeTexture{
		width:  2,
		height: 2,
		texels: []math.Vec4{
			{X: 0.1, Y: 0.2, Z: 0.3, W: 0.4}, {X: 1, Y: 0, Z: 0, W: 1},
			{X: 0, Y: 1, Z: 0, W: 1}, {X: 0, Y: 0, Z: 1, W: 0.5},
		},
	}

	red, err := m.SelectByTexture(tex, ChannelRed)
	require.NoError(t, err)
	assert.Equal(t, float32(0.1), red.Weights[0])
	// uv (1,0) rounds to x=2 and clamps to the last column
	assert.Equal(t, float32(1), red.Weights[1])

	alpha, err := m.SelectByTexture(tex, ChannelAlpha)
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), alpha.Weights[2])

	green, err := m.SelectByTexture(tex, ChannelGreen)
	require.NoError(t, err)
	assert.Equal(t, float32(1), green.Weights[3])

	_, err = m.SelectByTexture(nil, ChannelRed)
	assert.ErrorIs(t, err, core.ErrNoTexture)
	_, err = m.SelectByTexture(&fakeTexture{}, ChannelRed)
	assert.ErrorIs(t, err, core.ErrNoTexture)
}

func TestSelectByVertexColor(t *testing.T) {
	m := loaded(t)
	m.Sections[0].VertexColors[2] = math.NewVec4(0.25, 0.5, 0.75, 1)

	s := m.SelectByVertexColor(ChannelBlue)
	assert.Equal(t, float32(0.75), s.Weights[2])
	assert.Equal(t, float32(1), s.Weights[0])
}

func TestSelectLinear(t *testing.T) {
	m := loaded(t)
	start, end := math.NewVec3(0, 0, 0), math.NewVec3(2, 0, 0)

	s, err := m.SelectLinear(start, end, false, false)
	require.NoError(t, err)
	assert.InDelta(t, 0, s.Weights[0], 1e-6)
	assert.InDelta(t, 0.5, s.Weights[1], 1e-6)
	assert.InDelta(t, 1, s.Weights[4], 1e-6)
	assert.InDelta(t, 1, s.Weights[5], 1e-6, "past the end")

	limited, err := m.SelectLinear(start, end, false, true)
	require.NoError(t, err)
	assert.InDelta(t, 0, limited.Weights[5], 1e-6)

	reversed, err := m.SelectLinear(start, end, true, false)
	require.NoError(t, err)
	assert.InDelta(t, 1, reversed.Weights[0], 1e-6)
	assert.InDelta(t, 0.5, reversed.Weights[1], 1e-6)

	_, err = m.SelectLinear(start, math.NewVec3(0.05, 0, 0), false, false)
	assert.ErrorIs(t, err, core.ErrLineTooShort)
}

func TestTextureChannelText(t *testing.T) {
	var c TextureChannel
	require.NoError(t, c.UnmarshalText([]byte("G")))
	assert.Equal(t, ChannelGreen, c)
	assert.Error(t, c.UnmarshalText([]byte("purple")))
}
