package canvas

import (
	"image/color"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScaledSurface(t *testing.T, size Size) *ImageSurface {
	t.Helper()
	s, ok := NewImageSurface(size).(*ImageSurface)
	require.True(t, ok)
	return s
}

func assertVertexColor(t *testing.T, want color.NRGBA, v ebiten.Vertex) {
	t.Helper()
	const eps = 1e-6
	assert.InDelta(t, float64(want.R)/0xff, float64(v.ColorR), eps)
	assert.InDelta(t, float64(want.G)/0xff, float64(v.ColorG), eps)
	assert.InDelta(t, float64(want.B)/0xff, float64(v.ColorB), eps)
	assert.InDelta(t, float64(want.A)/0xff, float64(v.ColorA), eps)
}

func TestImageSurfaceBackingSize(t *testing.T) {
	s := newScaledSurface(t, Size{Width: 100, Height: 50, Ratio: 2})
	b := s.Image().Bounds()
	assert.Equal(t, 200, b.Dx())
	assert.Equal(t, 100, b.Dy())
	assert.Equal(t, float32(2), s.scale)
}

func TestFillGradientScalesCornersAndProjectsColors(t *testing.T) {
	s := newScaledSurface(t, Size{Width: 100, Height: 50, Ratio: 2})
	from := color.NRGBA{R: 255, A: 255}
	to := color.NRGBA{B: 255, A: 55}

	s.FillGradient(100, 50, from, to)

	require.Len(t, s.vertices, 4)
	require.Equal(t, []uint16{0, 1, 2, 0, 2, 3}, s.indices)

	wantDst := [4][2]float32{{0, 0}, {200, 0}, {200, 100}, {0, 100}}
	for i, v := range s.vertices {
		assert.Equal(t, wantDst[i][0], v.DstX, "vertex %d x", i)
		assert.Equal(t, wantDst[i][1], v.DstY, "vertex %d y", i)
	}

	// t = (x*w + y*h) / (w² + h²): 0 at (0,0), 0.8 at (w,0), 1 at (w,h), 0.2 at (0,h)
	assertVertexColor(t, from, s.vertices[0])
	assertVertexColor(t, color.NRGBA{R: 51, B: 204, A: 95}, s.vertices[1])
	assertVertexColor(t, to, s.vertices[2])
	assertVertexColor(t, color.NRGBA{R: 204, B: 51, A: 215}, s.vertices[3])
}

func TestFillGradientIgnoresEmptyArea(t *testing.T) {
	s := newScaledSurface(t, Size{Width: 10, Height: 10, Ratio: 1})
	s.FillGradient(0, 10, color.NRGBA{}, color.NRGBA{})
	assert.Empty(t, s.vertices)
}

func TestStrokeLineScalesToDevicePixels(t *testing.T) {
	s := newScaledSurface(t, Size{Width: 100, Height: 50, Ratio: 2})
	clr := color.NRGBA{G: 255, A: 89}

	s.StrokeLine(10, 0, 10, 50, 1, clr, ebiten.BlendLighter)

	require.NotEmpty(t, s.vertices)
	minX, maxX := float32(math.MaxFloat32), float32(-math.MaxFloat32)
	minY, maxY := float32(math.MaxFloat32), float32(-math.MaxFloat32)
	for _, v := range s.vertices {
		minX, maxX = min(minX, v.DstX), max(maxX, v.DstX)
		minY, maxY = min(minY, v.DstY), max(maxY, v.DstY)
		assertVertexColor(t, clr, v)
	}
	// logical x=10, width 1 becomes device x=20, width 2
	assert.InDelta(t, 19, minX, 1e-3)
	assert.InDelta(t, 21, maxX, 1e-3)
	assert.InDelta(t, 0, minY, 1e-3)
	assert.InDelta(t, 100, maxY, 1e-3)
}

func TestFillCircleScalesToDevicePixels(t *testing.T) {
	s := newScaledSurface(t, Size{Width: 100, Height: 50, Ratio: 2})

	s.FillCircle(50, 25, 8, pulseColor.NRGBA(), ebiten.BlendLighter)

	require.NotEmpty(t, s.vertices)
	var farthest float64
	for _, v := range s.vertices {
		d := math.Hypot(float64(v.DstX-100), float64(v.DstY-50))
		farthest = math.Max(farthest, d)
	}
	assert.InDelta(t, 16, farthest, 0.5)
}

func TestLerpEndpoints(t *testing.T) {
	a := color.NRGBA{R: 10, G: 20, B: 30, A: 40}
	b := color.NRGBA{R: 250, G: 200, B: 150, A: 100}
	assert.Equal(t, a, lerp(a, b, 0))
	assert.Equal(t, b, lerp(a, b, 1))
	assert.Equal(t, color.NRGBA{R: 130, G: 110, B: 90, A: 70}, lerp(a, b, 0.5))
}
