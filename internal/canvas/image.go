package canvas

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image
)

// white returns a 1x1 opaque white source for DrawTriangles.
func white() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

// ImageSurface draws into an offscreen ebiten image sized in device pixels.
// Coordinates passed to it are logical and get multiplied by the ratio.
type ImageSurface struct {
	img   *ebiten.Image
	scale float32

	vertices []ebiten.Vertex
	indices  []uint16
}

// NewImageSurface allocates the backing image for size. It is a SurfaceFactory.
func NewImageSurface(size Size) Surface {
	w, h := size.Pixels()
	return &ImageSurface{
		img:   ebiten.NewImage(max(w, 1), max(h, 1)),
		scale: float32(size.Scale()),
	}
}

// Image exposes the backing buffer for compositing onto the screen.
func (s *ImageSurface) Image() *ebiten.Image { return s.img }

func (s *ImageSurface) Clear() { s.img.Clear() }

func (s *ImageSurface) FillGradient(w, h float32, from, to color.NRGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	// the gradient parameter is linear in x and y, so per-vertex colors
	// interpolated across the two triangles reproduce it exactly
	diag := w*w + h*h
	corners := [4][2]float32{{0, 0}, {w, 0}, {w, h}, {0, h}}
	s.vertices = s.vertices[:0]
	for _, c := range corners {
		t := (c[0]*w + c[1]*h) / diag
		s.vertices = append(s.vertices, ebiten.Vertex{
			DstX: c[0] * s.scale,
			DstY: c[1] * s.scale,
			SrcX: 1,
			SrcY: 1,
		})
		setColor(&s.vertices[len(s.vertices)-1], lerp(from, to, t))
	}
	s.indices = append(s.indices[:0], 0, 1, 2, 0, 2, 3)
	s.img.DrawTriangles(s.vertices, s.indices, white(), &ebiten.DrawTrianglesOptions{})
}

func (s *ImageSurface) StrokeLine(x0, y0, x1, y1, width float32, clr color.NRGBA, blend ebiten.Blend) {
	var path vector.Path
	path.MoveTo(x0*s.scale, y0*s.scale)
	path.LineTo(x1*s.scale, y1*s.scale)
	s.vertices, s.indices = path.AppendVerticesAndIndicesForStroke(s.vertices[:0], s.indices[:0], &vector.StrokeOptions{
		Width: width * s.scale,
	})
	s.draw(clr, blend)
}

func (s *ImageSurface) FillCircle(cx, cy, r float32, clr color.NRGBA, blend ebiten.Blend) {
	var path vector.Path
	path.Arc(cx*s.scale, cy*s.scale, r*s.scale, 0, 2*math.Pi, vector.Clockwise)
	path.Close()
	s.vertices, s.indices = path.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])
	s.draw(clr, blend)
}

func (s *ImageSurface) draw(clr color.NRGBA, blend ebiten.Blend) {
	for i := range s.vertices {
		s.vertices[i].SrcX = 1
		s.vertices[i].SrcY = 1
		setColor(&s.vertices[i], clr)
	}
	s.img.DrawTriangles(s.vertices, s.indices, white(), &ebiten.DrawTrianglesOptions{
		Blend:     blend,
		AntiAlias: true,
	})
}

func setColor(v *ebiten.Vertex, c color.NRGBA) {
	v.ColorR = float32(c.R) / 0xff
	v.ColorG = float32(c.G) / 0xff
	v.ColorB = float32(c.B) / 0xff
	v.ColorA = float32(c.A) / 0xff
}

func lerp(a, b color.NRGBA, t float32) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(float32(x) + (float32(y)-float32(x))*t)))
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
