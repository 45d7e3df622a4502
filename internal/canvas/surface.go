// Package canvas paints the animated, theme-colored background and the
// click pulses onto a resizable drawing surface.
package canvas

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Size is the layout box of a surface in logical pixels plus the device
// pixel ratio used for its backing buffer.
type Size struct {
	Width  float64
	Height float64
	Ratio  float64
}

// Empty reports whether the layout box has no area.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Scale returns the device pixel ratio, treating unset values as 1.
func (s Size) Scale() float64 {
	if s.Ratio <= 0 {
		return 1
	}
	return s.Ratio
}

// Pixels returns the backing buffer dimensions, layout size × ratio.
func (s Size) Pixels() (int, int) {
	r := s.Scale()
	return int(math.Round(s.Width * r)), int(math.Round(s.Height * r))
}

// Surface is a 2D drawing target addressed in logical pixels.
type Surface interface {
	Clear()
	// FillGradient fills (0,0)-(w,h) with a linear gradient running from
	// the top-left corner to the bottom-right corner.
	FillGradient(w, h float32, from, to color.NRGBA)
	StrokeLine(x0, y0, x1, y1, width float32, clr color.NRGBA, blend ebiten.Blend)
	FillCircle(cx, cy, r float32, clr color.NRGBA, blend ebiten.Blend)
}

// SurfaceFactory allocates a surface whose backing buffer matches size.
type SurfaceFactory func(size Size) Surface
