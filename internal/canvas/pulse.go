package canvas

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/iburimskiy/neonclock/internal/theme"
)

const (
	pulseMinRadius = 8
	pulseMaxRadius = 36
	pulseStep      = 7
)

var pulseColor = theme.Color{R: 0, G: 255, B: 170, A: 0.35}

// Pulse draws concentric translucent circles of radius 8, 15, 22, 29 and 36
// around (x, y) with additive blending. Nothing is retained; the next
// frame paints over it.
func Pulse(s Surface, x, y float64) {
	clr := pulseColor.NRGBA()
	for r := pulseMinRadius; r <= pulseMaxRadius; r += pulseStep {
		s.FillCircle(float32(x), float32(y), float32(r), clr, ebiten.BlendLighter)
	}
}
