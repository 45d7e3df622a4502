package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/iburimskiy/neonclock/internal/theme"
)

const (
	// Selector dimensions, logical pixels
	selectorWidth  = 150
	selectorHeight = 40
	selectorX      = 20
	selectorY      = 50
)

// ThemeSelector is a button that steps through the available themes.
// It implements theme.Selector.
type ThemeSelector struct {
	palettes  *theme.Palettes
	value     string
	listeners []func(string)

	hovered bool
	pressed bool
}

var _ theme.Selector = (*ThemeSelector)(nil)

func NewThemeSelector(palettes *theme.Palettes) *ThemeSelector {
	return &ThemeSelector{palettes: palettes}
}

func (s *ThemeSelector) Value() string { return s.value }

// SetValue changes the displayed value without notifying listeners.
func (s *ThemeSelector) SetValue(name string) { s.value = name }

func (s *ThemeSelector) OnChange(fn func(name string)) {
	s.listeners = append(s.listeners, fn)
}

// Cycle selects the next theme as if the user picked it and returns its name.
func (s *ThemeSelector) Cycle() string {
	s.value = s.palettes.Next(s.value)
	for _, fn := range s.listeners {
		fn(s.value)
	}
	return s.value
}

// Contains reports whether logical point (x, y) is on the button.
func (s *ThemeSelector) Contains(x, y float64) bool {
	return x >= selectorX && x <= selectorX+selectorWidth &&
		y >= selectorY && y <= selectorY+selectorHeight
}

func (s *ThemeSelector) Draw(screen *ebiten.Image, scale float64) {
	var bgColor color.Color
	if s.pressed {
		bgColor = color.RGBA{R: 60, G: 80, B: 120, A: 255} // Pressed
	} else if s.hovered {
		bgColor = color.RGBA{R: 80, G: 100, B: 140, A: 255} // Hovered
	} else {
		bgColor = color.RGBA{R: 100, G: 120, B: 160, A: 255} // Normal
	}

	x, y := float32(selectorX*scale), float32(selectorY*scale)
	w, h := float32(selectorWidth*scale), float32(selectorHeight*scale)
	vector.DrawFilledRect(screen, x, y, w, h, bgColor, false)

	border := color.RGBA{R: 150, G: 170, B: 200, A: 255}
	if accent := s.accent(); accent != "" {
		c := theme.ToRGBA(accent, 1).NRGBA()
		border = color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
	}
	vector.StrokeRect(screen, x, y, w, h, float32(2*scale), border, false)

	label := "Theme: " + s.value
	textWidth := len(label) * debugGlyphWidth
	textX := int(x) + (int(w)-textWidth)/2
	textY := int(y) + (int(h)-debugGlyphHeight)/2
	ebitenutil.DebugPrintAt(screen, label, textX, textY)
}

func (s *ThemeSelector) accent() string {
	pal, ok := s.palettes.Lookup(s.value)
	if !ok {
		return ""
	}
	return pal.Accent
}
