package canvas

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/iburimskiy/neonclock/internal/theme"
	"github.com/rs/zerolog"
)

const (
	// PhaseStep is how far the drift phase advances per scheduled frame.
	PhaseStep = 0.02

	GridStep  = 40
	GridDrift = 12
	GridWidth = 1

	gradientAlpha = 0.45
	gridAlpha     = 0.35

	gradientFallback = "#7c5cff"
	gridFallback     = "#00ffaa"
)

// secondaryStop is the fixed green end of the background gradient.
var secondaryStop = theme.Color{R: 34, G: 197, B: 94, A: gradientAlpha}

// AccentSource supplies the active theme's accent color, "" when unset.
type AccentSource interface {
	Accent() string
}

// Animator owns the background redraw loop. All methods must be called from
// the game goroutine.
type Animator struct {
	accent     AccentSource
	newSurface SurfaceFactory
	logger     zerolog.Logger

	surface Surface
	size    Size
	pixelW  int
	pixelH  int
	ratio   float64

	phase   float64
	painted uint64
	skipped uint64
}

func NewAnimator(accent AccentSource, newSurface SurfaceFactory, logger zerolog.Logger) *Animator {
	return &Animator{
		accent:     accent,
		newSurface: newSurface,
		logger:     logger,
	}
}

// Resize records a new layout box. The backing buffer is reallocated when
// its pixel dimensions change; an empty box keeps the old buffer around.
// It reports whether the size changed.
func (a *Animator) Resize(size Size) bool {
	if size == a.size {
		return false
	}
	a.size = size
	if size.Empty() {
		return true
	}

	w, h := size.Pixels()
	if a.surface == nil || w != a.pixelW || h != a.pixelH || size.Scale() != a.ratio {
		a.surface = a.newSurface(size)
		a.pixelW, a.pixelH, a.ratio = w, h, size.Scale()
		a.logger.Debug().
			Float64("width", size.Width).
			Float64("height", size.Height).
			Float64("ratio", size.Scale()).
			Int("pixel_width", w).
			Int("pixel_height", h).
			Msg("surface resized")
	}
	return true
}

// Frame is the scheduled per-frame callback: it paints and advances the
// phase. A zero-area layout skips the frame and returns false.
func (a *Animator) Frame() bool {
	if !a.paint() {
		a.skipped++
		return false
	}
	a.phase += PhaseStep
	return true
}

// Repaint paints one extra frame now, at the current phase, with the
// current theme colors.
func (a *Animator) Repaint() bool {
	return a.paint()
}

func (a *Animator) paint() bool {
	if a.size.Empty() || a.surface == nil {
		return false
	}
	s := a.surface
	w, h := a.size.Width, a.size.Height

	s.Clear()

	from := theme.ToRGBA(a.accentOr(gradientFallback), gradientAlpha)
	s.FillGradient(float32(w), float32(h), from.NRGBA(), secondaryStop.NRGBA())

	grid := theme.ToRGBA(a.accentOr(gridFallback), gridAlpha).NRGBA()
	offset := GridOffset(a.phase)
	for x := offset; x < w; x += GridStep {
		s.StrokeLine(float32(x), 0, float32(x), float32(h), GridWidth, grid, ebiten.BlendLighter)
	}
	for y := offset; y < h; y += GridStep {
		s.StrokeLine(0, float32(y), float32(w), float32(y), GridWidth, grid, ebiten.BlendLighter)
	}

	a.painted++
	return true
}

func (a *Animator) accentOr(fallback string) string {
	if a.accent == nil {
		return fallback
	}
	if c := a.accent.Accent(); c != "" {
		return c
	}
	return fallback
}

// GridOffset returns the drift of the grid lines for phase. The result keeps
// the sign of sin(phase), so lines may start slightly left of or above zero.
func GridOffset(phase float64) float64 {
	return math.Mod(math.Sin(phase)*GridDrift, GridStep)
}

// Pulse draws click feedback at logical (x, y) on the current surface.
func (a *Animator) Pulse(x, y float64) bool {
	if a.size.Empty() || a.surface == nil {
		return false
	}
	Pulse(a.surface, x, y)
	return true
}

func (a *Animator) Surface() Surface { return a.surface }
func (a *Animator) Size() Size { return a.size }
func (a *Animator) Phase() float64 { return a.phase }

// Painted counts completed paints, scheduled and manual.
func (a *Animator) Painted() uint64 { return a.painted }

// Skipped counts scheduled frames dropped because of a zero-area layout.
func (a *Animator) Skipped() uint64 { return a.skipped }
