// Package game hosts the clock window: it drives the background animator,
// the theme selector and the clock labels from ebiten's game loop.
package game

import (
	"context"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/iburimskiy/neonclock/internal/audio"
	"github.com/iburimskiy/neonclock/internal/canvas"
	"github.com/iburimskiy/neonclock/internal/clock"
	"github.com/iburimskiy/neonclock/internal/config"
	"github.com/iburimskiy/neonclock/internal/theme"
	"github.com/rs/zerolog"
)

const (
	debugGlyphWidth  = 6
	debugGlyphHeight = 16

	timeScale = 8
	dateScale = 2
)

// Game implements ebiten.Game.
type Game struct {
	ctx    context.Context
	cfg    *config.Config
	logger zerolog.Logger

	themes   *theme.Store
	sounds   *audio.Manager
	animator *canvas.Animator
	selector *ThemeSelector

	timeLabel clock.Label
	dateLabel clock.Label
	textImage *ebiten.Image

	deviceScale func() float64
	selectFile  FileDialog
	newSurface  canvas.SurfaceFactory
	scale       float64

	// input edge detection
	prevKey map[ebiten.Key]bool

	lastErr error
}

type Option func(*Game)

// WithDeviceScale overrides the monitor's device scale factor lookup.
func WithDeviceScale(fn func() float64) Option {
	return func(g *Game) { g.deviceScale = fn }
}

func WithFileDialog(fn FileDialog) Option {
	return func(g *Game) { g.selectFile = fn }
}

func WithSurfaceFactory(fn canvas.SurfaceFactory) Option {
	return func(g *Game) { g.newSurface = fn }
}

func New(ctx context.Context, cfg *config.Config, themes *theme.Store, sounds *audio.Manager, logger zerolog.Logger, opts ...Option) *Game {
	g := &Game{
		ctx:         ctx,
		cfg:         cfg,
		logger:      logger,
		themes:      themes,
		sounds:      sounds,
		selector:    NewThemeSelector(themes.Palettes()),
		deviceScale: func() float64 { return ebiten.Monitor().DeviceScaleFactor() },
		selectFile:  selectSoundFile,
		newSurface:  canvas.NewImageSurface,
		scale:       1,
		prevKey:     map[ebiten.Key]bool{},
	}
	for _, opt := range opts {
		opt(g)
	}
	g.animator = canvas.NewAnimator(themes, g.newSurface, logger)
	return g
}

// Selector is the control to hand to theme.Store.Init.
func (g *Game) Selector() *ThemeSelector { return g.selector }

// Repaint redraws the background right away, e.g. after a theme change.
func (g *Game) Repaint() { g.animator.Repaint() }

func (g *Game) TimeLabel() *clock.Label { return &g.timeLabel }
func (g *Game) DateLabel() *clock.Label { return &g.dateLabel }

func (g *Game) Animator() *canvas.Animator { return g.animator }

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	mouseX, mouseY := ebiten.CursorPosition()
	x, y := float64(mouseX)/g.scale, float64(mouseY)/g.scale
	g.selector.hovered = g.selector.Contains(x, y)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if g.selector.hovered {
			g.selector.pressed = true
		} else {
			g.click(x, y)
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.selector.pressed && g.selector.hovered {
			g.selector.Cycle()
		}
		g.selector.pressed = false
	}

	if justPressed(ebiten.KeyT) {
		g.selector.Cycle()
	}
	if justPressed(ebiten.KeyO) {
		if err := g.loadClickSound(); err != nil {
			g.lastErr = err
			g.logger.Error().Err(err).Msg("cannot load click sound")
		}
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	return nil
}

// click gives visual and audible feedback at logical (x, y).
func (g *Game) click(x, y float64) {
	g.animator.Pulse(x, y)
	if name := g.cfg.Audio.ClickSound; name != "" {
		g.sounds.Play(name, audio.Options{
			Volume:       g.cfg.Audio.ClickVolume,
			PlaybackRate: g.cfg.Audio.ClickRate,
		})
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	// show what was painted last (plus any pulses from Update), then
	// prepare the next frame
	if surface, ok := g.animator.Surface().(*canvas.ImageSurface); ok && !g.animator.Size().Empty() {
		screen.DrawImage(surface.Image(), nil)
	}
	g.animator.Frame()

	g.drawClock(screen)
	g.selector.Draw(screen, g.scale)

	status := "T: next theme | O: load click sound | Esc/Q: quit"
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, int(12*g.scale), int(12*g.scale))
}

func (g *Game) drawClock(screen *ebiten.Image) {
	fg := theme.ToRGBA(g.themes.Palette().Foreground, 1)
	if g.themes.Palette().Foreground == "" {
		fg = theme.Color{R: 255, G: 255, B: 255, A: 1}
	}

	size := g.animator.Size()
	cx := size.Width * g.scale / 2
	cy := size.Height * g.scale / 2

	g.drawScaledText(screen, g.timeLabel.Text(), cx, cy-debugGlyphHeight*timeScale*g.scale/2, timeScale*g.scale, fg.NRGBA())
	g.drawScaledText(screen, g.dateLabel.Text(), cx, cy+debugGlyphHeight*timeScale*g.scale/2+8*g.scale, dateScale*g.scale, fg.NRGBA())
}

// drawScaledText renders text with the debug font and blows it up with
// nearest-neighbor filtering, centered horizontally on cx.
func (g *Game) drawScaledText(screen *ebiten.Image, text string, cx, top, scale float64, clr color.NRGBA) {
	if text == "" {
		return
	}
	w := len(text) * debugGlyphWidth
	if g.textImage == nil || g.textImage.Bounds().Dx() < w {
		g.textImage = ebiten.NewImage(max(w, 256), debugGlyphHeight)
	}
	g.textImage.Clear()
	ebitenutil.DebugPrint(g.textImage, text)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx-float64(w)*scale/2, top)
	op.ColorScale.ScaleWithColor(clr)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(g.textImage.SubImage(image.Rect(0, 0, w, debugGlyphHeight)).(*ebiten.Image), op)
}

// Layout maps the window's layout box onto the backing buffer: the screen
// is device pixels, the animator keeps painting in logical pixels.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scale = g.deviceScale()
	if g.scale <= 0 {
		g.scale = 1
	}
	size := canvas.Size{Width: float64(outsideWidth), Height: float64(outsideHeight), Ratio: g.scale}
	g.animator.Resize(size)

	w, h := size.Pixels()
	return max(w, 1), max(h, 1)
}
