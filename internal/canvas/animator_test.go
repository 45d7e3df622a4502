package canvas

import (
	"image/color"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type line struct {
	x0, y0, x1, y1 float32
	clr            color.NRGBA
	blend          ebiten.Blend
}

type circle struct {
	cx, cy, r float32
	clr       color.NRGBA
	blend     ebiten.Blend
}

type gradient struct {
	w, h     float32
	from, to color.NRGBA
}

// recorder is a Surface that remembers what was drawn since the last Clear.
type recorder struct {
	size      Size
	clears    int
	gradients []gradient
	lines     []line
	circles   []circle
}

func (r *recorder) Clear() {
	r.clears++
	r.gradients, r.lines, r.circles = nil, nil, nil
}

func (r *recorder) FillGradient(w, h float32, from, to color.NRGBA) {
	r.gradients = append(r.gradients, gradient{w, h, from, to})
}

func (r *recorder) StrokeLine(x0, y0, x1, y1, _ float32, clr color.NRGBA, blend ebiten.Blend) {
	r.lines = append(r.lines, line{x0, y0, x1, y1, clr, blend})
}

func (r *recorder) FillCircle(cx, cy, rad float32, clr color.NRGBA, blend ebiten.Blend) {
	r.circles = append(r.circles, circle{cx, cy, rad, clr, blend})
}

type staticAccent string

func (s staticAccent) Accent() string { return string(s) }

type harness struct {
	animator  *Animator
	allocated []*recorder
}

func newHarness(accent AccentSource) *harness {
	h := &harness{}
	h.animator = NewAnimator(accent, func(size Size) Surface {
		r := &recorder{size: size}
		h.allocated = append(h.allocated, r)
		return r
	}, zerolog.Nop())
	return h
}

func (h *harness) current() *recorder {
	return h.allocated[len(h.allocated)-1]
}

func TestSizePixelsUsesRatio(t *testing.T) {
	w, h := Size{Width: 300.4, Height: 150, Ratio: 2}.Pixels()
	assert.Equal(t, 601, w)
	assert.Equal(t, 300, h)

	w, h = Size{Width: 10, Height: 20}.Pixels()
	assert.Equal(t, 10, w)
	assert.Equal(t, 20, h)

	assert.True(t, Size{Width: 0, Height: 10}.Empty())
	assert.True(t, Size{Width: 10, Height: 0}.Empty())
	assert.False(t, Size{Width: 1, Height: 1}.Empty())
}

func TestFramePaintsGradientAndGrid(t *testing.T) {
	h := newHarness(staticAccent("#fff"))
	h.animator.Resize(Size{Width: 100, Height: 80, Ratio: 1})

	require.True(t, h.animator.Frame())
	rec := h.current()

	assert.Equal(t, 1, rec.clears)
	require.Len(t, rec.gradients, 1)
	g := rec.gradients[0]
	assert.Equal(t, float32(100), g.w)
	assert.Equal(t, float32(80), g.h)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 115}, g.from)
	assert.Equal(t, color.NRGBA{R: 34, G: 197, B: 94, A: 115}, g.to)

	// phase 0: offset 0, vertical lines at 0, 40, 80 and horizontal at 0, 40
	require.Len(t, rec.lines, 5)
	for _, l := range rec.lines {
		assert.Equal(t, ebiten.BlendLighter, l.blend)
		assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 89}, l.clr)
	}
	assert.Equal(t, line{0, 0, 0, 80, rec.lines[0].clr, ebiten.BlendLighter}, rec.lines[0])
	assert.Equal(t, float32(80), rec.lines[2].x0)
	assert.Equal(t, line{0, 40, 100, 40, rec.lines[4].clr, ebiten.BlendLighter}, rec.lines[4])

	assert.InDelta(t, PhaseStep, h.animator.Phase(), 1e-12)
	assert.Equal(t, uint64(1), h.animator.Painted())
}

func TestFrameFallsBackWithoutAccent(t *testing.T) {
	h := newHarness(staticAccent(""))
	h.animator.Resize(Size{Width: 10, Height: 10})
	require.True(t, h.animator.Frame())

	rec := h.current()
	assert.Equal(t, color.NRGBA{R: 0x7c, G: 0x5c, B: 0xff, A: 115}, rec.gradients[0].from)
	assert.Equal(t, color.NRGBA{R: 0, G: 255, B: 170, A: 89}, rec.lines[0].clr)
}

func TestGridDriftsWithPhase(t *testing.T) {
	h := newHarness(nil)
	h.animator.Resize(Size{Width: 100, Height: 100})

	for i := 0; i < 50; i++ {
		require.True(t, h.animator.Frame())
	}
	// the last paint happened at phase 49*step
	want := math.Sin(49*PhaseStep) * GridDrift
	assert.InDelta(t, want, float64(h.current().lines[0].x0), 1e-4)
	assert.InDelta(t, 50*PhaseStep, h.animator.Phase(), 1e-9)
}

func TestGridOffsetStaysWithinStep(t *testing.T) {
	for phase := 0.0; phase < 20; phase += 0.37 {
		off := GridOffset(phase)
		assert.Less(t, math.Abs(off), float64(GridStep))
		assert.LessOrEqual(t, math.Abs(off), float64(GridDrift)+1e-9)
	}
}

func TestResizeReallocatesOnPixelChange(t *testing.T) {
	h := newHarness(nil)

	assert.True(t, h.animator.Resize(Size{Width: 100, Height: 50, Ratio: 1}))
	assert.False(t, h.animator.Resize(Size{Width: 100, Height: 50, Ratio: 1}))
	require.Len(t, h.allocated, 1)

	assert.True(t, h.animator.Resize(Size{Width: 100, Height: 50, Ratio: 2}))
	require.Len(t, h.allocated, 2)
	assert.Equal(t, 2.0, h.current().size.Scale())

	w, hh := h.current().size.Pixels()
	assert.Equal(t, 200, w)
	assert.Equal(t, 100, hh)
}

func TestZeroAreaSkipsFrameThenResumes(t *testing.T) {
	h := newHarness(nil)
	h.animator.Resize(Size{Width: 50, Height: 50})
	require.True(t, h.animator.Frame())
	phase := h.animator.Phase()

	h.animator.Resize(Size{Width: 0, Height: 50})
	assert.NotPanics(t, func() {
		assert.False(t, h.animator.Frame())
	})
	assert.Equal(t, uint64(1), h.animator.Skipped())
	assert.Equal(t, uint64(1), h.animator.Painted())
	assert.Equal(t, phase, h.animator.Phase())

	h.animator.Resize(Size{Width: 50, Height: 50})
	assert.True(t, h.animator.Frame())
	assert.Equal(t, uint64(2), h.animator.Painted())
	require.Len(t, h.allocated, 1, "same pixel size reuses the surface")
}

func TestFrameBeforeResizeIsSkipped(t *testing.T) {
	h := newHarness(nil)
	assert.False(t, h.animator.Frame())
	assert.False(t, h.animator.Repaint())
	assert.False(t, h.animator.Pulse(1, 1))
	assert.Empty(t, h.allocated)
}

func TestRepaintTwiceProducesTwoPaints(t *testing.T) {
	accent := &switchingAccent{value: "#ff0000"}
	h := newHarness(accent)
	h.animator.Resize(Size{Width: 40, Height: 40})
	require.True(t, h.animator.Frame())
	phase := h.animator.Phase()

	accent.value = "#0000ff"
	assert.True(t, h.animator.Repaint())
	assert.True(t, h.animator.Repaint())

	assert.Equal(t, uint64(3), h.animator.Painted())
	assert.Equal(t, 3, h.current().clears)
	assert.Equal(t, phase, h.animator.Phase(), "manual repaint does not advance the phase")
	assert.Equal(t, color.NRGBA{B: 255, A: 115}, h.current().gradients[0].from)
}

type switchingAccent struct{ value string }

func (s *switchingAccent) Accent() string { return s.value }

func TestPulseDrawsFiveCircles(t *testing.T) {
	rec := &recorder{}
	Pulse(rec, 12.5, 30)

	require.Len(t, rec.circles, 5)
	radii := make([]float32, 0, 5)
	for _, c := range rec.circles {
		radii = append(radii, c.r)
		assert.Equal(t, float32(12.5), c.cx)
		assert.Equal(t, float32(30), c.cy)
		assert.Equal(t, ebiten.BlendLighter, c.blend)
		assert.Equal(t, color.NRGBA{R: 0, G: 255, B: 170, A: 89}, c.clr)
	}
	assert.Equal(t, []float32{8, 15, 22, 29, 36}, radii)
}

func TestAnimatorPulseUsesCurrentSurface(t *testing.T) {
	h := newHarness(nil)
	h.animator.Resize(Size{Width: 100, Height: 100})
	require.True(t, h.animator.Frame())

	assert.True(t, h.animator.Pulse(10, 10))
	assert.Len(t, h.current().circles, 5)

	// the next frame wipes it
	require.True(t, h.animator.Frame())
	assert.Empty(t, h.current().circles)
}
