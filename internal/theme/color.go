package theme

import (
	"fmt"
	"image/color"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a CSS-style rgba color with straight (non-premultiplied) alpha.
type Color struct {
	R, G, B uint8
	A       float64
}

// Fallback is the neon green used when a color string cannot be parsed.
var Fallback = Color{R: 0, G: 255, B: 170, A: 1}

var (
	hexPattern = regexp.MustCompile(`(?i)^#([0-9a-f]{3}|[0-9a-f]{6})$`)
	rgbPattern = regexp.MustCompile(`(?i)^rgba?\(\s*(\d*\.?\d+%?)\s*,\s*(\d*\.?\d+%?)\s*,\s*(\d*\.?\d+%?)\s*(?:,\s*(\d*\.?\d+)\s*)?\)$`)
)

// ToRGBA converts a "#rgb", "#rrggbb", "rgb(...)" or "rgba(...)" string into
// a Color with the given alpha. An rgba(...) input keeps its own alpha.
// Anything else yields Fallback with the given alpha.
func ToRGBA(s string, alpha float64) Color {
	if m := rgbPattern.FindStringSubmatch(s); m != nil {
		c := Color{R: channel(m[1]), G: channel(m[2]), B: channel(m[3]), A: alpha}
		if m[4] != "" {
			if a, err := strconv.ParseFloat(m[4], 64); err == nil {
				c.A = a
			}
		}
		return c
	}

	if hexPattern.MatchString(s) {
		if hc, err := colorful.Hex(s); err == nil {
			r, g, b := hc.RGB255()
			return Color{R: r, G: g, B: b, A: alpha}
		}
	}

	c := Fallback
	c.A = alpha
	return c
}

// channel parses one rgb() component: a number in 0..255 or a percentage,
// rounded to the nearest integer and clamped.
func channel(s string) uint8 {
	pct := strings.HasSuffix(s, "%")
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return 0
	}
	if pct {
		v = v * 255 / 100
	}
	return uint8(math.Round(min(v, 255)))
}

// String renders the color as "rgba(r, g, b, a)".
func (c Color) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'f', -1, 64))
}

// Hex renders the opaque part of the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(clamp01(c.A) * 255))}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
