package canvas

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"
)

// Color is a non-premultiplied RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Common colors.
var (
	Transparent = Color{}
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
)

func (Color) isPaint() {}

// IsZero reports whether c is fully transparent.
func (c Color) IsZero() bool {
	return c.A == 0
}

// RGBA8 returns c as an 8-bit NRGBA color.
func (c Color) RGBA8() color.NRGBA {
	return color.NRGBA{
		R: clamp8(c.R),
		G: clamp8(c.G),
		B: clamp8(c.B),
		A: clamp8(c.A),
	}
}

// String formats c as a CSS rgba() value.
func (c Color) String() string {
	n := c.RGBA8()
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", n.R, n.G, n.B,
		strconv.FormatFloat(c.A, 'f', -1, 64))
}

// Lerp returns the component-wise interpolation between c and o.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

// GG returns c as a gg color.
func (c Color) GG() gg.RGBA {
	return gg.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromGG converts a gg color.
func FromGG(c gg.RGBA) Color {
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromColor converts a standard library color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

// ParseColor parses a CSS-style color string: "#rgb", "#rgba", "#rrggbb",
// "#rrggbbaa", "rgb(r,g,b)", "rgba(r,g,b,a)", "transparent" or a CSS color
// name. The empty string parses as transparent.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "" || s == "transparent" || s == "none":
		return Transparent, nil
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgba(") || strings.HasPrefix(s, "rgb("):
		return parseFunc(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return FromColor(c), nil
	}
	return Color{}, fmt.Errorf("canvas: unknown color %q", s)
}

// MustParseColor is like ParseColor but panics on error.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(h string) (Color, error) {
	switch len(h) {
	case 3, 4, 6, 8:
	default:
		return Color{}, fmt.Errorf("canvas: bad hex color %q", "#"+h)
	}
	if strings.Trim(h, "0123456789abcdef") != "" {
		return Color{}, fmt.Errorf("canvas: bad hex color %q", "#"+h)
	}
	return FromGG(gg.Hex(h)), nil
}

func parseFunc(s string) (Color, error) {
	open := strings.IndexByte(s, '(')
	if !strings.HasSuffix(s, ")") {
		return Color{}, fmt.Errorf("canvas: bad color %q", s)
	}
	parts := strings.Split(s[open+1:len(s)-1], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, fmt.Errorf("canvas: bad color %q", s)
	}
	var v [4]float64
	v[3] = 1
	for i, p := range parts {
		p = strings.TrimSpace(p)
		pct := strings.HasSuffix(p, "%")
		f, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
		if err != nil {
			return Color{}, fmt.Errorf("canvas: bad color %q: %w", s, err)
		}
		switch {
		case pct:
			f /= 100
		case i < 3:
			f /= 255
		}
		v[i] = f
	}
	return Color{v[0], v[1], v[2], v[3]}, nil
}

func clamp8(f float64) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 255
	}
	return uint8(f*255 + 0.5)
}
