// Package canvas defines the drawing surface the scene graph paints onto,
// together with the paths, colors and gradients it paints with.
//
// A Context is a stateful 2D drawing API in the style of the HTML canvas:
// Save and Restore bracket changes to the transform and styles, paths are
// built separately and then filled or stroked. Backends live in the
// ggcanvas and ebitencanvas sub-packages; Recorder captures operations
// without rasterizing.
package canvas

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/phanxgames/canopy/geom"
)

// Context is a 2D drawing surface.
type Context interface {
	// Save pushes the transform, styles, line width and font.
	Save()
	// Restore pops the state pushed by the matching Save.
	Restore()
	Translate(x, y float64)
	// Transform post-multiplies the current transform by m.
	Transform(m geom.Matrix)
	SetLineWidth(w float64)
	SetStrokeStyle(p Paint)
	SetFillStyle(p Paint)
	Stroke(p *Path) error
	Fill(p *Path) error
	// SetFont selects a CSS-style font such as "16px Arial".
	SetFont(font string)
	// FillText draws s with its left edge at x and its vertical middle at y.
	FillText(s string, x, y float64) error
	StrokeText(s string, x, y float64) error
	// MeasureText returns the advance width of s in the given font.
	MeasureText(font, s string) (float64, error)
}

// DefaultFont is used when a font string cannot be parsed.
const DefaultFont = "16px Arial"

// Font is a parsed CSS font shorthand.
type Font struct {
	Style  string // "normal" or "italic"
	Weight string // "normal", "bold" or a numeric weight
	Size   float64
	Family string
}

// ParseFont parses a CSS font shorthand of the form
// "[style] [weight] <size>px <family>".
func ParseFont(s string) (Font, error) {
	f := Font{Style: "normal", Weight: "normal"}
	fields := strings.Fields(s)
	for i, tok := range fields {
		switch {
		case tok == "italic" || tok == "oblique":
			f.Style = "italic"
		case tok == "bold" || tok == "normal" || tok == "lighter" || tok == "bolder":
			f.Weight = tok
		case isNumber(tok):
			f.Weight = tok
		case strings.HasSuffix(tok, "px") || strings.HasSuffix(tok, "pt"):
			size, err := strconv.ParseFloat(tok[:len(tok)-2], 64)
			if err != nil {
				return Font{}, fmt.Errorf("canvas: bad font size %q: %w", tok, err)
			}
			if strings.HasSuffix(tok, "pt") {
				size *= 4.0 / 3.0
			}
			f.Size = size
			f.Family = strings.Trim(strings.Join(fields[i+1:], " "), `"'`)
			return f, nil
		default:
			return Font{}, fmt.Errorf("canvas: bad font %q", s)
		}
	}
	return Font{}, fmt.Errorf("canvas: font %q has no size", s)
}

// LeadingSize returns the integer at the start of a font string, or 0. It
// is the cheap size estimate used when no backend can measure text.
func LeadingSize(font string) float64 {
	font = strings.TrimSpace(font)
	end := strings.IndexFunc(font, func(r rune) bool { return !unicode.IsDigit(r) })
	if end < 0 {
		end = len(font)
	}
	n, err := strconv.Atoi(font[:end])
	if err != nil {
		return 0
	}
	return float64(n)
}

func isNumber(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
