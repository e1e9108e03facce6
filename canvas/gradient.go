package canvas

import (
	"github.com/gogpu/gg"

	"github.com/phanxgames/canopy/geom"
)

// Paint is a fill or stroke style: a Color or a *Gradient.
type Paint interface {
	isPaint()
}

// ColorStop is one color stop of a gradient. Offset is in [0, 1].
type ColorStop struct {
	Offset float64
	Color  Color
}

// LinearGradient describes a gradient relative to a rectangle. It is the
// value stored in a node's gradient attributes; Resolve turns it into a
// drawable Gradient once the rectangle is known.
type LinearGradient struct {
	// Vector holds the start and end points (x0, y0, x1, y1) relative to the
	// rectangle's top-left corner. A nil Vector runs left to right across
	// the rectangle's vertical middle.
	Vector []float64
	Colors []ColorStop
	// Rect overrides the rectangle the gradient is resolved against.
	Rect *geom.Rect
}

// Gradient is a linear gradient in user space.
type Gradient struct {
	X0, Y0, X1, Y1 float64
	Stops          []ColorStop
}

func (*Gradient) isPaint() {}

// Resolve positions g over def, or over g.Rect when it is set.
func (g *LinearGradient) Resolve(def geom.Rect) *Gradient {
	r := def
	if g.Rect != nil {
		r = *g.Rect
	}
	out := &Gradient{Stops: append([]ColorStop(nil), g.Colors...)}
	if len(g.Vector) == 4 {
		out.X0 = r.X + g.Vector[0]
		out.Y0 = r.Y + g.Vector[1]
		out.X1 = r.X + g.Vector[2]
		out.Y1 = r.Y + g.Vector[3]
		return out
	}
	out.X0, out.Y0 = r.X, r.Y+r.Height/2
	out.X1, out.Y1 = r.X+r.Width, r.Y+r.Height/2
	return out
}

// Brush returns g as a gg gradient brush. Colors between stops are
// blended in linear sRGB and points beyond either end take the end color.
func (g *Gradient) Brush() *gg.LinearGradientBrush {
	b := gg.NewLinearGradientBrush(g.X0, g.Y0, g.X1, g.Y1)
	for _, s := range g.Stops {
		b.AddColorStop(s.Offset, s.Color.GG())
	}
	return b
}

// ColorAt returns the gradient color at the user-space point (x, y).
func (g *Gradient) ColorAt(x, y float64) Color {
	return FromGG(g.Brush().ColorAt(x, y))
}
