package canvas

import (
	"math"

	"github.com/gogpu/gg"

	"github.com/phanxgames/canopy/geom"
)

// Path elements are gg's, so backends can replay them directly.
type (
	PathElement = gg.PathElement
	MoveTo      = gg.MoveTo
	LineTo      = gg.LineTo
	QuadTo      = gg.QuadTo
	CubicTo     = gg.CubicTo
	Close       = gg.Close
)

// flattenTolerance is the maximum distance between a curve and its
// flattened polyline, in path units.
const flattenTolerance = 0.1

// Path is a vector path in user space. It wraps a gg.Path and adds the
// canvas drawing conventions on top: LineTo and CubicTo start a subpath
// when there is no current point, arcs join the current point with a line,
// and hit testing treats open subpaths as closed.
type Path struct {
	gp *gg.Path
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{gp: gg.NewPath()}
}

// GG returns the underlying gg path.
func (p *Path) GG() *gg.Path {
	return p.gp
}

// Elements returns the path elements. The returned slice must not be mutated.
func (p *Path) Elements() []PathElement {
	return p.gp.Elements()
}

// IsEmpty reports whether the path has no elements.
func (p *Path) IsEmpty() bool {
	return !p.gp.HasCurrentPoint()
}

// CurrentPoint returns the end point of the last element.
func (p *Path) CurrentPoint() geom.Vec2 {
	pt := p.gp.CurrentPoint()
	return geom.Vec2{X: pt.X, Y: pt.Y}
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.gp.MoveTo(x, y)
}

// LineTo adds a line to (x, y). On an empty path it acts as MoveTo.
func (p *Path) LineTo(x, y float64) {
	if p.IsEmpty() {
		p.gp.MoveTo(x, y)
		return
	}
	p.gp.LineTo(x, y)
}

// CubicTo adds a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if p.IsEmpty() {
		p.gp.MoveTo(c1x, c1y)
	}
	p.gp.CubicTo(c1x, c1y, c2x, c2y, x, y)
}

// Close closes the current subpath. It does nothing on an empty path.
func (p *Path) Close() {
	if p.IsEmpty() {
		return
	}
	p.gp.Close()
}

// Rect adds a closed rectangle subpath.
func (p *Path) Rect(x, y, w, h float64) {
	p.gp.Rectangle(x, y, w, h)
}

// Arc adds a circular arc around (cx, cy) from angle a1 to a2 in radians.
// The arc runs clockwise (increasing angle in y-down space) unless ccw is
// set. A line joins the current point to the arc start.
func (p *Path) Arc(cx, cy, r, a1, a2 float64, ccw bool) {
	p.LineTo(cx+r*math.Cos(a1), cy+r*math.Sin(a1))

	const twoPi = 2 * math.Pi
	arc := gg.NewPath()
	if ccw {
		for a2 > a1 {
			a2 -= twoPi
		}
		if a2 == a1 {
			return
		}
		// gg arcs only sweep forward: draw a2 to a1 and reverse it.
		arc.Arc(cx, cy, r, a2, a1)
		arc = arc.Reversed()
	} else {
		for a2 < a1 {
			a2 += twoPi
		}
		if a2 == a1 {
			return
		}
		arc.Arc(cx, cy, r, a1, a2)
	}
	for _, e := range arc.Elements() {
		if c, ok := e.(CubicTo); ok {
			p.gp.CubicTo(c.Control1.X, c.Control1.Y, c.Control2.X, c.Control2.Y, c.Point.X, c.Point.Y)
		}
	}
}

// ArcTo adds an arc of radius r tangent to the line from the current point
// to (x1, y1) and to the line from (x1, y1) to (x2, y2), preceded by a
// straight segment to the first tangent point. Degenerate input (zero
// radius, coincident or collinear points) adds a line to (x1, y1).
func (p *Path) ArcTo(x1, y1, x2, y2, r float64) {
	if p.IsEmpty() {
		p.MoveTo(x1, y1)
		return
	}
	p0 := p.CurrentPoint()
	p1 := geom.Vec2{X: x1, Y: y1}
	p2 := geom.Vec2{X: x2, Y: y2}

	d0 := p0.Sub(p1)
	d2 := p2.Sub(p1)
	cross := d0.X*d2.Y - d0.Y*d2.X
	if r <= 0 || d0.Len() == 0 || d2.Len() == 0 || math.Abs(cross) < 1e-12 {
		p.LineTo(x1, y1)
		return
	}

	v0, v2 := d0.Unit(), d2.Unit()
	theta := math.Acos(math.Max(-1, math.Min(1, v0.Dot(v2))))
	tangent := r / math.Tan(theta/2)
	t0 := geom.Vec2{X: p1.X + v0.X*tangent, Y: p1.Y + v0.Y*tangent}
	t1 := geom.Vec2{X: p1.X + v2.X*tangent, Y: p1.Y + v2.Y*tangent}

	bis := v0.Add(v2).Unit()
	dist := r / math.Sin(theta/2)
	c := geom.Vec2{X: p1.X + bis.X*dist, Y: p1.Y + bis.Y*dist}

	a1 := math.Atan2(t0.Y-c.Y, t0.X-c.X)
	a2 := math.Atan2(t1.Y-c.Y, t1.X-c.X)
	p.Arc(c.X, c.Y, r, a1, a2, cross > 0)
}

// RoundRect adds a closed rectangle with corners of radius r, drawn
// clockwise from the top edge as four ArcTo joins.
func (p *Path) RoundRect(x, y, w, h, r float64) {
	p.MoveTo(x+r, y)
	p.ArcTo(x+w, y, x+w, y+h, r)
	p.ArcTo(x+w, y+h, x, y+h, r)
	p.ArcTo(x, y+h, x, y, r)
	p.ArcTo(x, y, x+w, y, r)
	p.Close()
}

// Subpath is a flattened polyline.
type Subpath struct {
	Points []geom.Vec2
	Closed bool
}

// Flatten converts the path into polylines, one per subpath, subdividing
// curves with gg's flattener.
func (p *Path) Flatten() []Subpath {
	var out []Subpath
	for _, sp := range p.subpaths() {
		s := Subpath{Closed: sp.closed}
		sp.path.FlattenCallback(flattenTolerance, func(pt gg.Point) {
			s.Points = append(s.Points, geom.Vec2{X: pt.X, Y: pt.Y})
		})
		out = append(out, s)
	}
	return out
}

// Bounds returns the tight axis-aligned bounds of the path.
func (p *Path) Bounds() geom.Rect {
	b := p.gp.BoundingBox()
	return geom.Rect{X: b.Min.X, Y: b.Min.Y, Width: b.Max.X - b.Min.X, Height: b.Max.Y - b.Min.Y}
}

// Contains reports whether (x, y) is inside the path under the non-zero
// winding rule. Open subpaths are treated as closed.
func (p *Path) Contains(x, y float64) bool {
	closed := gg.NewPath()
	for _, sp := range p.subpaths() {
		appendElements(closed, sp.path.Elements())
		if !sp.closed {
			closed.Close()
		}
	}
	return closed.Contains(gg.Pt(x, y))
}

// Transform returns a copy of p with every point mapped through m.
func (p *Path) Transform(m geom.Matrix) *Path {
	return &Path{gp: p.gp.Transform(ToGG(m))}
}

// Clone returns a copy of p.
func (p *Path) Clone() *Path {
	return &Path{gp: p.gp.Clone()}
}

type subpath struct {
	path   *gg.Path
	closed bool
}

// subpaths splits p at every MoveTo and Close. Subpaths with nothing drawn
// are dropped.
func (p *Path) subpaths() []subpath {
	var out []subpath
	var cur *gg.Path
	var start gg.Point
	flush := func(closed bool) {
		if cur != nil && (closed || len(cur.Elements()) > 1) {
			if closed {
				cur.Close()
			}
			out = append(out, subpath{path: cur, closed: closed})
		}
		cur = nil
	}
	for _, e := range p.gp.Elements() {
		switch e := e.(type) {
		case MoveTo:
			flush(false)
			cur = gg.NewPath()
			cur.MoveTo(e.Point.X, e.Point.Y)
			start = e.Point
		case Close:
			flush(true)
		default:
			if cur == nil {
				cur = gg.NewPath()
				cur.MoveTo(start.X, start.Y)
			}
			appendElements(cur, []PathElement{e})
		}
	}
	flush(false)
	return out
}

func appendElements(dst *gg.Path, els []PathElement) {
	for _, e := range els {
		switch e := e.(type) {
		case MoveTo:
			dst.MoveTo(e.Point.X, e.Point.Y)
		case LineTo:
			dst.LineTo(e.Point.X, e.Point.Y)
		case QuadTo:
			dst.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case CubicTo:
			dst.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case Close:
			dst.Close()
		}
	}
}

// ToGG converts an affine matrix in (a, b, c, d, e, f) column order to
// gg's row order.
func ToGG(m geom.Matrix) gg.Matrix {
	return gg.Matrix{
		A: m[0], B: m[2], C: m[4],
		D: m[1], E: m[3], F: m[5],
	}
}
