package canopy

import (
	"math"

	"github.com/phanxgames/canopy/geom"
)

// ContentSize returns the size attribute truncated toward zero. Auto
// dimensions are zero, except on labels where they are measured from the
// text.
func (n *Node) ContentSize() Size {
	if n.Type == NodeTypeLabel {
		return n.labelContentSize()
	}
	s := n.sizeAttr()
	if s.IsAuto() {
		var fit Size
		if n.Type == NodeTypeGroup {
			fit = n.childrenExtent()
		}
		if s.Width == Auto {
			s.Width = fit.Width
		}
		if s.Height == Auto {
			s.Height = fit.Height
		}
	}
	return Size{math.Trunc(s.Width), math.Trunc(s.Height)}
}

// childrenExtent returns the size that reaches the right and bottom edges
// of every child's render rect, measured from content-local (0, 0).
func (n *Node) childrenExtent() Size {
	var s Size
	for _, c := range n.kids.children {
		r := c.RenderRect()
		s.Width = math.Max(s.Width, r.X+r.Width)
		s.Height = math.Max(s.Height, r.Y+r.Height)
	}
	return s
}

// ClientSize returns the content size plus padding.
func (n *Node) ClientSize() Size {
	c := n.ContentSize()
	p := n.paddingAttr()
	return Size{c.Width + p.Left + p.Right, c.Height + p.Top + p.Bottom}
}

// OffsetSize returns the client size plus the border on both sides.
func (n *Node) OffsetSize() Size {
	c := n.ClientSize()
	bw := n.borderAttr().Width
	return Size{c.Width + 2*bw, c.Height + 2*bw}
}

// Transform returns the transform attribute.
func (n *Node) Transform() geom.Matrix {
	if m, ok := n.attrs.Get("transform").(geom.Matrix); ok {
		return m
	}
	nan := math.NaN()
	return geom.Matrix{nan, nan, nan, nan, nan, nan}
}

// OriginRect returns the untransformed box relative to the anchor point.
func (n *Node) OriginRect() geom.Rect {
	o := n.OffsetSize()
	a := n.vecAttr("anchor")
	return geom.Rect{
		X:      math.Floor(-a.X * o.Width),
		Y:      math.Floor(-a.Y * o.Height),
		Width:  o.Width,
		Height: o.Height,
	}
}

// BoundRect returns the axis-aligned box enclosing the transformed origin
// rect, with the minimum floored and the extent ceiled.
func (n *Node) BoundRect() geom.Rect {
	m := n.Transform()
	corners := n.OriginRect().Corners()
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		x, y := m.TransformPoint(c.X, c.Y)
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	return geom.Rect{
		X:      math.Floor(minX),
		Y:      math.Floor(minY),
		Width:  math.Ceil(maxX - minX),
		Height: math.Ceil(maxY - minY),
	}
}

// RenderRect returns the bound rect in the parent's coordinate space.
func (n *Node) RenderRect() geom.Rect {
	p := n.vecAttr("pos")
	return n.BoundRect().Translate(p.X, p.Y)
}

// OriginRenderRect returns the origin rect in the parent's coordinate
// space, ignoring the transform.
func (n *Node) OriginRenderRect() geom.Rect {
	p := n.vecAttr("pos")
	return n.OriginRect().Translate(p.X, p.Y)
}

// RenderBox returns the render rect grown by one unit on every side.
func (n *Node) RenderBox() geom.Rect {
	return n.RenderRect().Inset(-1)
}

// Vertices returns the transformed corners of the origin rect in the
// parent's space, rounded, clockwise from the top-left. Consecutive
// vertices share an edge.
func (n *Node) Vertices() [4]geom.Vec2 {
	m := n.Transform()
	p := n.vecAttr("pos")
	var out [4]geom.Vec2
	for i, c := range n.OriginRect().Corners() {
		x, y := m.TransformPoint(c.X, c.Y)
		out[i] = geom.Vec2{X: math.Round(x) + p.X, Y: math.Round(y) + p.Y}
	}
	return out
}

// contentOrigin returns where content-local (0, 0) lies in origin space.
func (n *Node) contentOrigin() geom.Vec2 {
	o := n.OriginRect()
	p := n.paddingAttr()
	return geom.Vec2{X: o.X + p.Left, Y: o.Y + p.Top}
}
