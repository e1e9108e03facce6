// Package geom provides the small vector, rectangle and affine-matrix types
// shared by the scene graph and its drawing backends.
package geom

import "math"

// Vec2 is a 2D point or vector.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Unit returns v scaled to length 1. The zero vector yields NaN components.
func (v Vec2) Unit() Vec2 {
	l := v.Len()
	return Vec2{v.X / l, v.Y / l}
}

// UnitBetween returns the unit vector pointing from a to b.
func UnitBetween(a, b Vec2) Vec2 {
	return b.Sub(a).Unit()
}

// Rect is an axis-aligned rectangle in the form (x, y, width, height).
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (px, py) lies inside r. The left and top edges
// are inclusive, the right and bottom edges exclusive.
func (r Rect) Contains(px, py float64) bool {
	return px >= r.X && px-r.X < r.Width &&
		py >= r.Y && py-r.Y < r.Height
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{r.X + dx, r.Y + dy, r.Width, r.Height}
}

// Inset returns r shrunk by d on every side. Negative d grows it.
func (r Rect) Inset(d float64) Rect {
	return Rect{r.X + d, r.Y + d, r.Width - 2*d, r.Height - 2*d}
}

// Corners returns the corners of r clockwise from the top-left.
func (r Rect) Corners() [4]Vec2 {
	return [4]Vec2{
		{r.X, r.Y},
		{r.X + r.Width, r.Y},
		{r.X + r.Width, r.Y + r.Height},
		{r.X, r.Y + r.Height},
	}
}

// IsEmpty reports whether r has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersects reports whether r and o share any area.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}
