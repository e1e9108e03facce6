package canopy

import (
	"github.com/phanxgames/canopy/canvas"
)

// NodeType identifies the kind of a Node.
type NodeType uint8

const (
	NodeTypeSprite NodeType = iota // box with border and background
	NodeTypeLabel                  // box with text content
	NodeTypeGroup                  // box whose content is its children
)

func (t NodeType) String() string {
	switch t {
	case NodeTypeSprite:
		return "sprite"
	case NodeTypeLabel:
		return "label"
	case NodeTypeGroup:
		return "group"
	}
	return "unknown"
}

// ParseNodeType is the inverse of NodeType.String.
func ParseNodeType(s string) (NodeType, bool) {
	switch s {
	case "sprite":
		return NodeTypeSprite, true
	case "label":
		return NodeTypeLabel, true
	case "group":
		return NodeTypeGroup, true
	}
	return 0, false
}

// Auto marks a Size dimension that is derived from content: the text of a
// label or the children of a group. Sprites treat Auto as zero.
const Auto = -1.0

// Size is a width and height.
type Size struct {
	Width, Height float64
}

// IsAuto reports whether either dimension is Auto.
func (s Size) IsAuto() bool {
	return s.Width == Auto || s.Height == Auto
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// Padding holds per-side padding in CSS order.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// Border is a border width and color.
type Border struct {
	Width float64
	Color canvas.Color
}

// Gradients optionally replaces solid colors with linear gradients.
type Gradients struct {
	Border  *canvas.LinearGradient
	Bgcolor *canvas.LinearGradient
	Text    *canvas.LinearGradient
}
