package canopy

import (
	"github.com/phanxgames/canopy/canvas"
)

// CoordSpace names the coordinate space of an Event's query point.
type CoordSpace uint8

const (
	// SpaceLayer means LayerX/LayerY hold the point, relative to the layer.
	SpaceLayer CoordSpace = iota
	// SpaceParent means ParentX/ParentY hold the point, relative to the
	// content of the group that contains the node.
	SpaceParent
)

// Event is a pointer event being hit tested.
type Event struct {
	Type  string
	Space CoordSpace

	LayerX, LayerY   float64
	ParentX, ParentY float64

	// Set on acceptance: the point in the node's origin space and the hit
	// paths that contain it.
	OffsetX, OffsetY float64
	TargetPaths      []*canvas.Path

	// Target is the node the event was delivered to by Layer.Dispatch.
	Target *Node
}

// point returns the query point in the declared space.
func (e *Event) point() (float64, float64) {
	if e.Space == SpaceParent {
		return e.ParentX, e.ParentY
	}
	return e.LayerX, e.LayerY
}

// PointToOffset maps a point in the parent's space into the node's origin
// space.
func (n *Node) PointToOffset(x, y float64) (float64, float64) {
	pos := n.vecAttr("pos")
	return n.Transform().Inverse().TransformPoint(x-pos.X, y-pos.Y)
}

// PointCollision reports whether the event's point falls inside the node.
// On acceptance the point in origin space is stored in OffsetX/OffsetY and
// the registered hit paths containing it in TargetPaths.
func (n *Node) PointCollision(evt *Event) bool {
	x, y := evt.point()
	if !n.RenderRect().Contains(x, y) {
		return false
	}
	ox, oy := n.PointToOffset(x, y)
	if !n.OriginRect().Contains(ox, oy) {
		return false
	}
	evt.OffsetX = ox
	evt.OffsetY = oy
	evt.TargetPaths = n.FindPaths(ox, oy)
	return true
}
