package canopy

import (
	"github.com/phanxgames/canopy/canvas"
)

var groupSchema = boxSchema.Extend("group")

// GroupSchema returns the schema of group nodes.
func GroupSchema() *Schema {
	return groupSchema
}

// NewGroup creates a group node. Children are positioned in the group's
// content-local space and painted after its box.
func NewGroup(opts Options) *Node {
	return newNode(NodeTypeGroup, groupSchema, opts)
}

func (n *Node) mustBeGroup() {
	if n.Type != NodeTypeGroup {
		panic("canopy: " + n.Type.String() + " nodes cannot have children")
	}
}

// AppendChild adds child on top of the group's children, detaching it from
// any previous parent. Panics if n is not a group, child is nil, or child
// is an ancestor of n.
func (n *Node) AppendChild(child *Node) {
	n.mustBeGroup()
	attach(n, &n.kids, child, -1)
}

// InsertChild adds child at index in insertion order.
func (n *Node) InsertChild(child *Node, index int) {
	n.mustBeGroup()
	attach(n, &n.kids, child, index)
}

// RemoveChild detaches child. Its animations are cancelled first.
func (n *Node) RemoveChild(child *Node) {
	n.mustBeGroup()
	detach(n, &n.kids, child)
}

// Children returns the children in insertion order. The returned slice
// must not be mutated.
func (n *Node) Children() []*Node {
	return n.kids.children
}

// Update implements Parent. A change to a child repaints the whole group.
func (n *Node) Update(child *Node) {
	n.ForceUpdate(true)
}

// IsDirty implements Parent. A group's children are dirty when the group is.
func (n *Node) IsDirty(child *Node) bool {
	return n.NeedsRepaint()
}

func (n *Node) childrenChanged() {
	n.kids.sorted = false
}

// renderChildren paints the children in z order.
func (n *Node) renderChildren(t float64, ctx canvas.Context) {
	for _, c := range n.kids.sortedChildren() {
		drawChild(t, ctx, c)
	}
}

// hit finds the topmost descendant under evt, whose point is in the space
// of n's parent. It returns n when no child is hit, or nil when n is not.
func (n *Node) hit(evt *Event) *Node {
	if !n.PointCollision(evt) {
		return nil
	}
	if n.Type != NodeTypeGroup || len(n.kids.children) == 0 {
		return n
	}
	o := n.contentOrigin()
	px, py := evt.OffsetX-o.X, evt.OffsetY-o.Y
	self := *evt
	order := n.kids.sortedChildren()
	for i := len(order) - 1; i >= 0; i-- {
		sub := *evt
		sub.Space = SpaceParent
		sub.ParentX, sub.ParentY = px, py
		if t := order[i].hit(&sub); t != nil {
			*evt = sub
			return t
		}
	}
	*evt = self
	return n
}
