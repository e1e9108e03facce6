package canopy

import "sort"

// container holds the children of a Layer or group node.
type container struct {
	children []*Node
	// order is children sorted by zIndex, ties kept in insertion order.
	order  []*Node
	sorted bool
}

func (c *container) add(child *Node) {
	c.children = append(c.children, child)
	c.sorted = false
}

func (c *container) insert(child *Node, index int) {
	c.children = append(c.children, nil)
	copy(c.children[index+1:], c.children[index:])
	c.children[index] = child
	c.sorted = false
}

func (c *container) remove(child *Node) bool {
	for i, k := range c.children {
		if k == child {
			copy(c.children[i:], c.children[i+1:])
			c.children[len(c.children)-1] = nil
			c.children = c.children[:len(c.children)-1]
			c.sorted = false
			return true
		}
	}
	return false
}

func (c *container) indexOf(child *Node) int {
	for i, k := range c.children {
		if k == child {
			return i
		}
	}
	return -1
}

// sortedChildren returns the children in paint order. The returned slice
// is reused between calls and must not be retained.
func (c *container) sortedChildren() []*Node {
	if !c.sorted {
		c.order = append(c.order[:0], c.children...)
		sort.SliceStable(c.order, func(i, j int) bool {
			return c.order[i].zIndex() < c.order[j].zIndex()
		})
		c.sorted = true
	}
	return c.order
}

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate *Node, node Parent) bool {
	for p := node; p != nil; {
		n, ok := p.(*Node)
		if !ok {
			return false
		}
		if n == candidate {
			return true
		}
		p = n.parent
	}
	return false
}

// attach links child under p, detaching it from any previous parent first.
// A non-negative index is a position in c before the child is detached.
func attach(p Parent, c *container, child *Node, index int) {
	if child == nil {
		panic("canopy: cannot add nil child")
	}
	if isAncestor(child, p) {
		panic("canopy: adding child would create a cycle")
	}
	if index < -1 || index > len(c.children) {
		panic("canopy: child index out of range")
	}
	// index counts the child itself when it is moving later within c.
	if i := c.indexOf(child); i >= 0 && i < index {
		index--
	}
	if child.parent != nil {
		child.Remove()
	}
	child.parent = p
	if index < 0 {
		c.add(child)
	} else {
		c.insert(child, index)
	}
	child.connected()
	if l := p.Layer(); l != nil && l.debug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(p, len(c.children))
	}
	child.ForceUpdate(false)
}

// detach unlinks child from p. Animations are cancelled while the node is
// still attached.
func detach(p Parent, c *container, child *Node) {
	if child.parent != p {
		panic("canopy: child's parent is not this node")
	}
	l := p.Layer()
	child.disconnecting()
	c.remove(child)
	child.parent = nil
	if l != nil {
		l.forget(child)
	}
	if g, ok := p.(*Node); ok {
		g.ForceUpdate(true)
	}
}

// connected runs after n is linked to a parent.
func (n *Node) connected() {
	if tl := n.Timeline(); tl != nil {
		n.startPending(tl)
	}
	for _, c := range n.kids.children {
		c.connected()
	}
	if n.hooks.OnConnected != nil {
		n.hooks.OnConnected(n, n.parent)
	}
}

// disconnecting runs before n is unlinked from its parent.
func (n *Node) disconnecting() {
	for _, c := range n.kids.children {
		c.disconnecting()
	}
	n.cancelAnimations()
	if n.hooks.OnDisconnected != nil {
		n.hooks.OnDisconnected(n, n.parent)
	}
}

// Remove detaches the node from its parent. No-op when detached.
func (n *Node) Remove() {
	switch p := n.parent.(type) {
	case nil:
	case *Layer:
		p.RemoveChild(n)
	case *Node:
		p.RemoveChild(n)
	}
}
