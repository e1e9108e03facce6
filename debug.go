package canopy

import (
	"time"
)

// debugStats holds per-frame metrics. Only populated when Layer.debug is
// true.
type debugStats struct {
	drawTime   time.Duration
	nodesDrawn int
	dirtyCount int
	animations int
}

// debugLog reports frame stats through Logger.
func (l *Layer) debugLog(stats debugStats) {
	if !l.debug {
		return
	}
	Logger().Debug("canopy: frame",
		"draw", stats.drawTime,
		"nodes", stats.nodesDrawn,
		"dirty", stats.dirtyCount,
		"animations", stats.animations,
		"time", l.timeline.CurrentTime())
}

// debugMaxTreeDepth is the depth past which debug mode warns.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n.parent; p != nil; {
		depth++
		g, ok := p.(*Node)
		if !ok {
			break
		}
		p = g.parent
	}
	if depth > debugMaxTreeDepth {
		Logger().Warn("canopy: deep tree", "depth", depth, "limit", debugMaxTreeDepth, "id", n.ID())
	}
}

// debugMaxChildCount is the child count past which debug mode warns.
const debugMaxChildCount = 1000

func debugCheckChildCount(p Parent, count int) {
	if count > debugMaxChildCount {
		id := ""
		if g, ok := p.(*Node); ok {
			id = g.ID()
		}
		Logger().Warn("canopy: many children", "count", count, "limit", debugMaxChildCount, "id", id)
	}
}

// countNodes counts n and its descendants.
func countNodes(n *Node) int {
	c := 1
	for _, k := range n.kids.children {
		c += countNodes(k)
	}
	return c
}
