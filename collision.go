package canopy

import (
	"math"

	"github.com/phanxgames/canopy/geom"
)

// OBBCollision reports whether the oriented boxes of n and other overlap,
// using the separating axis test over the two edge directions of each box.
// Both nodes are expected to share a parent coordinate space.
func (n *Node) OBBCollision(other *Node) bool {
	a := n.Vertices()
	b := other.Vertices()
	axes := [4]geom.Vec2{
		geom.UnitBetween(a[1], a[0]),
		geom.UnitBetween(a[2], a[1]),
		geom.UnitBetween(b[1], b[0]),
		geom.UnitBetween(b[2], b[1]),
	}
	for _, axis := range axes {
		if !projectionsOverlap(axis, a, b) {
			return false
		}
	}
	return true
}

func project(axis geom.Vec2, vs [4]geom.Vec2) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		d := axis.Dot(v)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

func projectionsOverlap(axis geom.Vec2, a, b [4]geom.Vec2) bool {
	aLo, aHi := project(axis, a)
	bLo, bHi := project(axis, b)
	midA, midB := (aLo+aHi)/2, (bLo+bHi)/2
	return math.Abs(midB-midA) <= ((aHi-aLo)+(bHi-bLo))/2
}
