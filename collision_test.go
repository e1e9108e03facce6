package canopy

import (
	"testing"

	"github.com/phanxgames/canopy/geom"
)

func TestOBBCollision(t *testing.T) {
	box := func(x, y float64) *Node {
		return sprite(map[string]any{"size": Size{10, 10}, "pos": geom.Vec2{X: x, Y: y}})
	}
	tests := []struct {
		name string
		b    *Node
		want bool
	}{
		{"far apart", box(50, 50), false},
		{"overlapping", box(5, 5), true},
		{"touching edges", box(10, 0), true},
		{"separated on x", box(11, 0), false},
		{"separated on y", box(0, 11), false},
		{"contained", sprite(map[string]any{"size": Size{2, 2}, "pos": geom.Vec2{X: 4, Y: 4}}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := box(0, 0)
			if got := a.OBBCollision(tt.b); got != tt.want {
				t.Errorf("a.OBBCollision(b) = %v, want %v", got, tt.want)
			}
			if got := tt.b.OBBCollision(a); got != tt.want {
				t.Errorf("b.OBBCollision(a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOBBCollisionRotated(t *testing.T) {
	diamond := sprite(map[string]any{
		"size":   Size{10, 10},
		"anchor": geom.Vec2{X: 0.5, Y: 0.5},
		"rotate": 45,
	})
	// The bounding boxes overlap but the corner of b lies past the
	// diamond's edge x+y=7.
	b := sprite(map[string]any{
		"size":   Size{10, 10},
		"anchor": geom.Vec2{X: 0.5, Y: 0.5},
		"pos":    geom.Vec2{X: 9, Y: 9},
	})
	if !diamond.RenderRect().Intersects(b.RenderRect()) {
		t.Fatal("test setup: render rects should overlap")
	}
	if diamond.OBBCollision(b) || b.OBBCollision(diamond) {
		t.Error("rotated boxes reported colliding")
	}

	b.SetAttr("pos", geom.Vec2{X: 6, Y: 6})
	if !diamond.OBBCollision(b) || !b.OBBCollision(diamond) {
		t.Error("rotated boxes not reported colliding")
	}
}
