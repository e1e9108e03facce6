package ebitencanvas

import (
	"testing"

	"github.com/phanxgames/canopy"
	"github.com/phanxgames/canopy/geom"
)

func TestToGeoM(t *testing.T) {
	m := geom.Translate(10, 20).Multiply(geom.Scale(2, 3))
	g := toGeoM(m)
	x, y := g.Apply(1, 1)
	wx, wy := m.TransformPoint(1, 1)
	if x != wx || y != wy {
		t.Errorf("Apply(1,1) = (%v,%v), want (%v,%v)", x, y, wx, wy)
	}
}

func TestStateStack(t *testing.T) {
	c := New(nil)
	c.Save()
	c.Translate(5, 5)
	c.SetLineWidth(3)
	c.Restore()
	c.Restore()
	if c.state.ctm != geom.Identity || c.state.lineWidth != 1 {
		t.Errorf("state after Restore = %+v", c.state)
	}
}

func TestMeasureText(t *testing.T) {
	c := New(nil)
	short, err := c.MeasureText("16px sans-serif", "ab")
	if err != nil {
		t.Fatal(err)
	}
	long, err := c.MeasureText("16px sans-serif", "abcd")
	if err != nil {
		t.Fatal(err)
	}
	if short <= 0 || long <= short {
		t.Errorf("widths = %v, %v", short, long)
	}
}

func TestNewGameMeasuresWithFonts(t *testing.T) {
	l := canopy.NewLayer(nil)
	g := NewGame(l, RunConfig{})
	if l.OutputContext() != g.ctx {
		t.Error("layer does not measure with the game context")
	}
	if w, h := g.Layout(0, 0); w != 640 || h != 480 {
		t.Errorf("Layout = %d, %d", w, h)
	}
}
