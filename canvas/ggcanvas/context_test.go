package ggcanvas

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/phanxgames/canopy"
	"github.com/phanxgames/canopy/canvas"
	"github.com/phanxgames/canopy/geom"
)

func assertPixel(t *testing.T, c *Context, x, y int, want canvas.Color) {
	t.Helper()
	r, g, b, a := c.GG().Image().At(x, y).RGBA()
	got := [4]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
	w := want.RGBA8()
	if got != [4]uint8{w.R, w.G, w.B, w.A} {
		t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
	}
}

func TestFillRect(t *testing.T) {
	c := New(20, 20)
	defer c.Close()
	c.Clear(canvas.White)

	p := canvas.NewPath()
	p.Rect(0, 0, 10, 10)
	c.SetFillStyle(canvas.MustParseColor("red"))
	if err := c.Fill(p); err != nil {
		t.Fatal(err)
	}
	assertPixel(t, c, 5, 5, canvas.MustParseColor("red"))
	assertPixel(t, c, 15, 15, canvas.White)
}

func TestFillReplaysQuadratics(t *testing.T) {
	c := New(20, 20)
	defer c.Close()
	c.Clear(canvas.White)
	red := canvas.MustParseColor("red")

	p := canvas.NewPath()
	p.MoveTo(0, 0)
	p.GG().QuadraticTo(20, 0, 20, 20)
	p.LineTo(0, 20)
	p.Close()
	c.SetFillStyle(red)
	if err := c.Fill(p); err != nil {
		t.Fatal(err)
	}
	assertPixel(t, c, 3, 16, red)
	assertPixel(t, c, 17, 15, red)
	// The curve passes x=18 near y=9, so this corner stays outside.
	assertPixel(t, c, 18, 1, canvas.White)
}

func TestTransformAndRestore(t *testing.T) {
	c := New(40, 40)
	defer c.Close()
	c.Clear(canvas.White)
	blue := canvas.MustParseColor("blue")

	c.Save()
	c.Translate(20, 0)
	c.Transform(geom.Scale(2, 2))
	c.SetFillStyle(blue)
	p := canvas.NewPath()
	p.Rect(0, 0, 5, 5)
	if err := c.Fill(p); err != nil {
		t.Fatal(err)
	}
	c.Restore()

	assertPixel(t, c, 28, 8, blue)
	assertPixel(t, c, 5, 5, canvas.White)

	// Restore brings back the fill style and transform.
	if err := c.Fill(p); err != nil {
		t.Fatal(err)
	}
	assertPixel(t, c, 2, 2, canvas.Black)
}

func TestRenderLayer(t *testing.T) {
	c := New(64, 64)
	defer c.Close()
	c.Clear(canvas.White)

	l := canopy.NewLayer(c)
	l.AppendChild(canopy.NewSprite(canopy.Options{Attrs: map[string]any{
		"size":         canopy.Size{Width: 40, Height: 40},
		"pos":          geom.Vec2{X: 8, Y: 8},
		"bgcolor":      "lime",
		"border":       []any{4, "black"},
		"borderRadius": 6,
	}}))
	l.Draw(c)

	assertPixel(t, c, 30, 30, canvas.MustParseColor("lime"))
	assertPixel(t, c, 2, 2, canvas.White)

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 64 {
		t.Errorf("width = %d, want 64", img.Bounds().Dx())
	}
}

func TestMeasureText(t *testing.T) {
	c := New(10, 10)
	defer c.Close()
	short, err := c.MeasureText("16px sans-serif", "ab")
	if err != nil {
		t.Fatal(err)
	}
	long, err := c.MeasureText("16px sans-serif", "abcdef")
	if err != nil {
		t.Fatal(err)
	}
	if short <= 0 || long <= short {
		t.Errorf("widths = %v, %v, want positive and growing", short, long)
	}
	big, err := c.MeasureText("32px sans-serif", "ab")
	if err != nil {
		t.Fatal(err)
	}
	if big <= short {
		t.Errorf("32px width %v not larger than 16px width %v", big, short)
	}
	if _, err := c.MeasureText("huge", "ab"); err == nil {
		t.Error("malformed font: expected error")
	}
}
