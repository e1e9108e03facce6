// Package ggcanvas implements canvas.Context on a gogpu/gg raster context.
//
// Paths are replayed through gg's current transform, so they land in
// device space exactly as on an HTML canvas. Text is positioned through
// the transform but glyphs are not rotated or scaled by it, and stroked
// text is drawn filled.
package ggcanvas

import (
	"io"
	"math"

	"github.com/gogpu/gg"

	"github.com/phanxgames/canopy/canvas"
	"github.com/phanxgames/canopy/geom"
)

type state struct {
	lineWidth float64
	fill      canvas.Paint
	stroke    canvas.Paint
	font      string
}

// Context draws onto a gg.Context.
type Context struct {
	dc    *gg.Context
	state state
	stack []state
}

var _ canvas.Context = (*Context)(nil)

// New creates a Context drawing into a new width by height image.
func New(width, height int) *Context {
	return Wrap(gg.NewContext(width, height))
}

// Wrap adapts an existing gg context.
func Wrap(dc *gg.Context) *Context {
	return &Context{
		dc: dc,
		state: state{
			lineWidth: 1,
			fill:      canvas.Black,
			stroke:    canvas.Black,
			font:      canvas.DefaultFont,
		},
	}
}

// GG returns the underlying gg context.
func (c *Context) GG() *gg.Context {
	return c.dc
}

// Clear fills the whole image with col, ignoring the transform.
func (c *Context) Clear(col canvas.Color) {
	c.dc.ClearWithColor(col.GG())
}

// EncodePNG writes the image as PNG.
func (c *Context) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

// SavePNG writes the image to a PNG file.
func (c *Context) SavePNG(path string) error {
	return c.dc.SavePNG(path)
}

// Close releases the gg context.
func (c *Context) Close() error {
	return c.dc.Close()
}

// Save pushes the drawing state.
func (c *Context) Save() {
	c.dc.Push()
	c.stack = append(c.stack, c.state)
}

// Restore pops the drawing state. Unbalanced calls are ignored.
func (c *Context) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.dc.Pop()
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// Translate moves the origin by (x, y).
func (c *Context) Translate(x, y float64) {
	c.dc.Translate(x, y)
}

// Transform multiplies the current transform by m.
func (c *Context) Transform(m geom.Matrix) {
	c.dc.Transform(canvas.ToGG(m))
}

// SetLineWidth sets the stroke width in user units.
func (c *Context) SetLineWidth(w float64) {
	c.state.lineWidth = w
}

// SetStrokeStyle sets the paint used by Stroke and StrokeText.
func (c *Context) SetStrokeStyle(p canvas.Paint) {
	c.state.stroke = p
}

// SetFillStyle sets the paint used by Fill and FillText.
func (c *Context) SetFillStyle(p canvas.Paint) {
	c.state.fill = p
}

// Fill fills p with the non-zero rule.
func (c *Context) Fill(p *canvas.Path) error {
	c.dc.SetFillBrush(c.brush(c.state.fill))
	c.replay(p)
	return c.dc.Fill()
}

// Stroke strokes p. The line width is scaled by the transform so that
// scaled nodes get proportionally thicker borders.
func (c *Context) Stroke(p *canvas.Path) error {
	m := c.dc.GetTransform()
	scale := math.Sqrt(math.Abs(m.A*m.E - m.B*m.D))
	c.dc.SetLineWidth(c.state.lineWidth * scale)
	c.dc.SetStrokeBrush(c.brush(c.state.stroke))
	c.replay(p)
	return c.dc.Stroke()
}

// SetFont sets the CSS font shorthand used for text.
func (c *Context) SetFont(font string) {
	c.state.font = font
}

// FillText draws s with its left edge at x and its vertical middle at y.
func (c *Context) FillText(s string, x, y float64) error {
	return c.drawText(s, x, y, c.state.fill)
}

// StrokeText draws s filled with the stroke style; gg has no glyph outlines.
func (c *Context) StrokeText(s string, x, y float64) error {
	return c.drawText(s, x, y, c.state.stroke)
}

func (c *Context) drawText(s string, x, y float64, style canvas.Paint) error {
	face, err := fonts.face(c.state.font)
	if err != nil {
		return err
	}
	dx, dy := c.dc.TransformPoint(x, y)
	c.dc.SetFont(face)
	c.dc.SetFillBrush(gg.Solid(textColor(style, x, y).GG()))
	c.dc.DrawStringAnchored(s, dx, dy, 0, 0.5)
	return nil
}

// MeasureText returns the advance width of s in font.
func (c *Context) MeasureText(font, s string) (float64, error) {
	face, err := fonts.face(font)
	if err != nil {
		return 0, err
	}
	c.dc.SetFont(face)
	w, _ := c.dc.MeasureString(s)
	return w, nil
}

// replay rebuilds p as gg's current path.
func (c *Context) replay(p *canvas.Path) {
	c.dc.ClearPath()
	for _, e := range p.Elements() {
		switch e := e.(type) {
		case canvas.MoveTo:
			c.dc.MoveTo(e.Point.X, e.Point.Y)
		case canvas.LineTo:
			c.dc.LineTo(e.Point.X, e.Point.Y)
		case canvas.QuadTo:
			c.dc.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case canvas.CubicTo:
			c.dc.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case canvas.Close:
			c.dc.ClosePath()
		}
	}
}

// brush converts a paint style. Gradient endpoints are given in user space
// and gg evaluates brushes per device pixel, so they are transformed here.
func (c *Context) brush(p canvas.Paint) gg.Brush {
	switch p := p.(type) {
	case canvas.Color:
		return gg.Solid(p.GG())
	case *canvas.Gradient:
		g := p.Brush()
		g.Start.X, g.Start.Y = c.dc.TransformPoint(p.X0, p.Y0)
		g.End.X, g.End.Y = c.dc.TransformPoint(p.X1, p.Y1)
		return g
	}
	return gg.Solid(gg.RGBA{A: 1})
}

// textColor picks one color for a run of glyphs: a gradient is sampled
// where the text starts.
func textColor(p canvas.Paint, x, y float64) canvas.Color {
	switch p := p.(type) {
	case canvas.Color:
		return p
	case *canvas.Gradient:
		return p.ColorAt(x, y)
	}
	return canvas.Black
}
