// Package ebitencanvas implements canvas.Context on Ebitengine images and
// hosts a canopy layer in an Ebitengine window.
//
// Paths are flattened into triangles with the vector package and drawn
// with per-vertex colors, so gradients are interpolated across each
// triangle rather than per pixel.
package ebitencanvas

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/canopy/canvas"
	"github.com/phanxgames/canopy/geom"
)

// whiteSubImage is the source texture for solid triangles. The 1px border
// keeps linear filtering from sampling transparent pixels.
var whiteSubImage *ebiten.Image

func init() {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

type state struct {
	ctm       geom.Matrix
	lineWidth float64
	fill      canvas.Paint
	stroke    canvas.Paint
	font      string
}

// Context draws onto an ebiten.Image. It keeps its own transform stack.
type Context struct {
	target *ebiten.Image
	state  state
	stack  []state

	vertices []ebiten.Vertex
	indices  []uint16
}

var _ canvas.Context = (*Context)(nil)

// New returns a Context drawing onto target, which may be nil until
// SetTarget is called. Text can be measured without a target.
func New(target *ebiten.Image) *Context {
	c := &Context{}
	c.SetTarget(target)
	return c
}

// SetTarget switches the destination image and resets the drawing state.
func (c *Context) SetTarget(target *ebiten.Image) {
	c.target = target
	c.stack = c.stack[:0]
	c.state = state{
		ctm:       geom.Identity,
		lineWidth: 1,
		fill:      canvas.Black,
		stroke:    canvas.Black,
		font:      canvas.DefaultFont,
	}
}

// Target returns the destination image.
func (c *Context) Target() *ebiten.Image {
	return c.target
}

// Save pushes the drawing state.
func (c *Context) Save() {
	c.stack = append(c.stack, c.state)
}

// Restore pops the drawing state. Unbalanced calls are ignored.
func (c *Context) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// Translate moves the origin by (x, y).
func (c *Context) Translate(x, y float64) {
	c.state.ctm = c.state.ctm.Multiply(geom.Translate(x, y))
}

// Transform multiplies the current transform by m.
func (c *Context) Transform(m geom.Matrix) {
	c.state.ctm = c.state.ctm.Multiply(m)
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
	if c.target == nil {
		return nil
	}
	vp := c.devicePath(p)
	c.vertices, c.indices = vp.AppendVerticesAndIndicesForFilling(c.vertices[:0], c.indices[:0])
	c.colorVertices(c.state.fill)
	c.target.DrawTriangles(c.vertices, c.indices, whiteSubImage, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
		FillRule:  ebiten.FillRuleNonZero,
	})
	return nil
}

// Stroke outlines p with the stroke style and line width.
func (c *Context) Stroke(p *canvas.Path) error {
	if c.target == nil {
		return nil
	}
	m := c.state.ctm
	scale := math.Sqrt(math.Abs(m.Determinant()))
	vp := c.devicePath(p)
	c.vertices, c.indices = vp.AppendVerticesAndIndicesForStroke(c.vertices[:0], c.indices[:0], &vector.StrokeOptions{
		Width:      float32(c.state.lineWidth * scale),
		LineJoin:   vector.LineJoinMiter,
		MiterLimit: 10,
	})
	c.colorVertices(c.state.stroke)
	c.target.DrawTriangles(c.vertices, c.indices, whiteSubImage, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
	return nil
}

// SetFont sets the CSS font shorthand used for text.
func (c *Context) SetFont(font string) {
	c.state.font = font
}

// FillText draws s with its left edge at x and its vertical middle at y.
func (c *Context) FillText(s string, x, y float64) error {
	return c.drawText(s, x, y, c.state.fill)
}

// StrokeText draws s filled with the stroke style; text/v2 has no outline
// rendering.
func (c *Context) StrokeText(s string, x, y float64) error {
	return c.drawText(s, x, y, c.state.stroke)
}

func (c *Context) drawText(s string, x, y float64, style canvas.Paint) error {
	face, err := fonts.face(c.state.font)
	if err != nil {
		return err
	}
	if c.target == nil {
		return nil
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(toGeoM(c.state.ctm))
	op.PrimaryAlign = text.AlignStart
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(paintColor(style, x, y).RGBA8())
	text.Draw(c.target, s, face, op)
	return nil
}

// MeasureText returns the advance width of s in font.
func (c *Context) MeasureText(font, s string) (float64, error) {
	face, err := fonts.face(font)
	if err != nil {
		return 0, err
	}
	w, _ := text.Measure(s, face, 0)
	return w, nil
}

// devicePath converts p to a vector.Path in target pixels.
func (c *Context) devicePath(p *canvas.Path) *vector.Path {
	var vp vector.Path
	for _, e := range p.Transform(c.state.ctm).Elements() {
		switch e := e.(type) {
		case canvas.MoveTo:
			vp.MoveTo(float32(e.Point.X), float32(e.Point.Y))
		case canvas.LineTo:
			vp.LineTo(float32(e.Point.X), float32(e.Point.Y))
		case canvas.QuadTo:
			vp.QuadTo(
				float32(e.Control.X), float32(e.Control.Y),
				float32(e.Point.X), float32(e.Point.Y))
		case canvas.CubicTo:
			vp.CubicTo(
				float32(e.Control1.X), float32(e.Control1.Y),
				float32(e.Control2.X), float32(e.Control2.Y),
				float32(e.Point.X), float32(e.Point.Y))
		case canvas.Close:
			vp.Close()
		}
	}
	return &vp
}

// colorVertices assigns each vertex its paint color. Gradient endpoints are
// mapped to device space to match the vertices.
func (c *Context) colorVertices(p canvas.Paint) {
	if g, ok := p.(*canvas.Gradient); ok {
		b := g.Brush()
		b.Start.X, b.Start.Y = c.state.ctm.TransformPoint(g.X0, g.Y0)
		b.End.X, b.End.Y = c.state.ctm.TransformPoint(g.X1, g.Y1)
		for i := range c.vertices {
			v := &c.vertices[i]
			setVertexColor(v, canvas.FromGG(b.ColorAt(float64(v.DstX), float64(v.DstY))))
		}
		return
	}
	col := paintColor(p, 0, 0)
	for i := range c.vertices {
		setVertexColor(&c.vertices[i], col)
	}
}

func setVertexColor(v *ebiten.Vertex, col canvas.Color) {
	v.SrcX, v.SrcY = 1, 1
	v.ColorR = float32(col.R)
	v.ColorG = float32(col.G)
	v.ColorB = float32(col.B)
	v.ColorA = float32(col.A)
}

func paintColor(p canvas.Paint, x, y float64) canvas.Color {
	switch p := p.(type) {
	case canvas.Color:
		return p
	case *canvas.Gradient:
		return p.ColorAt(x, y)
	}
	return canvas.Black
}

// toGeoM converts an affine matrix to ebiten's GeoM.
func toGeoM(m geom.Matrix) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[2])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 0, m[1])
	g.SetElement(1, 1, m[3])
	g.SetElement(1, 2, m[5])
	return g
}
