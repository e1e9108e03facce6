package canopy

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/phanxgames/canopy/canvas"
	"github.com/phanxgames/canopy/geom"
)

// resetTextbox drops the measured text box so the next ContentSize call
// measures again.
func resetTextbox(n *Node, _, _ any) {
	n.setAttr("textboxSize", Size{})
}

var labelSchema = boxSchema.Extend("label",
	Descriptor{Name: "text", Default: "", Effect: resetTextbox, Decode: decodeString},
	Descriptor{Name: "font", Default: canvas.DefaultFont, Effect: resetTextbox, Decode: decodeString},
	Descriptor{Name: "lineHeight", Default: 0.0, Effect: resetTextbox, Decode: decodeFloat},
	Descriptor{Name: "textAlign", Default: "left", Decode: decodeEnum("left", "center", "right")},
	Descriptor{Name: "renderMode", Default: "fill", Decode: decodeEnum("fill", "stroke")},
	Descriptor{Name: "color", Default: canvas.Black, Decode: decodeColor},
	Descriptor{Name: "textboxSize", Default: Size{}, Change: Silent, Decode: decodeSize},
)

// LabelSchema returns the schema of label nodes.
func LabelSchema() *Schema {
	return labelSchema
}

// NewLabel creates a text node. Its size defaults to the measured text.
func NewLabel(text string, opts Options) *Node {
	n := newNode(NodeTypeLabel, labelSchema, opts)
	if _, ok := opts.Attrs["text"]; !ok {
		n.SetAttr("text", text)
	}
	return n
}

// Text returns a label's text attribute.
func (n *Node) Text() string {
	return n.stringAttr("text")
}

// SetText sets a label's text attribute.
func (n *Node) SetText(s string) {
	n.SetAttr("text", s)
}

// textKey identifies one measured line.
type textKey struct {
	node       *Node
	line       string
	font       string
	lineHeight float64
}

func (n *Node) lineHeightAttr() float64 {
	lh := n.floatAttr("lineHeight")
	if math.IsNaN(lh) {
		return 0
	}
	return lh
}

// labelContentSize returns the explicit size when both dimensions are set
// and the measured text box otherwise. The measurement is kept in the
// textboxSize attribute until text, font or lineHeight change.
func (n *Node) labelContentSize() Size {
	size := n.sizeAttr()
	if !size.IsAuto() {
		return Size{math.Trunc(size.Width), math.Trunc(size.Height)}
	}
	box, _ := n.attrs.Get("textboxSize").(Size)
	if box.IsZero() {
		var cached bool
		box, cached = n.measureTextbox()
		if cached {
			n.begin()
			n.setAttr("textboxSize", box)
			n.end()
		}
	}
	return Size{math.Trunc(box.Width), math.Trunc(box.Height)}
}

// measureTextbox measures every line: the widest line and the sum of line
// heights. Off a layer there is no output context, so the estimate is
// reported as not cacheable.
func (n *Node) measureTextbox() (Size, bool) {
	font := n.stringAttr("font")
	lh := n.lineHeightAttr()
	var box Size
	for _, line := range strings.Split(n.Text(), "\n") {
		w, h := n.measureLine(line, font, lh)
		box.Width = math.Max(box.Width, w)
		box.Height += h
	}
	return box, n.Layer() != nil
}

// measureLine returns the width and height of one line of text. Results
// are memoized per layer. When the output context cannot measure, the
// width falls back to height times the character count.
func (n *Node) measureLine(line, font string, lineHeight float64) (float64, float64) {
	height := canvas.LeadingSize(font)
	if height > 0 {
		height += 2
	}
	l := n.Layer()
	if l == nil {
		return height * float64(utf8.RuneCountInString(line)), math.Max(height, lineHeight)
	}
	key := textKey{node: n, line: line, font: font, lineHeight: lineHeight}
	if v, ok := l.textCache.Get(key); ok {
		s := v.(Size)
		return s.Width, s.Height
	}
	width, err := l.OutputContext().MeasureText(font, line)
	if err != nil {
		Logger().Warn("canopy: text measurement failed, estimating",
			"font", font, "err", err)
		width = height * float64(utf8.RuneCountInString(line))
	}
	s := Size{width, math.Max(height, lineHeight)}
	l.textCache.Add(key, s)
	return s.Width, s.Height
}

// renderText draws a label's lines into its content-local context.
func (n *Node) renderText(ctx canvas.Context) {
	text := n.Text()
	if text == "" {
		return
	}
	font := n.stringAttr("font")
	lh := n.lineHeightAttr()
	size := n.ContentSize()
	bw := n.borderAttr().Width

	ctx.SetFont(font)
	var style canvas.Paint = n.colorAttr("color")
	if g := n.gradientsAttr().Text; g != nil {
		style = g.Resolve(geom.Rect{X: bw, Y: bw, Width: size.Width, Height: size.Height})
	}
	ctx.SetFillStyle(style)
	ctx.SetStrokeStyle(style)

	align := n.stringAttr("textAlign")
	stroke := n.stringAttr("renderMode") == "stroke"
	top := bw
	for _, line := range strings.Split(text, "\n") {
		w, h := n.measureLine(line, font, lh)
		left := bw
		switch align {
		case "center":
			left += (size.Width - w) / 2
		case "right":
			left += size.Width - w
		}
		var err error
		if stroke {
			err = ctx.StrokeText(line, left, top+h/2)
		} else {
			err = ctx.FillText(line, left, top+h/2)
		}
		if err != nil {
			Logger().Warn("canopy: draw text", "serial", n.serial, "err", err)
		}
		top += h
	}
}
