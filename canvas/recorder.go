package canvas

import (
	"errors"
	"unicode/utf8"

	"github.com/phanxgames/canopy/geom"
)

// OpKind identifies a recorded drawing operation.
type OpKind uint8

const (
	OpSave OpKind = iota
	OpRestore
	OpTranslate
	OpTransform
	OpSetLineWidth
	OpSetStrokeStyle
	OpSetFillStyle
	OpStroke
	OpFill
	OpSetFont
	OpFillText
	OpStrokeText
)

var opNames = [...]string{
	OpSave:           "Save",
	OpRestore:        "Restore",
	OpTranslate:      "Translate",
	OpTransform:      "Transform",
	OpSetLineWidth:   "SetLineWidth",
	OpSetStrokeStyle: "SetStrokeStyle",
	OpSetFillStyle:   "SetFillStyle",
	OpStroke:         "Stroke",
	OpFill:           "Fill",
	OpSetFont:        "SetFont",
	OpFillText:       "FillText",
	OpStrokeText:     "StrokeText",
}

func (k OpKind) String() string {
	if int(k) < len(opNames) {
		return opNames[k]
	}
	return "Unknown"
}

// Op is one recorded operation. CTM is the transform in effect when the
// operation was issued, after the operation itself for Translate and
// Transform.
type Op struct {
	Kind      OpKind
	CTM       geom.Matrix
	X, Y      float64
	Matrix    geom.Matrix
	LineWidth float64
	Paint     Paint
	Path      *Path
	Text      string
	Font      string
}

// ErrMeasureUnsupported is returned by measure functions that cannot
// measure text.
var ErrMeasureUnsupported = errors.New("canvas: text measurement unsupported")

type recorderState struct {
	ctm       geom.Matrix
	lineWidth float64
	fill      Paint
	stroke    Paint
	font      string
}

// Recorder is a Context that records operations instead of drawing. It
// tracks the current transform so tests can check where things land.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	Ops []Op

	// Measure overrides text measurement. When nil, text is estimated as
	// half the font size per character.
	Measure func(font, s string) (float64, error)

	state recorderState
	stack []recorderState
}

var _ Context = (*Recorder)(nil)

// NewRecorder returns a Recorder with identity transform, black styles,
// 1px lines and the default font.
func NewRecorder() *Recorder {
	return &Recorder{state: recorderState{
		ctm:       geom.Identity,
		lineWidth: 1,
		fill:      Black,
		stroke:    Black,
		font:      DefaultFont,
	}}
}

func (r *Recorder) push(op Op) {
	op.CTM = r.state.ctm
	r.Ops = append(r.Ops, op)
}

// Reset discards the recorded operations and restores the initial state.
func (r *Recorder) Reset() {
	measure := r.Measure
	*r = *NewRecorder()
	r.Measure = measure
}

// Kinds returns the kinds of the recorded operations, in order.
func (r *Recorder) Kinds() []OpKind {
	kinds := make([]OpKind, len(r.Ops))
	for i, op := range r.Ops {
		kinds[i] = op.Kind
	}
	return kinds
}

// Count returns how many operations of kind k were recorded.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// CTM returns the current transform.
func (r *Recorder) CTM() geom.Matrix {
	return r.state.ctm
}

// Depth returns the number of unmatched Save calls.
func (r *Recorder) Depth() int {
	return len(r.stack)
}

// Save pushes the drawing state.
func (r *Recorder) Save() {
	r.stack = append(r.stack, r.state)
	r.push(Op{Kind: OpSave})
}

// Restore pops the drawing state. Unbalanced calls are ignored.
func (r *Recorder) Restore() {
	if n := len(r.stack); n > 0 {
		r.state = r.stack[n-1]
		r.stack = r.stack[:n-1]
	}
	r.push(Op{Kind: OpRestore})
}

// Translate moves the origin by (x, y).
func (r *Recorder) Translate(x, y float64) {
	r.state.ctm = r.state.ctm.Multiply(geom.Translate(x, y))
	r.push(Op{Kind: OpTranslate, X: x, Y: y})
}

// Transform multiplies the current transform by m.
func (r *Recorder) Transform(m geom.Matrix) {
	r.state.ctm = r.state.ctm.Multiply(m)
	r.push(Op{Kind: OpTransform, Matrix: m})
}

// SetLineWidth sets the stroke width in user units.
func (r *Recorder) SetLineWidth(w float64) {
	r.state.lineWidth = w
	r.push(Op{Kind: OpSetLineWidth, LineWidth: w})
}

// SetStrokeStyle sets the paint used by Stroke and StrokeText.
func (r *Recorder) SetStrokeStyle(p Paint) {
	r.state.stroke = p
	r.push(Op{Kind: OpSetStrokeStyle, Paint: p})
}

// SetFillStyle sets the paint used by Fill and FillText.
func (r *Recorder) SetFillStyle(p Paint) {
	r.state.fill = p
	r.push(Op{Kind: OpSetFillStyle, Paint: p})
}

// Stroke records a stroke of a copy of p.
func (r *Recorder) Stroke(p *Path) error {
	r.push(Op{Kind: OpStroke, Path: p.Clone(), Paint: r.state.stroke, LineWidth: r.state.lineWidth})
	return nil
}

// Fill records a fill of a copy of p.
func (r *Recorder) Fill(p *Path) error {
	r.push(Op{Kind: OpFill, Path: p.Clone(), Paint: r.state.fill})
	return nil
}

// SetFont sets the CSS font shorthand used for text.
func (r *Recorder) SetFont(font string) {
	r.state.font = font
	r.push(Op{Kind: OpSetFont, Font: font})
}

// FillText records s drawn with the fill style.
func (r *Recorder) FillText(s string, x, y float64) error {
	r.push(Op{Kind: OpFillText, Text: s, X: x, Y: y, Font: r.state.font, Paint: r.state.fill})
	return nil
}

// StrokeText records s drawn with the stroke style.
func (r *Recorder) StrokeText(s string, x, y float64) error {
	r.push(Op{Kind: OpStrokeText, Text: s, X: x, Y: y, Font: r.state.font, Paint: r.state.stroke})
	return nil
}

// MeasureText calls Measure when set and otherwise estimates half
// the font size per rune.
func (r *Recorder) MeasureText(font, s string) (float64, error) {
	if r.Measure != nil {
		return r.Measure(font, s)
	}
	size := LeadingSize(font)
	if f, err := ParseFont(font); err == nil {
		size = f.Size
	}
	return float64(utf8.RuneCountInString(s)) * size / 2, nil
}
