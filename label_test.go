package canopy

import (
	"testing"

	"github.com/phanxgames/canopy/canvas"
)

func TestLabelSizeOffLayerIsEstimated(t *testing.T) {
	n := NewLabel("abc", Options{})
	// 16px font: line height 18, width 18 per character.
	if got := n.ContentSize(); got != (Size{54, 18}) {
		t.Errorf("ContentSize = %v, want {54 18}", got)
	}
	if got := n.Attr("textboxSize"); got != (Size{}) {
		t.Errorf("textboxSize = %v, want unset off a layer", got)
	}
}

func TestLabelSizeMeasured(t *testing.T) {
	l := NewLayer(nil)
	n := NewLabel("abc", Options{})
	l.AppendChild(n)
	// The default recorder measures half the font size per character.
	if got := n.ContentSize(); got != (Size{24, 18}) {
		t.Errorf("ContentSize = %v, want {24 18}", got)
	}
	if got := n.Attr("textboxSize"); got != (Size{24, 18}) {
		t.Errorf("textboxSize = %v, want the measured box", got)
	}
}

func TestLabelTextboxReset(t *testing.T) {
	l := NewLayer(nil)
	n := NewLabel("abc", Options{})
	l.AppendChild(n)
	n.ContentSize()

	n.SetAttr("id", "title")
	if got := n.Attr("textboxSize"); got != (Size{24, 18}) {
		t.Errorf("id change reset textboxSize to %v", got)
	}

	for _, change := range []struct {
		name  string
		value any
	}{
		{"font", "20px Arial"},
		{"text", "abcd"},
		{"lineHeight", 40},
	} {
		n.ContentSize()
		n.SetAttr(change.name, change.value)
		if got := n.Attr("textboxSize"); got != (Size{}) {
			t.Errorf("%s change left textboxSize = %v", change.name, got)
		}
	}
	// 20px font, four characters, 40px lines
	if got := n.ContentSize(); got != (Size{40, 40}) {
		t.Errorf("ContentSize = %v, want {40 40}", got)
	}
}

func TestLabelMeasureFailureFallsBack(t *testing.T) {
	rec := canvas.NewRecorder()
	rec.Measure = func(font, s string) (float64, error) {
		return 0, canvas.ErrMeasureUnsupported
	}
	l := NewLayer(rec)
	n := NewLabel("héllo", Options{})
	l.AppendChild(n)
	if got := n.ContentSize(); got != (Size{90, 18}) {
		t.Errorf("ContentSize = %v, want {90 18}", got)
	}
}

func TestLabelMultiline(t *testing.T) {
	l := NewLayer(nil)
	n := NewLabel("ab\nabcd", Options{})
	l.AppendChild(n)
	if got := n.ContentSize(); got != (Size{32, 36}) {
		t.Errorf("ContentSize = %v, want {32 36}", got)
	}
}

func TestLabelExplicitSizeWins(t *testing.T) {
	l := NewLayer(nil)
	n := NewLabel("abc", Options{Attrs: map[string]any{"size": []any{100, 40}}})
	l.AppendChild(n)
	if got := n.ContentSize(); got != (Size{100, 40}) {
		t.Errorf("ContentSize = %v, want {100 40}", got)
	}
	n.SetAttr("text", "a much longer line of text")
	if got := n.ContentSize(); got != (Size{100, 40}) {
		t.Errorf("ContentSize after text change = %v, want {100 40}", got)
	}
}

func TestLabelMeasurementsAreCached(t *testing.T) {
	calls := 0
	rec := canvas.NewRecorder()
	rec.Measure = func(font, s string) (float64, error) {
		calls++
		return 10, nil
	}
	l := NewLayer(rec)
	n := NewLabel("abc", Options{})
	l.AppendChild(n)

	n.ContentSize()
	n.ContentSize()
	l.Draw(canvas.NewRecorder())
	if calls != 1 {
		t.Errorf("measure calls = %d, want 1", calls)
	}

	n.SetText("xyz")
	n.ContentSize()
	n.SetText("abc")
	n.ContentSize()
	if calls != 2 {
		t.Errorf("measure calls = %d, want 2", calls)
	}

	l.SetOutputContext(rec)
	n.SetText("xyz")
	n.ContentSize()
	if calls != 3 {
		t.Errorf("measure calls = %d after purge, want 3", calls)
	}
}

func TestDetachedLabelLeavesTextCache(t *testing.T) {
	cached := func(l *Layer, n *Node) int {
		count := 0
		for _, k := range l.textCache.Keys() {
			if k.(textKey).node == n {
				count++
			}
		}
		return count
	}

	tests := []struct {
		name   string
		nested bool
	}{
		{"layer child", false},
		{"inside group", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLayer(canvas.NewRecorder())
			keep := NewLabel("stays", Options{})
			gone := NewLabel("one\ntwo", Options{})
			l.AppendChild(keep)
			g := NewGroup(Options{})
			if tt.nested {
				l.AppendChild(g)
				g.AppendChild(gone)
			} else {
				l.AppendChild(gone)
			}
			keep.ContentSize()
			gone.ContentSize()
			if got := cached(l, gone); got != 2 {
				t.Fatalf("cached lines = %d, want 2", got)
			}

			gone.Remove()
			if got := cached(l, gone); got != 0 {
				t.Errorf("detached label still has %d cached lines", got)
			}
			if got := cached(l, keep); got != 1 {
				t.Errorf("attached label lost its cache entry: %d", got)
			}
		})
	}
}

func textOps(rec *canvas.Recorder) []canvas.Op {
	var ops []canvas.Op
	for _, op := range rec.Ops {
		if op.Kind == canvas.OpFillText || op.Kind == canvas.OpStrokeText {
			ops = append(ops, op)
		}
	}
	return ops
}

func TestLabelAlignment(t *testing.T) {
	tests := []struct {
		align string
		wantX float64
	}{
		{"left", 0},
		{"center", 42},
		{"right", 84},
	}
	for _, tt := range tests {
		t.Run(tt.align, func(t *testing.T) {
			l := NewLayer(nil)
			n := NewLabel("ab", Options{Attrs: map[string]any{
				"size":      []any{100, 20},
				"textAlign": tt.align,
			}})
			l.AppendChild(n)
			rec := canvas.NewRecorder()
			l.Draw(rec)

			ops := textOps(rec)
			if len(ops) != 1 {
				t.Fatalf("text ops = %d, want 1", len(ops))
			}
			assertNear(t, "x", ops[0].X, tt.wantX)
			assertNear(t, "y", ops[0].Y, 9)
			if ops[0].Font != canvas.DefaultFont {
				t.Errorf("font = %q", ops[0].Font)
			}
		})
	}
}

func TestLabelBorderOffsetsText(t *testing.T) {
	l := NewLayer(nil)
	n := NewLabel("ab", Options{Attrs: map[string]any{"border": 3}})
	l.AppendChild(n)
	rec := canvas.NewRecorder()
	l.Draw(rec)

	ops := textOps(rec)
	if len(ops) != 1 {
		t.Fatalf("text ops = %d, want 1", len(ops))
	}
	assertNear(t, "x", ops[0].X, 3)
	assertNear(t, "y", ops[0].Y, 12)
}

func TestLabelStrokeAndGradient(t *testing.T) {
	l := NewLayer(nil)
	n := NewLabel("a\nb", Options{Attrs: map[string]any{
		"renderMode": "stroke",
		"linearGradients": map[string]any{
			"text": map[string]any{"colors": []any{[]any{0, "red"}, []any{1, "blue"}}},
		},
	}})
	l.AppendChild(n)
	rec := canvas.NewRecorder()
	l.Draw(rec)

	ops := textOps(rec)
	if len(ops) != 2 {
		t.Fatalf("text ops = %d, want one per line", len(ops))
	}
	for _, op := range ops {
		if op.Kind != canvas.OpStrokeText {
			t.Errorf("op = %v, want StrokeText", op.Kind)
		}
	}
	assertNear(t, "second line y", ops[1].Y, 27)
	for _, op := range rec.Ops {
		if op.Kind == canvas.OpSetStrokeStyle {
			if _, ok := op.Paint.(*canvas.Gradient); !ok {
				t.Errorf("stroke style = %T, want gradient", op.Paint)
			}
		}
	}
}

func TestLabelEmptyTextDrawsNoText(t *testing.T) {
	l := NewLayer(nil)
	n := NewLabel("", Options{Attrs: map[string]any{"size": []any{10, 10}}})
	l.AppendChild(n)
	rec := canvas.NewRecorder()
	l.Draw(rec)
	if len(textOps(rec)) != 0 {
		t.Error("empty label drew text")
	}
}
