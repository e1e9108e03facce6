package scenefile

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/phanxgames/canopy"
	"github.com/phanxgames/canopy/canvas"
	"github.com/phanxgames/canopy/geom"
)

const panel = `
nodes:
  - type: group
    attrs: {id: panel, pos: [20, 20], padding: 8}
    children:
      - type: sprite
        attrs: {id: box, size: [10, 10], bgcolor: red}
        animations:
          - keyframes: [{borderRadius: 0}, {borderRadius: 10}]
            duration: 100
  - type: label
    attrs: {id: title, text: Hello, size: [80, 20]}
`

func TestLoad(t *testing.T) {
	layer := canopy.NewLayer(nil)
	if err := Load(strings.NewReader(panel), layer); err != nil {
		t.Fatal(err)
	}
	if got := len(layer.Children()); got != 2 {
		t.Fatalf("top-level nodes = %d, want 2", got)
	}

	g := layer.Find("panel")
	if g == nil || g.Type != canopy.NodeTypeGroup {
		t.Fatalf("panel = %v", g)
	}
	if got := g.Attr("padding"); got != (canopy.Padding{Top: 8, Right: 8, Bottom: 8, Left: 8}) {
		t.Errorf("padding = %v", got)
	}

	box := layer.Find("box")
	if box == nil {
		t.Fatal("box not found")
	}
	if box.Attr("bgcolor") != (canvas.Color{R: 1, A: 1}) {
		t.Errorf("bgcolor = %v", box.Attr("bgcolor"))
	}
	if len(box.Animations()) != 1 {
		t.Fatalf("animations = %d, want 1", len(box.Animations()))
	}
	layer.Tick(50)
	if r := box.Attr("borderRadius").(float64); math.Abs(r-5) > 1e-4 {
		t.Errorf("borderRadius = %v after half the animation", r)
	}

	title := layer.Find("title")
	if title == nil || title.Attr("text") != "Hello" {
		t.Errorf("title = %v", title)
	}
}

func TestBuildKeepsAnimationsPending(t *testing.T) {
	doc, err := Decode(strings.NewReader(panel))
	if err != nil {
		t.Fatal(err)
	}
	nodes, err := doc.Build()
	if err != nil {
		t.Fatal(err)
	}
	box := nodes[0].Children()[0]
	a := box.Animations()[0]
	if a.State() != canopy.AnimationIdle {
		t.Errorf("State = %v before attaching, want idle", a.State())
	}
	canopy.NewLayer(nil).AppendChild(nodes[0])
	if a.State() != canopy.AnimationRunning {
		t.Errorf("State = %v after attaching, want running", a.State())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown type", "nodes: [{type: circle}]", "unknown node type"},
		{"sprite children", "nodes: [{type: sprite, children: [{type: sprite}]}]", "cannot have children"},
		{"bad attribute", "nodes: [{type: sprite, attrs: {size: [1, 2, 3]}}]", "attribute size"},
		{"bad keyframes", "nodes: [{type: sprite, animations: [{keyframes: [], duration: 10}]}]", "animations[0]"},
		{"unknown field", "nodes: [{type: sprite, colour: red}]", "colour"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Load(strings.NewReader(tt.doc), canopy.NewLayer(nil))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestUnknownTypeIs(t *testing.T) {
	err := Load(strings.NewReader("nodes: [{type: group, children: [{type: blob}]}]"), canopy.NewLayer(nil))
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("err = %v, want ErrUnknownType", err)
	}
	if !strings.Contains(err.Error(), "nodes[0].children[0]") {
		t.Errorf("error %q lacks the node path", err)
	}
}

func TestEmptyDocument(t *testing.T) {
	layer := canopy.NewLayer(nil)
	if err := Load(strings.NewReader(""), layer); err != nil {
		t.Fatal(err)
	}
	if len(layer.Children()) != 0 {
		t.Error("empty document created nodes")
	}
}

func TestDumpRoundTrip(t *testing.T) {
	src := canopy.NewLayer(nil)
	g := canopy.NewGroup(canopy.Options{Attrs: map[string]any{"id": "g", "pos": []any{4, 5}}})
	s := canopy.NewSprite(canopy.Options{Attrs: map[string]any{
		"id":           "s",
		"size":         []any{"auto", 30},
		"padding":      []any{1, 2, 3, 4},
		"border":       []any{2, "blue"},
		"bgcolor":      "red",
		"anchor":       []any{0.5, 0.5},
		"rotate":       90,
		"borderRadius": 3,
		"linearGradients": map[string]any{
			"bgcolor": map[string]any{
				"vector": []any{0, 0, 10, 0},
				"colors": []any{[]any{0, "red"}, []any{1, "blue"}},
			},
		},
	}})
	g.AppendChild(s)
	src.AppendChild(g)

	var buf bytes.Buffer
	if err := Dump(&buf, src); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "skew") {
		t.Errorf("dump wrote a default attribute:\n%s", buf.String())
	}

	dst := canopy.NewLayer(nil)
	if err := Load(&buf, dst); err != nil {
		t.Fatalf("reloading dump: %v\n%s", err, buf.String())
	}
	for _, id := range []string{"g", "s"} {
		want, got := src.Find(id), dst.Find(id)
		if got == nil {
			t.Fatalf("%s missing after reload", id)
		}
		if diff := cmp.Diff(want.Attrs(), got.Attrs()); diff != "" {
			t.Errorf("%s attrs (-dumped +reloaded):\n%s", id, diff)
		}
	}
}

func TestPlain(t *testing.T) {
	tests := []struct {
		in   any
		want any
	}{
		{canopy.Size{Width: canopy.Auto, Height: 3}, []any{"auto", 3.0}},
		{geom.Vec2{X: 1, Y: 2}, []float64{1, 2}},
		{canvas.Color{R: 1, A: 0.5}, "rgba(255,0,0,0.5)"},
		{canopy.Border{Width: 1, Color: canvas.Black}, []any{1.0, "rgba(0,0,0,1)"}},
		{"text", "text"},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, plain(tt.in)); diff != "" {
			t.Errorf("plain(%v) (-want +got):\n%s", tt.in, diff)
		}
	}
}
