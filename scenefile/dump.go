package scenefile

import (
	"fmt"
	"io"
	"reflect"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/canopy"
	"github.com/phanxgames/canopy/canvas"
	"github.com/phanxgames/canopy/geom"
)

// derived attributes are recomputed on load and never written.
var derived = map[string]bool{"textboxSize": true}

// Dump writes the layer's nodes as a document. Attributes equal to their
// defaults are omitted. Running animations are not written.
func Dump(w io.Writer, layer *canopy.Layer) error {
	doc := Document{}
	for _, n := range layer.Children() {
		doc.Nodes = append(doc.Nodes, fromNode(n))
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("scenefile: %w", err)
	}
	return enc.Close()
}

func fromNode(n *canopy.Node) Node {
	out := Node{Type: n.Type.String()}
	schema := n.Schema()
	attrs := n.Attrs()
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if derived[k] {
			continue
		}
		v := attrs[k]
		if d, ok := schema.Lookup(k); ok && reflect.DeepEqual(d.Default, v) {
			continue
		}
		if out.Attrs == nil {
			out.Attrs = make(map[string]any)
		}
		out.Attrs[k] = plain(v)
	}
	for _, c := range n.Children() {
		out.Children = append(out.Children, fromNode(c))
	}
	return out
}

// plain converts attribute values to the data forms the decoders accept.
func plain(v any) any {
	switch v := v.(type) {
	case canopy.Size:
		return []any{dim(v.Width), dim(v.Height)}
	case canopy.Padding:
		return []float64{v.Top, v.Right, v.Bottom, v.Left}
	case canopy.Border:
		return []any{v.Width, v.Color.String()}
	case canvas.Color:
		return v.String()
	case geom.Vec2:
		return []float64{v.X, v.Y}
	case geom.Matrix:
		return v[:]
	case geom.Rect:
		return []float64{v.X, v.Y, v.Width, v.Height}
	case canopy.Gradients:
		m := map[string]any{}
		for name, g := range map[string]*canvas.LinearGradient{
			"border":  v.Border,
			"bgcolor": v.Bgcolor,
			"text":    v.Text,
		} {
			if g != nil {
				m[name] = plainGradient(g)
			}
		}
		return m
	}
	return v
}

func dim(d float64) any {
	if d == canopy.Auto {
		return "auto"
	}
	return d
}

func plainGradient(g *canvas.LinearGradient) map[string]any {
	m := map[string]any{}
	if g.Vector != nil {
		m["vector"] = g.Vector
	}
	if g.Rect != nil {
		m["rect"] = plain(*g.Rect)
	}
	stops := make([]any, len(g.Colors))
	for i, s := range g.Colors {
		stops[i] = []any{s.Offset, s.Color.String()}
	}
	m["colors"] = stops
	return m
}
