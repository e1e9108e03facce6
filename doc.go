// Package canopy is a retained-mode box model for 2D canvas scene graphs.
//
// Every visual element is a [Node]. A node owns a set of attributes, derives
// its box geometry and affine transform from them, paints a border and
// background (solid or gradient, optionally with rounded corners), and
// answers point-hit and oriented-box collision queries against what it
// painted last.
//
// # Quick start
//
//	layer := canopy.NewLayer(nil)
//	box := canopy.NewSprite(canopy.Options{Attrs: map[string]any{
//		"size":         canopy.Size{Width: 100, Height: 40},
//		"pos":          geom.Vec2{X: 20, Y: 20},
//		"bgcolor":      "#3366ff",
//		"border":       []any{2, "white"},
//		"borderRadius": 8,
//	}})
//	layer.AppendChild(box)
//
//	layer.Tick(16)
//	if layer.NeedsRender() {
//		layer.Draw(ctx) // ctx is any canvas.Context
//	}
//
// # Attributes
//
// Attributes are declared by a [Schema]. Each [Descriptor] says what a
// change does: [Repaint] asks the parent to repaint the node, [Silent] only
// stores the value, [Custom] runs the descriptor's Effect. Node kinds extend
// the box schema ([BoxSchema]); labels add text attributes and groups add
// nothing. Custom schemas extend a kind schema and are passed in
// [Options.Schema].
//
// Values may be given in their Go types ([Size], [Padding], [Border],
// [canvas.Color], [geom.Vec2], [geom.Matrix], [Gradients]) or as plain data,
// which is decoded: "size": []any{100, "auto"}, "padding": 4,
// "bgcolor": "rgba(0,0,0,0.5)".
//
// # Geometry
//
// The box model follows CSS: content size, plus padding gives the client
// size, plus twice the border width gives the offset size. The origin rect
// places the offset box relative to the anchor; the bound rect encloses it
// after the transform; the render rect is the bound rect moved to pos.
//
// # Painting
//
// [Layer.Draw] paints each child at its position and transform. [Node.Render]
// draws the box and then the node's content in content-local coordinates.
// Paint callbacks registered with [Node.Draw] and [Node.DrawOnce] run after
// the content. Paths created with [Node.CreatePath] while painting are hit
// tested by [Node.PointCollision].
//
// # Animation
//
// [Node.Animate] interpolates attributes through keyframes on the layer's
// [Timeline]. Animations created off-tree start when the node is attached
// and every animation is cancelled when it is detached.
//
// # Backends
//
// Drawing goes through [canvas.Context]. The ggcanvas package renders with
// gogpu/gg into images; the ebitencanvas package renders to Ebitengine
// screens and can host a layer in a window.
package canopy
