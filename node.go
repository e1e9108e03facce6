package canopy

import (
	"math"

	"github.com/phanxgames/canopy/canvas"
	"github.com/phanxgames/canopy/geom"
)

// Parent is anything a Node can be attached to: a *Layer or a group Node.
type Parent interface {
	// Update requests that child be repainted.
	Update(child *Node)
	// IsDirty reports whether child has a pending repaint.
	IsDirty(child *Node) bool
	// Layer returns the layer at the root of the parent chain, or nil.
	Layer() *Layer
}

// Options configures a Node at construction. Every field is optional.
type Options struct {
	// Attrs are merged over the schema defaults.
	Attrs map[string]any
	// Schema replaces the node kind's schema. It must extend it.
	Schema *Schema

	OnAttributeChanged func(n *Node, name string, old, value any)
	OnConnected        func(n *Node, parent Parent)
	OnDisconnected     func(n *Node, parent Parent)
	// OnPointer receives events dispatched to the node by Layer.Dispatch.
	OnPointer func(n *Node, evt *Event)
	// RenderContent draws sprite content after the box, in content-local
	// coordinates. Only valid for sprites.
	RenderContent func(n *Node, t float64, ctx canvas.Context)
}

// serialCounter is a plain counter; the scene graph is single-threaded.
var serialCounter uint32

func nextSerial() uint32 {
	serialCounter++
	return serialCounter
}

// Node is a scene graph element. A single flat struct serves every node
// type; Type selects label and group behavior.
type Node struct {
	Type NodeType

	serial uint32
	attrs  *Attrs
	hooks  Options

	parent Parent
	kids   container // groups only

	animations []*animationBinding
	renderers  []*Renderer
	paths      []*canvas.Path
	context    canvas.Context
	cache      canvas.Context

	// batch counts nested mutating calls; dirty is set when one of them
	// changed a repaint attribute.
	batch int
	dirty bool
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180
}

// transformEffect rebuilds the transform attribute from the shorthand
// attributes.
func transformEffect(n *Node, _, _ any) {
	rot, _ := n.attrs.Get("rotate").(float64)
	scale, ok := n.attrs.Get("scale").(geom.Vec2)
	if !ok {
		scale = geom.Vec2{X: 1, Y: 1}
	}
	tr, _ := n.attrs.Get("translate").(geom.Vec2)
	skew, _ := n.attrs.Get("skew").(geom.Vec2)
	m := geom.Compose(tr, scale, geom.Vec2{X: degToRad(skew.X), Y: degToRad(skew.Y)}, degToRad(rot))
	n.setAttr("transform", m)
}

func zIndexEffect(n *Node, _, _ any) {
	if p, ok := n.parent.(interface{ childrenChanged() }); ok {
		p.childrenChanged()
	}
}

// boxSchema declares the attributes every node has.
var boxSchema = NewSchema("box",
	Descriptor{Name: "size", Default: Size{Auto, Auto}, Decode: decodeSize},
	Descriptor{Name: "padding", Default: Padding{}, Decode: decodePadding},
	Descriptor{Name: "border", Default: Border{}, Decode: decodeBorder},
	Descriptor{Name: "borderRadius", Default: 0.0, Decode: decodeFloat},
	Descriptor{Name: "bgcolor", Default: canvas.Transparent, Decode: decodeColor},
	Descriptor{Name: "anchor", Default: geom.Vec2{}, Decode: decodeVec},
	Descriptor{Name: "pos", Default: geom.Vec2{}, Decode: decodeVec},
	Descriptor{Name: "transform", Default: geom.Identity, Decode: decodeMatrix},
	Descriptor{Name: "linearGradients", Default: Gradients{}, Decode: decodeGradients},
	Descriptor{Name: "id", Default: "", Change: Silent, Decode: decodeString},
	Descriptor{Name: "name", Default: "", Change: Silent, Decode: decodeString},
	Descriptor{Name: "zIndex", Default: 0, Effect: zIndexEffect, Decode: decodeInt},
	Descriptor{Name: "rotate", Default: 0.0, Change: Custom, Effect: transformEffect, Decode: decodeFloat},
	Descriptor{Name: "scale", Default: geom.Vec2{X: 1, Y: 1}, Change: Custom, Effect: transformEffect, Decode: decodeVec},
	Descriptor{Name: "translate", Default: geom.Vec2{}, Change: Custom, Effect: transformEffect, Decode: decodeVec},
	Descriptor{Name: "skew", Default: geom.Vec2{}, Change: Custom, Effect: transformEffect, Decode: decodeVec},
)

// BoxSchema returns the schema shared by every node kind. Custom node
// schemas are built by extending it or one of the kind schemas.
func BoxSchema() *Schema {
	return boxSchema
}

func newNode(t NodeType, kind *Schema, opts Options) *Node {
	schema := kind
	if opts.Schema != nil {
		if !opts.Schema.Extends(kind) {
			panic("canopy: schema " + opts.Schema.Name() + " does not extend " + kind.Name())
		}
		schema = opts.Schema
	}
	if opts.RenderContent != nil && t != NodeTypeSprite {
		panic("canopy: RenderContent is only valid on sprites")
	}
	n := &Node{
		Type:   t,
		serial: nextSerial(),
		attrs:  newAttrs(schema),
		hooks:  opts,
	}
	n.hooks.Attrs = nil
	if t == NodeTypeGroup {
		n.kids.sorted = true
	}
	if len(opts.Attrs) > 0 {
		n.SetAttrs(opts.Attrs)
	}
	return n
}

// NewSprite creates a sprite node: a box with border and background.
func NewSprite(opts Options) *Node {
	return newNode(NodeTypeSprite, boxSchema, opts)
}

// Serial returns a number unique to this node within the process.
func (n *Node) Serial() uint32 {
	return n.serial
}

// ID returns the id attribute.
func (n *Node) ID() string {
	s, _ := n.attrs.Get("id").(string)
	return s
}

// Name returns the name attribute.
func (n *Node) Name() string {
	s, _ := n.attrs.Get("name").(string)
	return s
}

// Schema returns the node's attribute schema.
func (n *Node) Schema() *Schema {
	return n.attrs.schema
}

// Parent returns the node's parent, or nil when detached.
func (n *Node) Parent() Parent {
	return n.parent
}

// Layer returns the layer the node is attached to, directly or through
// groups, or nil.
func (n *Node) Layer() *Layer {
	if n.parent == nil {
		return nil
	}
	return n.parent.Layer()
}

// Timeline returns the timeline of the node's layer, or nil.
func (n *Node) Timeline() *Timeline {
	if l := n.Layer(); l != nil {
		return l.Timeline()
	}
	return nil
}

// --- Attributes ---

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) any {
	return n.attrs.Get(name)
}

// Attrs returns a copy of every attribute value.
func (n *Node) Attrs() map[string]any {
	return n.attrs.Serialize()
}

// SetAttr sets one attribute. Declared attributes are decoded first, so
// plain values such as []any{10, 20} for "size" are accepted; values that
// fail to decode are stored as given. Setting an undeclared name stores it
// with no effect.
func (n *Node) SetAttr(name string, value any) {
	n.begin()
	n.setAttr(name, value)
	n.end()
}

// SetAttrs sets several attributes in schema order and requests at most
// one repaint.
func (n *Node) SetAttrs(values map[string]any) {
	n.begin()
	for _, name := range n.attrs.orderedKeys(values) {
		n.setAttr(name, values[name])
	}
	n.end()
}

// DecodeAttrs is like SetAttrs but fails, without applying anything, when
// a value cannot be decoded.
func (n *Node) DecodeAttrs(values map[string]any) error {
	decoded := make(map[string]any, len(values))
	for name, raw := range values {
		v, err := n.attrs.schema.Decode(name, raw)
		if err != nil {
			return err
		}
		decoded[name] = v
	}
	n.SetAttrs(decoded)
	return nil
}

// RemoveAttr resets a declared attribute to its default and deletes an
// undeclared one.
func (n *Node) RemoveAttr(name string) {
	n.begin()
	old, changed := n.attrs.remove(name)
	if changed {
		n.applyChange(name, old, n.attrs.Get(name))
	}
	n.end()
}

func (n *Node) setAttr(name string, value any) {
	if d, ok := n.attrs.schema.Lookup(name); ok && d.Decode != nil {
		if v, err := d.Decode(value); err == nil {
			value = v
		}
	}
	old, changed := n.attrs.set(name, value)
	if changed {
		n.applyChange(name, old, value)
	}
}

func (n *Node) applyChange(name string, old, value any) {
	if d, ok := n.attrs.schema.Lookup(name); ok {
		switch d.Change {
		case Repaint:
			if d.Effect != nil {
				d.Effect(n, old, value)
			}
			n.dirty = true
		case Custom:
			if d.Effect != nil {
				d.Effect(n, old, value)
			}
		}
	}
	if n.hooks.OnAttributeChanged != nil {
		n.hooks.OnAttributeChanged(n, name, old, value)
	}
}

func (n *Node) begin() {
	n.batch++
}

func (n *Node) end() {
	n.batch--
	if n.batch == 0 && n.dirty {
		n.dirty = false
		n.ForceUpdate(false)
	}
}

// ForceUpdate requests a repaint from the node's parent. A group parent is
// repainted as a whole; a layer marks the node dirty. clearCache drops the
// node's cached context first.
func (n *Node) ForceUpdate(clearCache bool) {
	if clearCache {
		n.cache = nil
	}
	switch p := n.parent.(type) {
	case nil:
	case *Node:
		p.ForceUpdate(true)
	default:
		p.Update(n)
	}
}

// NeedsRepaint reports whether the node has a repaint pending in its layer.
func (n *Node) NeedsRepaint() bool {
	if n.parent == nil {
		return false
	}
	return n.parent.IsDirty(n)
}

// SetCache stores a host-owned cached rendering of the node.
func (n *Node) SetCache(c canvas.Context) {
	n.cache = c
}

// Cache returns the cached rendering set with SetCache, or nil.
func (n *Node) Cache() canvas.Context {
	return n.cache
}

// --- Typed attribute reads; malformed values read as NaN ---

func (n *Node) floatAttr(name string) float64 {
	switch v := n.attrs.Get(name).(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return math.NaN()
}

func (n *Node) vecAttr(name string) geom.Vec2 {
	if v, ok := n.attrs.Get(name).(geom.Vec2); ok {
		return v
	}
	return geom.Vec2{X: math.NaN(), Y: math.NaN()}
}

func (n *Node) sizeAttr() Size {
	if v, ok := n.attrs.Get("size").(Size); ok {
		return v
	}
	return nanSize
}

func (n *Node) paddingAttr() Padding {
	if v, ok := n.attrs.Get("padding").(Padding); ok {
		return v
	}
	nan := math.NaN()
	return Padding{nan, nan, nan, nan}
}

func (n *Node) borderAttr() Border {
	if v, ok := n.attrs.Get("border").(Border); ok {
		return v
	}
	return Border{Width: math.NaN()}
}

func (n *Node) gradientsAttr() Gradients {
	g, _ := n.attrs.Get("linearGradients").(Gradients)
	return g
}

func (n *Node) colorAttr(name string) canvas.Color {
	c, _ := n.attrs.Get(name).(canvas.Color)
	return c
}

func (n *Node) stringAttr(name string) string {
	s, _ := n.attrs.Get(name).(string)
	return s
}

func (n *Node) zIndex() int {
	z, _ := n.attrs.Get("zIndex").(int)
	return z
}

// --- Snapshots ---

// Snapshot is a plain copy of a node's state.
type Snapshot struct {
	Type     NodeType
	Attrs    map[string]any
	Children []Snapshot
}

// Serialize returns a snapshot of the node's attributes and, for groups,
// its children in insertion order.
func (n *Node) Serialize() Snapshot {
	s := Snapshot{Type: n.Type, Attrs: n.attrs.Serialize()}
	for _, c := range n.kids.children {
		s.Children = append(s.Children, c.Serialize())
	}
	return s
}

// CloneNode returns a detached node of the same kind, schema, hooks and
// attributes. Children, paint callbacks and animations are not copied.
func (n *Node) CloneNode() *Node {
	opts := n.hooks
	opts.Schema = n.attrs.schema
	c := &Node{
		Type:   n.Type,
		serial: nextSerial(),
		attrs:  &Attrs{schema: n.attrs.schema, values: n.attrs.Serialize()},
		hooks:  opts,
	}
	if c.Type == NodeTypeGroup {
		c.kids.sorted = true
	}
	return c
}
