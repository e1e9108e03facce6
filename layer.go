package canopy

import (
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/phanxgames/canopy/canvas"
)

// textCacheSize bounds the per-layer text measurement memo.
const textCacheSize = 1024

// Layer is the root of a node tree. It owns the timeline that drives
// animations, the output context used for text measurement and the set of
// nodes waiting to be repainted. Hosts call Tick and Draw once per frame.
type Layer struct {
	kids     container
	timeline *Timeline
	output   canvas.Context
	dirty    map[*Node]struct{}
	debug    bool

	textCache *lru.Cache
}

// NewLayer creates an empty layer. output is used only to measure text;
// nil selects a canvas.Recorder, which estimates widths from font size.
func NewLayer(output canvas.Context) *Layer {
	if output == nil {
		output = canvas.NewRecorder()
	}
	cache, err := lru.New(textCacheSize)
	if err != nil {
		panic("canopy: " + err.Error())
	}
	return &Layer{
		kids:      container{sorted: true},
		timeline:  NewTimeline(),
		output:    output,
		dirty:     make(map[*Node]struct{}),
		textCache: cache,
	}
}

// Layer implements Parent.
func (l *Layer) Layer() *Layer {
	return l
}

// Timeline returns the layer's clock.
func (l *Layer) Timeline() *Timeline {
	return l.timeline
}

// OutputContext returns the context used for text measurement.
func (l *Layer) OutputContext() canvas.Context {
	return l.output
}

// SetOutputContext replaces the measurement context and forgets every
// cached measurement.
func (l *Layer) SetOutputContext(ctx canvas.Context) {
	l.output = ctx
	l.textCache.Purge()
}

// SetDebugMode enables per-frame stats and tree-shape warnings, logged
// through Logger at debug and warn level.
func (l *Layer) SetDebugMode(enabled bool) {
	l.debug = enabled
}

// AppendChild adds child on top of the layer's children. See
// Node.AppendChild.
func (l *Layer) AppendChild(child *Node) {
	attach(l, &l.kids, child, -1)
}

// InsertChild adds child at index in insertion order.
func (l *Layer) InsertChild(child *Node, index int) {
	attach(l, &l.kids, child, index)
}

// RemoveChild detaches child, cancelling its animations first.
func (l *Layer) RemoveChild(child *Node) {
	detach(l, &l.kids, child)
}

// Children returns the top-level nodes in insertion order. The returned
// slice must not be mutated.
func (l *Layer) Children() []*Node {
	return l.kids.children
}

func (l *Layer) childrenChanged() {
	l.kids.sorted = false
}

// Update implements Parent by marking child dirty. Repeated requests
// within one frame collapse into one.
func (l *Layer) Update(child *Node) {
	l.dirty[child] = struct{}{}
}

// IsDirty implements Parent.
func (l *Layer) IsDirty(child *Node) bool {
	_, ok := l.dirty[child]
	return ok
}

// NeedsRender reports whether any node requested a repaint since the last
// Draw.
func (l *Layer) NeedsRender() bool {
	return len(l.dirty) > 0
}

// forget drops the dirty mark and the memoized text measurements held for
// child and its descendants.
func (l *Layer) forget(child *Node) {
	delete(l.dirty, child)
	gone := make(map[*Node]bool)
	var mark func(n *Node)
	mark = func(n *Node) {
		gone[n] = true
		for _, c := range n.kids.children {
			mark(c)
		}
	}
	mark(child)
	for _, k := range l.textCache.Keys() {
		if key, ok := k.(textKey); ok && gone[key.node] {
			l.textCache.Remove(k)
		}
	}
}

// Tick advances the timeline by dt milliseconds, which runs animations
// and their completion callbacks.
func (l *Layer) Tick(dt float64) {
	l.timeline.Advance(dt)
}

// Draw paints every child in z order onto ctx at the timeline's current
// time, runs their paint callbacks and clears the dirty set.
func (l *Layer) Draw(ctx canvas.Context) {
	var stats debugStats
	var t0 time.Time
	if l.debug {
		t0 = time.Now()
		stats.dirtyCount = len(l.dirty)
	}

	t := l.timeline.CurrentTime()
	l.dirty = make(map[*Node]struct{})
	for _, c := range l.kids.sortedChildren() {
		drawChild(t, ctx, c)
		if l.debug {
			stats.nodesDrawn += countNodes(c)
		}
	}

	if l.debug {
		stats.drawTime = time.Since(t0)
		stats.animations = l.timeline.Len()
		l.debugLog(stats)
	}
}

// Dispatch hit tests evt, whose LayerX/LayerY must be set, against the
// children from the top down, descending into groups. The hit node is
// stored in evt.Target, receives the event through its OnPointer hook and
// is returned. Dispatch returns nil when nothing is hit.
func (l *Layer) Dispatch(evt *Event) *Node {
	order := l.kids.sortedChildren()
	for i := len(order) - 1; i >= 0; i-- {
		sub := *evt
		sub.Space = SpaceLayer
		if t := order[i].hit(&sub); t != nil {
			*evt = sub
			evt.Target = t
			if t.hooks.OnPointer != nil {
				t.hooks.OnPointer(t, evt)
			}
			return t
		}
	}
	return nil
}

// Find returns the first node, depth first, whose id attribute is id.
func (l *Layer) Find(id string) *Node {
	return findIn(l.kids.children, id)
}

func findIn(nodes []*Node, id string) *Node {
	for _, n := range nodes {
		if n.ID() == id {
			return n
		}
		if f := findIn(n.kids.children, id); f != nil {
			return f
		}
	}
	return nil
}
