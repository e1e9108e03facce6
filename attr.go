package canopy

import (
	"fmt"
	"reflect"
	"sort"
)

// Change classifies what happens when an attribute's value changes.
type Change uint8

const (
	// Repaint runs the descriptor's Effect and then invalidates the node.
	Repaint Change = iota
	// Silent only stores the value.
	Silent
	// Custom runs the descriptor's Effect and nothing else.
	Custom
)

func (c Change) String() string {
	switch c {
	case Repaint:
		return "repaint"
	case Silent:
		return "silent"
	case Custom:
		return "custom"
	}
	return fmt.Sprintf("Change(%d)", uint8(c))
}

// Descriptor declares one attribute of a Schema.
type Descriptor struct {
	Name    string
	Default any
	Change  Change
	// Effect runs after the value is stored. It may set other attributes on
	// n; those writes are folded into the same invalidation request.
	Effect func(n *Node, old, value any)
	// Decode converts plain data (numbers, strings, lists and maps as found
	// in YAML or JSON) into the attribute's Go type. Values that already
	// have that type must pass through unchanged.
	Decode func(raw any) (any, error)
}

// Schema is an immutable chain of attribute descriptors. A schema built
// with Extend sees every attribute of its parent and may override them by
// name; its parent and siblings never see what it adds.
type Schema struct {
	name   string
	parent *Schema
	descs  map[string]*Descriptor
	order  []string
}

// NewSchema creates a root schema.
func NewSchema(name string, descs ...Descriptor) *Schema {
	return newSchema(name, nil, descs)
}

// Extend returns a new schema layered on s.
func (s *Schema) Extend(name string, descs ...Descriptor) *Schema {
	return newSchema(name, s, descs)
}

func newSchema(name string, parent *Schema, descs []Descriptor) *Schema {
	s := &Schema{
		name:   name,
		parent: parent,
		descs:  make(map[string]*Descriptor, len(descs)),
	}
	for i := range descs {
		d := descs[i]
		if d.Name == "" {
			panic("canopy: descriptor without a name in schema " + name)
		}
		if _, dup := s.descs[d.Name]; dup {
			panic("canopy: duplicate attribute " + d.Name + " in schema " + name)
		}
		s.descs[d.Name] = &d
		s.order = append(s.order, d.Name)
	}
	return s
}

// Name returns the schema's name.
func (s *Schema) Name() string {
	return s.name
}

// Parent returns the schema s extends, or nil.
func (s *Schema) Parent() *Schema {
	return s.parent
}

// Lookup finds the descriptor for name, searching from s towards the root.
func (s *Schema) Lookup(name string) (*Descriptor, bool) {
	for c := s; c != nil; c = c.parent {
		if d, ok := c.descs[name]; ok {
			return d, true
		}
	}
	return nil, false
}

// Names returns every declared attribute name, root schema first. An
// override keeps the position of the attribute it overrides.
func (s *Schema) Names() []string {
	var chain []*Schema
	for c := s; c != nil; c = c.parent {
		chain = append(chain, c)
	}
	seen := make(map[string]bool)
	var names []string
	for i := len(chain) - 1; i >= 0; i-- {
		for _, name := range chain[i].order {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// Extends reports whether s is base or was built from base.
func (s *Schema) Extends(base *Schema) bool {
	for c := s; c != nil; c = c.parent {
		if c == base {
			return true
		}
	}
	return false
}

// Decode converts raw into the Go type of the named attribute. Undeclared
// attributes and attributes without a decoder are returned unchanged.
func (s *Schema) Decode(name string, raw any) (any, error) {
	d, ok := s.Lookup(name)
	if !ok || d.Decode == nil {
		return raw, nil
	}
	v, err := d.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("attribute %s: %w", name, err)
	}
	return v, nil
}

// Attrs is a node's attribute store.
type Attrs struct {
	schema *Schema
	values map[string]any
}

func newAttrs(s *Schema) *Attrs {
	a := &Attrs{schema: s, values: make(map[string]any)}
	for _, name := range s.Names() {
		d, _ := s.Lookup(name)
		a.values[name] = d.Default
	}
	return a
}

// Schema returns the store's schema.
func (a *Attrs) Schema() *Schema {
	return a.schema
}

// Get returns the current value of name, or nil if it was never set.
func (a *Attrs) Get(name string) any {
	return a.values[name]
}

// Has reports whether name holds a value.
func (a *Attrs) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// set stores v and reports the previous value and whether it changed.
func (a *Attrs) set(name string, v any) (old any, changed bool) {
	old, had := a.values[name]
	if had && reflect.DeepEqual(old, v) {
		return old, false
	}
	a.values[name] = v
	return old, true
}

func (a *Attrs) remove(name string) (old any, changed bool) {
	if d, ok := a.schema.Lookup(name); ok {
		return a.set(name, d.Default)
	}
	old, had := a.values[name]
	delete(a.values, name)
	return old, had
}

// Serialize returns a copy of every current value.
func (a *Attrs) Serialize() map[string]any {
	out := make(map[string]any, len(a.values))
	for k, v := range a.values {
		out[k] = v
	}
	return out
}

// orderedKeys returns the keys of m in schema order, followed by the
// undeclared keys sorted by name.
func (a *Attrs) orderedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for _, name := range a.schema.Names() {
		if _, ok := m[name]; ok {
			keys = append(keys, name)
		}
	}
	var extra []string
	for k := range m {
		if _, ok := a.schema.Lookup(k); !ok {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}
