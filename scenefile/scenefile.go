// Package scenefile reads and writes canopy node trees as YAML documents.
//
// A document lists top-level nodes. Each node has a type (sprite, label or
// group), attributes in their plain form, children (groups only) and
// animations:
//
//	nodes:
//	  - type: group
//	    attrs: {id: panel, pos: [20, 20], padding: 8, bgcolor: "#223"}
//	    children:
//	      - type: label
//	        attrs: {text: Hello, font: 20px sans-serif, color: white}
//	        animations:
//	          - keyframes: [{pos: [0, 0]}, {pos: [100, 0]}]
//	            duration: 1000
//	            easing: outQuad
package scenefile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/canopy"
)

// Document is a parsed scene file.
type Document struct {
	Nodes []Node `yaml:"nodes"`
}

// Node describes one node and its subtree.
type Node struct {
	Type       string         `yaml:"type"`
	Attrs      map[string]any `yaml:"attrs,omitempty"`
	Children   []Node         `yaml:"children,omitempty"`
	Animations []Animation    `yaml:"animations,omitempty"`
}

// Animation describes keyframes and timing. Times are in milliseconds.
type Animation struct {
	Keyframes  []map[string]any `yaml:"keyframes"`
	Duration   float64          `yaml:"duration"`
	Delay      float64          `yaml:"delay,omitempty"`
	Iterations float64          `yaml:"iterations,omitempty"`
	Easing     string           `yaml:"easing,omitempty"`
	Fill       string           `yaml:"fill,omitempty"`
}

// ErrUnknownType is returned for a node type other than sprite, label or
// group.
var ErrUnknownType = errors.New("scenefile: unknown node type")

// Decode parses a document.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("scenefile: %w", err)
	}
	return &doc, nil
}

// Build creates the document's nodes. Animations are created on their
// nodes and start when the nodes are attached to a layer.
func (d *Document) Build() ([]*canopy.Node, error) {
	nodes := make([]*canopy.Node, 0, len(d.Nodes))
	for i := range d.Nodes {
		n, err := d.Nodes[i].build(fmt.Sprintf("nodes[%d]", i))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (s *Node) build(where string) (*canopy.Node, error) {
	t, ok := canopy.ParseNodeType(s.Type)
	if !ok {
		return nil, fmt.Errorf("%w %q at %s", ErrUnknownType, s.Type, where)
	}
	if len(s.Children) > 0 && t != canopy.NodeTypeGroup {
		return nil, fmt.Errorf("scenefile: %s: %s nodes cannot have children", where, s.Type)
	}

	var n *canopy.Node
	switch t {
	case canopy.NodeTypeLabel:
		n = canopy.NewLabel("", canopy.Options{})
	case canopy.NodeTypeGroup:
		n = canopy.NewGroup(canopy.Options{})
	default:
		n = canopy.NewSprite(canopy.Options{})
	}
	if err := n.DecodeAttrs(s.Attrs); err != nil {
		return nil, fmt.Errorf("scenefile: %s: %w", where, err)
	}

	for i := range s.Children {
		c, err := s.Children[i].build(fmt.Sprintf("%s.children[%d]", where, i))
		if err != nil {
			return nil, err
		}
		n.AppendChild(c)
	}

	for i, a := range s.Animations {
		frames := make([]canopy.Keyframe, len(a.Keyframes))
		for j, kf := range a.Keyframes {
			frames[j] = canopy.Keyframe(kf)
		}
		anim, err := canopy.NewAnimation(n, frames, canopy.Timing{
			Duration:   a.Duration,
			Delay:      a.Delay,
			Iterations: a.Iterations,
			Easing:     a.Easing,
			Fill:       a.Fill,
		})
		if err != nil {
			return nil, fmt.Errorf("scenefile: %s.animations[%d]: %w", where, i, err)
		}
		n.AddAnimation(anim)
	}
	return n, nil
}

// Load decodes a document from r and appends its nodes to layer.
func Load(r io.Reader, layer *canopy.Layer) error {
	doc, err := Decode(r)
	if err != nil {
		return err
	}
	nodes, err := doc.Build()
	if err != nil {
		return err
	}
	for _, n := range nodes {
		layer.AppendChild(n)
	}
	return nil
}

// LoadFile is Load reading from the named file.
func LoadFile(path string, layer *canopy.Layer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("scenefile: %w", err)
	}
	defer f.Close()
	return Load(f, layer)
}
