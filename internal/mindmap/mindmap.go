// Package mindmap holds the tree-editing model behind the editor: the nodes,
// their parent/child links and the current selection.
//
// A Map is owned by a single editing session. Every mutator treats an
// unknown id as a no-op and reports that through its return value instead of
// an error.
package mindmap

import (
	"slices"

	"github.com/google/uuid"
)

// Node is a labeled point in the tree. ParentID is empty for the root.
type Node struct {
	ID       string
	Text     string
	X        float64
	Y        float64
	ParentID string
	Children []string
}

// IsRoot reports whether the node has no parent.
func (n Node) IsRoot() bool {
	return n.ParentID == ""
}

// Edge links a parent to one of its children.
type Edge struct {
	Parent string
	Child  string
}

// Map is the mind map state: the node mapping, the root and the selection.
type Map struct {
	nodes      map[string]*Node
	rootID     string
	selectedID string
	newID      func() string
}

// Option configures a Map created by New.
type Option func(*options)

type options struct {
	rootText string
	newID    func() string
}

// WithRootText overrides the label of the root node.
func WithRootText(text string) Option {
	return func(o *options) { o.rootText = text }
}

// WithIDGenerator replaces the uuid generator used for new node ids.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}

// New creates a map holding a single root node at (RootX, RootY).
func New(opts ...Option) *Map {
	o := options{
		rootText: DefaultRootText,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}

	rootID := o.newID()
	return &Map{
		nodes: map[string]*Node{
			rootID: {
				ID:       rootID,
				Text:     o.rootText,
				X:        RootX,
				Y:        RootY,
				Children: []string{},
			},
		},
		rootID: rootID,
		newID:  o.newID,
	}
}

// RootID returns the id of the root node.
func (m *Map) RootID() string {
	return m.rootID
}

// SelectedID returns the selected node id, or "" when nothing is selected.
func (m *Map) SelectedID() string {
	return m.selectedID
}

// Len returns the number of nodes in the map.
func (m *Map) Len() int {
	return len(m.nodes)
}

// Node returns a copy of the node with the given id.
func (m *Map) Node(id string) (Node, bool) {
	n, ok := m.nodes[id]
	if !ok {
		return Node{}, false
	}
	out := *n
	out.Children = slices.Clone(n.Children)
	return out, true
}

// Has reports whether id names a node in the map.
func (m *Map) Has(id string) bool {
	_, ok := m.nodes[id]
	return ok
}

// SelectNode sets the selection. An empty id clears it; an id that is not in
// the map leaves the selection untouched.
func (m *Map) SelectNode(id string) {
	if id != "" && !m.Has(id) {
		return
	}
	m.selectedID = id
}

// AddNode appends a new child with the given text to parentID, lays out all of
// the parent's children again and selects the new node. It returns the new id
// and false when the parent does not exist.
func (m *Map) AddNode(parentID, text string) (string, bool) {
	parent, ok := m.nodes[parentID]
	if !ok {
		return "", false
	}

	id := m.newID()
	for m.Has(id) {
		id = m.newID()
	}

	m.nodes[id] = &Node{
		ID:       id,
		Text:     text,
		ParentID: parentID,
		Children: []string{},
	}
	parent.Children = append(parent.Children, id)

	m.layoutChildren(parent)
	m.selectedID = id
	return id, true
}

// DeleteNode removes a node together with its whole subtree and returns the
// removed ids, deleted node first. The root and unknown ids are ignored.
// Remaining siblings keep their positions.
func (m *Map) DeleteNode(id string) []string {
	node, ok := m.nodes[id]
	if !ok || node.IsRoot() {
		return nil
	}

	removed := m.collect(id)
	for _, rid := range removed {
		delete(m.nodes, rid)
	}

	if parent, ok := m.nodes[node.ParentID]; ok {
		parent.Children = slices.DeleteFunc(parent.Children, func(c string) bool {
			return c == id
		})
	}

	if m.selectedID != "" && slices.Contains(removed, m.selectedID) {
		m.selectedID = ""
	}
	return removed
}

// UpdateNodeText replaces the node's text verbatim.
func (m *Map) UpdateNodeText(id, text string) bool {
	n, ok := m.nodes[id]
	if !ok {
		return false
	}
	n.Text = text
	return true
}

// UpdateNodePosition moves a node to (x, y) and shifts every descendant by
// the same delta, so the subtree keeps its shape.
func (m *Map) UpdateNodePosition(id string, x, y float64) bool {
	n, ok := m.nodes[id]
	if !ok {
		return false
	}

	dx := x - n.X
	dy := y - n.Y
	for _, did := range m.collect(id) {
		d := m.nodes[did]
		d.X += dx
		d.Y += dy
	}
	// Pin the moved node to the exact target instead of the accumulated sum.
	n.X, n.Y = x, y
	return true
}

// collect returns id and all of its descendants in preorder.
func (m *Map) collect(id string) []string {
	var out []string
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n, ok := m.nodes[cur]
		if !ok {
			continue
		}
		out = append(out, cur)
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return out
}

// Descendants returns every node below id in preorder, excluding id itself.
func (m *Map) Descendants(id string) []string {
	all := m.collect(id)
	if len(all) == 0 {
		return nil
	}
	return all[1:]
}

// IDs returns every node id in preorder starting at the root.
func (m *Map) IDs() []string {
	return m.collect(m.rootID)
}

// Walk visits every node in preorder with its depth below the root.
// Returning false from fn stops the walk.
func (m *Map) Walk(fn func(n Node, depth int) bool) {
	m.walk(m.rootID, 0, fn)
}

func (m *Map) walk(id string, depth int, fn func(Node, int) bool) bool {
	n, ok := m.Node(id)
	if !ok {
		return true
	}
	if !fn(n, depth) {
		return false
	}
	for _, child := range n.Children {
		if !m.walk(child, depth+1, fn) {
			return false
		}
	}
	return true
}

// Edges returns every parent/child link in preorder of the child, so each
// edge appears where Walk visits its child.
func (m *Map) Edges() []Edge {
	var edges []Edge
	m.Walk(func(n Node, _ int) bool {
		if n.ParentID != "" {
			edges = append(edges, Edge{Parent: n.ParentID, Child: n.ID})
		}
		return true
	})
	return edges
}

// Clone returns a deep copy of the map sharing the same id generator.
func (m *Map) Clone() *Map {
	out := &Map{
		nodes:      make(map[string]*Node, len(m.nodes)),
		rootID:     m.rootID,
		selectedID: m.selectedID,
		newID:      m.newID,
	}
	for id, n := range m.nodes {
		cp := *n
		cp.Children = slices.Clone(n.Children)
		out.nodes[id] = &cp
	}
	return out
}
