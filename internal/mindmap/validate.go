package mindmap

import (
	"errors"
	"fmt"
)

var (
	ErrNoRoot       = errors.New("mindmap: root missing")
	ErrOrphan       = errors.New("mindmap: node unreachable from root")
	ErrBrokenLink   = errors.New("mindmap: child link does not match parent")
	ErrBadSelection = errors.New("mindmap: selection references missing node")
)

// Validate checks the tree invariants: a single parentless root, children
// that point back at their owner, no cycles, every node reachable and a
// selection that names an existing node.
func (m *Map) Validate() error {
	root, ok := m.nodes[m.rootID]
	if !ok {
		return ErrNoRoot
	}
	if !root.IsRoot() {
		return fmt.Errorf("%w: root %s has parent %s", ErrBrokenLink, m.rootID, root.ParentID)
	}

	seen := make(map[string]bool, len(m.nodes))
	stack := []string{m.rootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if seen[id] {
			return fmt.Errorf("%w: %s reached twice", ErrBrokenLink, id)
		}
		seen[id] = true

		for _, cid := range m.nodes[id].Children {
			child, ok := m.nodes[cid]
			if !ok {
				return fmt.Errorf("%w: %s lists missing child %s", ErrBrokenLink, id, cid)
			}
			if child.ParentID != id {
				return fmt.Errorf("%w: %s lists %s whose parent is %q", ErrBrokenLink, id, cid, child.ParentID)
			}
			stack = append(stack, cid)
		}
	}

	if len(seen) != len(m.nodes) {
		for id := range m.nodes {
			if !seen[id] {
				return fmt.Errorf("%w: %s", ErrOrphan, id)
			}
		}
	}

	if m.selectedID != "" && !m.Has(m.selectedID) {
		return fmt.Errorf("%w: %s", ErrBadSelection, m.selectedID)
	}
	return nil
}
