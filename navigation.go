package main

import (
	"slices"

	"mindflerm/internal/mindmap"
)

func (m *model) canvasHeight() int {
	return max(m.height-1, 0)
}

// handlePan moves the camera by the configured number of cells. Moving the
// camera left shifts the drawing right.
func (m *model) handlePan(key string) {
	step := float64(m.config.UI.PanStep)
	switch key {
	case "h", "left":
		m.view = m.view.PanBy(step*CellWidth, 0)
	case "l", "right":
		m.view = m.view.PanBy(-step*CellWidth, 0)
	case "k", "up":
		m.view = m.view.PanBy(0, step*CellHeight)
	case "j", "down":
		m.view = m.view.PanBy(0, -step*CellHeight)
	}
}

// moveSelected nudges the selected node, and its subtree, one cell.
func (m *model) moveSelected(key string) {
	id := m.mindMap.SelectedID()
	n, ok := m.mindMap.Node(id)
	if !ok {
		return
	}
	dx := CellWidth / m.view.Scale
	dy := CellHeight / m.view.Scale
	switch key {
	case "H", "shift+left":
		m.mindMap.UpdateNodePosition(id, n.X-dx, n.Y)
	case "L", "shift+right":
		m.mindMap.UpdateNodePosition(id, n.X+dx, n.Y)
	case "K", "shift+up":
		m.mindMap.UpdateNodePosition(id, n.X, n.Y-dy)
	case "J", "shift+down":
		m.mindMap.UpdateNodePosition(id, n.X, n.Y+dy)
	}
}

func (m *model) goToRoot() {
	m.selectAndShow(m.mindMap.RootID())
}

func (m *model) goToParent() {
	if n, ok := m.mindMap.Node(m.mindMap.SelectedID()); ok && !n.IsRoot() {
		m.selectAndShow(n.ParentID)
	}
}

func (m *model) goToFirstChild() {
	if n, ok := m.mindMap.Node(m.mindMap.SelectedID()); ok && len(n.Children) > 0 {
		m.selectAndShow(n.Children[0])
	}
}

// goToSibling selects the sibling offset places away, wrapping around.
func (m *model) goToSibling(offset int) {
	n, ok := m.mindMap.Node(m.mindMap.SelectedID())
	if !ok || n.IsRoot() {
		return
	}
	parent, _ := m.mindMap.Node(n.ParentID)
	idx := slices.Index(parent.Children, n.ID)
	if idx < 0 {
		return
	}
	count := len(parent.Children)
	next := ((idx+offset)%count + count) % count
	m.selectAndShow(parent.Children[next])
}

func (m *model) selectAndShow(id string) {
	m.mindMap.SelectNode(id)
	m.ensureVisible(id)
}

// ensureVisible centers the view on a node whose box is not fully on screen.
func (m *model) ensureVisible(id string) {
	if m.width <= 0 || m.canvasHeight() <= 0 {
		return
	}
	s := m.scene()
	for _, b := range s.boxes() {
		if b.id != id {
			continue
		}
		if b.x >= 0 && b.y >= 0 && b.x+b.w <= m.width && b.y+b.h <= m.canvasHeight() {
			return
		}
		m.centerOn(id)
		return
	}
}

func (m *model) centerOn(id string) {
	n, ok := m.mindMap.Node(id)
	if !ok {
		return
	}
	cx := float64(m.width*CellWidth) / 2
	cy := float64(m.canvasHeight()*CellHeight) / 2
	m.view = m.view.PanTo(cx-n.X*m.view.Scale, cy-n.Y*m.view.Scale)
}

func (m *model) scene() scene {
	return scene{
		mindMap:  m.mindMap,
		view:     m.view,
		selected: m.mindMap.SelectedID(),
		drag:     m.drag,
	}
}

func nodeLabel(n mindmap.Node) string {
	if n.Text == "" {
		return "(empty)"
	}
	return singleLine(n.Text)
}
