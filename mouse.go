package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"mindflerm/internal/viewport"
)

func (m *model) handleMouse(msg tea.MouseMsg) {
	if m.help || m.mode != ModeNormal {
		return
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown:
		// The terminal reports wheel notches only, so a notch down is a
		// positive delta.
		delta := -1.0
		if msg.Button == tea.MouseButtonWheelDown {
			delta = 1
		}
		sx, sy := cellCenter(msg.X, msg.Y)
		m.view = m.view.ZoomAt(sx, sy, viewport.WheelDirection(delta))

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if msg.Y >= m.canvasHeight() {
			return
		}
		m.startDrag(msg.X, msg.Y)

	case msg.Action == tea.MouseActionMotion:
		if m.drag != nil {
			m.drag.curX, m.drag.curY = msg.X, msg.Y
		}

	case msg.Action == tea.MouseActionRelease:
		if m.drag != nil {
			m.drag.curX, m.drag.curY = msg.X, msg.Y
			m.finishDrag()
		}
	}
}

func (m *model) startDrag(x, y int) {
	d := &dragState{startX: x, startY: y, curX: x, curY: y}
	if id := m.scene().hit(x, y); id != "" {
		n, _ := m.mindMap.Node(id)
		m.mindMap.SelectNode(id)
		d.kind = dragNode
		d.nodeID = id
		d.originX, d.originY = n.X, n.Y
	} else {
		m.mindMap.SelectNode("")
		d.kind = dragCanvas
		d.originX, d.originY = m.view.X, m.view.Y
	}
	m.drag = d
}

// finishDrag commits the drag with absolute coordinates. A press without
// movement is a plain click and changes nothing.
func (m *model) finishDrag() {
	d := m.drag
	m.drag = nil
	if !d.moved() {
		return
	}

	dx, dy := d.screenDelta()
	switch d.kind {
	case dragNode:
		x := d.originX + dx/m.view.Scale
		y := d.originY + dy/m.view.Scale
		m.mindMap.UpdateNodePosition(d.nodeID, x, y)
		m.logger.Debugf("moved %s to (%.1f, %.1f)", d.nodeID, x, y)
	case dragCanvas:
		m.view = m.view.PanTo(d.originX+dx, d.originY+dy)
	}
}
