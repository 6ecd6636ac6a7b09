package main

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# mindflerm

## Editing

| Key | Action |
| --- | --- |
| Tab | add a child to the selected node |
| s | add a sibling below the selected node |
| Enter | edit the selected node |
| Delete, Backspace | delete the selected node and its subtree |
| Esc | clear the selection |
| y | copy the selected label to the clipboard |

While editing, Enter saves, Esc cancels and Ctrl+V pastes.

## Moving around

| Key | Action |
| --- | --- |
| h j k l, arrows | pan the view |
| H J K L, Shift+arrows | move the selected node |
| + or =, - | zoom in, zoom out |
| 0 | reset zoom and pan |
| r | select the root |
| p, c | select the parent, the first child |
| [ ] | previous, next sibling |
| / | find a node by name |

## Mouse

* Wheel zooms around the pointer.
* Click a node to select it, click empty space to clear the selection.
* Drag a node to move it with its subtree, drag empty space to pan.

## Export

| Key | Action |
| --- | --- |
| S | PNG image |
| G | SVG image |
| T | text snapshot of the screen |

## Other

| Key | Action |
| --- | --- |
| ? | toggle this help |
| q, Ctrl+C | quit |
`

// renderHelp renders the help page for the given width, falling back to the
// raw markdown when glamour fails.
func renderHelp(width int) string {
	wrap := max(width-4, 20)
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return strings.TrimRight(out, "\n")
}

func (m *model) toggleHelp() {
	m.help = !m.help
	m.helpScroll = 0
	if m.help {
		m.refreshHelp()
	}
}

func (m *model) refreshHelp() {
	if m.helpText == "" || m.helpWidth != m.width {
		m.helpText = renderHelp(m.width)
		m.helpWidth = m.width
	}
}

func (m *model) scrollHelp(delta int) {
	lines := strings.Count(m.helpText, "\n") + 1
	limit := max(lines-m.canvasHeight(), 0)
	m.helpScroll = min(max(m.helpScroll+delta, 0), limit)
}

func (m model) helpView() string {
	lines := strings.Split(m.helpText, "\n")
	start := min(m.helpScroll, len(lines))
	end := min(start+m.canvasHeight(), len(lines))
	body := strings.Join(lines[start:end], "\n")
	status := m.styles().status.Render("j/k scroll, ? or Esc to close")
	return body + "\n" + status
}
