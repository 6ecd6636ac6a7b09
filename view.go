package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m model) styles() styles {
	return defaultStyles()
}

func (m model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.help {
		return m.helpView()
	}

	lines := m.scene().render(m.width, m.canvasHeight()).styledLines(m.styles())
	return strings.Join(append(lines, m.statusLine()), "\n")
}

func (m model) modeString() string {
	switch m.mode {
	case ModeEditing:
		return "EDIT"
	case ModeSearch:
		return "FIND"
	case ModeFileInput:
		return "EXPORT " + m.fileOp.String()
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "NORMAL"
	}
}

func (m model) statusLine() string {
	st := m.styles()
	parts := []string{st.mode.Render(m.modeString())}

	switch m.mode {
	case ModeEditing:
		parts = append(parts, m.input.View(), "Enter=save, Esc=cancel, Ctrl+V=paste")
	case ModeSearch:
		parts = append(parts, m.input.View())
		if len(m.searchHits) > 0 {
			names := make([]string, len(m.searchHits))
			for i, h := range m.searchHits {
				names[i] = singleLine(h.text)
			}
			parts = append(parts, strings.Join(names, ", "))
		}
	case ModeFileInput:
		parts = append(parts, m.input.View(), "Enter=export, Esc=cancel")
	case ModeConfirm:
		parts = append(parts, "Quit mindflerm? (y/n)")
	default:
		selected := "none"
		if n, ok := m.mindMap.Node(m.mindMap.SelectedID()); ok {
			selected = nodeLabel(n)
		}
		parts = append(parts,
			"Selected: "+selected,
			fmt.Sprintf("Nodes: %d", m.mindMap.Len()),
			fmt.Sprintf("Zoom: %d%%", m.view.Percent()),
			"? for help",
		)
	}

	switch {
	case m.errorMessage != "":
		parts = append(parts, st.err.Render(m.errorMessage))
	case m.successMessage != "":
		parts = append(parts, st.success.Render(m.successMessage))
	}

	line := strings.Join(parts, st.status.Render(" | "))
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
}
