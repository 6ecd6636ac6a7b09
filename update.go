package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mindflerm/internal/config"
	"mindflerm/internal/log"
	"mindflerm/internal/mindmap"
	"mindflerm/internal/viewport"
)

func newModel(cfg *config.Config, configPath string, logger *log.Logger, opts ...mindmap.Option) model {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.Discard()
	}
	opts = append([]mindmap.Option{mindmap.WithRootText(cfg.UI.RootText)}, opts...)

	return model{
		mindMap:    mindmap.New(opts...),
		view:       viewport.New(),
		mode:       ModeNormal,
		input:      textinput.New(),
		config:     cfg,
		configPath: configPath,
		logger:     logger,
		clipboard:  systemClipboard{},
	}
}

func (m model) Init() tea.Cmd {
	if m.configPath == "" {
		return nil
	}
	if _, err := os.Stat(filepath.Dir(m.configPath)); err != nil {
		return nil
	}
	return watchConfig(m.configPath)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.help {
			m.refreshHelp()
		}

	case configChangedMsg:
		m.applyConfig(msg)
		if m.configPath != "" {
			cmd = watchConfig(m.configPath)
		}

	case watchStoppedMsg:
		if msg.err != nil {
			m.logger.Errorf("config watch stopped: %v", msg.err)
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.KeyMsg:
		if m.help {
			m.handleHelpKey(msg)
			break
		}
		switch m.mode {
		case ModeEditing:
			cmd = m.handleEditKey(msg)
		case ModeSearch:
			cmd = m.handleSearchKey(msg)
		case ModeFileInput:
			cmd = m.handleFileInputKey(msg)
		case ModeConfirm:
			cmd = m.handleConfirmKey(msg)
		default:
			cmd = m.handleNormalKey(msg)
		}
	}
	return m, cmd
}

func (m *model) handleHelpKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "?", "esc", "q":
		m.toggleHelp()
	case "j", "down":
		m.scrollHelp(1)
	case "k", "up":
		m.scrollHelp(-1)
	case "ctrl+d", "pgdown":
		m.scrollHelp(m.canvasHeight() / 2)
	case "ctrl+u", "pgup":
		m.scrollHelp(-m.canvasHeight() / 2)
	}
}

func (m *model) handleNormalKey(msg tea.KeyMsg) tea.Cmd {
	m.errorMessage = ""
	m.successMessage = ""

	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m.requestQuit()
	case "?":
		m.toggleHelp()
	case "tab":
		m.addChild()
	case "s":
		m.addSibling()
	case "delete", "backspace":
		m.deleteSelected()
	case "enter":
		return m.startEdit()
	case "esc":
		m.mindMap.SelectNode("")
	case "+", "=":
		m.view = m.view.ZoomIn()
	case "-":
		m.view = m.view.ZoomOut()
	case "0":
		m.view = m.view.Reset()
	case "h", "j", "k", "l", "left", "down", "up", "right":
		m.handlePan(key)
	case "H", "J", "K", "L", "shift+left", "shift+down", "shift+up", "shift+right":
		m.moveSelected(key)
	case "r":
		m.goToRoot()
	case "p":
		m.goToParent()
	case "c":
		m.goToFirstChild()
	case "[":
		m.goToSibling(-1)
	case "]":
		m.goToSibling(1)
	case "/":
		m.mode = ModeSearch
		m.searchHits = nil
		return m.startInput("/", "find node", "")
	case "y":
		m.copySelected()
	case "S":
		return m.startExport(FileOpExportPNG)
	case "G":
		return m.startExport(FileOpExportSVG)
	case "T":
		return m.startExport(FileOpExportTXT)
	}
	return nil
}

func (m *model) requestQuit() tea.Cmd {
	if !m.config.UI.Confirmations {
		return tea.Quit
	}
	m.mode = ModeConfirm
	m.confirmAction = ConfirmQuit
	return nil
}

func (m *model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y", "enter":
		m.mode = ModeNormal
		if m.confirmAction == ConfirmQuit {
			return tea.Quit
		}
	case "n", "N", "esc", "q", "ctrl+c":
		m.mode = ModeNormal
	}
	return nil
}

func (m *model) addChild() {
	parent := m.mindMap.SelectedID()
	if parent == "" {
		return
	}
	id, ok := m.mindMap.AddNode(parent, mindmap.DefaultNodeText)
	if !ok {
		return
	}
	m.logger.Debugf("added node %s under %s", id, parent)
	m.ensureVisible(id)
}

// addSibling adds a node under the selection's parent. The root has no
// siblings.
func (m *model) addSibling() {
	n, ok := m.mindMap.Node(m.mindMap.SelectedID())
	if !ok || n.IsRoot() {
		return
	}
	id, ok := m.mindMap.AddNode(n.ParentID, mindmap.DefaultNodeText)
	if !ok {
		return
	}
	m.logger.Debugf("added node %s beside %s", id, n.ID)
	m.ensureVisible(id)
}

func (m *model) deleteSelected() {
	id := m.mindMap.SelectedID()
	if id == "" || id == m.mindMap.RootID() {
		return
	}
	removed := m.mindMap.DeleteNode(id)
	m.logger.Debugf("deleted %d node(s) starting at %s", len(removed), id)
}

func (m *model) copySelected() {
	n, ok := m.mindMap.Node(m.mindMap.SelectedID())
	if !ok {
		return
	}
	if err := m.clipboard.WriteAll(n.Text); err != nil {
		m.logger.Errorf("copy to clipboard: %v", err)
		m.errorMessage = "ERROR: copy to clipboard: " + err.Error()
		return
	}
	m.successMessage = "Copied to clipboard"
}

func (m *model) startInput(prompt, placeholder, value string) tea.Cmd {
	m.input = textinput.New()
	m.input.Prompt = prompt
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *model) endInput() {
	m.input.Blur()
	m.input.Reset()
	m.mode = ModeNormal
	m.editNodeID = ""
	m.searchHits = nil
}

func (m *model) startEdit() tea.Cmd {
	n, ok := m.mindMap.Node(m.mindMap.SelectedID())
	if !ok {
		return nil
	}
	m.mode = ModeEditing
	m.editNodeID = n.ID
	return m.startInput("", "", n.Text)
}

func (m *model) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		if text := strings.TrimSpace(m.input.Value()); text != "" {
			m.mindMap.UpdateNodeText(m.editNodeID, text)
			m.logger.Debugf("renamed %s to %q", m.editNodeID, text)
		}
		m.endInput()
		return nil
	case "esc", "ctrl+c":
		m.endInput()
		return nil
	case "ctrl+v":
		raw, err := m.clipboard.ReadAll()
		if err != nil {
			m.logger.Errorf("paste: %v", err)
			m.errorMessage = "ERROR: paste: " + err.Error()
			return nil
		}
		m.input.SetValue(m.input.Value() + pasteText(raw))
		m.input.CursorEnd()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		if len(m.searchHits) > 0 {
			id := m.searchHits[0].id
			m.mindMap.SelectNode(id)
			m.centerOn(id)
		} else if q := strings.TrimSpace(m.input.Value()); q != "" {
			m.errorMessage = "No node matches " + q
		}
		m.endInput()
		return nil
	case "esc", "ctrl+c":
		m.endInput()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.searchHits = findNodes(m.mindMap, m.input.Value(), maxSearchHits)
	return cmd
}

func (m *model) startExport(op FileOperation) tea.Cmd {
	m.mode = ModeFileInput
	m.fileOp = op
	return m.startInput("Export "+op.String()+" to: ", exportFilename("", op), "")
}

func (m *model) handleFileInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		name, op := m.input.Value(), m.fileOp
		m.endInput()
		path, err := m.runExport(name, op)
		if err != nil {
			m.logger.Errorf("%v", err)
			m.errorMessage = "ERROR: " + err.Error()
			return nil
		}
		m.logger.Infof("exported %s to %s", op, path)
		m.successMessage = "Exported to " + path
		return nil
	case "esc", "ctrl+c":
		m.endInput()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}
