package main

import (
	"github.com/charmbracelet/bubbles/textinput"

	"mindflerm/internal/config"
	"mindflerm/internal/log"
	"mindflerm/internal/mindmap"
	"mindflerm/internal/viewport"
)

type model struct {
	width  int
	height int

	mindMap *mindmap.Map
	view    viewport.Viewport

	mode          Mode
	help          bool
	helpScroll    int
	helpText      string
	helpWidth     int
	input         textinput.Model
	editNodeID    string
	fileOp        FileOperation
	confirmAction ConfirmAction
	searchHits    []searchHit
	drag          *dragState

	errorMessage   string
	successMessage string

	config     *config.Config
	configPath string
	flags      *rootOptions
	logger     *log.Logger
	clipboard  clipboardIO
}

type dragKind int

const (
	dragNode dragKind = iota
	dragCanvas
)

// dragState tracks a pointer drag in terminal cells. originX/originY hold the
// node position (canvas units) or the pan offset (screen pixels) at press time.
type dragState struct {
	kind    dragKind
	nodeID  string
	startX  int
	startY  int
	curX    int
	curY    int
	originX float64
	originY float64
}

// screenDelta is how far the pointer travelled, in screen pixels.
func (d *dragState) screenDelta() (float64, float64) {
	return float64((d.curX - d.startX) * CellWidth), float64((d.curY - d.startY) * CellHeight)
}

func (d *dragState) moved() bool {
	return d.curX != d.startX || d.curY != d.startY
}

type searchHit struct {
	id    string
	text  string
	score int
}
