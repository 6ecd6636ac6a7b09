package main

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"mindflerm/internal/mindmap"
	"mindflerm/internal/viewport"
)

type cellKind uint8

const (
	cellBlank cellKind = iota
	cellEdge
	cellNode
	cellRoot
	cellSelected
)

// Connector directions, combined into a mask per cell.
const (
	linkUp uint8 = 1 << iota
	linkDown
	linkLeft
	linkRight
)

type grid struct {
	width  int
	height int
	runes  [][]rune
	kinds  [][]cellKind
	links  [][]uint8
}

func newGrid(width, height int) *grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g := &grid{
		width:  width,
		height: height,
		runes:  make([][]rune, height),
		kinds:  make([][]cellKind, height),
		links:  make([][]uint8, height),
	}
	for y := range g.runes {
		g.runes[y] = []rune(strings.Repeat(" ", width))
		g.kinds[y] = make([]cellKind, width)
		g.links[y] = make([]uint8, width)
	}
	return g
}

func (g *grid) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// put writes one cell. A zero rune marks the continuation cell of the wide
// rune to its left. Overwriting half of a wide rune blanks the other half so
// every row keeps the grid width.
func (g *grid) put(x, y int, r rune, kind cellKind) {
	if !g.inBounds(x, y) {
		return
	}
	row := g.runes[y]
	if r != 0 && row[x] == 0 && x > 0 {
		row[x-1] = ' '
	}
	if runewidth.RuneWidth(row[x]) > 1 && x+1 < g.width && row[x+1] == 0 {
		row[x+1] = ' '
	}
	row[x] = r
	g.kinds[y][x] = kind
}

func (g *grid) link(x, y int, bits uint8) {
	if g.inBounds(x, y) {
		g.links[y][x] |= bits
	}
}

func (g *grid) hline(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		var bits uint8
		if x > x1 {
			bits |= linkLeft
		}
		if x < x2 {
			bits |= linkRight
		}
		g.link(x, y, bits)
	}
}

func (g *grid) vline(x, y1, y2 int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		var bits uint8
		if y > y1 {
			bits |= linkUp
		}
		if y < y2 {
			bits |= linkDown
		}
		g.link(x, y, bits)
	}
}

// elbow joins two points with a horizontal-vertical-horizontal connector
// bending at the midpoint column.
func (g *grid) elbow(x1, y1, x2, y2 int) {
	mid := (x1 + x2) / 2
	g.hline(x1, mid, y1)
	g.vline(mid, y1, y2)
	g.hline(mid, x2, y2)
}

func (g *grid) resolveLinks() {
	for y := range g.links {
		for x, bits := range g.links[y] {
			if bits != 0 {
				g.put(x, y, linkRune(bits), cellEdge)
			}
		}
	}
}

func linkRune(bits uint8) rune {
	switch bits {
	case linkUp | linkDown, linkUp, linkDown:
		return '│'
	case linkDown | linkRight:
		return '┌'
	case linkDown | linkLeft:
		return '┐'
	case linkUp | linkRight:
		return '└'
	case linkUp | linkLeft:
		return '┘'
	case linkUp | linkDown | linkRight:
		return '├'
	case linkUp | linkDown | linkLeft:
		return '┤'
	case linkLeft | linkRight | linkDown:
		return '┬'
	case linkLeft | linkRight | linkUp:
		return '┴'
	case linkUp | linkDown | linkLeft | linkRight:
		return '┼'
	default:
		return '─'
	}
}

type nodeBox struct {
	id   string
	text string
	x    int
	y    int
	w    int
	h    int
	kind cellKind
}

func (b nodeBox) contains(x, y int) bool {
	return x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h
}

func (g *grid) drawBox(b nodeBox) {
	right := b.x + b.w - 1
	bottom := b.y + b.h - 1
	for y := b.y; y <= bottom; y++ {
		for x := b.x; x <= right; x++ {
			r := ' '
			switch {
			case y == b.y && x == b.x:
				r = '╭'
			case y == b.y && x == right:
				r = '╮'
			case y == bottom && x == b.x:
				r = '╰'
			case y == bottom && x == right:
				r = '╯'
			case y == b.y || y == bottom:
				r = '─'
			case x == b.x || x == right:
				r = '│'
			}
			g.put(x, y, r, b.kind)
		}
	}

	label := runewidth.Truncate(singleLine(b.text), b.w-2, "…")
	x := b.x + 1 + (b.w-2-runewidth.StringWidth(label))/2
	y := b.y + b.h/2
	for _, r := range label {
		w := runewidth.RuneWidth(r)
		if w > 1 && (x < 0 || x+w > g.width) {
			for i := 0; i < w; i++ {
				g.put(x+i, y, ' ', b.kind)
			}
			x += w
			continue
		}
		g.put(x, y, r, b.kind)
		// Continuation cells of a wide rune are blanked out of the output.
		for i := 1; i < w; i++ {
			g.put(x+i, y, 0, b.kind)
		}
		x += w
	}
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// boxSize is the node size in cells at the given zoom.
func boxSize(scale float64) (int, int) {
	w := int(math.Round(mindmap.NodeWidth * scale / CellWidth))
	h := int(math.Round(mindmap.NodeHeight * scale / CellHeight))
	return max(w, minBoxWidth), max(h, minBoxHeight)
}

// cellCenter is the screen point at the middle of a terminal cell.
func cellCenter(cx, cy int) (float64, float64) {
	return float64(cx*CellWidth + CellWidth/2), float64(cy*CellHeight + CellHeight/2)
}

func screenCell(sx, sy float64) (int, int) {
	return int(math.Floor(sx / CellWidth)), int(math.Floor(sy / CellHeight))
}

// scene is everything needed to draw one frame of the canvas, including an
// in-progress drag which is shown without touching the map.
type scene struct {
	mindMap  *mindmap.Map
	view     viewport.Viewport
	selected string
	drag     *dragState
}

func (s scene) effectiveView() viewport.Viewport {
	if s.drag != nil && s.drag.kind == dragCanvas {
		dx, dy := s.drag.screenDelta()
		return s.view.PanTo(s.drag.originX+dx, s.drag.originY+dy)
	}
	return s.view
}

func (s scene) boxes() []nodeBox {
	view := s.effectiveView()
	w, h := boxSize(view.Scale)

	var moved map[string]bool
	var offX, offY float64
	if s.drag != nil && s.drag.kind == dragNode {
		moved = map[string]bool{s.drag.nodeID: true}
		for _, id := range s.mindMap.Descendants(s.drag.nodeID) {
			moved[id] = true
		}
		dx, dy := s.drag.screenDelta()
		offX, offY = dx/view.Scale, dy/view.Scale
	}

	var out []nodeBox
	s.mindMap.Walk(func(n mindmap.Node, _ int) bool {
		x, y := n.X, n.Y
		if moved[n.ID] {
			x += offX
			y += offY
		}
		cx, cy := screenCell(view.ToScreen(x, y))

		kind := cellNode
		switch {
		case n.ID == s.selected:
			kind = cellSelected
		case n.IsRoot():
			kind = cellRoot
		}
		out = append(out, nodeBox{
			id:   n.ID,
			text: n.Text,
			x:    cx - w/2,
			y:    cy - h/2,
			w:    w,
			h:    h,
			kind: kind,
		})
		return true
	})
	return out
}

// hit returns the id of the topmost node covering cell (x, y).
func (s scene) hit(x, y int) string {
	boxes := s.boxes()
	for i := len(boxes) - 1; i >= 0; i-- {
		if boxes[i].contains(x, y) {
			return boxes[i].id
		}
	}
	return ""
}

func (s scene) render(width, height int) *grid {
	g := newGrid(width, height)
	boxes := s.boxes()

	byID := make(map[string]nodeBox, len(boxes))
	for _, b := range boxes {
		byID[b.id] = b
	}
	for _, e := range s.mindMap.Edges() {
		p, c := byID[e.Parent], byID[e.Child]
		g.elbow(p.x+p.w, p.y+p.h/2, c.x-1, c.y+c.h/2)
	}
	g.resolveLinks()

	for _, b := range boxes {
		g.drawBox(b)
	}
	return g
}

// plainLines returns the grid as unstyled text.
func (g *grid) plainLines() []string {
	lines := make([]string, g.height)
	for y, row := range g.runes {
		var sb strings.Builder
		for _, r := range row {
			if r != 0 {
				sb.WriteRune(r)
			}
		}
		lines[y] = sb.String()
	}
	return lines
}

// styledLines renders each row with runs of equal cell kind sharing a style.
func (g *grid) styledLines(st styles) []string {
	lines := make([]string, g.height)
	for y, row := range g.runes {
		var sb, run strings.Builder
		kind := cellBlank
		flush := func() {
			if run.Len() > 0 {
				sb.WriteString(st.forCell(kind).Render(run.String()))
				run.Reset()
			}
		}
		for x, r := range row {
			if k := g.kinds[y][x]; k != kind {
				flush()
				kind = k
			}
			if r != 0 {
				run.WriteRune(r)
			}
		}
		flush()
		lines[y] = sb.String()
	}
	return lines
}

type styles struct {
	blank    lipgloss.Style
	edge     lipgloss.Style
	node     lipgloss.Style
	root     lipgloss.Style
	selected lipgloss.Style
	status   lipgloss.Style
	mode     lipgloss.Style
	err      lipgloss.Style
	success  lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		blank:    lipgloss.NewStyle(),
		edge:     lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")),
		node:     lipgloss.NewStyle().Foreground(lipgloss.Color("#d1d5db")),
		root:     lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#6366f1")).Bold(true),
		selected: lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#3b82f6")).Bold(true),
		status:   lipgloss.NewStyle().Foreground(lipgloss.Color("#d1d5db")),
		mode:     lipgloss.NewStyle().Foreground(lipgloss.Color("#6366f1")).Bold(true),
		err:      lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")).Bold(true),
		success:  lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")),
	}
}

func (s styles) forCell(k cellKind) lipgloss.Style {
	switch k {
	case cellEdge:
		return s.edge
	case cellNode:
		return s.node
	case cellRoot:
		return s.root
	case cellSelected:
		return s.selected
	default:
		return s.blank
	}
}
