package main

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"mindflerm/internal/mindmap"
	"mindflerm/internal/viewport"
)

func testScene(m *mindmap.Map) scene {
	return scene{mindMap: m, view: viewport.New(), selected: m.SelectedID()}
}

func rowRunes(t *testing.T, g *grid, y int) []rune {
	t.Helper()
	if y < 0 || y >= g.height {
		t.Fatalf("row %d out of range", y)
	}
	return g.runes[y]
}

func TestLinkRune(t *testing.T) {
	tests := []struct {
		bits uint8
		want rune
	}{
		{linkLeft | linkRight, '─'},
		{linkRight, '─'},
		{linkUp | linkDown, '│'},
		{linkDown | linkRight, '┌'},
		{linkDown | linkLeft, '┐'},
		{linkUp | linkRight, '└'},
		{linkUp | linkLeft, '┘'},
		{linkUp | linkDown | linkRight, '├'},
		{linkUp | linkDown | linkLeft, '┤'},
		{linkLeft | linkRight | linkDown, '┬'},
		{linkLeft | linkRight | linkUp, '┴'},
		{linkUp | linkDown | linkLeft | linkRight, '┼'},
	}
	for _, tt := range tests {
		if got := linkRune(tt.bits); got != tt.want {
			t.Errorf("linkRune(%04b) = %q, want %q", tt.bits, got, tt.want)
		}
	}
}

func TestBoxSize(t *testing.T) {
	tests := []struct {
		scale float64
		w, h  int
	}{
		{1, 15, 3},
		{viewport.MinScale, minBoxWidth, minBoxHeight},
		{viewport.MaxScale, 45, 8},
	}
	for _, tt := range tests {
		w, h := boxSize(tt.scale)
		if w != tt.w || h != tt.h {
			t.Errorf("boxSize(%v) = %dx%d, want %dx%d", tt.scale, w, h, tt.w, tt.h)
		}
	}
}

func TestRenderRootBox(t *testing.T) {
	m := mindmap.New()
	g := testScene(m).render(120, 39)

	top := rowRunes(t, g, 17)
	if top[43] != '╭' || top[57] != '╮' {
		t.Errorf("top border = %q", string(top[40:60]))
	}
	mid := rowRunes(t, g, 18)
	if mid[43] != '│' || mid[57] != '│' {
		t.Errorf("side borders = %q", string(mid[40:60]))
	}
	if got := string(mid[44:56]); got != "Central Idea" {
		t.Errorf("label = %q", got)
	}
	if g.kinds[18][50] != cellRoot {
		t.Errorf("root cell kind = %v", g.kinds[18][50])
	}
}

func TestRenderSelectedKind(t *testing.T) {
	m := mindmap.New()
	m.SelectNode(m.RootID())
	g := testScene(m).render(120, 39)
	if g.kinds[18][50] != cellSelected {
		t.Errorf("selected root kind = %v", g.kinds[18][50])
	}
}

func TestRenderSingleChildConnector(t *testing.T) {
	m := mindmap.New()
	m.AddNode(m.RootID(), "Child")
	g := testScene(m).render(120, 39)

	row := rowRunes(t, g, 18)
	if got := string(row[58:65]); got != strings.Repeat("─", 7) {
		t.Errorf("connector = %q", got)
	}
	if row[65] != '│' {
		t.Errorf("child border = %q", row[65])
	}
}

func TestRenderBranchingConnector(t *testing.T) {
	m := mindmap.New()
	m.AddNode(m.RootID(), "A")
	m.AddNode(m.RootID(), "B")
	g := testScene(m).render(120, 39)

	// Children sit at y=260 and y=340, rows 16 and 21; the trunk is column 61.
	checks := []struct {
		x, y int
		want rune
	}{
		{61, 16, '┌'},
		{61, 17, '│'},
		{61, 18, '┤'},
		{61, 20, '│'},
		{61, 21, '└'},
		{64, 16, '─'},
		{64, 21, '─'},
		{58, 18, '─'},
	}
	for _, c := range checks {
		if got := g.runes[c.y][c.x]; got != c.want {
			t.Errorf("cell (%d,%d) = %q, want %q", c.x, c.y, got, c.want)
		}
		if g.kinds[c.y][c.x] != cellEdge {
			t.Errorf("cell (%d,%d) kind = %v", c.x, c.y, g.kinds[c.y][c.x])
		}
	}
}

func TestRenderClipsOffscreen(t *testing.T) {
	m := mindmap.New()
	s := testScene(m)
	s.view = s.view.PanTo(-2000, -2000)

	g := s.render(40, 10)
	for _, line := range g.plainLines() {
		if strings.TrimSpace(line) != "" {
			t.Fatalf("offscreen map drew %q", line)
		}
	}
}

func TestLabelTruncation(t *testing.T) {
	m := mindmap.New(mindmap.WithRootText("A very long label that cannot fit"))
	g := testScene(m).render(120, 39)

	label := strings.TrimSpace(strings.Trim(strings.TrimSpace(string(g.runes[18][43:58])), "│"))
	if !strings.HasSuffix(label, "…") {
		t.Errorf("label not ellipsized: %q", label)
	}
	if w := runewidth.StringWidth(label); w > 13 {
		t.Errorf("label width %d overflows the box", w)
	}
}

func TestWideRunesKeepColumns(t *testing.T) {
	m := mindmap.New(mindmap.WithRootText("日本語"))
	g := testScene(m).render(120, 39)

	lines := g.plainLines()
	if !strings.Contains(lines[18], "日本語") {
		t.Errorf("wide label missing: %q", lines[18])
	}
	for i, line := range lines {
		if w := runewidth.StringWidth(line); w != 120 {
			t.Errorf("line %d width = %d, want 120", i, w)
		}
	}
}

func TestWideRunesAtGridEdges(t *testing.T) {
	tests := []struct {
		name string
		box  nodeBox
	}{
		{"right edge", nodeBox{text: "日本語日本語", x: 0, y: 0, w: 10, h: 3}},
		{"left edge", nodeBox{text: "日本語日本語", x: -4, y: 0, w: 10, h: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGrid(6, 3)
			g.drawBox(tt.box)
			for i, line := range g.plainLines() {
				if w := runewidth.StringWidth(line); w != 6 {
					t.Errorf("line %d = %q, width %d, want 6", i, line, w)
				}
			}
		})
	}
}

func TestOverlappingBoxSplitsWideRune(t *testing.T) {
	g := newGrid(20, 3)
	g.drawBox(nodeBox{text: "日本語", x: 0, y: 0, w: 10, h: 3, kind: cellNode})
	// A neighbour whose left border lands on the continuation cell of 本.
	g.drawBox(nodeBox{text: "x", x: 5, y: 0, w: 5, h: 3, kind: cellNode})

	for i, line := range g.plainLines() {
		if w := runewidth.StringWidth(line); w != 20 {
			t.Errorf("line %d = %q, width %d, want 20", i, line, w)
		}
	}
	if got := string(rowRunes(t, g, 1)[4:6]); got != " │" {
		t.Errorf("split cells = %q", got)
	}
}

func TestHit(t *testing.T) {
	m := mindmap.New()
	child, _ := m.AddNode(m.RootID(), "Child")
	s := testScene(m)

	tests := []struct {
		x, y int
		want string
	}{
		{50, 18, m.RootID()},
		{43, 17, m.RootID()},
		{57, 19, m.RootID()},
		{58, 18, ""},
		{72, 18, child},
		{0, 0, ""},
	}
	for _, tt := range tests {
		if got := s.hit(tt.x, tt.y); got != tt.want {
			t.Errorf("hit(%d,%d) = %q, want %q", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestNodeDragPreview(t *testing.T) {
	m := mindmap.New()
	child, _ := m.AddNode(m.RootID(), "Child")
	s := testScene(m)
	s.drag = &dragState{kind: dragNode, nodeID: m.RootID(), startX: 50, startY: 18, curX: 53, curY: 18}

	boxes := s.boxes()
	if boxes[0].x != 46 {
		t.Errorf("dragged root at x=%d, want 46", boxes[0].x)
	}
	if boxes[1].id != child || boxes[1].x != 68 {
		t.Errorf("dragged child at x=%d, want 68", boxes[1].x)
	}
	if n, _ := m.Node(m.RootID()); n.X != 400 {
		t.Error("preview modified the map")
	}
}

func TestStyledLinesKeepText(t *testing.T) {
	m := mindmap.New()
	g := testScene(m).render(60, 30)
	styled := g.styledLines(defaultStyles())
	if got := stripANSI(styled[18]); got != g.plainLines()[18] {
		t.Errorf("styled row differs:\n%q\n%q", got, g.plainLines()[18])
	}
}
