package main

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"mindflerm/internal/mindmap"
)

const (
	exportPadding  = 40.0
	cornerRadius   = 8.0
	labelPadding   = 8.0
	exportFontSize = 13.0
	maxPNGSide     = 4096.0
	minPNGScale    = 0.1

	colorRoot     = "#6366f1"
	colorSelected = "#3b82f6"
	colorNode     = "#ffffff"
	colorBorder   = "#d1d5db"
	colorLink     = "#9ca3af"
	colorText     = "#111827"
	colorTextDark = "#ffffff"
)

var (
	errEmptyExport    = errors.New("nothing to export")
	errExportTooLarge = errors.New("map too large for a PNG export")
)

func (op FileOperation) extension() string {
	switch op {
	case FileOpExportSVG:
		return ".svg"
	case FileOpExportTXT:
		return ".txt"
	default:
		return ".png"
	}
}

func (op FileOperation) String() string {
	switch op {
	case FileOpExportSVG:
		return "SVG"
	case FileOpExportTXT:
		return "TXT"
	default:
		return "PNG"
	}
}

// exportFilename applies the default name and extension for op.
func exportFilename(name string, op FileOperation) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "mindmap"
	}
	if !strings.EqualFold(filepath.Ext(name), op.extension()) {
		name += op.extension()
	}
	return name
}

// writeFile creates path and hands it to write, reporting close errors.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		return err
	}
	return w.Flush()
}

type bounds struct {
	minX, minY, maxX, maxY float64
}

func (b bounds) width() float64  { return b.maxX - b.minX }
func (b bounds) height() float64 { return b.maxY - b.minY }

// mapBounds is the padded canvas rectangle covering every node box.
func mapBounds(m *mindmap.Map) bounds {
	b := bounds{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	m.Walk(func(n mindmap.Node, _ int) bool {
		b.minX = math.Min(b.minX, n.X-mindmap.NodeWidth/2)
		b.minY = math.Min(b.minY, n.Y-mindmap.NodeHeight/2)
		b.maxX = math.Max(b.maxX, n.X+mindmap.NodeWidth/2)
		b.maxY = math.Max(b.maxY, n.Y+mindmap.NodeHeight/2)
		return true
	})
	b.minX -= exportPadding
	b.minY -= exportPadding
	b.maxX += exportPadding
	b.maxY += exportPadding
	return b
}

func nodeColors(n mindmap.Node, selected string) (fill, text string) {
	switch {
	case n.ID == selected:
		return colorSelected, colorTextDark
	case n.IsRoot():
		return colorRoot, colorTextDark
	default:
		return colorNode, colorText
	}
}

// linkCurve is the cubic bezier from the right side of the parent to the
// left side of the child, as start, two control points and end.
func linkCurve(p, c mindmap.Node) [4][2]float64 {
	sx, sy := p.X+mindmap.NodeWidth/2, p.Y
	ex, ey := c.X-mindmap.NodeWidth/2, c.Y
	off := (ex - sx) / 2
	return [4][2]float64{{sx, sy}, {sx + off, sy}, {ex - off, ey}, {ex, ey}}
}

func loadFace(size float64) (font.Face, error) {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

func exportPNG(m *mindmap.Map, w io.Writer) error {
	if m.Len() == 0 {
		return errEmptyExport
	}
	b := mapBounds(m)
	scale, err := pngScale(b)
	if err != nil {
		return err
	}
	dc := gg.NewContext(int(math.Ceil(b.width()*scale)), int(math.Ceil(b.height()*scale)))
	dc.SetColor(color.White)
	dc.Clear()
	// Glyphs are not affected by the transform, so the face is sized instead.
	dc.Scale(scale, scale)

	face, err := loadFace(exportFontSize * scale)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)

	for _, e := range m.Edges() {
		p, _ := m.Node(e.Parent)
		c, _ := m.Node(e.Child)
		pts := linkCurve(p, c)
		dc.MoveTo(pts[0][0]-b.minX, pts[0][1]-b.minY)
		dc.CubicTo(
			pts[1][0]-b.minX, pts[1][1]-b.minY,
			pts[2][0]-b.minX, pts[2][1]-b.minY,
			pts[3][0]-b.minX, pts[3][1]-b.minY,
		)
		dc.SetHexColor(colorLink)
		dc.SetLineWidth(2)
		dc.SetLineCapRound()
		dc.Stroke()
	}

	selected := m.SelectedID()
	m.Walk(func(n mindmap.Node, _ int) bool {
		fill, text := nodeColors(n, selected)
		x := n.X - mindmap.NodeWidth/2 - b.minX
		y := n.Y - mindmap.NodeHeight/2 - b.minY

		dc.DrawRoundedRectangle(x, y, mindmap.NodeWidth, mindmap.NodeHeight, cornerRadius)
		dc.SetHexColor(fill)
		dc.FillPreserve()
		dc.SetHexColor(colorBorder)
		dc.SetLineWidth(1)
		dc.Stroke()

		dc.SetHexColor(text)
		label := fitLabel(dc, singleLine(n.Text), (mindmap.NodeWidth-2*labelPadding)*scale)
		dc.DrawStringAnchored(label, n.X-b.minX, n.Y-b.minY, 0.5, 0.35)
		return true
	})

	return dc.EncodePNG(w)
}

// pngScale shrinks maps whose bounds exceed maxPNGSide so the image buffer
// stays bounded. Maps that would need shrinking below minPNGScale fail.
func pngScale(b bounds) (float64, error) {
	side := math.Max(b.width(), b.height())
	if side <= maxPNGSide {
		return 1, nil
	}
	scale := maxPNGSide / side
	if scale < minPNGScale {
		return 0, fmt.Errorf("%w: map spans %.0f units", errExportTooLarge, side)
	}
	return scale, nil
}

func fitLabel(dc *gg.Context, text string, width float64) string {
	if w, _ := dc.MeasureString(text); w <= width {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		s := string(runes) + "…"
		if w, _ := dc.MeasureString(s); w <= width {
			return s
		}
	}
	return ""
}

func exportSVG(m *mindmap.Map, w io.Writer) error {
	if m.Len() == 0 {
		return errEmptyExport
	}
	b := mapBounds(m)
	px := func(v, origin float64) int { return int(math.Round(v - origin)) }

	canvas := svg.New(w)
	canvas.Start(int(math.Ceil(b.width())), int(math.Ceil(b.height())))
	canvas.Rect(0, 0, int(math.Ceil(b.width())), int(math.Ceil(b.height())), "fill:#ffffff")

	for _, e := range m.Edges() {
		p, _ := m.Node(e.Parent)
		c, _ := m.Node(e.Child)
		pts := linkCurve(p, c)
		canvas.Bezier(
			px(pts[0][0], b.minX), px(pts[0][1], b.minY),
			px(pts[1][0], b.minX), px(pts[1][1], b.minY),
			px(pts[2][0], b.minX), px(pts[2][1], b.minY),
			px(pts[3][0], b.minX), px(pts[3][1], b.minY),
			"fill:none;stroke:"+colorLink+";stroke-width:2;stroke-linecap:round",
		)
	}

	selected := m.SelectedID()
	maxLabel := int((mindmap.NodeWidth - 2*labelPadding) / CellWidth)
	m.Walk(func(n mindmap.Node, _ int) bool {
		fill, text := nodeColors(n, selected)
		canvas.Roundrect(
			px(n.X-mindmap.NodeWidth/2, b.minX), px(n.Y-mindmap.NodeHeight/2, b.minY),
			mindmap.NodeWidth, mindmap.NodeHeight, cornerRadius, cornerRadius,
			"fill:"+fill+";stroke:"+colorBorder+";stroke-width:1",
		)
		canvas.Text(
			px(n.X, b.minX), px(n.Y, b.minY),
			runewidth.Truncate(singleLine(n.Text), maxLabel, "…"),
			"fill:"+text+";font-family:monospace;font-size:13px;text-anchor:middle;dominant-baseline:middle",
		)
		return true
	})
	canvas.End()
	return nil
}

// exportText writes what the canvas currently shows, without styling.
func exportText(lines []string, w io.Writer) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// runExport writes the map in the format op names and returns the path used.
func (m *model) runExport(name string, op FileOperation) (string, error) {
	path, err := m.config.ExportPath(exportFilename(name, op))
	if err != nil {
		return "", err
	}

	switch op {
	case FileOpExportSVG:
		err = writeFile(path, func(w io.Writer) error { return exportSVG(m.mindMap, w) })
	case FileOpExportTXT:
		lines := m.scene().render(max(m.width, 80), max(m.canvasHeight(), 24)).plainLines()
		err = writeFile(path, func(w io.Writer) error { return exportText(lines, w) })
	default:
		err = writeFile(path, func(w io.Writer) error { return exportPNG(m.mindMap, w) })
	}
	if err != nil {
		return "", fmt.Errorf("export %s: %w", op, err)
	}
	return path, nil
}
