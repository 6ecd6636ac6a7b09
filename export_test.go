package main

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"mindflerm/internal/mindmap"
)

func TestExportFilename(t *testing.T) {
	tests := []struct {
		name string
		op   FileOperation
		want string
	}{
		{"", FileOpExportPNG, "mindmap.png"},
		{"  ", FileOpExportSVG, "mindmap.svg"},
		{"plan", FileOpExportTXT, "plan.txt"},
		{"plan.png", FileOpExportPNG, "plan.png"},
		{"plan.PNG", FileOpExportPNG, "plan.PNG"},
		{"plan.png", FileOpExportSVG, "plan.png.svg"},
	}
	for _, tt := range tests {
		if got := exportFilename(tt.name, tt.op); got != tt.want {
			t.Errorf("exportFilename(%q, %v) = %q, want %q", tt.name, tt.op, got, tt.want)
		}
	}
}

func TestMapBounds(t *testing.T) {
	m := mindmap.New()
	b := mapBounds(m)
	if b.minX != 300 || b.minY != 240 || b.maxX != 500 || b.maxY != 360 {
		t.Errorf("bounds = %+v", b)
	}

	m.AddNode(m.RootID(), "A")
	m.AddNode(m.RootID(), "B")
	b = mapBounds(m)
	// Children at x=580, y=260 and y=340.
	if b.maxX != 680 || b.minY != 200 || b.maxY != 400 {
		t.Errorf("bounds with children = %+v", b)
	}
}

func TestLinkCurve(t *testing.T) {
	p := mindmap.Node{X: 400, Y: 300}
	c := mindmap.Node{X: 580, Y: 220}
	pts := linkCurve(p, c)

	want := [4][2]float64{{460, 300}, {490, 300}, {490, 220}, {520, 220}}
	if pts != want {
		t.Errorf("curve = %v, want %v", pts, want)
	}
}

func TestExportPNG(t *testing.T) {
	m := mindmap.New()
	var buf bytes.Buffer
	if err := exportPNG(m, &buf); err != nil {
		t.Fatalf("exportPNG: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 120 {
		t.Errorf("size = %v", img.Bounds())
	}

	// Inside the root rectangle, clear of the label and the corners.
	got := color.NRGBAModel.Convert(img.At(48, 50)).(color.NRGBA)
	want := color.NRGBA{R: 0x63, G: 0x66, B: 0xf1, A: 0xff}
	if got != want {
		t.Errorf("root fill = %v, want %v", got, want)
	}

	corner := color.NRGBAModel.Convert(img.At(2, 2)).(color.NRGBA)
	if corner != (color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}) {
		t.Errorf("background = %v", corner)
	}
}

func TestExportPNGShrinksWideMaps(t *testing.T) {
	m := mindmap.New()
	id, _ := m.AddNode(m.RootID(), "Far")
	m.UpdateNodePosition(id, 10000, 300)

	var buf bytes.Buffer
	if err := exportPNG(m, &buf); err != nil {
		t.Fatalf("exportPNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dx := img.Bounds().Dx(); dx > int(maxPNGSide)+1 || dx < int(maxPNGSide)-1 {
		t.Errorf("width = %d, want about %v", dx, maxPNGSide)
	}
}

func TestExportPNGRejectsHugeMaps(t *testing.T) {
	m := mindmap.New()
	id, _ := m.AddNode(m.RootID(), "Very far")
	m.UpdateNodePosition(id, 1e5, 1e5)

	var buf bytes.Buffer
	err := exportPNG(m, &buf)
	if !errors.Is(err, errExportTooLarge) {
		t.Fatalf("exportPNG = %v, want errExportTooLarge", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes for a rejected export", buf.Len())
	}
}

func TestPNGScale(t *testing.T) {
	tests := []struct {
		name string
		b    bounds
		want float64
	}{
		{"small", bounds{0, 0, 200, 120}, 1},
		{"at limit", bounds{0, 0, maxPNGSide, 10}, 1},
		{"tall", bounds{0, 0, 100, 2 * maxPNGSide}, 0.5},
	}
	for _, tt := range tests {
		got, err := pngScale(tt.b)
		if err != nil || got != tt.want {
			t.Errorf("%s: pngScale = %v, %v; want %v", tt.name, got, err, tt.want)
		}
	}
}

func TestExportSVG(t *testing.T) {
	m := mindmap.New()
	m.AddNode(m.RootID(), "Child")
	m.AddNode(m.RootID(), "Sibling")

	var buf bytes.Buffer
	if err := exportSVG(m, &buf); err != nil {
		t.Fatalf("exportSVG: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"<svg", "</svg>", "Central Idea", "Child", "Sibling", colorLink} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if n := strings.Count(out, "<path"); n != 2 {
		t.Errorf("svg has %d links, want 2", n)
	}
	if n := strings.Count(out, "<rect"); n != 4 {
		t.Errorf("svg has %d rects, want background plus 3 nodes", n)
	}
}

func TestExportText(t *testing.T) {
	var buf bytes.Buffer
	if err := exportText([]string{"ab   ", "  c"}, &buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "ab\n  c\n" {
		t.Errorf("text = %q", buf.String())
	}
}
