// Package viewport converts between screen and canvas coordinates for a
// pannable, zoomable canvas.
//
// A screen point s and a canvas point p are related by s = p*Scale + (X, Y).
package viewport

import "math"

const (
	MinScale  = 0.1
	MaxScale  = 3.0
	ScaleStep = 1.1
)

// Direction selects zoom in or out.
type Direction int

const (
	ZoomOut Direction = -1
	ZoomIn  Direction = 1
)

// WheelDirection maps a wheel delta to a zoom direction: scrolling down
// (positive delta) zooms out.
func WheelDirection(deltaY float64) Direction {
	if deltaY > 0 {
		return ZoomOut
	}
	return ZoomIn
}

// Viewport is the pan offset and zoom scale. Methods return a new value and
// never modify the receiver.
type Viewport struct {
	X     float64
	Y     float64
	Scale float64
}

// New returns the identity viewport.
func New() Viewport {
	return Viewport{Scale: 1}
}

// Clamp limits scale to [MinScale, MaxScale].
func Clamp(scale float64) float64 {
	return math.Min(MaxScale, math.Max(MinScale, scale))
}

func (v Viewport) scale() float64 {
	if math.IsNaN(v.Scale) {
		return 1
	}
	return Clamp(v.Scale)
}

func (d Direction) apply(scale float64) float64 {
	if d == ZoomOut {
		return Clamp(scale / ScaleStep)
	}
	return Clamp(scale * ScaleStep)
}

// ZoomAt zooms one step around the screen point (sx, sy). The canvas point
// under (sx, sy) stays under it after the zoom.
func (v Viewport) ZoomAt(sx, sy float64, dir Direction) Viewport {
	old := v.scale()
	px := (sx - v.X) / old
	py := (sy - v.Y) / old

	next := dir.apply(old)
	return Viewport{
		X:     sx - px*next,
		Y:     sy - py*next,
		Scale: next,
	}
}

// ZoomIn zooms one step, keeping the pan offset.
func (v Viewport) ZoomIn() Viewport {
	v.Scale = ZoomIn.apply(v.scale())
	return v
}

// ZoomOut zooms out one step, keeping the pan offset.
func (v Viewport) ZoomOut() Viewport {
	v.Scale = ZoomOut.apply(v.scale())
	return v
}

// PanTo sets the pan offset absolutely.
func (v Viewport) PanTo(x, y float64) Viewport {
	v.X, v.Y = x, y
	v.Scale = v.scale()
	return v
}

// PanBy moves the pan offset by (dx, dy) screen units.
func (v Viewport) PanBy(dx, dy float64) Viewport {
	return v.PanTo(v.X+dx, v.Y+dy)
}

// Reset returns the identity viewport.
func (v Viewport) Reset() Viewport {
	return New()
}

// ToCanvas converts a screen point to canvas coordinates.
func (v Viewport) ToCanvas(sx, sy float64) (x, y float64) {
	s := v.scale()
	return (sx - v.X) / s, (sy - v.Y) / s
}

// ToScreen converts a canvas point to screen coordinates.
func (v Viewport) ToScreen(x, y float64) (sx, sy float64) {
	s := v.scale()
	return x*s + v.X, y*s + v.Y
}

// Percent is the zoom level rounded to a whole percentage.
func (v Viewport) Percent() int {
	return int(math.Round(v.scale() * 100))
}
