// Package geom provides the float64 geometry primitives shared by the layout
// engine, the document format and the renderers.
//
// Coordinates follow screen conventions: X grows to the right and Y grows
// downward. A [Rect] is described by its top-left corner and its size.
package geom

import (
	"fmt"
	"math"
)

// Unbounded is the extent passed to measurement when an axis is open-ended,
// such as the stacking axis of a scroll container. It is large but finite so
// that subtracting insets never produces NaN.
const Unbounded = math.MaxFloat32

// Point is an (X, Y) coordinate.
type Point struct {
	X, Y float64
}

// Size is a width and height pair.
type Size struct {
	Width, Height float64
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool { return s.Width == 0 && s.Height == 0 }

// Along returns the extent of s along direction d.
func (s Size) Along(d Direction) float64 {
	if d == Horizontal {
		return s.Width
	}
	return s.Height
}

// Across returns the extent of s perpendicular to direction d.
func (s Size) Across(d Direction) float64 {
	if d == Horizontal {
		return s.Height
	}
	return s.Width
}

// Rect is a rectangle with float64 coordinates.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// NewRect creates a Rect from its origin and dimensions.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Size returns the dimensions of r.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Origin returns the top-left corner of r.
func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Bounds returns r moved to the origin: the local coordinate space a
// container lays its children out in.
func (r Rect) Bounds() Rect { return Rect{Width: r.Width, Height: r.Height} }

// IsZero reports whether r is the zero rectangle.
func (r Rect) IsZero() bool { return r == Rect{} }

// IsEmpty reports whether r encloses no area. Containers skip passes over
// empty bounds.
func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Inset returns r shrunk by e. Positive values shrink, negative values grow.
// The result is not clamped; callers that need non-negative sizes clamp.
func (r Rect) Inset(e Insets) Rect {
	return Rect{
		X:      r.X + e.Left,
		Y:      r.Y + e.Top,
		Width:  r.Width - e.Left - e.Right,
		Height: r.Height - e.Top - e.Bottom,
	}
}

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Along returns the extent of r along direction d.
func (r Rect) Along(d Direction) float64 { return r.Size().Along(d) }

// Across returns the extent of r perpendicular to direction d.
func (r Rect) Across(d Direction) float64 { return r.Size().Across(d) }

// String formats r as "(x,y wxh)".
func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.Width, r.Height)
}

// Insets holds per-edge distances.
type Insets struct {
	Top, Left, Bottom, Right float64
}

// Uniform returns Insets with the same value on every edge.
func Uniform(v float64) Insets {
	return Insets{Top: v, Left: v, Bottom: v, Right: v}
}

// Horizontal returns Left + Right.
func (e Insets) Horizontal() float64 { return e.Left + e.Right }

// Vertical returns Top + Bottom.
func (e Insets) Vertical() float64 { return e.Top + e.Bottom }

// Along returns the sum of the two insets on the axis of d.
func (e Insets) Along(d Direction) float64 {
	if d == Horizontal {
		return e.Horizontal()
	}
	return e.Vertical()
}

// Across returns the sum of the two insets perpendicular to d.
func (e Insets) Across(d Direction) float64 {
	if d == Horizontal {
		return e.Vertical()
	}
	return e.Horizontal()
}

// Leading returns the inset at the start of the axis of d.
func (e Insets) Leading(d Direction) float64 {
	if d == Horizontal {
		return e.Left
	}
	return e.Top
}

// Trailing returns the inset at the end of the axis of d.
func (e Insets) Trailing(d Direction) float64 {
	if d == Horizontal {
		return e.Right
	}
	return e.Bottom
}

// Add returns the edge-wise sum of e and o.
func (e Insets) Add(o Insets) Insets {
	return Insets{Top: e.Top + o.Top, Left: e.Left + o.Left, Bottom: e.Bottom + o.Bottom, Right: e.Right + o.Right}
}

// IsZero reports whether every edge is zero.
func (e Insets) IsZero() bool { return e == Insets{} }

// Hairline returns the thinnest line a display with the given scale can
// show: one device pixel in logical units. A non-positive scale counts as 1.
func Hairline(scale float64) float64 {
	if scale <= 0 {
		return 1
	}
	return 1 / scale
}
