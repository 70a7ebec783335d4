package layout

import (
	"math"

	"github.com/matzehuels/panes/pkg/geom"
)

// Element is anything a container can place. The rendering host implements it
// for leaf views; every container in this package implements it too, which is
// how containers nest.
type Element interface {
	// Frame returns the element's rectangle in its parent's coordinate space.
	Frame() geom.Rect

	// SetFrame moves and resizes the element. Containers run a layout pass
	// when their bounds change.
	SetFrame(geom.Rect)

	// SizeThatFits returns the element's natural size for the available
	// space. It must not have side effects.
	SizeThatFits(available geom.Size) geom.Size
}

// Hider is implemented by elements that can be hidden. Scroll skips hidden
// children when stacking.
type Hider interface {
	Hidden() bool
}

// Inseter is implemented by elements that carry their own insets. When an
// element serves as a sizing reference, its insets are added to its measured
// size.
type Inseter interface {
	LayoutInsets() geom.Insets
}

// Namer is implemented by elements that carry a stable name for logs,
// snapshots and renderers.
type Namer interface {
	Name() string
}

// Parent is implemented by elements that own children.
type Parent interface {
	Element
	Children() []Element
}

// NameOf returns the element's name, or "" when it has none.
func NameOf(el Element) string {
	if n, ok := el.(Namer); ok {
		return n.Name()
	}
	return ""
}

func isHidden(el Element) bool {
	h, ok := el.(Hider)
	return ok && h.Hidden()
}

// measure asks el for its natural size. Non-positive available space or a
// size the host cannot determine degrades to zero instead of failing.
func measure(el Element, available geom.Size) geom.Size {
	if available.Width <= 0 || available.Height <= 0 {
		return geom.Size{}
	}
	s := el.SizeThatFits(available)
	return geom.Size{Width: sanitize(s.Width), Height: sanitize(s.Height)}
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

// snapHairline lifts sub-unit measurements to one device pixel so hairline
// dividers never collapse.
func snapHairline(v, scale float64) float64 {
	if v > 0 && v < 1 {
		return geom.Hairline(scale)
	}
	return v
}
