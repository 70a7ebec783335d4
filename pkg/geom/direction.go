package geom

import "fmt"

// Direction is the primary axis a container places its children along.
type Direction uint8

const (
	Vertical   Direction = iota // Children placed top-to-bottom
	Horizontal                  // Children placed left-to-right
)

// String returns "horizontal" or "vertical".
func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Flip returns the perpendicular direction.
func (d Direction) Flip() Direction {
	if d == Horizontal {
		return Vertical
	}
	return Horizontal
}

// ParseDirection parses "horizontal"/"h"/"row" or "vertical"/"v"/"column".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "horizontal", "h", "row":
		return Horizontal, nil
	case "vertical", "v", "column", "":
		return Vertical, nil
	}
	return Vertical, fmt.Errorf("unknown direction %q", s)
}

// Slot builds a rectangle from positions and extents expressed along the
// primary and cross axes of d.
func Slot(d Direction, primaryPos, crossPos, primaryLen, crossLen float64) Rect {
	if d == Horizontal {
		return Rect{X: primaryPos, Y: crossPos, Width: primaryLen, Height: crossLen}
	}
	return Rect{X: crossPos, Y: primaryPos, Width: crossLen, Height: primaryLen}
}

// SizeOf builds a Size from extents along the primary and cross axes of d.
func SizeOf(d Direction, primary, cross float64) Size {
	if d == Horizontal {
		return Size{Width: primary, Height: cross}
	}
	return Size{Width: cross, Height: primary}
}
