package layout

import (
	"math"
	"strings"

	"github.com/matzehuels/panes/pkg/geom"
)

// Leaf is a childless element with a natural size. It is the reference
// rendering-host element used by documents and previews.
type Leaf struct {
	name    string
	natural geom.Size
	measure func(geom.Size) geom.Size
	insets  geom.Insets
	hidden  bool
	frame   geom.Rect
}

// NewLeaf creates a leaf that reports natural as its size.
func NewLeaf(name string, natural geom.Size) *Leaf {
	return &Leaf{name: name, natural: natural}
}

// NewMeasuredLeaf creates a leaf whose size depends on the available space.
func NewMeasuredLeaf(name string, fn func(available geom.Size) geom.Size) *Leaf {
	return &Leaf{name: name, measure: fn}
}

func (l *Leaf) Name() string                  { return l.name }
func (l *Leaf) Frame() geom.Rect              { return l.frame }
func (l *Leaf) SetFrame(r geom.Rect)          { l.frame = r }
func (l *Leaf) Hidden() bool                  { return l.hidden }
func (l *Leaf) SetHidden(hidden bool)         { l.hidden = hidden }
func (l *Leaf) LayoutInsets() geom.Insets     { return l.insets }
func (l *Leaf) SetLayoutInsets(e geom.Insets) { l.insets = e }

// SizeThatFits returns the measured size when a measure function is set and
// the natural size otherwise.
func (l *Leaf) SizeThatFits(available geom.Size) geom.Size {
	if l.measure != nil {
		return l.measure(available)
	}
	return l.natural
}

// TextMeasure returns a measure function for text set in a monospaced grid:
// each rune is advance wide and each line is lineHeight tall. Words wrap at
// the available width.
func TextMeasure(text string, advance, lineHeight float64) func(geom.Size) geom.Size {
	words := strings.Fields(text)
	return func(available geom.Size) geom.Size {
		if len(words) == 0 || advance <= 0 {
			return geom.Size{}
		}
		perLine := max(1, int(math.Floor(available.Width/advance)))

		lines, col, widest := 1, 0, 0
		for _, w := range words {
			n := len([]rune(w))
			switch {
			case col == 0:
				col = n
			case col+1+n <= perLine:
				col += 1 + n
			default:
				lines++
				col = n
			}
			for col > perLine {
				widest = perLine
				lines++
				col -= perLine
			}
			widest = max(widest, col)
		}
		return geom.Size{Width: float64(widest) * advance, Height: float64(lines) * lineHeight}
	}
}
