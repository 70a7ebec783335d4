package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/panes/pkg/geom"
)

// spy is a leaf that records every frame it is given.
type spy struct {
	Leaf
	sets  []geom.Rect
	onSet func(geom.Rect)
}

func newSpy(name string, natural geom.Size) *spy {
	return &spy{Leaf: Leaf{name: name, natural: natural}}
}

func (p *spy) SetFrame(r geom.Rect) {
	p.sets = append(p.sets, r)
	if p.onSet != nil {
		p.onSet(r)
	}
	p.Leaf.SetFrame(r)
}

const epsilon = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < epsilon }

func assertRect(t *testing.T, label string, got, want geom.Rect) {
	t.Helper()
	if !approx(got.X, want.X) || !approx(got.Y, want.Y) ||
		!approx(got.Width, want.Width) || !approx(got.Height, want.Height) {
		t.Errorf("%s: got %v, want %v", label, got, want)
	}
}
