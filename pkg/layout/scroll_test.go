package layout

import (
	"testing"

	"github.com/matzehuels/panes/pkg/geom"
)

func TestScrollContentExtent(t *testing.T) {
	s := NewScroll(geom.Vertical)
	s.SetContentInsets(geom.Insets{Top: 5, Bottom: 5})
	leaves := []*Leaf{NewLeaf("a", geom.Size{}), NewLeaf("b", geom.Size{}), NewLeaf("c", geom.Size{})}
	s.Attach(leaves[0], Fixed(10))
	s.Attach(leaves[1], Fixed(20))
	s.Attach(leaves[2], Fixed(30))
	s.SetFrame(geom.NewRect(0, 0, 100, 40))

	if got := s.ContentSize(); got != (geom.Size{Width: 100, Height: 70}) {
		t.Errorf("ContentSize = %v, want 100x70", got)
	}
	assertRect(t, "a", leaves[0].Frame(), geom.NewRect(0, 5, 100, 10))
	assertRect(t, "b", leaves[1].Frame(), geom.NewRect(0, 15, 100, 20))
	assertRect(t, "c", leaves[2].Frame(), geom.NewRect(0, 35, 100, 30))
}

func TestScrollPolicies(t *testing.T) {
	type tc struct {
		dir     geom.Direction
		frame   geom.Rect
		insets  geom.Insets
		src     Source
		natural geom.Size
		want    geom.Rect
		content geom.Size
	}

	tests := map[string]tc{
		"automatic vertical": {
			dir:     geom.Vertical,
			frame:   geom.NewRect(0, 0, 100, 50),
			src:     Auto(),
			natural: geom.Size{Width: 20, Height: 12},
			want:    geom.NewRect(0, 0, 100, 12),
			content: geom.Size{Width: 100, Height: 12},
		},
		"automatic horizontal with insets": {
			dir:     geom.Horizontal,
			frame:   geom.NewRect(0, 0, 100, 50),
			insets:  geom.Insets{Left: 3, Right: 3, Top: 5, Bottom: 5},
			src:     Auto().WithInsets(geom.Insets{Left: 2, Right: 2}),
			natural: geom.Size{Width: 30, Height: 10},
			want:    geom.NewRect(5, 5, 30, 40),
			content: geom.Size{Width: 40, Height: 40},
		},
		"percentage of viewport": {
			dir:     geom.Vertical,
			frame:   geom.NewRect(0, 0, 60, 40),
			src:     Percent(50),
			want:    geom.NewRect(0, 0, 60, 20),
			content: geom.Size{Width: 60, Height: 20},
		},
		"equal is one page": {
			dir:     geom.Vertical,
			frame:   geom.NewRect(0, 0, 60, 40),
			src:     Equal(),
			want:    geom.NewRect(0, 0, 60, 40),
			content: geom.Size{Width: 60, Height: 40},
		},
		"hairline automatic": {
			dir:     geom.Vertical,
			frame:   geom.NewRect(0, 0, 60, 40),
			src:     Auto(),
			natural: geom.Size{Width: 60, Height: 0.4},
			want:    geom.NewRect(0, 0, 60, 0.5),
			content: geom.Size{Width: 60, Height: 0.5},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := NewScroll(tt.dir)
			s.SetContentInsets(tt.insets)
			l := NewLeaf("child", tt.natural)
			s.Attach(l, tt.src)
			s.SetFrame(tt.frame)

			assertRect(t, "child", l.Frame(), tt.want)
			if got := s.ContentSize(); !approx(got.Width, tt.content.Width) || !approx(got.Height, tt.content.Height) {
				t.Errorf("ContentSize = %v, want %v", got, tt.content)
			}
		})
	}
}

func TestScrollSkipsHidden(t *testing.T) {
	s := NewScroll(geom.Vertical)
	hidden, shown := NewLeaf("hidden", geom.Size{}), NewLeaf("shown", geom.Size{})
	hidden.SetHidden(true)
	s.Attach(hidden, Fixed(10))
	s.Attach(shown, Fixed(20))
	s.SetFrame(geom.NewRect(0, 0, 50, 50))

	if !hidden.Frame().IsZero() {
		t.Errorf("hidden child placed at %v", hidden.Frame())
	}
	assertRect(t, "shown", shown.Frame(), geom.NewRect(0, 0, 50, 20))
	if got := s.ContentSize().Height; got != 20 {
		t.Errorf("content height = %g, want 20", got)
	}
}

func TestScrollSizingReference(t *testing.T) {
	s := NewScroll(geom.Vertical)
	inner := NewLeaf("inner", geom.Size{Width: 10, Height: 40})
	inner.SetLayoutInsets(geom.Insets{Top: 4, Bottom: 6})
	wrapper := NewLeaf("wrapper", geom.Size{Width: 10, Height: 5})
	s.Attach(wrapper, Auto().SizedBy(inner))
	s.SetFrame(geom.NewRect(0, 0, 100, 30))

	assertRect(t, "wrapper", wrapper.Frame(), geom.NewRect(0, 0, 100, 50))
	if !inner.Frame().IsZero() {
		t.Errorf("reference was placed at %v", inner.Frame())
	}
}

func TestScrollNestedPartition(t *testing.T) {
	s := NewScroll(geom.Vertical)
	row := NewPartition(geom.Horizontal)
	x := NewLeaf("x", geom.Size{Width: 10, Height: 30})
	y := NewLeaf("y", geom.Size{Width: 10, Height: 10})
	row.Attach(x, Fixed(50))
	row.Attach(y, Fixed(50))
	s.Attach(row, Auto())
	s.SetFrame(geom.NewRect(0, 0, 100, 50))

	assertRect(t, "row", row.Frame(), geom.NewRect(0, 0, 100, 30))
	assertRect(t, "y", y.Frame(), geom.NewRect(50, 0, 50, 30))
}

func TestScrollSizeThatFitsIsPure(t *testing.T) {
	s := NewScroll(geom.Vertical)
	s.SetContentInsets(geom.Insets{Top: 2, Bottom: 2})
	pr := newSpy("spy", geom.Size{Width: 10, Height: 25})
	s.Attach(pr, Auto())
	s.Attach(NewLeaf("fixed", geom.Size{}), Fixed(15))

	got := s.SizeThatFits(geom.Size{Width: 80, Height: 10})
	if got != (geom.Size{Width: 80, Height: 44}) {
		t.Errorf("SizeThatFits = %v, want 80x44", got)
	}
	if len(pr.sets) != 0 {
		t.Errorf("SizeThatFits set %d frames", len(pr.sets))
	}
}

func TestScrollContentOffset(t *testing.T) {
	s := NewScroll(geom.Vertical)
	s.Attach(NewLeaf("tall", geom.Size{}), Fixed(70))
	s.SetFrame(geom.NewRect(0, 0, 100, 40))

	tests := []struct {
		name string
		in   geom.Point
		want geom.Point
	}{
		{"within range", geom.Point{Y: 10}, geom.Point{Y: 10}},
		{"past the end", geom.Point{Y: 100}, geom.Point{Y: 30}},
		{"negative", geom.Point{X: -5, Y: -5}, geom.Point{}},
		{"no horizontal range", geom.Point{X: 10, Y: 5}, geom.Point{Y: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.SetContentOffset(tt.in)
			if got := s.ContentOffset(); got != tt.want {
				t.Errorf("ContentOffset = %v, want %v", got, tt.want)
			}
		})
	}

	s.SetContentOffset(geom.Point{Y: 30})
	if got := s.Visible(); got != geom.NewRect(0, 30, 100, 40) {
		t.Errorf("Visible = %v", got)
	}
}

func TestScrollCache(t *testing.T) {
	s := NewScroll(geom.Vertical)
	pr := newSpy("spy", geom.Size{})
	s.Attach(pr, Fixed(10))

	s.SetFrame(geom.NewRect(0, 0, 50, 50))
	s.SetFrame(geom.NewRect(0, 0, 50, 50))
	s.SetContentOffset(geom.Point{Y: 1})
	if len(pr.sets) != 1 {
		t.Errorf("frame sets = %d, want 1", len(pr.sets))
	}

	s.InvalidateLayout()
	if len(pr.sets) != 2 {
		t.Errorf("after invalidate: frame sets = %d, want 2", len(pr.sets))
	}
}
