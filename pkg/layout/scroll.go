package layout

import (
	"time"

	"github.com/matzehuels/panes/pkg/geom"
	"github.com/matzehuels/panes/pkg/observability"
)

// Scroll stacks its children along one axis inside a viewport. The viewport
// is the container's frame; the content extent along the stacking axis is
// derived from the children and may exceed it.
type Scroll struct {
	base
	arena

	direction     geom.Direction
	contentInsets geom.Insets
	contentSize   geom.Size
	contentOffset geom.Point

	// The cache is keyed on the outer frame, never on the content offset.
	cachedFrame geom.Rect
	hasCache    bool
}

// NewScroll creates an empty scroll container stacking along d.
func NewScroll(d geom.Direction, opts ...Option) *Scroll {
	return &Scroll{
		base:      newBase(opts),
		arena:     newArena(),
		direction: d,
	}
}

// Kind implements Container.
func (s *Scroll) Kind() string { return "scroll" }

// Attach appends el with the given sizing source and returns its handle.
func (s *Scroll) Attach(el Element, src Source) Handle {
	h := s.attach(el, src)
	s.hasCache = false
	return h
}

// Detach removes the child registered under h along with its instruction.
func (s *Scroll) Detach(h Handle) bool {
	ok := s.detach(h)
	if ok {
		s.hasCache = false
	}
	return ok
}

// Reset detaches every child and clears the registry.
func (s *Scroll) Reset() {
	s.reset()
	s.hasCache = false
}

// Direction returns the stacking axis.
func (s *Scroll) Direction() geom.Direction { return s.direction }

// SetDirection changes the stacking axis.
func (s *Scroll) SetDirection(d geom.Direction) {
	s.direction = d
	s.hasCache = false
}

// ContentInsets returns the insets around the stacked content.
func (s *Scroll) ContentInsets() geom.Insets { return s.contentInsets }

// SetContentInsets sets the insets around the stacked content. This is the
// scroll container's padding.
func (s *Scroll) SetContentInsets(e geom.Insets) {
	s.contentInsets = e
	s.hasCache = false
}

// SetPadding is an alias of SetContentInsets.
func (s *Scroll) SetPadding(e geom.Insets) { s.SetContentInsets(e) }

// ContentSize returns the content size computed by the last committed pass.
func (s *Scroll) ContentSize() geom.Size { return s.contentSize }

// ContentOffset returns the scroll position.
func (s *Scroll) ContentOffset() geom.Point { return s.contentOffset }

// SetContentOffset scrolls to pt, clamped to the scrollable range. Scrolling
// never triggers a pass.
func (s *Scroll) SetContentOffset(pt geom.Point) {
	maxX := max(0, s.contentSize.Width-s.frame.Width)
	maxY := max(0, s.contentSize.Height-s.frame.Height)
	s.contentOffset = geom.Point{
		X: min(max(pt.X, 0), maxX),
		Y: min(max(pt.Y, 0), maxY),
	}
}

// Visible returns the viewport in content coordinates.
func (s *Scroll) Visible() geom.Rect {
	return geom.Rect{X: s.contentOffset.X, Y: s.contentOffset.Y, Width: s.frame.Width, Height: s.frame.Height}
}

// SetFrame resizes the viewport and restacks the children when the frame
// changed.
func (s *Scroll) SetFrame(r geom.Rect) {
	s.frame = r
	s.layout()
}

// InvalidateLayout clears the frame cache and restacks synchronously.
func (s *Scroll) InvalidateLayout() {
	s.hasCache = false
	s.layout()
}

func (s *Scroll) layout() {
	bounds := s.frame.Bounds()
	s.hooks.could(bounds)
	if s.frame.IsEmpty() || (s.hasCache && s.frame == s.cachedFrame) {
		s.debug("pass skipped", "frame", s.frame)
		observability.Layout().OnPassSkipped(s.Kind(), bounds.Width, bounds.Height)
		return
	}

	s.hooks.will(bounds)
	observability.Layout().OnPassStart(s.Kind(), bounds.Width, bounds.Height)
	start := time.Now()

	withoutAnimation(s.animator, func() {
		s.contentSize = s.stack(bounds.Size(), true)
	})
	s.SetContentOffset(s.contentOffset)

	s.cachedFrame = s.frame
	s.hasCache = true
	observability.Layout().OnPassComplete(s.Kind(), len(s.children), time.Since(start))
	s.debug("pass complete", "frame", s.frame, "content", s.contentSize)
	s.hooks.did(bounds)
}

// SizeThatFits returns the content size the children would produce in a
// viewport of the given size. It runs in measurement-only mode: no child
// frame is touched, at any depth.
func (s *Scroll) SizeThatFits(available geom.Size) geom.Size {
	size := s.stack(available, false)
	observability.Layout().OnMeasure(s.Kind(), size.Width, size.Height)
	return size
}

// stack walks the visible children in order and returns the content size.
// With commit set it also assigns child frames.
func (s *Scroll) stack(viewport geom.Size, commit bool) geom.Size {
	dir := s.direction
	bounds := geom.Rect{Width: viewport.Width, Height: viewport.Height}
	cross := max(0, viewport.Across(dir)-s.contentInsets.Across(dir))
	crossOffset := s.contentInsets.Leading(dir.Flip())
	offset := s.contentInsets.Leading(dir)

	for _, c := range s.children {
		if isHidden(c.el) {
			continue
		}
		ins, err := s.registry.Instruction(c.handle, bounds)
		if err != nil {
			s.debug("child skipped", "handle", c.handle, "err", err)
			continue
		}

		var extent float64
		switch ins.Policy {
		case PolicyFixed:
			extent = ins.Value
		case PolicyAutomatic:
			extent = s.measureChild(c.el, ins, viewport, cross, commit)
		case PolicyPercentage:
			extent = viewport.Along(dir) * ins.Value / 100
		case PolicyEqual:
			extent = viewport.Along(dir)
		}

		if commit {
			c.el.SetFrame(geom.Slot(dir, offset, crossOffset, extent, cross).Inset(ins.Insets))
		}
		offset += extent
	}

	return geom.SizeOf(dir, offset+s.contentInsets.Trailing(dir), cross)
}

// measureChild returns the stacking-axis extent of an automatically sized
// child: its natural size for the clamped cross extent plus its insets.
// A sizing reference is measured in place of the child, with the
// reference's own insets added on top.
func (s *Scroll) measureChild(el Element, ins Instruction, viewport geom.Size, cross float64, commit bool) float64 {
	dir := s.direction
	avail := geom.SizeOf(dir, geom.Unbounded, cross-ins.Insets.Across(dir))

	target := el
	var extra float64
	if ins.Reference != nil {
		target = ins.Reference
		if in, ok := target.(Inseter); ok {
			extra = in.LayoutInsets().Along(dir)
		}
	}

	if nested, ok := el.(*Partition); ok && commit {
		nested.prelayout(geom.Slot(dir, 0, 0, viewport.Along(dir), avail.Across(dir)))
	}

	m := snapHairline(measure(target, avail).Along(dir), s.scale)
	return m + extra + ins.Insets.Along(dir)
}
