package layout

import (
	"time"

	"github.com/matzehuels/panes/pkg/geom"
	"github.com/matzehuels/panes/pkg/observability"
)

// DirectionResolver derives a container's direction from its current bounds
// on every pass. It supports runtime axis flips such as compact versus
// regular environments.
type DirectionResolver func(bounds geom.Rect) geom.Direction

// Partition arranges its children along one axis. Every child gets the full
// cross-axis extent and a primary-axis extent derived from its instruction;
// children never overlap along the primary axis.
type Partition struct {
	base
	arena

	direction geom.Direction
	resolver  DirectionResolver
	padding   geom.Insets

	cached   geom.Rect
	hasCache bool
}

// NewPartition creates an empty partition container.
func NewPartition(d geom.Direction, opts ...Option) *Partition {
	return &Partition{
		base:      newBase(opts),
		arena:     newArena(),
		direction: d,
	}
}

// Kind implements Container.
func (p *Partition) Kind() string { return "partition" }

// Attach appends el with the given sizing source and returns its handle.
// The bounds cache is cleared; the next SetFrame or InvalidateLayout
// recomputes.
func (p *Partition) Attach(el Element, src Source) Handle {
	h := p.attach(el, src)
	p.hasCache = false
	return h
}

// Detach removes the child registered under h along with its instruction.
func (p *Partition) Detach(h Handle) bool {
	ok := p.detach(h)
	if ok {
		p.hasCache = false
	}
	return ok
}

// Reset detaches every child and clears the registry.
func (p *Partition) Reset() {
	p.reset()
	p.hasCache = false
}

// Direction returns the static direction.
func (p *Partition) Direction() geom.Direction { return p.direction }

// SetDirection sets a static direction and drops any resolver.
func (p *Partition) SetDirection(d geom.Direction) {
	p.direction = d
	p.resolver = nil
	p.hasCache = false
}

// SetDirectionResolver makes the direction a function of the bounds,
// re-evaluated on every pass.
func (p *Partition) SetDirectionResolver(fn DirectionResolver) {
	p.resolver = fn
	p.hasCache = false
}

// Padding returns the per-slot padding.
func (p *Partition) Padding() geom.Insets { return p.padding }

// SetPadding sets the padding every child slot is shrunk by.
func (p *Partition) SetPadding(e geom.Insets) {
	p.padding = e
	p.hasCache = false
}

// SetScale sets the display scale used for hairline snapping.
func (p *Partition) SetScale(scale float64) {
	if scale > 0 {
		p.scale = scale
		p.hasCache = false
	}
}

// SetFrame moves the container and runs a pass over its new bounds.
func (p *Partition) SetFrame(r geom.Rect) {
	p.frame = r
	p.layout(r.Bounds())
}

// InvalidateLayout clears the bounds cache and runs a pass synchronously.
func (p *Partition) InvalidateLayout() {
	p.hasCache = false
	p.layout(p.frame.Bounds())
}

// prelayout commits a pass at a trial rectangle so that a parent measuring
// p sees its laid-out state rather than its empty state.
func (p *Partition) prelayout(trial geom.Rect) {
	p.frame = trial
	p.hasCache = false
	p.layout(trial.Bounds())
}

func (p *Partition) resolveDirection(bounds geom.Rect) geom.Direction {
	if p.resolver != nil {
		return p.resolver(bounds)
	}
	return p.direction
}

func (p *Partition) layout(bounds geom.Rect) {
	p.hooks.could(bounds)
	if bounds.IsEmpty() || (p.hasCache && bounds == p.cached) {
		p.debug("pass skipped", "bounds", bounds)
		observability.Layout().OnPassSkipped(p.Kind(), bounds.Width, bounds.Height)
		return
	}

	p.hooks.will(bounds)
	observability.Layout().OnPassStart(p.Kind(), bounds.Width, bounds.Height)
	start := time.Now()

	withoutAnimation(p.animator, func() {
		dir := p.resolveDirection(bounds)
		plan := p.measurePass(bounds, dir, true)
		for i, r := range p.placePass(bounds, dir, plan) {
			plan.items[i].el.SetFrame(r)
		}
	})

	p.cached = bounds
	p.hasCache = true
	observability.Layout().OnPassComplete(p.Kind(), len(p.children), time.Since(start))
	p.debug("pass complete", "bounds", bounds, "children", len(p.children))
	p.hooks.did(bounds)
}

// Frames returns the committed frame of every child in layout order.
func (p *Partition) Frames() []geom.Rect {
	out := make([]geom.Rect, len(p.children))
	for i, c := range p.children {
		out[i] = c.el.Frame()
	}
	return out
}
