package layout

import (
	"time"

	"github.com/matzehuels/panes/pkg/geom"
	"github.com/matzehuels/panes/pkg/observability"
)

// Predicate decides whether a conditional group applies to the traits.
type Predicate func(Traits) bool

// State is the activation state of a Conditional.
type State uint8

const (
	StateInactive   State = iota // No group matched
	StateEvaluating              // Predicates are being evaluated
	StateOneActive               // Exactly one group is attached
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateEvaluating:
		return "evaluating"
	case StateOneActive:
		return "one-active"
	default:
		return "inactive"
	}
}

type group struct {
	name     string
	when     Predicate
	children []Element
}

// Conditional owns named groups of children, each guarded by a predicate
// over the current Traits. On every pass the first matching group, in
// registration order, is attached and every other group is detached. Later
// predicates are not evaluated once one matches. Attached children fill the
// container's bounds.
type Conditional struct {
	base

	groups []group
	active int
	live   []Element
	state  State
	traits Traits

	unsubscribe func()

	cached       geom.Rect
	cachedTraits Traits
	hasCache     bool
}

// NewConditional creates a conditional container evaluated against t until
// it is bound to a TraitSource or given new traits.
func NewConditional(t Traits, opts ...Option) *Conditional {
	return &Conditional{
		base:   newBase(opts),
		active: -1,
		traits: t,
	}
}

// Kind implements Container.
func (c *Conditional) Kind() string { return "conditional" }

// AddGroup registers a group after the existing ones.
func (c *Conditional) AddGroup(name string, when Predicate, children ...Element) {
	c.groups = append(c.groups, group{name: name, when: when, children: children})
	c.hasCache = false
}

// Groups returns the group names in registration order.
func (c *Conditional) Groups() []string {
	out := make([]string, len(c.groups))
	for i, g := range c.groups {
		out[i] = g.name
	}
	return out
}

// Bind subscribes c to src: c takes src's current traits immediately and
// re-evaluates whenever they change. Binding again replaces the previous
// subscription.
func (c *Conditional) Bind(src *TraitSource) {
	c.Unbind()
	c.traits = src.Traits()
	c.hasCache = false
	c.unsubscribe = src.Subscribe(c.SetTraits)
	c.evaluate()
}

// Unbind cancels the TraitSource subscription, if any.
func (c *Conditional) Unbind() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// Traits returns the traits the container evaluates against.
func (c *Conditional) Traits() Traits { return c.traits }

// SetTraits replaces the traits and re-evaluates.
func (c *Conditional) SetTraits(t Traits) {
	c.traits = t
	c.evaluate()
}

// State returns the activation state.
func (c *Conditional) State() State { return c.state }

// ActiveGroup returns the name of the attached group, or "" with false when
// none matched.
func (c *Conditional) ActiveGroup() (string, bool) {
	if c.active < 0 {
		return "", false
	}
	return c.groups[c.active].name, true
}

// Children returns the attached children of the active group.
func (c *Conditional) Children() []Element {
	return append([]Element(nil), c.live...)
}

// SetFrame resizes the container and re-evaluates.
func (c *Conditional) SetFrame(r geom.Rect) {
	c.frame = r
	c.evaluate()
}

// InvalidateLayout clears the cache and re-evaluates synchronously.
func (c *Conditional) InvalidateLayout() {
	c.hasCache = false
	c.evaluate()
}

// match returns the index of the first group whose predicate holds.
func (c *Conditional) match(t Traits) int {
	for i, g := range c.groups {
		if g.when != nil && g.when(t) {
			return i
		}
	}
	return -1
}

// evaluate runs Inactive/OneActive -> Evaluating -> Inactive/OneActive. The
// new live set is built aside and swapped in as one step, so the container
// never exposes an all-detached intermediate state.
func (c *Conditional) evaluate() {
	bounds := c.frame.Bounds()
	c.hooks.could(bounds)
	if c.hasCache && bounds == c.cached && c.traits == c.cachedTraits {
		observability.Layout().OnPassSkipped(c.Kind(), bounds.Width, bounds.Height)
		return
	}

	c.hooks.will(bounds)
	observability.Layout().OnPassStart(c.Kind(), bounds.Width, bounds.Height)
	start := time.Now()

	previous := c.state
	c.state = StateEvaluating
	next := c.match(c.traits)

	var live []Element
	if next >= 0 {
		live = append(live, c.groups[next].children...)
	}
	c.live, c.active = live, next
	if next >= 0 {
		c.state = StateOneActive
	} else {
		c.state = StateInactive
	}

	if !bounds.IsEmpty() {
		withoutAnimation(c.animator, func() {
			for _, el := range c.live {
				el.SetFrame(bounds)
			}
		})
	}

	c.cached, c.cachedTraits, c.hasCache = bounds, c.traits, true
	observability.Layout().OnPassComplete(c.Kind(), len(c.live), time.Since(start))
	if name, ok := c.ActiveGroup(); ok {
		c.debug("group active", "group", name, "traits", c.traits, "from", previous)
	} else {
		c.debug("no group matched", "traits", c.traits)
	}
	c.hooks.did(bounds)
}

// SizeThatFits returns the largest natural size among the children of the
// group that would be active for the current traits. It does not attach or
// move anything.
func (c *Conditional) SizeThatFits(available geom.Size) geom.Size {
	var size geom.Size
	if i := c.match(c.traits); i >= 0 {
		for _, el := range c.groups[i].children {
			m := measure(el, available)
			size.Width = max(size.Width, m.Width)
			size.Height = max(size.Height, m.Height)
		}
	}
	observability.Layout().OnMeasure(c.Kind(), size.Width, size.Height)
	return size
}
