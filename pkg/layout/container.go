package layout

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/panes/pkg/geom"
)

// DefaultScale is the display scale containers assume unless told otherwise.
// It determines the hairline thickness automatic measurements snap to.
const DefaultScale = 2.0

// Container is implemented by every container type in this package.
type Container interface {
	Parent

	// Kind returns "partition", "scroll" or "conditional".
	Kind() string

	// InvalidateLayout clears the bounds cache and runs a pass synchronously.
	InvalidateLayout()
}

// Option configures a container at construction time.
type Option func(*base)

// WithName sets the name used in logs, snapshots and renderers.
func WithName(name string) Option {
	return func(b *base) { b.name = name }
}

// WithLogger enables debug logging of passes.
func WithLogger(l *log.Logger) Option {
	return func(b *base) { b.logger = l }
}

// WithAnimator brackets every committing pass with a.DisableActions.
func WithAnimator(a Animator) Option {
	return func(b *base) { b.animator = a }
}

// WithScale sets the display scale used for hairline snapping.
func WithScale(scale float64) Option {
	return func(b *base) {
		if scale > 0 {
			b.scale = scale
		}
	}
}

// Hooks are lifecycle callbacks fired around a container's pass, in order:
// CouldLayout before the skip check, then (unless skipped) WillLayout,
// placement, DidLayout. Nil hooks are ignored.
type Hooks struct {
	CouldLayout func(bounds geom.Rect)
	WillLayout  func(bounds geom.Rect)
	DidLayout   func(bounds geom.Rect)
}

func (h Hooks) could(b geom.Rect) {
	if h.CouldLayout != nil {
		h.CouldLayout(b)
	}
}

func (h Hooks) will(b geom.Rect) {
	if h.WillLayout != nil {
		h.WillLayout(b)
	}
}

func (h Hooks) did(b geom.Rect) {
	if h.DidLayout != nil {
		h.DidLayout(b)
	}
}

// base holds state shared by every container type.
type base struct {
	name     string
	frame    geom.Rect
	hidden   bool
	scale    float64
	animator Animator
	logger   *log.Logger
	hooks    Hooks
}

func newBase(opts []Option) base {
	b := base{scale: DefaultScale}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b *base) Name() string            { return b.name }
func (b *base) Frame() geom.Rect        { return b.frame }
func (b *base) Hidden() bool            { return b.hidden }
func (b *base) SetHidden(hidden bool)   { b.hidden = hidden }
func (b *base) Scale() float64          { return b.scale }
func (b *base) SetHooks(h Hooks)        { b.hooks = h }
func (b *base) SetAnimator(a Animator)  { b.animator = a }
func (b *base) SetLogger(l *log.Logger) { b.logger = l }

func (b *base) debug(msg string, keyvals ...any) {
	if b.logger == nil {
		return
	}
	b.logger.Debug(msg, append([]any{"container", b.name}, keyvals...)...)
}

// attachment pairs a child with the handle its policy is registered under.
type attachment struct {
	handle Handle
	el     Element
}

// arena is the ordered child list plus policy registry of a partition or
// scroll container. Order is layout order.
type arena struct {
	registry *Registry
	children []attachment
}

func newArena() arena {
	return arena{registry: NewRegistry()}
}

func (a *arena) attach(el Element, src Source) Handle {
	h := a.registry.Add(src)
	a.children = append(a.children, attachment{handle: h, el: el})
	return h
}

func (a *arena) detach(h Handle) bool {
	for i, c := range a.children {
		if c.handle == h {
			a.children = append(a.children[:i], a.children[i+1:]...)
			a.registry.Remove(h)
			return true
		}
	}
	return false
}

func (a *arena) reset() {
	a.children = nil
	a.registry.Clear()
}

// Children returns the attached children in layout order.
func (a *arena) Children() []Element {
	out := make([]Element, len(a.children))
	for i, c := range a.children {
		out[i] = c.el
	}
	return out
}

// Handles returns the handles of the attached children in layout order.
func (a *arena) Handles() []Handle {
	out := make([]Handle, len(a.children))
	for i, c := range a.children {
		out[i] = c.handle
	}
	return out
}

// Registry exposes the container's policy registry.
func (a *arena) Registry() *Registry { return a.registry }
