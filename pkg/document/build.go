package document

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/panes/pkg/errors"
	"github.com/matzehuels/panes/pkg/geom"
	"github.com/matzehuels/panes/pkg/layout"
)

// BuildOption configures [Build].
type BuildOption func(*buildConfig)

type buildConfig struct {
	logger   *log.Logger
	animator layout.Animator
	scale    float64
}

// WithLogger attaches l to every container for debug logging of passes.
func WithLogger(l *log.Logger) BuildOption {
	return func(c *buildConfig) { c.logger = l }
}

// WithAnimator brackets every container pass with a.
func WithAnimator(a layout.Animator) BuildOption {
	return func(c *buildConfig) { c.animator = a }
}

// WithScale overrides the document's display scale.
func WithScale(scale float64) BuildOption {
	return func(c *buildConfig) { c.scale = scale }
}

// Tree is a document built into engine elements.
type Tree struct {
	Name   string
	Root   layout.Element
	Traits *layout.TraitSource

	scale    float64
	nodes    map[string]layout.Element
	ids      map[layout.Element]string
	kinds    map[string]string
	policies map[string]string
}

// Element returns the element built for the node with the given ID.
func (t *Tree) Element(id string) (layout.Element, bool) {
	el, ok := t.nodes[id]
	return el, ok
}

// ID returns the node ID el was built from.
func (t *Tree) ID(el layout.Element) string { return t.ids[el] }

// Kind returns the kind of the node with the given ID.
func (t *Tree) Kind(id string) string { return t.kinds[id] }

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Scale returns the display scale containers snap hairlines to.
func (t *Tree) Scale() float64 { return t.scale }

// Layout sets the traits and lays the tree out in a viewport anchored at the
// origin. A change of traits re-runs every container's pass, top-down, even
// when the viewport is unchanged.
func (t *Tree) Layout(viewport geom.Size, traits layout.Traits) error {
	if viewport.Width <= 0 || viewport.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidViewport, "viewport %gx%g must be positive", viewport.Width, viewport.Height)
	}
	// A tree that was never laid out has no cached pass to go stale.
	stale := t.Traits.Traits() != traits && !t.Root.Frame().IsEmpty()
	t.Traits.Set(traits)
	t.Root.SetFrame(geom.Rect{Width: viewport.Width, Height: viewport.Height})
	if stale {
		t.Invalidate()
	}
	return nil
}

// Invalidate re-runs the pass of every container, top-down. Children are
// read after their parent's pass, so containers attached by a group switch
// during that pass are reached too.
func (t *Tree) Invalidate() {
	invalidate(t.Root)
}

func invalidate(el layout.Element) {
	if c, ok := el.(layout.Container); ok {
		c.InvalidateLayout()
	}
	if p, ok := el.(layout.Parent); ok {
		for _, child := range p.Children() {
			invalidate(child)
		}
	}
}

type attacher interface {
	Attach(layout.Element, layout.Source) layout.Handle
}

type pendingAttach struct {
	parent attacher
	el     layout.Element
	ins    layout.Instruction
	ref    string
}

type builder struct {
	doc     *Document
	cfg     buildConfig
	tree    *Tree
	pending []pendingAttach
	conds   []*layout.Conditional
}

// Build validates doc and builds its engine tree. Conditional nodes are bound
// to the tree's TraitSource. Nothing is laid out until [Tree.Layout].
func Build(doc *Document, opts ...BuildOption) (*Tree, error) {
	if err := Validate(doc); err != nil {
		return nil, err
	}

	cfg := buildConfig{scale: doc.Scale}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.scale <= 0 {
		cfg.scale = layout.DefaultScale
	}

	b := &builder{
		doc: doc,
		cfg: cfg,
		tree: &Tree{
			Name:     doc.Name,
			Traits:   layout.NewTraitSource(layout.Traits{}),
			scale:    cfg.scale,
			nodes:    map[string]layout.Element{},
			ids:      map[layout.Element]string{},
			kinds:    map[string]string{},
			policies: map[string]string{},
		},
	}
	b.tree.Root = b.build(&doc.Root, "root")

	// References may point anywhere in the tree, so children are attached
	// once every element exists.
	for _, p := range b.pending {
		ins := p.ins
		if p.ref != "" {
			ins = ins.SizedBy(b.tree.nodes[p.ref])
		}
		p.parent.Attach(p.el, ins)
	}
	for _, c := range b.conds {
		c.Bind(b.tree.Traits)
	}
	return b.tree, nil
}

func (b *builder) options(id string) []layout.Option {
	opts := []layout.Option{layout.WithName(id), layout.WithScale(b.cfg.scale)}
	if b.cfg.logger != nil {
		opts = append(opts, layout.WithLogger(b.cfg.logger))
	}
	if b.cfg.animator != nil {
		opts = append(opts, layout.WithAnimator(b.cfg.animator))
	}
	return opts
}

func (b *builder) build(n *Node, path string) layout.Element {
	id := nodeID(n, path)

	var el layout.Element
	switch n.Kind {
	case KindPartition:
		el = b.partition(n, id, path)
	case KindScroll:
		el = b.scroll(n, id, path)
	case KindConditional:
		el = b.conditional(n, id, path)
	default:
		el = b.leaf(n, id)
	}

	if h, ok := el.(interface{ SetHidden(bool) }); ok && n.Hidden {
		h.SetHidden(true)
	}
	b.tree.nodes[id] = el
	b.tree.ids[el] = id
	b.tree.kinds[id] = n.Kind
	return el
}

func (b *builder) partition(n *Node, id, path string) *layout.Partition {
	dir, _ := geom.ParseDirection(n.Direction)
	p := layout.NewPartition(dir, b.options(id)...)
	p.SetPadding(n.Padding.Geom())
	if n.CompactDirection != "" {
		compact, _ := geom.ParseDirection(n.CompactDirection)
		p.SetDirectionResolver(func(bounds geom.Rect) geom.Direction {
			if layout.ClassifySize(bounds.Size()).Horizontal == layout.SizeClassCompact {
				return compact
			}
			return dir
		})
	}
	b.children(p, n, path, KindPartition)
	return p
}

func (b *builder) scroll(n *Node, id, path string) *layout.Scroll {
	dir, _ := geom.ParseDirection(n.Direction)
	s := layout.NewScroll(dir, b.options(id)...)
	s.SetContentInsets(n.Padding.Geom())
	b.children(s, n, path, KindScroll)
	return s
}

func (b *builder) children(parent attacher, n *Node, path, kind string) {
	for i := range n.Children {
		child := &n.Children[i]
		childPath := fmt.Sprintf("%s.children[%d]", path, i)
		el := b.build(child, childPath)
		ins, _ := policyOf(child, kind)
		ins = ins.WithInsets(child.Insets.Geom())
		b.tree.policies[nodeID(child, childPath)] = ins.String()
		b.pending = append(b.pending, pendingAttach{parent: parent, el: el, ins: ins, ref: child.Ref})
	}
}

func (b *builder) conditional(n *Node, id, path string) *layout.Conditional {
	c := layout.NewConditional(layout.Traits{}, b.options(id)...)
	for g := range n.Groups {
		grp := &n.Groups[g]
		pred, _ := ParsePredicate(grp.When)
		els := make([]layout.Element, len(grp.Children))
		for i := range grp.Children {
			els[i] = b.build(&grp.Children[i], fmt.Sprintf("%s.groups[%d].children[%d]", path, g, i))
		}
		c.AddGroup(grp.Name, pred, els...)
	}
	b.conds = append(b.conds, c)
	return c
}

func (b *builder) leaf(n *Node, id string) *layout.Leaf {
	var l *layout.Leaf
	if n.Text != "" {
		l = layout.NewMeasuredLeaf(id, layout.TextMeasure(n.Text, b.doc.advance(), b.doc.lineHeight()))
	} else {
		l = layout.NewLeaf(id, geom.Size{Width: n.Width, Height: n.Height})
	}
	l.SetLayoutInsets(n.Padding.Geom())
	return l
}
