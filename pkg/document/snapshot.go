package document

import (
	"github.com/matzehuels/panes/pkg/geom"
	"github.com/matzehuels/panes/pkg/layout"
)

// Result is a laid-out tree exported in absolute coordinates. It is what
// renderers draw, what the cache stores and what the server persists.
type Result struct {
	Name   string  `json:"name,omitempty" bson:"name,omitempty"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Scale  float64 `json:"scale" bson:"scale"`
	Traits string  `json:"traits" bson:"traits"`
	Frames []Frame `json:"frames" bson:"frames"`
}

// Frame is one placed element. Frames appear in depth-first layout order;
// only children of active conditional groups are included.
type Frame struct {
	ID     string `json:"id" bson:"id"`
	Kind   string `json:"kind" bson:"kind"`
	Parent string `json:"parent,omitempty" bson:"parent,omitempty"`
	Depth  int    `json:"depth" bson:"depth"`
	Policy string `json:"policy,omitempty" bson:"policy,omitempty"`
	Group  string `json:"group,omitempty" bson:"group,omitempty"`
	Hidden bool   `json:"hidden,omitempty" bson:"hidden,omitempty"`

	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	// Scroll containers only.
	ContentWidth  float64 `json:"content_width,omitempty" bson:"content_width,omitempty"`
	ContentHeight float64 `json:"content_height,omitempty" bson:"content_height,omitempty"`
}

// Rect returns the frame's rectangle.
func (f Frame) Rect() geom.Rect { return geom.NewRect(f.X, f.Y, f.Width, f.Height) }

// Find returns the frame with the given ID.
func (r *Result) Find(id string) (Frame, bool) {
	for _, f := range r.Frames {
		if f.ID == id {
			return f, true
		}
	}
	return Frame{}, false
}

// Bounds returns the viewport rectangle.
func (r *Result) Bounds() geom.Rect { return geom.NewRect(0, 0, r.Width, r.Height) }

// Snapshot exports the current frames of t. Child frames are translated into
// absolute coordinates; scroll children are shifted by the content offset.
func Snapshot(t *Tree) *Result {
	root := t.Root.Frame()
	res := &Result{
		Name:   t.Name,
		Width:  root.Width,
		Height: root.Height,
		Scale:  t.scale,
		Traits: t.Traits.Traits().String(),
	}
	snap(t, res, t.Root, "", 0, geom.Point{})
	return res
}

func snap(t *Tree, res *Result, el layout.Element, parent string, depth int, origin geom.Point) {
	id := t.ID(el)
	r := el.Frame().Translate(origin.X, origin.Y)
	f := Frame{
		ID:     id,
		Kind:   t.Kind(id),
		Parent: parent,
		Depth:  depth,
		Policy: t.policies[id],
		X:      r.X,
		Y:      r.Y,
		Width:  r.Width,
		Height: r.Height,
	}
	if h, ok := el.(layout.Hider); ok {
		f.Hidden = h.Hidden()
	}

	inner := r.Origin()
	switch c := el.(type) {
	case *layout.Scroll:
		content := c.ContentSize()
		f.ContentWidth, f.ContentHeight = content.Width, content.Height
		off := c.ContentOffset()
		inner = geom.Point{X: inner.X - off.X, Y: inner.Y - off.Y}
	case *layout.Conditional:
		f.Group, _ = c.ActiveGroup()
	}
	res.Frames = append(res.Frames, f)

	if p, ok := el.(layout.Parent); ok {
		for _, child := range p.Children() {
			snap(t, res, child, id, depth+1, inner)
		}
	}
}
