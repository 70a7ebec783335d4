package svg

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/panes/pkg/document"
)

// Option configures Render.
type Option func(*renderer)

type renderer struct {
	style   Style
	labels  bool
	details bool
	hidden  bool
}

// WithStyle selects the drawing style. The default is Outline.
func WithStyle(s Style) Option { return func(r *renderer) { r.style = s } }

// WithLabels draws each frame's ID at its center.
func WithLabels() Option { return func(r *renderer) { r.labels = true } }

// WithDetails adds the sizing policy and dimensions to labels. It implies
// WithLabels.
func WithDetails() Option {
	return func(r *renderer) { r.labels, r.details = true, true }
}

// WithHidden draws hidden frames dashed instead of omitting them.
func WithHidden() Option { return func(r *renderer) { r.hidden = true } }

// Render draws res as a standalone SVG document sized to its viewport.
// Children of scroll containers are clipped to the scroll viewport.
func Render(res *document.Result, opts ...Option) []byte {
	r := renderer{style: Outline{}}
	for _, opt := range opts {
		opt(&r)
	}

	children := make(map[string][]int)
	var roots []int
	for i, f := range res.Frames {
		if f.Parent == "" {
			roots = append(roots, i)
			continue
		}
		children[f.Parent] = append(children[f.Parent], i)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		res.Width, res.Height, res.Width, res.Height)
	if res.Name != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", EscapeXML(res.Name))
	}
	r.style.RenderDefs(&buf)

	clips := 0
	var draw func(i int)
	draw = func(i int) {
		f := res.Frames[i]
		if f.Hidden && !r.hidden {
			return
		}
		b := r.box(f)
		r.style.RenderBox(&buf, b)
		if r.labels && f.Kind == document.KindLeaf {
			r.style.RenderLabel(&buf, b)
		}

		kids := children[f.ID]
		if len(kids) == 0 {
			return
		}
		if f.Kind == document.KindScroll {
			clips++
			fmt.Fprintf(&buf, `  <clipPath id="clip-%d"><rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"/></clipPath>`+"\n",
				clips, f.X, f.Y, f.Width, f.Height)
			fmt.Fprintf(&buf, `  <g clip-path="url(#clip-%d)">`+"\n", clips)
			defer buf.WriteString("  </g>\n")
		}
		for _, k := range kids {
			draw(k)
		}
	}
	for _, i := range roots {
		draw(i)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *renderer) box(f document.Frame) Box {
	label := f.ID
	if r.details {
		if f.Policy != "" {
			label += " " + f.Policy
		}
		label += fmt.Sprintf(" %gx%g", f.Width, f.Height)
	}
	return Box{
		ID:     f.ID,
		Kind:   f.Kind,
		Label:  label,
		Depth:  f.Depth,
		Hidden: f.Hidden,
		X:      f.X,
		Y:      f.Y,
		W:      f.Width,
		H:      f.Height,
		CX:     f.X + f.Width/2,
		CY:     f.Y + f.Height/2,
	}
}
