package svg

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/matzehuels/panes/pkg/errors"
)

// Style defines how frames are drawn.
type Style interface {
	// Name identifies the style on the command line and in cache keys.
	Name() string
	// RenderDefs writes shared <defs> and <style> content.
	RenderDefs(buf *bytes.Buffer)
	// RenderBox writes the shape of one frame.
	RenderBox(buf *bytes.Buffer, b Box)
	// RenderLabel writes the label of one frame.
	RenderLabel(buf *bytes.Buffer, b Box)
}

// Box contains the data needed to draw one frame.
type Box struct {
	ID         string
	Kind       string
	Label      string
	Depth      int
	Hidden     bool
	X, Y, W, H float64
	CX, CY     float64
}

// Outline draws every frame as an unfilled rectangle with a kind-colored stroke.
type Outline struct{}

// Filled draws frames as translucent rectangles shaded by depth.
type Filled struct{}

var kindColors = map[string]string{
	"partition":   "#4c78a8",
	"scroll":      "#f58518",
	"conditional": "#54a24b",
	"leaf":        "#72716e",
}

var depthFills = []string{"#eef3f8", "#dfe9f3", "#cfdeee", "#bfd3e8", "#afc8e3"}

func strokeFor(kind string) string {
	if c, ok := kindColors[kind]; ok {
		return c
	}
	return "#333333"
}

func dashFor(b Box) string {
	if b.Hidden {
		return ` stroke-dasharray="4 3" opacity="0.5"`
	}
	return ""
}

func (Outline) Name() string { return "outline" }

func (Outline) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <style>\n    .frame { fill: none; stroke-width: 1; }\n    .frame-label { font-family: monospace; fill: #222; }\n  </style>\n")
}

func (Outline) RenderBox(buf *bytes.Buffer, b Box) {
	fmt.Fprintf(buf, `  <rect id="frame-%s" class="frame %s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" stroke="%s"%s/>`+"\n",
		EscapeXML(b.ID), b.Kind, b.X, b.Y, b.W, b.H, strokeFor(b.Kind), dashFor(b))
}

func (Outline) RenderLabel(buf *bytes.Buffer, b Box) { renderLabel(buf, b) }

func (Filled) Name() string { return "filled" }

func (Filled) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <style>\n    .frame { stroke-width: 1.5; }\n    .frame-label { font-family: sans-serif; fill: #111; }\n  </style>\n")
}

func (Filled) RenderBox(buf *bytes.Buffer, b Box) {
	fill := depthFills[min(b.Depth, len(depthFills)-1)]
	fmt.Fprintf(buf, `  <rect id="frame-%s" class="frame %s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="3" fill="%s" stroke="%s"%s/>`+"\n",
		EscapeXML(b.ID), b.Kind, b.X, b.Y, b.W, b.H, fill, strokeFor(b.Kind), dashFor(b))
}

func (Filled) RenderLabel(buf *bytes.Buffer, b Box) { renderLabel(buf, b) }

var styles = map[string]Style{
	"outline": Outline{},
	"filled":  Filled{},
}

// DefaultStyle is used when no style is requested.
const DefaultStyle = "outline"

// StyleNames returns the registered style names, sorted.
func StyleNames() []string {
	names := make([]string, 0, len(styles))
	for name := range styles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ParseStyle returns the style registered under name. An empty name selects
// DefaultStyle.
func ParseStyle(name string) (Style, error) {
	if name == "" {
		name = DefaultStyle
	}
	if s, ok := styles[name]; ok {
		return s, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown style %q (valid: %v)", name, StyleNames())
}
