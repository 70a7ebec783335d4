// Package dot renders the container hierarchy of a layout result as a
// Graphviz graph.
//
// [ToDOT] produces DOT source with one node per frame and an edge from each
// container to its children. [RenderSVG] renders DOT in-process with
// [github.com/goccy/go-graphviz].
//
//	src := dot.ToDOT(res, dot.Options{Detailed: true})
//	svg, err := dot.RenderSVG(ctx, src)
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/panes/pkg/document"
)

// Options configures DOT generation.
type Options struct {
	// Detailed adds the policy and frame rectangle to node labels.
	// When false, only the frame ID is shown.
	Detailed bool
}

var kindShapes = map[string]string{
	document.KindPartition:   "box",
	document.KindScroll:      "folder",
	document.KindConditional: "diamond",
	document.KindLeaf:        "note",
}

// ToDOT converts res to Graphviz DOT source. Nodes appear in layout order;
// edges leaving a conditional are labelled with its active group.
func ToDOT(res *document.Result, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, f := range res.Frames {
		fmt.Fprintf(&buf, "  %q [%s];\n", f.ID, strings.Join(fmtAttrs(f, fmtLabel(f, opts.Detailed)), ", "))
	}

	groups := make(map[string]string)
	for _, f := range res.Frames {
		if f.Group != "" {
			groups[f.ID] = f.Group
		}
	}

	buf.WriteString("\n")
	for _, f := range res.Frames {
		if f.Parent == "" {
			continue
		}
		if g, ok := groups[f.Parent]; ok {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", f.Parent, f.ID, g)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", f.Parent, f.ID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(f document.Frame, detailed bool) string {
	if !detailed {
		return f.ID
	}
	parts := []string{f.ID, f.Kind}
	if f.Policy != "" {
		parts = append(parts, f.Policy)
	}
	parts = append(parts, f.Rect().String())
	if f.Kind == document.KindScroll {
		parts = append(parts, fmt.Sprintf("content %gx%g", f.ContentWidth, f.ContentHeight))
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(f document.Frame, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if shape, ok := kindShapes[f.Kind]; ok && shape != "box" {
		attrs = append(attrs, "shape="+shape)
	}
	if f.Hidden {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one sized
// from the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
