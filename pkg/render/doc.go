// Package render turns layout results into visual and textual outputs.
//
// # Overview
//
// Every renderer consumes a [document.Result]: the frames of a laid-out
// tree in absolute coordinates. Renderers never run layout themselves.
//
//   - [svg]: frames drawn as rectangles, scroll content clipped to its viewport
//   - [dot]: the container hierarchy as a Graphviz graph, rendered in-process
//   - [tree]: the container hierarchy as an indented text tree
//
// # Formats
//
// [Formats] lists the output formats the pipeline and CLI accept. JSON output
// is the Result itself and needs no renderer.
//
//	out := svg.Render(res, svg.WithLabels())
//	src := dot.ToDOT(res, dot.Options{})
//	txt := tree.Render(res, tree.Options{Frames: true})
//
// [document.Result]: github.com/matzehuels/panes/pkg/document.Result
// [svg]: github.com/matzehuels/panes/pkg/render/svg
// [dot]: github.com/matzehuels/panes/pkg/render/dot
// [tree]: github.com/matzehuels/panes/pkg/render/tree
package render
