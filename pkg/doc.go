// Package pkg provides the core libraries for panes, a declarative
// single-pass layout engine.
//
// # Overview
//
// A layout is a tree of containers. Each container owns its children and a
// registry of sizing instructions keyed by handle, and places every child in
// one pass when its frame changes:
//
//	layout document (TOML/JSON)
//	         ↓
//	    [document] package (decode, validate, build the element tree)
//	         ↓
//	    [layout] package (partition, scroll and conditional passes)
//	         ↓
//	    [render] package (SVG, Graphviz, text tree)
//
// # Quick Start
//
// Build a tree by hand and lay it out:
//
//	import (
//	    "github.com/matzehuels/panes/pkg/geom"
//	    "github.com/matzehuels/panes/pkg/layout"
//	)
//
//	root := layout.NewPartition(geom.Horizontal)
//	nav := layout.NewLeaf("nav", geom.Size{})
//	body := layout.NewLeaf("body", geom.Size{})
//	root.Attach(nav, layout.Fixed(200))
//	root.Attach(body, layout.Equal())
//	root.SetFrame(geom.Rect{Width: 1024, Height: 768})
//
// Or load a document and run the cached pipeline:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	res, _ := runner.ExecuteFile(ctx, "mail.toml", pipeline.Options{
//	    Width:   1024,
//	    Height:  768,
//	    Formats: []string{render.FormatSVG},
//	})
//
// # Main Packages
//
// [geom] - Points, sizes, rectangles, insets and directions.
//
// [layout] - The engine: [layout.Partition] splits its bounds along one axis
// in two passes (measure, then place), [layout.Scroll] stacks children inside
// a viewport and measures without touching frames, and [layout.Conditional]
// attaches the first group whose predicate holds for the current traits.
//
// [document] - Layout documents: size policies ("fixed:200", "30%", "equal",
// "auto"), group predicates, validation and snapshots of laid-out frames.
//
// [pipeline] - load → layout → render with caching, used by the CLI and the
// HTTP server so both behave the same.
//
// [render] - Output formats. [render/svg] draws frames, [render/dot] draws the
// container hierarchy with Graphviz and [render/tree] prints it as text.
//
// ## Infrastructure
//
// [cache] - Layout and artifact caches: file (CLI), Redis (server) and null.
//
// [store] - Persisted layouts for the server: memory and MongoDB.
//
// [errors] - Coded errors shared by every package and mapped to HTTP status
// codes by the server.
//
// [observability] - Hooks for layout passes, pipeline stages and cache access.
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/panes/pkg/geom
// [layout]: https://pkg.go.dev/github.com/matzehuels/panes/pkg/layout
// [document]: https://pkg.go.dev/github.com/matzehuels/panes/pkg/document
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/panes/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/panes/pkg/render
// [render/svg]: https://pkg.go.dev/github.com/matzehuels/panes/pkg/render/svg
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/panes/pkg/render/dot
// [render/tree]: https://pkg.go.dev/github.com/matzehuels/panes/pkg/render/tree
// [cache]: https://pkg.go.dev/github.com/matzehuels/panes/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/panes/pkg/store
// [errors]: https://pkg.go.dev/github.com/matzehuels/panes/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/panes/pkg/observability
package pkg
