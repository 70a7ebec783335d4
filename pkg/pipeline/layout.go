package pipeline

import (
	"fmt"

	"github.com/matzehuels/panes/pkg/document"
)

// ComputeLayout builds doc, lays it out at the options' viewport and traits,
// and exports the frames. It does not touch any cache.
func ComputeLayout(doc *document.Document, opts Options) (*document.Result, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}

	buildOpts := []document.BuildOption{document.WithLogger(opts.Logger)}
	if opts.Scale > 0 {
		buildOpts = append(buildOpts, document.WithScale(opts.Scale))
	}
	tree, err := document.Build(doc, buildOpts...)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	if err := tree.Layout(opts.Viewport(), opts.Traits()); err != nil {
		return nil, err
	}
	return document.Snapshot(tree), nil
}
