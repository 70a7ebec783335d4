package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/panes/pkg/document"
	"github.com/matzehuels/panes/pkg/observability"
)

// Load reads and validates the layout document at path.
func (r *Runner) Load(ctx context.Context, path string) (*document.Document, error) {
	observability.Pipeline().OnLoadStart(ctx, path)
	start := time.Now()

	doc, err := document.Load(path)
	if err == nil {
		err = document.Validate(doc)
	}

	nodes := 0
	if err == nil {
		nodes = countNodes(&doc.Root)
	}
	observability.Pipeline().OnLoadComplete(ctx, path, nodes, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("loaded document", "path", path, "name", doc.Name, "nodes", nodes)
	return doc, nil
}

func countNodes(n *document.Node) int {
	count := 1
	for i := range n.Children {
		count += countNodes(&n.Children[i])
	}
	for _, g := range n.Groups {
		for i := range g.Children {
			count += countNodes(&g.Children[i])
		}
	}
	return count
}
