// Package tree prints the container hierarchy of a layout result as an
// indented text tree.
package tree

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"

	"github.com/matzehuels/panes/pkg/document"
)

// Options configures Render.
type Options struct {
	// Frames appends each frame's absolute rectangle to its label.
	Frames bool
	// Hidden includes hidden elements, marked as such.
	Hidden bool
}

// Render prints res as a tree rooted at the result name. Policies appear as
// node metadata; conditional containers show their active group.
func Render(res *document.Result, opts Options) string {
	name := res.Name
	if name == "" {
		name = "layout"
	}
	root := treeprint.NewWithRoot(strings.TrimSpace(fmt.Sprintf("%s %gx%g %s", name, res.Width, res.Height, res.Traits)))

	branches := map[string]treeprint.Tree{"": root}
	for _, f := range res.Frames {
		if f.Hidden && !opts.Hidden {
			continue
		}
		parent, ok := branches[f.Parent]
		if !ok {
			// Parent was hidden.
			continue
		}
		label := fmtLabel(f, opts)
		if f.Policy != "" {
			branches[f.ID] = parent.AddMetaBranch(f.Policy, label)
		} else {
			branches[f.ID] = parent.AddBranch(label)
		}
	}
	return root.String()
}

func fmtLabel(f document.Frame, opts Options) string {
	label := f.ID + " (" + f.Kind + ")"
	if f.Group != "" {
		label += " group=" + f.Group
	}
	if f.Hidden {
		label += " hidden"
	}
	if opts.Frames {
		label += " " + f.Rect().String()
		if f.Kind == document.KindScroll {
			label += fmt.Sprintf(" content=%gx%g", f.ContentWidth, f.ContentHeight)
		}
	}
	return label
}
