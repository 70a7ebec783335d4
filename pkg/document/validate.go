package document

import (
	"fmt"

	"github.com/matzehuels/panes/pkg/errors"
	"github.com/matzehuels/panes/pkg/geom"
	"github.com/matzehuels/panes/pkg/layout"
)

// visit walks the document tree in pre-order, calling fn with each node, its
// path, its parent's kind ("" for the root) and the IDs of its ancestors.
func visit(n *Node, path, parentKind string, ancestors []string, fn func(n *Node, path, parentKind string, ancestors []string)) {
	fn(n, path, parentKind, ancestors)
	ancestors = append(ancestors, nodeID(n, path))
	for i := range n.Children {
		visit(&n.Children[i], fmt.Sprintf("%s.children[%d]", path, i), n.Kind, ancestors, fn)
	}
	for g := range n.Groups {
		for i := range n.Groups[g].Children {
			visit(&n.Groups[g].Children[i], fmt.Sprintf("%s.groups[%d].children[%d]", path, g, i), n.Kind, ancestors, fn)
		}
	}
}

// nodeID returns the node's ID, or its path when it has none.
func nodeID(n *Node, path string) string {
	if n.ID != "" {
		return n.ID
	}
	return path
}

// defaultPolicy is the policy of a node that leaves size unset.
func defaultPolicy(parentKind string) layout.Instruction {
	if parentKind == KindScroll {
		return layout.Auto()
	}
	return layout.Equal()
}

// policyOf resolves a node's size policy within its parent.
func policyOf(n *Node, parentKind string) (layout.Instruction, error) {
	if n.Size == "" {
		return defaultPolicy(parentKind), nil
	}
	return ParsePolicy(n.Size)
}

// Validate checks doc and returns a *errors.ValidationError listing every
// problem found, or nil.
func Validate(doc *Document) error {
	var v errors.ValidationError
	if doc.Scale < 0 {
		v.Add("scale", "must not be negative")
	}
	if doc.Advance < 0 {
		v.Add("advance", "must not be negative")
	}
	if doc.LineHeight < 0 {
		v.Add("line_height", "must not be negative")
	}

	seen := map[string]string{}
	type pendingRef struct {
		path, ref, self string
		ancestors       []string
	}
	var refs []pendingRef

	visit(&doc.Root, "root", "", nil, func(n *Node, path, parentKind string, ancestors []string) {
		id := nodeID(n, path)
		if first, dup := seen[id]; dup {
			v.Add(path+".id", "duplicate id %q (first used at %s)", id, first)
		} else {
			seen[id] = path
		}

		validateKind(&v, n, path)

		if parentKind == KindPartition || parentKind == KindScroll {
			ins, err := policyOf(n, parentKind)
			if err != nil {
				v.Add(path+".size", "%s", errors.UserMessage(err))
			} else if n.Ref != "" && ins.Policy != layout.PolicyAutomatic {
				v.Add(path+".ref", "only automatic children can have a sizing reference")
			}
		}
		if n.Ref != "" {
			if parentKind != KindScroll {
				v.Add(path+".ref", "sizing references are only used inside scroll containers")
			}
			refs = append(refs, pendingRef{path: path, ref: n.Ref, self: id, ancestors: append([]string(nil), ancestors...)})
		}
	})

	for _, r := range refs {
		if _, ok := seen[r.ref]; !ok {
			v.Add(r.path+".ref", "unknown node %q", r.ref)
			continue
		}
		if r.ref == r.self {
			v.Add(r.path+".ref", "node cannot be its own sizing reference")
			continue
		}
		for _, a := range r.ancestors {
			if a == r.ref {
				v.Add(r.path+".ref", "sizing reference %q is an ancestor", r.ref)
				break
			}
		}
	}

	return v.Err()
}

func validateKind(v *errors.ValidationError, n *Node, path string) {
	switch n.Kind {
	case KindPartition, KindScroll:
		if len(n.Groups) > 0 {
			v.Add(path+".groups", "only conditional nodes have groups")
		}
		validateDirection(v, n.Direction, path+".direction")
	case KindConditional:
		if len(n.Children) > 0 {
			v.Add(path+".children", "conditional nodes hold children in groups")
		}
		names := map[string]bool{}
		for i, g := range n.Groups {
			gp := fmt.Sprintf("%s.groups[%d]", path, i)
			if g.Name == "" {
				v.Add(gp+".name", "required")
			} else if names[g.Name] {
				v.Add(gp+".name", "duplicate group %q", g.Name)
			}
			names[g.Name] = true
			if _, err := ParsePredicate(g.When); err != nil {
				v.Add(gp+".when", "%s", errors.UserMessage(err))
			}
		}
	case KindLeaf:
		if len(n.Children) > 0 || len(n.Groups) > 0 {
			v.Add(path+".children", "leaves have no children")
		}
		if n.Width < 0 || n.Height < 0 {
			v.Add(path, "width and height must not be negative")
		}
	case "":
		v.Add(path+".kind", "required")
	default:
		v.Add(path+".kind", "unknown kind %q", n.Kind)
	}

	if n.CompactDirection != "" {
		if n.Kind != KindPartition {
			v.Add(path+".compact_direction", "only partitions switch direction")
		}
		validateDirection(v, n.CompactDirection, path+".compact_direction")
	}
	if n.Padding != nil && n.Kind == KindConditional {
		v.Add(path+".padding", "conditional nodes have no padding")
	}
}

func validateDirection(v *errors.ValidationError, s, path string) {
	if _, err := geom.ParseDirection(s); err != nil {
		v.Add(path, "%v", err)
	}
}
