// Package layout is a declarative, single-pass geometry engine for trees of
// visual elements.
//
// # Overview
//
// Callers describe each child's sizing intent with an [Instruction] (fixed,
// percentage, equal share or automatic) and the engine computes every child's
// rectangle whenever a container's bounds change. There is no constraint
// solver: each container type runs a fixed algorithm.
//
//   - [Partition]: splits its bounds along one axis in two passes. Pass 1
//     measures (fixed sums, percentage loss, equal-share count, automatic
//     measurement); pass 2 places children in attachment order.
//   - [Scroll]: stacks children along one axis inside a viewport and derives
//     the scrollable content extent from them.
//   - [Conditional]: holds predicate-guarded groups and activates the first
//     group whose predicate matches the current [Traits].
//
// # Sizing policies
//
// A policy is registered per child through a [Source]. An [Instruction] is a
// static source; [Computed] evaluates a function against the container's
// current bounds on every pass, which is how trait- or bounds-dependent sizing
// is expressed without re-attaching children:
//
//	p := layout.NewPartition(geom.Horizontal)
//	p.Attach(sidebar, layout.Fixed(240))
//	p.Attach(content, layout.Equal())
//	p.Attach(inspector, layout.Computed(func(b geom.Rect) layout.Instruction {
//	    if b.Width < 900 {
//	        return layout.Fixed(0)
//	    }
//	    return layout.Percent(25)
//	}))
//	p.SetFrame(geom.NewRect(0, 0, 1280, 800))
//
// # Passes and caching
//
// Layout is synchronous. SetFrame and InvalidateLayout run the pass inline
// before returning. A pass is skipped when the new bounds equal the cached
// bounds or are the zero rectangle; Attach, Detach and the setters clear the
// cache so the next SetFrame or InvalidateLayout recomputes.
//
// SizeThatFits is measurement-only on every container: it never moves a
// child, so a parent can ask a nested subtree how big it would be without
// disturbing frames the subtree already committed.
//
// The tree must be mutated and laid out from a single goroutine.
package layout
