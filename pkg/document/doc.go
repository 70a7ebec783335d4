// Package document loads declarative layout documents and turns them into
// engine trees.
//
// A document is a tree of nodes written in TOML or JSON. Each node has a
// kind (partition, scroll, conditional or leaf) and a size policy that tells
// its parent container how to size it:
//
//	name = "mail"
//
//	[root]
//	kind = "partition"
//	direction = "horizontal"
//	compact_direction = "vertical"
//
//	[[root.children]]
//	id = "sidebar"
//	kind = "leaf"
//	size = "fixed:240"
//
//	[[root.children]]
//	id = "messages"
//	kind = "scroll"
//	size = "equal"
//
// Policies are "fixed:N" (or a bare number), "percent:N" (or "N%"),
// "equal" and "auto". Conditional nodes hold groups guarded by "when"
// predicates over size classes, such as "compact", "regular",
// "vertical=compact" or "any"; terms joined with "&" must all hold.
//
// [Validate] reports every problem in a document at once. [Build] produces a
// [Tree], and [Snapshot] exports its frames in absolute coordinates.
package document
