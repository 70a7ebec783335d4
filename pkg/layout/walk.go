package layout

// Walk visits root and its descendants depth-first in layout order. fn
// receives each element with its depth (root is 0); returning false skips
// that element's children. Conditional containers expose only the children
// of their active group.
func Walk(root Element, fn func(el Element, depth int) bool) {
	walk(root, 0, fn)
}

func walk(el Element, depth int, fn func(Element, int) bool) {
	if !fn(el, depth) {
		return
	}
	if p, ok := el.(Parent); ok {
		for _, c := range p.Children() {
			walk(c, depth+1, fn)
		}
	}
}
