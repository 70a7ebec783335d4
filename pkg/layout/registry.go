package layout

import (
	"github.com/matzehuels/panes/pkg/errors"
	"github.com/matzehuels/panes/pkg/geom"
)

// Handle identifies one attachment within a single container. Handles are
// never reused by the registry that issued them, so two children that look
// identical (or even the same element attached twice) stay distinct keys.
type Handle uint32

// Registry maps the handles of a container's children to their sizing
// sources. It is owned by exactly one container.
type Registry struct {
	next    Handle
	entries map[Handle]Source
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Handle]Source)}
}

// Add registers src and returns the handle issued for it.
func (r *Registry) Add(src Source) Handle {
	r.next++
	r.entries[r.next] = src
	return r.next
}

// Instruction resolves the instruction for h against bounds.
// Querying a handle that is not registered is a caller bug; it is reported
// as an ErrCodeNotFound error rather than defaulted.
func (r *Registry) Instruction(h Handle, bounds geom.Rect) (Instruction, error) {
	src, ok := r.entries[h]
	if !ok || src == nil {
		return Instruction{}, errors.New(errors.ErrCodeNotFound, "no instruction registered for handle %d", h)
	}
	return src.Resolve(bounds), nil
}

// Contains reports whether h is registered.
func (r *Registry) Contains(h Handle) bool {
	_, ok := r.entries[h]
	return ok
}

// Remove drops the entry for h. Removing an unknown handle is a no-op.
func (r *Registry) Remove(h Handle) {
	delete(r.entries, h)
}

// Clear drops every entry.
func (r *Registry) Clear() {
	clear(r.entries)
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	return len(r.entries)
}
