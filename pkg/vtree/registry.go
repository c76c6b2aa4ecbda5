package vtree

import "github.com/vango-dev/vtree/pkg/view"

// Mount is the side-table entry kept for every view the reconciler owns.
type Mount struct {
	CompositeKey string
	Identifier   string
}

// Registry records which live views were produced by a Factory and under
// which composite key. It replaces tagging views in place: a view that is
// not in the registry is never reused.
type Registry struct {
	mounts map[view.View]Mount
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{mounts: make(map[view.View]Mount)}
}

// Lookup returns the entry for v.
func (r *Registry) Lookup(v view.View) (Mount, bool) {
	if v == nil {
		return Mount{}, false
	}
	m, ok := r.mounts[v]
	return m, ok
}

// Len returns the number of registered views.
func (r *Registry) Len() int {
	return len(r.mounts)
}

func (r *Registry) tag(v view.View, n *Node) {
	r.mounts[v] = Mount{CompositeKey: n.CompositeKey(), Identifier: n.Identifier}
}

func (r *Registry) untag(v view.View) {
	delete(r.mounts, v)
}
