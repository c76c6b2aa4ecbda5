package vtree

import (
	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/view"
)

// Origin says where a built node's view came from.
type Origin uint8

const (
	OriginExisting Origin = iota // node was already built
	OriginReused                 // adopted the supplied candidate
	OriginRecycled               // taken from the pool
	OriginCreated                // constructed by the node's create function
)

// String returns the string representation of the Origin.
func (o Origin) String() string {
	switch o {
	case OriginExisting:
		return "existing"
	case OriginReused:
		return "reused"
	case OriginRecycled:
		return "recycled"
	case OriginCreated:
		return "created"
	default:
		return "unknown"
	}
}

// Factory builds views for nodes and tags them in its Registry.
type Factory struct {
	registry *Registry
	pool     *Pool
}

// NewFactory creates a Factory. pool may be nil.
func NewFactory(registry *Registry, pool *Pool) *Factory {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Factory{registry: registry, pool: pool}
}

// Build attaches a view to n. A non-nil candidate is adopted as-is; without
// one the pool is consulted and then the node's create function. The view
// is reset to its defaults, tagged with n's composite key and configured.
//
// Build is a no-op for a node that already has a view, provided the caller
// is not asking it to adopt a different one.
func (f *Factory) Build(n *Node, candidate view.View) Origin {
	if n.view != nil {
		if candidate != nil && candidate != n.view {
			errors.Fatal("E005", "node %s already holds %s", n, view.TypeName(n.view))
		}
		return OriginExisting
	}

	var (
		v      view.View
		origin Origin
	)
	switch {
	case candidate != nil:
		v, origin = candidate, OriginReused
	default:
		if pooled := f.pool.Take(n.CompositeKey(), n.accepts); pooled != nil {
			v, origin = pooled, OriginRecycled
		} else {
			v, origin = n.create(), OriginCreated
			if v == nil {
				errors.Fatal("E002", "create for node %s returned nil", n)
			}
		}
	}
	if !n.accepts(v) {
		errors.Fatal("E003", "node %s expects %s, got %s", n, n.viewType, view.TypeName(v))
	}

	v.ResetDefaults()
	f.registry.tag(v, n)
	n.view = v
	if n.configure != nil {
		n.configure(v)
	}
	return origin
}
