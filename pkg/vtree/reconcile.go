package vtree

import (
	"log/slog"
	"sync/atomic"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/view"
)

// Reconciler owns the views it builds and keeps them in step with a
// sequence of node trees.
type Reconciler struct {
	registry *Registry
	pool     *Pool
	factory  *Factory
	logger   *slog.Logger
	running  atomic.Bool
}

// ReconcilerOption configures a Reconciler.
type ReconcilerOption func(*Reconciler)

// WithPoolSize enables the recycle pool with room for size views.
func WithPoolSize(size int) ReconcilerOption {
	return func(r *Reconciler) {
		r.pool = NewPool(size)
	}
}

// WithLogger sets the logger used for pass diagnostics.
func WithLogger(logger *slog.Logger) ReconcilerOption {
	return func(r *Reconciler) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewReconciler creates a Reconciler. The recycle pool is disabled unless
// WithPoolSize is given.
func NewReconciler(opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		registry: NewRegistry(),
		logger:   slog.Default().With("component", "reconciler"),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.factory = NewFactory(r.registry, r.pool)
	return r
}

// Registry returns the side-table of views owned by r.
func (r *Reconciler) Registry() *Registry {
	return r.registry
}

// Pool returns the recycle pool, which may be nil.
func (r *Reconciler) Pool() *Pool {
	return r.pool
}

// Factory returns the factory r builds views with.
func (r *Reconciler) Factory() *Factory {
	return r.factory
}

// Owns reports whether v was produced by r and is still tagged.
func (r *Reconciler) Owns(v view.View) bool {
	_, ok := r.registry.Lookup(v)
	return ok
}

// BuildRoot builds a detached view hierarchy for n and returns its root.
func (r *Reconciler) BuildRoot(n *Node) (view.View, *Pass) {
	r.begin()
	defer r.end()

	p := &Pass{}
	r.mount(p, n, nil, "", 0)
	r.finish(p)
	return n.view, p
}

// Reconcile mutates the hierarchy under parent so that next occupies the
// subview slot mountIndex, reusing old's views wherever their composite
// keys match. old may be nil for a first render. parent may be nil when the
// tree is detached, in which case no insertion happens at the root.
func (r *Reconciler) Reconcile(old, next *Node, parent view.View, mountIndex int) *Pass {
	r.begin()
	defer r.end()

	p := &Pass{}
	r.reconcile(p, old, next, parent, "", mountIndex)
	r.finish(p)
	return p
}

// Unmount removes the tree rooted at n from the hierarchy.
func (r *Reconciler) Unmount(n *Node) *Pass {
	r.begin()
	defer r.end()

	p := &Pass{}
	r.unmount(p, n, "", 0)
	r.finish(p)
	return p
}

func (r *Reconciler) begin() {
	if !r.running.CompareAndSwap(false, true) {
		errors.Fatal("E004", "")
	}
}

func (r *Reconciler) end() {
	r.running.Store(false)
}

// finish hands released views to the pool. Deferring this to the end of
// the pass keeps a discarded subtree from feeding the tree replacing it.
func (r *Reconciler) finish(p *Pass) {
	for _, rel := range p.released {
		r.pool.Put(rel.key, rel.view)
	}
	p.released = nil
	r.logger.Debug("reconcile pass",
		"created", p.Stats.Created,
		"recycled", p.Stats.Recycled,
		"reused", p.Stats.Reused,
		"moved", p.Stats.Moved,
		"removed", p.Stats.Removed,
		"replaced", p.Stats.Replaced,
	)
}

// reusable reports whether candidate can carry next.
func (r *Reconciler) reusable(candidate view.View, next *Node) bool {
	if candidate == nil {
		return false
	}
	m, ok := r.registry.Lookup(candidate)
	return ok && m.CompositeKey == next.CompositeKey()
}

func (r *Reconciler) reconcile(p *Pass, old, next *Node, parent view.View, parentKey string, index int) {
	var candidate view.View
	if old != nil {
		candidate = old.view
	}

	if r.reusable(candidate, next) {
		r.factory.Build(next, candidate)
		if parent != nil {
			index = slot(parent, candidate, index)
		}
		p.Stats.Reused++
		p.record(OpReuse, next.CompositeKey(), parentKey, index)

		if parent != nil && view.IndexOf(parent, candidate) != index {
			parent.InsertSubview(candidate, index)
			p.Stats.Moved++
			p.record(OpMove, next.CompositeKey(), parentKey, index)
		}
		r.reconcileChildren(p, old, next)
		return
	}

	r.mount(p, next, parent, parentKey, index)
	if old != nil && old.view != nil {
		p.Stats.Replaced++
		p.record(OpReplace, next.CompositeKey(), parentKey, index)
		r.unmount(p, old, parentKey, index)
	}
}

// slot clamps index to the position InsertSubview would give v in parent,
// counting v's current slot when it is already a subview of parent.
func slot(parent, v view.View, index int) int {
	last := len(parent.Subviews())
	if v.Superview() == parent {
		last--
	}
	switch {
	case index < 0:
		return 0
	case index > last:
		return last
	}
	return index
}

// reconcileChildren claims old children by composite key in next's order,
// then removes the ones nobody claimed.
func (r *Reconciler) reconcileChildren(p *Pass, old, next *Node) {
	parentView := next.view
	parentKey := next.CompositeKey()

	available := make(map[string][]*Node, len(old.Children))
	for _, c := range old.Children {
		if c.view != nil {
			k := c.CompositeKey()
			available[k] = append(available[k], c)
		}
	}

	claimed := make(map[*Node]bool, len(old.Children))
	for i, child := range next.Children {
		k := child.CompositeKey()
		var match *Node
		if queue := available[k]; len(queue) > 0 {
			match = queue[0]
			available[k] = queue[1:]
			claimed[match] = true
		}
		r.reconcile(p, match, child, parentView, parentKey, i)
	}

	for i, c := range old.Children {
		if c.view != nil && !claimed[c] {
			r.unmount(p, c, parentKey, i)
		}
	}
}

// mount builds n and its descendants fresh, then inserts n's view into
// parent at index. The subtree is assembled before it touches the live
// hierarchy.
func (r *Reconciler) mount(p *Pass, n *Node, parent view.View, parentKey string, index int) {
	switch r.factory.Build(n, nil) {
	case OriginRecycled:
		p.Stats.Recycled++
	case OriginCreated:
		p.Stats.Created++
	}

	key := n.CompositeKey()
	for i, child := range n.Children {
		r.mount(p, child, n.view, key, i)
	}
	if parent != nil {
		parent.InsertSubview(n.view, index)
	}
	p.record(OpMount, key, parentKey, index)
}

// unmount detaches n's view and releases its whole subtree.
func (r *Reconciler) unmount(p *Pass, n *Node, parentKey string, index int) {
	if n.view == nil {
		return
	}
	n.view.RemoveFromSuperview()
	r.release(p, n)
	p.record(OpUnmount, n.CompositeKey(), parentKey, index)
}

func (r *Reconciler) release(p *Pass, n *Node) {
	v := n.view
	if v == nil {
		return
	}
	for _, c := range n.Children {
		if c.view != nil && c.view.Superview() == v {
			c.view.RemoveFromSuperview()
		}
		r.release(p, c)
	}
	if m, ok := r.registry.Lookup(v); ok {
		r.registry.untag(v)
		p.released = append(p.released, released{key: m.CompositeKey, view: v})
	}
	p.Stats.Removed++
}
