// Package vtree maps an immutable description of a view hierarchy onto a
// live, mutable one, reusing existing views instead of rebuilding them.
//
// # Core Types
//
// Node describes one view: an identifier (by default the Go type of the
// view), an optional key, ordered children, a create function and a
// configure function. The pair (identifier, key) is the node's composite
// key and is the only criterion for reusing a view across render passes.
//
// Factory turns a Node into a view, adopting a reusable candidate when one
// is supplied and constructing a new view otherwise. Either way the view is
// reset to its construction defaults before configure runs.
//
// Reconciler walks an old tree (views attached) and a new tree (no views)
// in lock-step and mutates the live hierarchy to match the new tree:
//
//	r := vtree.NewReconciler()
//	root := vtree.New(view.NewStack, nil,
//	    vtree.Children(
//	        vtree.New(view.NewLabel, func(l *view.Label) { l.Text = "Hello" }),
//	    ),
//	)
//	r.Reconcile(nil, root, host, 0)
//
//	next := vtree.New(view.NewStack, nil, ...)
//	pass := r.Reconcile(root, next, host, 0)
//	fmt.Println(pass.Stats.Reused)
//
// # Matching
//
// Children are matched against the previous children by composite key, not
// by position, so reordering keeps view identity. Unclaimed old children are
// removed after every new child has been placed. This is linear per level
// and does not try to minimise moves for heavily shuffled children.
//
// # Threading
//
// A Reconciler belongs to the goroutine that owns the hierarchy. Passes must
// not overlap; starting a pass while one is running is a fatal error.
package vtree
