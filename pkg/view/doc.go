// Package view defines the native view toolkit boundary used by vtree and
// ships a small in-memory toolkit that satisfies it.
//
// The reconciler needs only a handful of primitives from a toolkit: ordered
// subviews, insertion at an index, removal from the parent, and a way to
// restore a view to its freshly constructed state. Any toolkit offering
// these through the View interface can host a tree.
//
// The in-memory toolkit (Stack, Label, Button, Icon, Scroll) is built on
// Base, which concrete views embed:
//
//	type Badge struct {
//	    view.Base
//	    Count int
//	}
//
//	func NewBadge() *Badge {
//	    b := &Badge{}
//	    b.Init(b)
//	    return b
//	}
package view
