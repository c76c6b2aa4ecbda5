// Package layout is the boundary to the engine that sizes and positions
// views once a reconcile pass has finished.
//
// The reconciler never interprets layout results. A render driver hands the
// root view and a target size to an Engine, which writes frames onto the
// hierarchy and returns the frame it gave the root.
//
// Stack is a small reference engine for the in-memory toolkit in package
// view: stacks lay their subviews out along their axis, scroll containers
// stack content vertically at their content offset, and leaves take an
// intrinsic size.
package layout
