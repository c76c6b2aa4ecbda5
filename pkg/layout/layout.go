package layout

import "github.com/vango-dev/vtree/pkg/view"

// Engine computes and applies frames for the hierarchy rooted at root.
type Engine interface {
	Apply(root view.View, size view.Size) view.Rect
}

// EngineFunc adapts a function to Engine.
type EngineFunc func(root view.View, size view.Size) view.Rect

// Apply implements Engine.
func (f EngineFunc) Apply(root view.View, size view.Size) view.Rect {
	return f(root, size)
}

// None is an Engine that gives the root the full size and leaves
// descendants untouched.
var None Engine = EngineFunc(func(root view.View, size view.Size) view.Rect {
	r := view.Rect{Width: size.Width, Height: size.Height}
	if root != nil {
		root.SetFrame(r)
	}
	return r
})
