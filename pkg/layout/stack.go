package layout

import "github.com/vango-dev/vtree/pkg/view"

// Stack is the reference engine for package view's widgets.
type Stack struct {
	LineHeight   float64 // Label height
	ButtonHeight float64
	IconSize     float64
}

// NewStack returns a Stack with the default metrics.
func NewStack() *Stack {
	return &Stack{
		LineHeight:   20,
		ButtonHeight: 44,
		IconSize:     24,
	}
}

// Apply implements Engine.
func (s *Stack) Apply(root view.View, size view.Size) view.Rect {
	r := view.Rect{Width: size.Width, Height: size.Height}
	if root == nil {
		return r
	}
	s.place(root, r)
	return r
}

func (s *Stack) place(v view.View, r view.Rect) {
	if hidden(v) {
		v.SetFrame(view.Rect{X: r.X, Y: r.Y})
		zero(v.Subviews())
		return
	}
	v.SetFrame(r)

	inner := view.Rect{Width: r.Width, Height: r.Height}
	switch c := v.(type) {
	case *view.Stack:
		if c.Axis == view.Horizontal {
			s.row(c.Subviews(), inner, c.Spacing)
		} else {
			s.column(c.Subviews(), inner, c.Spacing, 0)
		}
	case *view.Scroll:
		s.column(c.Subviews(), inner, 0, -c.ContentOffset)
	default:
		s.column(v.Subviews(), inner, 0, 0)
	}
}

// column stacks children top to bottom. Children without an intrinsic
// height share whatever height is left.
func (s *Stack) column(children []view.View, r view.Rect, spacing, offset float64) {
	visible := 0
	used := 0.0
	flexible := 0
	for _, c := range children {
		if hidden(c) {
			continue
		}
		visible++
		if h, ok := s.intrinsic(c, r.Width); ok {
			used += h
		} else {
			flexible++
		}
	}
	if visible > 1 {
		used += spacing * float64(visible-1)
	}
	share := 0.0
	if flexible > 0 && r.Height > used {
		share = (r.Height - used) / float64(flexible)
	}

	y := r.Y + offset
	for _, c := range children {
		if hidden(c) {
			s.place(c, view.Rect{X: r.X, Y: y})
			continue
		}
		h, ok := s.intrinsic(c, r.Width)
		if !ok {
			h = share
		}
		s.place(c, view.Rect{X: r.X, Y: y, Width: r.Width, Height: h})
		y += h + spacing
	}
}

// row lays children left to right with equal widths.
func (s *Stack) row(children []view.View, r view.Rect, spacing float64) {
	visible := 0
	for _, c := range children {
		if !hidden(c) {
			visible++
		}
	}
	if visible == 0 {
		zero(children)
		return
	}
	w := (r.Width - spacing*float64(visible-1)) / float64(visible)
	if w < 0 {
		w = 0
	}

	x := r.X
	for _, c := range children {
		if hidden(c) {
			s.place(c, view.Rect{X: x, Y: r.Y})
			continue
		}
		s.place(c, view.Rect{X: x, Y: r.Y, Width: w, Height: r.Height})
		x += w + spacing
	}
}

// intrinsic returns the natural height of v at the given width. Containers
// without fixed content report false.
func (s *Stack) intrinsic(v view.View, width float64) (float64, bool) {
	switch c := v.(type) {
	case *view.Label:
		return s.LineHeight, true
	case *view.Button:
		return s.ButtonHeight, true
	case *view.Icon:
		return s.IconSize, true
	case *view.Stack:
		if c.Axis == view.Horizontal {
			tallest := 0.0
			for _, sub := range c.Subviews() {
				if hidden(sub) {
					continue
				}
				h, ok := s.intrinsic(sub, width)
				if !ok {
					return 0, false
				}
				tallest = max(tallest, h)
			}
			return tallest, true
		}
		total := 0.0
		n := 0
		for _, sub := range c.Subviews() {
			if hidden(sub) {
				continue
			}
			h, ok := s.intrinsic(sub, width)
			if !ok {
				return 0, false
			}
			total += h
			n++
		}
		if n > 1 {
			total += c.Spacing * float64(n-1)
		}
		return total, true
	}
	return 0, false
}

func hidden(v view.View) bool {
	h, ok := v.(interface{ IsHidden() bool })
	return ok && h.IsHidden()
}

func zero(views []view.View) {
	for _, v := range views {
		v.SetFrame(view.Rect{})
		zero(v.Subviews())
	}
}
