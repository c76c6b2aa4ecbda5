package vtree

import (
	"testing"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/view"
)

func label(key, text string) *Node {
	return New(view.NewLabel, func(l *view.Label) { l.Text = text }, Key(key))
}

func icon(name string) *Node {
	return New(view.NewIcon, func(i *view.Icon) { i.Name = name })
}

func row(key string, children ...*Node) *Node {
	return New(view.NewStack, func(s *view.Stack) { s.Axis = view.Horizontal }, Key(key), Children(children...))
}

func column(children ...*Node) *Node {
	return New(view.NewStack, nil, Children(children...))
}

// assertMirrors checks that the live hierarchy under n.View() has exactly
// n's shape: same count, order and view types at every level.
func assertMirrors(t *testing.T, n *Node) {
	t.Helper()
	if n.View() == nil {
		t.Fatalf("node %s has no view", n)
	}
	if got := view.TypeName(n.View()); got != n.ViewType() {
		t.Errorf("node %s view type = %s, want %s", n, got, n.ViewType())
	}
	subviews := n.View().Subviews()
	if len(subviews) != len(n.Children) {
		t.Fatalf("node %s has %d subviews, want %d", n, len(subviews), len(n.Children))
	}
	for i, c := range n.Children {
		if subviews[i] != c.View() {
			t.Errorf("node %s subview %d is not the view of child %s", n, i, c)
		}
		assertMirrors(t, c)
	}
}

// expectFatal runs fn and returns the code it panicked with.
func expectFatal(t *testing.T, fn func()) (code string) {
	t.Helper()
	defer func() {
		e := errors.AsFatal(recover())
		if e == nil {
			t.Fatal("expected a fatal *errors.Error panic")
		}
		code = e.Code
	}()
	fn()
	return ""
}
