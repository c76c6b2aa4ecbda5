package vtree

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/view"
)

// Node is the description of one view. Nodes are built fresh for every
// render pass; the reconciler only ever sets the attached view.
type Node struct {
	// Identifier is the reuse identifier, by default the view's Go type.
	Identifier string

	// Key disambiguates siblings that share an identifier.
	Key string

	// Children are the ordered child descriptions.
	Children []*Node

	create    func() view.View
	configure func(view.View)
	accepts   func(view.View) bool
	viewType  string

	view view.View
}

// Option customises a Node at construction.
type Option func(*Node)

// Key sets the node's key.
func Key(key string) Option {
	return func(n *Node) { n.Key = key }
}

// Identifier overrides the identifier derived from the view type.
func Identifier(id string) Option {
	return func(n *Node) { n.Identifier = id }
}

// Children appends child nodes. Nil children are skipped so callers can
// write conditional children inline.
func Children(children ...*Node) Option {
	return func(n *Node) {
		for _, c := range children {
			if c != nil {
				n.Children = append(n.Children, c)
			}
		}
	}
}

// New describes a view of type V. create is called only when no reusable
// view exists; configure, which may be nil, runs on every pass and must be
// safe to re-apply.
func New[V view.View](create func() V, configure func(V), opts ...Option) *Node {
	typeName := fmt.Sprintf("%T", *new(V))
	if create == nil {
		errors.Fatal("E001", "node of type %s was declared without a create function", typeName)
	}

	n := &Node{
		Identifier: typeName,
		viewType:   typeName,
		create: func() view.View {
			v := create()
			if isNil(v) {
				return nil
			}
			return v
		},
		accepts: func(v view.View) bool {
			_, ok := v.(V)
			return ok
		},
	}
	if configure != nil {
		n.configure = func(v view.View) { configure(v.(V)) }
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// identifierEscaper escapes the separator in identifiers so that the first
// unescaped '#' always splits identifier from key.
var identifierEscaper = strings.NewReplacer(`\`, `\\`, "#", `\#`)

// CompositeKey returns the identity used for reuse decisions: the
// identifier, then '#' and the key when there is one. A '#' or '\' inside
// the identifier is backslash-escaped, so distinct (identifier, key) pairs
// never share a composite key.
func (n *Node) CompositeKey() string {
	id := identifierEscaper.Replace(n.Identifier)
	if n.Key == "" {
		return id
	}
	return id + "#" + n.Key
}

// View returns the attached view, or nil before the node is built.
func (n *Node) View() view.View {
	return n.view
}

// Built reports whether a view is attached.
func (n *Node) Built() bool {
	return n.view != nil
}

// ViewType returns the Go type name of the view this node produces.
func (n *Node) ViewType() string {
	return n.viewType
}

// String returns the composite key.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return n.CompositeKey()
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// Walk visits n and its descendants depth-first in child order. Returning
// false from fn skips the node's children.
func Walk(n *Node, fn func(n *Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if n == nil {
		return
	}
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		walk(c, depth+1, fn)
	}
}

// Count returns the number of nodes in the tree.
func Count(n *Node) int {
	count := 0
	Walk(n, func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Find returns the first node with the given composite key, or nil.
func Find(n *Node, compositeKey string) *Node {
	var found *Node
	Walk(n, func(c *Node, _ int) bool {
		if found != nil {
			return false
		}
		if c.CompositeKey() == compositeKey {
			found = c
			return false
		}
		return true
	})
	return found
}
