package vtree

import "github.com/vango-dev/vtree/pkg/view"

// SnapshotNode is a serialisable picture of a built tree.
type SnapshotNode struct {
	Identifier string          `json:"identifier"`
	Key        string          `json:"key,omitempty"`
	ViewType   string          `json:"viewType,omitempty"`
	Frame      view.Rect       `json:"frame"`
	Children   []*SnapshotNode `json:"children,omitempty"`
}

// Snapshot captures n and its descendants. Unbuilt nodes are included
// without a view type or frame.
func Snapshot(n *Node) *SnapshotNode {
	if n == nil {
		return nil
	}
	s := &SnapshotNode{
		Identifier: n.Identifier,
		Key:        n.Key,
	}
	if n.view != nil {
		s.ViewType = view.TypeName(n.view)
		s.Frame = n.view.Frame()
	}
	for _, c := range n.Children {
		s.Children = append(s.Children, Snapshot(c))
	}
	return s
}

// Count returns the number of nodes in the snapshot.
func (s *SnapshotNode) Count() int {
	if s == nil {
		return 0
	}
	n := 1
	for _, c := range s.Children {
		n += c.Count()
	}
	return n
}
