package vtree

import (
	"encoding/json"
	"testing"

	"github.com/vango-dev/vtree/pkg/view"
)

func TestSnapshot(t *testing.T) {
	r := NewReconciler()
	tree := column(row("1", label("t", "Title")), icon("star"))
	r.Reconcile(nil, tree, view.NewStack(), 0)
	tree.View().SetFrame(view.Rect{Width: 320, Height: 100})

	snap := Snapshot(tree)
	if snap.Count() != 4 {
		t.Errorf("Count() = %d, want 4", snap.Count())
	}
	if snap.ViewType != "*view.Stack" || snap.Frame.Width != 320 {
		t.Errorf("root snapshot = %+v", snap)
	}
	if snap.Children[0].Key != "1" || snap.Children[0].Children[0].Key != "t" {
		t.Errorf("keys not captured: %+v", snap.Children[0])
	}

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var back SnapshotNode
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.Count() != 4 {
		t.Errorf("decoded Count() = %d, want 4", back.Count())
	}
}

func TestSnapshotUnbuilt(t *testing.T) {
	snap := Snapshot(label("a", "A"))
	if snap.ViewType != "" {
		t.Errorf("ViewType = %q, want empty for unbuilt node", snap.ViewType)
	}
	if Snapshot(nil) != nil {
		t.Error("Snapshot(nil) should be nil")
	}
	var empty *SnapshotNode
	if empty.Count() != 0 {
		t.Error("nil snapshot Count() should be 0")
	}
}
