package main

import (
	"context"
	"sort"

	"github.com/vango-dev/vtree/pkg/listview"
	"github.com/vango-dev/vtree/pkg/view"
	"github.com/vango-dev/vtree/pkg/vtree"
)

type message struct {
	ID      string
	From    string
	Subject string
	Unread  bool
}

// inbox is the sample screen used by demo and inspect. Each call to advance
// applies the next scripted change; the script loops.
type inbox struct {
	messages   []message
	showHeader bool
	step       int
	rows       *listview.Adapter[string]
}

func newInbox(rows *listview.Adapter[string]) *inbox {
	in := &inbox{
		messages: []message{
			{ID: "m1", From: "ada", Subject: "Reconciler notes", Unread: true},
			{ID: "m2", From: "grace", Subject: "Compiler meetup"},
			{ID: "m3", From: "linus", Subject: "Patch review", Unread: true},
		},
		showHeader: true,
		rows:       rows,
	}
	in.syncRows()
	return in
}

var script = []struct {
	name  string
	apply func(*inbox)
}{
	{"new message arrives", func(in *inbox) {
		in.messages = append([]message{{ID: "m4", From: "barbara", Subject: "Abstraction", Unread: true}}, in.messages...)
	}},
	{"mark first message read", func(in *inbox) {
		in.messages[0].Unread = false
	}},
	{"delete a message", func(in *inbox) {
		in.messages = append(in.messages[:1], in.messages[2:]...)
	}},
	{"sort by sender", func(in *inbox) {
		sort.SliceStable(in.messages, func(i, j int) bool { return in.messages[i].From < in.messages[j].From })
	}},
	{"hide header", func(in *inbox) {
		in.showHeader = false
	}},
	{"restore inbox", func(in *inbox) {
		fresh := newInbox(nil)
		in.messages = fresh.messages
		in.showHeader = true
	}},
}

// advance applies the next scripted change and returns its name.
func (in *inbox) advance() string {
	s := script[in.step%len(script)]
	in.step++
	s.apply(in)
	in.syncRows()
	return s.name
}

func (in *inbox) syncRows() {
	if in.rows == nil {
		return
	}
	ids := make([]string, len(in.messages))
	for i, m := range in.messages {
		ids[i] = m.ID
	}
	in.rows.SetRows(ids)
}

func (in *inbox) render(ctx context.Context) *vtree.Node {
	var children []*vtree.Node
	if in.showHeader {
		children = append(children, vtree.New(view.NewLabel, func(l *view.Label) {
			l.Text = "Inbox"
			l.AccessibilityLabel = "header"
		}, vtree.Key("header")))
	}

	rows := make([]*vtree.Node, 0, len(in.messages))
	for _, m := range in.messages {
		rows = append(rows, messageRow(m))
	}
	children = append(children,
		vtree.New(view.NewScroll, nil, vtree.Key("list"), vtree.Children(
			vtree.New(view.NewStack, func(s *view.Stack) { s.Spacing = 4 }, vtree.Children(rows...)),
		)),
		vtree.New(view.NewButton, func(b *view.Button) { b.Title = "Compose" }, vtree.Key("compose")),
	)

	return vtree.New(view.NewStack, nil, vtree.Key("inbox"), vtree.Children(children...))
}

func messageRow(m message) *vtree.Node {
	var badge *vtree.Node
	if m.Unread {
		badge = vtree.New(view.NewIcon, func(i *view.Icon) { i.Name = "dot" }, vtree.Key("unread"))
	}
	return vtree.New(view.NewStack, func(s *view.Stack) {
		s.Axis = view.Horizontal
		s.Spacing = 8
	}, vtree.Key(m.ID), vtree.Children(
		badge,
		vtree.New(view.NewLabel, func(l *view.Label) { l.Text = m.From }, vtree.Key("from")),
		vtree.New(view.NewLabel, func(l *view.Label) { l.Text = m.Subject }, vtree.Key("subject")),
	))
}
