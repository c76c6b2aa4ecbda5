package component

import (
	"context"
	"testing"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/layout"
	"github.com/vango-dev/vtree/pkg/view"
	"github.com/vango-dev/vtree/pkg/vtree"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type recordingProvider struct {
	noop.TracerProvider
	tracer *recordingTracer
}

func (p *recordingProvider) Tracer(string, ...trace.TracerOption) trace.Tracer {
	return p.tracer
}

type recordingTracer struct {
	noop.Tracer
	spans []*recordingSpan
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	s := &recordingSpan{name: name, attrs: append([]attribute.KeyValue(nil), cfg.Attributes()...)}
	t.spans = append(t.spans, s)
	return trace.ContextWithSpan(ctx, s), s
}

type recordingSpan struct {
	noop.Span
	name   string
	attrs  []attribute.KeyValue
	status codes.Code
	ended  bool
}

func (s *recordingSpan) SetAttributes(kv ...attribute.KeyValue) { s.attrs = append(s.attrs, kv...) }
func (s *recordingSpan) SetStatus(code codes.Code, _ string)    { s.status = code }
func (s *recordingSpan) End(...trace.SpanEndOption)             { s.ended = true }

func (s *recordingSpan) attr(key string) (attribute.Value, bool) {
	for _, kv := range s.attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func listScreen(items *[]string) RenderFunc {
	return func(ctx context.Context) *vtree.Node {
		if *items == nil {
			return nil
		}
		var rows []*vtree.Node
		for _, item := range *items {
			text := item
			rows = append(rows, vtree.New(view.NewLabel, func(l *view.Label) { l.Text = text }, vtree.Key(item)))
		}
		return vtree.New(view.NewStack, nil, vtree.Children(rows...))
	}
}

func expectFatal(t *testing.T, code string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		e := errors.AsFatal(recover())
		if e == nil {
			t.Fatalf("expected fatal %s, got none", code)
		}
		if e.Code != code {
			t.Fatalf("fatal code = %s, want %s", e.Code, code)
		}
	}()
	fn()
}

func labelTexts(v view.View) []string {
	var out []string
	for _, c := range v.Subviews() {
		if l, ok := c.(*view.Label); ok {
			out = append(out, l.Text)
		}
	}
	return out
}

func TestHostMountAndRender(t *testing.T) {
	items := []string{"a", "b"}
	container := view.NewStack()
	h := NewHost(container, listScreen(&items))
	ctx := context.Background()

	r := h.Mount(ctx)
	if r.Kind != KindMount {
		t.Errorf("Kind = %q, want %q", r.Kind, KindMount)
	}
	if r.Pass.Stats.Created != 3 {
		t.Errorf("Created = %d, want 3", r.Pass.Stats.Created)
	}
	if r.Live != 3 {
		t.Errorf("Live = %d, want 3", r.Live)
	}
	if !h.Mounted() || len(container.Subviews()) != 1 {
		t.Fatalf("container has %d subviews, want 1", len(container.Subviews()))
	}
	root := container.Subviews()[0]

	items = []string{"b", "a", "c"}
	r = h.Render(ctx)
	if r.Kind != KindRender {
		t.Errorf("Kind = %q, want %q", r.Kind, KindRender)
	}
	s := r.Pass.Stats
	if s.Reused != 3 || s.Created != 1 || s.Moved != 1 || s.Removed != 0 {
		t.Errorf("Stats = %+v, want 3 reused, 1 created, 1 moved", s)
	}
	if container.Subviews()[0] != root {
		t.Error("root view should be reused")
	}
	got := labelTexts(root)
	want := []string{"b", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("labels = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("labels = %v, want %v", got, want)
			break
		}
	}
	if r.Seq != 2 || r.ID == "" {
		t.Errorf("Seq = %d, ID = %q", r.Seq, r.ID)
	}
	if r.Snapshot == nil || r.Snapshot.Count() != 4 {
		t.Errorf("snapshot count = %d, want 4", r.Snapshot.Count())
	}
}

func TestHostRenderNilUnmounts(t *testing.T) {
	items := []string{"a"}
	container := view.NewStack()
	h := NewHost(container, listScreen(&items))
	h.Mount(context.Background())

	items = nil
	r := h.Render(context.Background())

	if r.Kind != KindUnmount {
		t.Errorf("Kind = %q, want %q", r.Kind, KindUnmount)
	}
	if r.Pass.Stats.Removed != 2 {
		t.Errorf("Removed = %d, want 2", r.Pass.Stats.Removed)
	}
	if len(container.Subviews()) != 0 || h.Mounted() {
		t.Error("container should be empty")
	}
	if r.Live != 0 {
		t.Errorf("Live = %d, want 0", r.Live)
	}
}

func TestHostUnmount(t *testing.T) {
	items := []string{"a", "b"}
	container := view.NewStack()
	h := NewHost(container, listScreen(&items),
		WithReconciler(vtree.NewReconciler(vtree.WithPoolSize(8))))

	if r := h.Unmount(context.Background()); r != nil {
		t.Errorf("Unmount() before mount = %+v, want nil", r)
	}

	h.Mount(context.Background())
	r := h.Unmount(context.Background())
	if r.Kind != KindUnmount {
		t.Errorf("Kind = %q, want %q", r.Kind, KindUnmount)
	}
	if r.Pooled != 3 {
		t.Errorf("Pooled = %d, want 3", r.Pooled)
	}
	if len(container.Subviews()) != 0 {
		t.Error("container should be empty")
	}

	r = h.Mount(context.Background())
	if r.Pass.Stats.Recycled != 3 || r.Pass.Stats.Created != 0 {
		t.Errorf("Stats = %+v, want 3 recycled", r.Pass.Stats)
	}
}

func TestHostRejectsReentrantRender(t *testing.T) {
	var h *Host
	reenter := true
	h = NewHost(view.NewStack(), func(ctx context.Context) *vtree.Node {
		if reenter {
			h.Render(ctx)
		}
		return vtree.New(view.NewLabel, nil)
	})

	expectFatal(t, "E004", func() { h.Render(context.Background()) })

	reenter = false
	if r := h.Render(context.Background()); r.Kind != KindMount {
		t.Errorf("Kind = %q after recovered reentry, want %q", r.Kind, KindMount)
	}
}

func TestHostObservers(t *testing.T) {
	items := []string{"a"}
	var first, second []string
	h := NewHost(view.NewStack(), listScreen(&items),
		WithObserver(ObserverFunc(func(r *Report) { first = append(first, r.Kind) })))
	h.AddObserver(ObserverFunc(func(r *Report) { second = append(second, r.Kind) }))

	h.Mount(context.Background())
	h.Render(context.Background())
	h.Unmount(context.Background())

	want := []string{KindMount, KindRender, KindUnmount}
	for _, got := range [][]string{first, second} {
		if len(got) != len(want) {
			t.Fatalf("observed %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("observed %v, want %v", got, want)
			}
		}
	}
}

func TestHostObserverMayRenderAgain(t *testing.T) {
	items := []string{"a"}
	var h *Host
	renders := 0
	h = NewHost(view.NewStack(), listScreen(&items),
		WithObserver(ObserverFunc(func(r *Report) {
			renders++
			if r.Kind == KindMount {
				h.Render(context.Background())
			}
		})))

	h.Mount(context.Background())
	if renders != 2 {
		t.Errorf("observer ran %d times, want 2", renders)
	}
}

func TestHostLayout(t *testing.T) {
	items := []string{"a", "b"}
	container := view.NewStack()
	h := NewHost(container, listScreen(&items),
		WithEngine(layout.NewStack()),
		WithBounds(view.Size{Width: 320, Height: 480}))

	r := h.Mount(context.Background())
	if want := (view.Rect{Width: 320, Height: 480}); r.Frame != want {
		t.Errorf("Frame = %+v, want %+v", r.Frame, want)
	}
	root := container.Subviews()[0]
	second := root.Subviews()[1]
	if got, want := second.Frame(), (view.Rect{Y: 20, Width: 320, Height: 20}); got != want {
		t.Errorf("second row frame = %+v, want %+v", got, want)
	}

	h.SetBounds(view.Size{Width: 200, Height: 100})
	if got := second.Frame().Width; got != 200 {
		t.Errorf("width after SetBounds = %v, want 200", got)
	}
	if got := h.Bounds(); got != (view.Size{Width: 200, Height: 100}) {
		t.Errorf("Bounds() = %+v", got)
	}
}

func TestHostTracing(t *testing.T) {
	tracer := &recordingTracer{}
	items := []string{"a", "b"}
	var sawSpan bool
	render := listScreen(&items)
	h := NewHost(view.NewStack(), func(ctx context.Context) *vtree.Node {
		_, sawSpan = trace.SpanFromContext(ctx).(*recordingSpan)
		return render(ctx)
	}, WithTracerProvider(&recordingProvider{tracer: tracer}))

	r := h.Mount(context.Background())

	if !sawSpan {
		t.Error("render func should run inside the pass span")
	}
	if len(tracer.spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(tracer.spans))
	}
	span := tracer.spans[0]
	if span.name != "vtree.render" || !span.ended {
		t.Errorf("span = %q ended=%v", span.name, span.ended)
	}
	if v, ok := span.attr("vtree.pass_id"); !ok || v.AsString() != r.ID {
		t.Errorf("vtree.pass_id = %v, want %q", v.Emit(), r.ID)
	}
	if v, ok := span.attr("vtree.created"); !ok || v.AsInt64() != 3 {
		t.Errorf("vtree.created = %v, want 3", v.Emit())
	}
	if v, ok := span.attr("vtree.kind"); !ok || v.AsString() != KindMount {
		t.Errorf("vtree.kind = %v, want %q", v.Emit(), KindMount)
	}
	if span.status != codes.Ok {
		t.Errorf("status = %v, want %v", span.status, codes.Ok)
	}
}

func TestHostTracingFatalPass(t *testing.T) {
	tracer := &recordingTracer{}
	h := NewHost(view.NewStack(), func(context.Context) *vtree.Node {
		return vtree.New(func() *view.Label { return nil }, nil)
	}, WithTracerProvider(&recordingProvider{tracer: tracer}))

	expectFatal(t, "E002", func() { h.Mount(context.Background()) })

	if len(tracer.spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(tracer.spans))
	}
	if span := tracer.spans[0]; span.status != codes.Error || !span.ended {
		t.Errorf("status = %v ended=%v, want %v ended", span.status, span.ended, codes.Error)
	}
	if h.Mounted() {
		t.Error("host should not be mounted after a fatal pass")
	}
}

func TestNewHostNilContainer(t *testing.T) {
	expectFatal(t, "E006", func() { NewHost(nil, nil) })
}
