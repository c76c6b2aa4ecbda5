package component

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/layout"
	"github.com/vango-dev/vtree/pkg/view"
	"github.com/vango-dev/vtree/pkg/vtree"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "vtree"

// Pass kinds reported to observers.
const (
	KindMount   = "mount"
	KindRender  = "render"
	KindUnmount = "unmount"
)

// RenderFunc builds the node tree for the current state. Returning nil
// clears the container.
type RenderFunc func(ctx context.Context) *vtree.Node

// Report describes one completed pass.
type Report struct {
	ID       string              `json:"id"`
	Seq      uint64              `json:"seq"`
	Kind     string              `json:"kind"`
	Started  time.Time           `json:"started"`
	Duration time.Duration       `json:"duration"`
	Pass     *vtree.Pass         `json:"pass"`
	Frame    view.Rect           `json:"frame"`
	Snapshot *vtree.SnapshotNode `json:"snapshot,omitempty"`
	Live     int                 `json:"live"`   // Views owned after the pass
	Pooled   int                 `json:"pooled"` // Views in the recycle pool after the pass
}

// Observer is notified after every pass, on the goroutine that ran it.
type Observer interface {
	ObservePass(r *Report)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(r *Report)

// ObservePass implements Observer.
func (f ObserverFunc) ObservePass(r *Report) { f(r) }

// Option configures a Host.
type Option func(*Host)

// WithReconciler sets the reconciler. The default has no recycle pool.
func WithReconciler(r *vtree.Reconciler) Option {
	return func(h *Host) {
		if r != nil {
			h.reconciler = r
		}
	}
}

// WithEngine sets the layout engine (default: layout.None).
func WithEngine(e layout.Engine) Option {
	return func(h *Host) {
		if e != nil {
			h.engine = e
		}
	}
}

// WithBounds sets the size handed to the layout engine.
func WithBounds(size view.Size) Option {
	return func(h *Host) {
		h.bounds = size
	}
}

// WithObserver adds an observer.
func WithObserver(o Observer) Option {
	return func(h *Host) {
		if o != nil {
			h.observers = append(h.observers, o)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithTracerProvider sets the provider the pass tracer is taken from.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(h *Host) {
		h.tracerProvider = tp
	}
}

// Host renders a node tree into a container view.
type Host struct {
	container  view.View
	render     RenderFunc
	reconciler *vtree.Reconciler
	engine     layout.Engine
	bounds     view.Size
	observers  []Observer
	logger     *slog.Logger

	tracerProvider trace.TracerProvider
	tracer         trace.Tracer

	tree    *vtree.Node
	seq     uint64
	running atomic.Bool
}

// NewHost creates a Host rendering into container.
func NewHost(container view.View, render RenderFunc, opts ...Option) *Host {
	if container == nil {
		errors.Fatal("E006", "")
	}
	h := &Host{
		container: container,
		render:    render,
		engine:    layout.None,
		logger:    slog.Default().With("component", "host"),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.reconciler == nil {
		h.reconciler = vtree.NewReconciler(vtree.WithLogger(h.logger))
	}
	if h.tracerProvider == nil {
		h.tracerProvider = otel.GetTracerProvider()
	}
	h.tracer = h.tracerProvider.Tracer(defaultTracerName)
	return h
}

// Container returns the view the tree is rendered into.
func (h *Host) Container() view.View { return h.container }

// Tree returns the node tree of the last pass, or nil.
func (h *Host) Tree() *vtree.Node { return h.tree }

// Mounted reports whether a tree is currently rendered.
func (h *Host) Mounted() bool { return h.tree != nil }

// Reconciler returns the host's reconciler.
func (h *Host) Reconciler() *vtree.Reconciler { return h.reconciler }

// Bounds returns the layout size.
func (h *Host) Bounds() view.Size { return h.bounds }

// AddObserver adds an observer. It must not be called during a pass.
func (h *Host) AddObserver(o Observer) {
	if o != nil {
		h.observers = append(h.observers, o)
	}
}

// Mount performs the first render. On a mounted host it re-renders.
func (h *Host) Mount(ctx context.Context) *Report {
	return h.Render(ctx)
}

// Render runs one pass.
func (h *Host) Render(ctx context.Context) *Report {
	r := h.pass(ctx, func(ctx context.Context) (string, *vtree.Pass) {
		next := h.render(ctx)
		switch {
		case h.tree == nil && next == nil:
			return KindRender, &vtree.Pass{}
		case h.tree == nil:
			root, p := h.reconciler.BuildRoot(next)
			h.container.InsertSubview(root, 0)
			h.tree = next
			return KindMount, p
		case next == nil:
			p := h.reconciler.Unmount(h.tree)
			h.tree = nil
			return KindUnmount, p
		default:
			p := h.reconciler.Reconcile(h.tree, next, h.container, 0)
			h.tree = next
			return KindRender, p
		}
	})
	h.notify(r)
	return r
}

// Unmount removes the rendered tree. It returns nil when nothing is mounted.
func (h *Host) Unmount(ctx context.Context) *Report {
	if h.tree == nil {
		return nil
	}
	r := h.pass(ctx, func(context.Context) (string, *vtree.Pass) {
		p := h.reconciler.Unmount(h.tree)
		h.tree = nil
		return KindUnmount, p
	})
	h.notify(r)
	return r
}

// SetBounds changes the layout size and lays the container out again.
func (h *Host) SetBounds(size view.Size) view.Rect {
	h.begin()
	defer h.end()

	h.bounds = size
	return h.engine.Apply(h.container, size)
}

func (h *Host) begin() {
	if !h.running.CompareAndSwap(false, true) {
		errors.Fatal("E004", "host is already rendering")
	}
}

func (h *Host) end() {
	h.running.Store(false)
}

// pass runs step under the reentrancy guard and inside a span, then lays
// the container out.
func (h *Host) pass(ctx context.Context, step func(context.Context) (string, *vtree.Pass)) *Report {
	h.begin()
	defer h.end()

	h.seq++
	r := &Report{
		ID:      uuid.NewString(),
		Seq:     h.seq,
		Started: time.Now(),
	}

	ctx, span := h.tracer.Start(ctx, "vtree.render",
		trace.WithAttributes(
			attribute.String("vtree.pass_id", r.ID),
			attribute.Int64("vtree.seq", int64(r.Seq)),
		),
	)
	defer span.End()
	defer func() {
		if rec := recover(); rec != nil {
			if e := errors.AsFatal(rec); e != nil {
				span.RecordError(e)
				span.SetStatus(codes.Error, e.Error())
			}
			panic(rec)
		}
	}()

	r.Kind, r.Pass = step(ctx)
	r.Frame = h.engine.Apply(h.container, h.bounds)
	r.Duration = time.Since(r.Started)
	r.Snapshot = vtree.Snapshot(h.tree)
	r.Live = h.reconciler.Registry().Len()
	r.Pooled = h.reconciler.Pool().Len()

	s := r.Pass.Stats
	span.SetAttributes(
		attribute.String("vtree.kind", r.Kind),
		attribute.Int("vtree.created", s.Created),
		attribute.Int("vtree.recycled", s.Recycled),
		attribute.Int("vtree.reused", s.Reused),
		attribute.Int("vtree.moved", s.Moved),
		attribute.Int("vtree.removed", s.Removed),
		attribute.Int("vtree.mutations", len(r.Pass.Mutations)),
	)
	span.SetStatus(codes.Ok, "")

	h.logger.Debug("render pass",
		"pass_id", r.ID,
		"kind", r.Kind,
		"created", s.Created,
		"reused", s.Reused,
		"moved", s.Moved,
		"removed", s.Removed,
		"duration", r.Duration,
	)
	return r
}

func (h *Host) notify(r *Report) {
	for _, o := range h.observers {
		o.ObservePass(r)
	}
}
