package inspector

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/archive"
	"github.com/vango-dev/vtree/pkg/component"
	"github.com/vango-dev/vtree/pkg/vtree"
)

// DefaultHistory is the number of pass summaries kept when WithHistory is
// not given.
const DefaultHistory = 50

// Summary is the inspector's record of one pass.
type Summary struct {
	ID         string      `json:"id"`
	Seq        uint64      `json:"seq"`
	Kind       string      `json:"kind"`
	Started    time.Time   `json:"started"`
	DurationMS float64     `json:"durationMs"`
	Stats      vtree.Stats `json:"stats"`
	Mutations  int         `json:"mutations"`
	Live       int         `json:"live"`
	Pooled     int         `json:"pooled"`
}

// Tree is the body of GET /tree.
type Tree struct {
	PassID   string              `json:"passId"`
	Seq      uint64              `json:"seq"`
	Snapshot *vtree.SnapshotNode `json:"snapshot"`
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithHistory sets how many pass summaries are kept.
func WithHistory(n int) Option {
	return func(i *Inspector) {
		if n > 0 {
			i.history = n
		}
	}
}

// WithStore enables the snapshot archive endpoints.
func WithStore(store archive.Store) Option {
	return func(i *Inspector) {
		i.store = store
	}
}

// WithGatherer enables GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(i *Inspector) {
		i.gatherer = g
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Inspector) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// Inspector records passes and serves them over HTTP.
type Inspector struct {
	history  int
	store    archive.Store
	gatherer prometheus.Gatherer
	logger   *slog.Logger
	live     *hub
	router   chi.Router

	mu     sync.RWMutex
	passes []Summary // ring buffer
	next   int       // write position once the ring is full
	tree   *Tree
}

// New creates an Inspector.
func New(opts ...Option) *Inspector {
	i := &Inspector{
		history: DefaultHistory,
		logger:  slog.Default().With("component", "inspector"),
	}
	for _, opt := range opts {
		opt(i)
	}
	i.live = newHub(i.logger)
	i.router = i.routes()
	return i
}

// ObservePass implements component.Observer.
func (i *Inspector) ObservePass(r *component.Report) {
	s := Summary{
		ID:         r.ID,
		Seq:        r.Seq,
		Kind:       r.Kind,
		Started:    r.Started,
		DurationMS: float64(r.Duration) / float64(time.Millisecond),
		Live:       r.Live,
		Pooled:     r.Pooled,
	}
	if r.Pass != nil {
		s.Stats = r.Pass.Stats
		s.Mutations = len(r.Pass.Mutations)
	}

	i.mu.Lock()
	if len(i.passes) < i.history {
		i.passes = append(i.passes, s)
	} else {
		i.passes[i.next] = s
		i.next = (i.next + 1) % i.history
	}
	// Snapshots are built fresh for every report and never mutated.
	i.tree = &Tree{PassID: r.ID, Seq: r.Seq, Snapshot: r.Snapshot}
	i.mu.Unlock()

	i.live.broadcast(Event{Type: EventPass, Pass: &s})
}

// Passes returns the kept summaries, oldest first.
func (i *Inspector) Passes() []Summary {
	i.mu.RLock()
	defer i.mu.RUnlock()

	out := make([]Summary, 0, len(i.passes))
	out = append(out, i.passes[i.next:]...)
	out = append(out, i.passes[:i.next]...)
	return out
}

// Latest returns the most recent tree, or nil before the first pass.
func (i *Inspector) Latest() *Tree {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.tree
}

// Handler returns the HTTP handler.
func (i *Inspector) Handler() http.Handler {
	return i.router
}

// ClientCount returns the number of connected live clients.
func (i *Inspector) ClientCount() int {
	return i.live.count()
}

// Close disconnects live clients.
func (i *Inspector) Close() {
	i.live.close()
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func (i *Inspector) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           i.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		i.logger.Info("inspector listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	i.live.close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (i *Inspector) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(i.requestLogger)

	r.Get("/tree", i.handleTree)
	r.Get("/passes", i.handlePasses)
	r.Get("/live", i.live.serve)
	if i.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(i.gatherer, promhttp.HandlerOpts{}))
	}
	r.Route("/snapshots", func(r chi.Router) {
		r.Get("/", i.handleListSnapshots)
		r.Post("/", i.handleSaveSnapshot)
		r.Get("/{name}", i.handleGetSnapshot)
	})
	return r
}

func (i *Inspector) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		i.logger.Debug("inspector request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (i *Inspector) handleTree(w http.ResponseWriter, r *http.Request) {
	tree := i.Latest()
	if tree == nil || tree.Snapshot == nil {
		writeError(w, http.StatusNotFound, errors.New("E161").WithDetail("nothing has been rendered yet"))
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

func (i *Inspector) handlePasses(w http.ResponseWriter, r *http.Request) {
	passes := i.Passes()
	if s := r.URL.Query().Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		if limit < len(passes) {
			passes = passes[len(passes)-limit:]
		}
	}
	writeJSON(w, http.StatusOK, passes)
}

func (i *Inspector) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	if !i.requireStore(w) {
		return
	}
	names, err := archive.ListSnapshots(r.Context(), i.store)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

func (i *Inspector) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	if !i.requireStore(w) {
		return
	}
	tree := i.Latest()
	if tree == nil || tree.Snapshot == nil {
		writeError(w, http.StatusNotFound, errors.New("E161").WithDetail("nothing has been rendered yet"))
		return
	}
	name, err := archive.SaveSnapshot(r.Context(), i.store, tree.PassID, tree.Snapshot)
	if err != nil {
		i.logger.Warn("snapshot archive failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	i.logger.Info("snapshot archived", "name", name, "pass_id", tree.PassID)
	writeJSON(w, http.StatusCreated, map[string]string{"name": name})
}

func (i *Inspector) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	if !i.requireStore(w) {
		return
	}
	name := chi.URLParam(r, "name")
	env, err := archive.LoadSnapshot(r.Context(), i.store, name)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.HasCode(err, "E161") {
			status = http.StatusNotFound
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, env)
}

func (i *Inspector) requireStore(w http.ResponseWriter) bool {
	if i.store != nil {
		return true
	}
	writeError(w, http.StatusNotImplemented, errors.New("E160").
		WithDetail("no archive is configured").
		WithSuggestion("Set archive.dir or archive.bucket in vtree.json"))
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	e := errors.FromError(err, "E160")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(e.FormatJSON() + "\n"))
}
