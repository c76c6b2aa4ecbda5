package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/vtree/pkg/listview"
	"github.com/vango-dev/vtree/pkg/vtree"
)

// Config configures the collector.
type Config struct {
	// Namespace is the metrics namespace (default: "vtree").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for pass duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "vtree",
		// Passes are in-memory tree walks; most finish well under a millisecond.
		Buckets:  []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
		Registry: prometheus.DefaultRegisterer,
	}
}

// Collector records render and list metrics.
type Collector struct {
	passesTotal     *prometheus.CounterVec
	passDuration    *prometheus.HistogramVec
	viewOps         *prometheus.CounterVec
	liveViews       prometheus.Gauge
	pooledViews     prometheus.Gauge
	listUpdates     *prometheus.CounterVec
	listRowsChanged *prometheus.CounterVec
}

// New creates a Collector and registers its metrics. Registering twice on
// the same registry panics, as with promauto.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Collector{
		passesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "passes_total",
			Help:        "Total number of reconcile passes",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		passDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pass_duration_seconds",
			Help:        "Render pass duration in seconds, layout included",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"kind"}),

		viewOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "view_operations_total",
			Help:        "Views created, recycled, reused, moved, removed or replaced",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		liveViews: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_views",
			Help:        "Number of views owned by the reconciler",
			ConstLabels: config.ConstLabels,
		}),

		pooledViews: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pooled_views",
			Help:        "Number of unmounted views waiting in the recycle pool",
			ConstLabels: config.ConstLabels,
		}),

		listUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "list_updates_total",
			Help:        "Total list updates by mode",
			ConstLabels: config.ConstLabels,
		}, []string{"mode"}),

		listRowsChanged: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "list_rows_changed_total",
			Help:        "Rows inserted or deleted by batched list updates",
			ConstLabels: config.ConstLabels,
		}, []string{"change"}),
	}
}

// ObservePass records one pass of the given kind.
func (c *Collector) ObservePass(kind string, d time.Duration, s vtree.Stats) {
	if c == nil {
		return
	}
	c.passesTotal.WithLabelValues(kind).Inc()
	c.passDuration.WithLabelValues(kind).Observe(d.Seconds())

	add := func(op string, n int) {
		if n > 0 {
			c.viewOps.WithLabelValues(op).Add(float64(n))
		}
	}
	add("created", s.Created)
	add("recycled", s.Recycled)
	add("reused", s.Reused)
	add("moved", s.Moved)
	add("removed", s.Removed)
	add("replaced", s.Replaced)
}

// SetViews records the current live and pooled view counts.
func (c *Collector) SetViews(live, pooled int) {
	if c == nil {
		return
	}
	c.liveViews.Set(float64(live))
	c.pooledViews.Set(float64(pooled))
}

// ObserveListUpdate records a list adapter update. It has the signature of
// a listview observer.
func (c *Collector) ObserveListUpdate(u listview.Update) {
	if c == nil {
		return
	}
	c.listUpdates.WithLabelValues(u.Mode.String()).Inc()
	if u.Mode != listview.ModeBatch {
		return
	}
	if u.Insertions > 0 {
		c.listRowsChanged.WithLabelValues("inserted").Add(float64(u.Insertions))
	}
	if u.Deletions > 0 {
		c.listRowsChanged.WithLabelValues("deleted").Add(float64(u.Deletions))
	}
}
