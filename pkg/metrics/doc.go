// Package metrics exports Prometheus metrics for render passes and list
// updates.
//
// Metrics collected (with the default namespace):
//   - vtree_passes_total: Counter of reconcile passes by kind
//   - vtree_pass_duration_seconds: Histogram of pass duration by kind
//   - vtree_view_operations_total: Counter of per-view work by operation
//     (created, recycled, reused, moved, removed, replaced)
//   - vtree_live_views: Gauge of views currently owned by the reconciler
//   - vtree_pooled_views: Gauge of views waiting in the recycle pool
//   - vtree_list_updates_total: Counter of list updates by mode
//   - vtree_list_rows_changed_total: Counter of inserted and deleted rows
//
// Example:
//
//	reg := prometheus.NewRegistry()
//	m := metrics.New(metrics.WithRegistry(reg))
//	m.ObservePass("render", elapsed, pass.Stats)
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package metrics
