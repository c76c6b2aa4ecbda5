// Package inspector serves a debug HTTP view of a render host.
//
// An Inspector is registered as an observer on a component.Host. It keeps
// the latest tree snapshot and a bounded history of pass summaries, and
// exposes them over HTTP:
//
//	GET  /tree              latest snapshot
//	GET  /passes            recent pass summaries, oldest first (?limit=N)
//	GET  /live              websocket stream of pass events
//	GET  /metrics           Prometheus metrics, when a gatherer is set
//	GET  /snapshots         archived snapshot names
//	POST /snapshots         archive the latest snapshot
//	GET  /snapshots/{name}  an archived snapshot
//
// Observation happens on the render goroutine; HTTP handlers read under a
// lock and never touch views.
package inspector
