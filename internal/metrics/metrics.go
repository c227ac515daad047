// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from the incident pipeline.
//
// The package is intentionally minimal:
//
//   - It exposes a narrow interface (Backend) focused on counters and
//     timing data.
//   - It provides a global, pluggable backend that defaults to a no-op
//     implementation, so metrics are always safe to call even when no real
//     backend is configured.
//   - It mirrors the storage abstraction pattern used elsewhere in the
//     project (storage.Repository), so the rest of the codebase depends
//     only on this interface while concrete metric systems stay isolated in
//     subpackages.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends. It is generic
// enough to plug in Prometheus, Datadog, StatsD, and similar systems.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g.
	// Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing
// backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStage measures latency plus success/failure for one pipeline stage
// of one dataset.
func RecordStage(dataset, stage string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{
		"dataset": dataset,
		"stage":   stage,
		"status":  status,
	}
	backend.IncCounter("crimeflow_stage_total", 1, lbls)
	backend.ObserveHistogram("crimeflow_stage_duration_seconds", d.Seconds(), lbls)
}

// RecordRecords increments a record-level counter for the given dataset and
// kind.
//
// Typical kinds mirror the pipeline result fields:
//   - "parsed", "skipped", "deduped"
//   - "violent", "join_dropped", "hours_dropped"
//   - "exported"
func RecordRecords(dataset, kind string, n int) {
	if n == 0 {
		return
	}
	backend.IncCounter("crimeflow_records_total", float64(n), Labels{
		"dataset": dataset,
		"kind":    kind,
	})
}
