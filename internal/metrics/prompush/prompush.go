// Package prompush implements a Prometheus Pushgateway backend for the
// metrics package.
//
// This package adapts the generic metrics.Backend interface to Prometheus:
//
//   - CounterVec collectors back the counter metrics.
//   - SummaryVec collectors back the duration metrics.
//   - Collected metrics are pushed to a Pushgateway instead of exposing a
//     scrape endpoint, because pipeline runs are short-lived batch jobs.
//
// All Prometheus-specific dependencies stay inside this package so the rest
// of the project can swap metric systems without changes to the pipeline.
package prompush

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"crimeflow/internal/metrics"
)

// Backend is a Prometheus Pushgateway metrics backend.
type Backend struct {
	gatewayURL string // e.g. http://pushgateway:9091
	jobName    string // Pushgateway "job" group
	reg        *prometheus.Registry

	stageCounter  *prometheus.CounterVec // crimeflow_stage_total
	stageDuration *prometheus.SummaryVec // crimeflow_stage_duration_seconds
	recordCounter *prometheus.CounterVec // crimeflow_records_total
}

// NewBackend constructs a Pushgateway backend. jobName is the Pushgateway
// "job" name, typically the config's job field.
func NewBackend(jobName, gatewayURL string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "crimeflow"
	}

	reg := prometheus.NewRegistry()
	b := &Backend{
		gatewayURL: gatewayURL,
		jobName:    jobName,
		reg:        reg,
		stageCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crimeflow_stage_total",
			Help: "Pipeline stage executions by dataset, stage, and status.",
		}, []string{"dataset", "stage", "status"}),
		stageDuration: prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Name: "crimeflow_stage_duration_seconds",
			Help: "Pipeline stage duration in seconds.",
		}, []string{"dataset", "stage", "status"}),
		recordCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crimeflow_records_total",
			Help: "Record counts by dataset and kind (parsed, violent, dropped, ...).",
		}, []string{"dataset", "kind"}),
	}
	reg.MustRegister(b.stageCounter, b.stageDuration, b.recordCounter)
	return b, nil
}

// IncCounter implements metrics.Backend.
func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	switch name {
	case "crimeflow_stage_total":
		b.stageCounter.With(prometheus.Labels{
			"dataset": labels["dataset"],
			"stage":   labels["stage"],
			"status":  labels["status"],
		}).Add(delta)
	case "crimeflow_records_total":
		b.recordCounter.With(prometheus.Labels{
			"dataset": labels["dataset"],
			"kind":    labels["kind"],
		}).Add(delta)
	}
	// Unknown counter names are dropped; the interface is wider than any
	// one backend's registered collectors.
}

// ObserveHistogram implements metrics.Backend.
func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	if name != "crimeflow_stage_duration_seconds" {
		return
	}
	b.stageDuration.With(prometheus.Labels{
		"dataset": labels["dataset"],
		"stage":   labels["stage"],
		"status":  labels["status"],
	}).Observe(value)
}

// Flush pushes the collected metrics to the Pushgateway.
func (b *Backend) Flush() error {
	if err := push.New(b.gatewayURL, b.jobName).Gatherer(b.reg).Push(); err != nil {
		return fmt.Errorf("prompush: push to %s: %w", b.gatewayURL, err)
	}
	return nil
}

var _ metrics.Backend = (*Backend)(nil)
