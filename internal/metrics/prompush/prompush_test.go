package prompush

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"crimeflow/internal/metrics"
)

func TestNewBackendRequiresURL(t *testing.T) {
	if _, err := NewBackend("job", ""); err == nil {
		t.Fatal("expected error for empty gateway URL")
	}
}

func TestCountersRouteByName(t *testing.T) {
	b, err := NewBackend("job", "http://localhost:9091")
	if err != nil {
		t.Fatal(err)
	}

	stage := metrics.Labels{"dataset": "chicago", "stage": "filter", "status": "success"}
	b.IncCounter("crimeflow_stage_total", 1, stage)
	b.IncCounter("crimeflow_stage_total", 1, stage)
	b.IncCounter("crimeflow_records_total", 42, metrics.Labels{"dataset": "chicago", "kind": "violent"})
	b.IncCounter("crimeflow_unknown_total", 5, nil)
	b.ObserveHistogram("crimeflow_stage_duration_seconds", 0.25, stage)

	if got := testutil.ToFloat64(b.stageCounter.With(map[string]string(stage))); got != 2 {
		t.Fatalf("stage counter = %v, want 2", got)
	}
	if got := testutil.ToFloat64(b.recordCounter.With(map[string]string{"dataset": "chicago", "kind": "violent"})); got != 42 {
		t.Fatalf("record counter = %v, want 42", got)
	}
	// One child metric per declared collector; the unknown counter name was
	// dropped, not auto-registered.
	if n, err := testutil.GatherAndCount(b.reg); err != nil || n != 3 {
		t.Fatalf("gathered %d metrics (err=%v), want 3", n, err)
	}
}
