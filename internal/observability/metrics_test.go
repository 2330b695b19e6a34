package observability_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/asyncopatedsoul/health-protocol/internal/observability"
)

func gatherValue(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue next
				}
			}
			switch {
			case m.GetCounter() != nil:
				return m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				return m.GetGauge().GetValue()
			}
		}
	}
	return 0
}

func TestRecorders(t *testing.T) {
	before := gatherValue(t, "health_protocol_importer_activities_total", map[string]string{"result": "skipped"})
	observability.RecordActivityResults(2, 3, 0)
	after := gatherValue(t, "health_protocol_importer_activities_total", map[string]string{"result": "skipped"})
	if after-before != 3 {
		t.Errorf("skipped delta = %v, want 3", after-before)
	}

	ts := time.Unix(1_700_000_000, 0)
	observability.RecordNoteImported(ts, nil)
	if got := gatherValue(t, "health_protocol_importer_last_import_timestamp_seconds", nil); got != float64(ts.Unix()) {
		t.Errorf("watermark = %v", got)
	}

	observability.RecordSearchAvailability(false)
	if got := gatherValue(t, "health_protocol_resolver_search_available", nil); got != 0 {
		t.Errorf("search_available = %v", got)
	}
	observability.RecordSearchAvailability(true)
	if got := gatherValue(t, "health_protocol_resolver_search_available", nil); got != 1 {
		t.Errorf("search_available = %v", got)
	}

	before = gatherValue(t, "health_protocol_resolver_resolutions_total", map[string]string{"path": "search", "outcome": "created"})
	observability.RecordResolution(true, true)
	after = gatherValue(t, "health_protocol_resolver_resolutions_total", map[string]string{"path": "search", "outcome": "created"})
	if after-before != 1 {
		t.Errorf("resolution delta = %v", after-before)
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	labels := map[string]string{"method": "POST", "route": "unmatched", "status": "404"}
	before := gatherValue(t, "health_protocol_http_requests_total", labels)
	observability.RecordHTTPRequest("POST", "", 404, 5*time.Millisecond)
	after := gatherValue(t, "health_protocol_http_requests_total", labels)
	if after-before != 1 {
		t.Errorf("requests delta = %v, want 1", after-before)
	}
}
