package metric

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRegistry(reg)

	if r.ConfigFetches == nil || r.ConfigApplied == nil || r.PollDelay == nil {
		t.Fatal("remote configuration metrics should be initialized")
	}
	if r.SpansStarted == nil || r.ActiveSpans == nil {
		t.Fatal("span metrics should be initialized")
	}
	if r.ExportBatches == nil || r.ExportDuration == nil {
		t.Fatal("export metrics should be initialized")
	}

	r.ConfigFetches.WithLabelValues("applied").Inc()
	r.ConfigApplied.Inc()
	r.PollDelay.Set(10)
	r.SpansStarted.Add(3)
	r.ActiveSpans.Inc()
	r.ActiveSpans.Dec()
	r.ExportBatches.WithLabelValues("ok").Inc()
	r.ExportDuration.Observe(0.05)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	names := make(map[string]bool)
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	for _, want := range []string{
		"tracemesh_remoteconfig_fetches_total",
		"tracemesh_remoteconfig_applied_total",
		"tracemesh_remoteconfig_poll_delay_seconds",
		"tracemesh_tracer_spans_started_total",
		"tracemesh_export_batches_total",
		"tracemesh_export_flush_duration_seconds",
	} {
		if !names[want] {
			t.Errorf("metric %s not registered", want)
		}
	}
}

func TestHandlerFor(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRegistry(reg)
	r.SpansFinished.Inc()

	srv := httptest.NewServer(HandlerFor(reg))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("GET /metrics error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	buf := make([]byte, 64*1024)
	n, _ := resp.Body.Read(buf)
	if !strings.Contains(string(buf[:n]), "tracemesh_tracer_spans_finished_total") {
		t.Error("exposition should contain tracemesh metrics")
	}
}
