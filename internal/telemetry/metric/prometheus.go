// Package metric provides Prometheus metrics for TraceMesh.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// promCounterVec adapts prometheus.CounterVec to the CounterVec interface.
type promCounterVec struct {
	vec *prometheus.CounterVec
}

func (v promCounterVec) WithLabelValues(lvs ...string) Counter {
	return v.vec.WithLabelValues(lvs...)
}

// NewRegistry creates a new metrics registry backed by the given
// Prometheus registerer. Passing nil uses the default registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Registry{
		ConfigFetches: promCounterVec{factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tracemesh",
			Subsystem: "remoteconfig",
			Name:      "fetches_total",
			Help:      "Configuration fetch cycles by result.",
		}, []string{"result"})},
		ConfigApplied: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tracemesh",
			Subsystem: "remoteconfig",
			Name:      "applied_total",
			Help:      "Configurations successfully applied.",
		}),
		PollDelay: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "tracemesh",
			Subsystem: "remoteconfig",
			Name:      "poll_delay_seconds",
			Help:      "Backoff delay before the next configuration fetch.",
		}),
		SpansStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tracemesh",
			Subsystem: "tracer",
			Name:      "spans_started_total",
			Help:      "Spans started.",
		}),
		SpansFinished: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tracemesh",
			Subsystem: "tracer",
			Name:      "spans_finished_total",
			Help:      "Spans finished.",
		}),
		SpansSampled: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tracemesh",
			Subsystem: "tracer",
			Name:      "spans_sampled_total",
			Help:      "Spans kept by the sampler.",
		}),
		SpansDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tracemesh",
			Subsystem: "tracer",
			Name:      "spans_dropped_total",
			Help:      "Finished spans dropped before export.",
		}),
		ActiveSpans: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "tracemesh",
			Subsystem: "tracer",
			Name:      "active_spans",
			Help:      "Spans currently in flight.",
		}),
		ExportBatches: promCounterVec{factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tracemesh",
			Subsystem: "export",
			Name:      "batches_total",
			Help:      "Export batches by status.",
		}, []string{"status"})},
		ExportedSpans: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tracemesh",
			Subsystem: "export",
			Name:      "spans_total",
			Help:      "Spans delivered to the agent.",
		}),
		ExportDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tracemesh",
			Subsystem: "export",
			Name:      "flush_duration_seconds",
			Help:      "Duration of export flushes.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// HandlerFor returns an HTTP handler serving the given gatherer.
func HandlerFor(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
