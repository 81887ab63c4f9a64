// Package metric provides Prometheus metrics for TraceMesh.
//
// It exposes metrics in Prometheus format for monitoring the remote
// configuration poller, span throughput, and export health.
package metric

// Registry holds all application metrics.
type Registry struct {
	// Remote configuration metrics
	ConfigFetches CounterVec // label: result (applied|absent|fetch_error|apply_error)
	ConfigApplied Counter
	PollDelay     Gauge // current backoff delay in seconds

	// Span metrics
	SpansStarted  Counter
	SpansFinished Counter
	SpansSampled  Counter
	SpansDropped  Counter
	ActiveSpans   Gauge

	// Export metrics
	ExportBatches  CounterVec // label: status (ok|error)
	ExportedSpans  Counter
	ExportDuration Histogram
}

// Counter is a cumulative metric that only increases.
type Counter interface {
	Inc()
	Add(float64)
}

// CounterVec is a Counter with labels.
type CounterVec interface {
	WithLabelValues(lvs ...string) Counter
}

// Gauge is a metric that can go up and down.
type Gauge interface {
	Set(float64)
	Inc()
	Dec()
	Add(float64)
	Sub(float64)
}

// Histogram samples observations and counts them in buckets.
type Histogram interface {
	Observe(float64)
}
