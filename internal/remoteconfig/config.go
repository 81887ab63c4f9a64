// Package remoteconfig implements the dynamic instrumentation control
// plane client: fetching operational configuration from the agent and
// applying it to live tracer state with adaptive backoff.
package remoteconfig

import "encoding/json"

// Configuration is one configuration revision delivered by the control
// plane. The poller itself reads only the operational sub-section; the
// tracing section and raw payload are interpreted by the updater and
// are otherwise opaque.
//
// @req RQ-0201
// @design DS-0201
type Configuration struct {
	// Revision identifies this configuration version. Opaque,
	// assigned by the control plane.
	Revision string `json:"revision,omitempty"`

	// Ops carries operational settings for the poller itself.
	Ops OpsSection `json:"ops"`

	// Tracing carries live instrumentation settings applied by the
	// updater.
	Tracing TracingSection `json:"tracing"`

	// Payload is the remainder of the configuration document,
	// preserved verbatim for forward compatibility.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// OpsSection is the operational sub-section of a configuration.
type OpsSection struct {
	// PollIntervalSeconds overrides the poll interval between
	// configuration fetches. Zero means no override.
	PollIntervalSeconds int `json:"poll_interval_seconds,omitempty"`
}

// TracingSection carries the instrumentation settings the live updater
// knows how to apply.
type TracingSection struct {
	// LogLevel overrides the tracer log level. Empty means no change.
	LogLevel string `json:"log_level,omitempty"`

	// SamplingRate overrides the trace sampling rate in [0, 1].
	// Nil means no change.
	SamplingRate *float64 `json:"sampling_rate,omitempty"`

	// RateLimit overrides the sampled-traces-per-second cap.
	// Nil means no change; zero disables the cap.
	RateLimit *float64 `json:"rate_limit,omitempty"`
}
