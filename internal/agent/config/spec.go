// Package config defines the agent configuration structure.
package config

import "time"

// AgentConfig is the root configuration for tracemesh-agent.
type AgentConfig struct {
	Service      ServiceSection      `koanf:"service"`
	Intake       IntakeSection       `koanf:"intake"`
	RemoteConfig RemoteConfigSection `koanf:"remote_config"`
	Export       ExportSection       `koanf:"export"`
	Sampling     SamplingSection     `koanf:"sampling"`
	Metrics      MetricsSection      `koanf:"metrics"`
	Log          LogSection          `koanf:"log"`
}

// IntakeSection configures the span intake HTTP listener.
//
// @req RQ-0401
type IntakeSection struct {
	// Enabled turns the intake listener on.
	Enabled bool `koanf:"enabled"`

	// Addr is the listen address (e.g., "127.0.0.1:8128").
	Addr string `koanf:"addr"`

	// AccessLog logs every handled request at debug level.
	AccessLog bool `koanf:"access_log"`
}

// ServiceSection identifies the instrumented service.
type ServiceSection struct {
	// Name is the logical service name attached to every span.
	Name string `koanf:"name"`

	// Env is the deployment environment (e.g., "prod", "staging").
	Env string `koanf:"env"`
}

// RemoteConfigSection configures the control-plane poller.
//
// @req RQ-0203
type RemoteConfigSection struct {
	// Enabled turns the configuration poller on.
	Enabled bool `koanf:"enabled"`

	// Endpoint is the control-plane base URL or host:port.
	Endpoint string `koanf:"endpoint"`

	// APIKey authenticates against the control plane.
	APIKey string `koanf:"api_key"`

	// PollInterval is the initial poll interval; the control plane
	// may override it at runtime.
	PollInterval time.Duration `koanf:"poll_interval"`
}

// ExportSection configures span delivery to the trace backend.
type ExportSection struct {
	// Endpoint is the backend base URL or host:port.
	Endpoint string `koanf:"endpoint"`

	// APIKey authenticates against the backend.
	APIKey string `koanf:"api_key"`

	// BatchSize is the number of spans that triggers a flush.
	BatchSize int `koanf:"batch_size"`

	// FlushInterval bounds how long a partial batch waits.
	FlushInterval time.Duration `koanf:"flush_interval"`

	// QueueSize is the in-memory span buffer.
	QueueSize int `koanf:"queue_size"`
}

// SamplingSection configures trace sampling.
type SamplingSection struct {
	// Rate is the probability of keeping a trace, in [0, 1].
	Rate float64 `koanf:"rate"`

	// RateLimit caps kept traces per second; 0 disables the cap.
	RateLimit float64 `koanf:"rate_limit"`
}

// MetricsSection configures the Prometheus endpoint.
type MetricsSection struct {
	// Enabled turns the /metrics HTTP listener on.
	Enabled bool `koanf:"enabled"`

	// Addr is the listen address (e.g., ":9102").
	Addr string `koanf:"addr"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
