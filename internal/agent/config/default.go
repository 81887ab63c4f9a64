// Package config defines the agent configuration structure.
package config

import "time"

// Default configuration values.
const (
	DefaultIntakeAddr = "127.0.0.1:8128"

	DefaultRemoteConfigEndpoint = "127.0.0.1:8127"
	DefaultPollInterval         = 10 * time.Second

	DefaultExportEndpoint = "127.0.0.1:8126"
	DefaultBatchSize      = 100
	DefaultFlushInterval  = 2 * time.Second
	DefaultQueueSize      = 1024

	DefaultSamplingRate = 1.0

	DefaultMetricsAddr = "127.0.0.1:9102"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default agent configuration.
func Default() *AgentConfig {
	return &AgentConfig{
		Service: ServiceSection{
			Name: "tracemesh-agent",
			Env:  "dev",
		},
		Intake: IntakeSection{
			Enabled: true,
			Addr:    DefaultIntakeAddr,
		},
		RemoteConfig: RemoteConfigSection{
			Enabled:      true,
			Endpoint:     DefaultRemoteConfigEndpoint,
			PollInterval: DefaultPollInterval,
		},
		Export: ExportSection{
			Endpoint:      DefaultExportEndpoint,
			BatchSize:     DefaultBatchSize,
			FlushInterval: DefaultFlushInterval,
			QueueSize:     DefaultQueueSize,
		},
		Sampling: SamplingSection{
			Rate: DefaultSamplingRate,
		},
		Metrics: MetricsSection{
			Enabled: true,
			Addr:    DefaultMetricsAddr,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
