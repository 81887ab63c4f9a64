// Package main provides the entry point for tracemesh-agent.
//
// The agent is the host-local TraceMesh process that provides:
//
//   - HTTP span intake for instrumented services
//   - Probabilistic, rate-limited trace sampling
//   - Batched span export to the trace backend
//   - Live instrumentation settings via the control-plane poller
//   - Prometheus metrics endpoint
//
// Usage:
//
//	tracemesh-agent [flags]
//	tracemesh-agent --config /path/to/config.yaml
//
// The agent loads configuration, initializes infrastructure
// components, and starts all configured listeners.
//
// @design DS-0303
package main
