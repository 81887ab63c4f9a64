// Package remoteconfig implements the dynamic instrumentation control
// plane client for TraceMesh.
//
// The package is organized around three pieces:
//
//   - Poller: background loop driving fetch → apply → adaptive backoff
//   - Fetcher: retrieval of the latest configuration (HTTP against the
//     trace agent, or a static source for development)
//   - Updater: validation and application of an accepted configuration
//     to live tracer state (log level, sampling)
//
// Failure policy:
//
// Recoverable fetch and apply errors are logged and retried with a
// linearly growing delay, capped at MaxPollInterval. The poller never
// stops on its own; only Shutdown ends the loop. Panics are not
// recovered.
//
// @req RQ-0203
// @design DS-0203
package remoteconfig
