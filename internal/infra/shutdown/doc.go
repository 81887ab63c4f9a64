// Package shutdown provides graceful shutdown for the TraceMesh agent.
//
// This package handles process termination:
//
//   - Signal handling (SIGINT, SIGTERM)
//   - Programmatic shutdown via Trigger
//   - Timeout-based forced shutdown
//   - Cleanup hook registration, run in reverse order
//
// @design DS-0302
package shutdown
